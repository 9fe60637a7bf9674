package data

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/dontcallmebro/BQL-APP/sabr"
	"github.com/dontcallmebro/BQL-APP/utils"
)

var (
	// ErrInputIncomplete marks a row with a missing or non-positive quote or forward.
	ErrInputIncomplete = errors.New("incomplete input row")
	// ErrUnknownTenor marks a row whose tenor is not in the tenor table.
	ErrUnknownTenor = errors.New("unknown tenor")
	// ErrNonMonotoneStrikes marks recovered strikes that do not increase from Put10 to Call10.
	ErrNonMonotoneStrikes = errors.New("strikes not strictly increasing")
	// ErrNoConvergence marks a smile the optimizer could not fit.
	ErrNoConvergence = sabr.ErrNoConvergence
)

// Forwards above this are quoted in points and fitted at 1/100 of their size.
const (
	scaleThreshold = 10.0
	scaleFactor    = 100.0
)

// Fitter fits the free shape of a smile. *sabr.Calibrator satisfies it.
type Fitter interface {
	Calibrate(f float64, strikes, vols []float64, t, alpha, beta float64, seed sabr.Shape) (sabr.Shape, error)
}

// WarmStart holds the last fitted shape per tenor. Methods never modify the receiver.
// The zero value is an empty state.
type WarmStart struct {
	shapes map[string]sabr.Shape
}

// NewWarmStart returns an empty state.
func NewWarmStart() WarmStart {
	return WarmStart{}
}

// Lookup returns the stored shape for tenor.
func (w WarmStart) Lookup(tenor string) (sabr.Shape, bool) {
	s, ok := w.shapes[NormalizeTenor(tenor)]
	return s, ok
}

// Seed returns the stored shape for tenor, or sabr.DefaultShape.
func (w WarmStart) Seed(tenor string) sabr.Shape {
	if s, ok := w.Lookup(tenor); ok {
		return s
	}
	return sabr.DefaultShape
}

// With returns a copy of w with the shape for tenor replaced.
func (w WarmStart) With(tenor string, s sabr.Shape) WarmStart {
	shapes := make(map[string]sabr.Shape, len(w.shapes)+1)
	for k, v := range w.shapes {
		shapes[k] = v
	}
	shapes[NormalizeTenor(tenor)] = s
	return WarmStart{shapes: shapes}
}

// Len is the number of tenors with a stored shape.
func (w WarmStart) Len() int {
	return len(w.shapes)
}

// RowFailure records why a row produced no result.
type RowFailure struct {
	Date  time.Time
	Tenor string
	Err   error
}

func (f RowFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Date.Format(utils.Layout), f.Tenor, f.Err)
}

func (f RowFailure) Unwrap() error {
	return f.Err
}

// Report collects the outcome of a run.
type Report struct {
	Results  []CalibrationResult
	Failures []RowFailure
}

// Count tallies failures by reason.
func (r Report) Count() map[string]int {
	out := make(map[string]int)
	for _, f := range r.Failures {
		out[Reason(f.Err)]++
	}
	return out
}

// Reason is a short label for a row error.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInputIncomplete):
		return "incomplete"
	case errors.Is(err, ErrUnknownTenor):
		return "unknown_tenor"
	case errors.Is(err, ErrRootNotFound):
		return "root_not_found"
	case errors.Is(err, ErrNonMonotoneStrikes):
		return "non_monotone"
	case errors.Is(err, ErrNoConvergence):
		return "no_convergence"
	}
	return "other"
}

// Pipeline calibrates rows one at a time, threading warm-start state between them.
type Pipeline struct {
	Beta   float64
	Fitter Fitter
	Log    zerolog.Logger
	// OnRow is called after every row. RunByTenor calls it from several goroutines.
	OnRow func()
}

// NewPipeline returns a pipeline using sabr.Calibrator with default caps.
func NewPipeline(beta float64, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		Beta:   beta,
		Fitter: sabr.NewCalibrator(),
		Log:    log.With().Str("component", "pipeline").Logger(),
	}
}

// Eligible reports whether a row can be calibrated, before any numeric work.
func (p *Pipeline) Eligible(row Row) error {
	if _, ok := TenorYears(row.Tenor); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTenor, row.Tenor)
	}
	if !(row.Forward > 0) || math.IsInf(row.Forward, 0) {
		return fmt.Errorf("%w: forward %v", ErrInputIncomplete, row.Forward)
	}
	for _, q := range row.Quotes() {
		if !(q.Vol > 0) || math.IsInf(q.Vol, 0) {
			return fmt.Errorf("%w: %s vol %v", ErrInputIncomplete, q.Bucket, q.Vol)
		}
	}
	return nil
}

// Step calibrates one row seeded from state. On success the returned state carries the new shape
// for the row's tenor; on failure state is returned unchanged.
func (p *Pipeline) Step(row Row, state WarmStart) (CalibrationResult, WarmStart, error) {
	if err := p.Eligible(row); err != nil {
		return CalibrationResult{}, state, err
	}
	tenor := NormalizeTenor(row.Tenor)
	t, _ := TenorYears(tenor)

	f, scale := row.Forward, 1.0
	if f > scaleThreshold {
		scale = scaleFactor
		f /= scale
	}
	beta := p.Beta
	alpha := row.ATM / 100.0 * math.Pow(f, 1.0-beta)

	// alpha doubles as the flat vol for every delta inversion
	strikes := make([]float64, len(Buckets))
	for i, b := range Buckets {
		if b == ATM {
			strikes[i] = f
			continue
		}
		delta, isCall := b.Delta()
		k, err := SolveStrike(delta, alpha, t, f, isCall)
		if err != nil {
			return CalibrationResult{}, state, fmt.Errorf("%s: %w", b, err)
		}
		strikes[i] = k
	}
	for i := 1; i < len(strikes); i++ {
		if !(strikes[i] > strikes[i-1]) {
			return CalibrationResult{}, state, fmt.Errorf("%w: %v", ErrNonMonotoneStrikes, strikes)
		}
	}

	vols := make([]float64, len(Buckets))
	for i, b := range Buckets {
		vols[i] = row.Vol(b)
	}
	floats.Scale(0.01, vols)

	fitter := p.Fitter
	if fitter == nil {
		fitter = sabr.NewCalibrator()
	}
	shape, err := fitter.Calibrate(f, strikes, vols, t, alpha, beta, state.Seed(tenor))
	if err != nil {
		return CalibrationResult{}, state, err
	}
	fitted := sabr.Params{Alpha: alpha, Beta: beta, Rho: shape.Rho, Nu: shape.Nu}
	rmse := sabr.RMSE(fitted, f, t, strikes, vols)

	res := CalibrationResult{
		Date:    row.Date,
		Tenor:   tenor,
		Forward: row.Forward,
		Rho:     shape.Rho * 100.0,
		Nu:      shape.Nu * 100.0,
		Alpha:   alpha * math.Pow(scale, 1.0-beta),
		Beta:    beta,
		T:       t,
		RMSE:    rmse,
	}
	floats.Scale(scale, strikes)
	copy(res.Strikes[:], strikes)
	return res, state.With(tenor, shape), nil
}

// Run calibrates rows in date order. Rows with equal dates keep their input order.
// ctx is checked between rows; on cancellation the partial report is returned with ctx.Err().
func (p *Pipeline) Run(ctx context.Context, rows []Row, state WarmStart) (Report, WarmStart, error) {
	report, state, err := p.run(ctx, rows, state)
	p.summary(len(rows), report)
	return report, state, err
}

func (p *Pipeline) run(ctx context.Context, rows []Row, state WarmStart) (Report, WarmStart, error) {
	ordered := make([]Row, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	var report Report
	for _, row := range ordered {
		if err := ctx.Err(); err != nil {
			return report, state, err
		}
		res, next, err := p.Step(row, state)
		if err != nil {
			report.Failures = append(report.Failures, RowFailure{Date: row.Date, Tenor: row.Tenor, Err: err})
			p.Log.Debug().Err(err).Time("date", row.Date).Str("tenor", row.Tenor).Msg("row skipped")
		} else {
			report.Results = append(report.Results, res)
			state = next
		}
		if p.OnRow != nil {
			p.OnRow()
		}
	}
	return report, state, nil
}

func (p *Pipeline) summary(rows int, report Report) {
	p.Log.Info().Int("rows", rows).Int("calibrated", len(report.Results)).
		Int("failed", len(report.Failures)).Msg("calibration run finished")
}

// RunByTenor runs every tenor in its own goroutine. Each tenor still sees its rows in date order
// and only its own warm-start entry. Results are merged by date, then tenor, and logged as one run.
func (p *Pipeline) RunByTenor(ctx context.Context, rows []Row, state WarmStart) (Report, WarmStart, error) {
	groups := make(map[string][]Row)
	var keys []string
	for _, row := range rows {
		k := NormalizeTenor(row.Tenor)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], row)
	}

	type outcome struct {
		report Report
		state  WarmStart
		err    error
	}
	outcomes := make([]outcome, len(keys))
	var wg sync.WaitGroup
	for i, k := range keys {
		wg.Add(1)
		go func(i int, group []Row) {
			defer wg.Done()
			rep, st, err := p.run(ctx, group, state)
			outcomes[i] = outcome{report: rep, state: st, err: err}
		}(i, groups[k])
	}
	wg.Wait()

	var report Report
	var err error
	for i, k := range keys {
		o := outcomes[i]
		report.Results = append(report.Results, o.report.Results...)
		report.Failures = append(report.Failures, o.report.Failures...)
		if s, ok := o.state.Lookup(k); ok {
			state = state.With(k, s)
		}
		if o.err != nil && err == nil {
			err = o.err
		}
	}
	sort.SliceStable(report.Results, func(i, j int) bool {
		return rowLess(report.Results[i].Date, report.Results[i].Tenor, report.Results[j].Date, report.Results[j].Tenor)
	})
	sort.SliceStable(report.Failures, func(i, j int) bool {
		return rowLess(report.Failures[i].Date, report.Failures[i].Tenor, report.Failures[j].Date, report.Failures[j].Tenor)
	})
	p.summary(len(rows), report)
	return report, state, err
}

func rowLess(d1 time.Time, t1 string, d2 time.Time, t2 string) bool {
	if !d1.Equal(d2) {
		return d1.Before(d2)
	}
	i, j := tenorIndex(t1), tenorIndex(t2)
	if i < 0 {
		i = len(tenorTable)
	}
	if j < 0 {
		j = len(tenorTable)
	}
	return i < j
}
