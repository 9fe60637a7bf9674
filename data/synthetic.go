package data

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"

	"github.com/dontcallmebro/BQL-APP/sabr"
	"github.com/dontcallmebro/BQL-APP/utils"
)

// SyntheticConfig describes a random-walk smile series.
type SyntheticConfig struct {
	Start   time.Time
	Days    int
	Tenors  []string
	Forward float64
	ATM     float64 // percentage points
	Beta    float64
	Shape   sabr.Shape
	// Step bounds the daily move of rho and nu.
	Step float64
	Seed uint64
}

// DefaultSyntheticConfig is a quiet FX-like market.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		Start:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Days:    60,
		Tenors:  Tenors(),
		Forward: 1.10,
		ATM:     8.0,
		Beta:    1.0,
		Shape:   sabr.Shape{Rho: -0.2, Nu: 0.8},
		Step:    0.02,
		Seed:    1,
	}
}

// Synthetic generates rows whose quotes are exact model vols at the strikes the pipeline recovers,
// together with the true shape of each row. Rows are ordered by date, then tenor.
func Synthetic(cfg SyntheticConfig) ([]Row, []sabr.Shape, error) {
	if cfg.Days <= 0 || len(cfg.Tenors) == 0 {
		return nil, nil, errors.New("synthetic series needs days and tenors")
	}
	if !(cfg.Forward > 0) || !(cfg.ATM > 0) {
		return nil, nil, fmt.Errorf("synthetic series needs positive forward and atm, got %v and %v", cfg.Forward, cfg.ATM)
	}
	hols, err := utils.Hols(utils.NYSE)
	if err != nil {
		return nil, nil, err
	}
	dates := utils.BusinessDates(cfg.Start, cfg.Days, hols)
	rng := rand.New(rand.NewSource(cfg.Seed))

	f, atm, shape := cfg.Forward, cfg.ATM, cfg.Shape
	var rows []Row
	var truth []sabr.Shape
	for _, date := range dates {
		for _, name := range cfg.Tenors {
			t, ok := TenorYears(name)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTenor, name)
			}
			// vol of vol falls with expiry
			s := sabr.Shape{Rho: shape.Rho, Nu: clampFloat(shape.Nu*math.Pow(t/0.25, -0.2), 0.05, 2.5)}
			row, err := syntheticRow(date, NormalizeTenor(name), f, atm, cfg.Beta, t, s)
			if err != nil {
				return nil, nil, err
			}
			rows = append(rows, row)
			truth = append(truth, s)
		}
		f *= math.Exp(0.004 * rng.NormFloat64())
		atm = clampFloat(atm*math.Exp(0.01*rng.NormFloat64()), 0.5*cfg.ATM, 2.0*cfg.ATM)
		shape.Rho = clampFloat(shape.Rho+cfg.Step*(2.0*rng.Float64()-1.0), -0.9, 0.9)
		shape.Nu = clampFloat(shape.Nu+cfg.Step*(2.0*rng.Float64()-1.0), 0.1, 2.5)
	}
	return rows, truth, nil
}

func syntheticRow(date time.Time, tenor string, forward, atm, beta, t float64, s sabr.Shape) (Row, error) {
	f, scale := forward, 1.0
	if f > scaleThreshold {
		scale = scaleFactor
		f /= scale
	}
	alpha := atm / 100.0 * math.Pow(f, 1.0-beta)
	p := sabr.Params{Alpha: alpha, Beta: beta, Rho: s.Rho, Nu: s.Nu}

	row := Row{Date: date, Tenor: tenor, Forward: forward, ATM: atm}
	for _, b := range Buckets {
		if b == ATM {
			continue
		}
		delta, isCall := b.Delta()
		k, err := SolveStrike(delta, alpha, t, f, isCall)
		if err != nil {
			return Row{}, fmt.Errorf("%s %s %s: %w", date.Format(utils.Layout), tenor, b, err)
		}
		row.set(b.String(), 100.0*p.Vol(f, k, t))
	}
	return row, nil
}

func clampFloat(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
