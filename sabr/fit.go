package sabr

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// ErrNoConvergence is returned when neither optimizer reaches a converged status.
var ErrNoConvergence = errors.New("sabr: calibration did not converge")

// ErrBadSmile is returned for smiles that cannot be fitted at all.
var ErrBadSmile = errors.New("sabr: invalid smile input")

const (
	defaultMaxIterations  = 1000
	defaultMaxEvaluations = 20000

	// Seeds are pulled off the box edges so tanh is not saturated at the start.
	seedLimit = 1.0 - 1e-6
)

var converged = map[optimize.Status]bool{
	optimize.Success:             true,
	optimize.FunctionConvergence: true,
	optimize.GradientThreshold:   true,
	optimize.StepConvergence:     true,
	optimize.MethodConverge:      true,
}

// Calibrator fits rho and nu to a smile with alpha and beta held fixed.
// The zero value uses the default iteration caps.
type Calibrator struct {
	// MaxIterations caps major iterations of each optimizer run.
	MaxIterations int
	// MaxEvaluations caps objective evaluations of each optimizer run.
	MaxEvaluations int
}

// NewCalibrator returns a Calibrator with the default caps.
func NewCalibrator() *Calibrator {
	return &Calibrator{MaxIterations: defaultMaxIterations, MaxEvaluations: defaultMaxEvaluations}
}

// Get transformed parameters. Return parameters mapped to the domain (-Inf, Inf).
func (s Shape) Get() []float64 {
	rho := clamp(s.Rho/RhoMax, -seedLimit, seedLimit)
	nu := clamp(2.0*(s.Nu-NuMin)/(NuMax-NuMin)-1.0, -seedLimit, seedLimit)
	return []float64{math.Atanh(rho), math.Atanh(nu)}
}

// Set creates a shape from transformed parameters. The result always lies inside the box.
func (s Shape) Set(p []float64) Shape {
	s.Rho = RhoMax * math.Tanh(p[0])
	if math.Abs(s.Rho) >= RhoMax {
		s.Rho = math.Nextafter(math.Copysign(RhoMax, s.Rho), 0)
	}
	s.Nu = NuMin + (NuMax-NuMin)*0.5*(1.0+math.Tanh(p[1]))
	return s
}

// Calibrate fits (rho, nu) to the smile given by strikes and vols, starting from seed.
func (c *Calibrator) Calibrate(f float64, strikes, vols []float64, t, alpha, beta float64, seed Shape) (Shape, error) {
	if len(strikes) == 0 || len(strikes) != len(vols) {
		return Shape{}, fmt.Errorf("%w: %d strikes, %d vols", ErrBadSmile, len(strikes), len(vols))
	}
	if !(f > 0) || !(t > 0) || !(alpha > 0) {
		return Shape{}, fmt.Errorf("%w: f=%v t=%v alpha=%v", ErrBadSmile, f, t, alpha)
	}

	loss := func(x []float64) float64 {
		return sse(Shape{}.Set(x), f, strikes, vols, t, alpha, beta)
	}
	problem := optimize.Problem{
		Func: loss,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, loss, x, &fd.Settings{Formula: fd.Central})
		},
	}

	x0 := seed.Get()
	res, err := optimize.Minimize(problem, x0, c.settings(), &optimize.LBFGS{})
	if err == nil && res != nil && converged[res.Status] {
		return Shape{}.Set(res.X), nil
	}

	// Retry derivative-free from the best point LBFGS reached.
	if res != nil && len(res.X) == len(x0) && !math.IsNaN(res.F) {
		x0 = res.X
	}
	res, err = optimize.Minimize(problem, x0, c.settings(), &optimize.NelderMead{})
	if err != nil {
		return Shape{}, fmt.Errorf("%w: %v", ErrNoConvergence, err)
	}
	if !converged[res.Status] {
		return Shape{}, fmt.Errorf("%w: status %v", ErrNoConvergence, res.Status)
	}
	return Shape{}.Set(res.X), nil
}

// RMSE between the smile of p and market vols.
func RMSE(p Params, f, t float64, strikes, vols []float64) float64 {
	if len(vols) == 0 || len(strikes) != len(vols) {
		return math.NaN()
	}
	return math.Sqrt(sse(p.Shape(), f, strikes, vols, t, p.Alpha, p.Beta) / float64(len(vols)))
}

func (c *Calibrator) settings() *optimize.Settings {
	iters, evals := c.MaxIterations, c.MaxEvaluations
	if iters <= 0 {
		iters = defaultMaxIterations
	}
	if evals <= 0 {
		evals = defaultMaxEvaluations
	}
	return &optimize.Settings{
		MajorIterations:   iters,
		FuncEvaluations:   evals,
		GradientThreshold: 1e-10,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-14,
			Relative:   1e-10,
			Iterations: 25,
		},
	}
}

// Sum of squared errors between model implied vols and market vols.
func sse(s Shape, f float64, strikes, vols []float64, t, alpha, beta float64) float64 {
	loss := 0.0
	for i := range strikes {
		d := ImpliedVol(f, strikes[i], t, alpha, s.Rho, s.Nu, beta) - vols[i]
		loss += d * d
	}
	return loss
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
