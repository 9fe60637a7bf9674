package sabr

import "math"

// Eps is the threshold below which forward, strike, expiry and the z/x(z) denominator
// are treated as degenerate.
const Eps = 1e-10

// Box for the two free parameters.
const (
	RhoMax = 0.999
	NuMin  = 1e-8
	NuMax  = 3.0
)

// Define SABR model. Beta is exogenous and never fitted.
type Params struct {
	Alpha, Beta, Rho, Nu float64
}

// Shape holds the two fitted parameters of the smile.
type Shape struct {
	Rho, Nu float64
}

// DefaultShape seeds a calibration when no warm start exists.
var DefaultShape = Shape{Rho: 0.0, Nu: 0.5}

// Compute model implied volatility at strike k.
func (p Params) Vol(f, k, t float64) float64 {
	return ImpliedVol(f, k, t, p.Alpha, p.Rho, p.Nu, p.Beta)
}

// Smile evaluates the model at each strike.
func (p Params) Smile(f, t float64, strikes []float64) []float64 {
	out := make([]float64, len(strikes))
	for i, k := range strikes {
		out[i] = p.Vol(f, k, t)
	}
	return out
}

// Shape returns the free parameters of p.
func (p Params) Shape() Shape {
	return Shape{Rho: p.Rho, Nu: p.Nu}
}

// ImpliedVol is the Hagan et al. lognormal asymptotic expansion of the SABR smile.
// Degenerate inputs fall back to alpha or to the leading ATM term alpha/F^(1-beta).
func ImpliedVol(f, k, t, alpha, rho, nu, beta float64) float64 {
	if f <= Eps || k <= Eps || t <= Eps {
		return alpha
	}
	atm := alpha / math.Pow(f, 1.0-beta)
	if math.Abs(f-k) <= Eps {
		return atm
	}

	b1 := 1.0 - beta
	b2 := b1 * b1
	logFK := math.Log(f / k)
	logFK2 := logFK * logFK
	fk := math.Pow(f*k, 0.5*b1)

	z := nu / alpha * fk * logFK
	x := math.Log((math.Sqrt(1.0-2.0*rho*z+z*z) + z - rho) / (1.0 - rho))
	if math.Abs(x) <= Eps || math.IsNaN(x) {
		return atm
	}

	a := alpha / (fk * (1.0 + b2/24.0*logFK2 + b2*b2/1920.0*logFK2*logFK2))
	b := 1.0 + (b2/24.0*alpha*alpha/(fk*fk)+0.25*rho*beta*nu*alpha/fk+(2.0-3.0*rho*rho)/24.0*nu*nu)*t

	vol := a * (z / x) * b
	if !(vol > 0.0) || math.IsInf(vol, 0) {
		return atm
	}
	return vol
}
