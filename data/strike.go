package data

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrRootNotFound is returned when the delta inversion has no root in its bracket.
var ErrRootNotFound = errors.New("strike root not found")

const (
	strikeEps      = 1e-10
	strikeLower    = 1e-6
	strikeUpper    = 100.0 // multiple of the forward
	maxBisections  = 200
	deltaTolerance = 1e-13
)

// ForwardDelta is the undiscounted Black delta at strike k. Puts return the magnitude 1 - Phi(d1).
// The second value is false when the inputs admit no delta.
func ForwardDelta(k, flatVol, t, forward float64, isCall bool) (float64, bool) {
	if k <= strikeEps || forward <= strikeEps || !(flatVol > 0) || !(t > 0) {
		return 0, false
	}
	x := flatVol * math.Sqrt(t)
	d1 := (math.Log(forward/k) + 0.5*x*x) / x
	if math.IsNaN(d1) {
		return 0, false
	}
	if isCall {
		return distuv.UnitNormal.CDF(d1), true
	}
	return distuv.UnitNormal.CDF(-d1), true
}

// SolveStrike finds the strike whose forward delta magnitude equals targetAbsDelta,
// bisecting over (1e-6, 100*forward).
func SolveStrike(targetAbsDelta, flatVol, t, forward float64, isCall bool) (float64, error) {
	if !(targetAbsDelta > 0 && targetAbsDelta < 1) {
		return 0, fmt.Errorf("%w: delta %v outside (0, 1)", ErrRootNotFound, targetAbsDelta)
	}
	if !(forward > 0) || math.IsInf(forward, 0) || !(flatVol > 0) || !(t > 0) {
		return 0, fmt.Errorf("%w: forward=%v vol=%v t=%v", ErrRootNotFound, forward, flatVol, t)
	}

	g := func(k float64) (float64, bool) {
		d, ok := ForwardDelta(k, flatVol, t, forward, isCall)
		return d - targetAbsDelta, ok
	}

	lo, hi := strikeLower, strikeUpper*forward
	glo, okLo := g(lo)
	ghi, okHi := g(hi)
	if !okLo || !okHi {
		return 0, fmt.Errorf("%w: invalid bracket [%v, %v]", ErrRootNotFound, lo, hi)
	}
	if glo == 0 {
		return lo, nil
	}
	if ghi == 0 {
		return hi, nil
	}
	if math.Signbit(glo) == math.Signbit(ghi) {
		return 0, fmt.Errorf("%w: no sign change in [%v, %v]", ErrRootNotFound, lo, hi)
	}

	for i := 0; i < maxBisections; i++ {
		mid := 0.5 * (lo + hi)
		gm, ok := g(mid)
		if !ok {
			return 0, fmt.Errorf("%w: invalid delta at %v", ErrRootNotFound, mid)
		}
		// interval exhausted at machine precision
		if math.Abs(gm) <= deltaTolerance || mid <= lo || mid >= hi {
			return mid, nil
		}
		if math.Signbit(gm) == math.Signbit(glo) {
			lo, glo = mid, gm
		} else {
			hi = mid
		}
	}
	return 0, fmt.Errorf("%w: %d iterations exceeded", ErrRootNotFound, maxBisections)
}
