package data

import (
	"fmt"
	"math"
	"time"

	"github.com/dontcallmebro/BQL-APP/sabr"
)

// DeltaBucket identifies one of the five quoted points of a smile.
type DeltaBucket int

const (
	Put10 DeltaBucket = iota
	Put25
	ATM
	Call25
	Call10
)

// Buckets lists the quoted points from the lowest to the highest strike.
var Buckets = [...]DeltaBucket{Put10, Put25, ATM, Call25, Call10}

var bucketNames = [...]string{"put10", "put25", "atm", "call25", "call10"}

func (b DeltaBucket) String() string {
	if b < Put10 || b > Call10 {
		return fmt.Sprintf("bucket(%d)", int(b))
	}
	return bucketNames[b]
}

// Delta returns the absolute forward delta of the bucket and whether it is quoted on a call.
// ATM is quoted at the forward and carries no delta target.
func (b DeltaBucket) Delta() (float64, bool) {
	switch b {
	case Put10:
		return 0.10, false
	case Put25:
		return 0.25, false
	case Call25:
		return 0.25, true
	case Call10:
		return 0.10, true
	}
	return 0.5, true
}

// VolQuote is a single implied vol observation in percentage points.
type VolQuote struct {
	Date   time.Time
	Tenor  string
	Bucket DeltaBucket
	Vol    float64
}

// Row is the input record for one (date, tenor). Vols are in percentage points, NaN marks a missing quote.
type Row struct {
	Date    time.Time `json:"date"`
	Tenor   string    `json:"tenor"`
	Forward float64   `json:"forward"`
	ATM     float64   `json:"atm"`
	Call25  float64   `json:"call25"`
	Put25   float64   `json:"put25"`
	Call10  float64   `json:"call10"`
	Put10   float64   `json:"put10"`
}

// Vol returns the quote of bucket b.
func (r Row) Vol(b DeltaBucket) float64 {
	switch b {
	case Put10:
		return r.Put10
	case Put25:
		return r.Put25
	case ATM:
		return r.ATM
	case Call25:
		return r.Call25
	case Call10:
		return r.Call10
	}
	return math.NaN()
}

// Quotes splits the row into its five quotes, ordered by bucket.
func (r Row) Quotes() []VolQuote {
	out := make([]VolQuote, 0, len(Buckets))
	for _, b := range Buckets {
		out = append(out, VolQuote{Date: r.Date, Tenor: r.Tenor, Bucket: b, Vol: r.Vol(b)})
	}
	return out
}

// SmilePoint is a strike with its model vol.
type SmilePoint struct {
	Strike float64 `json:"strike"`
	Vol    float64 `json:"vol"`
}

// CalibrationResult is the output for one successfully calibrated row.
// Strikes are in the units of Forward, ordered Put10 to Call10. Rho and Nu are scaled by 100.
// Alpha is expressed against Forward so the smile can be re-evaluated without rescaling.
type CalibrationResult struct {
	Date    time.Time  `json:"date"`
	Tenor   string     `json:"tenor"`
	Forward float64    `json:"forward"`
	Strikes [5]float64 `json:"strikes"`
	Rho     float64    `json:"rho"`
	Nu      float64    `json:"nu"`
	Alpha   float64    `json:"alpha"`
	Beta    float64    `json:"beta"`
	T       float64    `json:"t"`
	RMSE    float64    `json:"rmse"`
}

// Params returns the fitted model with rho and nu back on their natural scale.
func (c CalibrationResult) Params() sabr.Params {
	return sabr.Params{Alpha: c.Alpha, Beta: c.Beta, Rho: c.Rho / 100.0, Nu: c.Nu / 100.0}
}

// Smile evaluates the fitted model at the recovered strikes.
func (c CalibrationResult) Smile() []SmilePoint {
	p := c.Params()
	out := make([]SmilePoint, len(c.Strikes))
	for i, k := range c.Strikes {
		out[i] = SmilePoint{Strike: k, Vol: p.Vol(c.Forward, k, c.T)}
	}
	return out
}
