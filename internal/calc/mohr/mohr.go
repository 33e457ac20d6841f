package mohr

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

const (
	DefaultSigma1  = 150.0
	DefaultSigma3  = 50.0
	DefaultSamples = 300

	// envelope is drawn from σ=0 to this multiple of σ1
	envelopeSpan = 1.2
)

type Point struct {
	Sigma float64 `json:"sigma"`
	Tau   float64 `json:"tau"`
}

// Stresses are the major and minor principal stresses in kPa.
// Sigma1 >= Sigma3 is the caller's responsibility; the pair is never swapped.
type Stresses struct {
	Sigma1 float64 `json:"sigma1"`
	Sigma3 float64 `json:"sigma3"`
}

func DefaultStresses() Stresses {
	return Stresses{Sigma1: DefaultSigma1, Sigma3: DefaultSigma3}
}

type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Curve is the Mohr semicircle for (σ1, σ3) with the Coulomb line of slope tan φ tangent to it.
// Points are generated on demand; every call to Circle or Envelope starts a fresh sequence.
type Curve struct {
	CohesionKPa float64 `json:"cohesion_kpa"`
	FrictionDeg float64 `json:"friction_deg"`
	Sigma1      float64 `json:"sigma1"`
	Sigma3      float64 `json:"sigma3"`
	Centre      float64 `json:"centre"`
	Radius      float64 `json:"radius"`
	Slope       float64 `json:"slope"`
	CTan        float64 `json:"c_tan"`
	Samples     int     `json:"samples"`
}

// Solve computes the circle geometry and the intercept c_tan of the line τ = c_tan + m·σ,
// m = tan φ, whose distance to (centre, 0) equals the radius, on the branch above the circle.
// φ close to 90° is not special-cased.
func Solve(c, phiDeg, sigma1, sigma3 float64, samples int) (Curve, error) {
	if math.IsNaN(sigma1) || math.IsInf(sigma1, 0) {
		return Curve{}, &InvalidInputError{Field: "sigma1", Reason: "not a finite number"}
	}
	if math.IsNaN(sigma3) || math.IsInf(sigma3, 0) {
		return Curve{}, &InvalidInputError{Field: "sigma3", Reason: "not a finite number"}
	}
	if samples < 2 {
		return Curve{}, &InvalidInputError{Field: "samples", Reason: fmt.Sprintf("%d < 2", samples)}
	}

	phi := phiDeg * math.Pi / 180
	centre := (sigma1 + sigma3) / 2
	radius := (sigma1 - sigma3) / 2
	m := math.Tan(phi)
	cTan := radius*math.Sqrt(1+m*m) - m*centre

	return Curve{
		CohesionKPa: c,
		FrictionDeg: phiDeg,
		Sigma1:      sigma1,
		Sigma3:      sigma3,
		Centre:      centre,
		Radius:      radius,
		Slope:       m,
		CTan:        cTan,
		Samples:     samples,
	}, nil
}

// Circle yields the upper semicircle, θ uniform over [0, π].
func (c Curve) Circle() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for i := range c.Samples {
			theta := linspace(0, math.Pi, i, c.Samples)
			p := Point{
				Sigma: c.Centre + c.Radius*math.Cos(theta),
				Tau:   c.Radius * math.Sin(theta),
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Envelope yields the tangent line over σ ∈ [0, 1.2·σ1].
func (c Curve) Envelope() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for i := range c.Samples {
			s := linspace(0, envelopeSpan*c.Sigma1, i, c.Samples)
			if !yield(Point{Sigma: s, Tau: c.CTan + c.Slope*s}) {
				return
			}
		}
	}
}

func (c Curve) CirclePoints() []Point   { return slices.Collect(c.Circle()) }
func (c Curve) EnvelopePoints() []Point { return slices.Collect(c.Envelope()) }

// Legend is the envelope label with c_tan to 2 decimals and φ to 1 decimal.
func (c Curve) Legend() string {
	return fmt.Sprintf("τ = c + σ·tan(φ) (c_tan=%.2f kPa, φ=%.1f°)", c.CTan, c.FrictionDeg)
}

func linspace(lo, hi float64, i, n int) float64 {
	if i == n-1 {
		return hi
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}
