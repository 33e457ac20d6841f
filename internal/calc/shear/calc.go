package shear

import (
	"SoilShear/internal/calc/mohr"
	"SoilShear/internal/calc/predict"
	"SoilShear/internal/metrics"
	"SoilShear/internal/soil"
)

type Input struct {
	SoilType   string `json:"soil_type"`
	TargetType string `json:"target_type"`
	soil.Input
	Sigma1 *float64 `json:"sigma1,omitempty"`
	Sigma3 *float64 `json:"sigma3,omitempty"`
}

type Result struct {
	Available bool            `json:"available"`
	Soil      soil.Type       `json:"soil"`
	Target    soil.Target     `json:"target"`
	Model     predict.ModelID `json:"model"`
	Vector    soil.Properties `json:"vector"`
	soil.Strength
	Mohr     mohr.Curve   `json:"mohr"`
	Circle   []mohr.Point `json:"circle"`
	Envelope []mohr.Point `json:"envelope"`
	Legend   string       `json:"legend"`
}

type Calculator struct {
	Dispatcher *predict.Dispatcher
	Stresses   mohr.Stresses
	Samples    int
}

func NewCalculator(models predict.Table) *Calculator {
	return &Calculator{
		Dispatcher: predict.NewDispatcher(models),
		Stresses:   mohr.DefaultStresses(),
		Samples:    mohr.DefaultSamples,
	}
}

// Prepare resolves the request into the values the core works on: the selected soil and
// target, the validated vector (SR defaulted) and the stress pair (defaulted per field).
func (c *Calculator) Prepare(in Input) (soil.Type, soil.Target, soil.Properties, mohr.Stresses, error) {
	s := soil.Type(soil.Normalize(in.SoilType))
	t := soil.Target(soil.Normalize(in.TargetType))
	props, err := in.Input.Properties()
	if err != nil {
		return s, t, soil.Properties{}, mohr.Stresses{}, err
	}
	st := c.Stresses
	if in.Sigma1 != nil {
		st.Sigma1 = *in.Sigma1
	}
	if in.Sigma3 != nil {
		st.Sigma3 = *in.Sigma3
	}
	return s, t, props, st, nil
}

// Calculate predicts (c, φ) and derives the Mohr circle with its tangent envelope.
func (c *Calculator) Calculate(in Input) (Result, error) {
	s, t, props, st, err := c.Prepare(in)
	if err != nil {
		metrics.ObservePrediction(t, s, err)
		return Result{Soil: s, Target: t}, err
	}
	strength, id, err := c.Dispatcher.Predict(s, t, props)
	metrics.ObservePrediction(t, s, err)
	if err != nil {
		return Result{Soil: s, Target: t, Vector: props}, err
	}
	curve, err := mohr.Solve(strength.CohesionKPa, strength.FrictionDeg, st.Sigma1, st.Sigma3, c.samples())
	if err != nil {
		return Result{Soil: s, Target: t, Vector: props, Strength: strength}, err
	}
	return Result{
		Available: true,
		Soil:      s,
		Target:    t,
		Model:     id,
		Vector:    props,
		Strength:  strength,
		Mohr:      curve,
		Circle:    curve.CirclePoints(),
		Envelope:  curve.EnvelopePoints(),
		Legend:    curve.Legend(),
	}, nil
}

func (c *Calculator) samples() int {
	if c.Samples == 0 {
		return mohr.DefaultSamples
	}
	return c.Samples
}
