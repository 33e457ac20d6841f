package predict

import (
	"fmt"

	"SoilShear/internal/soil"
)

// LinearModel predicts each output as intercept + Σ coef·x over (FC, WL, IP, MC, SR, ROD).
type LinearModel struct {
	Cohesion [7]float64 `mapstructure:"cohesion" json:"cohesion"`
	Friction [7]float64 `mapstructure:"friction" json:"friction"`
}

func (m LinearModel) Predict(p soil.Properties) (soil.Strength, error) {
	x := p.Values()
	c := m.Cohesion[0]
	phi := m.Friction[0]
	for i, v := range x {
		c += m.Cohesion[i+1] * v
		phi += m.Friction[i+1] * v
	}
	return soil.Strength{CohesionKPa: c, FrictionDeg: phi}, nil
}

// Placeholder coefficients so the service runs end to end. They are not calibrated
// and should be replaced through the models.* configuration keys.
var defaultCoefficients = map[ModelID]LinearModel{
	UUArgile: {
		Cohesion: [7]float64{20, 0.10, 0.35, 0.60, -0.45, 0.05, 8},
		Friction: [7]float64{22, -0.05, -0.08, -0.20, -0.15, -0.02, 3},
	},
	UULimonMarne: {
		Cohesion: [7]float64{12, 0.08, 0.25, 0.40, -0.30, 0.04, 6},
		Friction: [7]float64{26, -0.06, -0.06, -0.15, -0.12, -0.02, 4},
	},
	CUArgile: {
		Cohesion: [7]float64{10, 0.06, 0.20, 0.35, -0.20, 0.03, 5},
		Friction: [7]float64{24, -0.04, -0.07, -0.18, -0.10, -0.01, 3},
	},
	CULimonMarne: {
		Cohesion: [7]float64{6, 0.05, 0.15, 0.25, -0.15, 0.02, 4},
		Friction: [7]float64{28, -0.05, -0.05, -0.14, -0.08, -0.01, 3},
	},
	CDArgile: {
		Cohesion: [7]float64{5, 0.04, 0.10, 0.20, -0.10, 0.01, 3},
		Friction: [7]float64{26, -0.03, -0.06, -0.16, -0.06, -0.01, 2},
	},
	CDSable: {
		Cohesion: [7]float64{1, 0.02, 0.02, 0.05, -0.02, 0, 1},
		Friction: [7]float64{30, -0.08, -0.02, -0.05, -0.05, -0.01, 4},
	},
}

// DefaultTable returns the placeholder linear models.
func DefaultTable() Table {
	t := make(Table, len(defaultCoefficients))
	for id, m := range defaultCoefficients {
		t[id] = m
	}
	return t
}

// LinearTable builds a table from configured coefficients, falling back to the
// placeholder model for IDs that are not configured.
func LinearTable(overrides map[string]LinearModel) (Table, error) {
	t := DefaultTable()
	for name, m := range overrides {
		id := ModelID(soil.Normalize(name))
		if _, ok := defaultCoefficients[id]; !ok {
			return nil, fmt.Errorf("unknown model %q", name)
		}
		t[id] = m
	}
	return t, nil
}
