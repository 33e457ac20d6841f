package shear

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"SoilShear/internal/calc/mohr"
	"SoilShear/internal/calc/predict"
	"SoilShear/internal/soil"
)

func ptr(v float64) *float64 { return &v }

// fixedTable answers (20 kPa, 30°) from every model.
func fixedTable() predict.Table {
	t := predict.Table{}
	for _, id := range predict.ModelIDs {
		t[id] = predict.ModelFunc(func(soil.Properties) (soil.Strength, error) {
			return soil.Strength{CohesionKPa: 20, FrictionDeg: 30}, nil
		})
	}
	return t
}

func input(s, target string) Input {
	in := Input{SoilType: s, TargetType: target}
	in.FC, in.WL, in.IP, in.MC, in.SR, in.ROD = ptr(30), ptr(40), ptr(15), ptr(20), ptr(80), ptr(1.6)
	return in
}

func TestCalculateDefaults(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(fixedTable())
	res, err := calc.Calculate(input("argile", "uu"))
	require.NoError(t, err)
	require.True(t, res.Available)
	require.Equal(t, predict.UUArgile, res.Model)
	require.Equal(t, soil.Strength{CohesionKPa: 20, FrictionDeg: 30}, res.Strength)
	require.Equal(t, 150.0, res.Mohr.Sigma1)
	require.Equal(t, 50.0, res.Mohr.Sigma3)
	require.InDelta(t, 0, res.Mohr.CTan, 1e-9)
	require.Len(t, res.Circle, mohr.DefaultSamples)
	require.Len(t, res.Envelope, mohr.DefaultSamples)
	require.Equal(t, res.Mohr.Legend(), res.Legend)
	require.Equal(t, soil.Properties{FC: 30, WL: 40, IP: 15, MC: 20, SR: 80, ROD: 1.6}, res.Vector)
}

func TestCalculateNormalizesChoices(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(fixedTable())
	res, err := calc.Calculate(input(" Sable", "UU"))
	require.NoError(t, err)
	require.Equal(t, soil.Sable, res.Soil)
	require.Equal(t, predict.UULimonMarne, res.Model)
}

func TestCalculateStressOverrides(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(fixedTable())
	calc.Samples = 20
	in := input("argile", "cd")
	in.Sigma1 = ptr(400)
	res, err := calc.Calculate(in)
	require.NoError(t, err)
	require.Equal(t, 400.0, res.Mohr.Sigma1)
	require.Equal(t, 50.0, res.Mohr.Sigma3)
	require.Equal(t, 225.0, res.Mohr.Centre)
	require.Equal(t, 175.0, res.Mohr.Radius)
	require.Len(t, res.Circle, 20)
	require.InDelta(t, 480, res.Envelope[19].Sigma, 1e-9)
}

func TestCalculateUnsupported(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(fixedTable())
	for _, s := range []string{"marne", "limons"} {
		res, err := calc.Calculate(input(s, "cd"))
		require.ErrorIs(t, err, predict.ErrUnsupported)
		require.False(t, res.Available)
		require.Equal(t, soil.Type(s), res.Soil)
	}
}

func TestCalculateValidation(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(fixedTable())
	in := input("argile", "uu")
	in.FC = nil
	_, err := calc.Calculate(in)
	var ve *soil.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "fc", ve.Field)

	in = input("argile", "uu")
	in.Sigma3 = ptr(math.Inf(1))
	_, err = calc.Calculate(in)
	var ie *mohr.InvalidInputError
	require.ErrorAs(t, err, &ie)
}

func TestCalculateModelFailure(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(predict.Table{
		predict.CUArgile: predict.ModelFunc(func(soil.Properties) (soil.Strength, error) {
			return soil.Strength{}, errors.New("model offline")
		}),
	})
	_, err := calc.Calculate(input("argile", "cu"))
	var ce *predict.ComputationError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, predict.CUArgile, ce.Model)
}
