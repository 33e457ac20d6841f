package predict

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"SoilShear/internal/soil"
)

var sample = soil.Properties{FC: 30, WL: 40, IP: 15, MC: 20, SR: 80, ROD: 1.6}

// recordingTable returns a table whose models record which one ran.
func recordingTable(calls *[]ModelID) Table {
	t := Table{}
	for _, id := range ModelIDs {
		t[id] = ModelFunc(func(p soil.Properties) (soil.Strength, error) {
			*calls = append(*calls, id)
			return soil.Strength{CohesionKPa: 10, FrictionDeg: 25}, nil
		})
	}
	return t
}

func TestDispatchTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		target soil.Target
		soil   soil.Type
		want   ModelID
	}{
		{soil.TargetUU, soil.Argile, UUArgile},
		{soil.TargetUU, soil.Limons, UULimonMarne},
		{soil.TargetUU, soil.Marne, UULimonMarne},
		{soil.TargetUU, soil.Sable, UULimonMarne},
		{soil.TargetCU, soil.Argile, CUArgile},
		{soil.TargetCU, soil.Limons, CULimonMarne},
		{soil.TargetCU, soil.Marne, CULimonMarne},
		{soil.TargetCU, soil.Sable, CULimonMarne},
		{soil.TargetCD, soil.Argile, CDArgile},
		{soil.TargetCD, soil.Sable, CDSable},
	}
	for _, tc := range cases {
		t.Run(string(tc.target)+"_"+string(tc.soil), func(t *testing.T) {
			var calls []ModelID
			d := NewDispatcher(recordingTable(&calls))
			res, id, err := d.Predict(tc.soil, tc.target, sample)
			require.NoError(t, err)
			require.Equal(t, tc.want, id)
			require.Equal(t, []ModelID{tc.want}, calls)
			require.Equal(t, soil.Strength{CohesionKPa: 10, FrictionDeg: 25}, res)
		})
	}
}

func TestDispatchUUSableUsesLimonMarne(t *testing.T) {
	t.Parallel()

	var calls []ModelID
	d := NewDispatcher(recordingTable(&calls))
	_, id, err := d.Predict(soil.Sable, soil.TargetUU, sample)
	require.NoError(t, err)
	require.Equal(t, UULimonMarne, id)
	require.Equal(t, []ModelID{UULimonMarne}, calls)
}

func TestDispatchUnsupported(t *testing.T) {
	t.Parallel()

	cases := []struct {
		target soil.Target
		soil   soil.Type
	}{
		{soil.TargetCD, soil.Marne},
		{soil.TargetCD, soil.Limons},
		{"xx", soil.Argile},
		{"", soil.Sable},
		{soil.TargetUU, "argil"},
		{soil.TargetCU, ""},
	}
	for _, tc := range cases {
		t.Run(string(tc.target)+"_"+string(tc.soil), func(t *testing.T) {
			var calls []ModelID
			d := NewDispatcher(recordingTable(&calls))
			_, _, err := d.Predict(tc.soil, tc.target, sample)
			require.ErrorIs(t, err, ErrUnsupported)
			var ue *UnsupportedError
			require.ErrorAs(t, err, &ue)
			require.Equal(t, tc.soil, ue.Soil)
			require.Empty(t, calls)
		})
	}
}

func TestUnsupportedSuggestion(t *testing.T) {
	t.Parallel()

	_, err := Select(soil.TargetUU, "argil")
	require.ErrorContains(t, err, `did you mean soil "argile"`)

	_, err = Select("UU ", soil.Argile)
	require.ErrorContains(t, err, `did you mean target "uu"`)

	_, err = Select(soil.TargetCD, soil.Marne)
	require.NotContains(t, err.Error(), "did you mean")
}

func TestDispatchValidatesBeforeSelecting(t *testing.T) {
	t.Parallel()

	var calls []ModelID
	d := NewDispatcher(recordingTable(&calls))
	bad := sample
	bad.ROD = 3
	_, _, err := d.Predict(soil.Argile, soil.TargetUU, bad)
	var ve *soil.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Empty(t, calls)
}

func TestDispatchComputationErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	d := NewDispatcher(Table{
		UUArgile: ModelFunc(func(soil.Properties) (soil.Strength, error) {
			return soil.Strength{}, boom
		}),
		CUArgile: ModelFunc(func(soil.Properties) (soil.Strength, error) {
			return soil.Strength{CohesionKPa: math.NaN(), FrictionDeg: 30}, nil
		}),
		CDArgile: ModelFunc(func(soil.Properties) (soil.Strength, error) {
			return soil.Strength{CohesionKPa: 5, FrictionDeg: math.Inf(1)}, nil
		}),
	})

	var ce *ComputationError

	_, _, err := d.Predict(soil.Argile, soil.TargetUU, sample)
	require.ErrorAs(t, err, &ce)
	require.Equal(t, UUArgile, ce.Model)
	require.ErrorIs(t, err, boom)

	_, _, err = d.Predict(soil.Argile, soil.TargetCU, sample)
	require.ErrorAs(t, err, &ce)
	require.Equal(t, CUArgile, ce.Model)

	_, _, err = d.Predict(soil.Argile, soil.TargetCD, sample)
	require.ErrorAs(t, err, &ce)

	// registered table lacks cd_sable
	_, id, err := d.Predict(soil.Sable, soil.TargetCD, sample)
	require.ErrorAs(t, err, &ce)
	require.Equal(t, CDSable, id)
}
