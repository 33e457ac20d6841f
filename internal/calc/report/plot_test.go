package report

import (
	"bytes"
	"testing"

	"github.com/phpdave11/gofpdf"
	"github.com/stretchr/testify/require"

	"SoilShear/internal/calc/mohr"
)

func TestPlotPDF(t *testing.T) {
	t.Parallel()

	c, err := mohr.Solve(20, 30, 150, 50, mohr.DefaultSamples)
	require.NoError(t, err)

	var buf bytes.Buffer
	p := &Plotter{}
	require.NoError(t, p.PlotPDF(&buf, c, DefaultLabels(c)))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPlotPDFExtremeSlope(t *testing.T) {
	t.Parallel()

	c, err := mohr.Solve(0, 89.9, 150, 50, 50)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&Plotter{}).PlotPDF(&buf, c, DefaultLabels(c)))
	require.NotZero(t, buf.Len())
}

func TestDefaultLabels(t *testing.T) {
	t.Parallel()

	c, err := mohr.Solve(20, 30, 150, 50, 2)
	require.NoError(t, err)
	lb := DefaultLabels(c)
	require.Equal(t, "Demi-cercle de Mohr et enveloppe de Coulomb", lb.Title)
	require.Equal(t, "Contrainte normale σ (kPa)", lb.XLabel)
	require.Equal(t, "Cercle de Mohr", lb.CircleLegend)
	require.Contains(t, lb.EnvelopeLegend, "τ = c + σ·tan(φ)\n(c_tan=")
	require.Contains(t, lb.EnvelopeLegend, "φ=30.0°)")
}

func TestTextSpellsOutGreekWithCoreFont(t *testing.T) {
	t.Parallel()

	pdf := gofpdf.New("P", "mm", "A4", "")
	p := &Plotter{}
	require.Equal(t, "sigma tau phi", p.text(pdf, "σ τ φ"))
	require.Equal(t, "σ", (&Plotter{FontPath: "font.ttf"}).text(pdf, "σ"))
}

func TestTicks(t *testing.T) {
	t.Parallel()

	require.Equal(t, 20.0, niceStep(18))
	require.Equal(t, 5.0, niceStep(3.3))
	require.InDelta(t, 0.1, niceStep(0.12), 1e-12)
	require.Equal(t, 100.0, niceStep(80))

	ts := ticks(-9, 189)
	require.Equal(t, []float64{0, 50, 100, 150}, ts)
	require.Equal(t, "0", formatTick(1e-12))
	require.Equal(t, "57.735", formatTick(57.73502))
	require.Equal(t, "2e+17", formatTick(2e17))
}
