package report

import (
	"fmt"
	"io"
	"iter"
	"math"
	"strings"

	"github.com/phpdave11/gofpdf"

	"SoilShear/internal/calc/mohr"
)

// Labels is the display metadata handed to the renderer with a curve.
type Labels struct {
	Title          string `json:"title"`
	XLabel         string `json:"x_label"`
	YLabel         string `json:"y_label"`
	CircleLegend   string `json:"circle_legend"`
	EnvelopeLegend string `json:"envelope_legend"`
}

func DefaultLabels(c mohr.Curve) Labels {
	return Labels{
		Title:          "Demi-cercle de Mohr et enveloppe de Coulomb",
		XLabel:         "Contrainte normale σ (kPa)",
		YLabel:         "Contrainte tangentielle τ (kPa)",
		CircleLegend:   "Cercle de Mohr",
		EnvelopeLegend: strings.Replace(c.Legend(), " (", "\n(", 1),
	}
}

// Plotter draws Mohr plots with gofpdf. With FontPath set, the TTF is embedded and
// Greek letters are printed as is; otherwise the core Helvetica font is used and
// they are spelled out.
type Plotter struct {
	FontPath string
	Title    string
}

const (
	plotWidthMM  = 127 // 5 in
	plotHeightMM = 76.2
	fontFamily   = "plotfont"
)

var greek = strings.NewReplacer("σ", "sigma", "τ", "tau", "φ", "phi")

type bounds struct {
	xmin, xmax, ymin, ymax float64
}

func (b *bounds) add(p mohr.Point) {
	if math.IsNaN(p.Sigma) || math.IsNaN(p.Tau) || math.IsInf(p.Sigma, 0) || math.IsInf(p.Tau, 0) {
		return
	}
	b.xmin = math.Min(b.xmin, p.Sigma)
	b.xmax = math.Max(b.xmax, p.Sigma)
	b.ymin = math.Min(b.ymin, p.Tau)
	b.ymax = math.Max(b.ymax, p.Tau)
}

func (b *bounds) pad() {
	if b.xmax-b.xmin == 0 {
		b.xmax++
	}
	if b.ymax-b.ymin == 0 {
		b.ymax++
	}
	dx := 0.05 * (b.xmax - b.xmin)
	dy := 0.05 * (b.ymax - b.ymin)
	b.xmin, b.xmax = b.xmin-dx, b.xmax+dx
	b.ymin, b.ymax = b.ymin-dy, b.ymax+dy
}

func (p *Plotter) newDoc(orientation string, size gofpdf.SizeType) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if p.FontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", p.FontPath)
	}
	return pdf
}

// text prepares a label for the current font.
func (p *Plotter) text(pdf *gofpdf.Fpdf, s string) string {
	if p.FontPath != "" {
		return s
	}
	return pdf.UnicodeTranslatorFromDescriptor("")(greek.Replace(s))
}

func (p *Plotter) setFont(pdf *gofpdf.Fpdf, style string, size float64) {
	if p.FontPath != "" {
		pdf.SetFont(fontFamily, "", size)
		return
	}
	pdf.SetFont("Helvetica", style, size)
}

// Draw renders the semicircle, the dashed envelope, axes through the origin, a grid and
// the legend inside the box (x, y, w, h).
func (p *Plotter) Draw(pdf *gofpdf.Fpdf, x, y, w, h float64, c mohr.Curve, lb Labels) {
	if p.Title != "" && lb.Title == "" {
		lb.Title = p.Title
	}
	b := bounds{}
	for pt := range c.Circle() {
		b.add(pt)
	}
	for pt := range c.Envelope() {
		b.add(pt)
	}
	b.pad()

	// frame inside the box, leaving room for title and axis labels
	fx, fy := x+14, y+8
	fw, fh := w-18, h-18
	px := func(s float64) float64 { return fx + (s-b.xmin)/(b.xmax-b.xmin)*fw }
	py := func(t float64) float64 { return fy + fh - (t-b.ymin)/(b.ymax-b.ymin)*fh }

	p.setFont(pdf, "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y+1)
	pdf.CellFormat(w, 5, p.text(pdf, lb.Title), "", 0, "C", false, 0, "")

	// grid and tick labels
	p.setFont(pdf, "", 6)
	pdf.SetLineWidth(0.1)
	pdf.SetDrawColor(220, 220, 220)
	for _, s := range ticks(b.xmin, b.xmax) {
		pdf.Line(px(s), fy, px(s), fy+fh)
		pdf.SetXY(px(s)-8, fy+fh+0.5)
		pdf.CellFormat(16, 3, formatTick(s), "", 0, "C", false, 0, "")
	}
	for _, t := range ticks(b.ymin, b.ymax) {
		pdf.Line(fx, py(t), fx+fw, py(t))
		pdf.SetXY(fx-13, py(t)-1.5)
		pdf.CellFormat(12, 3, formatTick(t), "", 0, "R", false, 0, "")
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Rect(fx, fy, fw, fh, "D")
	pdf.ClipRect(fx, fy, fw, fh, false)
	if b.ymin <= 0 && b.ymax >= 0 {
		pdf.Line(fx, py(0), fx+fw, py(0))
	}
	if b.xmin <= 0 && b.xmax >= 0 {
		pdf.Line(px(0), fy, px(0), fy+fh)
	}

	pdf.SetLineWidth(0.4)
	pdf.SetDrawColor(31, 119, 180)
	polyline(pdf, c.Circle(), px, py)

	pdf.SetDrawColor(255, 111, 0)
	pdf.SetDashPattern([]float64{1.5, 1}, 0)
	polyline(pdf, c.Envelope(), px, py)
	pdf.SetDashPattern([]float64{}, 0)
	pdf.ClipEnd()

	p.setFont(pdf, "", 7)
	pdf.SetXY(fx, fy+fh+4)
	pdf.CellFormat(fw, 4, p.text(pdf, lb.XLabel), "", 0, "C", false, 0, "")
	pdf.TransformBegin()
	pdf.TransformRotate(90, x+2, fy+fh/2)
	pdf.SetXY(x+2-fh/2, fy+fh/2-2)
	pdf.CellFormat(fh, 4, p.text(pdf, lb.YLabel), "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	p.legend(pdf, fx+2, fy+2, lb)
}

func (p *Plotter) legend(pdf *gofpdf.Fpdf, x, y float64, lb Labels) {
	p.setFont(pdf, "", 6)
	lines := strings.Split(lb.EnvelopeLegend, "\n")
	width := pdf.GetStringWidth(p.text(pdf, lb.CircleLegend))
	for _, l := range lines {
		width = math.Max(width, pdf.GetStringWidth(p.text(pdf, l)))
	}
	height := 3.0 * float64(1+len(lines))
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, width+12, height+2, "FD")

	pdf.SetLineWidth(0.4)
	pdf.SetDrawColor(31, 119, 180)
	pdf.Line(x+1.5, y+2.5, x+7.5, y+2.5)
	pdf.SetXY(x+9, y+1)
	pdf.CellFormat(width, 3, p.text(pdf, lb.CircleLegend), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(255, 111, 0)
	pdf.SetDashPattern([]float64{1.5, 1}, 0)
	pdf.Line(x+1.5, y+5.5, x+7.5, y+5.5)
	pdf.SetDashPattern([]float64{}, 0)
	for i, l := range lines {
		pdf.SetXY(x+9, y+4+3*float64(i))
		pdf.CellFormat(width, 3, p.text(pdf, l), "", 0, "L", false, 0, "")
	}
}

// PlotPDF writes a single-page plot, the size of a 5x3 in figure.
func (p *Plotter) PlotPDF(w io.Writer, c mohr.Curve, lb Labels) error {
	pdf := p.newDoc("P", gofpdf.SizeType{Wd: plotWidthMM, Ht: plotHeightMM})
	pdf.AddPage()
	p.Draw(pdf, 0, 0, plotWidthMM, plotHeightMM, c, lb)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render plot: %w", err)
	}
	return pdf.Output(w)
}

func polyline(pdf *gofpdf.Fpdf, pts iter.Seq[mohr.Point], px, py func(float64) float64) {
	first := true
	for pt := range pts {
		if first {
			pdf.MoveTo(px(pt.Sigma), py(pt.Tau))
			first = false
			continue
		}
		pdf.LineTo(px(pt.Sigma), py(pt.Tau))
	}
	if !first {
		pdf.DrawPath("D")
	}
}

func ticks(lo, hi float64) []float64 {
	step := niceStep((hi - lo) / 5)
	var out []float64
	for v := math.Ceil(lo/step) * step; v <= hi && len(out) < 50; v += step {
		out = append(out, v)
	}
	return out
}

func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	f := raw / mag
	switch {
	case f < 1.5:
		return mag
	case f < 3:
		return 2 * mag
	case f < 7:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func formatTick(v float64) string {
	if math.Abs(v) < 1e-9 {
		return "0"
	}
	if math.Abs(v) >= 1e5 {
		return fmt.Sprintf("%.0e", v)
	}
	return fmt.Sprintf("%g", math.Round(v*1000)/1000)
}
