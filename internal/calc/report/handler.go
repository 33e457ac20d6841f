package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"

	"SoilShear/internal/calc/shear"
	"SoilShear/internal/metrics"
)

type Input struct {
	Project string      `json:"project"`
	Author  string      `json:"author"`
	Title   string      `json:"title"`
	Notes   string      `json:"notes"`
	Shear   shear.Input `json:"shear"`
}

type Handler struct {
	Calculator *shear.Calculator
	Plotter    *Plotter
}

// Plot renders the Mohr circle and its Coulomb envelope for a shear request.
func (h *Handler) Plot(w http.ResponseWriter, r *http.Request) {
	var input shear.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Calculator.Calculate(input)
	if err != nil {
		shear.WriteError(w, res, err)
		return
	}
	start := time.Now()
	defer metrics.ObserveRender(start)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=\"mohr.pdf\"")
	if err := h.Plotter.PlotPDF(w, res.Mohr, DefaultLabels(res.Mohr)); err != nil {
		log.Printf("plot: %v", err)
		http.Error(w, "Plot generation error", http.StatusInternalServerError)
	}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Shear Strength Report"
	}
	res, err := h.Calculator.Calculate(input.Shear)
	if err != nil {
		shear.WriteError(w, res, err)
		return
	}
	start := time.Now()
	defer metrics.ObserveRender(start)

	ref := uuid.New()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"report-%s.pdf\"", ref))
	if err := h.Plotter.ReportPDF(w, ref.String(), input, res, time.Now()); err != nil {
		log.Printf("report %s: %v", ref, err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
	}
}

// ReportPDF writes an A4 report: header, input vector, predicted strength, envelope
// parameters and the Mohr plot.
func (p *Plotter) ReportPDF(w io.Writer, ref string, input Input, res shear.Result, date time.Time) error {
	pdf := p.newDoc("P", gofpdf.SizeType{Wd: 210, Ht: 297})
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	p.setFont(pdf, "B", 16)
	pdf.SetXY(15, 15)
	pdf.Cell(0, 10, p.text(pdf, input.Title))
	pdf.Ln(12)
	p.setFont(pdf, "", 11)
	pdf.Cell(0, 6, p.text(pdf, fmt.Sprintf("Project: %s", input.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, p.text(pdf, fmt.Sprintf("Author: %s", input.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Reference: %s", ref))
	pdf.Ln(10)

	rows := [][2]string{
		{"Soil type", string(res.Soil)},
		{"Target", string(res.Target)},
		{"Model", string(res.Model)},
		{"FC (%)", fmt.Sprintf("%.2f", res.Vector.FC)},
		{"WL", fmt.Sprintf("%.2f", res.Vector.WL)},
		{"IP", fmt.Sprintf("%.2f", res.Vector.IP)},
		{"MC (%)", fmt.Sprintf("%.2f", res.Vector.MC)},
		{"SR (%)", fmt.Sprintf("%.2f", res.Vector.SR)},
		{"ROD (g/cm³)", fmt.Sprintf("%.3f", res.Vector.ROD)},
		{"σ1 (kPa)", fmt.Sprintf("%.2f", res.Mohr.Sigma1)},
		{"σ3 (kPa)", fmt.Sprintf("%.2f", res.Mohr.Sigma3)},
		{"Cohesion c (kPa)", fmt.Sprintf("%.2f", res.CohesionKPa)},
		{"Friction angle φ (°)", fmt.Sprintf("%.1f", res.FrictionDeg)},
		{"Centre (kPa)", fmt.Sprintf("%.2f", res.Mohr.Centre)},
		{"Radius (kPa)", fmt.Sprintf("%.2f", res.Mohr.Radius)},
		{"tan φ", fmt.Sprintf("%.4f", res.Mohr.Slope)},
		{"c_tan (kPa)", fmt.Sprintf("%.2f", res.Mohr.CTan)},
	}
	p.setFont(pdf, "", 10)
	for _, row := range rows {
		pdf.CellFormat(60, 6, p.text(pdf, row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, p.text(pdf, row[1]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	plotY := pdf.GetY()
	pdf.SetAutoPageBreak(false, 0)
	p.Draw(pdf, 15, plotY, 180, 110, res.Mohr, DefaultLabels(res.Mohr))
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetXY(15, plotY+114)

	if input.Notes != "" {
		p.setFont(pdf, "", 11)
		pdf.MultiCell(0, 6, p.text(pdf, input.Notes), "", "L", false)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(w)
}
