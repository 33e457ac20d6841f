package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"SoilShear/internal/calc/shear"
)

// Columns of an import sheet; the first row is a header and is skipped.
// sigma1 and sigma3 may be left empty, as may SR.
var Columns = []string{"soil", "target", "FC", "WL", "IP", "MC", "SR", "ROD", "sigma1", "sigma3"}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ShearImportResult struct {
	Count   int            `json:"count"`
	Results []shear.Result `json:"results"`
	Rows    []int          `json:"rows"`
	Skipped []RowError     `json:"skipped"`
}

// Import reads the first sheet of an xlsx workbook and computes every row.
// Rows that cannot be parsed or computed are reported in Skipped with their sheet row number.
func Import(calc *shear.Calculator, r io.Reader) (ShearImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ShearImportResult{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return ShearImportResult{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return ShearImportResult{}, fmt.Errorf("empty sheet")
	}

	out := ShearImportResult{}
	for i := 1; i < len(rows); i++ {
		rowNum := i + 1
		if blank(rows[i]) {
			continue
		}
		input, err := parseShearRow(rows[i])
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		res, err := calc.Calculate(input)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		out.Results = append(out.Results, res)
		out.Rows = append(out.Rows, rowNum)
	}
	out.Count = len(out.Results)
	return out, nil
}

func parseShearRow(row []string) (shear.Input, error) {
	if len(row) < 8 {
		return shear.Input{}, fmt.Errorf("expected at least 8 columns, got %d", len(row))
	}
	in := shear.Input{SoilType: row[0], TargetType: row[1]}
	fields := []**float64{&in.FC, &in.WL, &in.IP, &in.MC, &in.SR, &in.ROD, &in.Sigma1, &in.Sigma3}
	for k, dst := range fields {
		col := k + 2
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			continue
		}
		v, err := toFloat(row[col])
		if err != nil {
			return shear.Input{}, fmt.Errorf("column %s: %w", Columns[col], err)
		}
		*dst = &v
	}
	return in, nil
}

// toFloat accepts both decimal point and decimal comma.
func toFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var resultColumns = []string{"row", "soil", "target", "model", "FC", "WL", "IP", "MC", "SR", "ROD",
	"sigma1", "sigma3", "cohesion_kpa", "friction_deg", "tan_phi", "c_tan_kpa"}

// Export writes computed rows to a "Results" sheet and skipped rows to an "Errors" sheet.
func Export(w io.Writer, res ShearImportResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, toCells(resultColumns)); err != nil {
		return err
	}
	for i, r := range res.Results {
		v := r.Vector
		cells := []any{res.Rows[i], string(r.Soil), string(r.Target), string(r.Model),
			v.FC, v.WL, v.IP, v.MC, v.SR, v.ROD,
			r.Mohr.Sigma1, r.Mohr.Sigma3, r.CohesionKPa, r.FrictionDeg, r.Mohr.Slope, r.Mohr.CTan}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}

	if len(res.Skipped) > 0 {
		const errSheet = "Errors"
		if _, err := f.NewSheet(errSheet); err != nil {
			return err
		}
		if err := setRow(f, errSheet, 1, []any{"row", "message"}); err != nil {
			return err
		}
		for i, s := range res.Skipped {
			if err := setRow(f, errSheet, i+2, []any{s.Row, s.Message}); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toCells(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
