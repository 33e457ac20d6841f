package importer

import (
	"encoding/json"
	"log"
	"net/http"

	"SoilShear/internal/calc/shear"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Calculator *shear.Calculator
}

// Shear computes every row of an uploaded workbook. With ?format=xlsx the results
// are returned as a workbook instead of JSON.
func (h *Handler) Shear(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := Import(h.Calculator, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=\"shear-results.xlsx\"")
		if err := Export(w, res); err != nil {
			log.Printf("import export: %v", err)
			http.Error(w, "Export error", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
