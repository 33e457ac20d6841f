package batch

import (
	"encoding/json"
	"errors"
	"net/http"

	"SoilShear/internal/calc/shear"
)

type Handler struct {
	Calculator *shear.Calculator
}

func (h *Handler) Shear(w http.ResponseWriter, r *http.Request) {
	var input ShearBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateShear(h.Calculator, input)
	if err != nil {
		status := http.StatusBadRequest
		var ie *ItemError
		if errors.As(err, &ie) {
			status = shear.StatusFor(ie.Err)
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
