package shear

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"SoilShear/internal/calc/mohr"
	"SoilShear/internal/calc/predict"
	"SoilShear/internal/soil"
)

type Handler struct {
	Calculator *Calculator
}

type unavailable struct {
	Available bool        `json:"available"`
	Soil      soil.Type   `json:"soil"`
	Target    soil.Target `json:"target"`
	Message   string      `json:"message"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Calculator.Calculate(input)
	if err != nil {
		WriteError(w, res, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

type Options struct {
	Soils    []string      `json:"soils"`
	Targets  []string      `json:"targets"`
	Fields   []soil.Domain `json:"fields"`
	Stresses mohr.Stresses `json:"stresses"`
}

// Options lists the form choices and field domains.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Options{
		Soils:    soil.TypeNames(),
		Targets:  soil.TargetNames(),
		Fields:   soil.Domains,
		Stresses: h.Calculator.Stresses,
	})
}

// StatusFor maps a calculation error to its HTTP status.
func StatusFor(err error) int {
	var ve *soil.ValidationError
	var ie *mohr.InvalidInputError
	switch {
	case errors.Is(err, predict.ErrUnsupported):
		return http.StatusUnprocessableEntity
	case errors.As(err, &ve), errors.As(err, &ie):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError reports an unsupported combination as "no prediction available" and
// everything else as a plain error.
func WriteError(w http.ResponseWriter, res Result, err error) {
	status := StatusFor(err)
	if errors.Is(err, predict.ErrUnsupported) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(unavailable{Soil: res.Soil, Target: res.Target, Message: err.Error()})
		return
	}
	if status == http.StatusInternalServerError {
		log.Printf("shear: %v", err)
		http.Error(w, "Calculation error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
