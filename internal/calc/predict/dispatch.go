package predict

import (
	"errors"
	"fmt"

	"SoilShear/internal/soil"
)

type ModelID string

const (
	UUArgile     ModelID = "uu_argile"
	UULimonMarne ModelID = "uu_limon_marne"
	CUArgile     ModelID = "cu_argile"
	CULimonMarne ModelID = "cu_limon_marne"
	CDArgile     ModelID = "cd_argile"
	CDSable      ModelID = "cd_sable"
)

var ModelIDs = []ModelID{UUArgile, UULimonMarne, CUArgile, CULimonMarne, CDArgile, CDSable}

// Model is one fitted predictor. Implementations must be safe for concurrent use.
type Model interface {
	Predict(p soil.Properties) (soil.Strength, error)
}

// ModelFunc adapts a plain function to Model.
type ModelFunc func(p soil.Properties) (soil.Strength, error)

func (f ModelFunc) Predict(p soil.Properties) (soil.Strength, error) { return f(p) }

// Table holds one model per ID.
type Table map[ModelID]Model

var ErrUnsupported = errors.New("no prediction available")

type UnsupportedError struct {
	Soil   soil.Type
	Target soil.Target
}

func (e *UnsupportedError) Error() string {
	msg := fmt.Sprintf("%s: target %q with soil %q", ErrUnsupported, e.Target, e.Soil)
	if !e.Target.Valid() {
		if s := soil.Suggest(string(e.Target), soil.TargetNames()); s != "" {
			msg += fmt.Sprintf(" (did you mean target %q?)", s)
		}
	} else if !e.Soil.Valid() {
		if s := soil.Suggest(string(e.Soil), soil.TypeNames()); s != "" {
			msg += fmt.Sprintf(" (did you mean soil %q?)", s)
		}
	}
	return msg
}

func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

type ComputationError struct {
	Model ModelID
	Err   error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// Select maps a (target, soil) pair to its model. For uu and cu every soil other than
// argile shares the limon/marne model; for cd only argile and sable have one.
func Select(target soil.Target, s soil.Type) (ModelID, error) {
	argile := s == soil.Argile
	switch {
	case target == soil.TargetUU && argile:
		return UUArgile, nil
	case target == soil.TargetUU && s.Valid():
		return UULimonMarne, nil
	case target == soil.TargetCU && argile:
		return CUArgile, nil
	case target == soil.TargetCU && s.Valid():
		return CULimonMarne, nil
	case target == soil.TargetCD && argile:
		return CDArgile, nil
	case target == soil.TargetCD && s == soil.Sable:
		return CDSable, nil
	default:
		return "", &UnsupportedError{Soil: s, Target: target}
	}
}

type Dispatcher struct {
	Models Table
}

func NewDispatcher(models Table) *Dispatcher {
	return &Dispatcher{Models: models}
}

// Predict validates the vector, selects the model for (target, soil) and runs it.
func (d *Dispatcher) Predict(s soil.Type, target soil.Target, p soil.Properties) (soil.Strength, ModelID, error) {
	if err := p.Validate(); err != nil {
		return soil.Strength{}, "", err
	}
	id, err := Select(target, s)
	if err != nil {
		return soil.Strength{}, "", err
	}
	m, ok := d.Models[id]
	if !ok || m == nil {
		return soil.Strength{}, id, &ComputationError{Model: id, Err: errors.New("model not registered")}
	}
	res, err := m.Predict(p)
	if err != nil {
		return soil.Strength{}, id, &ComputationError{Model: id, Err: err}
	}
	if !res.Finite() {
		return soil.Strength{}, id, &ComputationError{Model: id, Err: fmt.Errorf("non-finite output (%v, %v)", res.CohesionKPa, res.FrictionDeg)}
	}
	return res, id, nil
}
