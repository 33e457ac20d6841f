package batch

import (
	"fmt"

	"SoilShear/internal/calc/shear"
)

type ShearBatchInput struct {
	Items []shear.Input `json:"items"`
}

type ShearBatchResult struct {
	Results []shear.Result `json:"results"`
}

// ItemError carries the position of the failing item.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string { return fmt.Sprintf("item %d: %v", e.Index, e.Err) }

func (e *ItemError) Unwrap() error { return e.Err }

// CalculateShear stops at the first item that cannot be computed.
func CalculateShear(calc *shear.Calculator, in ShearBatchInput) (ShearBatchResult, error) {
	if len(in.Items) == 0 {
		return ShearBatchResult{}, fmt.Errorf("no items")
	}
	out := ShearBatchResult{Results: make([]shear.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := calc.Calculate(item)
		if err != nil {
			return ShearBatchResult{}, &ItemError{Index: i, Err: err}
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
