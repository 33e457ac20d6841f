package soil

import (
	"fmt"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Type string

const (
	Argile Type = "argile"
	Limons Type = "limons"
	Marne  Type = "marne"
	Sable  Type = "sable"
)

// Target is the triaxial test type the prediction stands for.
type Target string

const (
	TargetCU Target = "cu"
	TargetUU Target = "uu"
	TargetCD Target = "cd"
)

var (
	Types   = []Type{Argile, Limons, Marne, Sable}
	Targets = []Target{TargetCU, TargetUU, TargetCD}
)

func (t Type) Valid() bool {
	switch t {
	case Argile, Limons, Marne, Sable:
		return true
	}
	return false
}

func (t Target) Valid() bool {
	switch t {
	case TargetCU, TargetUU, TargetCD:
		return true
	}
	return false
}

// Normalize lower-cases and trims a value posted by a form or a spreadsheet cell.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Suggest returns the closest known value to s, or "" when nothing is within two edits.
func Suggest(s string, known []string) string {
	s = Normalize(s)
	best := ""
	bestDist := 3
	for _, k := range known {
		d := levenshtein.ComputeDistance(s, k)
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

func TypeNames() []string {
	out := make([]string, 0, len(Types))
	for _, t := range Types {
		out = append(out, string(t))
	}
	return out
}

func TargetNames() []string {
	out := make([]string, 0, len(Targets))
	for _, t := range Targets {
		out = append(out, string(t))
	}
	return out
}

// Strength is the predicted shear-strength pair.
type Strength struct {
	CohesionKPa float64 `json:"cohesion_kpa"`
	FrictionDeg float64 `json:"friction_deg"`
}

func (s Strength) Finite() bool {
	return isFinite(s.CohesionKPa) && isFinite(s.FrictionDeg)
}

func (s Strength) String() string {
	return fmt.Sprintf("c=%.2f kPa, phi=%.1f deg", s.CohesionKPa, s.FrictionDeg)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
