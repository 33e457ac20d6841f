package soil

import (
	"fmt"
)

// Properties is the index-property vector fed to every model.
// SR is optional on input and defaults to 0.
type Properties struct {
	FC  float64 `json:"fc"`
	WL  float64 `json:"wl"`
	IP  float64 `json:"ip"`
	MC  float64 `json:"mc"`
	SR  float64 `json:"sr"`
	ROD float64 `json:"rod"`
}

// Domain is the accepted closed interval for one property.
type Domain struct {
	Name     string  `json:"name"`
	Label    string  `json:"label"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Initial  float64 `json:"initial"`
	Optional bool    `json:"optional"`
}

var Domains = []Domain{
	{Name: "fc", Label: "FC (%)", Min: 0, Max: 100, Initial: 30},
	{Name: "wl", Label: "WL", Min: 0, Max: 100, Initial: 40},
	{Name: "ip", Label: "IP", Min: 0, Max: 100, Initial: 15},
	{Name: "mc", Label: "MC (%)", Min: 0, Max: 100, Initial: 20},
	{Name: "sr", Label: "SR (%)", Min: 0, Max: 150, Initial: 80, Optional: true},
	{Name: "rod", Label: "Masse volumique sèche (g/cm³)", Min: 1.0, Max: 2.5, Initial: 1.6},
}

type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "missing" {
		return fmt.Sprintf("invalid %s: missing", e.Field)
	}
	return fmt.Sprintf("invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Values returns the vector in model argument order (FC, WL, IP, MC, SR, ROD).
func (p Properties) Values() [6]float64 {
	return [6]float64{p.FC, p.WL, p.IP, p.MC, p.SR, p.ROD}
}

func (p Properties) Validate() error {
	for i, v := range p.Values() {
		d := Domains[i]
		if !isFinite(v) {
			return &ValidationError{Field: d.Name, Value: v, Reason: "not a finite number"}
		}
		if v < d.Min || v > d.Max {
			return &ValidationError{Field: d.Name, Value: v, Reason: fmt.Sprintf("outside [%g, %g]", d.Min, d.Max)}
		}
	}
	return nil
}

// Input is the raw vector as received; nil means the field was not submitted.
type Input struct {
	FC  *float64 `json:"fc"`
	WL  *float64 `json:"wl"`
	IP  *float64 `json:"ip"`
	Ip  *float64 `json:"Ip,omitempty"`
	MC  *float64 `json:"mc"`
	SR  *float64 `json:"sr"`
	ROD *float64 `json:"rod"`
}

// Properties applies the SR default and checks that every required field is present
// and within its domain.
func (in Input) Properties() (Properties, error) {
	ip := in.IP
	if ip == nil {
		ip = in.Ip
	}
	required := []struct {
		name string
		v    *float64
	}{
		{"fc", in.FC}, {"wl", in.WL}, {"ip", ip}, {"mc", in.MC}, {"rod", in.ROD},
	}
	for _, r := range required {
		if r.v == nil {
			return Properties{}, &ValidationError{Field: r.name, Reason: "missing"}
		}
	}
	p := Properties{FC: *in.FC, WL: *in.WL, IP: *ip, MC: *in.MC, ROD: *in.ROD}
	if in.SR != nil {
		p.SR = *in.SR
	}
	if err := p.Validate(); err != nil {
		return Properties{}, err
	}
	return p, nil
}
