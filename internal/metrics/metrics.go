package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"SoilShear/internal/calc/predict"
	"SoilShear/internal/soil"
)

var (
	predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soilshear_predictions_total",
		Help: "Shear-strength predictions by target, soil and outcome.",
	}, []string{"target", "soil", "outcome"})

	renderSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "soilshear_render_seconds",
		Help:    "Time spent rendering Mohr plots and reports.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})
)

// ObservePrediction records one dispatcher call. Unknown soil/target values are folded
// into "other" to keep label cardinality bounded.
func ObservePrediction(target soil.Target, s soil.Type, err error) {
	t, st := "other", "other"
	if target.Valid() {
		t = string(target)
	}
	if s.Valid() {
		st = string(s)
	}
	predictions.WithLabelValues(t, st, Outcome(err)).Inc()
}

func Outcome(err error) string {
	var ve *soil.ValidationError
	var ce *predict.ComputationError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, predict.ErrUnsupported):
		return "unsupported"
	case errors.As(err, &ve):
		return "invalid"
	case errors.As(err, &ce):
		return "failed"
	default:
		return "error"
	}
}

func ObserveRender(start time.Time) {
	renderSeconds.Observe(time.Since(start).Seconds())
}
