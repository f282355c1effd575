package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledApplyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tenderhal",
		Subsystem: "led",
		Name:      "apply_total",
		Help:      "Notification LED state requests by state and result",
	}, []string{"state", "result"})

	ledStepFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tenderhal",
		Subsystem: "led",
		Name:      "step_failures_total",
		Help:      "Failed lm8502 device operations by step",
	}, []string{"step"})

	ledState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tenderhal",
		Subsystem: "led",
		Name:      "state",
		Help:      "Last notification state successfully applied (0 = off)",
	})
)

// RecordLEDApply counts a state request. A zero code means success.
func RecordLEDApply(state, code int) {
	result := "ok"
	if code != 0 {
		result = "error"
	}
	ledApplyTotal.WithLabelValues(strconv.Itoa(state), result).Inc()
	if code == 0 {
		ledState.Set(float64(state))
	}
}

// RecordLEDStepFailure counts a failed device step.
func RecordLEDStepFailure(step string) {
	ledStepFailures.WithLabelValues(step).Inc()
}
