package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tenderhal",
	Subsystem: "events",
	Name:      "dropped_total",
	Help:      "Events not delivered to a stream client whose buffer was full",
}, []string{"event"})

// RecordEventDropped counts an event a slow stream client missed.
func RecordEventDropped(event string) {
	eventsDropped.WithLabelValues(event).Inc()
}
