package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	powerHintsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tenderhal",
		Subsystem: "power",
		Name:      "hints_total",
		Help:      "Power hints received by hint kind",
	}, []string{"hint"})

	powerLowPowerMode = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tenderhal",
		Subsystem: "power",
		Name:      "low_power_mode",
		Help:      "Whether CPU frequency is capped for low power (1) or not (0)",
	})

	powerInteractiveNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tenderhal",
		Subsystem: "power",
		Name:      "interactive_notifications_total",
		Help:      "Touchscreen notifications sent by interactive state and result",
	}, []string{"interactive", "result"})

	powerSysfsWriteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tenderhal",
		Subsystem: "power",
		Name:      "sysfs_write_errors_total",
		Help:      "Failed writes to CPU frequency limit files",
	}, []string{"path"})
)

// RecordPowerHint counts a received hint.
func RecordPowerHint(hint string) {
	powerHintsTotal.WithLabelValues(hint).Inc()
}

// SetLowPowerMode records the current low power mode.
func SetLowPowerMode(enabled bool) {
	if enabled {
		powerLowPowerMode.Set(1)
	} else {
		powerLowPowerMode.Set(0)
	}
}

// RecordInteractiveNotification counts a touchscreen socket notification.
func RecordInteractiveNotification(interactive bool, err error) {
	state := "off"
	if interactive {
		state = "on"
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	powerInteractiveNotifications.WithLabelValues(state, result).Inc()
}

// RecordSysfsWriteError counts a failed limit file write.
func RecordSysfsWriteError(path string) {
	powerSysfsWriteErrors.WithLabelValues(path).Inc()
}
