package power

import (
	"log/slog"
	"time"

	"github.com/smazurov/tenderhal/internal/events"
	"github.com/smazurov/tenderhal/internal/metrics"
)

// PowerStateStats describes one platform low power state. This board
// reports none.
type PowerStateStats struct {
	Name             string `json:"name"`
	ResidencyMillis  uint64 `json:"residency_ms"`
	TotalTransitions uint64 `json:"total_transitions"`
}

// Status is a snapshot of the HAL state.
type Status struct {
	LowPower         bool   `json:"low_power" doc:"Whether CPU frequency is capped"`
	Interactive      bool   `json:"interactive" doc:"Last interactive value sent to the touchscreen"`
	InteractiveKnown bool   `json:"interactive_known" doc:"False until the first interactive request"`
	Limits           Limits `json:"limits" doc:"Active CPU frequency tunables"`
}

// HAL implements the tenderloin power HAL. Failures are logged and counted,
// never returned, so callers cannot act on them.
type HAL struct {
	state    *State
	limits   Limits // guarded by state.mu
	writer   Writer
	notifier Notifier
	eventBus *events.Bus
	logger   *slog.Logger
}

// Option configures a HAL.
type Option func(*HAL)

// WithWriter replaces the sysfs writer.
func WithWriter(w Writer) Option {
	return func(h *HAL) { h.writer = w }
}

// WithNotifier replaces the touchscreen notifier.
func WithNotifier(n Notifier) Option {
	return func(h *HAL) { h.notifier = n }
}

// WithLimits sets the frequency tunables.
func WithLimits(l Limits) Option {
	return func(h *HAL) { h.limits = l.withDefaults() }
}

// WithEventBus publishes state changes on bus.
func WithEventBus(bus *events.Bus) Option {
	return func(h *HAL) { h.eventBus = bus }
}

// NewHAL creates a power HAL operating on state.
func NewHAL(state *State, logger *slog.Logger, opts ...Option) *HAL {
	if state == nil {
		state = NewState()
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &HAL{
		state:    state,
		limits:   DefaultLimits(),
		writer:   FileWriter{},
		notifier: NewSocketNotifier(DefaultSocketPath),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init announces the HAL.
func (h *HAL) Init() {
	h.logger.Info("tenderloin power HAL initing")
}

// SetInteractive tells the touchscreen driver whether the screen is on. The
// command is sent only when the value changes; the value is recorded even
// if the driver cannot be reached.
func (h *HAL) SetInteractive(on bool) {
	if !h.state.swapInteractive(on) {
		h.logger.Debug("Interactive state unchanged", "interactive", on)
		return
	}

	cmd := ScreenOff
	if on {
		cmd = ScreenOn
	}
	err := h.notifier.Notify(cmd)
	metrics.RecordInteractiveNotification(on, err)
	if err != nil {
		h.logger.Debug("Touchscreen notification not delivered", "interactive", on, "error", err)
	} else {
		h.logger.Debug("Touchscreen notified", "interactive", on)
	}

	h.publish(events.InteractiveChangedEvent{
		Interactive: on,
		Notified:    err == nil,
		Timestamp:   now(),
	})
}

// Hint handles a power hint. Only HintLowPower has an effect; data is its
// enable flag.
func (h *HAL) Hint(hint Hint, data int32) {
	metrics.RecordPowerHint(hint.String())
	h.publish(events.PowerHintEvent{Hint: hint.String(), Data: data, Timestamp: now()})

	switch hint {
	case HintLowPower:
		h.setLowPower(data != 0)
	default:
		h.logger.Debug("Ignoring power hint", "hint", hint.String(), "data", data)
	}
}

// SetFeature accepts and ignores feature toggles.
func (h *HAL) SetFeature(feature Feature, enabled bool) {
	h.logger.Debug("Ignoring power feature", "feature", feature.String(), "enabled", enabled)
}

// GetFeature returns the value of a queried feature, or -1 when unsupported.
func (h *HAL) GetFeature(q Query) int {
	if q == QuerySupportedProfiles {
		return 0
	}
	return -1
}

// PlatformLowPowerStats returns the platform low power states.
func (h *HAL) PlatformLowPowerStats() []PowerStateStats {
	return []PowerStateStats{}
}

// SetLimits replaces the frequency tunables. When low power mode is active
// the new low power limits are written immediately.
func (h *HAL) SetLimits(l Limits) {
	l = l.withDefaults()

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	if l == h.limits {
		return
	}
	h.limits = l
	h.logger.Info("Frequency limits updated",
		"low_power_max", l.LowPowerMax,
		"low_power_min", l.LowPowerMin,
		"normal_max", l.NormalMax)

	if h.state.lowPower {
		h.writeLimits(true)
	}
}

// Status returns a snapshot of the HAL state.
func (h *HAL) Status() Status {
	h.state.mu.Lock()
	st := Status{LowPower: h.state.lowPower, Limits: h.limits}
	h.state.mu.Unlock()

	st.Interactive, st.InteractiveKnown = h.state.Interactive()
	return st
}

func (h *HAL) setLowPower(enabled bool) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	h.state.lowPower = enabled
	metrics.SetLowPowerMode(enabled)
	ev := h.writeLimits(enabled)

	h.logger.Info("Low power mode changed", "enabled", enabled, "max_freq", ev.MaxFreq)
	h.publish(ev)
}

// writeLimits writes the limit files for the given mode: min then max when
// enabling, max only when disabling. Callers hold state.mu.
func (h *HAL) writeLimits(lowPower bool) events.LowPowerChangedEvent {
	ev := events.LowPowerChangedEvent{Enabled: lowPower, Timestamp: now()}
	if lowPower {
		ev.MinFreq = h.limits.LowPowerMin
		ev.MaxFreq = h.limits.LowPowerMax
		h.write(h.limits.MinFreqPath, ev.MinFreq)
	} else {
		ev.MaxFreq = h.limits.NormalMax
	}
	h.write(h.limits.MaxFreqPath, ev.MaxFreq)
	return ev
}

func (h *HAL) write(path string, khz int) {
	if err := h.writer.WriteFile(path, formatFreq(khz)); err != nil {
		metrics.RecordSysfsWriteError(path)
		h.logger.Error("Error writing frequency limit", "path", path, "value", khz, "error", err)
	}
}

func (h *HAL) publish(ev events.Event) {
	if h.eventBus != nil {
		h.eventBus.Publish(ev)
	}
}

func now() string {
	return time.Now().Format(time.RFC3339)
}
