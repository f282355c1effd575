package led

import (
	"log/slog"
	"sync"
	"time"

	"github.com/smazurov/tenderhal/internal/events"
	"github.com/smazurov/tenderhal/internal/metrics"
	"github.com/smazurov/tenderhal/pkg/lm8502"
)

// Manager serialises notification LED requests from concurrent callers and
// reports each result on the event bus.
type Manager struct {
	controller Controller
	eventBus   *events.Bus
	logger     *slog.Logger

	mu        sync.Mutex
	lastState int
	applied   bool
}

// NewManager creates a new LED manager around controller
func NewManager(controller Controller, eventBus *events.Bus, logger *slog.Logger) *Manager {
	return &Manager{
		controller: controller,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Start resets the hardware to a known idle state
func (m *Manager) Start() {
	m.Initialize()
	m.logger.Info("LED manager started")
}

// Stop turns the notification light off. The daemon calls it on shutdown,
// so after a restart the light stays dark until the next request.
func (m *Manager) Stop() {
	if err := m.Apply(0); err != nil {
		m.logger.Warn("Failed to turn notification light off", "error", err)
	}
	m.logger.Info("LED manager stopped")
}

// Initialize re-runs the hardware initialisation sequence
func (m *Manager) Initialize() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.controller.Initialize()
	m.applied = false
}

// Apply runs the program for state and returns the device failure, if any
func (m *Manager) Apply(state int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.apply(state, func() error { return m.controller.Apply(state) })
}

// Set resolves a pattern to its state and applies it
func (m *Manager) Set(ledType string, enabled bool, pattern string) error {
	state, err := StateForPattern(enabled, pattern)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.apply(state, func() error { return m.controller.Set(ledType, enabled, pattern) })
}

// LastState returns the last state applied without error.
func (m *Manager) LastState() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastState, m.applied
}

// GetController returns the underlying LED controller for direct API access
func (m *Manager) GetController() Controller {
	return m.controller
}

func (m *Manager) apply(state int, run func() error) error {
	err := run()
	code := Code(err)

	metrics.RecordLEDApply(state, code)

	ev := events.NotificationAppliedEvent{
		State:     state,
		Program:   lm8502.ProgramFor(state).Name,
		Code:      code,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if err != nil {
		if step, ok := FailedStep(err); ok {
			metrics.RecordLEDStepFailure(step.String())
			ev.Step = step.String()
		}
		ev.Error = err.Error()
		m.logger.Warn("Notification state not applied", "state", state, "code", code, "error", err)
	} else {
		m.lastState = state
		m.applied = true
		m.logger.Debug("Notification state applied", "state", state, "program", ev.Program)
	}

	if m.eventBus != nil {
		m.eventBus.Publish(ev)
	}

	return err
}
