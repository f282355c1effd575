package led

import (
	"fmt"

	"github.com/smazurov/tenderhal/pkg/lm8502"
)

// DefaultPattern is used when a caller enables the LED without a pattern.
const DefaultPattern = "quick"

// notification implements Controller on top of the lm8502 engines
type notification struct {
	engine *Engine
}

// newNotification creates a controller backed by engine
func newNotification(engine *Engine) *notification {
	return &notification{engine: engine}
}

// StateForPattern maps a pattern name to its notification state.
// Disabled always maps to state 0.
func StateForPattern(enabled bool, pattern string) (int, error) {
	if !enabled {
		return 0, nil
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	for i, p := range lm8502.Programs() {
		if p.Name == pattern {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("LED pattern %q not supported", pattern)
}

// Set controls the notification LED by pattern name
func (n *notification) Set(ledType string, enabled bool, pattern string) error {
	if ledType != NotificationLED {
		return fmt.Errorf("LED type %q not supported on this board", ledType)
	}
	state, err := StateForPattern(enabled, pattern)
	if err != nil {
		return err
	}
	return n.engine.ApplyState(state)
}

func (n *notification) Apply(state int) error {
	return n.engine.ApplyState(state)
}

func (n *notification) Initialize() {
	n.engine.Initialize()
}

// Available returns the single notification LED
func (n *notification) Available() []string {
	return []string{NotificationLED}
}

// Patterns returns the pulse program names in state order
func (n *notification) Patterns() []string {
	programs := lm8502.Programs()
	names := make([]string, 0, len(programs))
	for _, p := range programs {
		names = append(names, p.Name)
	}
	return names
}
