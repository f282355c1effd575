package events

// Event type constants for kelindar/event.
const (
	TypeNotificationApplied uint32 = iota + 1
	TypeInteractiveChanged
	TypeLowPowerChanged
	TypePowerHint
	TypeConfigReloaded
	TypeLogEntry
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// NotificationAppliedEvent is published after every notification LED request.
type NotificationAppliedEvent struct {
	State     int    `json:"state" example:"1" doc:"Requested notification state (0 = off)"`
	Program   string `json:"program" example:"quick" doc:"Microcode program downloaded"`
	Code      int    `json:"code" example:"0" doc:"Negated errno of the reported failure, 0 on success"`
	Step      string `json:"step,omitempty" example:"download_microcode" doc:"Device step that failed"`
	Error     string `json:"error,omitempty" doc:"Failure description"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for NotificationAppliedEvent.
func (e NotificationAppliedEvent) Type() uint32 { return TypeNotificationApplied }

// InteractiveChangedEvent is published when the interactive state changes.
type InteractiveChangedEvent struct {
	Interactive bool   `json:"interactive" doc:"Whether the device is interactive (screen on)"`
	Notified    bool   `json:"notified" doc:"Whether the touchscreen driver accepted the notification"`
	Timestamp   string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for InteractiveChangedEvent.
func (e InteractiveChangedEvent) Type() uint32 { return TypeInteractiveChanged }

// LowPowerChangedEvent is published after the low power hint is applied.
type LowPowerChangedEvent struct {
	Enabled   bool   `json:"enabled" doc:"Whether CPU frequency is capped"`
	MaxFreq   int    `json:"max_freq" example:"1026000" doc:"Maximum frequency limit written, in kHz"`
	MinFreq   int    `json:"min_freq,omitempty" example:"384000" doc:"Minimum frequency limit written, in kHz"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for LowPowerChangedEvent.
func (e LowPowerChangedEvent) Type() uint32 { return TypeLowPowerChanged }

// PowerHintEvent is published for every power hint received.
type PowerHintEvent struct {
	Hint      string `json:"hint" example:"low_power" doc:"Hint kind"`
	Data      int32  `json:"data" example:"1" doc:"Hint payload"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for PowerHintEvent.
func (e PowerHintEvent) Type() uint32 { return TypePowerHint }

// ConfigReloadedEvent is published when tunables are reloaded from disk.
type ConfigReloadedEvent struct {
	Path      string `json:"path" example:"config.toml" doc:"Configuration file"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ConfigReloadedEvent.
func (e ConfigReloadedEvent) Type() uint32 { return TypeConfigReloaded }

// LogEntryEvent represents a log entry for SSE streaming.
type LogEntryEvent struct {
	Timestamp  string         `json:"timestamp" example:"2025-01-09T10:30:00.123Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"led" doc:"Source module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured log attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }
