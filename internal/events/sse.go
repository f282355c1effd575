package events

import (
	"github.com/kelindar/event"
	"github.com/smazurov/tenderhal/internal/metrics"
)

// Name returns the stream name of ev, as used for SSE event types and
// metric labels.
func Name(ev Event) string {
	switch ev.Type() {
	case TypeNotificationApplied:
		return "notification-applied"
	case TypeInteractiveChanged:
		return "interactive-changed"
	case TypeLowPowerChanged:
		return "low-power-changed"
	case TypePowerHint:
		return "power-hint"
	case TypeConfigReloaded:
		return "config-reloaded"
	case TypeLogEntry:
		return "log"
	default:
		return "unknown"
	}
}

// SubscribeToChannel forwards every T published on bus to ch. An event that
// does not fit in ch is dropped and counted, so a slow stream client never
// holds up the LED or power paths.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
			metrics.RecordEventDropped(Name(e))
		}
	})
}

// SubscribeStatus forwards every LED and power state change to ch. Log
// entries are not included. The returned function removes all of the
// subscriptions.
func SubscribeStatus(bus *Bus, ch chan<- any) func() {
	unsubscribers := []func(){
		SubscribeToChannel[NotificationAppliedEvent](bus, ch),
		SubscribeToChannel[InteractiveChangedEvent](bus, ch),
		SubscribeToChannel[LowPowerChangedEvent](bus, ch),
		SubscribeToChannel[PowerHintEvent](bus, ch),
		SubscribeToChannel[ConfigReloadedEvent](bus, ch),
	}
	return func() {
		for _, unsub := range unsubscribers {
			unsub()
		}
	}
}
