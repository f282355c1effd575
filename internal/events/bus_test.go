package events

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan NotificationAppliedEvent, 1)

	unsub := bus.Subscribe(func(e NotificationAppliedEvent) {
		received <- e
	})
	defer unsub()

	event := NotificationAppliedEvent{
		State:     3,
		Program:   "long",
		Timestamp: "2025-01-27T10:30:00Z",
	}
	bus.Publish(event)

	got := <-received
	if got.State != event.State || got.Program != event.Program {
		t.Errorf("Expected %+v, got %+v", event, got)
	}
}

func TestBus_MultipleSubscribers(_ *testing.T) {
	bus := New()
	received1 := make(chan LowPowerChangedEvent, 1)
	received2 := make(chan LowPowerChangedEvent, 1)

	unsub1 := bus.Subscribe(func(e LowPowerChangedEvent) {
		received1 <- e
	})
	defer unsub1()

	unsub2 := bus.Subscribe(func(e LowPowerChangedEvent) {
		received2 <- e
	})
	defer unsub2()

	bus.Publish(LowPowerChangedEvent{Enabled: true, MaxFreq: 1026000})

	<-received1
	<-received2
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan InteractiveChangedEvent, 1)

	unsub := bus.Subscribe(func(e InteractiveChangedEvent) {
		received <- e
	})

	bus.Publish(InteractiveChangedEvent{Interactive: true})
	<-received

	unsub()

	bus.Publish(InteractiveChangedEvent{Interactive: false})
	select {
	case <-received:
		t.Fatal("Received event after unsubscribe")
	case <-time.After(20 * time.Millisecond):
		// Expected
	}
}

func TestBus_TypeSafety(t *testing.T) {
	bus := New()
	hintReceived := make(chan PowerHintEvent, 1)
	lowPowerReceived := make(chan LowPowerChangedEvent, 1)

	unsub1 := bus.Subscribe(func(e PowerHintEvent) { hintReceived <- e })
	defer unsub1()
	unsub2 := bus.Subscribe(func(e LowPowerChangedEvent) { lowPowerReceived <- e })
	defer unsub2()

	bus.Publish(LowPowerChangedEvent{Enabled: true})
	<-lowPowerReceived

	select {
	case <-hintReceived:
		t.Fatal("Hint subscriber should NOT have received LowPowerChangedEvent")
	case <-time.After(10 * time.Millisecond):
		// Expected
	}
}

func TestBus_UnknownHandler(_ *testing.T) {
	bus := New()
	unsub := bus.Subscribe(func(string) {})
	unsub()
}

func TestBus_ThreadSafety(_ *testing.T) {
	bus := New()
	var wg sync.WaitGroup
	numGoroutines := 10
	eventsPerGoroutine := 100
	expected := numGoroutines * eventsPerGoroutine

	receivedCh := make(chan bool, expected)

	unsub := bus.Subscribe(func(_ PowerHintEvent) {
		receivedCh <- true
	})
	defer unsub()

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range eventsPerGoroutine {
				bus.Publish(PowerHintEvent{
					Hint:      "interaction",
					Timestamp: time.Now().Format(time.RFC3339),
				})
			}
		}()
	}

	wg.Wait()

	for range expected {
		<-receivedCh
	}
}

func TestBus_AllEventTypes(t *testing.T) {
	bus := New()

	tests := []struct {
		name  string
		event Event
	}{
		{"NotificationApplied", NotificationAppliedEvent{State: 1}},
		{"InteractiveChanged", InteractiveChangedEvent{Interactive: true}},
		{"LowPowerChanged", LowPowerChangedEvent{Enabled: true}},
		{"PowerHint", PowerHintEvent{Hint: "low_power", Data: 1}},
		{"ConfigReloaded", ConfigReloadedEvent{Path: "config.toml"}},
		{"LogEntry", LogEntryEvent{Message: "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(_ *testing.T) {
			received := make(chan Event, 1)

			var unsub func()
			switch tt.event.(type) {
			case NotificationAppliedEvent:
				unsub = bus.Subscribe(func(e NotificationAppliedEvent) { received <- e })
			case InteractiveChangedEvent:
				unsub = bus.Subscribe(func(e InteractiveChangedEvent) { received <- e })
			case LowPowerChangedEvent:
				unsub = bus.Subscribe(func(e LowPowerChangedEvent) { received <- e })
			case PowerHintEvent:
				unsub = bus.Subscribe(func(e PowerHintEvent) { received <- e })
			case ConfigReloadedEvent:
				unsub = bus.Subscribe(func(e ConfigReloadedEvent) { received <- e })
			case LogEntryEvent:
				unsub = bus.Subscribe(func(e LogEntryEvent) { received <- e })
			}
			defer unsub()

			bus.Publish(tt.event)
			<-received
		})
	}
}

func TestEventJSONSerialization(t *testing.T) {
	data, err := json.Marshal(NotificationAppliedEvent{
		State:     0,
		Program:   "reset",
		Code:      -5,
		Step:      "stop_engine1",
		Error:     "input/output error",
		Timestamp: "2025-01-27T10:30:00Z",
	})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var result map[string]any
	if unmarshalErr := json.Unmarshal(data, &result); unmarshalErr != nil {
		t.Fatalf("Failed to unmarshal: %v", unmarshalErr)
	}

	if result["step"] != "stop_engine1" {
		t.Errorf("step = %v, want stop_engine1", result["step"])
	}
	if result["code"] != float64(-5) {
		t.Errorf("code = %v, want -5", result["code"])
	}
}

func TestSubscribeToChannel(t *testing.T) {
	bus := New()
	ch := make(chan any, 10)

	unsub := SubscribeToChannel[LowPowerChangedEvent](bus, ch)
	defer unsub()

	bus.Publish(LowPowerChangedEvent{Enabled: true, MaxFreq: 1026000})

	received := <-ch
	ev, ok := received.(LowPowerChangedEvent)
	if !ok {
		t.Fatalf("Expected LowPowerChangedEvent, got %T", received)
	}
	if ev.MaxFreq != 1026000 {
		t.Errorf("Expected max_freq 1026000, got %d", ev.MaxFreq)
	}
}

func TestSubscribeToChannel_NonBlocking(_ *testing.T) {
	bus := New()
	ch := make(chan any) // No buffer

	unsub := SubscribeToChannel[PowerHintEvent](bus, ch)
	defer unsub()

	done := make(chan bool, 1)
	go func() {
		bus.Publish(PowerHintEvent{Hint: "launch"})
		done <- true
	}()

	<-done // Should complete without blocking
}

func TestName(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NotificationAppliedEvent{}, "notification-applied"},
		{InteractiveChangedEvent{}, "interactive-changed"},
		{LowPowerChangedEvent{}, "low-power-changed"},
		{PowerHintEvent{}, "power-hint"},
		{ConfigReloadedEvent{}, "config-reloaded"},
		{LogEntryEvent{}, "log"},
	}

	for _, tt := range tests {
		if got := Name(tt.event); got != tt.want {
			t.Errorf("Name(%T) = %q, want %q", tt.event, got, tt.want)
		}
	}
}

// droppedCount reads tenderhal_events_dropped_total{event=name} from the
// default registry.
func droppedCount(t *testing.T, name string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "tenderhal_events_dropped_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "event" && label.GetValue() == name {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestSubscribeToChannel_CountsDrops(t *testing.T) {
	bus := New()
	ch := make(chan any, 1)

	unsub := SubscribeToChannel[ConfigReloadedEvent](bus, ch)
	defer unsub()

	before := droppedCount(t, "config-reloaded")
	bus.Publish(ConfigReloadedEvent{Path: "a.toml"})
	bus.Publish(ConfigReloadedEvent{Path: "b.toml"})

	deadline := time.Now().Add(2 * time.Second)
	for droppedCount(t, "config-reloaded") < before+1 {
		if time.Now().After(deadline) {
			t.Fatal("dropped event was not counted")
		}
		time.Sleep(10 * time.Millisecond)
	}

	ev := (<-ch).(ConfigReloadedEvent)
	if ev.Path != "a.toml" {
		t.Errorf("delivered %q, want the first event", ev.Path)
	}
}

func TestSubscribeStatus(t *testing.T) {
	bus := New()
	ch := make(chan any, 16)

	unsub := SubscribeStatus(bus, ch)
	defer unsub()

	bus.Publish(NotificationAppliedEvent{State: 1})
	bus.Publish(InteractiveChangedEvent{Interactive: true})
	bus.Publish(LowPowerChangedEvent{Enabled: true})
	bus.Publish(PowerHintEvent{Hint: "launch"})
	bus.Publish(ConfigReloadedEvent{Path: "config.toml"})
	bus.Publish(LogEntryEvent{Message: "not a status change"})

	seen := make(map[string]bool)
	timeout := time.After(2 * time.Second)
	for len(seen) < 5 {
		select {
		case e := <-ch:
			seen[Name(e.(Event))] = true
		case <-timeout:
			t.Fatalf("received %v, want all five status events", seen)
		}
	}
	if seen["log"] {
		t.Error("log entries should not be forwarded")
	}
}
