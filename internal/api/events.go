package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/tenderhal/internal/events"
	"github.com/smazurov/tenderhal/internal/power"
)

// registerSSERoutes registers the state change event stream.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Notification LED results and power state changes. The current power state is sent first.",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"power-status":         power.Status{},
		"notification-applied": events.NotificationAppliedEvent{},
		"interactive-changed":  events.InteractiveChangedEvent{},
		"low-power-changed":    events.LowPowerChangedEvent{},
		"power-hint":           events.PowerHintEvent{},
		"config-reloaded":      events.ConfigReloadedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 16)

		unsubscribe := events.SubscribeStatus(s.eventBus, eventCh)
		defer unsubscribe()

		status := power.Status{}
		if s.options.Power != nil {
			status = s.options.Power.Status()
		}
		if err := send.Data(status); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
