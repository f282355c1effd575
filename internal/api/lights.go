package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/tenderhal/internal/api/models"
	"github.com/smazurov/tenderhal/internal/led"
	"github.com/smazurov/tenderhal/pkg/lm8502"
)

// registerLightsRoutes registers notification LED endpoints
func (s *Server) registerLightsRoutes() {
	if s.options.Lights == nil {
		s.logger.Debug("LED service not available, skipping lights routes")
		return
	}
	lights := s.options.Lights

	huma.Register(s.api, huma.Operation{
		OperationID: "get-lights-capabilities",
		Method:      http.MethodGet,
		Path:        "/api/lights/capabilities",
		Summary:     "Get Lights Capabilities",
		Description: "List the LED types and notification patterns of this board",
		Tags:        []string{"lights"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.LightsCapabilitiesResponse, error) {
		ctrl := lights.GetController()
		resp := &models.LightsCapabilitiesResponse{
			Body: models.LightsCapabilitiesData{
				AvailableTypes:    ctrl.Available(),
				AvailablePatterns: ctrl.Patterns(),
			},
		}
		if state, ok := lights.LastState(); ok {
			resp.Body.LastState = &state
		}
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-notification-state",
		Method:      http.MethodPost,
		Path:        "/api/lights/notification",
		Summary:     "Set Notification State",
		Description: "Run the notification program for a state: 0 resets the engines, 1-5 select a pulse pattern",
		Tags:        []string{"lights"},
		Errors:      []int{400, 401, 422, 500},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.NotificationStateRequest) (*models.NotificationResultResponse, error) {
		state := input.Body.State
		if err := lights.Apply(state); err != nil {
			return nil, lightsError(err)
		}
		return notificationResult(state), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-notification-pattern",
		Method:      http.MethodPost,
		Path:        "/api/lights/notification/pattern",
		Summary:     "Set Notification Pattern",
		Description: "Enable the notification light with a named pattern, or disable it",
		Tags:        []string{"lights"},
		Errors:      []int{400, 401, 422, 500},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.NotificationPatternRequest) (*models.NotificationResultResponse, error) {
		state, err := led.StateForPattern(input.Body.Enabled, input.Body.Pattern)
		if err != nil {
			return nil, huma.Error400BadRequest("Unknown pattern", err)
		}
		if err := lights.Set(led.NotificationLED, input.Body.Enabled, input.Body.Pattern); err != nil {
			return nil, lightsError(err)
		}
		return notificationResult(state), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "init-lights",
		Method:      http.MethodPost,
		Path:        "/api/lights/init",
		Summary:     "Initialize Lights",
		Description: "Load an empty program and stop both LED engines",
		Tags:        []string{"lights"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*struct{}, error) {
		lights.Initialize()
		return &struct{}{}, nil
	})

	s.logger.Info("Lights routes registered")
}

func notificationResult(state int) *models.NotificationResultResponse {
	return &models.NotificationResultResponse{
		Body: models.NotificationResultData{
			State:   state,
			Program: lm8502.ProgramFor(state).Name,
		},
	}
}

// lightsError maps a controller failure to an HTTP error. Device failures
// carry the failed step and errno; anything else is a bad request.
func lightsError(err error) error {
	step, ok := led.FailedStep(err)
	if !ok {
		return huma.Error400BadRequest("Notification request rejected", err)
	}
	return huma.Error500InternalServerError(
		"LED device failed at "+step.String(),
		err,
		&huma.ErrorDetail{Location: "code", Value: led.Code(err)},
	)
}
