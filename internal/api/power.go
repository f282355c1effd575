package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/tenderhal/internal/api/models"
	"github.com/smazurov/tenderhal/internal/power"
)

// registerPowerRoutes registers power HAL endpoints
func (s *Server) registerPowerRoutes() {
	if s.options.Power == nil {
		s.logger.Debug("Power HAL not available, skipping power routes")
		return
	}
	hal := s.options.Power

	huma.Register(s.api, huma.Operation{
		OperationID: "set-interactive",
		Method:      http.MethodPost,
		Path:        "/api/power/interactive",
		Summary:     "Set Interactive",
		Description: "Tell the touchscreen driver whether the screen is on. Repeated values are not resent.",
		Tags:        []string{"power"},
		Errors:      []int{401, 422},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.InteractiveRequest) (*models.PowerStatusResponse, error) {
		hal.SetInteractive(input.Body.Interactive)
		return &models.PowerStatusResponse{Body: hal.Status()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "power-hint",
		Method:      http.MethodPost,
		Path:        "/api/power/hint",
		Summary:     "Power Hint",
		Description: "Deliver a power hint. Only low_power changes CPU frequency limits; other hints are accepted and ignored.",
		Tags:        []string{"power"},
		Errors:      []int{400, 401, 422},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.HintRequest) (*models.PowerStatusResponse, error) {
		hint, err := power.ParseHint(input.Body.Hint)
		if err != nil {
			return nil, huma.Error400BadRequest("Unknown hint", err)
		}
		hal.Hint(hint, input.Body.Data)
		return &models.PowerStatusResponse{Body: hal.Status()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-power-feature",
		Method:      http.MethodPut,
		Path:        "/api/power/features/{feature}",
		Summary:     "Set Power Feature",
		Description: "Toggle a power feature. This board accepts and ignores every feature.",
		Tags:        []string{"power"},
		Errors:      []int{400, 401, 422},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.FeatureSetRequest) (*models.FeatureSetResponse, error) {
		feature, err := power.ParseFeature(input.Feature)
		if err != nil {
			return nil, huma.Error400BadRequest("Unknown feature", err)
		}
		hal.SetFeature(feature, input.Body.Enabled)
		return &models.FeatureSetResponse{
			Body: models.FeatureSetData{Feature: feature.String(), Enabled: input.Body.Enabled},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-power-feature",
		Method:      http.MethodGet,
		Path:        "/api/power/features/{feature}",
		Summary:     "Get Power Feature",
		Description: "Query a feature value; supported_profiles reports the number of power profiles.",
		Tags:        []string{"power"},
		Errors:      []int{400, 401},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.FeatureGetRequest) (*models.FeatureGetResponse, error) {
		q, err := power.ParseQuery(input.Feature)
		if err != nil {
			return nil, huma.Error400BadRequest("Unknown feature", err)
		}
		return &models.FeatureGetResponse{
			Body: models.FeatureGetData{Feature: q.String(), Value: hal.GetFeature(q)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-power-stats",
		Method:      http.MethodGet,
		Path:        "/api/power/stats",
		Summary:     "Platform Low Power Stats",
		Description: "List platform low power states and their residency",
		Tags:        []string{"power"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.PowerStatsResponse, error) {
		resp := &models.PowerStatsResponse{}
		resp.Body.States = hal.PlatformLowPowerStats()
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-power-state",
		Method:      http.MethodGet,
		Path:        "/api/power/state",
		Summary:     "Power State",
		Description: "Current low power mode, interactive state and frequency tunables",
		Tags:        []string{"power"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.PowerStatusResponse, error) {
		return &models.PowerStatusResponse{Body: hal.Status()}, nil
	})

	s.logger.Info("Power routes registered")
}
