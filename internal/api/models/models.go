// Package models holds the request and response bodies of the control API.
package models

import (
	"github.com/smazurov/tenderhal/internal/power"
	"github.com/smazurov/tenderhal/internal/version"
)

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Lights  string `json:"lights" example:"lm8502" enum:"lm8502,unavailable" doc:"Notification LED backend"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

type VersionResponse struct {
	Body version.Info
}

// Lights models

type LightsCapabilitiesData struct {
	AvailableTypes    []string `json:"available_types" doc:"LED types present on this board"`
	AvailablePatterns []string `json:"available_patterns" doc:"Notification patterns in state order (state 1 first)"`
	LastState         *int     `json:"last_state,omitempty" example:"1" doc:"Last state applied successfully"`
}

type LightsCapabilitiesResponse struct {
	Body LightsCapabilitiesData
}

type NotificationStateRequest struct {
	Body struct {
		State int `json:"state" minimum:"0" maximum:"5" example:"1" doc:"0 turns the light off, 1-5 select a pulse pattern"`
	}
}

type NotificationPatternRequest struct {
	Body struct {
		Pattern string `json:"pattern,omitempty" example:"double" doc:"Pattern name, defaults to quick"`
		Enabled bool   `json:"enabled" example:"true" doc:"Whether the light should pulse"`
	}
}

type NotificationResultData struct {
	State   int    `json:"state" example:"1" doc:"State applied"`
	Program string `json:"program" example:"quick" doc:"Microcode program downloaded"`
	Code    int    `json:"code" example:"0" doc:"Negated errno, 0 on success"`
}

type NotificationResultResponse struct {
	Body NotificationResultData
}

// Power models

type InteractiveRequest struct {
	Body struct {
		Interactive bool `json:"interactive" example:"true" doc:"Screen on (true) or off (false)"`
	}
}

type HintRequest struct {
	Body struct {
		Hint string `json:"hint" example:"low_power" doc:"Hint name or number"`
		Data int32  `json:"data,omitempty" example:"1" doc:"Hint payload; for low_power any non-zero value enables it"`
	}
}

type PowerStatusResponse struct {
	Body power.Status
}

type FeatureSetRequest struct {
	Feature string `path:"feature" example:"double_tap_to_wake" doc:"Feature name or number"`
	Body    struct {
		Enabled bool `json:"enabled" doc:"Requested feature state"`
	}
}

type FeatureSetData struct {
	Feature string `json:"feature" example:"double_tap_to_wake" doc:"Feature name"`
	Enabled bool   `json:"enabled" doc:"Requested feature state"`
}

type FeatureSetResponse struct {
	Body FeatureSetData
}

type FeatureGetRequest struct {
	Feature string `path:"feature" example:"supported_profiles" doc:"Feature query name or number"`
}

type FeatureGetData struct {
	Feature string `json:"feature" example:"supported_profiles" doc:"Feature query name"`
	Value   int    `json:"value" example:"0" doc:"Feature value, -1 when unsupported"`
}

type FeatureGetResponse struct {
	Body FeatureGetData
}

type PowerStatsResponse struct {
	Body struct {
		States []power.PowerStateStats `json:"states" doc:"Platform low power states"`
	}
}
