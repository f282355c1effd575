package power

import (
	"fmt"
	"strconv"
	"strings"
)

// Hint is a power hint kind, numbered as in the platform power HAL.
type Hint int

const (
	HintVsync Hint = iota + 1
	HintInteraction
	HintVideoEncode
	HintVideoDecode
	HintLowPower
	HintSustainedPerformance
	HintVRMode
	HintLaunch
)

var hintNames = map[Hint]string{
	HintVsync:                "vsync",
	HintInteraction:          "interaction",
	HintVideoEncode:          "video_encode",
	HintVideoDecode:          "video_decode",
	HintLowPower:             "low_power",
	HintSustainedPerformance: "sustained_performance",
	HintVRMode:               "vr_mode",
	HintLaunch:               "launch",
}

func (h Hint) String() string {
	if name, ok := hintNames[h]; ok {
		return name
	}
	return fmt.Sprintf("hint(%d)", int(h))
}

// HintNames returns the known hint names in numeric order.
func HintNames() []string {
	names := make([]string, 0, len(hintNames))
	for h := HintVsync; h <= HintLaunch; h++ {
		names = append(names, hintNames[h])
	}
	return names
}

// ParseHint accepts a hint name (case-insensitive, "-" or "_") or its number.
func ParseHint(s string) (Hint, error) {
	key := normalize(s)
	for h, name := range hintNames {
		if name == key {
			return h, nil
		}
	}
	if n, err := strconv.Atoi(key); err == nil && n > 0 {
		return Hint(n), nil
	}
	return 0, fmt.Errorf("unknown power hint %q", s)
}

// Feature is a toggle accepted by SetFeature.
type Feature int

const FeatureDoubleTapToWake Feature = 1

func (f Feature) String() string {
	if f == FeatureDoubleTapToWake {
		return "double_tap_to_wake"
	}
	return fmt.Sprintf("feature(%d)", int(f))
}

// ParseFeature accepts a feature name or its number.
func ParseFeature(s string) (Feature, error) {
	key := normalize(s)
	if key == FeatureDoubleTapToWake.String() {
		return FeatureDoubleTapToWake, nil
	}
	if n, err := strconv.Atoi(key); err == nil && n > 0 {
		return Feature(n), nil
	}
	return 0, fmt.Errorf("unknown power feature %q", s)
}

// Query is a read-only value reported by GetFeature.
type Query int

const QuerySupportedProfiles Query = 1

func (q Query) String() string {
	if q == QuerySupportedProfiles {
		return "supported_profiles"
	}
	return fmt.Sprintf("query(%d)", int(q))
}

// ParseQuery accepts a query name or its number.
func ParseQuery(s string) (Query, error) {
	key := normalize(s)
	if key == QuerySupportedProfiles.String() {
		return QuerySupportedProfiles, nil
	}
	if n, err := strconv.Atoi(key); err == nil && n > 0 {
		return Query(n), nil
	}
	return 0, fmt.Errorf("unknown power feature query %q", s)
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}
