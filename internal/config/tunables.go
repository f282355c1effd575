package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// PowerTunables are the [power] frequency settings that can change while
// the daemon runs. Zero values mean "use the built-in default".
type PowerTunables struct {
	MaxFreqPath     string `toml:"max_freq_path"`
	MinFreqPath     string `toml:"min_freq_path"`
	LowPowerMaxFreq int    `toml:"low_power_max_freq"`
	LowPowerMinFreq int    `toml:"low_power_min_freq"`
	NormalMaxFreq   int    `toml:"normal_max_freq"`
}

// Validate checks that the configured frequencies are consistent.
func (p PowerTunables) Validate() error {
	for name, v := range map[string]int{
		"low_power_max_freq": p.LowPowerMaxFreq,
		"low_power_min_freq": p.LowPowerMinFreq,
		"normal_max_freq":    p.NormalMaxFreq,
	} {
		if v < 0 {
			return fmt.Errorf("power.%s must not be negative", name)
		}
	}
	if p.LowPowerMinFreq > 0 && p.LowPowerMaxFreq > 0 && p.LowPowerMinFreq > p.LowPowerMaxFreq {
		return fmt.Errorf("power.low_power_min_freq %d exceeds low_power_max_freq %d",
			p.LowPowerMinFreq, p.LowPowerMaxFreq)
	}
	return nil
}

// LoadPowerTunables reads the [power] section of the config file at path.
// It is the loader used by the config watcher.
func LoadPowerTunables(path string) (PowerTunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PowerTunables{}, err
	}

	var file struct {
		Power PowerTunables `toml:"power"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return PowerTunables{}, fmt.Errorf("failed to parse TOML config: %w", err)
	}
	if err := file.Power.Validate(); err != nil {
		return PowerTunables{}, err
	}
	return file.Power, nil
}
