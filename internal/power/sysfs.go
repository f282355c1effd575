package power

import (
	"fmt"
	"os"
	"strconv"
)

const (
	DefaultMaxFreqPath = "/sys/kernel/cpufreq_limit/limited_max_freq"
	DefaultMinFreqPath = "/sys/kernel/cpufreq_limit/limited_min_freq"
)

// Limits are the CPU frequency tunables, in kHz, and the files they go to.
type Limits struct {
	MaxFreqPath string `json:"max_freq_path" doc:"Maximum frequency limit file"`
	MinFreqPath string `json:"min_freq_path" doc:"Minimum frequency limit file"`
	LowPowerMax int    `json:"low_power_max" example:"1026000" doc:"Maximum frequency in low power mode"`
	LowPowerMin int    `json:"low_power_min" example:"384000" doc:"Minimum frequency in low power mode"`
	NormalMax   int    `json:"normal_max" example:"1512000" doc:"Maximum frequency outside low power mode"`
}

// DefaultLimits returns the tenderloin frequency limits.
func DefaultLimits() Limits {
	return Limits{
		MaxFreqPath: DefaultMaxFreqPath,
		MinFreqPath: DefaultMinFreqPath,
		LowPowerMax: 1026000,
		LowPowerMin: 384000,
		NormalMax:   1512000,
	}
}

// withDefaults fills zero fields from DefaultLimits.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxFreqPath == "" {
		l.MaxFreqPath = d.MaxFreqPath
	}
	if l.MinFreqPath == "" {
		l.MinFreqPath = d.MinFreqPath
	}
	if l.LowPowerMax <= 0 {
		l.LowPowerMax = d.LowPowerMax
	}
	if l.LowPowerMin <= 0 {
		l.LowPowerMin = d.LowPowerMin
	}
	if l.NormalMax <= 0 {
		l.NormalMax = d.NormalMax
	}
	return l
}

// Writer writes a value to a sysfs attribute.
type Writer interface {
	WriteFile(path, value string) error
}

// WriteError reports a failed sysfs write.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// FileWriter writes sysfs attributes. Files are opened write-only and never
// created or truncated.
type FileWriter struct{}

// WriteFile writes value to path.
func (FileWriter) WriteFile(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	_, err = f.WriteString(value)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func formatFreq(khz int) string {
	return strconv.Itoa(khz)
}
