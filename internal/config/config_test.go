package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

type testOptions struct {
	Config string `help:"Config file path"`

	Listen          string   `toml:"server.listen" env:"LISTEN"`
	LightsEnabled   bool     `toml:"lights.enabled" env:"LIGHTS_ENABLED"`
	PowerNormalMax  int      `toml:"power.normal_max_freq" env:"POWER_NORMAL_MAX"`
	ServerAllowList []string `toml:"server.allow" env:"SERVER_ALLOW"`
	LoggingLevel    string   `toml:"logging.level" env:"LOGGING_LEVEL"`
}

const sampleConfig = `
[server]
listen = ":9090"
allow = ["127.0.0.1", "10.0.0.0/8"]

[lights]
enabled = true

[power]
normal_max_freq = 1188000

[logging]
level = "debug"
format = "json"
buffer_size = 200
api = "warn"

[logging.modules]
led = "debug"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFromTOML(t *testing.T) {
	opts := &testOptions{Config: writeTemp(t, sampleConfig)}

	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := &testOptions{
		Config:          opts.Config,
		Listen:          ":9090",
		LightsEnabled:   true,
		PowerNormalMax:  1188000,
		ServerAllowList: []string{"127.0.0.1", "10.0.0.0/8"},
		LoggingLevel:    "debug",
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("got %+v, want %+v", opts, want)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	t.Setenv("TENDERHAL_LISTEN", ":7000")
	t.Setenv("TENDERHAL_POWER_NORMAL_MAX", "1404000")
	t.Setenv("TENDERHAL_SERVER_ALLOW", " a , b ")

	opts := &testOptions{Config: writeTemp(t, sampleConfig)}

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&opts.Listen, "listen", ":8090", "")
	cmd.Flags().StringVar(&opts.LoggingLevel, "logging-level", "info", "")
	if err := cmd.Flags().Set("logging-level", "error"); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"env beats file", opts.Listen, ":7000"},
		{"env int", opts.PowerNormalMax, 1404000},
		{"env list", opts.ServerAllowList, []string{"a", "b"}},
		{"file only", opts.LightsEnabled, true},
		{"flag beats env and file", opts.LoggingLevel, "error"},
	}
	for _, tt := range tests {
		if !reflect.DeepEqual(tt.got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "invalid toml", content: "[server\nlisten = "},
		{name: "wrong type", content: "[lights]\nenabled = \"yes\"\n"},
		{name: "bad env int", env: map[string]string{"TENDERHAL_POWER_NORMAL_MAX": "fast"}},
		{name: "bad env bool", env: map[string]string{"TENDERHAL_LIGHTS_ENABLED": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			opts := &testOptions{}
			if tt.content != "" {
				opts.Config = writeTemp(t, tt.content)
			}
			if err := LoadConfig(opts, nil); err == nil {
				t.Error("LoadConfig should fail")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	opts := &testOptions{Config: filepath.Join(t.TempDir(), "absent.toml"), Listen: ":8090"}

	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig should not fail for missing file: %v", err)
	}
	if opts.Listen != ":8090" {
		t.Errorf("default overwritten: %q", opts.Listen)
	}
}

func TestGetNestedValue(t *testing.T) {
	data := map[string]any{
		"power": map[string]any{
			"limits": map[string]any{"max": int64(1)},
			"socket": "/dev/socket/tsdriver",
		},
		"root": "value",
	}

	tests := []struct {
		path string
		want any
	}{
		{"root", "value"},
		{"power.socket", "/dev/socket/tsdriver"},
		{"power.limits.max", int64(1)},
		{"missing", nil},
		{"root.child", nil},
		{"power.missing", nil},
	}
	for _, tt := range tests {
		if got := getNestedValue(data, tt.path); got != tt.want {
			t.Errorf("getNestedValue(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFieldNameToFlag(t *testing.T) {
	tests := map[string]string{
		"Listen":          "listen",
		"LoggingLevel":    "logging-level",
		"PowerSocketPath": "power-socket-path",
	}
	for in, want := range tests {
		if got := fieldNameToFlag(in); got != want {
			t.Errorf("fieldNameToFlag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadLoggingConfig(t *testing.T) {
	cfg := LoadLoggingConfig(writeTemp(t, sampleConfig))

	if cfg.Level != "debug" || cfg.Format != "json" || cfg.BufferSize != 200 {
		t.Errorf("cfg = %+v", cfg)
	}
	wantModules := map[string]string{"api": "warn", "led": "debug"}
	if !reflect.DeepEqual(cfg.Modules, wantModules) {
		t.Errorf("Modules = %v, want %v", cfg.Modules, wantModules)
	}

	defaults := LoadLoggingConfig("")
	if defaults.Level != "info" || defaults.Format != "text" {
		t.Errorf("defaults = %+v", defaults)
	}
}

func TestLoadPowerTunables(t *testing.T) {
	path := writeTemp(t, `
[power]
max_freq_path = "/tmp/max"
low_power_max_freq = 918000
low_power_min_freq = 192000
`)

	got, err := LoadPowerTunables(path)
	if err != nil {
		t.Fatalf("LoadPowerTunables() error = %v", err)
	}
	want := PowerTunables{MaxFreqPath: "/tmp/max", LowPowerMaxFreq: 918000, LowPowerMinFreq: 192000}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if _, err := LoadPowerTunables(writeTemp(t, "[power]\nnormal_max_freq = -1\n")); err == nil {
		t.Error("negative frequency accepted")
	}
}
