package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/tenderhal/cmd"
	"github.com/smazurov/tenderhal/internal/api"
	"github.com/smazurov/tenderhal/internal/config"
	"github.com/smazurov/tenderhal/internal/events"
	"github.com/smazurov/tenderhal/internal/led"
	"github.com/smazurov/tenderhal/internal/logging"
	"github.com/smazurov/tenderhal/internal/metrics/exporters"
	"github.com/smazurov/tenderhal/internal/power"
	"github.com/smazurov/tenderhal/internal/systemd"
	"golang.org/x/sync/errgroup"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Listen       string `help:"Address to listen on" short:"l" default:":8090" toml:"server.listen" env:"SERVER_LISTEN"`
	AuthUsername string `help:"Basic auth username (empty disables auth)" default:"" toml:"server.auth_username" env:"SERVER_AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"server.auth_password" env:"SERVER_AUTH_PASSWORD"`

	// Lights settings
	LightsEnabled bool   `help:"Enable notification LED control" default:"true" toml:"lights.enabled" env:"LIGHTS_ENABLED"`
	LightsDevice  string `help:"LED engine device node" default:"/dev/lm8502" toml:"lights.device" env:"LIGHTS_DEVICE"`

	// Power settings
	PowerSocket          string `help:"Touchscreen driver socket" default:"/dev/socket/tsdriver" toml:"power.socket" env:"POWER_SOCKET"`
	PowerMaxFreqPath     string `help:"Maximum CPU frequency limit file" default:"/sys/kernel/cpufreq_limit/limited_max_freq" toml:"power.max_freq_path" env:"POWER_MAX_FREQ_PATH"`
	PowerMinFreqPath     string `help:"Minimum CPU frequency limit file" default:"/sys/kernel/cpufreq_limit/limited_min_freq" toml:"power.min_freq_path" env:"POWER_MIN_FREQ_PATH"`
	PowerLowPowerMaxFreq int    `help:"Maximum frequency in low power mode (kHz)" default:"1026000" toml:"power.low_power_max_freq" env:"POWER_LOW_POWER_MAX_FREQ"`
	PowerLowPowerMinFreq int    `help:"Minimum frequency in low power mode (kHz)" default:"384000" toml:"power.low_power_min_freq" env:"POWER_LOW_POWER_MIN_FREQ"`
	PowerNormalMaxFreq   int    `help:"Maximum frequency outside low power mode (kHz)" default:"1512000" toml:"power.normal_max_freq" env:"POWER_NORMAL_MAX_FREQ"`
	PowerHotReload       bool   `help:"Reload frequency settings when the config file changes" default:"true" toml:"power.hot_reload" env:"POWER_HOT_RELOAD"`

	// Metrics settings
	MetricsEnabled bool `help:"Serve Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
}

func (o *Options) limits() power.Limits {
	return power.Limits{
		MaxFreqPath: o.PowerMaxFreqPath,
		MinFreqPath: o.PowerMinFreqPath,
		LowPowerMax: o.PowerLowPowerMaxFreq,
		LowPowerMin: o.PowerLowPowerMinFreq,
		NormalMax:   o.PowerNormalMaxFreq,
	}
}

// applyTunables overlays the non-zero reloaded settings on base.
func applyTunables(base power.Limits, t config.PowerTunables) power.Limits {
	if t.MaxFreqPath != "" {
		base.MaxFreqPath = t.MaxFreqPath
	}
	if t.MinFreqPath != "" {
		base.MinFreqPath = t.MinFreqPath
	}
	if t.LowPowerMaxFreq > 0 {
		base.LowPowerMax = t.LowPowerMaxFreq
	}
	if t.LowPowerMinFreq > 0 {
		base.LowPowerMin = t.LowPowerMinFreq
	}
	if t.NormalMaxFreq > 0 {
		base.NormalMax = t.NormalMaxFreq
	}
	return base
}

func main() {
	var cli humacli.CLI

	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		loggingConfig := config.LoadLoggingConfig(opts.Config)
		loggingConfig.Level = opts.LoggingLevel
		loggingConfig.Format = opts.LoggingFormat
		logging.Initialize(loggingConfig)

		logger := logging.GetLogger("main")

		var (
			ledManager *led.Manager
			watcher    *config.Watcher[config.PowerTunables]
			server     *api.Server
			notifier   *systemd.Notifier
			cancel     context.CancelFunc
		)

		hooks.OnStart(func() {
			eventBus := events.New()
			logging.SetLogCallback(func(entry logging.LogEntry) {
				eventBus.Publish(api.LogEntryEvent(entry))
			})

			apiOpts := &api.Options{
				AuthUsername: opts.AuthUsername,
				AuthPassword: opts.AuthPassword,
				EventBus:     eventBus,
			}

			if opts.LightsEnabled {
				logger.Info("LED control enabled, initializing", "device", opts.LightsDevice)
				ledManager = led.NewManager(led.New(opts.LightsDevice, logger), eventBus, logging.GetLogger("led"))
				ledManager.Start()
				apiOpts.Lights = ledManager
			}

			baseLimits := opts.limits()
			hal := power.NewHAL(power.NewState(), logging.GetLogger("power"),
				power.WithLimits(baseLimits),
				power.WithNotifier(power.NewSocketNotifier(opts.PowerSocket)),
				power.WithEventBus(eventBus))
			hal.Init()
			apiOpts.Power = hal

			if opts.PowerHotReload {
				watcher = config.NewConfigWatcher(opts.Config, config.LoadPowerTunables, logging.GetLogger("config"),
					config.WithErrorHandler[config.PowerTunables](func(err error) {
						logger.Warn("Ignoring invalid power settings", "path", opts.Config, "error", err)
					}))
				watcher.OnReload(func(t config.PowerTunables) {
					hal.SetLimits(applyTunables(baseLimits, t))
					eventBus.Publish(events.ConfigReloadedEvent{
						Path:      opts.Config,
						Timestamp: time.Now().Format(time.RFC3339),
					})
				})
				if err := watcher.Start(); err != nil {
					logger.Warn("Config hot reload disabled", "path", opts.Config, "error", err)
					watcher = nil
				}
			}

			if opts.MetricsEnabled {
				apiOpts.PrometheusHandler = exporters.HTTPHandler(logging.GetLogger("metrics"))
			}

			server = api.NewServer(apiOpts)

			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			group, ctx := errgroup.WithContext(ctx)
			notifier = systemd.NewNotifier(logging.GetLogger("systemd"))

			group.Go(func() error {
				notifier.RunWatchdog(ctx)
				return nil
			})
			group.Go(func() error {
				logger.Info("Starting HTTP server", "addr", opts.Listen)
				return server.Start(opts.Listen)
			})
			notifier.Ready()

			if startErr := group.Wait(); startErr != nil {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			if notifier != nil {
				notifier.Stopping()
			}

			if server != nil {
				ctx, stop := context.WithTimeout(context.Background(), 5*time.Second)
				if stopErr := server.Stop(ctx); stopErr != nil {
					logger.Error("Error stopping HTTP server", "error", stopErr)
				}
				stop()
			}

			if watcher != nil {
				if stopErr := watcher.Stop(); stopErr != nil {
					logger.Warn("Error stopping config watcher", "error", stopErr)
				}
			}

			if ledManager != nil {
				ledManager.Stop()
			}

			if cancel != nil {
				cancel()
			}
		})
	})

	cli.Root().Use = "tenderhal"
	cli.Root().Short = "Notification LED and power HAL daemon for the tenderloin board"

	cli.Root().AddCommand(cmd.CreateLEDCmd())
	cli.Root().AddCommand(cmd.CreatePowerCmd())

	cli.Run()
}
