// Package logging provides structured logging with per-module log levels.
//
// Every logger fans out to stdout (when something is attached to it), the
// systemd journal (when journald is reachable) and an in-memory ring buffer
// that backs the log stream endpoint.
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"led":   "debug",
//			"power": "warn",
//		},
//	})
//
// Then ask for a logger by module:
//
//	logger := logging.GetLogger("power")
//	logger.Info("Low power mode enabled", "max_freq", 1026000)
//
// Levels can be changed while running with SetLevel. Loggers created before
// Initialize are kept and pick up the configured level.
//
// Journal entries carry SYSLOG_IDENTIFIER=tenderhal and one upper-cased field
// per attribute:
//
//	journalctl -t tenderhal -f
//	journalctl -t tenderhal MODULE=led STEP=stop_engine1
//
// TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	buffer_size = 500
//
//	[logging.modules]
//	led = "debug"
package logging
