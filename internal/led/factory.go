package led

import (
	"os"

	"github.com/smazurov/tenderhal/internal/logging"
	"github.com/smazurov/tenderhal/pkg/lm8502"
)

// New creates the LED controller for the device at path.
// Falls back to a no-op controller if the device node does not exist.
func New(path string, logger logging.Logger, opts ...EngineOption) Controller {
	if path == "" {
		path = lm8502.DefaultPath
	}

	if !deviceExists(path) {
		if logger != nil {
			logger.Info("No LED device found, using no-op controller", "path", path)
		}
		return newNoop(logging.GetLogger("led"))
	}

	if logger != nil {
		logger.Info("Detected lm8502 LED controller", "path", path)
	}
	return newNotification(NewEngine(path, logging.GetLogger("led"), opts...))
}

// deviceExists reports whether path names a character device.
func deviceExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
