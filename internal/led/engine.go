package led

import (
	"log/slog"

	"github.com/smazurov/tenderhal/pkg/lm8502"
)

// Engine drives the lm8502 lighting engines. Every call opens its own
// session on the device and closes it before returning; nothing is cached
// between calls, the engine state lives in the hardware.
//
// Engine does not serialise callers. Use a Manager when requests can arrive
// concurrently.
type Engine struct {
	path   string
	open   lm8502.Opener
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithOpener replaces the function used to open the device.
func WithOpener(open lm8502.Opener) EngineOption {
	return func(e *Engine) {
		e.open = open
	}
}

// NewEngine creates an engine controller for the device at path.
func NewEngine(path string, logger *slog.Logger, opts ...EngineOption) *Engine {
	if path == "" {
		path = lm8502.DefaultPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		path:   path,
		open:   lm8502.Open,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Path returns the device path.
func (e *Engine) Path() string {
	return e.path
}

// ApplyState loads the program for state and runs it.
//
// A non-zero state downloads its program and starts engine 2 then engine 1.
// State 0 downloads the reset program, starts engine 1 to run it, stops both
// engines and waits for the driver to report them stopped. Each step runs
// only if every earlier step succeeded, except that engine 2 is always
// stopped once stopping has begun. The last recorded failure is returned as
// a *StepError, so a failed engine 2 stop wins over a failed engine 1 stop;
// a failed wait is only logged.
func (e *Engine) ApplyState(state int) error {
	program := lm8502.ProgramFor(state)
	mc := program.Microcode()
	on := state != 0

	if on {
		e.logger.Debug("Enabling notification light", "state", state, "program", program.Name)
	} else {
		e.logger.Debug("Disabling notification light", "state", state)
	}

	dev, err := e.open(e.path)
	if err != nil {
		e.logger.Error("Opening LED device failed", "path", e.path, "error", err)
		return &StepError{Step: StepOpen, Path: e.path, Err: err}
	}
	defer e.closeDevice(dev)

	if err := dev.DownloadMicrocode(&mc); err != nil {
		return e.fail(StepDownload, err)
	}

	if on {
		if err := dev.StartEngine(lm8502.Engine2); err != nil {
			return e.fail(StepStartEngine2, err)
		}
	}

	if err := dev.StartEngine(lm8502.Engine1); err != nil {
		return e.fail(StepStartEngine1, err)
	}

	if on {
		return nil
	}

	e.logger.Debug("Stopping LED engines")
	stop1 := dev.StopEngine(lm8502.Engine1)
	stop2 := dev.StopEngine(lm8502.Engine2)
	if stop2 != nil {
		// engine 2's failure supersedes engine 1's when both stops fail
		if stop1 != nil {
			e.logger.Error("LED step failed", "step", StepStopEngine1.String(), "error", stop1)
		}
		return e.fail(StepStopEngine2, stop2)
	}
	if stop1 != nil {
		return e.fail(StepStopEngine1, stop1)
	}

	e.logger.Debug("Waiting for LED engines to stop after reset")
	status, err := dev.WaitForEngineStopped()
	if err != nil {
		e.logger.Warn("Waiting for LED reset failed", "error", err)
		return nil
	}
	e.logger.Debug("LED reset finished", "stop_status", status)

	return nil
}

// Initialize puts the engines into a known idle state: an all-zero program
// is downloaded and both engines are stopped. Failures are logged only.
func (e *Engine) Initialize() {
	dev, err := e.open(e.path)
	if err != nil {
		e.logger.Error("Cannot open LED device", "path", e.path, "error", err)
		return
	}
	defer e.closeDevice(dev)

	var blank lm8502.Microcode
	if err := dev.DownloadMicrocode(&blank); err != nil {
		e.logger.Error("Cannot download LED microcode", "error", err)
		return
	}
	if err := dev.StopEngine(lm8502.Engine1); err != nil {
		e.logger.Error("Cannot stop LED engine", "engine", lm8502.Engine1.String(), "error", err)
	}
	if err := dev.StopEngine(lm8502.Engine2); err != nil {
		e.logger.Error("Cannot stop LED engine", "engine", lm8502.Engine2.String(), "error", err)
	}

	e.logger.Info("LED engines initialized", "path", e.path)
}

func (e *Engine) fail(step Step, err error) error {
	e.logger.Error("LED step failed", "step", step.String(), "error", err)
	return &StepError{Step: step, Path: e.path, Err: err}
}

func (e *Engine) closeDevice(dev lm8502.Device) {
	if err := dev.Close(); err != nil {
		e.logger.Warn("Closing LED device failed", "path", e.path, "error", err)
	}
}
