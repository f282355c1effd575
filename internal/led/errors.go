package led

import (
	"errors"
	"fmt"
	"syscall"
)

// Step identifies one hardware operation in an engine sequence.
type Step uint8

const (
	StepOpen Step = iota
	StepDownload
	StepStartEngine2
	StepStartEngine1
	StepStopEngine1
	StepStopEngine2
	StepWaitStopped
)

// String returns a string representation of the step.
func (s Step) String() string {
	switch s {
	case StepOpen:
		return "open"
	case StepDownload:
		return "download_microcode"
	case StepStartEngine2:
		return "start_engine2"
	case StepStartEngine1:
		return "start_engine1"
	case StepStopEngine1:
		return "stop_engine1"
	case StepStopEngine2:
		return "stop_engine2"
	case StepWaitStopped:
		return "wait_engine_stopped"
	default:
		return fmt.Sprintf("Step(%d)", s)
	}
}

// StepError reports the hardware step that failed and why.
type StepError struct {
	Step Step
	Path string
	Err  error
}

func (e *StepError) Error() string {
	if e.Step == StepOpen {
		return fmt.Sprintf("open %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("lm8502 %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Code converts an error returned by Engine.ApplyState into the negated
// errno the HAL reports: 0 for nil, -errno for system errors and -EIO when
// the cause carries no errno.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return -int(errno)
	}
	return -int(syscall.EIO)
}

// FailedStep returns the step recorded in err, if any.
func FailedStep(err error) (Step, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step, true
	}
	return 0, false
}
