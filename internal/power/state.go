package power

import "sync"

// State holds the power HAL's process state: whether the CPU is capped for
// low power and the last interactive value sent to the touchscreen.
type State struct {
	mu       sync.Mutex
	lowPower bool

	imu         sync.Mutex
	interactive int // -1 until the first SetInteractive
}

// NewState returns the state of a freshly started HAL.
func NewState() *State {
	return &State{interactive: -1}
}

// LowPower reports whether low power mode is active.
func (s *State) LowPower() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lowPower
}

// Interactive returns the last interactive value and whether one was set.
func (s *State) Interactive() (on, known bool) {
	s.imu.Lock()
	defer s.imu.Unlock()
	return s.interactive == 1, s.interactive >= 0
}

// swapInteractive records on and reports whether it differs from the
// previous value.
func (s *State) swapInteractive(on bool) bool {
	v := 0
	if on {
		v = 1
	}

	s.imu.Lock()
	defer s.imu.Unlock()
	if s.interactive == v {
		return false
	}
	s.interactive = v
	return true
}
