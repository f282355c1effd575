// Package lm8502 provides pure Go bindings to the lm8502 LED controller
// character device.
//
// The lm8502 has two programmable lighting engines. A program is downloaded
// as a fixed block of 96 16-bit words and the engines are then started or
// stopped individually. The request numbers and the word encoding are those
// of the kernel driver (include/linux/i2c_lm8502_led.h) and must not be
// reinterpreted.
//
// # Usage
//
//	dev, err := lm8502.Open(lm8502.DefaultPath)
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	mc := lm8502.ProgramFor(1).Microcode()
//	if err := dev.DownloadMicrocode(&mc); err != nil {
//	    return err
//	}
//	if err := dev.StartEngine(lm8502.Engine2); err != nil {
//	    return err
//	}
//	return dev.StartEngine(lm8502.Engine1)
//
// This package does not use cgo.
package lm8502

import (
	"encoding/binary"
	"fmt"
)

// DefaultPath is the device node created by the kernel driver.
const DefaultPath = "/dev/lm8502"

// Request numbers understood by the driver. These are raw numbers, not
// _IOC-encoded values.
const (
	ReqDownloadMicrocode    = 1
	ReqStopEngine           = 3
	ReqWaitForEngineStopped = 8
	ReqStartEngine          = 9
)

// MicrocodeWords is the size of a microcode download in 16-bit words.
const MicrocodeWords = 96

// Endianness of the microcode payload.
var Endianness = binary.LittleEndian

// Engine identifies one of the two lighting engines.
type Engine int

const (
	Engine1 Engine = 1
	Engine2 Engine = 2
)

func (e Engine) String() string {
	switch e {
	case Engine1:
		return "engine1"
	case Engine2:
		return "engine2"
	default:
		return fmt.Sprintf("Engine(%d)", int(e))
	}
}

// Microcode is the fixed-size block handed to the driver on download.
// Unused trailing words are zero.
type Microcode [MicrocodeWords]uint16

// NewMicrocode copies words into a zero-filled Microcode.
func NewMicrocode(words []uint16) (Microcode, error) {
	var mc Microcode
	if len(words) > MicrocodeWords {
		return mc, fmt.Errorf("program has %d words, device accepts at most %d", len(words), MicrocodeWords)
	}
	copy(mc[:], words)
	return mc, nil
}

// Bytes returns the microcode packed as the driver expects it.
func (m *Microcode) Bytes() []byte {
	buf := make([]byte, 2*MicrocodeWords)
	for i, w := range m {
		Endianness.PutUint16(buf[2*i:], w)
	}
	return buf
}

// Len returns the number of words up to and including the last non-zero word.
func (m *Microcode) Len() int {
	for i := MicrocodeWords - 1; i >= 0; i-- {
		if m[i] != 0 {
			return i + 1
		}
	}
	return 0
}

// Device is an open session on the lm8502 character device.
type Device interface {
	// DownloadMicrocode loads a program into the engines' program memory.
	DownloadMicrocode(mc *Microcode) error
	// StartEngine starts executing the loaded program on an engine.
	StartEngine(e Engine) error
	// StopEngine halts an engine.
	StopEngine(e Engine) error
	// WaitForEngineStopped blocks until the driver reports the engines idle
	// and returns the driver's stop status word.
	WaitForEngineStopped() (int32, error)
	// Close releases the device.
	Close() error
}

// Opener opens a Device at the given path.
type Opener func(path string) (Device, error)
