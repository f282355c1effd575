//go:build !linux

package lm8502

import "errors"

// ErrUnsupported is returned by Open on platforms without the driver.
var ErrUnsupported = errors.New("lm8502: unsupported platform")

// Open always fails outside Linux.
func Open(string) (Device, error) {
	return nil, ErrUnsupported
}
