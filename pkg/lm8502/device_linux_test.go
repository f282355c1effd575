//go:build linux

package lm8502

import (
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "lm8502"))
	if !errors.Is(err, unix.ENOENT) {
		t.Fatalf("Open() error = %v, want ENOENT", err)
	}
}

func TestIoctlOnRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-device")
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT, 0o600)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	unix.Close(fd)

	dev, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer dev.Close()

	// Regular files reject driver requests.
	if err := dev.StartEngine(Engine1); !errors.Is(err, unix.ENOTTY) {
		t.Errorf("StartEngine() error = %v, want ENOTTY", err)
	}
}
