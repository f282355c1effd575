//go:build linux

package lm8502

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

type device struct {
	fd int
}

var _ Device = (*device)(nil)

// Open opens the lm8502 control device for reading and writing.
// The returned error is the unix.Errno reported by open(2).
func Open(path string) (Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return &device{fd: fd}, nil
}

// ioctlPtr issues a request whose argument points into Go memory.
func ioctlPtr(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// ioctlVal issues a request whose argument is passed by value.
func ioctlVal(fd int, req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

func (d *device) DownloadMicrocode(mc *Microcode) error {
	buf := mc.Bytes()
	return ioctlPtr(d.fd, ReqDownloadMicrocode, unsafe.Pointer(&buf[0]))
}

func (d *device) StartEngine(e Engine) error {
	return ioctlVal(d.fd, ReqStartEngine, uintptr(e))
}

func (d *device) StopEngine(e Engine) error {
	return ioctlVal(d.fd, ReqStopEngine, uintptr(e))
}

func (d *device) WaitForEngineStopped() (int32, error) {
	var status int32
	err := ioctlPtr(d.fd, ReqWaitForEngineStopped, unsafe.Pointer(&status))
	return status, err
}

func (d *device) Close() error {
	return unix.Close(d.fd)
}
