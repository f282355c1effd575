package power

import (
	"fmt"
	"net"
	"time"
)

const DefaultSocketPath = "/dev/socket/tsdriver"

// Touchscreen driver commands.
const (
	ScreenOn  byte = 'O'
	ScreenOff byte = 'C'
)

// Notifier delivers a one-byte command to the touchscreen driver.
type Notifier interface {
	Notify(cmd byte) error
}

// SocketNotifier sends each command on a fresh connection to a Unix stream
// socket.
type SocketNotifier struct {
	Path    string
	Timeout time.Duration
}

// NewSocketNotifier creates a notifier for the socket at path.
func NewSocketNotifier(path string) *SocketNotifier {
	if path == "" {
		path = DefaultSocketPath
	}
	return &SocketNotifier{Path: path, Timeout: time.Second}
}

// Notify connects, writes cmd and disconnects.
func (n *SocketNotifier) Notify(cmd byte) error {
	conn, err := net.DialTimeout("unix", n.Path, n.Timeout)
	if err != nil {
		return fmt.Errorf("connect touchscreen socket: %w", err)
	}
	defer conn.Close()

	return send(conn, cmd, n.Timeout)
}

// send writes cmd to conn, bounding the write by timeout when it is set.
func send(conn net.Conn, cmd byte, timeout time.Duration) error {
	if timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return fmt.Errorf("set touchscreen write deadline: %w", err)
		}
	}
	if _, err := conn.Write([]byte{cmd}); err != nil {
		return fmt.Errorf("send touchscreen command %q: %w", cmd, err)
	}
	return nil
}
