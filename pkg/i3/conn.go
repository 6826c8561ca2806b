// Package i3 is a client for the i3 window manager IPC socket. It
// implements the subset of the protocol this daemon needs: running
// commands, fetching the container tree, and subscribing to window and
// workspace events.
package i3

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Message type codes of the IPC protocol.
const (
	msgRunCommand    uint32 = 0
	msgGetWorkspaces uint32 = 1
	msgSubscribe     uint32 = 2
	msgGetTree       uint32 = 4
	msgGetVersion    uint32 = 7
)

// Event frames carry the high bit of the type word.
const eventFlag uint32 = 1 << 31

// Event type codes.
const (
	eventWorkspace uint32 = 0
	eventWindow    uint32 = 3
)

// Every frame starts with this marker, followed by a u32 payload
// length and a u32 message type, both in the manager's native
// (little-endian) byte order.
var magic = []byte("i3-ipc")

const headerSize = 6 + 4 + 4

// ErrBadMagic reports a frame that does not start with the protocol
// marker. The stream position cannot be trusted after this.
var ErrBadMagic = errors.New("malformed frame: bad magic")

// SocketPath discovers the manager's IPC socket path: $I3SOCK when
// set, otherwise the manager binary is asked directly.
func SocketPath() (string, error) {
	if path := os.Getenv("I3SOCK"); path != "" {
		return path, nil
	}

	out, err := exec.Command("i3", "--get-socketpath").Output()
	if err != nil {
		return "", errors.Wrap(err, "cannot discover the i3 socket path")
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", errors.New("i3 reported an empty socket path")
	}
	return path, nil
}

// Conn frames and unframes IPC messages over a stream. One Conn must
// only be used from a single goroutine.
type Conn struct {
	rw io.ReadWriteCloser
}

// Dial opens a connection to the manager socket at path.
func Dial(path string) (*Conn, error) {
	sock, err := net.Dial("unix", path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot connect to i3 socket %q", path)
	}
	return &Conn{rw: sock}, nil
}

// NewConn wraps an existing stream. Used by tests.
func NewConn(rw io.ReadWriteCloser) *Conn {
	return &Conn{rw: rw}
}

// WriteMessage sends one framed message.
func (c *Conn) WriteMessage(kind uint32, payload []byte) error {
	frame := make([]byte, headerSize+len(payload))
	copy(frame, magic)
	binary.LittleEndian.PutUint32(frame[6:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(frame[10:], kind)
	copy(frame[headerSize:], payload)

	if _, err := c.rw.Write(frame); err != nil {
		return errors.Wrap(err, "failed to write message")
	}
	return nil
}

// ReadMessage blocks until one framed message arrives and returns its
// type code and payload.
func (c *Conn) ReadMessage() (uint32, []byte, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(c.rw, header); err != nil {
		return 0, nil, errors.Wrap(err, "failed to read header")
	}
	if !bytes.Equal(header[:6], magic) {
		return 0, nil, ErrBadMagic
	}

	length := binary.LittleEndian.Uint32(header[6:])
	kind := binary.LittleEndian.Uint32(header[10:])

	payload := make([]byte, length)
	if _, err := io.ReadFull(c.rw, payload); err != nil {
		return 0, nil, errors.Wrap(err, "failed to read payload")
	}
	return kind, payload, nil
}

// Close closes the underlying stream.
func (c *Conn) Close() error {
	return c.rw.Close()
}
