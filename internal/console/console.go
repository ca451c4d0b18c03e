// Package console implements lc3.Console against the process's own
// stdin and stdout.
//
// The non-blocking poll works by putting the stdin fd in non-blocking
// mode with syscall.SetNonblock, then reading a single byte with
// syscall.Read, treating EAGAIN/EWOULDBLOCK as "nothing available"
// rather than an error. Only instantiated by cmd/lc3's main, never in
// tests — tests use a scripted buffer instead.
package console

import (
	"bufio"
	"errors"
	"io"
	"os"
	"syscall"
)

// Stdio is an lc3.Console backed by the process's stdin/stdout.
type Stdio struct {
	in     int // stdin file descriptor
	out    *bufio.Writer
	peeked bool
	byte   byte
}

// New returns a Stdio console. The caller is responsible for putting
// stdin into raw mode beforehand (see internal/term); Stdio only
// manages non-blocking polling, not terminal discipline.
func New() *Stdio {
	return &Stdio{
		in:  int(os.Stdin.Fd()),
		out: bufio.NewWriter(os.Stdout),
	}
}

// PollReady reports whether a byte is waiting on stdin, without
// consuming it beyond an internal one-byte lookahead buffer.
func (s *Stdio) PollReady() (bool, error) {
	if s.peeked {
		return true, nil
	}
	if err := syscall.SetNonblock(s.in, true); err != nil {
		return false, err
	}
	defer syscall.SetNonblock(s.in, false)

	var buf [1]byte
	n, err := syscall.Read(s.in, buf[:])
	switch {
	case n > 0:
		s.byte = buf[0]
		s.peeked = true
		return true, nil
	case errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK):
		return false, nil
	case err != nil:
		return false, err
	default: // n == 0, no error: EOF on stdin
		return false, nil
	}
}

// ReadByte returns the next byte from stdin, blocking until one is
// available. If PollReady already latched a byte, that byte is
// returned first.
func (s *Stdio) ReadByte() (byte, error) {
	if s.peeked {
		s.peeked = false
		return s.byte, nil
	}
	var buf [1]byte
	for {
		n, err := syscall.Read(s.in, buf[:])
		if n > 0 {
			return buf[0], nil
		}
		if err != nil && !errors.Is(err, syscall.EAGAIN) && !errors.Is(err, syscall.EWOULDBLOCK) {
			return 0, err
		}
		if n == 0 && err == nil {
			return 0, io.EOF
		}
	}
}

// WriteByte writes b to stdout's buffer.
func (s *Stdio) WriteByte(b byte) error {
	return s.out.WriteByte(b)
}

// Flush flushes buffered stdout.
func (s *Stdio) Flush() error {
	return s.out.Flush()
}
