// Package term puts stdin into raw, no-echo mode for the duration of
// the fetch loop and guarantees it is restored afterward.
package term

import (
	"os"

	"golang.org/x/term"
)

// Raw is a scoped acquisition of stdin's raw terminal mode, bound to
// the lifetime of the fetch loop: acquired at startup, restored on
// every exit path (normal HALT, decode error, or signal) via Restore.
type Raw struct {
	fd    int
	state *term.State
}

// Acquire puts stdin into raw mode and returns a Raw handle to restore
// it. If stdin is not a terminal (e.g. piped input in tests), Acquire
// returns a no-op Raw whose Restore does nothing.
func Acquire() (*Raw, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return &Raw{fd: fd}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Raw{fd: fd, state: state}, nil
}

// Restore returns stdin to whatever mode it was in before Acquire. It
// is safe to call more than once and safe to call on a no-op Raw.
func (r *Raw) Restore() error {
	if r == nil || r.state == nil {
		return nil
	}
	state := r.state
	r.state = nil
	return term.Restore(r.fd, state)
}
