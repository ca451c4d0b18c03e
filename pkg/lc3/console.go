package lc3

// Console is the capability the machine needs from the outside world:
// a byte-oriented terminal. The driver supplies a real implementation
// bound to stdin/stdout (see internal/console); tests supply a
// scripted buffer.
//
// It exposes exactly four capabilities — read a byte, write a byte,
// poll for readiness, and flush buffered output — which is what the
// LC-3 trap set and the KBSR poll need and nothing more.
type Console interface {
	// ReadByte blocks until a byte is available and returns it. Used
	// by TRAP GETC and TRAP IN.
	ReadByte() (byte, error)

	// WriteByte writes a single byte. Used by TRAP OUT, PUTS, PUTSP,
	// and IN's echo.
	WriteByte(b byte) error

	// PollReady reports whether a byte is currently available to read
	// without blocking. It must not consume the byte. Used by KBSR.
	PollReady() (bool, error)

	// Flush makes any buffered output visible. Called at the end of
	// every trap that writes output (OUT, PUTS, IN, PUTSP, HALT) so
	// interactive programs stay responsive.
	Flush() error
}
