package lc3

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Memory is the LC-3's word-addressed address space: 65,536 16-bit
// words, with KBSR/KBDR carved out for memory-mapped keyboard I/O.
//
// Like the register file, Memory is plain state owned by the Machine
// value rather than a file-scope global.
type Memory struct {
	words   [MemorySize]uint16
	console Console
}

// NewMemory returns a zeroed Memory backed by console for KBSR polling.
// console may be nil; in that case KBSR always reads as 0 (no input
// ever ready), which is sufficient for tests that don't exercise I/O.
func NewMemory(console Console) *Memory {
	return &Memory{console: console}
}

// Read returns the word at addr. Reading KBSR first polls the console:
// if a byte is waiting, KBSR is latched to 0x8000 and the byte is
// copied into KBDR; otherwise KBSR reads as 0. This must happen on
// every KBSR read, not on a timer, because the guest's canonical
// keyboard-wait loop is "LDI R0,KBSR; BRzp loop" (or, as this core
// generalizes it, any direct or indirect read of KBSR).
func (m *Memory) Read(addr uint16) (uint16, error) {
	if addr == KBSR {
		if err := m.pollKeyboard(); err != nil {
			return 0, err
		}
	}
	return m.words[addr], nil
}

// Write stores word at addr. Writes to KBSR/KBDR are accepted and
// stored but have no side effect.
func (m *Memory) Write(addr, word uint16) {
	m.words[addr] = word
}

func (m *Memory) pollKeyboard() error {
	if m.console == nil {
		m.words[KBSR] = 0
		return nil
	}
	ready, err := m.console.PollReady()
	if err != nil {
		return fmt.Errorf("lc3: keyboard poll: %w", err)
	}
	if !ready {
		m.words[KBSR] = 0
		return nil
	}
	b, err := m.console.ReadByte()
	if err != nil {
		return fmt.Errorf("lc3: keyboard read: %w", err)
	}
	m.words[KBSR] = 0x8000
	m.words[KBDR] = uint16(b)
	return nil
}

// LoadImage reads an LC-3 object image from r and places it in memory.
//
// The image format is big-endian throughout: the first two bytes are
// the origin word O; every following pair of bytes is one payload word
// placed at O, O+1, ... in order. A stream that would overflow the
// address space is truncated at the boundary rather than rejected, by
// construction of the loop below. Returns the origin address loaded.
//
// Calling LoadImage more than once against the same Memory overlays
// the new image's words onto whatever was loaded before it, at the new
// image's own origin — this is how multiple image arguments on the
// driver's command line compose.
func (m *Memory) LoadImage(r io.Reader) (origin uint16, err error) {
	var header [2]byte
	n, err := io.ReadFull(r, header[:])
	if err == io.EOF || err == io.ErrUnexpectedEOF || n < 2 {
		return 0, ErrShortHeader
	}
	if err != nil {
		return 0, fmt.Errorf("lc3: reading image origin: %w", err)
	}
	origin = binary.BigEndian.Uint16(header[:])

	addr := uint32(origin)
	buf := make([]byte, 2)
	for addr < MemorySize {
		n, err := io.ReadFull(r, buf)
		if n == 1 {
			return origin, ErrOddTail
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return origin, fmt.Errorf("lc3: reading image payload: %w", err)
		}
		m.words[uint16(addr)] = binary.BigEndian.Uint16(buf)
		addr++
	}
	return origin, nil
}
