package lc3

import "fmt"

// trap services the six TRAP vectors this core recognizes. R7 has
// already been set to the post-TRAP PC by the caller.
func (m *Machine) trap(vector uint16) error {
	if m.console == nil {
		return fmt.Errorf("lc3: trap 0x%02X: %w", vector, errNoConsole)
	}

	switch vector {
	case TrapGetc:
		b, err := m.console.ReadByte()
		if err != nil {
			return fmt.Errorf("lc3: GETC: %w", err)
		}
		m.Reg.R[0] = uint16(b)
		m.Reg.SetCC(m.Reg.R[0])

	case TrapOut:
		if err := m.console.WriteByte(byte(m.Reg.R[0])); err != nil {
			return fmt.Errorf("lc3: OUT: %w", err)
		}
		if err := m.console.Flush(); err != nil {
			return fmt.Errorf("lc3: OUT: %w", err)
		}

	case TrapPuts:
		if err := m.writeString(m.Reg.R[0]); err != nil {
			return fmt.Errorf("lc3: PUTS: %w", err)
		}
		if err := m.console.Flush(); err != nil {
			return fmt.Errorf("lc3: PUTS: %w", err)
		}

	case TrapIn:
		for _, c := range "Enter a character: " {
			if err := m.console.WriteByte(byte(c)); err != nil {
				return fmt.Errorf("lc3: IN: %w", err)
			}
		}
		b, err := m.console.ReadByte()
		if err != nil {
			return fmt.Errorf("lc3: IN: %w", err)
		}
		if err := m.console.WriteByte(b); err != nil {
			return fmt.Errorf("lc3: IN: %w", err)
		}
		m.Reg.R[0] = uint16(b)
		m.Reg.SetCC(m.Reg.R[0])
		if err := m.console.Flush(); err != nil {
			return fmt.Errorf("lc3: IN: %w", err)
		}

	case TrapPutsp:
		if err := m.writePackedString(m.Reg.R[0]); err != nil {
			return fmt.Errorf("lc3: PUTSP: %w", err)
		}
		if err := m.console.Flush(); err != nil {
			return fmt.Errorf("lc3: PUTSP: %w", err)
		}

	case TrapHalt:
		for _, c := range "HALT\n" {
			if err := m.console.WriteByte(byte(c)); err != nil {
				return fmt.Errorf("lc3: HALT: %w", err)
			}
		}
		if err := m.console.Flush(); err != nil {
			return fmt.Errorf("lc3: HALT: %w", err)
		}
		m.state = Halted
		return ErrHalted

	default:
		return fmt.Errorf("lc3: vector 0x%02X: %w", vector, ErrUnknownTrap)
	}
	return nil
}

// writeString emits successive words starting at addr as low-byte
// characters until a zero word, per TRAP PUTS.
func (m *Machine) writeString(addr uint16) error {
	for {
		w, err := m.Mem.Read(addr)
		if err != nil {
			return err
		}
		if w == 0 {
			return nil
		}
		if err := m.console.WriteByte(byte(w)); err != nil {
			return err
		}
		addr++
	}
}

// writePackedString emits, for each word starting at addr, its low
// byte then (if non-zero) its high byte, stopping at a zero word, per
// TRAP PUTSP.
func (m *Machine) writePackedString(addr uint16) error {
	for {
		w, err := m.Mem.Read(addr)
		if err != nil {
			return err
		}
		if w == 0 {
			return nil
		}
		lo := byte(w)
		if err := m.console.WriteByte(lo); err != nil {
			return err
		}
		if hi := byte(w >> 8); hi != 0 {
			if err := m.console.WriteByte(hi); err != nil {
				return err
			}
		}
		addr++
	}
}
