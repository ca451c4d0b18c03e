package lc3

import (
	"fmt"
	"io"
)

// State is the fetch loop's coarse execution state.
type State int

const (
	// Running is the normal fetch-decode-execute state.
	Running State = iota
	// Halted is terminal; reached only via TRAP HALT.
	Halted
)

// Machine is a complete LC-3 virtual machine: memory, registers, and
// the console capability traps are serviced against. It is a single
// owned value, not process-wide state, so more than one Machine can
// exist concurrently (though a single Machine must only ever be
// driven by one goroutine).
type Machine struct {
	Mem *Memory
	Reg Registers

	console Console
	state   State
}

// NewMachine returns a Machine reset to its power-on state, with memory
// reads of KBSR serviced by console. console may be nil for tests that
// never touch the keyboard or traps.
func NewMachine(console Console) *Machine {
	m := &Machine{
		Mem:     NewMemory(console),
		console: console,
		state:   Running,
	}
	m.Reg.Reset()
	return m
}

// State reports the machine's current execution state.
func (m *Machine) State() State {
	return m.state
}

// LoadImage loads an object image into the machine's memory. It may be
// called more than once; later images overlay earlier ones at their
// own origins.
func (m *Machine) LoadImage(r io.Reader) (uint16, error) {
	return m.Mem.LoadImage(r)
}

// Step fetches, decodes, and executes a single instruction. PC is
// incremented before the instruction is decoded and executed, so that
// PC-relative offsets are computed against the incremented PC, per the
// LC-3 reference semantics.
func (m *Machine) Step() error {
	word, err := m.Mem.Read(m.Reg.PC)
	if err != nil {
		return err
	}
	m.Reg.PC++

	ins, err := Decode(word)
	if err != nil {
		return fmt.Errorf("lc3: at PC=0x%04X word=0x%04X: %w", m.Reg.PC-1, word, err)
	}
	return m.execute(ins)
}

// Run repeatedly calls Step until the machine halts or an error
// occurs. A halt is reported as ErrHalted from Step and is not
// propagated as an error from Run.
func (m *Machine) Run() error {
	for m.state == Running {
		if err := m.Step(); err != nil {
			if err == ErrHalted {
				return nil
			}
			return err
		}
	}
	return nil
}

func (m *Machine) execute(ins Instruction) error {
	switch ins.Op {
	case OpADD:
		var rhs uint16
		switch op := ins.ALU.(type) {
		case RegisterOperand:
			rhs = m.Reg.R[op.SR2]
		case ImmediateOperand:
			rhs = op.Imm5
		}
		m.Reg.R[ins.DR] = m.Reg.R[ins.SR1] + rhs
		m.Reg.SetCC(m.Reg.R[ins.DR])

	case OpAND:
		var rhs uint16
		switch op := ins.ALU.(type) {
		case RegisterOperand:
			rhs = m.Reg.R[op.SR2]
		case ImmediateOperand:
			rhs = op.Imm5
		}
		m.Reg.R[ins.DR] = m.Reg.R[ins.SR1] & rhs
		m.Reg.SetCC(m.Reg.R[ins.DR])

	case OpNOT:
		m.Reg.R[ins.DR] = ^m.Reg.R[ins.SR]
		m.Reg.SetCC(m.Reg.R[ins.DR])

	case OpBR:
		if ins.NZP&m.Reg.COND != 0 {
			m.Reg.PC += ins.PCOffset9
		}

	case OpJMP:
		m.Reg.PC = m.Reg.R[ins.BaseR]

	case OpJSR:
		if ins.LongFlag {
			m.Reg.R[7] = m.Reg.PC
			m.Reg.PC += ins.PCOffset11
		} else {
			target := m.Reg.R[ins.BaseR] // read before clobbering R7 (covers BaseR==7)
			m.Reg.R[7] = m.Reg.PC
			m.Reg.PC = target
		}

	case OpLD:
		v, err := m.Mem.Read(m.Reg.PC + ins.PCOffset9)
		if err != nil {
			return err
		}
		m.Reg.R[ins.DR] = v
		m.Reg.SetCC(v)

	case OpLDI:
		addr, err := m.Mem.Read(m.Reg.PC + ins.PCOffset9)
		if err != nil {
			return err
		}
		v, err := m.Mem.Read(addr)
		if err != nil {
			return err
		}
		m.Reg.R[ins.DR] = v
		m.Reg.SetCC(v)

	case OpLDR:
		v, err := m.Mem.Read(m.Reg.R[ins.BaseR] + ins.Offset6)
		if err != nil {
			return err
		}
		m.Reg.R[ins.DR] = v
		m.Reg.SetCC(v)

	case OpLEA:
		v := m.Reg.PC + ins.PCOffset9
		m.Reg.R[ins.DR] = v
		m.Reg.SetCC(v)

	case OpST:
		m.Mem.Write(m.Reg.PC+ins.PCOffset9, m.Reg.R[ins.SR])

	case OpSTI:
		addr, err := m.Mem.Read(m.Reg.PC + ins.PCOffset9)
		if err != nil {
			return err
		}
		m.Mem.Write(addr, m.Reg.R[ins.SR])

	case OpSTR:
		m.Mem.Write(m.Reg.R[ins.BaseR]+ins.Offset6, m.Reg.R[ins.SR])

	case OpRTI:
		// no-op: this core has no supervisor stack to pop PC/PSR from.

	case OpTRAP:
		m.Reg.R[7] = m.Reg.PC
		return m.trap(ins.TrapVect)
	}
	return nil
}
