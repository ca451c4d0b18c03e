package lc3

// Opcode identifies the sixteen possible values of instruction bits
// 15:12.
type Opcode uint8

// The sixteen LC-3 opcodes, named after bits 15:12 of the instruction
// word.
const (
	OpBR   Opcode = 0b0000
	OpADD  Opcode = 0b0001
	OpLD   Opcode = 0b0010
	OpST   Opcode = 0b0011
	OpJSR  Opcode = 0b0100 // also JSRR
	OpAND  Opcode = 0b0101
	OpLDR  Opcode = 0b0110
	OpSTR  Opcode = 0b0111
	OpRTI  Opcode = 0b1000
	OpNOT  Opcode = 0b1001
	OpLDI  Opcode = 0b1010
	OpSTI  Opcode = 0b1011
	OpJMP  Opcode = 0b1100
	opResv Opcode = 0b1101 // reserved, never reaches Executor
	OpLEA  Opcode = 0b1110
	OpTRAP Opcode = 0b1111
)

// ALUOperand is the tagged second operand of ADD/AND: either another
// register (SR2) or a sign-extended 5-bit immediate. Keeping this as
// an interface with two concrete implementations - rather than a bool
// flag plus an overlapping field - makes the two modes exhaustively
// matchable instead of relying on a runtime branch.
type ALUOperand interface {
	aluOperand()
}

// RegisterOperand is the ADD/AND operand when instruction bit 5 is 0:
// the second source is another general register.
type RegisterOperand struct {
	SR2 uint16
}

func (RegisterOperand) aluOperand() {}

// ImmediateOperand is the ADD/AND operand when instruction bit 5 is 1:
// the second source is a sign-extended 5-bit immediate.
type ImmediateOperand struct {
	Imm5 uint16
}

func (ImmediateOperand) aluOperand() {}

// Instruction is a decoded instruction word: an Opcode plus whichever
// of the following fields its operand layout uses. The Executor reads
// only the fields relevant to Op.
type Instruction struct {
	Op Opcode

	DR, SR, SR1, BaseR uint16 // register fields, 0-7
	ALU                ALUOperand // ADD/AND second operand
	NZP                uint16     // BR condition mask
	PCOffset9          uint16     // sign-extended, LD/LDI/ST/STI/LEA/BR
	PCOffset11         uint16     // sign-extended, JSR
	Offset6            uint16     // sign-extended, LDR/STR
	TrapVect           uint16     // TRAP
	LongFlag           bool       // JSR (true) vs JSRR (false)
}

// Decode maps a 16-bit instruction word to its Opcode and operand
// bundle. The reserved opcode 0b1101 yields ErrReservedOpcode.
func Decode(word uint16) (Instruction, error) {
	op := Opcode(word >> 12 & 0xF)
	ins := Instruction{Op: op}

	switch op {
	case OpBR:
		ins.NZP = word >> 9 & 0b111
		ins.PCOffset9 = SignExtend(word, 9)
	case OpADD, OpAND:
		ins.DR = word >> 9 & 0b111
		ins.SR1 = word >> 6 & 0b111
		if word&(1<<5) != 0 {
			ins.ALU = ImmediateOperand{Imm5: SignExtend(word, 5)}
		} else {
			ins.ALU = RegisterOperand{SR2: word & 0b111}
		}
	case OpNOT:
		ins.DR = word >> 9 & 0b111
		ins.SR = word >> 6 & 0b111
	case OpLD, OpLDI, OpLEA:
		ins.DR = word >> 9 & 0b111
		ins.PCOffset9 = SignExtend(word, 9)
	case OpST, OpSTI:
		ins.SR = word >> 9 & 0b111
		ins.PCOffset9 = SignExtend(word, 9)
	case OpLDR:
		ins.DR = word >> 9 & 0b111
		ins.BaseR = word >> 6 & 0b111
		ins.Offset6 = SignExtend(word, 6)
	case OpSTR:
		ins.SR = word >> 9 & 0b111
		ins.BaseR = word >> 6 & 0b111
		ins.Offset6 = SignExtend(word, 6)
	case OpJMP:
		ins.BaseR = word >> 6 & 0b111
	case OpJSR:
		ins.LongFlag = word&(1<<11) != 0
		if ins.LongFlag {
			ins.PCOffset11 = SignExtend(word, 11)
		} else {
			ins.BaseR = word >> 6 & 0b111
		}
	case OpRTI:
		// no fields; RTI is a no-op in this core.
	case OpTRAP:
		ins.TrapVect = word & 0xFF
	case opResv:
		return Instruction{}, ErrReservedOpcode
	}
	return ins, nil
}
