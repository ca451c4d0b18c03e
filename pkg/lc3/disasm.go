package lc3

import "fmt"

// Disassemble decodes word and returns a human-readable assembly
// rendering of it, for the -v trace flag and the lc3dis tool.
func Disassemble(word uint16) string {
	ins, err := Decode(word)
	if err != nil {
		return fmt.Sprintf("<reserved: 0x%04X>", word)
	}

	switch ins.Op {
	case OpBR:
		return fmt.Sprintf("BR%s%s%s #%d", nzpSuffix(ins.NZP, CondNegative, "n"),
			nzpSuffix(ins.NZP, CondZero, "z"), nzpSuffix(ins.NZP, CondPositive, "p"),
			int16(ins.PCOffset9))
	case OpADD:
		return fmt.Sprintf("ADD R%d, R%d, %s", ins.DR, ins.SR1, aluOperandString(ins.ALU))
	case OpAND:
		return fmt.Sprintf("AND R%d, R%d, %s", ins.DR, ins.SR1, aluOperandString(ins.ALU))
	case OpNOT:
		return fmt.Sprintf("NOT R%d, R%d", ins.DR, ins.SR)
	case OpLD:
		return fmt.Sprintf("LD R%d, #%d", ins.DR, int16(ins.PCOffset9))
	case OpLDI:
		return fmt.Sprintf("LDI R%d, #%d", ins.DR, int16(ins.PCOffset9))
	case OpLDR:
		return fmt.Sprintf("LDR R%d, R%d, #%d", ins.DR, ins.BaseR, int16(ins.Offset6))
	case OpLEA:
		return fmt.Sprintf("LEA R%d, #%d", ins.DR, int16(ins.PCOffset9))
	case OpST:
		return fmt.Sprintf("ST R%d, #%d", ins.SR, int16(ins.PCOffset9))
	case OpSTI:
		return fmt.Sprintf("STI R%d, #%d", ins.SR, int16(ins.PCOffset9))
	case OpSTR:
		return fmt.Sprintf("STR R%d, R%d, #%d", ins.SR, ins.BaseR, int16(ins.Offset6))
	case OpJMP:
		if ins.BaseR == 7 {
			return "RET"
		}
		return fmt.Sprintf("JMP R%d", ins.BaseR)
	case OpJSR:
		if ins.LongFlag {
			return fmt.Sprintf("JSR #%d", int16(ins.PCOffset11))
		}
		return fmt.Sprintf("JSRR R%d", ins.BaseR)
	case OpRTI:
		return "RTI"
	case OpTRAP:
		return trapMnemonic(ins.TrapVect)
	default:
		return fmt.Sprintf("<unknown: 0x%04X>", word)
	}
}

func aluOperandString(op ALUOperand) string {
	switch v := op.(type) {
	case RegisterOperand:
		return fmt.Sprintf("R%d", v.SR2)
	case ImmediateOperand:
		return fmt.Sprintf("#%d", int16(v.Imm5))
	default:
		return "?"
	}
}

func nzpSuffix(nzp, bit uint16, letter string) string {
	if nzp&bit != 0 {
		return letter
	}
	return ""
}

func trapMnemonic(vector uint16) string {
	switch vector {
	case TrapGetc:
		return "TRAP GETC"
	case TrapOut:
		return "TRAP OUT"
	case TrapPuts:
		return "TRAP PUTS"
	case TrapIn:
		return "TRAP IN"
	case TrapPutsp:
		return "TRAP PUTSP"
	case TrapHalt:
		return "TRAP HALT"
	default:
		return fmt.Sprintf("TRAP x%02X", vector)
	}
}
