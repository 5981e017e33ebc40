package chip8

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// String disassembles the instruction.
func (i Instruction) String() string {
	// machine code calls, never executed
	if i.Op == OpInvalid && i.N[0] == 0 {
		return fmt.Sprintf("%-6s #%03X", "SYS", i.NNN())
	}

	ops := i.operands()
	if ops == "" {
		return i.Op.String()
	}

	return fmt.Sprintf("%-6s %s", i.Op, ops)
}

func (i Instruction) operands() string {
	x, y := i.X(), i.Y()

	switch i.Op {
	case OpJP, OpCALL:
		return fmt.Sprintf("#%03X", i.NNN())
	case OpSE, OpSNE, OpLD, OpADD, OpRND:
		return fmt.Sprintf("V%X, #%02X", x, i.KK())
	case OpSEXY, OpSNEXY, OpLDXY, OpOR, OpAND, OpXOR, OpADDXY, OpSUB, OpSUBN:
		return fmt.Sprintf("V%X, V%X", x, y)
	case OpSHR, OpSHL, OpSKP, OpSKNP:
		return fmt.Sprintf("V%X", x)
	case OpLDI:
		return fmt.Sprintf("I, #%03X", i.NNN())
	case OpJPV0:
		return fmt.Sprintf("V0, #%03X", i.NNN())
	case OpDRW:
		return fmt.Sprintf("V%X, V%X, %d", x, y, i.Nibble())
	case OpLDXDT:
		return fmt.Sprintf("V%X, DT", x)
	case OpLDXK:
		return fmt.Sprintf("V%X, K", x)
	case OpLDDTX:
		return fmt.Sprintf("DT, V%X", x)
	case OpLDSTX:
		return fmt.Sprintf("ST, V%X", x)
	case OpADDIX:
		return fmt.Sprintf("I, V%X", x)
	case OpLDFX:
		return fmt.Sprintf("F, V%X", x)
	case OpLDBX:
		return fmt.Sprintf("B, V%X", x)
	case OpSTORE:
		return fmt.Sprintf("[I], V%X", x)
	case OpRESTORE:
		return fmt.Sprintf("V%X, [I]", x)
	}

	return ""
}

// Disassemble the instruction at address.
func (vm *VM) Disassemble(address uint16) string {
	inst := Decode(vm.Memory.Read(address), vm.Memory.Read(address+1))

	return fmt.Sprintf("%04X - %v", address, inst)
}

// Disassemble writes a listing of program, assumed to be loaded at base.
// A trailing odd byte is listed as data.
func Disassemble(w io.Writer, program []byte, base uint16) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	address := base
	for i := 0; i < len(program); i += 2 {
		if i+1 == len(program) {
			fmt.Fprintf(tw, "%03X\t%02X\tBYTE #%02X\n", address, program[i], program[i])
			break
		}

		inst := Decode(program[i], program[i+1])

		fmt.Fprintf(tw, "%03X\t%04X\t%v\n", address, inst.Word(), inst)
		address += 2
	}

	return tw.Flush()
}
