package chip8

// Nibbles are the four 4-bit fields of an instruction, high nibble first.
type Nibbles [4]byte

// Split breaks the two instruction bytes into nibbles.
func Split(hi, lo byte) Nibbles {
	return Nibbles{hi >> 4, hi & 0xF, lo >> 4, lo & 0xF}
}

// Combine folds a sequence of nibbles into an unsigned value, first nibble
// most significant.
func Combine(nibbles ...byte) uint16 {
	v := uint16(0)

	for _, n := range nibbles {
		v <<= 4
		v += uint16(n)
	}

	return v
}

// Op identifies the operation an instruction performs.
type Op uint8

// Operations, one per opcode. OpInvalid is anything that doesn't decode.
const (
	OpInvalid Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1NNN
	OpCALL       // 2NNN
	OpSE         // 3XKK
	OpSNE        // 4XKK
	OpSEXY       // 5XY0
	OpLD         // 6XKK
	OpADD        // 7XKK
	OpLDXY       // 8XY0
	OpOR         // 8XY1
	OpAND        // 8XY2
	OpXOR        // 8XY3
	OpADDXY      // 8XY4
	OpSUB        // 8XY5
	OpSHR        // 8XY6
	OpSUBN       // 8XY7
	OpSHL        // 8XYE
	OpSNEXY      // 9XY0
	OpLDI        // ANNN
	OpJPV0       // BNNN
	OpRND        // CXKK
	OpDRW        // DXYN
	OpSKP        // EX9E
	OpSKNP       // EXA1
	OpLDXDT      // FX07
	OpLDXK       // FX0A
	OpLDDTX      // FX15
	OpLDSTX      // FX18
	OpADDIX      // FX1E
	OpLDFX       // FX29
	OpLDBX       // FX33
	OpSTORE      // FX55
	OpRESTORE    // FX65
)

var mnemonics = [...]string{
	OpInvalid: "??",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSE:      "SE",
	OpSNE:     "SNE",
	OpSEXY:    "SE",
	OpLD:      "LD",
	OpADD:     "ADD",
	OpLDXY:    "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDXY:   "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEXY:   "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDXDT:   "LD",
	OpLDXK:    "LD",
	OpLDDTX:   "LD",
	OpLDSTX:   "LD",
	OpADDIX:   "ADD",
	OpLDFX:    "LD",
	OpLDBX:    "LD",
	OpSTORE:   "LD",
	OpRESTORE: "LD",
}

// String returns the assembler mnemonic of the operation.
func (op Op) String() string {
	if int(op) < len(mnemonics) {
		return mnemonics[op]
	}

	return mnemonics[OpInvalid]
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op Op
	N  Nibbles
}

// X is the first register operand.
func (i Instruction) X() byte { return i.N[1] }

// Y is the second register operand.
func (i Instruction) Y() byte { return i.N[2] }

// Nibble is the 4-bit immediate in the low nibble.
func (i Instruction) Nibble() byte { return i.N[3] }

// KK is the 8-bit immediate in the low byte.
func (i Instruction) KK() byte { return byte(Combine(i.N[2:]...)) }

// NNN is the 12-bit address in the low three nibbles.
func (i Instruction) NNN() uint16 { return Combine(i.N[1:]...) }

// Word returns the instruction as it is stored in memory.
func (i Instruction) Word() uint16 { return Combine(i.N[:]...) }

// Decode classifies the instruction formed by two consecutive bytes.
func Decode(hi, lo byte) Instruction {
	n := Split(hi, lo)

	return Instruction{Op: classify(n), N: n}
}

func classify(n Nibbles) Op {
	switch n[0] {
	case 0x0:
		switch Combine(n[1:]...) {
		case 0x0E0:
			return OpCLS
		case 0x0EE:
			return OpRET
		}
	case 0x1:
		return OpJP
	case 0x2:
		return OpCALL
	case 0x3:
		return OpSE
	case 0x4:
		return OpSNE
	case 0x5:
		if n[3] == 0 {
			return OpSEXY
		}
	case 0x6:
		return OpLD
	case 0x7:
		return OpADD
	case 0x8:
		switch n[3] {
		case 0x0:
			return OpLDXY
		case 0x1:
			return OpOR
		case 0x2:
			return OpAND
		case 0x3:
			return OpXOR
		case 0x4:
			return OpADDXY
		case 0x5:
			return OpSUB
		case 0x6:
			return OpSHR
		case 0x7:
			return OpSUBN
		case 0xE:
			return OpSHL
		}
	case 0x9:
		if n[3] == 0 {
			return OpSNEXY
		}
	case 0xA:
		return OpLDI
	case 0xB:
		return OpJPV0
	case 0xC:
		return OpRND
	case 0xD:
		return OpDRW
	case 0xE:
		switch Combine(n[2:]...) {
		case 0x9E:
			return OpSKP
		case 0xA1:
			return OpSKNP
		}
	case 0xF:
		switch Combine(n[2:]...) {
		case 0x07:
			return OpLDXDT
		case 0x0A:
			return OpLDXK
		case 0x15:
			return OpLDDTX
		case 0x18:
			return OpLDSTX
		case 0x1E:
			return OpADDIX
		case 0x29:
			return OpLDFX
		case 0x33:
			return OpLDBX
		case 0x55:
			return OpSTORE
		case 0x65:
			return OpRESTORE
		}
	}

	return OpInvalid
}
