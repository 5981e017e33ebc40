package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint16(0x123), Combine(0x1, 0x2, 0x3))
	assert.Equal(uint16(0x3), Combine(0x3))
	assert.Equal(uint16(0x1234), Combine(0x1, 0x2, 0x3, 0x4))
	assert.Equal(uint16(0), Combine())
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		hi, lo byte
		op     Op
	}){
		{0x00, 0xE0, OpCLS},
		{0x00, 0xEE, OpRET},
		{0x01, 0x23, OpInvalid},
		{0x12, 0x34, OpJP},
		{0x2A, 0xBC, OpCALL},
		{0x31, 0x22, OpSE},
		{0x41, 0x22, OpSNE},
		{0x51, 0x20, OpSEXY},
		{0x51, 0x21, OpInvalid},
		{0x6F, 0xFF, OpLD},
		{0x7F, 0x01, OpADD},
		{0x81, 0x20, OpLDXY},
		{0x81, 0x21, OpOR},
		{0x81, 0x22, OpAND},
		{0x81, 0x23, OpXOR},
		{0x81, 0x24, OpADDXY},
		{0x81, 0x25, OpSUB},
		{0x81, 0x26, OpSHR},
		{0x81, 0x27, OpSUBN},
		{0x81, 0x28, OpInvalid},
		{0x81, 0x2E, OpSHL},
		{0x91, 0x20, OpSNEXY},
		{0x91, 0x2F, OpInvalid},
		{0xA2, 0x2A, OpLDI},
		{0xB3, 0x00, OpJPV0},
		{0xC1, 0x0F, OpRND},
		{0xD0, 0x15, OpDRW},
		{0xE1, 0x9E, OpSKP},
		{0xE1, 0xA1, OpSKNP},
		{0xE1, 0xA2, OpInvalid},
		{0xF1, 0x07, OpLDXDT},
		{0xF1, 0x0A, OpLDXK},
		{0xF1, 0x15, OpLDDTX},
		{0xF1, 0x18, OpLDSTX},
		{0xF1, 0x1E, OpADDIX},
		{0xF1, 0x29, OpLDFX},
		{0xF1, 0x33, OpLDBX},
		{0xF1, 0x55, OpSTORE},
		{0xF1, 0x65, OpRESTORE},
		{0xF1, 0x75, OpInvalid},
	}

	for _, entry := range table {
		inst := Decode(entry.hi, entry.lo)

		assert.Equal(entry.op, inst.Op, "%02X%02X", entry.hi, entry.lo)
		assert.Equal(Combine(entry.hi>>4, entry.hi&0xF, entry.lo>>4, entry.lo&0xF), inst.Word())
	}
}

func TestInstructionFields(t *testing.T) {
	assert := assert.New(t)

	inst := Decode(0xD3, 0x4A)

	assert.Equal(Nibbles{0xD, 0x3, 0x4, 0xA}, inst.N)
	assert.Equal(byte(0x3), inst.X())
	assert.Equal(byte(0x4), inst.Y())
	assert.Equal(byte(0xA), inst.Nibble())
	assert.Equal(byte(0x4A), inst.KK())
	assert.Equal(uint16(0x34A), inst.NNN())
	assert.Equal(uint16(0xD34A), inst.Word())
}
