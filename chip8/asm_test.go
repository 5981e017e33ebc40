package chip8

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spriteSource = `; draw a block and spin
.START
        CLS
        LD      I, SPRITE
        LD      V0, #10
        DRW     V0, V1, 5
.LOOP   JP      LOOP

.SPRITE BYTE    $1111....
`

func TestAssemble(t *testing.T) {
	rom, err := Assemble([]byte(spriteSource))
	require.NoError(t, err)

	assert.Equal(t, []byte{
		0x00, 0xE0,
		0xA2, 0x0A,
		0x60, 0x10,
		0xD0, 0x15,
		0x12, 0x08,
		0xF0,
	}, rom)
}

func TestAssembleInstructions(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		rom    []byte
	}){
		{"CLS", []byte{0x00, 0xE0}},
		{"RET", []byte{0x00, 0xEE}},
		{"SYS #123", []byte{0x01, 0x23}},
		{"JP #345", []byte{0x13, 0x45}},
		{"JP V0, #345", []byte{0xB3, 0x45}},
		{"CALL #400", []byte{0x24, 0x00}},
		{"SE V1, 10", []byte{0x31, 0x0A}},
		{"SE V1, V2", []byte{0x51, 0x20}},
		{"SNE V1, #FF", []byte{0x41, 0xFF}},
		{"SNE V1, V2", []byte{0x91, 0x20}},
		{"SKP VA", []byte{0xEA, 0x9E}},
		{"SKNP VA", []byte{0xEA, 0xA1}},
		{"LD V3, -1", []byte{0x63, 0xFF}},
		{"LD V3, V4", []byte{0x83, 0x40}},
		{"LD I, #22A", []byte{0xA2, 0x2A}},
		{"LD V3, DT", []byte{0xF3, 0x07}},
		{"LD V3, K", []byte{0xF3, 0x0A}},
		{"LD DT, V3", []byte{0xF3, 0x15}},
		{"LD ST, V3", []byte{0xF3, 0x18}},
		{"LD F, V3", []byte{0xF3, 0x29}},
		{"LD B, V3", []byte{0xF3, 0x33}},
		{"LD [I], V3", []byte{0xF3, 0x55}},
		{"LD V3, [I]", []byte{0xF3, 0x65}},
		{"OR V1, V2", []byte{0x81, 0x21}},
		{"AND V1, V2", []byte{0x81, 0x22}},
		{"XOR V1, V2", []byte{0x81, 0x23}},
		{"ADD V1, V2", []byte{0x81, 0x24}},
		{"ADD V1, 2", []byte{0x71, 0x02}},
		{"ADD I, V1", []byte{0xF1, 0x1E}},
		{"SUB V1, V2", []byte{0x81, 0x25}},
		{"SHR V1", []byte{0x81, 0x16}},
		{"SUBN V1, V2", []byte{0x81, 0x27}},
		{"SHL V1, V2", []byte{0x81, 0x2E}},
		{"RND V1, $....1111", []byte{0xC1, 0x0F}},
		{"DRW V1, V2, 15", []byte{0xD1, 0x2F}},
		{"BCD V1", []byte{0xF1, 0x33}},
		{"WORD #1234, 5", []byte{0x12, 0x34, 0x00, 0x05}},
		{"BYTE 1, 'HI'", []byte{0x01, 'H', 'I'}},
		{"PAD 3", []byte{0, 0, 0}},
		{"BYTE 1\n    ALIGN 4", []byte{1, 0, 0, 0}},
	}

	for _, entry := range table {
		rom, err := Assemble([]byte("    " + entry.source))

		assert.NoError(err, entry.source)
		assert.Equal(entry.rom, rom, entry.source)
	}
}

func TestAssembleLabels(t *testing.T) {
	assert := assert.New(t)

	source := `
.SPEED  EQU     3
.X      EQU     V2
        LD      V1, SPEED
        LD      X, #05
        CALL    SUB
        WORD    DATA
        ALIGN   8
.SUB    RET
.DATA   BYTE    #AA
`

	rom, err := Assemble([]byte(source))
	require.NoError(t, err)

	assert.Equal([]byte{
		0x61, 0x03,
		0x62, 0x05,
		0x22, 0x08,
		0x02, 0x0A,
		0x00, 0xEE,
		0xAA,
	}, rom)
}

func TestAssembleLowerCase(t *testing.T) {
	rom, err := Assemble([]byte(".loop\n    jp loop\n"))

	require.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x00}, rom)
}

func TestAssembleErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		line   int
	}){
		{"    CLS\n    LD V0\n", 2},
		{"CLS\n", 1},
		{"    FOO V1\n", 1},
		{"    LD V0, #100\n", 1},
		{"    DRW V0, V1, 16\n", 1},
		{".A\n.A\n", 2},
		{"    CLS\n    JP NOWHERE\n", 0},
		{"    ALIGN 3\n", 1},
		{"    LD V0, #1G\n", 1},
	}

	for _, entry := range table {
		rom, err := Assemble([]byte(entry.source))

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.source) {
			assert.Equal(entry.line, syntax.Line, entry.source)
		}
		assert.Nil(rom, entry.source)
	}
}

func TestAssembleMissingLabel(t *testing.T) {
	_, err := Assemble([]byte("    JP NOWHERE\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOWHERE")
}

func TestAssembleDisassemble(t *testing.T) {
	rom, err := Assemble([]byte(spriteSource))
	require.NoError(t, err)

	var listing bytes.Buffer
	require.NoError(t, Disassemble(&listing, rom, ProgramStart))

	out := listing.String()

	assert.Contains(t, out, "LD     I, #20A")
	assert.Contains(t, out, "DRW    V0, V1, 5")
	assert.Contains(t, out, "JP     #208")
	assert.Contains(t, out, "BYTE #F0")
}

func TestAssembleSysFaults(t *testing.T) {
	rom, err := Assemble([]byte("    SYS #123\n"))
	require.NoError(t, err)

	assert.Equal(t, "SYS    #123", Decode(rom[0], rom[1]).String())

	vm := New(nil, nil)
	require.NoError(t, vm.Load(rom))

	var unimplemented ErrUnimplemented
	assert.True(t, errors.As(vm.Step(), &unimplemented))
}
