package main

import (
	"errors"
	"io"
	"testing"

	"github.com/octet-labs/chip8vm/chip8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	assert := assert.New(t)

	c, err := ParseConfig("chip8vm", []string{"games/PONG"}, io.Discard)
	require.NoError(t, err)

	assert.Equal("games/PONG", c.Program)
	assert.Equal(chip8.DefaultRate, c.Rate)
	assert.Equal(BackendSDL, c.Backend)
	assert.Equal(10, c.Scale)
	assert.False(c.Assemble)
	assert.False(c.Disassemble)
	assert.False(c.Mute)
}

func TestParseConfigRate(t *testing.T) {
	assert := assert.New(t)

	c, err := ParseConfig("chip8vm", []string{"-backend", "term", "-mute", "games/PONG", "500"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(500, c.Rate)
	assert.Equal(BackendTerm, c.Backend)
	assert.True(c.Mute)

	c, err = ParseConfig("chip8vm", []string{"-rate", "700", "games/PONG"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(700, c.Rate)
}

func TestParseConfigNoProgram(t *testing.T) {
	c, err := ParseConfig("chip8vm", nil, io.Discard)

	require.NoError(t, err)
	assert.Empty(t, c.Program)
}

func TestParseConfigErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		args []string
	}){
		{"bad_rate", []string{"games/PONG", "fast"}},
		{"zero_rate", []string{"games/PONG", "0"}},
		{"too_many", []string{"games/PONG", "500", "extra"}},
		{"backend", []string{"-backend", "vga", "games/PONG"}},
		{"scale", []string{"-scale", "0", "games/PONG"}},
		{"asm_disasm", []string{"-asm", "-disasm", "games/PONG"}},
		{"output", []string{"-o", "out.ch8", "games/PONG"}},
		{"term_no_program", []string{"-backend", "term"}},
		{"asm_no_program", []string{"-asm"}},
		{"flag", []string{"-nope"}},
	}

	for _, entry := range table {
		c, err := ParseConfig("chip8vm", entry.args, io.Discard)

		assert.Error(err, entry.name)
		assert.Nil(c, entry.name)
	}
}

func TestValidateRate(t *testing.T) {
	c := &Config{Rate: -1, Backend: BackendSDL, Scale: 1}

	var rate chip8.ErrRate
	assert.True(t, errors.As(c.Validate(), &rate))
}
