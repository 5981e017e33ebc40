package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/octet-labs/chip8vm/chip8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProgram(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	rom := filepath.Join(dir, "TEST.ch8")
	require.NoError(t, os.WriteFile(rom, []byte{0xA2, 0x2A, 0x00, 0xE0}, 0o644))

	program, err := loadProgram(&Config{Program: rom})
	assert.NoError(err)
	assert.Equal([]byte{0xA2, 0x2A, 0x00, 0xE0}, program)

	source := filepath.Join(dir, "TEST.asm")
	require.NoError(t, os.WriteFile(source, []byte("    LD I, #22A\n    CLS\n"), 0o644))

	program, err = loadProgram(&Config{Program: source, Assemble: true})
	assert.NoError(err)
	assert.Equal([]byte{0xA2, 0x2A, 0x00, 0xE0}, program)

	_, err = loadProgram(&Config{Program: filepath.Join(dir, "MISSING")})
	assert.True(errors.Is(err, os.ErrNotExist))
}

// headless is a front end that quits after a number of polls.
type headless struct {
	chip8.NullDisplay

	polls     int
	refreshes int
}

func (h *headless) Refresh() error {
	h.refreshes++
	return nil
}

func (h *headless) Poll() bool {
	h.polls--
	return h.polls >= 0
}

func (h *headless) Close() {}

func TestLoopQuits(t *testing.T) {
	assert := assert.New(t)

	vm := chip8.New(nil, nil)
	require.NoError(t, vm.Load([]byte{0x12, 0x00}))

	fe := &headless{polls: 5}

	assert.NoError(loop(context.Background(), fe, vm, chip8.DefaultRate))
	assert.Equal(5, fe.refreshes)
}

func TestLoopFault(t *testing.T) {
	vm := chip8.New(nil, nil)
	require.NoError(t, vm.Load([]byte{0x00, 0xEE}))

	fe := &headless{polls: int(time.Minute / (time.Second / 60))}

	err := loop(context.Background(), fe, vm, chip8.DefaultRate)

	assert.ErrorIs(t, err, chip8.ErrStackUnderflow)
}
