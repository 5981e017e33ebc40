package chip8

import (
	"errors"

	"github.com/octet-labs/chip8vm/translate"
)

var f = translate.From

var (
	// Stack errors
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
)

// ErrUnimplemented is returned for an instruction that matches no opcode.
type ErrUnimplemented Nibbles

func (e ErrUnimplemented) Error() string {
	return f("unimplemented instruction %X%X%X%X", e[0], e[1], e[2], e[3])
}

// ErrProgramTooLarge is returned when a program image would overrun the
// display bitmap.
type ErrProgramTooLarge struct {
	Size int
	Free int
}

func (e *ErrProgramTooLarge) Error() string {
	return f("program too large (size: %v bytes, free memory: %v bytes)", e.Size, e.Free)
}

// Fault reports the instruction that failed to execute.
type Fault struct {
	PC  uint16
	N   Nibbles
	Err error
}

func (e *Fault) Error() string {
	return f("fault at #%03X executing %X %X %X %X: %v", e.PC, e.N[0], e.N[1], e.N[2], e.N[3], e.Err)
}

func (e *Fault) Unwrap() error {
	return e.Err
}

// ErrRate is returned for a clock rate outside 1..MaxRate.
type ErrRate int

func (e ErrRate) Error() string {
	return f("invalid clock rate %v, must be between 1 and %v", int(e), MaxRate)
}

// ErrSyntax locates an assembler error.
type ErrSyntax struct {
	Line int
	Err  error
}

func (e *ErrSyntax) Error() string {
	if e.Line > 0 {
		return f("line %v: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ErrSyntax) Unwrap() error {
	return e.Err
}
