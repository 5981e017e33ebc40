// Package chip8 implements a CHIP-8 virtual machine: memory, registers, the
// instruction decoder and executor, and the clocks that pace them.
package chip8

import (
	"fmt"
	"math/rand"
)

/// StackDepth is the number of nested subroutine calls.
///
const StackDepth = 16

/// Display receives the whole bitmap every time a program changes it. The
/// slice aliases VM memory, so implementations must copy it.
///
type Display interface {
	Draw(video []byte)
}

/// KeySource reports the state of the 16 logical keys.
///
type KeySource interface {
	// Pressed reports whether key is held right now.
	Pressed(key byte) bool

	// Presses delivers each new key press.
	Presses() <-chan byte
}

/// NullDisplay discards everything drawn to it.
///
type NullDisplay struct{}

func (NullDisplay) Draw([]byte) {}

/// VM is the CHIP-8 virtual machine.
///
type VM struct {
	// Memory holds the glyphs, the program and the display bitmap.
	Memory Memory

	// V are the 16 registers. VF doubles as the carry, borrow and collision
	// flag.
	V [16]byte

	// I is the address register.
	I uint16

	// DT and ST are the delay and sound timers as seen by the program.
	// They are copied from Timers at the start of every cycle.
	DT byte
	ST byte

	// PC is the program counter. All programs begin at 0x200.
	PC uint16

	// SP is the number of return addresses on Stack.
	SP byte

	// Stack holds return addresses.
	Stack [StackDepth]uint16

	// Cycles counts executed instructions.
	Cycles int64

	Display Display
	Keys    KeySource
	Timers  *Timers
	Tone    *ToneGate

	// Rand returns a uniformly random byte.
	Rand func() byte

	// awaiting is true while FX0A waits for a key; the key goes to V[waitX].
	awaiting bool
	waitX    byte
}

/// New creates a virtual machine wired to display and keys. Either may be nil.
///
func New(display Display, keys KeySource) *VM {
	if display == nil {
		display = NullDisplay{}
	}
	if keys == nil {
		keys = NewKeypad()
	}

	vm := &VM{
		Display: display,
		Keys:    keys,
		Timers:  &Timers{},
		Tone:    &ToneGate{},
		Rand:    func() byte { return byte(rand.Uint32()) },
	}
	vm.Reset()

	return vm
}

/// Reset clears memory and registers. The program counter is set to 0x200.
///
func (vm *VM) Reset() {
	vm.Memory.Reset()

	vm.V = [16]byte{}
	vm.I = 0
	vm.DT = 0
	vm.ST = 0
	vm.PC = ProgramStart
	vm.SP = 0
	vm.Stack = [StackDepth]uint16{}
	vm.Cycles = 0

	vm.awaiting = false
	vm.waitX = 0

	vm.Timers.SetDelay(0)
	vm.Timers.SetSound(0)
	vm.Tone.Set(false)
}

/// Load resets the machine and copies program to 0x200.
///
func (vm *VM) Load(program []byte) error {
	vm.Reset()

	return vm.Memory.Load(program)
}

/// Awaiting reports whether the machine is blocked on FX0A.
///
func (vm *VM) Awaiting() bool {
	return vm.awaiting
}

/// PressKey completes a pending FX0A with key. It reports whether the key was
/// consumed.
///
func (vm *VM) PressKey(key byte) bool {
	if !vm.awaiting || key > 0xF {
		return false
	}

	vm.V[vm.waitX] = key
	vm.awaiting = false

	return true
}

/// Step executes a single instruction. It does nothing while awaiting a key.
///
func (vm *VM) Step() error {
	if vm.awaiting {
		return nil
	}

	pc := vm.PC
	inst := vm.fetch()

	advance, err := vm.execute(inst)
	if err != nil {
		return &Fault{PC: pc, N: inst.N, Err: err}
	}

	if advance {
		vm.PC += 2
	}

	vm.Cycles++

	return nil
}

/// Cycle runs one clock cycle: the timers are read into DT and ST, one
/// instruction executes and the tone gate follows the sound timer.
///
func (vm *VM) Cycle() error {
	vm.DT, vm.ST = vm.Timers.Load()

	err := vm.Step()

	_, st := vm.Timers.Load()
	vm.Tone.Set(st > 0)

	return err
}

/// fetch decodes the instruction at the program counter.
///
func (vm *VM) fetch() Instruction {
	return Decode(vm.Memory.Read(vm.PC), vm.Memory.Read(vm.PC+1))
}

/// String dumps the register file.
///
func (vm *VM) String() string {
	return fmt.Sprintf("PC: #%04X, I: #%04X, SP: %d, DT: #%02X, ST: #%02X, V: [% 02X], Stack: [% 04X]",
		vm.PC, vm.I, vm.SP, vm.DT, vm.ST, vm.V, vm.Stack[:vm.SP])
}
