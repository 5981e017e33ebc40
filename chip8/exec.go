package chip8

// execute performs one decoded instruction. It reports whether the program
// counter should move on to the next instruction.
func (vm *VM) execute(inst Instruction) (bool, error) {
	x, y := inst.X(), inst.Y()

	switch inst.Op {
	case OpCLS:
		vm.cls()
	case OpRET:
		if err := vm.ret(); err != nil {
			return false, err
		}
	case OpJP:
		vm.jump(inst.NNN())
		return false, nil
	case OpCALL:
		if err := vm.call(inst.NNN()); err != nil {
			return false, err
		}
		return false, nil
	case OpSE:
		vm.skipIf(vm.V[x] == inst.KK())
	case OpSNE:
		vm.skipIf(vm.V[x] != inst.KK())
	case OpSEXY:
		vm.skipIf(vm.V[x] == vm.V[y])
	case OpLD:
		vm.V[x] = inst.KK()
	case OpADD:
		vm.V[x] += inst.KK()
	case OpLDXY:
		vm.V[x] = vm.V[y]
	case OpOR:
		vm.V[x] |= vm.V[y]
	case OpAND:
		vm.V[x] &= vm.V[y]
	case OpXOR:
		vm.V[x] ^= vm.V[y]
	case OpADDXY:
		vm.addXY(x, y)
	case OpSUB:
		vm.subXY(x, y)
	case OpSHR:
		vm.shr(x)
	case OpSUBN:
		vm.subYX(x, y)
	case OpSHL:
		vm.shl(x)
	case OpSNEXY:
		vm.skipIf(vm.V[x] != vm.V[y])
	case OpLDI:
		vm.I = inst.NNN()
	case OpJPV0:
		vm.jump(inst.NNN() + uint16(vm.V[0]))
		return false, nil
	case OpRND:
		vm.V[x] = inst.KK() & vm.Rand()
	case OpDRW:
		vm.drw(x, y, inst.Nibble())
	case OpSKP:
		vm.skipIf(vm.Keys.Pressed(vm.V[x] & 0xF))
	case OpSKNP:
		vm.skipIf(!vm.Keys.Pressed(vm.V[x] & 0xF))
	case OpLDXDT:
		vm.V[x] = vm.DT
	case OpLDXK:
		vm.waitKey(x)
	case OpLDDTX:
		vm.DT = vm.V[x]
		vm.Timers.SetDelay(vm.DT)
	case OpLDSTX:
		vm.ST = vm.V[x]
		vm.Timers.SetSound(vm.ST)
	case OpADDIX:
		vm.I += uint16(vm.V[x])
	case OpLDFX:
		vm.I = GlyphAddress(vm.V[x])
	case OpLDBX:
		vm.bcd(x)
	case OpSTORE:
		vm.saveRegs(x)
	case OpRESTORE:
		vm.loadRegs(x)
	default:
		return false, ErrUnimplemented(inst.N)
	}

	return true, nil
}

// cls clears the display bitmap.
func (vm *VM) cls() {
	vm.Memory.ClearVideo()
	vm.Display.Draw(vm.Memory.Video())
}

// call pushes the program counter and jumps to address.
func (vm *VM) call(address uint16) error {
	if int(vm.SP) >= len(vm.Stack) {
		return ErrStackOverflow
	}

	vm.Stack[vm.SP] = vm.PC
	vm.SP++

	vm.PC = address

	return nil
}

// ret pops the return address into the program counter.
func (vm *VM) ret() error {
	if vm.SP == 0 {
		return ErrStackUnderflow
	}

	vm.SP--
	vm.PC = vm.Stack[vm.SP]

	return nil
}

func (vm *VM) jump(address uint16) {
	vm.PC = address
}

// skipIf steps over the next instruction when cond holds.
func (vm *VM) skipIf(cond bool) {
	if cond {
		vm.PC += 2
	}
}

// add vy to vx, VF is the carry.
func (vm *VM) addXY(x, y byte) {
	sum := uint16(vm.V[x]) + uint16(vm.V[y])

	vm.V[x] = byte(sum)
	vm.V[0xF] = byte(sum >> 8)
}

// subtract vy from vx, VF is set when vx > vy.
func (vm *VM) subXY(x, y byte) {
	noBorrow := flag(vm.V[x] > vm.V[y])

	vm.V[x] -= vm.V[y]
	vm.V[0xF] = noBorrow
}

// vx = vy - vx, VF is set when vy > vx.
func (vm *VM) subYX(x, y byte) {
	noBorrow := flag(vm.V[y] > vm.V[x])

	vm.V[x] = vm.V[y] - vm.V[x]
	vm.V[0xF] = noBorrow
}

// shr vx 1 bit, VF is the LSB before the shift.
func (vm *VM) shr(x byte) {
	lsb := vm.V[x] & 0x01

	vm.V[x] >>= 1
	vm.V[0xF] = lsb
}

// shl vx 1 bit, VF is the MSB before the shift, left in place (0x80 or 0).
func (vm *VM) shl(x byte) {
	msb := vm.V[x] & 0x80

	vm.V[x] <<= 1
	vm.V[0xF] = msb
}

// drw xors an n-row sprite at I onto the display at (vx, vy). VF is set if
// any lit pixel was hit. Columns wrap around the row, rows do not wrap.
func (vm *VM) drw(x, y, n byte) {
	vx, vy := vm.V[x]%Width, uint16(vm.V[y])

	// byte column and the bit offset within it
	col := uint16(vx / 8)
	next := (col + 1) % RowBytes
	offset := vx % 8

	collided := false

	for i := uint16(0); i < uint16(n); i++ {
		s := vm.Memory.Read(vm.I + i)
		row := VideoStart + (vy+i)*RowBytes

		// a shift by 8 leaves nothing for the next byte
		hit0 := vm.Memory.xor(row+col, s>>offset)
		hit1 := vm.Memory.xor(row+next, s<<(8-offset))

		collided = collided || hit0 || hit1
	}

	vm.V[0xF] = flag(collided)
	vm.Display.Draw(vm.Memory.Video())
}

// waitKey blocks the machine until a key is pressed. Presses queued before
// the instruction ran are dropped.
func (vm *VM) waitKey(x byte) {
	presses := vm.Keys.Presses()

	for drained := false; !drained; {
		select {
		case <-presses:
		default:
			drained = true
		}
	}

	vm.awaiting = true
	vm.waitX = x
}

// bcd stores the decimal digits of vx at I, I+1 and I+2.
func (vm *VM) bcd(x byte) {
	v := vm.V[x]

	vm.Memory.Write(vm.I, v/100)
	vm.Memory.Write(vm.I+1, v/10%10)
	vm.Memory.Write(vm.I+2, v%10)
}

// save registers v0..vx to I.
func (vm *VM) saveRegs(x byte) {
	for i := uint16(0); i <= uint16(x); i++ {
		vm.Memory.Write(vm.I+i, vm.V[i])
	}
}

// load registers v0..vx from I.
func (vm *VM) loadRegs(x byte) {
	for i := uint16(0); i <= uint16(x); i++ {
		vm.V[i] = vm.Memory.Read(vm.I + i)
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}

	return 0
}
