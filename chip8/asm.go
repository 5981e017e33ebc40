/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
)

/// assembly is the state of a source file being assembled.
///
type assembly struct {
	// rom is the program assembled so far, loaded at ProgramStart.
	rom []byte

	// labels map names to literals or registers.
	labels map[string]token

	// unresolved maps rom offsets to forward label references.
	unresolved map[int]string
}

/// Assemble CHIP-8 source into a program image to load at 0x200.
///
/// Labels start with a '.' in the first column and everything else is
/// indented. Literals are decimal, #hex or $binary (with '.' for 0 bits) and
/// comments start with ';'.
///
/// SYS NNN is accepted so old listings assemble, but 0NNN is not executed: the
/// machine faults on it as an unimplemented instruction.
///
func Assemble(source []byte) (rom []byte, err error) {
	var line int

	a := &assembly{
		rom:        make([]byte, 0, MemorySize-ProgramStart),
		labels:     make(map[string]token),
		unresolved: make(map[int]string),
	}

	// handle panics during assembly
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				e = fmt.Errorf("%v", r)
			}

			rom, err = nil, &ErrSyntax{Line: line, Err: e}
		}
	}()

	scanner := bufio.NewScanner(bytes.NewReader(bytes.ToUpper(source)))

	for line = 1; scanner.Scan(); line++ {
		a.assemble(&tokenScanner{bytes: scanner.Bytes()})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	line = 0
	a.resolve()

	if ProgramStart+len(a.rom) > VideoStart {
		return nil, &ErrProgramTooLarge{Size: len(a.rom), Free: VideoStart - ProgramStart}
	}

	return a.rom, nil
}

/// address is where the next assembled byte will be loaded.
///
func (a *assembly) address() int {
	return ProgramStart + len(a.rom)
}

/// resolve patches forward references. Only 12-bit address operands can be
/// forward references, so the low 12 bits of the instruction are replaced.
///
func (a *assembly) resolve() {
	offsets := make([]int, 0, len(a.unresolved))
	for offset := range a.unresolved {
		offsets = append(offsets, offset)
	}
	sort.Ints(offsets)

	for _, offset := range offsets {
		label := a.unresolved[offset]

		t, ok := a.labels[label]
		if !ok {
			syntaxError("label %v missing", label)
		}
		if t.typ != tokenLit {
			syntaxError("label does not resolve to an address: %v", label)
		}

		address := t.val.(int)

		a.rom[offset] = byte(address>>8&0xF) | a.rom[offset]&0xF0
		a.rom[offset+1] = byte(address)
	}
}

/// assemble a single line.
///
func (a *assembly) assemble(s *tokenScanner) {
	t := s.scanToken()

	if t.typ == tokenLabel {
		t = a.assembleLabel(t.val.(string), s)
	}

	switch t.typ {
	case tokenInstruction:
		a.rom = append(a.rom, a.assembleInstruction(t.val.(string), s.scanOperands())...)
	case tokenEnd:
	default:
		syntaxError("unexpected token")
	}
}

/// assembleLabel defines a label at the current address, or to a value with
/// EQU.
///
func (a *assembly) assembleLabel(label string, s *tokenScanner) token {
	if _, exists := a.labels[label]; exists {
		syntaxError("duplicate label: %v", label)
	}

	a.labels[label] = token{typ: tokenLit, val: a.address()}

	t := s.scanToken()
	if t.typ != tokenEqu {
		return t
	}

	v := s.scanToken()
	if v.typ != tokenLit && v.typ != tokenV {
		syntaxError("illegal label assignment")
	}

	a.labels[label] = v

	if t = s.scanToken(); t.typ != tokenEnd {
		syntaxError("unexpected token")
	}

	return t
}

func (a *assembly) assembleInstruction(i string, tokens []token) []byte {
	switch i {
	case "CLS":
		return a.assembleImplied(tokens, 0x00, 0xE0)
	case "RET":
		return a.assembleImplied(tokens, 0x00, 0xEE)
	case "SYS":
		return a.assembleAddress(tokens, 0x00)
	case "JP":
		return a.assembleJP(tokens)
	case "CALL":
		return a.assembleAddress(tokens, 0x20)
	case "SE":
		return a.assembleSkip(tokens, 0x30, 0x50)
	case "SNE":
		return a.assembleSkip(tokens, 0x40, 0x90)
	case "SKP":
		return a.assembleX(tokens, 0xE0, 0x9E)
	case "SKNP":
		return a.assembleX(tokens, 0xE0, 0xA1)
	case "OR":
		return a.assembleXY(tokens, 0x1)
	case "AND":
		return a.assembleXY(tokens, 0x2)
	case "XOR":
		return a.assembleXY(tokens, 0x3)
	case "SUB":
		return a.assembleXY(tokens, 0x5)
	case "SUBN":
		return a.assembleXY(tokens, 0x7)
	case "SHR":
		return a.assembleShift(tokens, 0x6)
	case "SHL":
		return a.assembleShift(tokens, 0xE)
	case "ADD":
		return a.assembleADD(tokens)
	case "RND":
		return a.assembleRND(tokens)
	case "DRW":
		return a.assembleDRW(tokens)
	case "BCD":
		return a.assembleX(tokens, 0xF0, 0x33)
	case "LD":
		return a.assembleLD(tokens)
	case "BYTE":
		return a.assembleBYTE(tokens)
	case "WORD":
		return a.assembleWORD(tokens)
	case "ALIGN":
		return a.assembleALIGN(tokens)
	case "PAD":
		return a.assemblePAD(tokens)
	}

	syntaxError("unknown instruction: %v", i)
	return nil
}

/// assembleOperand expands a label reference. Unknown labels become a
/// placeholder address resolved once the whole file is read.
///
func (a *assembly) assembleOperand(t token) token {
	if t.typ != tokenRef {
		return t
	}

	label := t.val.(string)
	if v, exists := a.labels[label]; exists {
		return v
	}

	a.unresolved[len(a.rom)] = label

	return token{typ: tokenLit, val: ProgramStart}
}

/// assembleOperands matches tokens against the wanted operand types.
///
func (a *assembly) assembleOperands(tokens []token, m ...tokenType) ([]int, bool) {
	if len(tokens) != len(m) {
		return nil, false
	}

	ops := make([]int, len(m))

	for i, typ := range m {
		t := a.assembleOperand(tokens[i])

		if t.typ == tokenIndirect {
			if inner := t.val.(token); typ == tokenIndirect && inner.typ == tokenI {
				continue
			}
			return nil, false
		}
		if t.typ != typ {
			return nil, false
		}

		if v, ok := t.val.(int); ok {
			ops[i] = v
		}
	}

	return ops, true
}

func (a *assembly) assembleImplied(tokens []token, hi, lo byte) []byte {
	if len(tokens) != 0 {
		syntaxError("illegal instruction")
	}

	return []byte{hi, lo}
}

func (a *assembly) assembleAddress(tokens []token, op byte) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenLit); ok && address(ops[0]) {
		return []byte{op | byte(ops[0]>>8&0xF), byte(ops[0])}
	}

	syntaxError("illegal instruction")
	return nil
}

func (a *assembly) assembleJP(tokens []token) []byte {
	if len(tokens) == 1 {
		return a.assembleAddress(tokens, 0x10)
	}

	if ops, ok := a.assembleOperands(tokens, tokenV, tokenLit); ok && ops[0] == 0 && address(ops[1]) {
		return []byte{0xB0 | byte(ops[1]>>8&0xF), byte(ops[1])}
	}

	syntaxError("illegal instruction")
	return nil
}

/// assembleSkip handles SE and SNE against a byte or a register.
///
func (a *assembly) assembleSkip(tokens []token, opKK, opXY byte) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenV, tokenLit); ok && ops[1] < 0x100 {
		return []byte{opKK | byte(ops[0]), byte(ops[1])}
	}

	if ops, ok := a.assembleOperands(tokens, tokenV, tokenV); ok {
		return []byte{opXY | byte(ops[0]), byte(ops[1] << 4)}
	}

	syntaxError("illegal instruction")
	return nil
}

func (a *assembly) assembleX(tokens []token, hi, lo byte) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenV); ok {
		return []byte{hi | byte(ops[0]), lo}
	}

	syntaxError("illegal instruction")
	return nil
}

/// assembleXY handles the 8XYN register to register operations.
///
func (a *assembly) assembleXY(tokens []token, n byte) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenV, tokenV); ok {
		return []byte{0x80 | byte(ops[0]), byte(ops[1]<<4) | n}
	}

	syntaxError("illegal instruction")
	return nil
}

/// assembleShift accepts SHR VX and SHR VX, VY.
///
func (a *assembly) assembleShift(tokens []token, n byte) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenV); ok {
		return []byte{0x80 | byte(ops[0]), byte(ops[0]<<4) | n}
	}

	return a.assembleXY(tokens, n)
}

func (a *assembly) assembleADD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenV, tokenLit); ok && ops[1] < 0x100 {
		return []byte{0x70 | byte(ops[0]), byte(ops[1])}
	}

	if ops, ok := a.assembleOperands(tokens, tokenV, tokenV); ok {
		return []byte{0x80 | byte(ops[0]), byte(ops[1]<<4) | 0x4}
	}

	if ops, ok := a.assembleOperands(tokens, tokenI, tokenV); ok {
		return []byte{0xF0 | byte(ops[1]), 0x1E}
	}

	syntaxError("illegal instruction")
	return nil
}

func (a *assembly) assembleRND(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenV, tokenLit); ok && ops[1] < 0x100 {
		return []byte{0xC0 | byte(ops[0]), byte(ops[1])}
	}

	syntaxError("illegal instruction")
	return nil
}

func (a *assembly) assembleDRW(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenV, tokenV, tokenLit); ok && ops[2] < 0x10 {
		return []byte{0xD0 | byte(ops[0]), byte(ops[1]<<4) | byte(ops[2])}
	}

	syntaxError("illegal instruction")
	return nil
}

func (a *assembly) assembleLD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenV, tokenLit); ok && ops[1] < 0x100 {
		return []byte{0x60 | byte(ops[0]), byte(ops[1])}
	}

	if ops, ok := a.assembleOperands(tokens, tokenV, tokenV); ok {
		return []byte{0x80 | byte(ops[0]), byte(ops[1] << 4)}
	}

	if ops, ok := a.assembleOperands(tokens, tokenI, tokenLit); ok && address(ops[1]) {
		return []byte{0xA0 | byte(ops[1]>>8&0xF), byte(ops[1])}
	}

	// register forms: the register operand position and the low byte
	forms := []struct {
		m  [2]tokenType
		x  int
		lo byte
	}{
		{[2]tokenType{tokenV, tokenDT}, 0, 0x07},
		{[2]tokenType{tokenV, tokenK}, 0, 0x0A},
		{[2]tokenType{tokenDT, tokenV}, 1, 0x15},
		{[2]tokenType{tokenST, tokenV}, 1, 0x18},
		{[2]tokenType{tokenF, tokenV}, 1, 0x29},
		{[2]tokenType{tokenB, tokenV}, 1, 0x33},
		{[2]tokenType{tokenIndirect, tokenV}, 1, 0x55},
		{[2]tokenType{tokenV, tokenIndirect}, 0, 0x65},
	}

	for _, form := range forms {
		if ops, ok := a.assembleOperands(tokens, form.m[:]...); ok {
			return []byte{0xF0 | byte(ops[form.x]), form.lo}
		}
	}

	syntaxError("illegal instruction")
	return nil
}

func (a *assembly) assembleBYTE(tokens []token) []byte {
	b := make([]byte, 0, len(tokens))

	for _, t := range tokens {
		op := a.assembleOperand(t)

		switch op.typ {
		case tokenLit:
			v := op.val.(int)
			if v < -0x80 || v > 0xFF {
				syntaxError("invalid byte: %v", v)
			}

			b = append(b, byte(v))
		case tokenText:
			b = append(b, op.val.(string)...)
		default:
			syntaxError("invalid byte")
		}
	}

	return b
}

func (a *assembly) assembleWORD(tokens []token) []byte {
	b := make([]byte, 0, len(tokens)*2)

	for _, t := range tokens {
		// forward references resolve against this word's offset
		a.rom = append(a.rom, b...)
		op := a.assembleOperand(t)
		a.rom = a.rom[:len(a.rom)-len(b)]

		if op.typ != tokenLit || op.val.(int) < 0 || op.val.(int) > 0xFFFF {
			syntaxError("invalid word")
		}

		v := op.val.(int)

		// msb first
		b = append(b, byte(v>>8), byte(v))
	}

	return b
}

func (a *assembly) assembleALIGN(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenLit); ok {
		n := ops[0]

		if n > 0 && n&(n-1) == 0 {
			pad := (n - a.address()&(n-1)) & (n - 1)

			return make([]byte, pad)
		}
	}

	syntaxError("illegal alignment")
	return nil
}

func (a *assembly) assemblePAD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, tokenLit); ok {
		n := ops[0]

		if n >= 0 && a.address()+n <= VideoStart {
			return make([]byte, n)
		}
	}

	syntaxError("illegal size")
	return nil
}

/// address reports whether v fits a 12-bit address operand.
///
func address(v int) bool {
	return v >= 0 && v < MemorySize
}
