package main

import (
	"log"

	"github.com/octet-labs/chip8vm/chip8"
)

/// DebugHelp shows the key layout in the log.
///
func DebugHelp() {
	log.Println("Virtual keys:")
	log.Println("  1-2-3-4")
	log.Println("  Q-W-E-R")
	log.Println("  A-S-D-F")
	log.Println("  Z-X-C-V")
	log.Println("Emulation keys:")
	log.Println("  ESC      - Quit")
	log.Println("  F1       - Help (sdl)")
}

/// DebugState logs the registers and the instructions around the program
/// counter.
///
func DebugState(vm *chip8.VM) {
	log.Println(vm)

	address := vm.PC - 4
	if vm.PC < chip8.ProgramStart+4 {
		address = chip8.ProgramStart
	}

	// show the disassembled instructions
	for i := uint16(0); i < 10; i += 2 {
		marker := "  "
		if address+i == vm.PC {
			marker = "> "
		}

		log.Println(marker + vm.Disassemble(address+i))
	}
}
