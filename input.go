package main

import (
	"github.com/octet-labs/chip8vm/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	// KeyMap maps a modern keyboard to the CHIP-8 keys.
	//
	//   1 2 3 4      1 2 3 C
	//   Q W E R  ->  4 5 6 D
	//   A S D F      7 8 9 E
	//   Z X C V      A 0 B F
	KeyMap = map[sdl.Scancode]byte{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

// ProcessEvents from SDL and map keys to the keypad. Returns false once the
// user quits.
func ProcessEvents(keys *chip8.Keypad) bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
				switch {
				case ev.Type == sdl.KEYUP:
					keys.Release(key)
				case ev.Repeat == 0:
					keys.Press(key)
				}
				continue
			}

			if ev.Type != sdl.KEYDOWN {
				continue
			}

			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return false
			case sdl.SCANCODE_F1:
				DebugHelp()
			}
		}
	}

	return true
}
