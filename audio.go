package main

// typedef unsigned char Uint8;
// void Tone(void *userdata, Uint8 *stream, int len);
import "C"
import (
	"unsafe"

	"github.com/octet-labs/chip8vm/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

// buzzer is read by the SDL audio thread.
var buzzer *toneWave

// InitAudio opens an audio device playing the buzzer for gate.
func InitAudio(gate *chip8.ToneGate) error {
	buzzer = newToneWave(gate)

	spec := &sdl.AudioSpec{
		Freq:     SampleRate,
		Format:   sdl.AUDIO_F32,
		Channels: 1,
		Samples:  512,
		Callback: sdl.AudioCallback(C.Tone),
	}

	// open the device and start playing it
	if err := sdl.OpenAudio(spec, nil); err != nil {
		return err
	}

	// silent until the gate opens
	sdl.PauseAudio(false)

	return nil
}

// CloseAudio stops the buzzer and releases the device.
func CloseAudio() {
	sdl.CloseAudio()
}

//export Tone
func Tone(_ unsafe.Pointer, stream *C.Uint8, length C.int) {
	buf := unsafe.Slice((*float32)(unsafe.Pointer(stream)), int(length)/4)

	buzzer.fill(buf)
}
