package main

import (
	"github.com/octet-labs/chip8vm/chip8"
)

// Buzzer output format.
const (
	SampleRate    = 44100
	ToneFrequency = 440
	ToneVolume    = 0.1
)

// toneWave synthesizes the buzzer: a square wave while the gate is open,
// silence otherwise.
type toneWave struct {
	gate  *chip8.ToneGate
	phase int
}

func newToneWave(gate *chip8.ToneGate) *toneWave {
	return &toneWave{gate: gate}
}

// fill buf with the next samples.
func (w *toneWave) fill(buf []float32) {
	const period = SampleRate / ToneFrequency

	if !w.gate.On() {
		clear(buf)
		w.phase = 0
		return
	}

	for i := range buf {
		if w.phase < period/2 {
			buf[i] = ToneVolume
		} else {
			buf[i] = -ToneVolume
		}

		w.phase = (w.phase + 1) % period
	}
}
