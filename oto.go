package main

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/octet-labs/chip8vm/chip8"
)

// toneReader streams the buzzer as little endian float32 samples.
type toneReader struct {
	mu      sync.Mutex
	wave    *toneWave
	samples []float32
}

func (r *toneReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(p) / 4
	if cap(r.samples) < n {
		r.samples = make([]float32, n)
	}

	samples := r.samples[:n]
	r.wave.fill(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}

	return n * 4, nil
}

// OtoPlayer plays the buzzer without SDL.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewOtoPlayer opens the default audio device and starts playing the buzzer
// for gate.
func NewOtoPlayer(gate *chip8.ToneGate) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	player := ctx.NewPlayer(&toneReader{wave: newToneWave(gate)})
	player.Play()

	return &OtoPlayer{ctx: ctx, player: player}, nil
}

// Close stops the buzzer.
func (op *OtoPlayer) Close() {
	op.player.Pause()
	op.player.Close()
}
