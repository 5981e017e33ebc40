package chip8

import (
	"context"
	"sync"
	"time"
)

// CountdownPeriod is the rate the delay and sound timers count down at.
const CountdownPeriod = time.Second / 60

// Timers are the delay and sound countdown registers. They are shared by the
// countdown clock and the interpreter loop.
type Timers struct {
	mu    sync.Mutex
	delay byte
	sound byte
}

// Tick decrements both timers, stopping at zero.
func (t *Timers) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Load returns the delay and sound timers.
func (t *Timers) Load() (delay, sound byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.delay, t.sound
}

// SetDelay loads the delay timer.
func (t *Timers) SetDelay(v byte) {
	t.mu.Lock()
	t.delay = v
	t.mu.Unlock()
}

// SetSound loads the sound timer. The buzzer plays while it is nonzero.
func (t *Timers) SetSound(v byte) {
	t.mu.Lock()
	t.sound = v
	t.mu.Unlock()
}

// Run ticks the timers every period until ctx is done.
func (t *Timers) Run(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

// ToneGate switches the buzzer on and off. The interpreter sets it after
// every cycle and the audio callback reads it.
type ToneGate struct {
	mu sync.Mutex
	on bool
}

// Set opens or closes the gate.
func (g *ToneGate) Set(on bool) {
	g.mu.Lock()
	g.on = on
	g.mu.Unlock()
}

// On reports whether the tone should be playing.
func (g *ToneGate) On() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.on
}
