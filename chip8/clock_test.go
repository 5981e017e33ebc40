package chip8

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUntilCancelled(t *testing.T) {
	assert := assert.New(t)

	// .LOOP: ADD V0, 1; JP LOOP
	vm, _, _ := newTestVM(t, 0x70, 0x01, 0x12, 0x00)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(vm.Run(ctx, DefaultRate))
	assert.Greater(vm.Cycles, int64(0))
}

func TestRunFault(t *testing.T) {
	assert := assert.New(t)

	vm, _, _ := newTestVM(t, 0x00, 0xEE)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := vm.Run(ctx, DefaultRate)

	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(uint16(ProgramStart), fault.PC)
	assert.ErrorIs(err, ErrStackUnderflow)
}

func TestRunInvalidRate(t *testing.T) {
	assert := assert.New(t)

	vm, _, _ := newTestVM(t, 0x12, 0x00)

	var rate ErrRate

	assert.True(errors.As(vm.Run(context.Background(), 0), &rate))
	assert.True(errors.As(vm.Run(context.Background(), MaxRate+1), &rate))
	assert.Equal(ErrRate(MaxRate+1), rate)
}

func TestRunWaitsForKey(t *testing.T) {
	assert := assert.New(t)

	// LD V0, K; JP #202
	vm, _, keys := newTestVM(t, 0xF0, 0x0A, 0x12, 0x02)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error)

	go func() {
		result <- vm.Run(ctx, DefaultRate)
	}()

	time.Sleep(50 * time.Millisecond)
	keys.Press(0xB)
	time.Sleep(50 * time.Millisecond)
	cancel()

	assert.NoError(<-result)
	assert.False(vm.Awaiting())
	assert.Equal(byte(0xB), vm.V[0])
}

func TestRunCancelWhileWaiting(t *testing.T) {
	vm, _, _ := newTestVM(t, 0xF0, 0x0A)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, vm.Run(ctx, DefaultRate))
	assert.True(t, vm.Awaiting())
}

func TestRunTimers(t *testing.T) {
	vm, _, _ := newTestVM(t, 0x12, 0x00)

	vm.Timers.SetDelay(3)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	assert.NoError(t, vm.Run(ctx, DefaultRate))
	assert.Equal(t, byte(0), vm.DT)
}

func TestRunToneFollowsTimerWhileWaiting(t *testing.T) {
	assert := assert.New(t)

	// LD V0, 2; LD ST, V0; LD V1, K
	vm, _, _ := newTestVM(t, 0x60, 0x02, 0xF0, 0x18, 0xF1, 0x0A)

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	assert.NoError(vm.Run(ctx, DefaultRate))

	_, sound := vm.Timers.Load()

	assert.True(vm.Awaiting())
	assert.Equal(byte(0), sound)
	assert.False(vm.Tone.On())
}
