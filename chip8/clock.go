package chip8

import (
	"context"
	"sync"
	"time"
)

// Instructions executed per second.
const (
	DefaultRate = 1000
	MaxRate     = 1000000
)

// Run interprets the loaded program at rate instructions per second until
// ctx is done or an instruction faults. The countdown clock runs alongside
// for the same lifetime.
//
// Cycle ticks that arrive while the machine is busy are dropped rather than
// queued, so a slow host runs slower instead of bursting to catch up.
func (vm *VM) Run(ctx context.Context, rate int) error {
	if rate <= 0 || rate > MaxRate {
		return ErrRate(rate)
	}

	ctx, cancel := context.WithCancel(ctx)

	// start the countdown clock
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		vm.Timers.Run(ctx, CountdownPeriod)
	}()

	defer func() {
		cancel()
		wg.Wait()
	}()

	clock := time.NewTicker(time.Second / time.Duration(rate))
	defer clock.Stop()

	for {
		if vm.awaiting {
			select {
			case <-ctx.Done():
				return nil
			case key := <-vm.Keys.Presses():
				vm.PressKey(key)
			case <-clock.C:
				// no instruction runs, but the buzzer still follows the timer
				_, st := vm.Timers.Load()
				vm.Tone.Set(st > 0)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-clock.C:
			if err := vm.Cycle(); err != nil {
				return err
			}
		}
	}
}
