package chip8

import "sync"

// Keypad is a KeySource fed by a front end. Keys are the logical codes
// 0x0-0xF; anything else is ignored.
type Keypad struct {
	mu      sync.Mutex
	keys    [16]bool
	presses chan byte
}

// NewKeypad returns a keypad with every key released.
func NewKeypad() *Keypad {
	return &Keypad{
		presses: make(chan byte, 16),
	}
}

// Press marks key as held and queues a press event. Events are dropped
// when nobody is consuming them.
func (k *Keypad) Press(key byte) {
	if key > 0xF {
		return
	}

	k.mu.Lock()
	k.keys[key] = true
	k.mu.Unlock()

	select {
	case k.presses <- key:
	default:
	}
}

// Release marks key as no longer held.
func (k *Keypad) Release(key byte) {
	if key > 0xF {
		return
	}

	k.mu.Lock()
	k.keys[key] = false
	k.mu.Unlock()
}

// Pressed reports whether key is held.
func (k *Keypad) Pressed(key byte) bool {
	if key > 0xF {
		return false
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	return k.keys[key]
}

// Presses delivers key presses in order.
func (k *Keypad) Presses() <-chan byte {
	return k.presses
}
