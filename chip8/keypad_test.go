package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeypad(t *testing.T) {
	assert := assert.New(t)

	keys := NewKeypad()

	keys.Press(0x3)
	keys.Press(0xC)
	keys.Press(0x10)

	assert.True(keys.Pressed(0x3))
	assert.True(keys.Pressed(0xC))
	assert.False(keys.Pressed(0x4))
	assert.False(keys.Pressed(0x10))

	assert.Equal(byte(0x3), <-keys.Presses())
	assert.Equal(byte(0xC), <-keys.Presses())
	assert.Len(keys.Presses(), 0)

	keys.Release(0x3)

	assert.False(keys.Pressed(0x3))
	assert.True(keys.Pressed(0xC))
}

func TestKeypadOverrun(t *testing.T) {
	keys := NewKeypad()

	for i := 0; i < 40; i++ {
		keys.Press(byte(i % 16))
	}

	assert.Len(t, keys.Presses(), cap(keys.presses))
}
