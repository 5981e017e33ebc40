package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/octet-labs/chip8vm/chip8"
	"github.com/stretchr/testify/assert"
)

func TestRenderFrame(t *testing.T) {
	assert := assert.New(t)

	video := make([]byte, chip8.VideoSize)

	// top left pixel and the one beneath it
	video[0] = 0x80
	video[chip8.RowBytes] = 0x80

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	renderFrame(w, video)
	w.Flush()

	out := buf.String()
	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")

	assert.Len(lines, chip8.Height/2)
	assert.Equal(chip8.Width*chip8.Height/2, strings.Count(out, "▀"))
	assert.True(strings.HasPrefix(out, "\x1b[38;2;255;204;0m\x1b[48;2;255;204;0m▀"))
	assert.Contains(lines[0][1:], "\x1b[38;2;153;102;0m\x1b[48;2;153;102;0m▀")
	assert.Equal(1, strings.Count(out, "\x1b[38;2;255;204;0m"))
}

func TestTermKeyMap(t *testing.T) {
	assert := assert.New(t)

	assert.Len(TermKeyMap, 16)

	seen := make(map[byte]bool)
	for _, key := range TermKeyMap {
		seen[key] = true
	}

	assert.Len(seen, 16)
	assert.Len(KeyMap, 16)
}
