package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/octet-labs/chip8vm/chip8"
	"github.com/octet-labs/chip8vm/translate"
	"golang.org/x/term"
)

// KeyHold is how long a terminal key stays pressed. Terminals report no
// key releases, only repeats.
const KeyHold = 150 * time.Millisecond

// LogWindow is the number of log lines shown under the display.
const LogWindow = 6

// Pixel colors (24-bit).
var (
	pixelOn  = [3]byte{255, 204, 0}
	pixelOff = [3]byte{153, 102, 0}
)

// TermKeyMap maps terminal input to the CHIP-8 keys, the same layout as
// KeyMap.
var TermKeyMap = map[byte]byte{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

// Terminal renders the display with ANSI colors and reads keys from a raw
// mode tty.
type Terminal struct {
	fd    int
	state *term.State
	out   *bufio.Writer
	log   *Logger

	mu    sync.Mutex
	video [chip8.VideoSize]byte
	dirty bool

	quit     chan struct{}
	quitOnce sync.Once
}

// OpenTerminal switches stdin to raw mode and starts reading keys into
// keys.
func OpenTerminal(keys *chip8.Keypad, history *Logger) (*Terminal, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, errors.New(translate.From("stdin is not a terminal"))
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	t := &Terminal{
		fd:    fd,
		state: state,
		out:   bufio.NewWriter(os.Stdout),
		log:   history,
		dirty: true,
		quit:  make(chan struct{}),
	}

	// hide the cursor and clear
	t.out.WriteString("\x1b[?25l\x1b[2J")
	t.out.Flush()

	go t.readKeys(keys)

	return t, nil
}

// Draw keeps a copy of the bitmap for the next refresh.
func (t *Terminal) Draw(video []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	copy(t.video[:], video)
	t.dirty = true
}

// Quit is closed when the user asks to quit.
func (t *Terminal) Quit() <-chan struct{} {
	return t.quit
}

// Refresh redraws the frame and the log window.
func (t *Terminal) Refresh() error {
	t.mu.Lock()
	video, dirty := t.video, t.dirty
	t.dirty = false
	t.mu.Unlock()

	t.out.WriteString("\x1b[H")

	if dirty {
		renderFrame(t.out, video[:])
	} else {
		// skip over the frame
		fmt.Fprintf(t.out, "\x1b[%dB", chip8.Height/2)
	}

	lines := t.log.Window(LogWindow)
	for i := 0; i < LogWindow; i++ {
		t.out.WriteString("\r\x1b[K")

		if i < len(lines) {
			t.out.WriteString(lines[i])
		}

		t.out.WriteString("\r\n")
	}

	return t.out.Flush()
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.out.WriteString("\x1b[0m\x1b[?25h\x1b[2J\x1b[H")
	t.out.Flush()

	term.Restore(t.fd, t.state)
}

// renderFrame writes the bitmap as half block characters, two pixel rows per
// line of text.
func renderFrame(w *bufio.Writer, video []byte) {
	pixel := func(x, y int) [3]byte {
		if video[y*chip8.RowBytes+x/8]&(0x80>>uint(x%8)) != 0 {
			return pixelOn
		}
		return pixelOff
	}

	for y := 0; y < chip8.Height; y += 2 {
		for x := 0; x < chip8.Width; x++ {
			top, bottom := pixel(x, y), pixel(x, y+1)

			fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top[0], top[1], top[2],
				bottom[0], bottom[1], bottom[2])
		}

		w.WriteString("\x1b[0m\r\n")
	}
}

// readKeys feeds the keypad until stdin closes or the user quits.
func (t *Terminal) readKeys(keys *chip8.Keypad) {
	held := make(map[byte]*time.Timer)
	buf := make([]byte, 16)

	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			t.stop()
			return
		}

		// escape on its own quits, escape sequences are ignored
		if buf[0] == 0x1b {
			if n == 1 {
				t.stop()
				return
			}
			continue
		}

		for _, c := range buf[:n] {
			if c == 0x03 {
				t.stop()
				return
			}

			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}

			key, ok := TermKeyMap[c]
			if !ok {
				continue
			}

			// a repeat keeps the key held
			if timer, ok := held[key]; ok && timer.Stop() {
				timer.Reset(KeyHold)
				continue
			}

			keys.Press(key)
			held[key] = time.AfterFunc(KeyHold, func() {
				keys.Release(key)
			})
		}
	}
}

func (t *Terminal) stop() {
	t.quitOnce.Do(func() {
		close(t.quit)
	})
}
