package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/octet-labs/chip8vm/chip8"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

/// History keeps the log for the front ends to show.
///
var History = NewLog(200)

/// frontEnd is the display and input device the main loop drives.
///
type frontEnd interface {
	chip8.Display

	// Refresh redraws the last frame drawn.
	Refresh() error

	// Poll processes input and returns false once the user quits.
	Poll() bool

	// Close releases the devices.
	Close()
}

func init() {
	runtime.LockOSThread()
}

func main() {
	log.SetFlags(0)

	config, err := ParseConfig(filepath.Base(os.Args[0]), os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	// ask for a program if one wasn't given
	if config.Program == "" {
		if config.Program, err = chooseProgram(); err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				return
			}
			log.Fatal(err)
		}
	}

	program, err := loadProgram(config)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case config.Disassemble:
		err = chip8.Disassemble(os.Stdout, program, chip8.ProgramStart)
	case config.Output != "":
		err = os.WriteFile(config.Output, program, 0o644)
	default:
		err = run(config, program)
	}

	if err != nil {
		log.Fatal(err)
	}
}

/// chooseProgram asks for a ROM with the native file dialog.
///
func chooseProgram() (string, error) {
	return dialog.File().
		Title("Load ROM").
		Filter("CHIP-8 ROM", "ch8", "c8").
		Filter("All files", "*").
		Load()
}

/// loadProgram reads the program image, assembling it first if asked to.
///
func loadProgram(config *Config) ([]byte, error) {
	data, err := os.ReadFile(config.Program)
	if err != nil {
		return nil, err
	}

	if config.Assemble {
		return chip8.Assemble(data)
	}

	return data, nil
}

/// run interprets program until the user quits or it faults.
///
func run(config *Config, program []byte) error {
	keys := chip8.NewKeypad()

	vm := chip8.New(nil, keys)
	if err := vm.Load(program); err != nil {
		return err
	}

	var (
		fe  frontEnd
		err error
	)

	title := "CHIP-8 - " + filepath.Base(config.Program)

	switch config.Backend {
	case BackendTerm:
		fe, err = openTerminal(config, vm, keys)
	default:
		fe, err = openSDL(config, vm, keys, title)
	}
	if err != nil {
		return err
	}

	vm.Display = fe

	log.Printf("loaded %v (%v bytes) at %v instructions per second", filepath.Base(config.Program), len(program), config.Rate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = loop(ctx, fe, vm, config.Rate)

	fe.Close()

	// the log window is gone, show everything on stderr
	if config.Backend == BackendTerm {
		History.WriteTo(os.Stderr)
	}
	log.SetOutput(os.Stderr)

	if err != nil {
		log.Println(err)
		DebugState(vm)
		os.Exit(1)
	}

	return nil
}

/// loop refreshes the front end at 60 Hz while the virtual machine runs in
/// its own goroutine.
///
func loop(ctx context.Context, fe frontEnd, vm *chip8.VM, rate int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make(chan error, 1)
	go func() {
		result <- vm.Run(ctx, rate)
	}()

	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	for fe.Poll() {
		select {
		case err := <-result:
			return err
		case <-video.C:
			if err := fe.Refresh(); err != nil {
				cancel()
				<-result
				return err
			}
		}
	}

	// quit
	cancel()

	return <-result
}

/// sdlFrontEnd is the windowed front end.
///
type sdlFrontEnd struct {
	*Screen

	keys  *chip8.Keypad
	audio bool
}

func openSDL(config *Config, vm *chip8.VM, keys *chip8.Keypad, title string) (*sdlFrontEnd, error) {
	History.Tee(os.Stderr)
	log.SetOutput(History)

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	screen, err := NewScreen(title, config.Scale)
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	fe := &sdlFrontEnd{Screen: screen, keys: keys}

	if !config.Mute {
		if err := InitAudio(vm.Tone); err != nil {
			fe.Close()
			return nil, err
		}
		fe.audio = true
	}

	return fe, nil
}

func (fe *sdlFrontEnd) Poll() bool {
	return ProcessEvents(fe.keys)
}

func (fe *sdlFrontEnd) Close() {
	if fe.audio {
		CloseAudio()
	}

	fe.Screen.Close()
	sdl.Quit()
}

/// termFrontEnd draws in the terminal and plays the buzzer through oto.
///
type termFrontEnd struct {
	*Terminal

	player *OtoPlayer
}

func openTerminal(config *Config, vm *chip8.VM, keys *chip8.Keypad) (*termFrontEnd, error) {
	var player *OtoPlayer

	if !config.Mute {
		var err error
		if player, err = NewOtoPlayer(vm.Tone); err != nil {
			return nil, err
		}
	}

	t, err := OpenTerminal(keys, History)
	if err != nil {
		if player != nil {
			player.Close()
		}
		return nil, err
	}

	// stderr is unusable in raw mode
	log.SetOutput(History)

	return &termFrontEnd{Terminal: t, player: player}, nil
}

func (fe *termFrontEnd) Poll() bool {
	select {
	case <-fe.Quit():
		return false
	default:
		return true
	}
}

func (fe *termFrontEnd) Close() {
	if fe.player != nil {
		fe.player.Close()
	}

	fe.Terminal.Close()
}
