package main

import (
	"errors"
	"flag"
	"io"
	"strconv"

	"github.com/octet-labs/chip8vm/chip8"
	"github.com/octet-labs/chip8vm/translate"
)

// Front ends.
const (
	BackendSDL  = "sdl"
	BackendTerm = "term"
)

// Config is everything the command line controls.
type Config struct {
	// Program is the ROM image, or assembly source with Assemble.
	Program string

	// Rate is the number of instructions executed per second.
	Rate int

	// Backend selects the front end: sdl or term.
	Backend string

	// Scale is the size in window pixels of a CHIP-8 pixel.
	Scale int

	// Assemble treats Program as source and writes the image to Output.
	Assemble bool

	// Output is where an assembled image is written.
	Output string

	// Disassemble lists Program instead of running it.
	Disassemble bool

	// Mute disables the buzzer.
	Mute bool
}

// ParseConfig reads flags and the positional ROM [CYCLES_PER_SECOND]
// arguments.
func ParseConfig(name string, args []string, output io.Writer) (*Config, error) {
	c := &Config{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.IntVar(&c.Rate, "rate", chip8.DefaultRate, "instructions per second")
	fs.StringVar(&c.Backend, "backend", BackendSDL, "front end: sdl or term")
	fs.IntVar(&c.Scale, "scale", 10, "window pixels per CHIP-8 pixel (sdl)")
	fs.BoolVar(&c.Assemble, "asm", false, "assemble the source file instead of running it")
	fs.StringVar(&c.Output, "o", "", "output file for -asm (default: run the result)")
	fs.BoolVar(&c.Disassemble, "disasm", false, "list the program instead of running it")
	fs.BoolVar(&c.Mute, "mute", false, "disable the buzzer")

	fs.Usage = func() {
		w := fs.Output()
		io.WriteString(w, translate.From("usage: %v [flags] ROM [CYCLES_PER_SECOND]\n", name))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 2:
		rate, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			return nil, errors.New(translate.From("invalid cycles per second: %v", fs.Arg(1)))
		}

		c.Rate = rate
		fallthrough
	case 1:
		c.Program = fs.Arg(0)
	case 0:
	default:
		return nil, errors.New(translate.From("unknown arguments: %v", fs.Args()[2:]))
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate validates the configuration.
// Returns an error when it isn't usable.
func (c *Config) Validate() error {
	if c.Rate <= 0 || c.Rate > chip8.MaxRate {
		return chip8.ErrRate(c.Rate)
	}
	if c.Backend != BackendSDL && c.Backend != BackendTerm {
		return errors.New(translate.From("unknown backend %q, must be sdl or term", c.Backend))
	}
	if c.Scale < 1 || c.Scale > 32 {
		return errors.New(translate.From("scale must be between 1 and 32, got %v", c.Scale))
	}
	if c.Assemble && c.Disassemble {
		return errors.New(translate.From("-asm and -disasm are exclusive"))
	}
	if c.Output != "" && !c.Assemble {
		return errors.New(translate.From("-o requires -asm"))
	}
	if c.Program == "" && (c.Assemble || c.Disassemble || c.Backend == BackendTerm) {
		return errors.New(translate.From("no program given"))
	}

	return nil
}
