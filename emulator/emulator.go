// Package emulator runs CHIP-8 ROMs on a chip8.Machine, pacing execution in
// frames and presenting the display, sound and keypad to a front end.
package emulator

import (
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/nf/chipi/chip8"
)

// Config holds the settings of an Emulator.
type Config struct {
	CyclesPerFrame int     // instructions executed per frame
	FPS            int     // frames per second; timers tick once per frame
	Seed           uint64  // random seed; zero selects a random seed
	Trace          bool    // log recent instructions when the machine halts
	Scale          int     // window and screenshot pixels per CHIP-8 pixel
	Palette        Palette // colours of lit and unlit pixels
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		CyclesPerFrame: 20,
		FPS:            60,
		Scale:          10,
		Palette:        DefaultPalette,
	}
}

// ROM is a CHIP-8 program image.
type ROM struct {
	Title string
	Data  []byte
}

// ReadROM reads the ROM in the named file.
func ReadROM(path string) (*ROM, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading rom")
	}
	if len(b) > chip8.MaxROMSize {
		return nil, errors.Wrapf(chip8.ErrROMTooLarge, "%s is %d bytes", path, len(b))
	}
	return &ROM{Title: filepath.Base(path), Data: b}, nil
}

// Emulator drives a chip8.Machine one frame at a time.
type Emulator struct {
	cfg   Config
	m     *chip8.Machine
	rom   *ROM
	trace backlog
}

// New returns an Emulator with no ROM loaded.
func New(cfg Config) *Emulator {
	var rnd chip8.RandSource
	if cfg.Seed != 0 {
		rnd = chip8.NewRand(cfg.Seed)
	}
	if cfg.CyclesPerFrame <= 0 {
		cfg.CyclesPerFrame = DefaultConfig().CyclesPerFrame
	}
	return &Emulator{cfg: cfg, m: chip8.NewMachine(rnd)}
}

// Machine returns the underlying machine.
func (e *Emulator) Machine() *chip8.Machine { return e.m }

// ROM returns the loaded ROM, or nil.
func (e *Emulator) ROM() *ROM { return e.rom }

// Load stops the running program and loads rom in its place.
func (e *Emulator) Load(rom *ROM) error {
	e.Stop()
	if err := e.m.LoadROM(rom.Data); err != nil {
		return errors.Wrap(err, rom.Title)
	}
	e.rom = rom
	return nil
}

// Stop resets the machine.
func (e *Emulator) Stop() {
	e.m.Reset()
	e.trace.Reset()
}

// Frame executes one frame's worth of instructions and then ticks the
// timers. It does nothing until a non-empty ROM is loaded, and stops at the
// first instruction that halts the machine.
func (e *Emulator) Frame() error {
	if e.rom == nil || len(e.rom.Data) == 0 {
		return nil
	}
	for i := 0; i < e.cfg.CyclesPerFrame; i++ {
		pc := e.m.PC
		if err := e.m.Cycle(); err != nil {
			if e.cfg.Trace {
				e.trace.Emit()
			}
			return err
		}
		if e.cfg.Trace {
			e.trace.LazyPrintf("%.3x %v", pc, e.m.Last())
		}
	}
	e.m.Timers.Tick()
	return nil
}

// SetKey records a key press or release on the keypad.
func (e *Emulator) SetKey(k byte, down bool) { e.m.Keypad.Set(k, down) }

// ShouldRedraw reports whether the display has been drawn or cleared.
func (e *Emulator) ShouldRedraw() bool { return e.m.Display.State() != chip8.Idle }

// Tone reports whether the sound timer is running.
func (e *Emulator) Tone() bool { return e.m.Timers.Tone() }

// Image returns the display rendered in the configured palette.
func (e *Emulator) Image() *image.RGBA {
	m := e.m.Display.Image()
	e.cfg.Palette.Apply(m.Pix)
	return m
}

type backlog struct {
	entries []logEntry
	n       int
}

type logEntry struct {
	format string
	args   []any
}

const maxBacklog = 100

func (b *backlog) LazyPrintf(format string, args ...any) {
	if b.n < len(b.entries) {
		b.entries[b.n] = logEntry{format, args}
	} else {
		b.entries = append(b.entries, logEntry{format, args})
	}
	b.n = (b.n + 1) % maxBacklog
}

func (b *backlog) Emit() {
	if len(b.entries) == 0 {
		return
	}
	for i := b.n; ; i++ {
		i %= len(b.entries)
		log.Printf(b.entries[i].format, b.entries[i].args...)
		if (i+1)%maxBacklog == b.n {
			break
		}
	}
}

func (b *backlog) Reset() {
	b.entries = b.entries[:0]
	b.n = 0
}
