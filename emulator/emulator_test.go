package emulator

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nf/chipi/chip8"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 1
	return cfg
}

func TestReadROM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pong.ch8")
	if err := os.WriteFile(path, []byte{0x12, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	rom, err := ReadROM(path)
	if err != nil {
		t.Fatalf("ReadROM: %v", err)
	}
	if rom.Title != "pong.ch8" {
		t.Errorf("Title is %q, want %q", rom.Title, "pong.ch8")
	}
	if !bytes.Equal(rom.Data, []byte{0x12, 0x00}) {
		t.Errorf("Data is % x", rom.Data)
	}

	if _, err := ReadROM(filepath.Join(dir, "missing.ch8")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadROM of missing file returned %v, want not exist", err)
	}

	big := filepath.Join(dir, "big.ch8")
	if err := os.WriteFile(big, make([]byte, chip8.MaxROMSize+1), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadROM(big); !errors.Is(err, chip8.ErrROMTooLarge) {
		t.Errorf("ReadROM of large file returned %v, want %v", err, chip8.ErrROMTooLarge)
	}
}

func TestFrameWithoutROM(t *testing.T) {
	e := New(testConfig())
	e.Machine().Timers.Delay = 5
	if err := e.Frame(); err != nil {
		t.Fatal(err)
	}
	if g := e.Machine().PC; g != chip8.ProgramStart {
		t.Errorf("PC is %.3x, want %.3x", g, chip8.ProgramStart)
	}
	if g := e.Machine().Timers.Delay; g != 5 {
		t.Errorf("timers ticked without a ROM: delay %d", g)
	}
}

func TestFrame(t *testing.T) {
	cfg := testConfig()
	cfg.CyclesPerFrame = 3
	e := New(cfg)
	err := e.Load(&ROM{Title: "t", Data: []byte{
		0x60, 0x05, // V0 = 5
		0xf0, 0x15, // delay = V0
		0x70, 0x01, // V0 += 1
		0x12, 0x06, // loop
	}})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Frame(); err != nil {
		t.Fatal(err)
	}
	m := e.Machine()
	if m.PC != 0x206 || m.V[0] != 6 {
		t.Errorf("after one frame PC=%.3x V0=%d, want PC=206 V0=6", m.PC, m.V[0])
	}
	if m.Timers.Delay != 4 {
		t.Errorf("delay timer is %d, want 4", m.Timers.Delay)
	}
	if !e.ShouldRedraw() {
		t.Errorf("ShouldRedraw is false after loading a ROM")
	}
	if e.Tone() {
		t.Errorf("Tone is true with a zero sound timer")
	}
}

func TestFrameHalt(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	cfg := testConfig()
	cfg.Trace = true
	e := New(cfg)
	e.Load(&ROM{Title: "t", Data: []byte{0x60, 0x01, 0xff, 0xff}})
	err := e.Frame()
	var h chip8.HaltError
	if !errors.As(err, &h) || h.HaltCode != chip8.UnknownOpcode || h.Addr != 0x202 {
		t.Fatalf("Frame returned %v, want unknown opcode at 202", err)
	}
	if !strings.Contains(buf.String(), "200 SetVx") {
		t.Errorf("trace not logged on halt; log:\n%s", buf.String())
	}
}

func TestLoadResets(t *testing.T) {
	e := New(testConfig())
	e.Load(&ROM{Title: "a", Data: []byte{0x61, 0x07}})
	e.Frame()
	e.SetKey(3, true)
	if err := e.Load(&ROM{Title: "b", Data: []byte{0x12, 0x00}}); err != nil {
		t.Fatal(err)
	}
	m := e.Machine()
	if m.V[1] != 0 || m.PC != chip8.ProgramStart || m.Keypad.Pressed(3) {
		t.Errorf("machine not reset by Load")
	}
	if g := e.ROM().Title; g != "b" {
		t.Errorf("ROM title is %q, want b", g)
	}
}

func TestBacklog(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer log.SetOutput(os.Stderr)
	defer log.SetFlags(log.LstdFlags)

	var b backlog
	for i := 0; i < maxBacklog+5; i++ {
		b.LazyPrintf("%d", i)
	}
	b.Emit()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != maxBacklog {
		t.Fatalf("emitted %d lines, want %d", len(lines), maxBacklog)
	}
	if lines[0] != "5" || lines[len(lines)-1] != "104" {
		t.Errorf("emitted %s..%s, want 5..104", lines[0], lines[len(lines)-1])
	}
}
