package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/nf/chipi/chip8"
	"github.com/nf/chipi/emulator"
)

func TestDisplayViewDraw(t *testing.T) {
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(chip8.Width, chip8.Height/2)

	e := emulator.New(emulator.DefaultConfig())
	d := &e.Machine().Display
	d.DrawPixel(0, 0) // top half of cell (0, 0)
	d.DrawPixel(1, 1) // bottom half of cell (1, 0)

	v := newDisplayView()
	v.SetRect(0, 0, chip8.Width, chip8.Height/2)
	v.img = e.Image()
	v.Draw(s)

	white := tcell.NewRGBColor(0xff, 0xff, 0xff)
	black := tcell.NewRGBColor(0, 0, 0)
	for _, c := range []struct {
		x      int
		fg, bg tcell.Color
	}{
		{0, white, black},
		{1, black, white},
		{2, black, black},
	} {
		r, _, style, _ := s.GetContent(c.x, 0)
		fg, bg, _ := style.Decompose()
		if r != '▀' || fg != c.fg || bg != c.bg {
			t.Errorf("cell (%d, 0) = %q fg %v bg %v, want fg %v bg %v", c.x, r, fg, bg, c.fg, c.bg)
		}
	}
}

func TestTerminalKeyHold(t *testing.T) {
	e := emulator.New(emulator.DefaultConfig())
	if err := e.Load(&emulator.ROM{Title: "loop", Data: []byte{0x12, 0x00}}); err != nil {
		t.Fatal(err)
	}
	r := emulator.NewRunner(e, false)
	r.Start()

	term := &terminal{r: r, held: make(map[byte]time.Time)}
	term.input(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	if _, ok := term.held[0x5]; !ok {
		t.Fatalf("key 5 not held after pressing w")
	}
	term.releaseKeys()
	if _, ok := term.held[0x5]; !ok {
		t.Errorf("key 5 released before its deadline")
	}
	term.held[0x5] = time.Now().Add(-time.Millisecond)
	term.releaseKeys()
	if len(term.held) != 0 {
		t.Errorf("keys still held after their deadline: %v", term.held)
	}

	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}
	if e.Machine().Keypad.Pressed(0x5) {
		t.Errorf("key 5 still pressed on the machine")
	}
}
