package main

import (
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/chipi/chip8"
	"github.com/nf/chipi/emulator"
)

// Terminals report key presses but not releases, so a pressed key is held
// down until no repeat has been seen for keyHold.
const keyHold = 150 * time.Millisecond

type terminal struct {
	r *emulator.Runner

	screen  tcell.Screen
	app     *tview.Application
	display *displayView
	status  *tview.TextView
	log     *tview.TextView
	rows    *tview.Flex

	held map[byte]time.Time // release deadlines, touched only by the app goroutine
	tone bool
}

func newTerminal(r *emulator.Runner, title string) (*terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	t := &terminal{
		r:      r,
		screen: s,
		app: tview.NewApplication().
			SetScreen(s),
		display: newDisplayView(),
		status: tview.NewTextView().
			SetWrap(false),
		log: tview.NewTextView().
			SetMaxLines(1000),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		held: make(map[byte]time.Time),
	}
	t.display.SetBorder(true).SetTitle(" " + title + " ")
	t.log.SetChangedFunc(func() { t.app.Draw() })
	t.status.SetBackgroundColor(tcell.ColorDarkGrey)
	t.status.SetTextColor(tcell.ColorBlack)
	t.rows.
		AddItem(t.display, chip8.Height/2+2, 0, false).
		AddItem(t.status, 1, 0, false).
		AddItem(t.log, 0, 1, false)
	t.app.SetRoot(t.rows, true)
	t.app.SetInputCapture(t.input)
	return t, nil
}

// runTerminal shows r in the terminal until the user quits or the runner
// stops.
func runTerminal(r *emulator.Runner, title string) error {
	t, err := newTerminal(r, title)
	if err != nil {
		return err
	}
	log.SetOutput(t.log)
	defer log.SetOutput(os.Stderr)

	exit := make(chan bool)
	defer close(exit)
	go t.forward(exit)

	return t.app.Run()
}

func (t *terminal) forward(exit <-chan bool) {
	tick := time.NewTicker(keyHold / 3)
	defer tick.Stop()
	for {
		select {
		case f := <-t.r.Frames():
			t.app.QueueUpdateDraw(func() { t.showFrame(f) })
		case <-tick.C:
			t.app.QueueUpdate(t.releaseKeys)
		case <-t.r.Done():
			t.app.QueueUpdate(t.app.Stop)
			return
		case <-exit:
			return
		}
	}
}

func (t *terminal) input(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.app.Stop()
		return nil
	case tcell.KeyRune:
		k, ok := emulator.RuneKey(ev.Rune())
		if !ok {
			return nil
		}
		if _, down := t.held[k]; !down {
			t.r.SetKey(k, true)
		}
		t.held[k] = time.Now().Add(keyHold)
		return nil
	}
	return ev
}

func (t *terminal) releaseKeys() {
	now := time.Now()
	for k, deadline := range t.held {
		if now.After(deadline) {
			delete(t.held, k)
			t.r.SetKey(k, false)
		}
	}
}

func (t *terminal) showFrame(f emulator.Frame) {
	if f.Redraw {
		t.display.img = f.Image
	}
	if f.Tone && !t.tone {
		t.screen.Beep()
	}
	t.tone = f.Tone
	tone := ""
	if f.Tone {
		tone = "♪"
	}
	t.status.SetText(fmt.Sprintf("%.3x %-18v %s", f.PC, f.Last, tone))
}

// displayView draws the framebuffer with one half-block character for
// each pair of vertically adjacent pixels.
type displayView struct {
	*tview.Box
	img *image.RGBA
}

func newDisplayView() *displayView {
	return &displayView{Box: tview.NewBox()}
}

func (v *displayView) Draw(s tcell.Screen) {
	v.Box.DrawForSubclass(s, v)
	if v.img == nil {
		return
	}
	x0, y0, w, h := v.GetInnerRect()
	for y := 0; y < chip8.Height/2 && y < h; y++ {
		for x := 0; x < chip8.Width && x < w; x++ {
			top := v.img.RGBAAt(x, 2*y)
			bottom := v.img.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			s.SetContent(x0+x, y0+y, '▀', nil, style)
		}
	}
}
