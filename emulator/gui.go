package emulator

import (
	"image"
	"image/draw"
	"log"
	"os"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/nf/chipi/chip8"
)

// GUI presents a Runner in a window.
type GUI struct {
	r     *Runner
	title string
	scale int

	buf  screen.Buffer
	tex  screen.Texture
	tone bool
}

// NewGUI returns a GUI for r with the given window title.
func NewGUI(r *Runner, title string) *GUI {
	scale := r.e.cfg.Scale
	if scale < 1 {
		scale = DefaultConfig().Scale
	}
	return &GUI{r: r, title: title, scale: scale}
}

type halted struct{}

// Run opens the window and handles its events until the window is closed
// or the runner stops. It must be called from the main goroutine.
func (g *GUI) Run() error {
	var runErr error
	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  g.title,
			Width:  chip8.Width * g.scale,
			Height: chip8.Height * g.scale,
		})
		if err != nil {
			runErr = err
			return
		}
		defer w.Release()

		defer g.release()
		sz := image.Point{chip8.Width, chip8.Height}
		if g.buf, err = s.NewBuffer(sz); err != nil {
			runErr = err
			return
		}
		if g.tex, err = s.NewTexture(sz); err != nil {
			runErr = err
			return
		}

		exit := make(chan bool)
		defer close(exit)
		go func() {
			for {
				select {
				case f := <-g.r.Frames():
					w.Send(f)
				case <-g.r.Done():
					w.Send(halted{})
					return
				case <-exit:
					return
				}
			}
		}()

		var ws size.Event
		for {
			switch e := w.NextEvent().(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				ws = e
				if ws.WidthPx+ws.HeightPx == 0 {
					return
				}

			case paint.Event:
				g.paint(w, ws)

			case key.Event:
				if e.Code == key.CodeEscape {
					return
				}
				if k, ok := CodeKey(e.Code); ok && e.Direction != key.DirNone {
					g.r.SetKey(k, e.Direction == key.DirPress)
				}

			case Frame:
				if e.Tone && !g.tone {
					os.Stderr.Write([]byte{'\a'})
				}
				g.tone = e.Tone
				if e.Redraw {
					copy(g.buf.RGBA().Pix, e.Image.Pix)
					g.tex.Upload(image.Point{}, g.buf, g.buf.Bounds())
					g.paint(w, ws)
				}

			case halted:
				return

			case error:
				log.Printf("gui: %v", e)
			}
		}
	})
	return runErr
}

func (g *GUI) paint(w screen.Window, ws size.Event) {
	if ws.WidthPx == 0 || ws.HeightPx == 0 {
		return
	}
	w.Scale(ws.Bounds(), g.tex, g.tex.Bounds(), draw.Src, nil)
	w.Publish()
}

func (g *GUI) release() {
	if g.tex != nil {
		g.tex.Release()
	}
	if g.buf != nil {
		g.buf.Release()
	}
}
