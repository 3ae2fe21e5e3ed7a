package emulator

import (
	"image"
	"log"
	"sync"
	"time"

	"github.com/nf/chipi/chip8"
)

// Frame is a snapshot of the machine's outputs taken after each frame.
type Frame struct {
	Image  *image.RGBA // display in the configured palette
	Redraw bool        // display was drawn or cleared
	Tone   bool        // sound timer is running
	Last   chip8.Instruction
	PC     uint16
}

// Runner owns an Emulator and runs it in its own goroutine at a fixed frame
// rate. Front ends talk to it through its methods and the Frames channel.
type Runner struct {
	e   *Emulator
	dev bool

	keys     chan keyEvent
	swap     chan *ROM
	swapDone chan error
	frames   chan Frame
	stop     chan bool
	done     chan bool
	stopOnce sync.Once

	// Written by the run loop, read after done is closed.
	err  error
	last *Frame
}

type keyEvent struct {
	key  byte
	down bool
}

// NewRunner returns a Runner for e. In dev mode the runner keeps going
// after the machine halts, waiting for a new ROM to be swapped in.
func NewRunner(e *Emulator, devMode bool) *Runner {
	return &Runner{
		e:        e,
		dev:      devMode,
		keys:     make(chan keyEvent),
		swap:     make(chan *ROM),
		swapDone: make(chan error),
		frames:   make(chan Frame, 1),
		stop:     make(chan bool),
		done:     make(chan bool),
	}
}

// Start begins execution.
func (r *Runner) Start() { go r.run() }

func (r *Runner) run() {
	defer close(r.done)

	fps := r.e.cfg.FPS
	if fps <= 0 {
		fps = DefaultConfig().FPS
	}
	t := time.NewTicker(time.Second / time.Duration(fps))
	defer t.Stop()

	running := true
	for {
		select {
		case <-r.stop:
			return
		case rom := <-r.swap:
			err := r.e.Load(rom)
			if err == nil {
				running = true
			}
			r.swapDone <- err
		case k := <-r.keys:
			r.e.SetKey(k.key, k.down)
		case <-t.C:
			if !running {
				break
			}
			if err := r.step(); err != nil {
				if !r.dev {
					r.err = err
					return
				}
				log.Printf("halt: %v", err)
				running = false
			}
		}
	}
}

// step runs one frame and publishes the result, replacing any frame the
// front end has not yet received.
func (r *Runner) step() error {
	err := r.e.Frame()
	m := r.e.Machine()
	f := Frame{
		Image:  r.e.Image(),
		Redraw: r.e.ShouldRedraw(),
		Tone:   r.e.Tone(),
		Last:   m.Last(),
		PC:     m.PC,
	}
	r.last = &f
	select {
	case <-r.frames:
	default:
	}
	r.frames <- f
	return err
}

// Frames returns the channel on which frames are delivered.
func (r *Runner) Frames() <-chan Frame { return r.frames }

// Done returns a channel that is closed when the runner stops, either
// because Stop was called or because the machine halted.
func (r *Runner) Done() <-chan bool { return r.done }

// SetKey forwards a key press or release to the machine.
func (r *Runner) SetKey(k byte, down bool) {
	select {
	case r.keys <- keyEvent{k, down}:
	case <-r.done:
	}
}

// Swap replaces the running program with rom.
func (r *Runner) Swap(rom *ROM) error {
	select {
	case r.swap <- rom:
		return <-r.swapDone
	case <-r.done:
		return r.err
	}
}

// Stop halts the runner and returns the error that halted the machine,
// if any.
func (r *Runner) Stop() error {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
	return r.err
}

// LastFrame returns the last frame produced by the runner.
// It may only be called once the runner is done.
func (r *Runner) LastFrame() (Frame, bool) {
	<-r.done
	if r.last == nil {
		return Frame{}, false
	}
	return *r.last, true
}
