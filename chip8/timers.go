package chip8

// Timers holds the delay and sound timers. Both count down towards zero,
// one step per call to Tick; the caller chooses how often to tick.
type Timers struct {
	Delay byte
	Sound byte
}

// Tick decrements each non-zero timer by one.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// Tone reports whether a tone should be playing.
func (t *Timers) Tone() bool { return t.Sound > 0 }

func (t *Timers) Reset() { *t = Timers{} }
