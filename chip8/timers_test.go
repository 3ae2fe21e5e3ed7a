package chip8

import "testing"

func TestTimersTick(t *testing.T) {
	tm := Timers{Delay: 2, Sound: 1}
	if !tm.Tone() {
		t.Errorf("Tone() is false with sound timer %d", tm.Sound)
	}
	for _, want := range []Timers{{1, 0}, {0, 0}, {0, 0}} {
		tm.Tick()
		if tm != want {
			t.Errorf("after Tick timers are %+v, want %+v", tm, want)
		}
	}
	if tm.Tone() {
		t.Errorf("Tone() is true with sound timer zero")
	}
}

func TestKeypad(t *testing.T) {
	var k Keypad
	k.Set(0xf, true)
	k.Set(0x10, true) // ignored
	if !k.Pressed(0xf) {
		t.Errorf("key f not pressed")
	}
	if k.Pressed(0x10) || k.Pressed(0) {
		t.Errorf("unexpected key pressed: %v", k)
	}
	k.Set(0xf, false)
	if k.Pressed(0xf) {
		t.Errorf("key f still pressed after release")
	}
}
