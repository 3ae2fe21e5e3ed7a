package chip8

// NumKeys is the number of keys on the hexadecimal keypad.
const NumKeys = 16

// Keypad holds the level state of the 16 keys, 0x0 through 0xF.
type Keypad [NumKeys]bool

// Set records whether key is held down. Keys outside 0x0-0xF are ignored.
func (k *Keypad) Set(key byte, pressed bool) {
	if int(key) < NumKeys {
		k[key] = pressed
	}
}

// Pressed reports whether key is held down.
func (k *Keypad) Pressed(key byte) bool {
	return int(key) < NumKeys && k[key]
}

func (k *Keypad) Reset() { *k = Keypad{} }
