package chip8

import "image"

// Screen dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// DisplayState is the redraw signal left by the most recent framebuffer
// operation. It is not reset by reading it.
type DisplayState byte

const (
	Idle DisplayState = iota
	Drew
	Cleared
)

func (s DisplayState) String() string {
	switch s {
	case Drew:
		return "drew"
	case Cleared:
		return "cleared"
	default:
		return "idle"
	}
}

// Display is the monochrome framebuffer.
type Display struct {
	Buffer [Height][Width]byte
	state  DisplayState
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	d.Buffer = [Height][Width]byte{}
	d.state = Cleared
}

// DrawPixel flips the pixel at (x, y) and reports whether it was on
// beforehand.
func (d *Display) DrawPixel(x, y int) (collided bool) {
	p := &d.Buffer[y][x]
	collided = *p == 1
	*p ^= 1
	d.state = Drew
	return
}

// Pixel reports whether the pixel at (x, y) is on.
func (d *Display) Pixel(x, y int) bool { return d.Buffer[y][x] != 0 }

// State returns the current redraw signal.
func (d *Display) State() DisplayState { return d.state }

// RGBA returns the framebuffer as row-major RGBA8 pixels, off pixels opaque
// black and on pixels opaque white.
func (d *Display) RGBA() []byte {
	pix := make([]byte, 0, Width*Height*4)
	for _, row := range d.Buffer {
		for _, p := range row {
			if p == 0 {
				pix = append(pix, 0x00, 0x00, 0x00, 0xff)
			} else {
				pix = append(pix, 0xff, 0xff, 0xff, 0xff)
			}
		}
	}
	return pix
}

// Image returns a copy of the framebuffer as an image.
func (d *Display) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    d.RGBA(),
		Stride: Width * 4,
		Rect:   image.Rect(0, 0, Width, Height),
	}
}
