package emulator

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Palette holds the colours used for lit and unlit pixels.
type Palette struct {
	On, Off color.RGBA
}

var DefaultPalette = Palette{On: colornames.White, Off: colornames.Black}

// ParsePalette returns the palette with the named foreground and background
// colours, which are SVG 1.1 colour keywords such as "lightgreen".
func ParsePalette(fg, bg string) (Palette, error) {
	var p Palette
	for _, c := range []struct {
		name string
		dst  *color.RGBA
	}{
		{fg, &p.On},
		{bg, &p.Off},
	} {
		rgba, ok := colornames.Map[strings.ToLower(c.name)]
		if !ok {
			return Palette{}, fmt.Errorf("unknown colour %q", c.name)
		}
		*c.dst = rgba
	}
	return p, nil
}

// Apply recolours RGBA8 pixels in place, mapping black pixels to Off and
// all others to On.
func (p Palette) Apply(pix []byte) {
	for b := pix; len(b) >= 4; b = b[4:] {
		c := p.Off
		if b[0] != 0 {
			c = p.On
		}
		b[0] = c.R
		b[1] = c.G
		b[2] = c.B
		b[3] = c.A
	}
}
