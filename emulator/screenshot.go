package emulator

import (
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// SaveScreenshot writes m to the named file as a PNG, enlarged by scale.
func SaveScreenshot(path string, m image.Image, scale int) error {
	if scale < 1 {
		scale = 1
	}
	b := m.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "screenshot")
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	return errors.Wrap(f.Close(), "screenshot")
}
