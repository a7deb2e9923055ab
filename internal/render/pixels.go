package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pkg/errors"

	"ising-mc/internal/core"
)

// Default spin colors: up spins black on white, as in the lattice printouts.
var (
	UpColor   color.Color = color.Black
	DownColor color.Color = color.White
)

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// Snapshot renders cells into an image with each cell scaled to a
// scale x scale block. It returns nil when cells does not match size.
func Snapshot(cells []uint8, size core.Size, scale int, on, off color.Color) *image.RGBA {
	if len(cells) != size.W*size.H {
		return nil
	}
	if scale <= 0 {
		scale = 1
	}
	base := make([]byte, 4*len(cells))
	fillBinaryRGBA(base, cells, on, off)

	img := image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale))
	for y := 0; y < size.H*scale; y++ {
		row := y / scale * size.W
		for x := 0; x < size.W*scale; x++ {
			src := (row + x/scale) * 4
			copy(img.Pix[img.PixOffset(x, y):], base[src:src+4])
		}
	}
	return img
}

// WritePNG encodes a snapshot of cells as PNG.
func WritePNG(w io.Writer, cells []uint8, size core.Size, scale int) error {
	img := Snapshot(cells, size, scale, UpColor, DownColor)
	if img == nil {
		return errors.Errorf("snapshot: %d cells for %dx%d grid", len(cells), size.W, size.H)
	}
	return errors.Wrap(png.Encode(w, img), "encode snapshot")
}
