package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/core"
)

func TestFillBinaryRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillBinaryRGBA(buf, []uint8{1, 0}, color.RGBA{R: 10, G: 20, B: 30, A: 255}, color.RGBA{A: 255})
	assert.Equal(t, []byte{10, 20, 30, 255, 0, 0, 0, 255}, buf)
}

func TestSnapshotScalesCells(t *testing.T) {
	cells := []uint8{1, 0, 0, 1, 1, 0}
	img := Snapshot(cells, core.Size{W: 3, H: 2}, 2, color.Black, color.White)
	require.NotNil(t, img)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())

	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, black, img.RGBAAt(1, 1))
	assert.Equal(t, white, img.RGBAAt(2, 0))
	assert.Equal(t, black, img.RGBAAt(3, 3), "cell (1,1)")
	assert.Equal(t, white, img.RGBAAt(5, 2), "cell (1,2)")

	assert.Nil(t, Snapshot(cells, core.Size{W: 2, H: 2}, 1, color.Black, color.White))
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, []uint8{1, 0, 0, 1}, core.Size{W: 2, H: 2}, 5))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())

	assert.Error(t, WritePNG(&buf, []uint8{1}, core.Size{W: 2, H: 2}, 1))
}
