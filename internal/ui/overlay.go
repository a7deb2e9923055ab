//go:build ebiten

package ui

import (
	"image/color"

	"ising-mc/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the live readouts (step, temperature, average spin, energy)
// over the top-left corner of the lattice. Key I toggles it.
type Overlay struct {
	sim   core.Sim
	show  bool
	pixel *ebiten.Image
}

// NewOverlay constructs a visible overlay for sim.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the visibility toggle.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	lines := statsLines(o.sim)
	if len(lines) == 0 {
		return
	}

	const (
		pad   = 6
		lineH = 15
	)
	face := basicfont.Face7x13
	width := 0
	for _, line := range lines {
		if w := text.BoundString(face, line).Dx(); w > width {
			width = w
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*pad), float64(len(lines)*lineH+2*pad))
	op.ColorScale.ScaleWithColor(color.RGBA{R: 12, G: 12, B: 16, A: 200})
	screen.DrawImage(o.pixel, op)

	fg := color.RGBA{R: 120, G: 220, B: 255, A: 255}
	for i, line := range lines {
		text.Draw(screen, line, face, pad, pad+(i+1)*lineH-3, fg)
	}
}
