//go:build ebiten

package app

import (
	"image/color"
	"log"
	"os"
	"time"

	"ising-mc/internal/core"
	"ising-mc/internal/render"
	"ising-mc/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	clock   *core.FixedStep

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	snapshot string
}

// New constructs a Game for the provided simulation. Simulation ticks run at
// tps regardless of the frame rate.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	tps := cfg.TPS
	if tps <= 0 {
		tps = 60
	}
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		overlay:  ui.NewOverlay(sim),
		clock:    core.NewFixedStep(time.Second / time.Duration(tps)),
		onColor:  render.UpColor,
		offColor: render.DownColor,
		scale:    cfg.Scale,
		seed:     cfg.Seed,
		snapshot: cfg.Snapshot,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.saveSnapshot()
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())

	ticks := g.clock.Due()
	if g.paused {
		ticks = 0
	}
	if g.tickOnce {
		ticks = 1
		g.tickOnce = false
	}
	for i := 0; i < ticks; i++ {
		g.sim.Step()
	}
	return nil
}

func (g *Game) saveSnapshot() {
	f, err := os.Create(g.snapshot)
	if err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	defer f.Close()
	if err := render.WritePNG(f, g.sim.Cells(), g.sim.Size(), g.scale); err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	log.Printf("saved %s", g.snapshot)
}

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.onColor, g.offColor, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size: the lattice plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
