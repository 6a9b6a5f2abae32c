package main

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/render"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/simulation"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/ui"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	fishColor  = color.RGBA{A: 255}
	leadColor  = color.RGBA{R: 255, A: 255}
)

func init() {
	whiteImage.Fill(color.White)
}

type Game struct {
	ctx       context.Context
	engine    *simulation.Engine
	cfg       *simulation.Config
	lastState *simulation.Snapshot

	// UI Controls
	toolbar *ui.Toolbar
	pause   *ui.Checkbox
	step    bool

	// reused every frame
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewGame(ctx context.Context, cfg *simulation.Config, engine *simulation.Engine) *Game {
	g := &Game{
		ctx:    ctx,
		engine: engine,
		cfg:    cfg,
	}
	g.pause = ui.NewCheckbox("Pause", false, nil)
	g.toolbar = ui.NewToolbar(0, 0,
		g.pause,
		ui.NewButton("Step", func() { g.step = true }),
	)
	return g
}

func (g *Game) Update() error {
	// 1. Update UI Controls, keyboard mirrors them
	g.toolbar.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.pause.Value = !g.pause.Value
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.step = true
	}

	// 2. Retrieve Latest State (Non-blocking)
Loop:
	for {
		select {
		case snap := <-g.engine.Snapshots():
			g.lastState = snap
		default:
			break Loop
		}
	}

	// 3. Trigger Simulation Step
	if !g.pause.Value || g.step {
		g.step = false
		if err := g.engine.Tick(g.ctx, 1); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)

	if g.lastState != nil {
		for i, a := range g.lastState.Agents {
			clr := fishColor
			if i == 0 {
				clr = leadColor
			}
			if len(g.vertices)+4 > math.MaxUint16 {
				g.flush(screen)
			}
			g.appendFish(a, g.lastState.Domain, clr)
		}
		g.flush(screen)
	}

	g.toolbar.Draw(screen)

	var tick uint64
	if g.lastState != nil {
		tick = g.lastState.Tick
	}
	msg := fmt.Sprintf("TPS: %0.1f  FPS: %0.1f  Tick: %d", ebiten.ActualTPS(), ebiten.ActualFPS(), tick)
	_, h := g.toolbar.Size()
	ebitenutil.DebugPrintAt(screen, msg, 6, int(h)+4)
}

// flush draws the batched fish. uint16 indices cap a batch at 65535 vertices.
func (g *Game) flush(screen *ebiten.Image) {
	if len(g.vertices) > 0 {
		screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
	}
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
}

// appendFish batches one fish.
func (g *Game) appendFish(a flock.Agent, d flock.Domain, clr color.RGBA) {
	base := uint16(len(g.vertices))
	r, gr, b, al := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for _, p := range render.Outline(a, g.cfg.FishSize) {
		x, y := render.ToScreen(p, d)
		g.vertices = append(g.vertices, ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: gr, ColorB: b, ColorA: al,
		})
	}
	for _, idx := range render.TriangleIndices {
		g.indices = append(g.indices, base+idx)
	}
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(2 * g.cfg.WorldWidth), int(2 * g.cfg.WorldHeight)
}
