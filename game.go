package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/reacher/ecs/entity"
	"github.com/milk9111/reacher/ecs/system"
	"github.com/milk9111/reacher/input"
	"github.com/milk9111/reacher/prefabs"
	"github.com/milk9111/reacher/sim"
	"go.uber.org/zap"
)

var backgroundColor = color.RGBA{R: 24, G: 26, B: 32, A: 255}

type Game struct {
	frames int
	debug  bool

	width  int
	height int

	sim    *sim.Simulation
	render *system.RenderSystem
}

func NewGame(world *prefabs.WorldSpec, scene entity.SceneSpec, bindings input.Bindings, debug bool, logger *zap.Logger) (*Game, error) {
	source := input.NewKeyboardSource(bindings, world.Width, world.Height)
	s, err := sim.New(sim.Config{
		Delta:  world.Delta(),
		Scene:  scene,
		Input:  source,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return &Game{
		debug:  debug,
		width:  world.Width,
		height: world.Height,
		sim:    s,
		render: system.NewRenderSystem(),
	}, nil
}

func (g *Game) Update() error {
	g.frames++

	if err := g.handleKeys(inpututil.IsKeyJustPressed); err != nil {
		return err
	}

	g.sim.Step()
	return nil
}

// handleKeys applies the window hotkeys. Escape ends the game loop.
func (g *Game) handleKeys(justPressed func(ebiten.Key) bool) error {
	if justPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	w := g.sim.World()
	g.render.Draw(w, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.sim.Physics().Space(), w, screen)
		system.DrawActorDebug(w, screen)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 10, g.height-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
