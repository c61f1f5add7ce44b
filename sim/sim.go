package sim

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
	"github.com/milk9111/reacher/ecs/entity"
	"github.com/milk9111/reacher/ecs/system"
	"go.uber.org/zap"
)

type Config struct {
	Delta  float64
	Scene  entity.SceneSpec
	Input  system.InputSource
	Logger *zap.Logger
}

// Simulation owns a world holding the scene and steps it with the systems in
// their fixed per-tick order.
type Simulation struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	input     system.InputSource
	scene     entity.Scene
	logger    *zap.Logger
}

// Snapshot is the observable state of the scene after a tick.
type Snapshot struct {
	Tick     uint64
	Player   mgl64.Vec3
	Hand     mgl64.Vec3
	Grounded bool
	Phase    component.VerticalPhase
}

// Summary describes a finished run.
type Summary struct {
	Ticks          uint64
	AscentsStarted int
	AscentsEnded   int
	MaxHeight      float64
	Final          Snapshot
}

// finisher is implemented by input sources that can run out.
type finisher interface {
	Finished() bool
}

func New(cfg Config) (*Simulation, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	w := ecs.NewWorld()
	if cfg.Delta > 0 {
		w.SetDelta(cfg.Delta)
	}

	scene, err := entity.BuildScene(w, cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	physics := system.NewPhysicsSystem(logger.Named("physics"))
	scheduler := ecs.NewScheduler(
		system.NewInputSystem(cfg.Input, logger.Named("input")),
		system.NewIntentSystem(),
		system.NewPlayerControllerSystem(),
		system.NewVerticalMotionSystem(),
		system.NewJumpSystem(),
		physics,
		system.NewFollowerSystem(),
	)

	logger.Info("scene built",
		zap.Stringer("player", scene.Player),
		zap.Stringer("hand", scene.Hand),
		zap.Stringer("camera", scene.Camera),
		zap.Stringer("floor", scene.Floor),
		zap.Float64("delta", w.Delta()),
	)

	return &Simulation{
		world:     w,
		scheduler: scheduler,
		physics:   physics,
		input:     cfg.Input,
		scene:     scene,
		logger:    logger,
	}, nil
}

func (s *Simulation) World() *ecs.World {
	return s.world
}

func (s *Simulation) Scene() entity.Scene {
	return s.scene
}

func (s *Simulation) Physics() *system.PhysicsSystem {
	return s.physics
}

// Step advances one tick and returns the events it produced.
func (s *Simulation) Step() []ecs.Event {
	s.scheduler.Update(s.world)
	events := s.world.Events().Drain()
	for _, ev := range events {
		fields := []zap.Field{zap.String("event", ev.Type), zap.Uint64("tick", ev.Tick)}
		if a, ok := ev.Data.(system.AscentEvent); ok {
			fields = append(fields,
				zap.Stringer("entity", a.Entity),
				zap.Float64("y", a.Y),
				zap.Float64("target_height", a.TargetHeight),
			)
		}
		s.logger.Debug("world event", fields...)
	}
	return events
}

func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{Tick: s.world.Tick()}
	if t, ok := ecs.Get(s.world, s.scene.Player, component.TransformComponent); ok {
		snap.Player = t.Position
	}
	if t, ok := ecs.Get(s.world, s.scene.Hand, component.TransformComponent); ok {
		snap.Hand = t.Position
	}
	if out, ok := ecs.Get(s.world, s.scene.Player, component.KinematicOutputComponent); ok {
		snap.Grounded = out.Grounded
	}
	if st, ok := ecs.Get(s.world, s.scene.Player, component.VerticalStateComponent); ok {
		snap.Phase = st.Phase
	}
	return snap
}

// Run steps until ticks have elapsed, the input source finishes or ctx is
// done. A non-positive ticks runs until one of the other two.
func (s *Simulation) Run(ctx context.Context, ticks int) (Summary, error) {
	var sum Summary
	sum.MaxHeight = s.Snapshot().Player.Y()

	for i := 0; ticks <= 0 || i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			sum.Final = s.Snapshot()
			return sum, err
		}
		if f, ok := s.input.(finisher); ok && f.Finished() {
			break
		}

		for _, ev := range s.Step() {
			switch ev.Type {
			case system.EventAscentStarted:
				sum.AscentsStarted++
			case system.EventAscentEnded:
				sum.AscentsEnded++
			}
		}
		sum.Ticks++

		snap := s.Snapshot()
		if snap.Player.Y() > sum.MaxHeight {
			sum.MaxHeight = snap.Player.Y()
		}
		if ce := s.logger.Check(zap.DebugLevel, "tick"); ce != nil {
			ce.Write(
				zap.Uint64("tick", snap.Tick),
				zap.Float64("x", snap.Player.X()),
				zap.Float64("y", snap.Player.Y()),
				zap.Bool("grounded", snap.Grounded),
				zap.Stringer("phase", snap.Phase),
				zap.Float64("hand_x", snap.Hand.X()),
				zap.Float64("hand_y", snap.Hand.Y()),
			)
		}
	}

	sum.Final = s.Snapshot()
	s.logger.Info("simulation finished",
		zap.Uint64("ticks", sum.Ticks),
		zap.Int("ascents", sum.AscentsStarted),
		zap.Float64("max_height", sum.MaxHeight),
		zap.Float64("final_x", sum.Final.Player.X()),
		zap.Float64("final_y", sum.Final.Player.Y()),
	)
	return sum, nil
}
