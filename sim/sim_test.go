package sim

import (
	"context"
	"testing"

	"github.com/milk9111/reacher/ecs/component"
	"github.com/milk9111/reacher/ecs/entity"
	"github.com/milk9111/reacher/ecs/system"
	"github.com/milk9111/reacher/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newSim(t *testing.T, script string, logger *zap.Logger) *Simulation {
	t.Helper()
	scene, err := entity.LoadSceneSpec()
	require.NoError(t, err)

	cfg := Config{Delta: 1.0 / 60.0, Scene: scene, Logger: logger}
	if script != "" {
		src, err := input.NewScriptSource("test.tengo", []byte(script))
		require.NoError(t, err)
		cfg.Input = src
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestIdleActorSettlesOnFloor(t *testing.T) {
	s := newSim(t, "", nil)

	sum, err := s.Run(context.Background(), 60)
	require.NoError(t, err)

	assert.Equal(t, uint64(60), sum.Ticks)
	assert.True(t, sum.Final.Grounded)
	assert.InDelta(t, 0.55, sum.Final.Player.Y(), 1e-9, "feet rest on the floor top")
	assert.Equal(t, component.VerticalGrounded, sum.Final.Phase)
	assert.Zero(t, sum.AscentsStarted)
	assert.InDelta(t, 1.0, sum.Final.Hand.X(), 1e-12, "hand stays put without a pointer")
}

func TestScriptedJumpReachesTargetHeight(t *testing.T) {
	s := newSim(t, `
if tick >= 50 && tick < 53 { input.press("jump") }
if tick >= 119 { input.done() }
`, nil)

	sum, err := s.Run(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, uint64(120), sum.Ticks, "the run stops once the script is done")
	assert.Equal(t, 1, sum.AscentsStarted, "holding jump while rising does not restart the ascent")
	assert.Equal(t, 1, sum.AscentsEnded)
	assert.GreaterOrEqual(t, sum.MaxHeight, 1.5)
	assert.Less(t, sum.MaxHeight, 1.5+5.5/60.0+1e-9, "the ascent stops on the step that reaches the target")
}

func TestScriptedRunMovesRight(t *testing.T) {
	s := newSim(t, `
if tick >= 50 && tick < 80 { input.press("move_right") }
`, nil)

	sum, err := s.Run(context.Background(), 80)
	require.NoError(t, err)
	assert.InDelta(t, 30*7.0/60.0, sum.Final.Player.X(), 1e-9)
	assert.True(t, sum.Final.Grounded)
}

func TestHandStaysWithinReach(t *testing.T) {
	s := newSim(t, `
input.point(tick * 20, 100)
if tick >= 63 { input.done() }
`, nil)

	for i := 0; i < 64; i++ {
		s.Step()
		snap := s.Snapshot()
		assert.LessOrEqual(t, snap.Hand.Sub(snap.Player).Len(), component.DefaultReachRadius+1e-9)
	}
}

func TestRunHonoursContext(t *testing.T) {
	s := newSim(t, "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := s.Run(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Ticks)
}

func TestStepLogsAscentEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newSim(t, `if tick >= 50 { input.press("jump") }`, zap.New(core))

	var started bool
	for i := 0; i < 60 && !started; i++ {
		for _, ev := range s.Step() {
			started = started || ev.Type == system.EventAscentStarted
		}
	}
	require.True(t, started)

	entries := logs.FilterMessage("world event").FilterField(zap.String("event", system.EventAscentStarted)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, 1.5, entries[0].ContextMap()["target_height"])
}
