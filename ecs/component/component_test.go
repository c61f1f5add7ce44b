package component

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionStateJustPressed(t *testing.T) {
	var s ActionState
	held := map[Action]bool{}
	poll := func(a Action) bool { return held[a] }

	s.Update(poll)
	assert.False(t, s.Pressed(ActionJump))
	assert.False(t, s.JustPressed(ActionJump))

	held[ActionJump] = true
	s.Update(poll)
	assert.True(t, s.Pressed(ActionJump))
	assert.True(t, s.JustPressed(ActionJump), "first tick of a press is just-pressed")

	s.Update(poll)
	assert.True(t, s.Pressed(ActionJump))
	assert.False(t, s.JustPressed(ActionJump), "held key is no longer just-pressed")

	held[ActionJump] = false
	s.Update(poll)
	assert.False(t, s.Pressed(ActionJump))
	assert.False(t, s.Pressed(actionCount), "out of range actions are never pressed")
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	got, err := ParseAction(" Move_Left ")
	require.NoError(t, err)
	assert.Equal(t, ActionMoveLeft, got)

	_, err = ParseAction("crouch")
	assert.Error(t, err)
}

func TestActionDirection(t *testing.T) {
	d, ok := ActionMoveLeft.Direction()
	assert.True(t, ok)
	assert.Equal(t, -1.0, d)
	d, ok = ActionMoveRight.Direction()
	assert.True(t, ok)
	assert.Equal(t, 1.0, d)
	_, ok = ActionJump.Direction()
	assert.False(t, ok)
}

func TestPlayerAscentTarget(t *testing.T) {
	p := DefaultPlayer()
	assert.Equal(t, 1.5, p.AscentTarget(1.0), "absolute mode ignores takeoff height")

	p.JumpHeightMode = JumpHeightRelative
	assert.Equal(t, 2.5, p.AscentTarget(1.0))
	assert.Equal(t, 4.5, p.AscentTarget(3.0))
}

func TestPlayerGravityDisplacement(t *testing.T) {
	p := DefaultPlayer()
	assert.Equal(t, DefaultGravityStep, p.GravityDisplacement(0.5), "unscaled step ignores dt")

	p.ScaleGravityByDelta = true
	assert.InDelta(t, DefaultGravityStep, p.GravityDisplacement(1.0/60.0), 1e-12)
	assert.InDelta(t, 2*DefaultGravityStep, p.GravityDisplacement(1.0/30.0), 1e-12)
}

func TestParseJumpHeightMode(t *testing.T) {
	m, err := ParseJumpHeightMode("")
	require.NoError(t, err)
	assert.Equal(t, JumpHeightAbsolute, m)
	m, err = ParseJumpHeightMode("relative")
	require.NoError(t, err)
	assert.Equal(t, JumpHeightRelative, m)
	_, err = ParseJumpHeightMode("sideways")
	assert.Error(t, err)
}

func TestVerticalStateTransitions(t *testing.T) {
	var s VerticalState
	assert.False(t, s.Rising())
	s.BeginAscent(1.5)
	assert.True(t, s.Rising())
	assert.Equal(t, 1.5, s.TargetHeight)
	s.EndAscent(7)
	assert.False(t, s.Rising())
	assert.Equal(t, uint64(7), s.EndedAt)
}

func TestKinematicControllerTake(t *testing.T) {
	var k KinematicController
	_, ok := k.Translation()
	assert.False(t, ok)

	k.SetTranslation(mgl64.Vec3{1, -0.01, 0})
	v, ok := k.Take()
	assert.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, -0.01, 0}, v)

	_, ok = k.Translation()
	assert.False(t, ok, "Take clears the pending translation")
}

func testCamera() (Camera, mgl64.Vec3) {
	return Camera{
		Target: mgl64.Vec3{0, 1, 0},
		Up:     mgl64.Vec3{0, 1, 0},
		FovY:   mgl64.DegToRad(45),
		Near:   0.1,
		Far:    100,
		Width:  800,
		Height: 600,
	}, mgl64.Vec3{0, 1, 10}
}

func TestCameraViewportRayThroughCenter(t *testing.T) {
	cam, eye := testCamera()
	ray, ok := cam.ViewportRay(eye, mgl64.Vec2{400, 300})
	require.True(t, ok)

	assert.InDelta(t, 0, ray.Direction.X(), 1e-9)
	assert.InDelta(t, 0, ray.Direction.Y(), 1e-9)
	assert.InDelta(t, -1, ray.Direction.Z(), 1e-9)

	dist, ok := ray.IntersectPlane(cam.Target, cam.Forward(eye))
	require.True(t, ok)
	hit := ray.At(dist)
	assert.InDelta(t, 0, hit.X(), 1e-6)
	assert.InDelta(t, 1, hit.Y(), 1e-6)
	assert.InDelta(t, 0, hit.Z(), 1e-6)
}

func TestCameraViewportRayScreenAxes(t *testing.T) {
	cam, eye := testCamera()
	halfWidth := math.Tan(cam.FovY/2) * 10 * 800.0 / 600.0

	ray, ok := cam.ViewportRay(eye, mgl64.Vec2{800, 0})
	require.True(t, ok)
	dist, ok := ray.IntersectPlane(cam.Target, cam.Forward(eye))
	require.True(t, ok)
	hit := ray.At(dist)
	assert.InDelta(t, halfWidth, hit.X(), 1e-6, "right screen edge maps to +X")
	assert.Greater(t, hit.Y(), 1.0, "top screen edge maps to +Y")
}

func TestCameraWorldToScreenRoundTrip(t *testing.T) {
	cam, eye := testCamera()
	screen, ok := cam.WorldToScreen(eye, mgl64.Vec3{0, 1, 0})
	require.True(t, ok)
	assert.InDelta(t, 400, screen.X(), 1e-6)
	assert.InDelta(t, 300, screen.Y(), 1e-6)

	_, ok = (Camera{}).ViewportRay(eye, mgl64.Vec2{})
	assert.False(t, ok, "zero viewport never casts")
}
