package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/common"
	"github.com/milk9111/reacher/ecs"
)

// Camera is a perspective camera placed at its entity transform and looking
// at Target. Width and Height are the viewport size in screen pixels.
type Camera struct {
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FovY   float64 // radians
	Near   float64
	Far    float64
	Width  int
	Height int
}

func (c Camera) up() mgl64.Vec3 {
	if c.Up.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return c.Up
}

// Forward returns the unit view direction for a camera at eye.
func (c Camera) Forward(eye mgl64.Vec3) mgl64.Vec3 {
	return c.Target.Sub(eye).Normalize()
}

func (c Camera) View(eye mgl64.Vec3) mgl64.Mat4 {
	return mgl64.LookAtV(eye, c.Target, c.up())
}

func (c Camera) Projection() mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}
	return mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewportRay casts a ray from the near plane through a screen point given in
// pixels with the origin at the top-left corner.
func (c Camera) ViewportRay(eye mgl64.Vec3, screen mgl64.Vec2) (common.Ray, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return common.Ray{}, false
	}
	view := c.View(eye)
	proj := c.Projection()
	winY := float64(c.Height) - screen.Y()

	near, err := mgl64.UnProject(mgl64.Vec3{screen.X(), winY, 0}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return common.Ray{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{screen.X(), winY, 1}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return common.Ray{}, false
	}
	dir := far.Sub(near)
	if dir.Len() == 0 {
		return common.Ray{}, false
	}
	return common.Ray{Origin: near, Direction: dir.Normalize()}, true
}

// WorldToScreen projects p to screen pixels (top-left origin). ok is false for
// points outside the depth range.
func (c Camera) WorldToScreen(eye, p mgl64.Vec3) (mgl64.Vec2, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return mgl64.Vec2{}, false
	}
	win := mgl64.Project(p, c.View(eye), c.Projection(), 0, 0, c.Width, c.Height)
	if win.Z() < 0 || win.Z() > 1 {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{win.X(), float64(c.Height) - win.Y()}, true
}

var CameraComponent = ecs.NewComponent[Camera]()

// Pointer is the cursor position in screen pixels. Valid is false while the
// cursor is outside the viewport.
type Pointer struct {
	Position mgl64.Vec2
	Valid    bool
}

var PointerComponent = ecs.NewComponent[Pointer]()
