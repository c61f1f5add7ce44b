package system

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
)

// RenderSystem draws every shaped collider as the screen rectangle covering
// its camera-facing side.
type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind(), component.TransformComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent)
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent)
	if !ok {
		return
	}
	eye := camTransform.Position

	entities := w.Query(
		component.TransformComponent.Kind(),
		component.ColliderComponent.Kind(),
		component.ShapeComponent.Kind(),
	)
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.Get(w, entities[i], component.ShapeComponent)
		sj, _ := ecs.Get(w, entities[j], component.ShapeComponent)
		if si.Layer != sj.Layer {
			return si.Layer < sj.Layer
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		c, _ := ecs.Get(w, e, component.ColliderComponent)
		s, _ := ecs.Get(w, e, component.ShapeComponent)

		x, y, width, height, ok := ScreenRect(cam, eye, t.Position, c.HalfExtents)
		if !ok {
			continue
		}
		vector.FillRect(screen, float32(x), float32(y), float32(width), float32(height), s.Color, false)
	}
}

// ScreenRect projects the camera-facing side of a box centered at pos and
// returns its screen bounds.
func ScreenRect(cam component.Camera, eye, pos, half mgl64.Vec3) (x, y, width, height float64, ok bool) {
	face := pos.Z() + half.Z()
	if eye.Z() < pos.Z() {
		face = pos.Z() - half.Z()
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			corner := mgl64.Vec3{pos.X() + sx*half.X(), pos.Y() + sy*half.Y(), face}
			p, visible := cam.WorldToScreen(eye, corner)
			if !visible {
				return 0, 0, 0, 0, false
			}
			minX = math.Min(minX, p.X())
			minY = math.Min(minY, p.Y())
			maxX = math.Max(maxX, p.X())
			maxY = math.Max(maxY, p.Y())
		}
	}
	return minX, minY, maxX - minX, maxY - minY, true
}
