package common

import "github.com/go-gl/mathgl/mgl64"

// ClampToRadius returns target when it lies strictly inside radius of center,
// otherwise the point at distance radius from center toward target.
func ClampToRadius(center, target mgl64.Vec3, radius float64) mgl64.Vec3 {
	delta := target.Sub(center)
	dist := delta.Len()
	if dist < radius {
		return target
	}
	if dist == 0 {
		return center
	}
	return center.Add(delta.Mul(radius / dist))
}
