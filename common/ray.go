package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const rayEpsilon = 1e-9

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectPlane returns the distance along r to the plane through point with
// the given normal. Rays parallel to the plane or pointing away from it do not
// intersect.
func (r Ray) IntersectPlane(point, normal mgl64.Vec3) (float64, bool) {
	denom := normal.Dot(r.Direction)
	if math.Abs(denom) <= rayEpsilon {
		return 0, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}
