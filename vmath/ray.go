package vmath

import "math"

// Ray is a half-line from Origin along a unit Dir
type Ray struct {
	Origin Vec3F
	Dir    Vec3F
}

// RayPlaneZ intersects r with the plane z = planeZ
// Returns false when the ray is parallel to the plane
// Intersections behind the origin are returned as-is (t < 0), mirroring a plain line solve
func RayPlaneZ(r Ray, planeZ float64) (Vec3F, bool) {
	if math.Abs(r.Dir.Z) < 1e-12 {
		return Vec3F{}, false
	}
	t := (planeZ - r.Origin.Z) / r.Dir.Z
	return V3FAdd(r.Origin, V3FScale(r.Dir, t)), true
}

// PointAt returns the point at distance t along the ray
func (r Ray) PointAt(t float64) Vec3F {
	return V3FAdd(r.Origin, V3FScale(r.Dir, t))
}
