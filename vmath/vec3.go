package vmath

import (
	"math"
)

// Vec3 is a float64 3D vector in world space
// Listener and emitter positions use the host game's units
type Vec3 struct {
	X, Y, Z float64
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

// V3DistSq avoids the square root for containment checks in hot paths
func V3DistSq(a, b Vec3) float64 {
	return V3MagSq(V3Sub(a, b))
}

func V3Dist(a, b Vec3) float64 {
	return math.Sqrt(V3DistSq(a, b))
}

func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3Lerp interpolates between a and b, t clamped to [0,1]
func V3Lerp(a, b Vec3, t float64) Vec3 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return V3Add(a, V3Scale(V3Sub(b, a), t))
}
