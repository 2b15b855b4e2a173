package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector, Y is up and the track runs along +Z
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FDamp multiplies every component by factor
func V3FDamp(v Vec3F, factor float64) Vec3F {
	return Vec3F{v.X * factor, v.Y * factor, v.Z * factor}
}

// V3FFinite reports whether all components are finite
func V3FFinite(v Vec3F) bool {
	return Finite(v.X) && Finite(v.Y) && Finite(v.Z)
}
