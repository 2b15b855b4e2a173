package vmath

import (
	"math"
)

// OBB2 is an oriented box on the XZ plane
// HalfW extends along the box's right axis, HalfL along its forward axis
type OBB2 struct {
	CX, CZ  float64
	HalfW   float64
	HalfL   float64
	Heading float64
}

// ToLocal converts a world XZ point into the box frame (lateral, longitudinal)
func (b OBB2) ToLocal(x, z float64) (lx, lz float64) {
	fx, fz, rx, rz := HeadingVectors(b.Heading)
	dx, dz := x-b.CX, z-b.CZ
	return dx*rx + dz*rz, dx*fx + dz*fz
}

// Contains reports whether a world XZ point lies inside or on the box
func (b OBB2) Contains(x, z float64) bool {
	lx, lz := b.ToLocal(x, z)
	return math.Abs(lx) <= b.HalfW && math.Abs(lz) <= b.HalfL
}

const rayEpsilon = 1e-9

// RayOBB2 intersects a ray (origin, unit direction) with the box using the slab method in box space
// Returns distance along the ray, the world-space surface normal at the entry point, and ok=false on miss
// A ray starting inside the box hits at t=0 with the normal facing back along the ray;
// callers that need a contact side should test Contains first
func RayOBB2(ox, oz, dx, dz float64, b OBB2, maxDist float64) (t, nx, nz float64, ok bool) {
	fx, fz, rx, rz := HeadingVectors(b.Heading)

	px, pz := ox-b.CX, oz-b.CZ
	lpx := px*rx + pz*rz
	lpz := px*fx + pz*fz
	ldx := dx*rx + dz*rz
	ldz := dx*fx + dz*fz

	if math.Abs(lpx) <= b.HalfW && math.Abs(lpz) <= b.HalfL {
		return 0, -dx, -dz, true
	}

	tEnter := math.Inf(-1)
	tExit := math.Inf(1)
	var enterAxis int
	var enterSign float64

	slab := func(axis int, p, d, h float64) bool {
		if math.Abs(d) < rayEpsilon {
			return math.Abs(p) <= h
		}
		t1 := (-h - p) / d
		t2 := (h - p) / d
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tEnter {
			tEnter = t1
			enterAxis = axis
			enterSign = sign
		}
		if t2 < tExit {
			tExit = t2
		}
		return true
	}

	if !slab(0, lpx, ldx, b.HalfW) || !slab(1, lpz, ldz, b.HalfL) {
		return 0, 0, 0, false
	}
	if tEnter > tExit || tExit < 0 || tEnter < 0 || tEnter > maxDist {
		return 0, 0, 0, false
	}

	if enterAxis == 0 {
		nx, nz = rx*enterSign, rz*enterSign
	} else {
		nx, nz = fx*enterSign, fz*enterSign
	}
	return tEnter, nx, nz, true
}
