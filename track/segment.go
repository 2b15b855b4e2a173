package track

import (
	"fmt"
	"math/bits"

	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/vmath"
)

// ColliderKind identifies what a collider belongs to
type ColliderKind uint8

const (
	KindWallLeft ColliderKind = iota
	KindWallRight
	KindObstacle
)

func (k ColliderKind) String() string {
	switch k {
	case KindWallLeft:
		return "wall_left"
	case KindWallRight:
		return "wall_right"
	case KindObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Collider is a solid box the vehicle can hit
type Collider struct {
	Kind    ColliderKind
	Box     vmath.OBB2
	Segment int
}

// Segment is one arena slot of generated track
// The segment starts at anchor (X, Z) and runs SegmentLength along Heading to (EndX, EndZ)
type Segment struct {
	Index     int
	Pattern   string
	X, Z      float64
	EndX      float64
	EndZ      float64
	Heading   float64
	Bank      float64
	Width     float64
	Curvature float64

	HasObstacle  bool
	ObstacleSide Side
	Obstacle     vmath.OBB2

	HasBoost bool
	Boost    vmath.OBB2

	colliders     [3]Collider
	colliderCount int
	slot          int
}

// Colliders returns the segment's walls and optional obstacle
func (s *Segment) Colliders() []Collider {
	return s.colliders[:s.colliderCount]
}

// Center returns the midpoint of the segment centerline
func (s *Segment) Center() (x, z float64) {
	return (s.X + s.EndX) / 2, (s.Z + s.EndZ) / 2
}

func (s *Segment) reset() {
	slot := s.slot
	*s = Segment{slot: slot}
}

// build places walls, obstacle and boost pad from the segment's geometry
func (s *Segment) build(spec SegmentSpec, length float64) {
	fx, fz, rx, rz := vmath.HeadingVectors(s.Heading)
	s.EndX = s.X + fx*length
	s.EndZ = s.Z + fz*length
	cx, cz := s.Center()

	halfLen := length / 2
	halfThick := parameter.TrackWallThickness / 2
	wallOffset := s.Width/2 + halfThick

	s.colliders[0] = Collider{
		Kind:    KindWallLeft,
		Segment: s.Index,
		Box: vmath.OBB2{
			CX: cx - rx*wallOffset, CZ: cz - rz*wallOffset,
			HalfW: halfThick, HalfL: halfLen, Heading: s.Heading,
		},
	}
	s.colliders[1] = Collider{
		Kind:    KindWallRight,
		Segment: s.Index,
		Box: vmath.OBB2{
			CX: cx + rx*wallOffset, CZ: cz + rz*wallOffset,
			HalfW: halfThick, HalfL: halfLen, Heading: s.Heading,
		},
	}
	s.colliderCount = 2

	if spec.Obstacle != SideNone {
		lateral := spec.Obstacle.Offset() * s.Width * parameter.ObstacleLateralRatio
		s.HasObstacle = true
		s.ObstacleSide = spec.Obstacle
		s.Obstacle = vmath.OBB2{
			CX: cx + rx*lateral, CZ: cz + rz*lateral,
			HalfW: parameter.ObstacleHalfWidth, HalfL: parameter.ObstacleHalfLength, Heading: s.Heading,
		}
		s.colliders[2] = Collider{Kind: KindObstacle, Segment: s.Index, Box: s.Obstacle}
		s.colliderCount = 3
	}

	if spec.Boost {
		s.HasBoost = true
		s.Boost = vmath.OBB2{
			CX: cx, CZ: cz,
			HalfW: parameter.BoostPadHalfWidth, HalfL: parameter.BoostPadHalfLength, Heading: s.Heading,
		}
	}
}

// arena owns every Segment ever allocated; slots are recycled through a free list
// The active bitset catches double release and release of foreign segments
type arena struct {
	slots  []*Segment
	free   []int
	active []uint64
}

func (a *arena) acquire() *Segment {
	var s *Segment
	if n := len(a.free); n > 0 {
		s = a.slots[a.free[n-1]]
		a.free = a.free[:n-1]
		s.reset()
	} else {
		s = &Segment{slot: len(a.slots)}
		a.slots = append(a.slots, s)
		if len(a.active)*64 < len(a.slots) {
			a.active = append(a.active, 0)
		}
	}
	a.active[s.slot/64] |= 1 << (s.slot % 64)
	return s
}

func (a *arena) release(s *Segment) {
	if s.slot < 0 || s.slot >= len(a.slots) || a.slots[s.slot] != s {
		panic(fmt.Sprintf("track: release of segment %d not owned by arena", s.Index))
	}
	word, bit := s.slot/64, uint64(1)<<(s.slot%64)
	if a.active[word]&bit == 0 {
		panic(fmt.Sprintf("track: double release of segment %d (slot %d)", s.Index, s.slot))
	}
	a.active[word] &^= bit
	a.free = append(a.free, s.slot)
}

// reset returns every slot to the free list
func (a *arena) reset() {
	clear(a.active)
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= 0; i-- {
		a.free = append(a.free, i)
	}
}

func (a *arena) size() int {
	return len(a.slots)
}

func (a *arena) activeCount() int {
	n := 0
	for _, w := range a.active {
		n += bits.OnesCount64(w)
	}
	return n
}
