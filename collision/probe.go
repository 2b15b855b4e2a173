package collision

import (
	"math"

	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/track"
	"github.com/lixenwraith/beatrace/vmath"
)

// Result aggregates the probe rays for one frame
type Result struct {
	Hit   bool
	Left  bool
	Right bool
	Front bool

	// Point and Normal describe the nearest contact across all rays
	Point    vmath.Vec3F
	Normal   vmath.Vec3F
	Distance float64
}

type ray struct {
	dx, dz float64
	left   bool
	right  bool
	front  bool
}

var diag = math.Sqrt2 / 2

// Rays in the XZ plane, +X right and +Z forward
// Diagonals count only toward their side so a long wall beside the vehicle never reads as a front hit
var probeRays = [...]ray{
	{dx: 1, dz: 0, right: true},
	{dx: -1, dz: 0, left: true},
	{dx: diag, dz: diag, right: true},
	{dx: -diag, dz: diag, left: true},
	{dx: 0, dz: 1, front: true},
}

// Probe casts short rays from the vehicle centre against track colliders
type Probe struct {
	length float64
}

func NewProbe() *Probe {
	return &Probe{length: parameter.CollisionRayLength}
}

// Check tests every ray against every collider and keeps the nearest hit per ray
func (p *Probe) Check(pos vmath.Vec3F, colliders []track.Collider) Result {
	var res Result
	if len(colliders) == 0 || !vmath.V3FFinite(pos) {
		return res
	}

	best := math.Inf(1)
	for i := range colliders {
		if colliders[i].Box.Contains(pos.X, pos.Z) {
			embedded(&res, pos, colliders[i].Box)
			best = 0
		}
	}

	for _, r := range probeRays {
		rayBest := math.Inf(1)
		var nx, nz float64
		for i := range colliders {
			// Boxes around the centre are handled by embedded; every ray would report them at t=0
			if colliders[i].Box.Contains(pos.X, pos.Z) {
				continue
			}
			t, cnx, cnz, ok := vmath.RayOBB2(pos.X, pos.Z, r.dx, r.dz, colliders[i].Box, p.length)
			if ok && t < rayBest {
				rayBest, nx, nz = t, cnx, cnz
			}
		}
		if rayBest >= p.length {
			continue
		}

		res.Hit = true
		res.Left = res.Left || r.left
		res.Right = res.Right || r.right
		res.Front = res.Front || r.front

		if rayBest < best {
			best = rayBest
			res.Distance = rayBest
			res.Point = vmath.Vec3F{X: pos.X + r.dx*rayBest, Y: pos.Y, Z: pos.Z + r.dz*rayBest}
			res.Normal = vmath.Vec3F{X: nx, Z: nz}
		}
	}
	return res
}

// embedded reports a box containing the vehicle centre as a single contact
// The shallower penetration axis picks the side: lateral gives Left or Right from the offset sign,
// longitudinal from behind gives Front
func embedded(res *Result, pos vmath.Vec3F, b vmath.OBB2) {
	lx, lz := b.ToLocal(pos.X, pos.Z)
	fx, fz, rx, rz := vmath.HeadingVectors(b.Heading)

	res.Hit = true
	res.Distance = 0
	res.Point = pos
	if b.HalfL-math.Abs(lz) < b.HalfW-math.Abs(lx) && lz < 0 {
		res.Front = true
		res.Normal = vmath.Vec3F{X: -fx, Z: -fz}
		return
	}
	if lx >= 0 {
		// Centre sits on the box's right half, so the box is on the vehicle's left
		res.Left = true
		res.Normal = vmath.Vec3F{X: rx, Z: rz}
	} else {
		res.Right = true
		res.Normal = vmath.Vec3F{X: -rx, Z: -rz}
	}
}

// Damage is the shield loss for a collision at the given speed
func Damage(speed, maxSpeed float64) float64 {
	if maxSpeed <= 0 {
		return 0
	}
	ratio := speed / maxSpeed
	return ratio * ratio * parameter.CollisionSpeedDecrease * parameter.CollisionShieldDamage
}
