package collision

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/beatrace/track"
	"github.com/lixenwraith/beatrace/vmath"
)

func wall(kind track.ColliderKind, cx float64) track.Collider {
	return track.Collider{Kind: kind, Box: vmath.OBB2{CX: cx, CZ: 0, HalfW: 0.25, HalfL: 20}}
}

func TestCheckNoColliders(t *testing.T) {
	p := NewProbe()
	assert.Equal(t, Result{}, p.Check(vmath.Vec3F{}, nil))
}

func TestCollisionSymmetry(t *testing.T) {
	p := NewProbe()

	left := p.Check(vmath.Vec3F{}, []track.Collider{wall(track.KindWallLeft, -1.5)})
	assert.True(t, left.Hit)
	assert.True(t, left.Left)
	assert.False(t, left.Right)
	assert.False(t, left.Front)

	right := p.Check(vmath.Vec3F{}, []track.Collider{wall(track.KindWallRight, 1.5)})
	assert.True(t, right.Hit)
	assert.False(t, right.Left)
	assert.True(t, right.Right)
	assert.False(t, right.Front)

	// Mirror images report mirrored contacts
	assert.InDelta(t, -left.Point.X, right.Point.X, 1e-9)
	assert.InDelta(t, -left.Normal.X, right.Normal.X, 1e-9)
	assert.InDelta(t, 1.0, left.Normal.X, 1e-9)
	assert.InDelta(t, 1.25, left.Distance, 1e-9)
}

func TestCheckFrontObstacle(t *testing.T) {
	p := NewProbe()
	obstacle := track.Collider{Kind: track.KindObstacle, Box: vmath.OBB2{CX: 0, CZ: 2, HalfW: 0.5, HalfL: 1}}

	res := p.Check(vmath.Vec3F{X: 0, Y: 0.5, Z: 0}, []track.Collider{obstacle})
	want := Result{
		Hit:      true,
		Front:    true,
		Point:    vmath.Vec3F{X: 0, Y: 0.5, Z: 1},
		Normal:   vmath.Vec3F{X: 0, Z: -1},
		Distance: 1,
	}
	if diff := cmp.Diff(want, res, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("front obstacle mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckOutOfRange(t *testing.T) {
	p := NewProbe()
	res := p.Check(vmath.Vec3F{}, []track.Collider{wall(track.KindWallRight, 6.25)})
	assert.False(t, res.Hit)
}

func TestCheckNearestWins(t *testing.T) {
	p := NewProbe()
	res := p.Check(vmath.Vec3F{}, []track.Collider{
		wall(track.KindWallRight, 1.8),
		wall(track.KindWallLeft, -1.0),
	})
	assert.True(t, res.Left)
	assert.True(t, res.Right)
	assert.InDelta(t, -0.75, res.Point.X, 1e-9)
}

func TestCheckEmbeddedPicksOneSide(t *testing.T) {
	p := NewProbe()
	obstacle := vmath.OBB2{CX: 0, CZ: 0, HalfW: 1, HalfL: 3}

	tests := []struct {
		name               string
		pos                vmath.Vec3F
		left, right, front bool
		normalX, normalZ   float64
	}{
		{"entered from the right", vmath.Vec3F{X: 0.8}, true, false, false, 1, 0},
		{"entered from the left", vmath.Vec3F{X: -0.8}, false, true, false, -1, 0},
		{"entered from behind", vmath.Vec3F{X: 0.1, Z: -2.9}, false, false, true, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Check(tt.pos, []track.Collider{{Kind: track.KindObstacle, Box: obstacle}})
			assert.True(t, res.Hit)
			assert.Equal(t, tt.left, res.Left)
			assert.Equal(t, tt.right, res.Right)
			assert.Equal(t, tt.front, res.Front)
			assert.Zero(t, res.Distance)
			assert.InDelta(t, tt.normalX, res.Normal.X, 1e-9)
			assert.InDelta(t, tt.normalZ, res.Normal.Z, 1e-9)
		})
	}
}

func TestCheckEmbeddedKeepsOtherRays(t *testing.T) {
	p := NewProbe()
	res := p.Check(vmath.Vec3F{X: 0.8}, []track.Collider{
		{Kind: track.KindObstacle, Box: vmath.OBB2{HalfW: 1, HalfL: 3}},
		wall(track.KindWallRight, 2.3),
	})
	assert.True(t, res.Left)
	assert.True(t, res.Right)
	assert.False(t, res.Front)
	assert.Zero(t, res.Distance)
}

func TestDamage(t *testing.T) {
	assert.InDelta(t, 0.12, Damage(3, 3), 1e-12)
	assert.InDelta(t, 0.03, Damage(1.5, 3), 1e-12)
	assert.Zero(t, Damage(1, 0))
}
