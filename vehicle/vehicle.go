package vehicle

import (
	"math"

	"github.com/lixenwraith/beatrace/audio"
	"github.com/lixenwraith/beatrace/collision"
	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/vmath"
)

// Input is the per-frame control signal
// Steer is -1 (left), 0 or +1 (right); other values are clamped
type Input struct {
	Steer   float64
	Boost   bool
	Brake   bool
	Drift   bool
	Restart bool
}

// Vehicle is the player craft state
// +X is right and +Z is forward along the track
type Vehicle struct {
	Position vmath.Vec3F
	Speed    float64
	Boost    float64
	Angular  float64
	Drift    float64
	Roll     float64
	Shield   float64

	BoostCooldown float64
	Repulsion     vmath.Vec3F

	Input Input
}

// Simulator integrates one Vehicle
type Simulator struct {
	v Vehicle
}

func NewSimulator() *Simulator {
	s := &Simulator{}
	s.Reset()
	return s
}

// Reset puts the vehicle at the start line with a full shield
func (s *Simulator) Reset() {
	s.v = Vehicle{
		Position: vmath.Vec3F{Y: parameter.VehicleHoverHeight},
		Shield:   1,
	}
}

// Vehicle returns a copy of the current state
func (s *Simulator) Vehicle() Vehicle {
	return s.v
}

// Position returns the vehicle's world position
func (s *Simulator) Position() vmath.Vec3F {
	return s.v.Position
}

// Destroyed reports a depleted shield
func (s *Simulator) Destroyed() bool {
	return s.v.Shield <= 0
}

// ApplyBoost raises the boost to at least the booster speed
func (s *Simulator) ApplyBoost() {
	s.v.Boost = math.Max(s.v.Boost, parameter.VehicleBoosterSpeed)
}

// TargetSpeed is the audio-driven cruise speed
func TargetSpeed(f audio.Features) float64 {
	energy := vmath.Clamp01(sanitize(f.Energy))
	return parameter.VehicleMinSpeed +
		(parameter.VehicleMaxSpeed*speedModifier(f)-parameter.VehicleMinSpeed)*
			math.Sqrt(energy)*parameter.VehicleEnergySpeedScale
}

// SpeedCap is the highest speed reachable with the given features and boost
func SpeedCap(f audio.Features, boost float64) float64 {
	return math.Max(TargetSpeed(f), parameter.VehicleMaxSpeed*speedModifier(f)) + boost
}

// Update advances the vehicle by dt seconds and applies the collision result
// Returns the shield damage taken this frame
func (s *Simulator) Update(dt float64, in Input, f audio.Features, c collision.Result) float64 {
	if !vmath.Finite(dt) || dt <= 0 {
		return 0
	}
	in.Steer = vmath.Clamp(sanitize(in.Steer), -1, 1)
	v := &s.v
	v.Input = in
	frames := dt * parameter.FrameRateReference

	target := TargetSpeed(f)
	if in.Brake {
		v.Speed -= v.Speed * parameter.VehicleBrakeRate * frames
		v.Speed = math.Max(parameter.VehicleSpeedFloor, v.Speed)
	} else {
		diff := target - v.Speed
		rate := parameter.VehicleThrust * parameter.VehicleDecelRatio
		if diff > 0 {
			rate = parameter.VehicleThrust * vmath.Clamp(sanitize(f.ThrustModifier()), 1, 1+parameter.AudioThrustMod)
		}
		v.Speed += diff * rate * parameter.VehicleApproachGain * frames
		v.Speed += parameter.VehicleThrust * parameter.VehicleBaselineThrust * frames
	}

	if v.BoostCooldown > 0 {
		v.BoostCooldown -= dt
	}
	if in.Boost && v.BoostCooldown <= 0 {
		s.ApplyBoost()
		v.BoostCooldown = parameter.VehicleBoostCooldown
	}
	if v.Boost > 0 {
		v.Speed += v.Boost * dt
		v.Boost = math.Max(0, v.Boost-parameter.VehicleBoosterDecay*dt)
	}

	v.Speed -= v.Speed * parameter.VehicleAirResist * parameter.VehicleDragRatio * dt
	v.Speed = vmath.Clamp(v.Speed, parameter.VehicleSpeedFloor, SpeedCap(f, v.Boost))

	// Steering moves laterally at a fixed rate; angular only feeds visual yaw
	v.Position.X += in.Steer * parameter.VehicleSteerRate * parameter.VehicleSteerGain * frames
	v.Angular = vmath.Approach(v.Angular, -in.Steer*parameter.VehicleAngularSpeed, parameter.VehicleAngularLerp)

	driftTarget := 0.0
	if in.Drift {
		driftTarget = parameter.VehicleAirDrift * -in.Steer
	}
	v.Drift = vmath.Approach(v.Drift, driftTarget, parameter.VehicleDriftLerp)

	v.Position.X += v.Repulsion.X * parameter.CollisionRepulsionApply
	v.Position.Z += v.Repulsion.Z * parameter.CollisionRepulsionApply
	v.Repulsion = vmath.V3FDamp(v.Repulsion, parameter.CollisionRepulsionDecay)

	// Drift slides along the steer direction
	v.Position.X -= v.Drift * v.Speed * frames
	v.Position.Z += v.Speed * frames

	v.Roll = vmath.Approach(v.Roll, in.Steer*parameter.VehicleRollAngle, parameter.VehicleRollLerp)

	// The contact cut may leave speed under the floor for this frame; the next clamp restores it
	damage := 0.0
	if c.Hit {
		damage = s.collide(c)
	}
	return damage
}

// collide applies repulsion, speed loss and shield damage
func (s *Simulator) collide(c collision.Result) float64 {
	v := &s.v
	damage := collision.Damage(v.Speed, parameter.VehicleMaxSpeed)
	v.Shield = math.Max(0, v.Shield-damage)

	push := math.Min(parameter.CollisionRepulsionCap, v.Speed*parameter.CollisionRepulsionRatio)
	// Left contact pushes right, right contact pushes left
	if c.Left {
		v.Repulsion.X = push
	}
	if c.Right {
		v.Repulsion.X = -push
	}
	if c.Front {
		v.Speed *= parameter.CollisionFrontSpeedKeep
		v.Repulsion.Z = -1
	}
	v.Speed *= parameter.CollisionSpeedDecrease
	return damage
}

// Follow pulls the vehicle toward the track centerline at its Z
func (s *Simulator) Follow(centerX, dt float64) {
	if !vmath.Finite(centerX) || !vmath.Finite(dt) || dt <= 0 {
		return
	}
	offset := s.v.Position.X - centerX
	pull := vmath.Clamp(-offset*parameter.FollowPull*dt*parameter.FrameRateReference,
		-parameter.FollowMax, parameter.FollowMax)
	s.v.Position.X += pull
}

func speedModifier(f audio.Features) float64 {
	return vmath.Clamp(sanitize(f.SpeedModifier()), 1, 1+parameter.AudioSpeedCapMod)
}

func sanitize(v float64) float64 {
	if !vmath.Finite(v) {
		return 0
	}
	return v
}
