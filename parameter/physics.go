package parameter

// Vehicle Thrust and Speed
const (
	VehicleThrust     = 0.01
	VehicleAirResist  = 0.03
	VehicleMaxSpeed   = 3.0
	VehicleMinSpeed   = 1.5
	VehicleSpeedFloor = 0.5

	// VehicleEnergySpeedScale shapes how much energy lifts the target speed
	VehicleEnergySpeedScale = 0.7

	// VehicleDecelRatio scales thrust when slowing toward a lower target
	VehicleDecelRatio = 0.5

	// VehicleBaselineThrust keeps the vehicle creeping even at target
	VehicleBaselineThrust = 0.3

	// VehicleHoverHeight is the fixed Y of the vehicle above the track
	VehicleHoverHeight = 1.5

	VehicleApproachGain = 3.0
	VehicleBrakeRate    = 0.15
	VehicleDragRatio    = 0.5
)

// Boost
const (
	VehicleBoosterSpeed  = 0.4
	VehicleBoosterDecay  = 0.08
	VehicleBoostCooldown = 3.0
)

// Steering, Drift and Roll
const (
	VehicleSteerRate    = 0.01
	VehicleSteerGain    = 25.0
	VehicleAngularSpeed = 0.02
	VehicleAngularLerp  = 0.35
	VehicleDriftLerp    = 0.3
	VehicleAirDrift     = 0.1
	VehicleRollAngle    = 0.4
	VehicleRollLerp     = 0.1

	// VehicleBankRollRatio is the share of track bank added to visual roll
	VehicleBankRollRatio = 0.5
)

// Collision Response
const (
	CollisionRayLength      = 2.0
	CollisionRepulsionRatio = 0.5
	CollisionRepulsionCap   = 2.5
	CollisionRepulsionApply = 0.5
	CollisionRepulsionDecay = 0.85
	CollisionFrontSpeedKeep = 0.3
	CollisionSpeedDecrease  = 0.8
	CollisionShieldDamage   = 0.15
)

// Track Following
const (
	FollowPull = 0.15
	FollowMax  = 0.3
)

// FrameRateReference converts per-frame tuning into per-second behaviour (values were tuned at 60 fps)
const FrameRateReference = 60.0
