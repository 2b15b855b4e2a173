package parameter

// Track Geometry
const (
	TrackSegmentLength = 40.0
	TrackBaseWidth     = 12.0
	TrackLookAhead     = 20
	TrackLookBehind    = 3

	// TrackWindowSegments is the segment count produced by initial generation
	TrackWindowSegments = TrackLookAhead + TrackLookBehind

	TrackWallThickness = 0.5
	TrackWallHeight    = 3.0
)

// Curve Integration
const (
	// TrackCurvatureLerp blends current curvature toward the pattern target
	TrackCurvatureLerp = 0.3

	// TrackHeadingRate converts curvature into heading change per segment (radians)
	TrackHeadingRate = 0.012

	// TrackBankRate converts curvature into target bank
	TrackBankRate = 0.04
	TrackBankLerp = 0.3

	// TrackEnergyNarrowing shrinks width by up to 15% at full energy
	TrackEnergyNarrowing = 0.15

	// TrackHeadingSoftLimit is the heading past which curvature targets are pulled back
	TrackHeadingSoftLimit = 0.6

	// TrackHeadingRestore scales the pull per radian beyond the soft limit
	TrackHeadingRestore = 8.0

	// TrackMaxHeading bounds the path heading so Z always advances
	TrackMaxHeading = 1.0
)

// Pattern Selection
const (
	// TriggerFloor is the minimum band value that can claim a trigger
	TriggerFloor = 0.3

	// TriggerEnergyOverride forces the energy pool when exceeded
	TriggerEnergyOverride = 0.6

	// PatternMirrorChance is the probability a pattern is mirrored left/right
	PatternMirrorChance = 0.5

	// InitialStraightPatterns are queued before the first generation
	InitialStraightPatterns = 2
)

// Obstacles and Pickups
const (
	ObstacleLateralRatio = 0.3
	ObstacleHalfWidth    = 1.0
	ObstacleHalfLength   = 1.0
	ObstacleHeight       = 2.0

	BoostPadHalfWidth  = 1.5
	BoostPadHalfLength = 3.0
)
