package parameter

import "time"

// Frame Timing
const (
	FrameDtMin = 0.001
	FrameDtMax = 0.05

	// FrameInterval is the demo binary tick rate
	FrameInterval = time.Second / 60
)

// Countdown
const (
	CountdownSeconds = 3.0

	// CountdownGoWindow keeps "GO" visible after the countdown reaches zero
	CountdownGoWindow = 0.5
)

// Scoring and Combo
const (
	ScorePerDistance = 10.0

	ComboBoostPickup = 5
	ComboBeat        = 1
	ComboHoldSeconds = 3.0
	ComboDecayEvery  = 2.0
)

// Camera
const (
	ShakeDamageGain = 3.0
	ShakeDecay      = 0.92
	ShakeCutoff     = 0.001
)

// Input
const (
	// RestartDebounce ignores restart edges closer together than this
	RestartDebounce = 500 * time.Millisecond

	// KeyHoldTimeout releases a held key when the terminal stops sending repeats
	KeyHoldTimeout = 150 * time.Millisecond
)

// Event Queue
const (
	EventQueueSize = 64
	EventQueueMask = EventQueueSize - 1
)
