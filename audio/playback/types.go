// Package playback drives the speaker: music, the analysis tap and one-shot effects
package playback

import (
	"errors"
)

// Effect identifies a one-shot sound played in response to a session event
type Effect int

const (
	EffectBeat      Effect = iota // Soft tick on detected beats
	EffectBoost                   // Rising sweep when boost fires or a pad is collected
	EffectCollision               // Noisy thud on wall or obstacle contact
	EffectGameOver                // Falling tone when the shield is gone
	EffectCountdown               // Short blip per countdown second
	effectCount
)

func (e Effect) String() string {
	switch e {
	case EffectBeat:
		return "beat"
	case EffectBoost:
		return "boost"
	case EffectCollision:
		return "collision"
	case EffectGameOver:
		return "game_over"
	case EffectCountdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrNoAudio        = errors.New("audio output unavailable")
	ErrNotInitialized = errors.New("audio player not initialized")
)
