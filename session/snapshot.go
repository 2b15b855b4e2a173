package session

import (
	"math"

	"github.com/google/uuid"

	"github.com/lixenwraith/beatrace/audio"
	"github.com/lixenwraith/beatrace/collision"
	"github.com/lixenwraith/beatrace/event"
	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/theme"
	"github.com/lixenwraith/beatrace/track"
	"github.com/lixenwraith/beatrace/vmath"
)

// Snapshot is a read-only copy of the values a HUD needs
type Snapshot struct {
	Phase         Phase
	Score         int64
	BestScore     int64
	Shield        float64
	Speed         float64
	Combo         int
	BoostCooldown float64
	Countdown     float64
	Distance      float64
	RunID         uuid.UUID
	Frame         int64
	Beat          bool
	Pattern       string

	// Camera helpers
	SpeedRatio float64
	Shake      float64
}

// Transform is the vehicle pose for presentation
type Transform struct {
	Position vmath.Vec3F
	Heading  float64 // track heading at the vehicle
	Yaw      float64 // visual steering yaw
	Roll     float64 // lean plus half the track bank
}

func (s *Session) Snapshot() Snapshot {
	v := s.sim.Vehicle()
	return Snapshot{
		Phase:         s.Phase(),
		Score:         s.score,
		BestScore:     s.bestScore,
		Shield:        v.Shield,
		Speed:         v.Speed,
		Combo:         s.combo,
		BoostCooldown: math.Max(0, v.BoostCooldown),
		Countdown:     s.countdown,
		Distance:      s.distance,
		RunID:         s.runID,
		Frame:         s.frame,
		Beat:          s.features.Beat,
		Pattern:       s.gen.CurrentPattern(),
		SpeedRatio:    v.Speed / parameter.VehicleMaxSpeed,
		Shake:         s.shake,
	}
}

func (s *Session) Transform() Transform {
	v := s.sim.Vehicle()
	info := s.gen.SegmentAt(v.Position.Z)
	return Transform{
		Position: v.Position,
		Heading:  info.Heading,
		Yaw:      v.Angular,
		Roll:     v.Roll + info.Bank*parameter.VehicleBankRollRatio,
	}
}

// Phase is the current lifecycle phase, PhaseNone before Init
func (s *Session) Phase() Phase {
	if !s.machine.Started() {
		return PhaseNone
	}
	return phaseOf(s.machine.State())
}

// CountdownDisplay is the whole seconds left, 0 once the countdown shows "GO"
func (s *Session) CountdownDisplay() int {
	if s.countdown <= 0 {
		return 0
	}
	return int(math.Ceil(s.countdown))
}

// Segments returns the active track window, valid until the next Update
func (s *Session) Segments() []*track.Segment {
	return s.gen.Segments()
}

// TrackAt is the track centerline, heading and width at z
func (s *Session) TrackAt(z float64) track.Info {
	return s.gen.SegmentAt(z)
}

func (s *Session) Features() audio.Features {
	return s.features
}

// LastHit is the probe result of the latest Playing frame
func (s *Session) LastHit() collision.Result {
	return s.lastHit
}

// Events is the queue given with WithEvents, or nil
func (s *Session) Events() *event.EventQueue {
	return s.events
}

func (s *Session) Theme() theme.Theme {
	return s.theme
}

// Generator exposes the track generator for diagnostics
func (s *Session) Generator() *track.Generator {
	return s.gen
}
