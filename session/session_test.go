package session

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/beatrace/event"
	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/status"
	"github.com/lixenwraith/beatrace/theme"
	"github.com/lixenwraith/beatrace/track"
	"github.com/lixenwraith/beatrace/vehicle"
	"github.com/lixenwraith/beatrace/vmath"
)

const frameDt = 1.0 / 60

type harness struct {
	s   *Session
	q   *event.EventQueue
	reg *status.Registry
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{q: event.NewEventQueue(), reg: status.NewRegistry()}
	opts = append([]Option{WithEvents(h.q), WithStatus(h.reg), WithRand(vmath.NewFastRand(42))}, opts...)
	h.s = New(DefaultConfig(), opts...)
	h.s.Init()
	h.drain()
	return h
}

// straightLibrary never places obstacles or pads
func straightLibrary() *track.Library {
	return track.NewLibrary(
		[]track.Pattern{{Name: track.PatternStraight, Segments: []track.SegmentSpec{{Width: 1}}}},
		map[track.Trigger][]string{track.TriggerRandom: {track.PatternStraight}},
	)
}

// blockerLibrary starts straight and then puts an obstacle on the centerline of every segment
func blockerLibrary() *track.Library {
	return track.NewLibrary(
		[]track.Pattern{
			{Name: track.PatternStraight, Segments: []track.SegmentSpec{{Width: 1}}},
			{Name: "blocker", Segments: []track.SegmentSpec{{Width: 1, Obstacle: track.SideCenter}}},
		},
		map[track.Trigger][]string{track.TriggerRandom: {"blocker"}},
	)
}

func (h *harness) drain() {
	h.q.Consume()
}

func (h *harness) step(bins []uint8, in vehicle.Input) []event.GameEvent {
	h.s.Update(frameDt, bins, in)
	return h.q.Consume()
}

func (h *harness) runCountdown(t *testing.T) []event.GameEvent {
	t.Helper()
	var evs []event.GameEvent
	for i := 0; i < 1000 && h.s.Phase() == PhaseCountdown; i++ {
		evs = append(evs, h.step(nil, vehicle.Input{})...)
	}
	require.Equal(t, PhasePlaying, h.s.Phase())
	return evs
}

func types(evs []event.GameEvent) []event.EventType {
	out := make([]event.EventType, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

func TestInitEntersCountdown(t *testing.T) {
	q := event.NewEventQueue()
	s := New(DefaultConfig(), WithEvents(q), WithRand(vmath.NewFastRand(1)))
	assert.Equal(t, PhaseNone, s.Phase())

	s.Init()
	assert.Equal(t, PhaseCountdown, s.Phase())
	assert.Equal(t, []event.EventType{
		event.EventPhaseChange,
		event.EventSessionReady,
		event.EventPhaseChange,
		event.EventCountdownTick,
	}, types(q.Consume()))

	snap := s.Snapshot()
	assert.Equal(t, 3, s.CountdownDisplay())
	assert.Equal(t, 1, snap.Combo)
	assert.Equal(t, 1.0, snap.Shield)
	assert.Zero(t, snap.Score)
	assert.Len(t, s.Segments(), DefaultConfig().Track.WindowSize())
}

func TestEventsExposesQueue(t *testing.T) {
	assert.Nil(t, New(DefaultConfig()).Events())

	q := event.NewEventQueue()
	s := New(DefaultConfig(), WithEvents(q), WithRand(vmath.NewFastRand(1)))
	require.Same(t, q, s.Events())

	s.Init()
	var got []event.EventType
	n := s.Events().Drain(func(ev event.GameEvent) { got = append(got, ev.Type) })
	assert.Equal(t, len(got), n)
	assert.Contains(t, got, event.EventCountdownTick)
	assert.Zero(t, q.Len())
}

func TestCountdownFreezesVehicle(t *testing.T) {
	h := newHarness(t)
	evs := h.runCountdown(t)

	var ticks []float64
	for _, e := range evs {
		if e.Type == event.EventCountdownTick {
			ticks = append(ticks, e.Value)
		}
	}
	// The initial 3 was drained by the harness
	assert.Equal(t, []float64{2, 1, 0}, ticks)
	assert.LessOrEqual(t, h.s.Snapshot().Countdown, -parameter.CountdownGoWindow)
	assert.Zero(t, h.s.Transform().Position.Z)
	assert.Zero(t, h.s.Snapshot().Distance)
}

func TestFrameTimeIsClamped(t *testing.T) {
	h := newHarness(t)
	h.s.Update(10, nil, vehicle.Input{})
	assert.InDelta(t, parameter.CountdownSeconds-parameter.FrameDtMax, h.s.Snapshot().Countdown, 1e-12)

	h.s.Update(0, nil, vehicle.Input{})
	assert.InDelta(t, parameter.CountdownSeconds-parameter.FrameDtMax-parameter.FrameDtMin, h.s.Snapshot().Countdown, 1e-12)
}

func TestContractViolationsPanic(t *testing.T) {
	s := New(DefaultConfig())
	assert.Panics(t, func() { s.Update(frameDt, nil, vehicle.Input{}) })
	assert.Panics(t, func() { s.Restart() })

	s.Init()
	assert.Panics(t, func() { s.Update(-frameDt, nil, vehicle.Input{}) })
	assert.Panics(t, func() { s.Update(math.NaN(), nil, vehicle.Input{}) })
	assert.Panics(t, func() { s.Init() })
}

func TestSilenceScenario(t *testing.T) {
	h := newHarness(t, WithLibrary(straightLibrary()))
	h.runCountdown(t)

	for i := 0; i < 60*30; i++ {
		h.step(nil, vehicle.Input{})
	}
	snap := h.s.Snapshot()
	require.Equal(t, PhasePlaying, snap.Phase)

	assert.InDelta(t, 1.6, snap.Speed, 0.15)
	assert.Equal(t, 1, snap.Combo)
	assert.Equal(t, 1.0, snap.Shield)
	assert.Equal(t, int64(math.Floor(snap.Distance*parameter.ScorePerDistance)), snap.Score)
	assert.InEpsilon(t, snap.Distance*parameter.FrameRateReference, h.s.Transform().Position.Z, 1e-9)
	assert.Zero(t, h.reg.Ints.Get("session.collisions").Load())

	f := h.s.Features()
	assert.Zero(t, f.Energy)
	assert.False(t, f.Beat)
}

func TestSustainedBassScenario(t *testing.T) {
	h := newHarness(t, WithLibrary(straightLibrary()))
	h.runCountdown(t)
	before := h.s.Snapshot().Combo

	bins := make([]uint8, 256)
	for i := 0; i < len(bins)*8/100; i++ {
		bins[i] = 230
	}

	beatFrame := -1
	maxCombo := before
	for i := 0; i < 60*5; i++ {
		for _, e := range h.step(bins, vehicle.Input{}) {
			if e.Type == event.EventBeat && beatFrame < 0 {
				beatFrame = i
			}
		}
		maxCombo = max(maxCombo, h.s.Snapshot().Combo)
	}

	require.GreaterOrEqual(t, beatFrame, 0, "no beat detected")
	assert.LessOrEqual(t, float64(beatFrame+1)*frameDt, 0.2)
	assert.GreaterOrEqual(t, maxCombo, before+1)
	assert.Greater(t, h.s.Features().Bass, 0.85)
}

func TestObstacleAheadScenario(t *testing.T) {
	h := newHarness(t, WithLibrary(blockerLibrary()))
	h.runCountdown(t)

	var pre float64
	hit := false
	var evs []event.GameEvent
	for i := 0; i < 60*30 && !hit; i++ {
		pre = h.s.Snapshot().Speed
		evs = h.step(nil, vehicle.Input{})
		hit = h.s.LastHit().Hit
	}
	require.True(t, hit, "vehicle never reached the obstacle")

	res := h.s.LastHit()
	snap := h.s.Snapshot()
	assert.True(t, res.Front)
	assert.LessOrEqual(t, snap.Speed, pre*parameter.CollisionFrontSpeedKeep)
	assert.Less(t, snap.Shield, 1.0)
	assert.Equal(t, 1, snap.Combo)
	assert.Greater(t, snap.Shake, 0.0)
	assert.Contains(t, types(evs), event.EventCollision)
}

func TestGameOverAndRestart(t *testing.T) {
	h := newHarness(t, WithLibrary(blockerLibrary()))
	h.runCountdown(t)
	firstRun := h.s.Snapshot().RunID

	for i := 0; i < 60*300 && h.s.Phase() == PhasePlaying; i++ {
		h.step(nil, vehicle.Input{})
	}
	require.Equal(t, PhaseGameOver, h.s.Phase())
	over := h.s.Snapshot()
	assert.LessOrEqual(t, over.Shield, 0.0)
	assert.Equal(t, over.Score, over.BestScore)

	// Score is frozen after game over
	h.step(nil, vehicle.Input{})
	assert.Equal(t, over.Score, h.s.Snapshot().Score)

	// A press inside the debounce window is ignored, even after release
	h.step(nil, vehicle.Input{Restart: true})
	h.step(nil, vehicle.Input{})
	require.Equal(t, PhaseGameOver, h.s.Phase())

	// Holding across the window does not count as a new press
	for i := 0; i < 60; i++ {
		h.step(nil, vehicle.Input{Restart: true})
	}
	require.Equal(t, PhaseGameOver, h.s.Phase())

	h.step(nil, vehicle.Input{})
	evs := h.step(nil, vehicle.Input{Restart: true})
	require.Equal(t, PhaseCountdown, h.s.Phase())
	assert.Contains(t, types(evs), event.EventRestart)

	snap := h.s.Snapshot()
	assert.Zero(t, snap.Score)
	assert.Equal(t, 1, snap.Combo)
	assert.Equal(t, 1.0, snap.Shield)
	assert.Zero(t, snap.Distance)
	assert.NotEqual(t, firstRun, snap.RunID)
	assert.Equal(t, over.Score, snap.BestScore)
	assert.Equal(t, DefaultConfig().Track.WindowSize(), h.s.Generator().ActiveCount())
	assert.Zero(t, h.s.Transform().Position.Z)
}

func TestRestartDuringPlay(t *testing.T) {
	h := newHarness(t)
	h.runCountdown(t)
	for i := 0; i < 120; i++ {
		h.step(nil, vehicle.Input{Steer: 1})
	}

	h.s.Restart()
	snap := h.s.Snapshot()
	assert.Equal(t, PhaseCountdown, snap.Phase)
	assert.Zero(t, snap.Score)
	assert.Equal(t, 1.0, snap.Shield)
	assert.Equal(t, 3, h.s.CountdownDisplay())
	assert.Equal(t, 23, h.s.Generator().ActiveCount())
	assert.Equal(t, "track.active: 23", findLine(h.reg.Lines(), "track.active"))

	// Forced re-entry restarts the countdown too
	h.step(nil, vehicle.Input{})
	h.s.Restart()
	assert.Equal(t, parameter.CountdownSeconds, h.s.Snapshot().Countdown)
}

func TestScoreIsMonotonic(t *testing.T) {
	h := newHarness(t)
	h.runCountdown(t)

	rng := vmath.NewFastRand(5)
	bins := make([]uint8, 256)
	last := int64(0)
	for i := 0; i < 60*60 && h.s.Phase() == PhasePlaying; i++ {
		for j := range bins {
			bins[j] = uint8(rng.Intn(256))
		}
		in := vehicle.Input{
			Steer: float64(rng.Intn(3) - 1),
			Boost: rng.Intn(30) == 0,
			Drift: rng.Bool(),
		}
		h.step(bins, in)

		snap := h.s.Snapshot()
		require.GreaterOrEqual(t, snap.Score, last)
		require.GreaterOrEqual(t, snap.Combo, 1)
		require.True(t, vmath.Finite(snap.Speed))
		last = snap.Score
	}
}

func TestSetTheme(t *testing.T) {
	h := newHarness(t)
	h.runCountdown(t)
	for i := 0; i < 60; i++ {
		h.step(nil, vehicle.Input{})
	}
	require.Positive(t, h.s.Snapshot().Distance)

	ice, err := theme.Preset("ice")
	require.NoError(t, err)

	require.NoError(t, h.s.SetTheme(ice, false))
	assert.Equal(t, PhasePlaying, h.s.Phase())
	assert.Equal(t, "ice", h.s.Theme().Name)

	require.NoError(t, h.s.SetTheme(ice, true))
	assert.Equal(t, PhaseCountdown, h.s.Phase())
	assert.Zero(t, h.s.Snapshot().Distance)
	assert.Zero(t, h.s.Transform().Position.Z)

	var themeEvents []float64
	for _, e := range h.q.Consume() {
		if e.Type == event.EventThemeChange {
			themeEvents = append(themeEvents, e.Value)
		}
	}
	assert.Equal(t, []float64{0, 1}, themeEvents)

	bad := ice
	bad.Style.WallStyle = "brick"
	assert.ErrorIs(t, h.s.SetTheme(bad, true), theme.ErrInvalidTheme)
	assert.Equal(t, "ice", h.s.Theme().Name)
}

func TestTransformAddsBank(t *testing.T) {
	h := newHarness(t)
	tr := h.s.Transform()
	assert.Zero(t, tr.Heading)
	assert.Zero(t, tr.Roll)
	assert.Equal(t, parameter.VehicleHoverHeight, tr.Position.Y)
}

func findLine(lines []string, key string) string {
	for _, l := range lines {
		if len(l) > len(key) && l[:len(key)] == key && l[len(key)] == ':' {
			return l
		}
	}
	return ""
}
