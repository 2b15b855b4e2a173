package session

import (
	"fmt"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/beatrace/audio"
	"github.com/lixenwraith/beatrace/collision"
	"github.com/lixenwraith/beatrace/event"
	"github.com/lixenwraith/beatrace/fsm"
	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/status"
	"github.com/lixenwraith/beatrace/theme"
	"github.com/lixenwraith/beatrace/track"
	"github.com/lixenwraith/beatrace/vehicle"
	"github.com/lixenwraith/beatrace/vmath"
)

// Config holds the session's construction-time settings
type Config struct {
	Track track.Config
	Theme theme.Theme
}

func DefaultConfig() Config {
	return Config{
		Track: track.DefaultConfig(),
		Theme: theme.Default(),
	}
}

// Option customizes a Session at construction
type Option func(*Session)

// WithEvents publishes session events to q
func WithEvents(q *event.EventQueue) Option {
	return func(s *Session) { s.events = q }
}

// WithStatus records metrics into reg
func WithStatus(reg *status.Registry) Option {
	return func(s *Session) { s.statusReg = reg }
}

// WithRand seeds track generation; the default seed is the wall clock
func WithRand(rng *vmath.FastRand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLibrary replaces the built-in pattern library
func WithLibrary(lib *track.Library) Option {
	return func(s *Session) { s.lib = lib }
}

// Session sequences audio, track, collision and vehicle per frame
// Not safe for concurrent use; one goroutine drives Update
type Session struct {
	cfg     Config
	theme   theme.Theme
	machine *fsm.Machine[*Session]

	tracker *audio.FeatureTracker
	gen     *track.Generator
	probe   *collision.Probe
	sim     *vehicle.Simulator
	rng     *vmath.FastRand
	lib     *track.Library

	events    *event.EventQueue
	statusReg *status.Registry

	// Per-frame inputs
	dt       float64
	input    vehicle.Input
	features audio.Features
	frame    int64

	// Run state
	runID         uuid.UUID
	score         int64
	combo         int
	comboTimer    float64
	distance      float64
	countdown     float64
	countdownTick int
	shake         float64
	lastHit       collision.Result

	restartHeld bool
	restartEdge bool
	bestScore   int64

	// Cached metric pointers
	statFrames     *atomic.Int64
	statActive     *atomic.Int64
	statPool       *atomic.Int64
	statBeats      *atomic.Int64
	statCollisions *atomic.Int64
	statRuns       *atomic.Int64
	statSpeed      *status.AtomicFloat
	statTopSpeed   *status.AtomicFloat
	statShield     *status.AtomicFloat
	statEnergy     *status.AtomicFloat
	statPhase      *status.AtomicString
	statPattern    *status.AtomicString
}

// New creates a session; call Init before the first Update
func New(cfg Config, opts ...Option) *Session {
	s := &Session{
		cfg:     cfg,
		theme:   cfg.Theme,
		tracker: audio.NewFeatureTracker(),
		probe:   collision.NewProbe(),
		sim:     vehicle.NewSimulator(),
		combo:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = vmath.NewFastRand(uint64(time.Now().UnixNano()))
	}
	if s.statusReg == nil {
		s.statusReg = status.NewRegistry()
	}
	s.gen = track.NewGenerator(cfg.Track, s.lib, s.rng)

	reg := s.statusReg
	s.statFrames = reg.Ints.Get("session.frames")
	s.statActive = reg.Ints.Get("track.active")
	s.statPool = reg.Ints.Get("track.pool")
	s.statBeats = reg.Ints.Get("audio.beats")
	s.statCollisions = reg.Ints.Get("session.collisions")
	s.statRuns = reg.Ints.Get("session.runs")
	s.statSpeed = reg.Floats.Get("vehicle.speed")
	s.statTopSpeed = reg.Floats.Get("vehicle.top_speed")
	s.statShield = reg.Floats.Get("vehicle.shield")
	s.statEnergy = reg.Floats.Get("audio.energy")
	s.statPhase = reg.Strings.Get("session.phase")
	s.statPattern = reg.Strings.Get("track.pattern")

	s.machine = buildMachine()
	return s
}

// Init builds the first track window and starts the countdown
func (s *Session) Init() {
	if s.machine.Started() {
		panic("session: Init called twice")
	}
	s.resetRun()
	if err := s.machine.Init(s, PhaseInit.state()); err != nil {
		panic(fmt.Sprintf("session: %v", err))
	}
	log.Printf("session: initialized run %s, %d segments", s.runID, s.gen.ActiveCount())
	s.emit(event.EventSessionReady, 0)
	s.machine.HandleEvent(s, event.EventSessionReady)
	s.publish()
}

// Update advances the session by dt seconds with one frame of audio bins and input
// Panics before Init or on a negative dt
func (s *Session) Update(dt float64, bins []uint8, in vehicle.Input) {
	if !s.machine.Started() {
		panic("session: Update before Init")
	}
	if dt < 0 || math.IsNaN(dt) {
		panic(fmt.Sprintf("session: invalid frame time %v", dt))
	}
	dt = vmath.Clamp(dt, parameter.FrameDtMin, parameter.FrameDtMax)

	s.frame++
	s.dt = dt
	s.input = in
	s.restartEdge = in.Restart && !s.restartHeld
	s.restartHeld = in.Restart

	s.features = s.tracker.Update(bins, dt*1000)
	if s.features.Beat {
		s.statBeats.Add(1)
	}

	s.machine.Update(s, time.Duration(dt*float64(time.Second)))

	s.shake *= parameter.ShakeDecay
	if s.shake < parameter.ShakeCutoff {
		s.shake = 0
	}
	s.publish()
}

// Restart begins a new run from the countdown, from any phase
func (s *Session) Restart() {
	if !s.machine.Started() {
		panic("session: Restart before Init")
	}
	s.resetRun()
	log.Printf("session: restart, run %s", s.runID)
	s.emit(event.EventRestart, 0)
	s.machine.Transition(s, PhaseCountdown.state())
	s.publish()
}

// SetTheme swaps the look; regenerate rebuilds the track and returns to the countdown
func (s *Session) SetTheme(t theme.Theme, regenerate bool) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.theme = t
	regenerated := regenerate && s.machine.Started()
	if regenerated {
		s.resetTrack()
		s.distance = 0
		s.machine.Transition(s, PhaseCountdown.state())
		s.publish()
	}
	log.Printf("session: theme %q, regenerated %v", t.Name, regenerated)
	v := 0.0
	if regenerated {
		v = 1
	}
	s.emit(event.EventThemeChange, v)
	return nil
}

// resetRun clears every per-run value and rebuilds the track
func (s *Session) resetRun() {
	s.resetTrack()
	s.runID = uuid.New()
	s.score = 0
	s.combo = 1
	s.comboTimer = 0
	s.distance = 0
	s.statRuns.Add(1)
}

func (s *Session) resetTrack() {
	s.sim.Reset()
	s.gen.Reset()
	s.gen.GenerateInitial(s.cfg.Track.WindowSize())
	s.shake = 0
	s.lastHit = collision.Result{}
}

func (s *Session) enterCountdown() {
	s.countdown = parameter.CountdownSeconds
	s.countdownTick = -1
	s.emitCountdownTick()
}

func (s *Session) tickCountdown() {
	s.countdown -= s.dt
	s.emitCountdownTick()
}

// emitCountdownTick fires once per displayed whole second, 0 being "GO"
func (s *Session) emitCountdownTick() {
	n := s.CountdownDisplay()
	if n != s.countdownTick {
		s.countdownTick = n
		s.emit(event.EventCountdownTick, float64(n))
	}
}

func (s *Session) tickPlaying() {
	dt := s.dt

	pos := s.sim.Position()
	hit := s.probe.Check(pos, s.gen.ActiveColliders())
	s.lastHit = hit

	cooldown := s.sim.Vehicle().BoostCooldown
	damage := s.sim.Update(dt, s.input, s.features, hit)
	if v := s.sim.Vehicle(); v.BoostCooldown > cooldown {
		s.emit(event.EventBoostFired, v.Boost)
	}
	if hit.Hit {
		s.combo = 1
		s.comboTimer = 0
		s.shake = math.Max(s.shake, damage*parameter.ShakeDamageGain)
		s.statCollisions.Add(1)
		s.emit(event.EventCollision, damage)
	}

	pos = s.sim.Position()
	s.sim.Follow(s.gen.SegmentAt(pos.Z).CenterX, dt)

	pos = s.sim.Position()
	if s.gen.CollectBoostPad(pos.X, pos.Z) {
		s.sim.ApplyBoost()
		s.addCombo(parameter.ComboBoostPickup)
		s.emit(event.EventBoostPickup, float64(s.combo))
	}

	s.gen.Advance(pos.Z, s.features)

	s.distance += s.sim.Vehicle().Speed * dt
	if score := int64(math.Floor(s.distance * parameter.ScorePerDistance * float64(s.combo))); score > s.score {
		s.score = score
	}

	if s.features.Beat {
		s.addCombo(parameter.ComboBeat)
		s.emit(event.EventBeat, float64(s.combo))
	}

	s.comboTimer -= dt
	if s.comboTimer <= 0 && s.combo > 1 {
		s.combo--
		s.comboTimer = parameter.ComboDecayEvery
	}
}

func (s *Session) addCombo(n int) {
	s.combo += n
	s.comboTimer = parameter.ComboHoldSeconds
}

func (s *Session) enterGameOver() {
	if s.score > s.bestScore {
		s.bestScore = s.score
	}
	log.Printf("session: game over, run %s score %d distance %.1f", s.runID, s.score, s.distance)
	s.emit(event.EventGameOver, float64(s.score))
}

func (s *Session) tickGameOver() {
	if s.restartEdge && s.machine.TimeInState() >= parameter.RestartDebounce {
		s.Restart()
	}
}

func (s *Session) emit(t event.EventType, v float64) {
	if s.events == nil {
		return
	}
	s.events.Push(event.GameEvent{Type: t, Frame: s.frame, Value: v})
}

func (s *Session) publish() {
	v := s.sim.Vehicle()
	s.statFrames.Store(s.frame)
	s.statActive.Store(int64(s.gen.ActiveCount()))
	s.statPool.Store(int64(s.gen.PoolSize()))
	s.statSpeed.Set(v.Speed)
	s.statTopSpeed.Max(v.Speed)
	s.statShield.Set(v.Shield)
	s.statEnergy.Set(s.features.Energy)
	s.statPattern.Store(s.gen.CurrentPattern())
}
