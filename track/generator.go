package track

import (
	"math"

	"github.com/lixenwraith/beatrace/audio"
	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/vmath"
)

// Config holds track geometry and window sizes
type Config struct {
	SegmentLength float64
	BaseWidth     float64
	LookAhead     int
	LookBehind    int
}

func DefaultConfig() Config {
	return Config{
		SegmentLength: parameter.TrackSegmentLength,
		BaseWidth:     parameter.TrackBaseWidth,
		LookAhead:     parameter.TrackLookAhead,
		LookBehind:    parameter.TrackLookBehind,
	}
}

// WindowSize is the number of segments produced by initial generation
func (c Config) WindowSize() int {
	return c.LookAhead + c.LookBehind
}

// Info is the track state at a Z coordinate
type Info struct {
	Heading float64
	Bank    float64
	CenterX float64
	CenterZ float64
	Width   float64
	Found   bool
}

// Generator streams segments ahead of the vehicle and retires them behind it
// Not safe for concurrent use; segments are borrowed by callers for the current frame only
type Generator struct {
	cfg   Config
	lib   *Library
	rng   *vmath.FastRand
	arena arena

	active []*Segment

	queue     []SegmentSpec
	queueHead int
	pattern   string

	curvature float64
	heading   float64
	bank      float64
	pathX     float64
	pathZ     float64
	nextIndex int

	initialized bool
	colliders   []Collider
}

// NewGenerator creates an uninitialized generator; call GenerateInitial before Advance
func NewGenerator(cfg Config, lib *Library, rng *vmath.FastRand) *Generator {
	if cfg.SegmentLength <= 0 || cfg.BaseWidth <= 0 || cfg.LookAhead <= 0 || cfg.LookBehind < 0 {
		panic("track: invalid generator config")
	}
	if lib == nil {
		lib = DefaultLibrary()
	}
	if rng == nil {
		rng = vmath.NewFastRand(1)
	}
	g := &Generator{
		cfg:    cfg,
		lib:    lib,
		rng:    rng,
		active: make([]*Segment, 0, cfg.WindowSize()*2),
	}
	g.Reset()
	return g
}

// Reset discards every segment, the pattern queue and the path state
// The generator must be re-initialized with GenerateInitial
func (g *Generator) Reset() {
	g.arena.reset()
	clear(g.active)
	g.active = g.active[:0]
	g.queue = g.queue[:0]
	g.queueHead = 0
	g.pattern = ""
	g.curvature = 0
	g.heading = 0
	g.bank = 0
	g.pathX = 0
	g.pathZ = -float64(g.cfg.LookBehind) * g.cfg.SegmentLength
	g.nextIndex = 0
	g.initialized = false
	g.colliders = g.colliders[:0]
}

// GenerateInitial fills the window with n straight segments starting behind the origin
func (g *Generator) GenerateInitial(n int) {
	if n < 0 {
		panic("track: negative initial segment count")
	}
	straight := g.lib.Pattern(PatternStraight)
	if straight != nil {
		for i := 0; i < parameter.InitialStraightPatterns || g.pending() < n; i++ {
			g.queuePattern(straight, false)
		}
	}

	silent := audio.Features{}
	for i := 0; i < n; i++ {
		g.generateNext(silent)
	}
	g.initialized = true
}

// Advance retires segments behind the vehicle and generates until the look-ahead is covered
func (g *Generator) Advance(vehicleZ float64, f audio.Features) {
	if !g.initialized {
		panic("track: Advance before GenerateInitial")
	}
	if !vmath.Finite(vehicleZ) {
		return
	}

	g.retire(vehicleZ)
	ahead := vehicleZ + float64(g.cfg.LookAhead)*g.cfg.SegmentLength
	for g.pathZ < ahead {
		g.generateNext(f)
	}
	g.retire(vehicleZ)
}

func (g *Generator) retire(vehicleZ float64) {
	behind := vehicleZ - float64(g.cfg.LookBehind)*g.cfg.SegmentLength
	n := 0
	for n < len(g.active) && g.active[n].Z < behind {
		g.arena.release(g.active[n])
		n++
	}
	if n == 0 {
		return
	}
	copy(g.active, g.active[n:])
	clear(g.active[len(g.active)-n:])
	g.active = g.active[:len(g.active)-n]
}

func (g *Generator) pending() int {
	return len(g.queue) - g.queueHead
}

func (g *Generator) queuePattern(p *Pattern, mirror bool) {
	if g.queueHead == len(g.queue) {
		g.queue = g.queue[:0]
		g.queueHead = 0
	}
	for _, spec := range p.Segments {
		if mirror {
			spec = spec.Mirrored()
		}
		g.queue = append(g.queue, spec)
	}
	g.pattern = p.Name
}

func (g *Generator) nextSpec(f audio.Features) SegmentSpec {
	if g.pending() == 0 {
		pool := g.lib.Pool(SelectTrigger(f))
		p := pool[g.rng.Intn(len(pool))]
		g.queuePattern(p, g.rng.Float64() < parameter.PatternMirrorChance)
	}
	spec := g.queue[g.queueHead]
	g.queueHead++
	return spec
}

func (g *Generator) generateNext(f audio.Features) *Segment {
	spec := g.nextSpec(f)

	g.curvature = vmath.Approach(g.curvature, curveTarget(spec.Curve, g.heading), parameter.TrackCurvatureLerp)
	g.heading = vmath.Clamp(g.heading+g.curvature*parameter.TrackHeadingRate,
		-parameter.TrackMaxHeading, parameter.TrackMaxHeading)
	g.bank = vmath.Approach(g.bank, -g.curvature*parameter.TrackBankRate, parameter.TrackBankLerp)

	energy := f.Energy
	if !vmath.Finite(energy) {
		energy = 0
	}
	energy = vmath.Clamp01(energy)

	s := g.arena.acquire()
	s.Index = g.nextIndex
	s.Pattern = g.pattern
	s.X = g.pathX
	s.Z = g.pathZ
	s.Heading = g.heading
	s.Bank = g.bank
	s.Curvature = g.curvature
	s.Width = g.cfg.BaseWidth * spec.Width * (1 - energy*parameter.TrackEnergyNarrowing)
	s.build(spec, g.cfg.SegmentLength)

	g.pathX = s.EndX
	g.pathZ = s.EndZ
	g.nextIndex++
	g.active = append(g.active, s)
	return s
}

// curveTarget is the pattern curvature, biased back toward straight only once
// the heading passes the soft limit so in-band patterns keep their shape
func curveTarget(curve, heading float64) float64 {
	over := math.Abs(heading) - parameter.TrackHeadingSoftLimit
	if over <= 0 {
		return curve
	}
	return curve - math.Copysign(over, heading)*parameter.TrackHeadingRestore
}

// ActiveColliders returns every collider of the active window
// The slice is reused and valid until the next call
func (g *Generator) ActiveColliders() []Collider {
	g.colliders = g.colliders[:0]
	for _, s := range g.active {
		g.colliders = append(g.colliders, s.Colliders()...)
	}
	return g.colliders
}

// Segments returns the active window ordered by Index
// The slice is owned by the generator
func (g *Generator) Segments() []*Segment {
	return g.active
}

// SegmentAt returns track heading, bank and centerline at z
// Outside the active window it reports a straight track at x=0
func (g *Generator) SegmentAt(z float64) Info {
	for _, s := range g.active {
		if z < s.Z || z >= s.EndZ {
			continue
		}
		t := 0.0
		if span := s.EndZ - s.Z; span > 0 {
			t = (z - s.Z) / span
		}
		return Info{
			Heading: s.Heading,
			Bank:    s.Bank,
			CenterX: vmath.Lerp(s.X, s.EndX, t),
			CenterZ: vmath.Lerp(s.Z, s.EndZ, t),
			Width:   s.Width,
			Found:   true,
		}
	}
	return Info{CenterZ: z, Width: g.cfg.BaseWidth}
}

// CollectBoostPad consumes the first boost pad under (x, z)
func (g *Generator) CollectBoostPad(x, z float64) bool {
	for _, s := range g.active {
		if !s.HasBoost {
			continue
		}
		lx, lz := s.Boost.ToLocal(x, z)
		if math.Abs(lx) < s.Boost.HalfW && math.Abs(lz) < s.Boost.HalfL {
			s.HasBoost = false
			return true
		}
	}
	return false
}

// Config returns the generator's geometry
func (g *Generator) Config() Config {
	return g.cfg
}

// CurrentPattern is the name of the pattern most recently queued
func (g *Generator) CurrentPattern() string {
	return g.pattern
}

// PathEnd is the point where the next segment will be anchored
func (g *Generator) PathEnd() (x, z float64) {
	return g.pathX, g.pathZ
}

// PoolSize is the number of segments ever allocated
func (g *Generator) PoolSize() int {
	return g.arena.size()
}

// ActiveCount is the number of segments in the window
func (g *Generator) ActiveCount() int {
	return len(g.active)
}

// Initialized reports whether GenerateInitial has run since the last Reset
func (g *Generator) Initialized() bool {
	return g.initialized
}
