package track

// Side is the lateral placement of an obstacle within a segment
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideCenter
	SideRight
)

// Offset returns the lateral sign: -1 left, 0 center or none, +1 right
func (s Side) Offset() float64 {
	switch s {
	case SideLeft:
		return -1
	case SideRight:
		return 1
	default:
		return 0
	}
}

// Mirror swaps left and right, center and none are unchanged
func (s Side) Mirror() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return s
	}
}

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideCenter:
		return "center"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Trigger is the audio characteristic that makes a pattern eligible
type Trigger int

const (
	TriggerRandom Trigger = iota
	TriggerBass
	TriggerMid
	TriggerTreble
	TriggerEnergy
	TriggerBeat
	triggerCount
)

func (t Trigger) String() string {
	switch t {
	case TriggerBass:
		return "bass"
	case TriggerMid:
		return "mid"
	case TriggerTreble:
		return "treble"
	case TriggerEnergy:
		return "energy"
	case TriggerBeat:
		return "beat"
	default:
		return "random"
	}
}

// SegmentSpec describes one segment of a pattern
// Curve is a target curvature; positive turns right
type SegmentSpec struct {
	Curve    float64
	Width    float64
	Obstacle Side
	Boost    bool
}

// Mirrored returns the spec reflected left to right
func (s SegmentSpec) Mirrored() SegmentSpec {
	s.Curve = -s.Curve
	s.Obstacle = s.Obstacle.Mirror()
	return s
}

// Pattern is an immutable named template of segments
type Pattern struct {
	Name     string
	Trigger  Trigger
	Segments []SegmentSpec
}

// Pattern names
const (
	PatternStraight = "straight"
	PatternSCurve   = "sCurve"
	PatternChicane  = "chicane"
	PatternSweeper  = "sweeper"
	PatternHairpin  = "hairpin"
	PatternGauntlet = "gauntlet"
	PatternSlalom   = "slalom"
	PatternBoostRun = "boostRun"
	PatternWave     = "wave"
	PatternFunnel   = "funnel"
)

// Library holds patterns by name and the pool of names eligible per trigger
type Library struct {
	patterns map[string]*Pattern
	pools    [triggerCount][]*Pattern
}

// Pattern returns the named pattern or nil
func (l *Library) Pattern(name string) *Pattern {
	return l.patterns[name]
}

// Pool returns the patterns eligible for a trigger, falling back to the random pool
func (l *Library) Pool(t Trigger) []*Pattern {
	if t < 0 || t >= triggerCount || len(l.pools[t]) == 0 {
		return l.pools[TriggerRandom]
	}
	return l.pools[t]
}

// NewLibrary builds a library from patterns and per-trigger pools of pattern names
// Unknown names in a pool panic, as the library is static data
func NewLibrary(patterns []Pattern, pools map[Trigger][]string) *Library {
	l := &Library{patterns: make(map[string]*Pattern, len(patterns))}
	for i := range patterns {
		p := patterns[i]
		l.patterns[p.Name] = &p
	}
	for trig, names := range pools {
		for _, name := range names {
			p, ok := l.patterns[name]
			if !ok {
				panic("track: pool " + trig.String() + " references unknown pattern " + name)
			}
			l.pools[trig] = append(l.pools[trig], p)
		}
	}
	if len(l.pools[TriggerRandom]) == 0 {
		panic("track: library needs a random pool")
	}
	return l
}

// DefaultLibrary returns the ten built-in patterns
func DefaultLibrary() *Library {
	return NewLibrary(defaultPatterns, defaultPools)
}

var defaultPools = map[Trigger][]string{
	TriggerBass:   {PatternStraight, PatternBoostRun, PatternSweeper},
	TriggerMid:    {PatternSCurve, PatternWave, PatternSlalom},
	TriggerTreble: {PatternChicane, PatternFunnel, PatternGauntlet},
	TriggerEnergy: {PatternSweeper, PatternGauntlet, PatternHairpin},
	TriggerBeat:   {PatternHairpin, PatternChicane},
	TriggerRandom: {PatternStraight, PatternSCurve, PatternChicane, PatternSweeper, PatternWave, PatternSlalom},
}

var defaultPatterns = []Pattern{
	{
		Name:    PatternStraight,
		Trigger: TriggerBass,
		Segments: []SegmentSpec{
			{Curve: 0, Width: 1.0, Boost: true},
			{Curve: 0, Width: 1.0},
			{Curve: 0, Width: 1.0},
			{Curve: 0, Width: 1.0, Boost: true},
			{Curve: 0, Width: 1.0},
			{Curve: 0, Width: 1.0},
		},
	},
	{
		Name:    PatternSCurve,
		Trigger: TriggerMid,
		Segments: []SegmentSpec{
			{Curve: 1.5, Width: 1.0},
			{Curve: 2.0, Width: 1.0},
			{Curve: 1.5, Width: 1.0},
			{Curve: 0, Width: 1.0},
			{Curve: -1.5, Width: 1.0},
			{Curve: -2.0, Width: 1.0},
			{Curve: -1.5, Width: 1.0},
			{Curve: 0, Width: 1.0},
		},
	},
	{
		Name:    PatternChicane,
		Trigger: TriggerTreble,
		Segments: []SegmentSpec{
			{Curve: 0, Width: 0.9},
			{Curve: 2.5, Width: 0.85, Obstacle: SideLeft},
			{Curve: -5.0, Width: 0.85, Obstacle: SideRight},
			{Curve: 2.5, Width: 0.85, Obstacle: SideLeft},
			{Curve: 0, Width: 0.9},
		},
	},
	{
		Name:    PatternSweeper,
		Trigger: TriggerEnergy,
		Segments: []SegmentSpec{
			{Curve: 1.0, Width: 1.1},
			{Curve: 1.2, Width: 1.1},
			{Curve: 1.4, Width: 1.0, Boost: true},
			{Curve: 1.4, Width: 1.0},
			{Curve: 1.2, Width: 1.0},
			{Curve: 1.0, Width: 1.1},
			{Curve: 0.5, Width: 1.1},
		},
	},
	{
		Name:    PatternHairpin,
		Trigger: TriggerBeat,
		Segments: []SegmentSpec{
			{Curve: 0, Width: 1.0},
			{Curve: 2.0, Width: 0.9},
			{Curve: 3.5, Width: 0.8},
			{Curve: 4.0, Width: 0.75},
			{Curve: 3.5, Width: 0.8},
			{Curve: 2.0, Width: 0.9},
			{Curve: 0, Width: 1.0, Boost: true},
		},
	},
	{
		Name:    PatternGauntlet,
		Trigger: TriggerEnergy,
		Segments: []SegmentSpec{
			{Curve: 0, Width: 0.7, Obstacle: SideLeft},
			{Curve: 0, Width: 0.7, Obstacle: SideRight},
			{Curve: 0.5, Width: 0.7, Obstacle: SideLeft},
			{Curve: 0, Width: 0.7, Obstacle: SideRight},
			{Curve: -0.5, Width: 0.7, Obstacle: SideLeft},
			{Curve: 0, Width: 0.8, Boost: true},
		},
	},
	{
		Name:    PatternSlalom,
		Trigger: TriggerMid,
		Segments: []SegmentSpec{
			{Curve: 1.0, Width: 1.0, Obstacle: SideCenter},
			{Curve: -1.0, Width: 1.0},
			{Curve: -1.0, Width: 1.0, Obstacle: SideCenter},
			{Curve: 1.0, Width: 1.0},
			{Curve: 1.0, Width: 1.0, Obstacle: SideCenter},
			{Curve: -1.0, Width: 1.0},
			{Curve: 0, Width: 1.0, Boost: true},
		},
	},
	{
		Name:    PatternBoostRun,
		Trigger: TriggerBass,
		Segments: []SegmentSpec{
			{Curve: 0, Width: 0.9, Boost: true},
			{Curve: 0, Width: 0.85, Boost: true},
			{Curve: 0, Width: 0.8, Boost: true},
			{Curve: 0, Width: 0.85},
			{Curve: 0, Width: 0.9},
		},
	},
	{
		Name:    PatternWave,
		Trigger: TriggerMid,
		Segments: []SegmentSpec{
			{Curve: 1.5, Width: 1.0},
			{Curve: 0, Width: 1.0},
			{Curve: -1.5, Width: 1.0},
			{Curve: 0, Width: 1.0},
			{Curve: 1.5, Width: 1.0},
			{Curve: 0, Width: 1.0},
			{Curve: -1.5, Width: 1.0},
			{Curve: 0, Width: 1.0, Boost: true},
		},
	},
	{
		Name:    PatternFunnel,
		Trigger: TriggerTreble,
		Segments: []SegmentSpec{
			{Curve: 0, Width: 1.3},
			{Curve: 0.3, Width: 1.1},
			{Curve: 0.3, Width: 0.9, Obstacle: SideLeft},
			{Curve: 0, Width: 0.7},
			{Curve: -0.3, Width: 0.9, Obstacle: SideRight},
			{Curve: -0.3, Width: 1.1},
			{Curve: 0, Width: 1.3, Boost: true},
		},
	},
}
