package playback

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/vmath"
)

// synthSection shapes the loop so the track sees shifting band balance
type synthSection struct {
	kick, hat, bass, lead float64
}

// Eight-bar sections cycling intro, build, drop, break
var synthSections = [...]synthSection{
	{kick: 0.0, hat: 0.2, bass: 0.0, lead: 0.6},
	{kick: 0.7, hat: 0.4, bass: 0.3, lead: 0.2},
	{kick: 1.0, hat: 0.5, bass: 0.8, lead: 0.3},
	{kick: 0.0, hat: 0.9, bass: 0.0, lead: 0.9},
}

const synthBarsPerSection = 8

// BeatSynth is an endless generated dance loop used when no music file is given
type BeatSynth struct {
	sr        beep.SampleRate
	pos       int
	beatLen   int
	kickLen   int
	hatLen    int
	leadPhase float64
	bassPhase float64
	rng       *vmath.FastRand
}

// NewBeatSynth creates a synth at the given tempo
func NewBeatSynth(sr beep.SampleRate, bpm float64) *BeatSynth {
	if bpm <= 0 {
		bpm = parameter.SynthBPM
	}
	return &BeatSynth{
		sr:      sr,
		beatLen: int(float64(sr) * 60 / bpm),
		kickLen: sr.N(parameter.SynthKickDuration),
		hatLen:  sr.N(parameter.SynthHatDuration),
		rng:     vmath.NewFastRand(uint64(time.Now().UnixNano())),
	}
}

// Section returns the index of the section currently playing
func (g *BeatSynth) Section() int {
	bar := g.pos / (g.beatLen * 4)
	return (bar / synthBarsPerSection) % len(synthSections)
}

func (g *BeatSynth) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		sec := synthSections[g.Section()]
		beatPos := g.pos % g.beatLen
		t := float64(beatPos) / float64(g.sr)

		kick := 0.0
		if beatPos < g.kickLen {
			env := 1.0 - float64(beatPos)/float64(g.kickLen)
			freq := parameter.SynthKickFrequency * (1 + 2*env)
			kick = env * math.Sin(2*math.Pi*freq*t)
		}

		hat := 0.0
		offBeat := (g.pos + g.beatLen/2) % g.beatLen
		if offBeat < g.hatLen {
			env := 1.0 - float64(offBeat)/float64(g.hatLen)
			hat = env * (g.rng.Float64()*2 - 1)
		}

		g.bassPhase += parameter.SynthPadFrequency / 2 / float64(g.sr)
		g.bassPhase -= math.Floor(g.bassPhase)
		bass := 2.0*g.bassPhase - 1

		g.leadPhase += parameter.SynthLeadFrequency / float64(g.sr)
		g.leadPhase -= math.Floor(g.leadPhase)
		lead := math.Sin(2 * math.Pi * g.leadPhase)

		sample := 0.5*sec.kick*kick +
			0.2*sec.hat*hat +
			parameter.SynthPadVolume*sec.bass*bass +
			0.1*sec.lead*lead

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BeatSynth) Err() error {
	return nil
}
