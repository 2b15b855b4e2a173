package playback

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/beatrace/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave, optionally sweeping frequency linearly
type oscillator struct {
	freq     float64
	freqEnd  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a constant-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to freqEnd over its duration
func NewSweep(freq, freqEnd float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		freqEnd:  freqEnd,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      vmath.NewFastRand(uint64(time.Now().UnixNano())),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := vmath.Lerp(o.freq, o.freqEnd, progress)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/sustain/release gain curve
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		samples[i][0] *= e.gain()
		samples[i][1] *= e.gain()
		e.position++
	}

	return n, ok
}

func (e *envelope) gain() float64 {
	vol := 1.0
	if e.position < e.attackSamples && e.attackSamples > 0 {
		vol = float64(e.position) / float64(e.attackSamples)
	}
	releaseStart := e.attackSamples + e.sustainSamples
	if e.position >= releaseStart && e.releaseSamples > 0 {
		vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		if vol < 0 {
			vol = 0
		}
	}
	return vol
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linear gain, zero and below is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateEffect builds a fresh one-shot streamer for the effect
// Unknown effects yield nil
func CreateEffect(e Effect, rate beep.SampleRate) beep.Streamer {
	switch e {
	case EffectBeat:
		d := 40 * time.Millisecond
		osc := NewOscillator(1320, d, WaveSine, rate)
		return newVolume(NewEnvelope(osc, d, 2*time.Millisecond, 30*time.Millisecond, rate), 0.15)

	case EffectBoost:
		d := 350 * time.Millisecond
		osc := NewSweep(220, 880, d, WaveSaw, rate)
		return newVolume(NewEnvelope(osc, d, 20*time.Millisecond, 150*time.Millisecond, rate), 0.25)

	case EffectCollision:
		d := 200 * time.Millisecond
		noise := NewOscillator(0, d, WaveNoise, rate)
		thud := NewSweep(120, 40, d, WaveSine, rate)
		mixed := beep.Mix(newVolume(noise, 0.4), newVolume(thud, 0.8))
		return newVolume(NewEnvelope(mixed, d, 2*time.Millisecond, 180*time.Millisecond, rate), 0.5)

	case EffectGameOver:
		d := 900 * time.Millisecond
		osc := NewSweep(440, 55, d, WaveSquare, rate)
		return newVolume(NewEnvelope(osc, d, 10*time.Millisecond, 600*time.Millisecond, rate), 0.2)

	case EffectCountdown:
		d := 90 * time.Millisecond
		osc := NewOscillator(660, d, WaveSquare, rate)
		return newVolume(NewEnvelope(osc, d, 5*time.Millisecond, 40*time.Millisecond, rate), 0.2)
	}
	return nil
}
