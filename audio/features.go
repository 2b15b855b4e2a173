package audio

import (
	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/vmath"
)

// Features is the per-frame smoothed view of the music
// All band values are in [0, 1]
type Features struct {
	Bass   float64
	Mid    float64
	Treble float64
	Energy float64

	// Beat is true only on the frame a beat was detected
	Beat bool

	// BeatCooldown is the remaining suppression time in milliseconds
	BeatCooldown float64
}

// SpeedModifier scales the vehicle's speed cap with overall energy
func (f Features) SpeedModifier() float64 {
	return 1 + f.Energy*parameter.AudioSpeedCapMod
}

// ThrustModifier scales acceleration with bass
func (f Features) ThrustModifier() float64 {
	return 1 + f.Bass*parameter.AudioThrustMod
}

// VisualIntensity drives glow and pulse effects in the presentation layer
func (f Features) VisualIntensity() float64 {
	return f.Bass*parameter.VisualBassWeight + f.Energy*parameter.VisualEnergyWeight
}

// FeatureTracker turns raw frequency bins into smoothed band levels and beat pulses
type FeatureTracker struct {
	current     Features
	lastRawBass float64
}

func NewFeatureTracker() *FeatureTracker {
	return &FeatureTracker{}
}

// Update consumes one bin snapshot (0..255 per bin) and the elapsed frame time in milliseconds
// An empty snapshot counts as silence
func (t *FeatureTracker) Update(bins []uint8, dtMillis float64) Features {
	rawBass := bandAverage(bins, parameter.BassBandStart, parameter.BassBandEnd)
	rawMid := bandAverage(bins, parameter.MidBandStart, parameter.MidBandEnd)
	rawTreble := bandAverage(bins, parameter.TrebleBandStart, parameter.TrebleBandEnd)
	rawEnergy := bandAverage(bins, 0, 1)

	c := &t.current
	c.Bass = vmath.Clamp01(vmath.Approach(c.Bass, rawBass, parameter.BassSmoothing))
	c.Mid = vmath.Clamp01(vmath.Approach(c.Mid, rawMid, parameter.MidSmoothing))
	c.Treble = vmath.Clamp01(vmath.Approach(c.Treble, rawTreble, parameter.TrebleSmoothing))
	c.Energy = vmath.Clamp01(vmath.Approach(c.Energy, rawEnergy, parameter.EnergySmoothing))

	c.Beat = false
	if c.BeatCooldown <= 0 &&
		rawBass > parameter.BeatThreshold &&
		rawBass > t.lastRawBass+parameter.BeatRiseMargin {
		c.Beat = true
		c.BeatCooldown = parameter.BeatCooldownMs
	} else if c.BeatCooldown > 0 {
		if vmath.Finite(dtMillis) && dtMillis > 0 {
			c.BeatCooldown -= dtMillis
		}
	}
	t.lastRawBass = rawBass

	return *c
}

// Current returns the last computed features without advancing
func (t *FeatureTracker) Current() Features {
	return t.current
}

func (t *FeatureTracker) Reset() {
	t.current = Features{}
	t.lastRawBass = 0
}

// bandAverage returns the mean of bins in [start, end) fractions of the slice, normalized to [0, 1]
func bandAverage(bins []uint8, start, end float64) float64 {
	n := len(bins)
	if n == 0 {
		return 0
	}
	lo := int(float64(n) * start)
	hi := int(float64(n) * end)
	if hi > n {
		hi = n
	}
	if hi <= lo {
		// Tiny snapshots still sample one bin
		if lo >= n {
			lo = n - 1
		}
		hi = lo + 1
	}

	sum := 0
	for _, b := range bins[lo:hi] {
		sum += int(b)
	}
	return float64(sum) / float64(hi-lo) / 255
}
