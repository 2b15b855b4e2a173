package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzerSilence(t *testing.T) {
	a := NewAnalyzer(512)
	bins := a.Analyze(make([]float64, 512))
	require.Len(t, bins, 256)
	for i, b := range bins {
		if b != 0 {
			t.Fatalf("Expected silent bin %d to be 0, got %d", i, b)
		}
	}
}

func TestAnalyzerPeakAtToneFrequency(t *testing.T) {
	const size = 512
	const bin = 20
	a := NewAnalyzer(size)

	samples := make([]float64, size)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * bin * float64(i) / size)
	}

	var bins []uint8
	for i := 0; i < 10; i++ {
		bins = a.Analyze(samples)
	}

	peak := 0
	for i, b := range bins {
		if b > bins[peak] {
			peak = i
		}
	}
	assert.InDelta(t, bin, peak, 1)
	assert.Less(t, int(bins[200]), 128)
}

func TestAnalyzerShortInput(t *testing.T) {
	a := NewAnalyzer(64)
	bins := a.Analyze([]float64{1, -1, 1})
	assert.Len(t, bins, 32)
	assert.Equal(t, 32, a.BinCount())

	a.Reset()
	for _, b := range a.Analyze(nil) {
		assert.Zero(t, b)
	}
}

func TestAnalyzerRejectsOddSize(t *testing.T) {
	assert.Panics(t, func() { NewAnalyzer(15) })
}
