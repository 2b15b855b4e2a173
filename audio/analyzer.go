package audio

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/lixenwraith/beatrace/parameter"
)

// Analyzer converts a window of mono samples into byte-scaled frequency bins
// Magnitudes are windowed, time-smoothed and mapped from [MinDecibels, MaxDecibels] onto 0..255
type Analyzer struct {
	fft       *fourier.FFT
	size      int
	smoothing float64

	minDB float64
	maxDB float64

	seq    []float64
	coeffs []complex128
	smooth []float64
	bins   []uint8
}

// NewAnalyzer creates an analyzer for the given FFT size, which must be a positive even number
func NewAnalyzer(size int) *Analyzer {
	if size <= 0 || size%2 != 0 {
		panic("audio: analyzer size must be positive and even")
	}
	return &Analyzer{
		fft:       fourier.NewFFT(size),
		size:      size,
		smoothing: parameter.AnalyzerSmoothing,
		minDB:     parameter.AnalyzerMinDecibels,
		maxDB:     parameter.AnalyzerMaxDecibels,
		seq:       make([]float64, size),
		coeffs:    make([]complex128, size/2+1),
		smooth:    make([]float64, size/2),
		bins:      make([]uint8, size/2),
	}
}

// BinCount returns the number of bins produced per frame
func (a *Analyzer) BinCount() int {
	return a.size / 2
}

// Analyze transforms the most recent samples and returns the bins
// Short input is zero padded at the front; the returned slice is reused across calls
func (a *Analyzer) Analyze(samples []float64) []uint8 {
	clear(a.seq)
	if len(samples) > a.size {
		samples = samples[len(samples)-a.size:]
	}
	copy(a.seq[a.size-len(samples):], samples)

	window.Blackman(a.seq)
	a.fft.Coefficients(a.coeffs, a.seq)

	scale := 1.0 / float64(a.size)
	rangeDB := a.maxDB - a.minDB
	for i := range a.smooth {
		mag := cmplx.Abs(a.coeffs[i]) * scale
		a.smooth[i] = a.smoothing*a.smooth[i] + (1-a.smoothing)*mag

		db := a.minDB
		if a.smooth[i] > 0 {
			db = 20 * math.Log10(a.smooth[i])
		}
		v := (db - a.minDB) / rangeDB * 255
		switch {
		case v < 0 || math.IsNaN(v):
			v = 0
		case v > 255:
			v = 255
		}
		a.bins[i] = uint8(v)
	}
	return a.bins
}

// Reset clears the smoothing history
func (a *Analyzer) Reset() {
	clear(a.smooth)
	clear(a.bins)
}
