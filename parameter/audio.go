package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Band Ranges, as fractions of the bin count (half-open)
const (
	BassBandStart   = 0.0
	BassBandEnd     = 0.08
	MidBandStart    = 0.12
	MidBandEnd      = 0.45
	TrebleBandStart = 0.55
	TrebleBandEnd   = 0.92
)

// Band Smoothing, value += (raw - value) * k per frame
const (
	BassSmoothing   = 0.18
	MidSmoothing    = 0.12
	TrebleSmoothing = 0.10
	EnergySmoothing = 0.08
)

// Beat Detection
const (
	// BeatThreshold is the raw bass level a beat must exceed
	BeatThreshold = 0.55

	// BeatRiseMargin is the minimum rise over the previous frame's raw bass
	BeatRiseMargin = 0.12

	// BeatCooldownMs suppresses further beats after one fires
	BeatCooldownMs = 180.0
)

// Derived Modifiers
const (
	AudioSpeedCapMod   = 1.0
	AudioThrustMod     = 1.2
	VisualBassWeight   = 0.7
	VisualEnergyWeight = 0.3
)

// Spectrum Analyzer, modelled on a browser analyser node
const (
	// AnalyzerWindowSize is the FFT size, producing half as many bins
	AnalyzerWindowSize = 512
	AnalyzerBinCount   = AnalyzerWindowSize / 2

	AnalyzerMinDecibels = -100.0
	AnalyzerMaxDecibels = -30.0

	// AnalyzerSmoothing is the time constant blending successive magnitude frames
	AnalyzerSmoothing = 0.8
)

// Tap Ring Buffer
const (
	// TapBufferSize holds mono samples, must be >= AnalyzerWindowSize
	TapBufferSize = 4096
)

// Demo Beat Synth
const (
	SynthBPM           = 124
	SynthKickFrequency = 55.0
	SynthKickDuration  = 120 * time.Millisecond
	SynthLeadFrequency = 1750.0
	SynthHatDuration   = 30 * time.Millisecond
	SynthPadFrequency  = 220.0
	SynthPadVolume     = 0.15
	SynthMasterVolume  = -0.5
)
