package playback

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/beatrace/parameter"
)

// Player owns the speaker: one music stream routed through a Tap plus a mixer of one-shot effects
// All methods are safe to call when the speaker failed to initialize; they become no-ops
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	music       *beep.Ctrl
	tap         *Tap
	closer      func() error
	initialized bool
}

func NewPlayer() *Player {
	return &Player{
		rate:  beep.SampleRate(parameter.AudioSampleRate),
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the music stream, resampled to the output rate when needed
// closer, if non-nil, is called on Cleanup to release the music source
func (p *Player) Initialize(music beep.Streamer, musicRate beep.SampleRate, closer func() error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoAudio, err)
	}

	if musicRate != p.rate {
		music = beep.Resample(4, musicRate, p.rate, music)
	}
	master := &effects.Volume{Streamer: music, Base: 2, Volume: parameter.SynthMasterVolume}
	p.tap = NewTap(master, parameter.TapBufferSize)
	p.music = &beep.Ctrl{Streamer: p.tap}
	p.closer = closer

	p.mixer.Add(p.music)
	speaker.Play(p.mixer)
	p.initialized = true
	log.Printf("audio: speaker initialized at %d Hz", p.rate)
	return nil
}

// Tap returns the capture point feeding the analyzer, nil before Initialize
func (p *Player) Tap() *Tap {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tap
}

// Rate returns the output sample rate
func (p *Player) Rate() beep.SampleRate {
	return p.rate
}

// PlayEffect queues a one-shot effect over the music
func (p *Player) PlayEffect(e Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := CreateEffect(e, p.rate)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// SetPaused pauses or resumes the music
func (p *Player) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.music.Paused = paused
	speaker.Unlock()
}

// Cleanup stops all sound and releases the music source
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.music.Paused = true
	p.mixer.Clear()
	speaker.Unlock()

	if p.closer != nil {
		if err := p.closer(); err != nil {
			log.Printf("audio: close music source: %v", err)
		}
		p.closer = nil
	}
	p.initialized = false
}

// OpenWAV decodes a WAV file into a looping stream
// The returned close function releases the underlying file
func OpenWAV(path string) (beep.Streamer, beep.Format, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, fmt.Errorf("open music %q: %w", path, err)
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("decode music %q: %w", path, err)
	}
	return beep.Loop(-1, s), format, s.Close, nil
}
