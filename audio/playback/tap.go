package playback

import (
	"sync"

	"github.com/gopxl/beep"
)

// Tap passes audio through unchanged while keeping the most recent mono samples in a ring buffer
// It runs on the speaker goroutine; readers on the game goroutine take the lock briefly
type Tap struct {
	s   beep.Streamer
	mu  sync.Mutex
	buf []float64
	pos int
}

func NewTap(s beep.Streamer, size int) *Tap {
	if size <= 0 {
		panic("audio: tap size must be positive")
	}
	return &Tap{
		s:   s,
		buf: make([]float64, size),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.s.Stream(samples)
	t.mu.Lock()
	for i := 0; i < n; i++ {
		t.buf[t.pos] = (samples[i][0] + samples[i][1]) / 2
		t.pos++
		if t.pos == len(t.buf) {
			t.pos = 0
		}
	}
	t.mu.Unlock()
	return n, ok
}

func (t *Tap) Err() error {
	return t.s.Err()
}

// Snapshot fills dst with the latest len(dst) samples in chronological order and returns it
func (t *Tap) Snapshot(dst []float64) []float64 {
	n := len(dst)
	if n > len(t.buf) {
		n = len(t.buf)
		dst = dst[:n]
	}

	t.mu.Lock()
	idx := t.pos - n
	if idx < 0 {
		idx += len(t.buf)
	}
	for i := 0; i < n; i++ {
		dst[i] = t.buf[idx]
		idx++
		if idx == len(t.buf) {
			idx = 0
		}
	}
	t.mu.Unlock()
	return dst
}
