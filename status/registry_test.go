package status

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMapCachesPointers(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("frames")
	b := r.Ints.Get("frames")
	assert.Same(t, a, b)
	assert.True(t, r.Ints.Has("frames"))
	assert.False(t, r.Ints.Has("missing"))
}

func TestRegistryLines(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("track.active").Store(23)
	r.Ints.Get("frames").Store(100)
	r.Floats.Get("speed").Set(1.666)
	r.Bools.Get("audio").Store(true)
	r.Strings.Get("pattern").Store("a-very-long-pattern-name-over-limit")

	assert.Equal(t, []string{
		"frames: 100",
		"track.active: 23",
		"speed: 1.67",
		"audio: true",
		"pattern: a-very-long-pattern-name",
	}, r.Lines())
	assert.Equal(t, 5, r.TotalCount())
}

func TestAtomicStringCutsOnRuneBoundary(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store(strings.Repeat("a", MaxStringLen-1) + "é")
	assert.Equal(t, strings.Repeat("a", MaxStringLen-1), s.Load())
}

func TestAtomicFloatConcurrentMax(t *testing.T) {
	var f AtomicFloat
	f.Set(-1)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Max(float64(base*1000 + j))
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 7999.0, f.Get())
	assert.Equal(t, 7999.0, f.Max(3))
}
