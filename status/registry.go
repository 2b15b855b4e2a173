package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Registry is the central metrics facade
// The session caches pointers at construction; per-frame code writes atomics directly
// and the overlay reads them from the render side
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Lines formats every metric as "key: value", grouped by type and sorted by key within a type
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	for k, v := range r.Ints.All() {
		lines = append(lines, k+": "+strconv.FormatInt(v.Load(), 10))
	}
	for k, v := range r.Floats.All() {
		lines = append(lines, fmt.Sprintf("%s: %.2f", k, v.Get()))
	}
	for k, v := range r.Bools.All() {
		lines = append(lines, k+": "+strconv.FormatBool(v.Load()))
	}
	for k, v := range r.Strings.All() {
		lines = append(lines, k+": "+v.Load())
	}
	return lines
}
