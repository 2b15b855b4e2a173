package event

import (
	"sync/atomic"

	"github.com/lixenwraith/beatrace/parameter"
)

type slot struct {
	ev    GameEvent
	ready atomic.Bool // set after ev is written, cleared by the consumer
}

// EventQueue is a fixed ring of session events
// Any goroutine may Push; a single goroutine drains
// When the ring is full the oldest unread event is overwritten and counted in Dropped
type EventQueue struct {
	slots   [parameter.EventQueueSize]slot
	head    atomic.Uint64
	tail    atomic.Uint64
	dropped atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends ev
func (eq *EventQueue) Push(ev GameEvent) {
	pos := eq.tail.Add(1) - 1
	s := &eq.slots[pos&parameter.EventQueueMask]
	s.ev = ev
	s.ready.Store(true)

	for {
		head := eq.head.Load()
		if pos+1-head <= parameter.EventQueueSize {
			return
		}
		if eq.head.CompareAndSwap(head, pos+1-parameter.EventQueueSize) {
			eq.dropped.Add(pos + 1 - parameter.EventQueueSize - head)
			return
		}
	}
}

// Drain calls fn for each pending event in push order and returns the count
// Stops early at a slot whose writer has not finished; that event is delivered next time
func (eq *EventQueue) Drain(fn func(GameEvent)) int {
	n := 0
	for {
		head := eq.head.Load()
		if head == eq.tail.Load() {
			return n
		}
		s := &eq.slots[head&parameter.EventQueueMask]
		if !s.ready.Load() {
			return n
		}
		ev := s.ev
		if !eq.head.CompareAndSwap(head, head+1) {
			// A producer lapped the ring and moved head, re-read
			continue
		}
		s.ready.Store(false)
		fn(ev)
		n++
	}
}

// Consume returns pending events, nil when there are none
func (eq *EventQueue) Consume() []GameEvent {
	out := eq.ConsumeInto(nil)
	if len(out) == 0 {
		return nil
	}
	return out
}

// ConsumeInto appends pending events to dst[:0] so callers can reuse one buffer
func (eq *EventQueue) ConsumeInto(dst []GameEvent) []GameEvent {
	dst = dst[:0]
	eq.Drain(func(ev GameEvent) { dst = append(dst, ev) })
	return dst
}

// Len is the pending count, approximate while producers are active
func (eq *EventQueue) Len() int {
	head, tail := eq.head.Load(), eq.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

// Dropped is the number of events overwritten before they were drained
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
