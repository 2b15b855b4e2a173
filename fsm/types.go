package fsm

import (
	"time"

	"github.com/lixenwraith/beatrace/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is a generic hierarchical finite state machine
// T is the context passed to actions and guards (e.g., *session.Session)
type Machine[T any] struct {
	// Graph data, immutable after CompilePaths
	nodes map[StateID]*Node[T]

	initialID StateID

	// Runtime state
	activeID    StateID
	timeInState time.Duration
	activePath  []StateID // Root -> ... -> Leaf
	started     bool
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from Root to this node, precomputed for LCA lookup
	Path []StateID

	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // EventNone = tick transition
	Guard    GuardFunc[T]    // nil = always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T, timeInState time.Duration) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)

// TimeExceeds returns a guard that passes once the state has been active for at least d
func TimeExceeds[T any](d time.Duration) GuardFunc[T] {
	return func(_ T, timeInState time.Duration) bool {
		return timeInState >= d
	}
}
