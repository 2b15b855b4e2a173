package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/beatrace/event"
)

// NewMachine creates an empty FSM
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:      make(map[StateID]*Node[T]),
		activePath: make([]StateID, 0, 4),
	}
}

// Init enters the initial state, running OnEnter from Root down to it
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}
	if node.Path == nil {
		return fmt.Errorf("state %q has no compiled path", node.Name)
	}

	m.initialID = initialID
	m.activeID = initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)
	m.started = true

	for _, id := range m.activePath {
		for _, action := range m.nodes[id].OnEnter {
			action(ctx)
		}
	}
	return nil
}

// Started reports whether Init has run
func (m *Machine[T]) Started() bool {
	return m.started
}

// Update advances time, runs OnUpdate for the active leaf and evaluates tick transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if !m.started || m.activeID == StateNone {
		return
	}

	m.timeInState += dt
	startID := m.activeID

	leaf := m.nodes[m.activeID]
	for _, action := range leaf.OnUpdate {
		action(ctx)
	}

	// An action may have forced a transition already
	if m.activeID != startID {
		return
	}

	// Tick transitions, bubbling up from the leaf
	currID := m.activeID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event == event.EventNone {
				if trans.Guard == nil || trans.Guard(ctx, m.timeInState) {
					m.transition(ctx, trans.TargetID)
					return
				}
			}
		}
		currID = node.ParentID
	}
}

// HandleEvent routes an event from the leaf up to the root
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if !m.started || m.activeID == StateNone || eventType == event.EventNone {
		return false
	}

	currID := m.activeID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event == eventType {
				if trans.Guard == nil || trans.Guard(ctx, m.timeInState) {
					m.transition(ctx, trans.TargetID)
					return true
				}
			}
		}
		currID = node.ParentID
	}
	return false
}

// Transition forces a change to targetID, re-entering the state when it is already active
func (m *Machine[T]) Transition(ctx T, targetID StateID) {
	if !m.started {
		panic("FSM: Transition before Init")
	}
	if m.activeID == targetID {
		node := m.nodes[targetID]
		for _, action := range node.OnExit {
			action(ctx)
		}
		for _, action := range node.OnEnter {
			action(ctx)
		}
		m.timeInState = 0
		return
	}
	m.transition(ctx, targetID)
}

// transition exits up to the lowest common ancestor and enters down to the target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path

	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit: current leaf up to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		for _, action := range m.nodes[currentPath[i]].OnExit {
			action(ctx)
		}
	}

	// Enter: LCA (exclusive) down to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, action := range m.nodes[targetPath[i]].OnEnter {
			action(ctx)
		}
	}

	m.activeID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)
}

// Reset exits every active state and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	if m.started {
		for i := len(m.activePath) - 1; i >= 0; i-- {
			for _, action := range m.nodes[m.activePath[i]].OnExit {
				action(ctx)
			}
		}
	}
	m.started = false
	return m.Init(ctx, m.initialID)
}

// State returns the active StateID
func (m *Machine[T]) State() StateID {
	return m.activeID
}

// StateName returns the active state's name
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns how long the active state has been active
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}
