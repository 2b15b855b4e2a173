package view

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/beatrace/vehicle"
)

// Action is a mapped key press
type Action int

const (
	ActionNone Action = iota
	ActionSteerLeft
	ActionSteerRight
	ActionBoost
	ActionBrake
	ActionDrift
	ActionRestart
	ActionQuit
	ActionToggleStatus
	ActionCycleTheme
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionSteerLeft:
		return "SteerLeft"
	case ActionSteerRight:
		return "SteerRight"
	case ActionBoost:
		return "Boost"
	case ActionBrake:
		return "Brake"
	case ActionDrift:
		return "Drift"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionToggleStatus:
		return "ToggleStatus"
	case ActionCycleTheme:
		return "CycleTheme"
	default:
		return "None"
	}
}

var keyActions = map[tcell.Key]Action{
	tcell.KeyLeft:   ActionSteerLeft,
	tcell.KeyRight:  ActionSteerRight,
	tcell.KeyUp:     ActionBoost,
	tcell.KeyDown:   ActionBrake,
	tcell.KeyEscape: ActionQuit,
	tcell.KeyCtrlC:  ActionQuit,
	tcell.KeyF1:     ActionToggleStatus,
}

var runeActions = map[rune]Action{
	'a': ActionSteerLeft,
	'd': ActionSteerRight,
	'w': ActionBoost,
	's': ActionBrake,
	'x': ActionDrift,
	' ': ActionRestart,
	'q': ActionQuit,
	't': ActionCycleTheme,
	'`': ActionToggleStatus,
}

// InputMapper turns key presses into held controls
// Terminals send no key release, so a control stays held until repeats stop for the timeout
type InputMapper struct {
	timeout time.Duration
	held    [actionCount]time.Time
}

func NewInputMapper(timeout time.Duration) *InputMapper {
	return &InputMapper{timeout: timeout}
}

// HandleEvent maps a tcell key event, other events map to ActionNone
func (m *InputMapper) HandleEvent(ev tcell.Event, now time.Time) Action {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return ActionNone
	}
	return m.Press(kev.Key(), kev.Rune(), now)
}

// Press records a key press and returns its action
// Uppercase A and D steer while drifting
func (m *InputMapper) Press(key tcell.Key, r rune, now time.Time) Action {
	if key != tcell.KeyRune {
		a := keyActions[key]
		m.hold(a, now)
		return a
	}

	switch r {
	case 'A':
		m.hold(ActionDrift, now)
		m.hold(ActionSteerLeft, now)
		return ActionSteerLeft
	case 'D':
		m.hold(ActionDrift, now)
		m.hold(ActionSteerRight, now)
		return ActionSteerRight
	}
	a := runeActions[r]
	m.hold(a, now)
	return a
}

func (m *InputMapper) hold(a Action, now time.Time) {
	if a == ActionNone {
		return
	}
	// Opposite steering cancels the previous direction
	switch a {
	case ActionSteerLeft:
		m.held[ActionSteerRight] = time.Time{}
	case ActionSteerRight:
		m.held[ActionSteerLeft] = time.Time{}
	}
	m.held[a] = now
}

// Held reports whether a is still within its hold window
func (m *InputMapper) Held(a Action, now time.Time) bool {
	t := m.held[a]
	return !t.IsZero() && now.Sub(t) <= m.timeout
}

// Input builds the vehicle controls for the frame at now
func (m *InputMapper) Input(now time.Time) vehicle.Input {
	in := vehicle.Input{
		Boost:   m.Held(ActionBoost, now),
		Brake:   m.Held(ActionBrake, now),
		Drift:   m.Held(ActionDrift, now),
		Restart: m.Held(ActionRestart, now),
	}
	if m.Held(ActionSteerLeft, now) {
		in.Steer--
	}
	if m.Held(ActionSteerRight, now) {
		in.Steer++
	}
	return in
}

// Release drops every held control
func (m *InputMapper) Release() {
	m.held = [actionCount]time.Time{}
}
