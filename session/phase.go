package session

import (
	"time"

	"github.com/lixenwraith/beatrace/event"
	"github.com/lixenwraith/beatrace/fsm"
	"github.com/lixenwraith/beatrace/parameter"
)

// Phase is the session lifecycle state
type Phase int

const (
	PhaseNone Phase = iota
	PhaseInit
	PhaseCountdown
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "Init"
	case PhaseCountdown:
		return "Countdown"
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "None"
	}
}

// Phase state IDs sit after fsm.StateRoot
const phaseBase = fsm.StateRoot

func (p Phase) state() fsm.StateID {
	return phaseBase + fsm.StateID(p)
}

func phaseOf(id fsm.StateID) Phase {
	if id <= phaseBase {
		return PhaseNone
	}
	return Phase(id - phaseBase)
}

// buildMachine wires the four phases under a single root
func buildMachine() *fsm.Machine[*Session] {
	m := fsm.NewMachine[*Session]()
	m.AddState(fsm.StateRoot, "Root", fsm.StateNone)
	for _, p := range []Phase{PhaseInit, PhaseCountdown, PhasePlaying, PhaseGameOver} {
		m.AddState(p.state(), p.String(), fsm.StateRoot)
		m.OnEnter(p.state(), announce(p))
	}

	m.AddTransition(PhaseInit.state(), fsm.Transition[*Session]{
		TargetID: PhaseCountdown.state(),
		Event:    event.EventSessionReady,
	})

	m.OnEnter(PhaseCountdown.state(), (*Session).enterCountdown)
	m.OnUpdate(PhaseCountdown.state(), (*Session).tickCountdown)
	m.AddTransition(PhaseCountdown.state(), fsm.Transition[*Session]{
		TargetID: PhasePlaying.state(),
		Guard: func(s *Session, _ time.Duration) bool {
			return s.countdown <= -parameter.CountdownGoWindow
		},
	})

	m.OnUpdate(PhasePlaying.state(), (*Session).tickPlaying)
	m.AddTransition(PhasePlaying.state(), fsm.Transition[*Session]{
		TargetID: PhaseGameOver.state(),
		Guard: func(s *Session, _ time.Duration) bool {
			return s.sim.Destroyed()
		},
	})

	m.OnEnter(PhaseGameOver.state(), (*Session).enterGameOver)
	m.OnUpdate(PhaseGameOver.state(), (*Session).tickGameOver)

	if err := m.CompilePaths(); err != nil {
		panic("session: " + err.Error())
	}
	return m
}

func announce(p Phase) fsm.ActionFunc[*Session] {
	return func(s *Session) {
		s.statPhase.Store(p.String())
		s.emit(event.EventPhaseChange, float64(p))
	}
}
