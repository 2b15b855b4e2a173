package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value, used by the FSM for tick transitions
	EventNone EventType = iota

	// EventSessionReady starts the countdown after initialization
	// Trigger: Session.Init | Consumer: FSM
	EventSessionReady

	// EventBeat marks a detected musical beat
	// Trigger: Playing tick | Consumer: HUD flash, sound | Value: combo after bonus
	EventBeat

	// EventBoostPickup signals a collected boost pad
	// Trigger: Playing tick | Consumer: sound | Value: combo after bonus
	EventBoostPickup

	// EventBoostFired signals a boost triggered by input
	// Trigger: Playing tick | Consumer: sound | Value: boost amount
	EventBoostFired

	// EventCollision signals contact with a wall or obstacle
	// Trigger: Playing tick | Consumer: sound, camera | Value: shield damage
	EventCollision

	// EventCountdownTick fires when the countdown crosses a whole second
	// Trigger: Countdown tick | Consumer: sound, HUD | Value: seconds remaining (0 = GO)
	EventCountdownTick

	// EventPhaseChange signals entry into a new phase
	// Trigger: FSM enter actions | Consumer: HUD | Value: phase number
	EventPhaseChange

	// EventGameOver signals the shield ran out
	// Trigger: Playing tick | Consumer: FSM, sound, HUD | Value: final score
	EventGameOver

	// EventRestart requests a new run
	// Trigger: Restart input edge in GameOver, Session.Restart | Consumer: FSM
	EventRestart

	// EventThemeChange signals a theme swap
	// Trigger: Session.SetTheme | Consumer: renderer | Value: 1 when the track was regenerated
	EventThemeChange
)

func (e EventType) String() string {
	switch e {
	case EventNone:
		return "None"
	case EventSessionReady:
		return "SessionReady"
	case EventBeat:
		return "Beat"
	case EventBoostPickup:
		return "BoostPickup"
	case EventBoostFired:
		return "BoostFired"
	case EventCollision:
		return "Collision"
	case EventCountdownTick:
		return "CountdownTick"
	case EventPhaseChange:
		return "PhaseChange"
	case EventGameOver:
		return "GameOver"
	case EventRestart:
		return "Restart"
	case EventThemeChange:
		return "ThemeChange"
	default:
		return "Unknown"
	}
}

// GameEvent is a fixed-size event record, copied by value through the queue
type GameEvent struct {
	Type  EventType
	Frame int64
	Value float64
}
