package pomodoro

import "time"

// Phase identifies the single active state of the machine.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseWorking       Phase = "working"
	PhasePaused        Phase = "paused"
	PhaseWorkComplete  Phase = "work_complete"
	PhaseShortBreak    Phase = "short_break"
	PhaseLongBreak     Phase = "long_break"
	PhaseBreakComplete Phase = "break_complete"
)

// Countdown reports whether the phase carries an active per-second countdown.
func (phase Phase) Countdown() bool {
	return phase == PhaseWorking || phase == PhaseShortBreak || phase == PhaseLongBreak
}

// SessionKind tags a completed phase.
type SessionKind string

const (
	SessionWork       SessionKind = "work"
	SessionShortBreak SessionKind = "short-break"
	SessionLongBreak  SessionKind = "long-break"
)

// EventType defines the type of Machine event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventProgress        EventType = "progress"
	EventSessionComplete EventType = "session_complete"
	EventStoreError      EventType = "store_error"
)

// Event represents a Machine update for observers. State-change and
// progress events carry no authoritative payload beyond what a fresh
// Snapshot would return; surfaces that need more should pull one.
type Event struct {
	Type      EventType
	Phase     Phase
	Kind      SessionKind
	Remaining time.Duration
	Progress  float64
	Sessions  int
	Message   string
	At        time.Time
}
