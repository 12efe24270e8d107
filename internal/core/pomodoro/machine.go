package pomodoro

import (
	"fmt"
	"sync"
	"time"

	"tomatillo/internal/core/model"
)

// TaskProvider supplies the active task type. The machine re-reads it on
// every duration computation, so a settings change takes effect on the
// next start or session reset without touching an in-flight countdown.
type TaskProvider interface {
	ActiveTask() model.TaskType
}

// TaskProviderFunc adapts a function to the TaskProvider interface.
type TaskProviderFunc func() model.TaskType

// ActiveTask calls the wrapped function.
func (fn TaskProviderFunc) ActiveTask() model.TaskType { return fn() }

// SessionStore persists the completed-session count across restarts.
// Write failures never roll back a phase transition; they only surface
// as store-error events.
type SessionStore interface {
	CompletedSessions() (int, error)
	SaveCompletedSessions(count int) error
}

// Config contains runtime options for Machine.
type Config struct {
	TickInterval time.Duration
}

// Machine is the pomodoro state machine. It owns the current phase, the
// remaining countdown time and the completed-session count, and mutates
// them only through the command methods. Commands from invalid phases
// are no-ops, never errors. All presentation surfaces observe it through
// Subscribe and drive it through the same commands a user action would.
type Machine struct {
	mu         sync.Mutex
	options    Config
	tasks      TaskProvider
	store      SessionStore
	scheduler  Scheduler
	phase      Phase
	resumeInto Phase
	remaining  time.Duration
	total      time.Duration
	startedAt  time.Time
	completed  int
	events     []chan Event
	closed     bool
}

// Snapshot is a consistent read of the machine for presentation surfaces.
type Snapshot struct {
	Phase       Phase
	ResumeInto  Phase
	Task        model.TaskType
	Remaining   time.Duration
	Total       time.Duration
	StartedAt   time.Time
	Sessions    int
	CycleLength int
	Progress    float64
}

// New creates a Machine in the Idle phase. The initial completed-session
// count is read from the store when one is provided; a read failure
// falls back to zero. A nil scheduler gets a ticker-backed default.
func New(tasks TaskProvider, store SessionStore, scheduler Scheduler, options Config) *Machine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if scheduler == nil {
		scheduler = NewTickerScheduler(options.TickInterval)
	}

	machine := &Machine{
		options:   options,
		tasks:     tasks,
		store:     store,
		scheduler: scheduler,
		phase:     PhaseIdle,
	}
	if store != nil {
		if count, err := store.CompletedSessions(); err == nil && count > 0 {
			machine.completed = count
		}
	}
	return machine
}

// Subscribe registers a new observer channel.
func (machine *Machine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	machine.mu.Lock()
	machine.events = append(machine.events, ch)
	machine.mu.Unlock()
	return ch
}

// Start begins or resumes a countdown. From Idle or BreakComplete it
// enters Working with the active task's work duration. From WorkComplete
// it enters a long break when the completed-session count has reached
// the task's threshold, a short break otherwise. From Paused it resumes
// the interrupted phase with the remaining time frozen at pause. While a
// countdown is running it is a no-op.
func (machine *Machine) Start() {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	switch machine.phase {
	case PhaseIdle, PhaseBreakComplete:
		durations := machine.durationsLocked()
		machine.enterCountdownLocked(PhaseWorking, durations.Work)
	case PhaseWorkComplete:
		durations := machine.durationsLocked()
		if machine.completed >= durations.SessionsBeforeLong {
			machine.enterCountdownLocked(PhaseLongBreak, durations.LongBreak)
		} else {
			machine.enterCountdownLocked(PhaseShortBreak, durations.ShortBreak)
		}
	case PhasePaused:
		machine.phase = machine.resumeInto
		machine.startedAt = time.Now()
		machine.scheduler.Begin(machine.Tick)
		machine.emitStateLocked()
	}
}

// Pause freezes a running countdown, recording which phase it
// interrupted. Outside Working and break phases it is a no-op.
func (machine *Machine) Pause() {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if !machine.phase.Countdown() {
		return
	}
	machine.scheduler.End()
	machine.resumeInto = machine.phase
	machine.phase = PhasePaused
	machine.emitStateLocked()
}

// Stop ends any countdown and returns to Idle. The completed-session
// count is kept. Already Idle it is a no-op.
func (machine *Machine) Stop() {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.phase == PhaseIdle {
		return
	}
	machine.scheduler.End()
	machine.phase = PhaseIdle
	machine.remaining = 0
	machine.total = 0
	machine.emitStateLocked()
}

// ResetSession restarts the current phase from scratch with a full
// duration recomputed from the active task type. While Paused it
// restarts the interrupted phase, running, discarding the frozen
// remaining time. From Idle and the completed phases it is a no-op.
func (machine *Machine) ResetSession() {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	switch {
	case machine.phase.Countdown():
		machine.enterCountdownLocked(machine.phase, machine.phaseDurationLocked(machine.phase))
	case machine.phase == PhasePaused:
		machine.enterCountdownLocked(machine.resumeInto, machine.phaseDurationLocked(machine.resumeInto))
	}
}

// ResetPomodoro abandons the whole cycle: any countdown stops, the phase
// returns to Idle and the completed-session count resets to zero.
func (machine *Machine) ResetPomodoro() {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	machine.scheduler.End()
	machine.phase = PhaseIdle
	machine.remaining = 0
	machine.total = 0
	machine.completed = 0
	machine.persistLocked()
	machine.emitStateLocked()
}

// Tick advances an active countdown by one interval. Reaching exactly
// zero triggers phase completion on the same tick; the remaining time
// never goes negative. Outside countdown phases it is a no-op.
func (machine *Machine) Tick() {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if !machine.phase.Countdown() {
		return
	}
	if machine.remaining > 0 {
		machine.remaining -= machine.options.TickInterval
		if machine.remaining < 0 {
			machine.remaining = 0
		}
	}
	if machine.remaining > 0 {
		machine.emitLocked(Event{
			Type:      EventProgress,
			Phase:     machine.phase,
			Remaining: machine.remaining,
			Progress:  machine.progressLocked(),
			Sessions:  machine.completed,
			At:        time.Now(),
		})
		return
	}
	machine.completePhaseLocked()
}

// PrimaryAction maps the single main control onto the command API:
// Start from Idle, the completed phases and Paused; Pause while a
// countdown is running.
func (machine *Machine) PrimaryAction() {
	machine.mu.Lock()
	running := machine.phase.Countdown()
	machine.mu.Unlock()

	if running {
		machine.Pause()
		return
	}
	machine.Start()
}

// Snapshot returns a consistent view of the machine.
func (machine *Machine) Snapshot() Snapshot {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	task := machine.activeTaskLocked()
	return Snapshot{
		Phase:       machine.phase,
		ResumeInto:  machine.resumeInto,
		Task:        task,
		Remaining:   machine.remaining,
		Total:       machine.totalDurationLocked(),
		StartedAt:   machine.startedAt,
		Sessions:    machine.completed,
		CycleLength: task.Durations().SessionsBeforeLong,
		Progress:    machine.progressLocked(),
	}
}

// Shutdown ends the tick schedule and closes all observer channels.
// This is the process-exit path, distinct from the Stop command.
func (machine *Machine) Shutdown() {
	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	machine.closed = true
	machine.scheduler.End()
	events := machine.events
	machine.events = nil
	machine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (machine *Machine) enterCountdownLocked(phase Phase, total time.Duration) {
	machine.phase = phase
	machine.total = total
	machine.remaining = total
	machine.startedAt = time.Now()
	machine.scheduler.Begin(machine.Tick)
	machine.emitStateLocked()
}

func (machine *Machine) completePhaseLocked() {
	machine.scheduler.End()
	machine.remaining = 0
	machine.total = 0

	var kind SessionKind
	switch machine.phase {
	case PhaseWorking:
		machine.completed++
		machine.persistLocked()
		machine.phase = PhaseWorkComplete
		kind = SessionWork
	case PhaseShortBreak:
		machine.phase = PhaseBreakComplete
		kind = SessionShortBreak
	case PhaseLongBreak:
		machine.completed = 0
		machine.persistLocked()
		machine.phase = PhaseBreakComplete
		kind = SessionLongBreak
	}

	machine.emitStateLocked()
	machine.emitLocked(Event{
		Type:     EventSessionComplete,
		Phase:    machine.phase,
		Kind:     kind,
		Sessions: machine.completed,
		At:       time.Now(),
	})
}

func (machine *Machine) persistLocked() {
	if machine.store == nil {
		return
	}
	if err := machine.store.SaveCompletedSessions(machine.completed); err != nil {
		machine.emitLocked(Event{
			Type:     EventStoreError,
			Phase:    machine.phase,
			Sessions: machine.completed,
			Message:  err.Error(),
			At:       time.Now(),
		})
	}
}

func (machine *Machine) activeTaskLocked() model.TaskType {
	if machine.tasks == nil {
		return model.TaskStudy
	}
	return machine.tasks.ActiveTask()
}

func (machine *Machine) durationsLocked() model.Durations {
	return machine.activeTaskLocked().Durations()
}

func (machine *Machine) phaseDurationLocked(phase Phase) time.Duration {
	durations := machine.durationsLocked()
	switch phase {
	case PhaseWorking:
		return durations.Work
	case PhaseShortBreak:
		return durations.ShortBreak
	case PhaseLongBreak:
		return durations.LongBreak
	default:
		return 0
	}
}

func (machine *Machine) totalDurationLocked() time.Duration {
	if !machine.phase.Countdown() {
		return 0
	}
	return machine.total
}

func (machine *Machine) progressLocked() float64 {
	total := machine.totalDurationLocked()
	if total <= 0 {
		return 0
	}
	progress := 1 - float64(machine.remaining)/float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (machine *Machine) emitStateLocked() {
	machine.emitLocked(Event{
		Type:      EventStateChange,
		Phase:     machine.phase,
		Remaining: machine.remaining,
		Progress:  machine.progressLocked(),
		Sessions:  machine.completed,
		At:        time.Now(),
	})
}

func (machine *Machine) emitLocked(event Event) {
	if machine.closed {
		return
	}
	events := append([]chan Event(nil), machine.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

// FormatClock renders a countdown as two-digit minutes and seconds.
func FormatClock(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
