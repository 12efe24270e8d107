package model

import "time"

// TaskType names a preset bundle of pomodoro durations.
type TaskType string

const (
	TaskAdmin    TaskType = "admin"
	TaskStudy    TaskType = "study"
	TaskDeep     TaskType = "deep"
	TaskCreative TaskType = "creative"
)

// Durations holds the timing quadruple for one task type.
type Durations struct {
	Work               time.Duration
	ShortBreak         time.Duration
	LongBreak          time.Duration
	SessionsBeforeLong int
}

var durationTable = map[TaskType]Durations{
	TaskAdmin: {
		Work:               20 * time.Minute,
		ShortBreak:         5 * time.Minute,
		LongBreak:          15 * time.Minute,
		SessionsBeforeLong: 3,
	},
	TaskStudy: {
		Work:               25 * time.Minute,
		ShortBreak:         5 * time.Minute,
		LongBreak:          25 * time.Minute,
		SessionsBeforeLong: 4,
	},
	TaskDeep: {
		Work:               45 * time.Minute,
		ShortBreak:         10 * time.Minute,
		LongBreak:          40 * time.Minute,
		SessionsBeforeLong: 3,
	},
	TaskCreative: {
		Work:               60 * time.Minute,
		ShortBreak:         15 * time.Minute,
		LongBreak:          60 * time.Minute,
		SessionsBeforeLong: 2,
	},
}

// AllTaskTypes lists task types in display order.
func AllTaskTypes() []TaskType {
	return []TaskType{TaskAdmin, TaskStudy, TaskDeep, TaskCreative}
}

// Valid reports whether the task type is one of the known presets.
func (task TaskType) Valid() bool {
	_, ok := durationTable[task]
	return ok
}

// Durations returns the timing quadruple for the task type.
// Unknown values fall back to the Study preset.
func (task TaskType) Durations() Durations {
	if durations, ok := durationTable[task]; ok {
		return durations
	}
	return durationTable[TaskStudy]
}

// Label returns a human-readable name for the task type.
func (task TaskType) Label() string {
	switch task {
	case TaskAdmin:
		return "Admin"
	case TaskStudy:
		return "Study"
	case TaskDeep:
		return "Deep work"
	case TaskCreative:
		return "Creative"
	default:
		return string(task)
	}
}
