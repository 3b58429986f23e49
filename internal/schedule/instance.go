package schedule

import (
	"github.com/2beens/fitnessxs/pkg"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusDone, StatusSkipped:
		return true
	}
	return false
}

// Instance is one dated occurrence of a program workout.
type Instance struct {
	ID              string    `json:"id"`
	ProgramID       string    `json:"programId"`
	WorkoutID       string    `json:"workoutId"`
	ScheduledDate   pkg.Date  `json:"scheduledDate"`
	Status          Status    `json:"status"`
	AutoShiftedFrom *pkg.Date `json:"autoShiftedFrom,omitempty"`

	// joined on reads
	ProgramTitle string `json:"programTitle,omitempty"`
	WorkoutTitle string `json:"workoutTitle,omitempty"`
	DayOfWeek    int    `json:"dayOfWeek"`
}

// WorkoutSlot is a program workout placed on a weekday (0 = Monday).
type WorkoutSlot struct {
	ProgramID string
	WorkoutID string
	DayOfWeek int
}

// Shift is a pending instance moved by skip-and-shift.
type Shift struct {
	ID      string   `json:"id"`
	OldDate pkg.Date `json:"oldDate"`
	NewDate pkg.Date `json:"newDate"`
}

// WorkoutDay aggregates all instances of one calendar day.
type WorkoutDay struct {
	Date         pkg.Date `json:"date"`
	Status       Status   `json:"status"`
	WorkoutCount int      `json:"workoutCount"`
}

type HistorySummary struct {
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
	Total     int `json:"total"`
}
