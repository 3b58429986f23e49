package exerciselogs

import (
	"time"

	"github.com/2beens/fitnessxs/pkg"
)

// Log is what the user did for one movement on one day. A second log for
// the same movement and day replaces the first.
type Log struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	MovementID         string    `json:"movementId"`
	MovementName       string    `json:"movementName"`
	ScheduleInstanceID *string   `json:"scheduleInstanceId,omitempty"`
	LogDate            pkg.Date  `json:"logDate"`
	SetsCompleted      int       `json:"setsCompleted"`
	RepsCompleted      *string   `json:"repsCompleted,omitempty"`
	WeightKg           *float64  `json:"weightKg,omitempty"`
	DurationSeconds    *int      `json:"durationSeconds,omitempty"`
	Note               *string   `json:"note,omitempty"`
	DifficultyRating   *int      `json:"difficultyRating,omitempty"`
	LoggedAt           time.Time `json:"loggedAt"`
}

type CreatePayload struct {
	MovementID         string   `json:"movementId"`
	ScheduleInstanceID *string  `json:"scheduleInstanceId,omitempty"`
	SetsCompleted      int      `json:"setsCompleted"`
	RepsCompleted      *string  `json:"repsCompleted,omitempty"`
	WeightKg           *float64 `json:"weightKg,omitempty"`
	DurationSeconds    *int     `json:"durationSeconds,omitempty"`
	Note               *string  `json:"note,omitempty"`
	DifficultyRating   *int     `json:"difficultyRating,omitempty"`
}

type MovementStats struct {
	MovementID    string    `json:"movementId"`
	MovementName  string    `json:"movementName"`
	TotalSessions int       `json:"totalSessions"`
	AvgSets       float64   `json:"avgSets"`
	MaxWeightKg   *float64  `json:"maxWeightKg,omitempty"`
	LastWeightKg  *float64  `json:"lastWeightKg,omitempty"`
	LastLoggedAt  time.Time `json:"lastLoggedAt"`
}

type Metric string

const (
	MetricWeight Metric = "weight"
	MetricSets   Metric = "sets"
	MetricVolume Metric = "volume"
)

func (m Metric) Valid() bool {
	switch m {
	case MetricWeight, MetricSets, MetricVolume:
		return true
	}
	return false
}

type ChartPoint struct {
	Date  pkg.Date `json:"date"`
	Value float64  `json:"value"`
}
