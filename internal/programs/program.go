package programs

import (
	"time"

	"github.com/2beens/fitnessxs/pkg"
)

const BlockTypeSingle = "single"

type Program struct {
	ID           string            `json:"id"`
	OwnerID      string            `json:"ownerId"`
	Title        string            `json:"title"`
	Focus        *string           `json:"focus,omitempty"`
	TrainingDays []pkg.TrainingDay `json:"trainingDays"`
	IsActive     bool              `json:"isActive"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	Workouts     []Workout         `json:"workouts"`
}

type Workout struct {
	ID         string          `json:"id"`
	ProgramID  string          `json:"programId"`
	DayOfWeek  int             `json:"dayOfWeek"`
	Day        pkg.TrainingDay `json:"day"`
	Title      string          `json:"title"`
	OrderIndex int             `json:"orderIndex"`
	Notes      *string         `json:"notes,omitempty"`
	Blocks     []Block         `json:"blocks,omitempty"`
}

type Block struct {
	ID         string     `json:"id"`
	WorkoutID  string     `json:"workoutId"`
	BlockType  string     `json:"blockType"`
	OrderIndex int        `json:"orderIndex"`
	Note       *string    `json:"note,omitempty"`
	Exercises  []Exercise `json:"exercises"`
}

type Exercise struct {
	ID           string  `json:"id"`
	BlockID      string  `json:"blockId"`
	MovementID   string  `json:"movementId"`
	MovementName string  `json:"movementName"`
	Sets         *int    `json:"sets,omitempty"`
	Reps         *string `json:"reps,omitempty"`
	RestSeconds  *int    `json:"restSeconds,omitempty"`
	Tempo        *string `json:"tempo,omitempty"`
	Note         *string `json:"note,omitempty"`
	OrderIndex   int     `json:"orderIndex"`
}

// ExerciseInput is one exercise as picked in the builder.
type ExerciseInput struct {
	MovementID string `json:"movementId"`
	// only kept for display while drafting
	MovementName string  `json:"movementName,omitempty"`
	Sets         *int    `json:"sets,omitempty"`
	Reps         *string `json:"reps,omitempty"`
	RestSeconds  *int    `json:"restSeconds,omitempty"`
	Tempo        *string `json:"tempo,omitempty"`
	Note         *string `json:"note,omitempty"`
}

type WorkoutInput struct {
	Day       pkg.TrainingDay `json:"day"`
	Title     string          `json:"title"`
	Exercises []ExerciseInput `json:"exercises"`
}

type ProgramInput struct {
	Title    string         `json:"title"`
	Focus    *string        `json:"focus,omitempty"`
	Workouts []WorkoutInput `json:"workouts"`
}

// TrainingDays lists the days of the workouts, in workout order.
func (in ProgramInput) TrainingDays() []pkg.TrainingDay {
	days := make([]pkg.TrainingDay, 0, len(in.Workouts))
	for _, w := range in.Workouts {
		days = append(days, w.Day)
	}
	return days
}

type AddExercisePayload struct {
	WorkoutID string `json:"workoutId"`
	ExerciseInput
}

func defaultWorkoutTitle(day pkg.TrainingDay) string {
	return day.Title() + " workout"
}
