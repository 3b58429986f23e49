package programs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/go-redis/redis/v8"
)

const (
	DraftTTL       = 7 * 24 * time.Hour
	draftKeyPrefix = "fitnessxs-draft||"
)

// Draft is the program builder state of one user, kept between requests
// until it is submitted or reset.
type Draft struct {
	Title string  `json:"title"`
	Focus *string `json:"focus,omitempty"`
	// one workout per selected day, ordered monday to sunday
	Workouts []WorkoutInput `json:"workouts"`
}

func NewDraft() *Draft {
	return &Draft{
		Workouts: make([]WorkoutInput, 0),
	}
}

// SetMeta updates only the fields that are given.
func (d *Draft) SetMeta(title, focus *string) {
	if title != nil {
		d.Title = *title
	}
	if focus != nil {
		if strings.TrimSpace(*focus) == "" {
			d.Focus = nil
		} else {
			f := *focus
			d.Focus = &f
		}
	}
}

func (d *Draft) workoutIndex(day pkg.TrainingDay) int {
	for i, w := range d.Workouts {
		if w.Day == day {
			return i
		}
	}
	return -1
}

func normalizeDay(day pkg.TrainingDay) (pkg.TrainingDay, int, error) {
	idx, err := day.ToDayIndex()
	if err != nil {
		return "", -1, fmt.Errorf("%w: %s", ErrInvalidProgram, err)
	}
	normalized, _ := pkg.FromDayIndex(idx)
	return normalized, idx, nil
}

func (d *Draft) addDay(day pkg.TrainingDay) int {
	d.Workouts = append(d.Workouts, WorkoutInput{
		Day:       day,
		Exercises: make([]ExerciseInput, 0),
	})
	sort.SliceStable(d.Workouts, func(i, j int) bool {
		a, _ := d.Workouts[i].Day.ToDayIndex()
		b, _ := d.Workouts[j].Day.ToDayIndex()
		return a < b
	})
	return d.workoutIndex(day)
}

// ToggleTrainingDay adds the day with an empty workout, or removes the
// day together with its workout when it is already selected.
func (d *Draft) ToggleTrainingDay(day pkg.TrainingDay) error {
	day, _, err := normalizeDay(day)
	if err != nil {
		return err
	}
	if i := d.workoutIndex(day); i >= 0 {
		d.Workouts = append(d.Workouts[:i], d.Workouts[i+1:]...)
		return nil
	}
	d.addDay(day)
	return nil
}

// SetWorkoutTitle does nothing when the day is not selected.
func (d *Draft) SetWorkoutTitle(day pkg.TrainingDay, title string) error {
	day, _, err := normalizeDay(day)
	if err != nil {
		return err
	}
	if i := d.workoutIndex(day); i >= 0 {
		d.Workouts[i].Title = title
	}
	return nil
}

// AddExercise selects the day first if needed.
func (d *Draft) AddExercise(day pkg.TrainingDay, exercise ExerciseInput) error {
	day, _, err := normalizeDay(day)
	if err != nil {
		return err
	}
	if strings.TrimSpace(exercise.MovementID) == "" {
		return fmt.Errorf("%w: movement is required", ErrInvalidProgram)
	}
	i := d.workoutIndex(day)
	if i < 0 {
		i = d.addDay(day)
	}
	d.Workouts[i].Exercises = append(d.Workouts[i].Exercises, exercise)
	return nil
}

// RemoveExercise ignores an index out of range.
func (d *Draft) RemoveExercise(day pkg.TrainingDay, index int) error {
	day, _, err := normalizeDay(day)
	if err != nil {
		return err
	}
	i := d.workoutIndex(day)
	if i < 0 {
		return nil
	}
	exercises := d.Workouts[i].Exercises
	if index < 0 || index >= len(exercises) {
		return nil
	}
	d.Workouts[i].Exercises = append(exercises[:index], exercises[index+1:]...)
	return nil
}

func (d *Draft) Reset() {
	*d = *NewDraft()
}

func (d *Draft) TrainingDays() []pkg.TrainingDay {
	days := make([]pkg.TrainingDay, 0, len(d.Workouts))
	for _, w := range d.Workouts {
		days = append(days, w.Day)
	}
	return days
}

func (d *Draft) ToInput() ProgramInput {
	workouts := make([]WorkoutInput, 0, len(d.Workouts))
	for _, w := range d.Workouts {
		exercises := make([]ExerciseInput, len(w.Exercises))
		copy(exercises, w.Exercises)
		w.Exercises = exercises
		workouts = append(workouts, w)
	}
	return ProgramInput{
		Title:    d.Title,
		Focus:    d.Focus,
		Workouts: workouts,
	}
}

// DraftStore keeps one JSON encoded draft per user in redis. Every save
// refreshes the TTL.
type DraftStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewDraftStore(redisClient *redis.Client, ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = DraftTTL
	}
	return &DraftStore{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// Get returns an empty draft when the user has none.
func (s *DraftStore) Get(ctx context.Context, userID string) (_ *Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "programs.drafts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	val, err := s.redisClient.Get(ctx, draftKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return NewDraft(), nil
	}
	if err != nil {
		return nil, err
	}

	draft := NewDraft()
	if err := json.Unmarshal([]byte(val), draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if draft.Workouts == nil {
		draft.Workouts = make([]WorkoutInput, 0)
	}
	return draft, nil
}

func (s *DraftStore) Save(ctx context.Context, userID string, draft *Draft) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "programs.drafts.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return s.redisClient.Set(ctx, draftKeyPrefix+userID, string(data), s.ttl).Err()
}

func (s *DraftStore) Delete(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "programs.drafts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.redisClient.Del(ctx, draftKeyPrefix+userID).Err()
}
