package programs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=programs

var ErrInvalidProgram = errors.New("invalid program")

type programsRepo interface {
	Create(ctx context.Context, ownerID string, in ProgramInput, today pkg.Date) (*Program, error)
	List(ctx context.Context, ownerID string) ([]Program, error)
	Detail(ctx context.Context, ownerID, programID string) (*Program, error)
	Delete(ctx context.Context, ownerID, programID string) error
	AddExerciseToWorkout(ctx context.Context, ownerID string, payload AddExercisePayload) (*Exercise, error)
}

type draftStore interface {
	Get(ctx context.Context, userID string) (*Draft, error)
	Save(ctx context.Context, userID string, draft *Draft) error
	Delete(ctx context.Context, userID string) error
}

type todayResolver interface {
	Today(ctx context.Context, userID string) (pkg.Date, error)
}

type Service struct {
	repo   programsRepo
	drafts draftStore
	today  todayResolver
}

func NewService(repo programsRepo, drafts draftStore, today todayResolver) *Service {
	return &Service{
		repo:   repo,
		drafts: drafts,
		today:  today,
	}
}

// normalize trims the input, fills in default workout titles and checks
// that the program can be stored.
func normalize(in ProgramInput) (ProgramInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalidProgram)
	}
	if in.Focus != nil && strings.TrimSpace(*in.Focus) == "" {
		in.Focus = nil
	}
	if len(in.Workouts) == 0 {
		return in, fmt.Errorf("%w: at least one training day is required", ErrInvalidProgram)
	}

	days, err := pkg.ValidateTrainingDays(in.TrainingDays())
	if err != nil {
		return in, fmt.Errorf("%w: %s", ErrInvalidProgram, err)
	}

	workouts := make([]WorkoutInput, 0, len(in.Workouts))
	for i, w := range in.Workouts {
		w.Day = days[i]
		w.Title = strings.TrimSpace(w.Title)
		if w.Title == "" {
			w.Title = defaultWorkoutTitle(w.Day)
		}
		for _, e := range w.Exercises {
			if strings.TrimSpace(e.MovementID) == "" {
				return in, fmt.Errorf("%w: %s exercise without movement", ErrInvalidProgram, w.Day)
			}
			if e.Sets != nil && *e.Sets < 0 {
				return in, fmt.Errorf("%w: sets must not be negative", ErrInvalidProgram)
			}
		}
		workouts = append(workouts, w)
	}
	in.Workouts = workouts
	return in, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, in ProgramInput) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	in, err = normalize(in)
	if err != nil {
		return nil, err
	}

	today, err := s.today.Today(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}

	p, err := s.repo.Create(ctx, ownerID, in, today)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("workouts.count", len(p.Workouts)))
	log.Debugf("program [%s] created for [%s] with %d workouts", p.ID, ownerID, len(p.Workouts))
	return p, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Program, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *Service) Detail(ctx context.Context, ownerID, programID string) (*Program, error) {
	return s.repo.Detail(ctx, ownerID, programID)
}

func (s *Service) Delete(ctx context.Context, ownerID, programID string) error {
	return s.repo.Delete(ctx, ownerID, programID)
}

func (s *Service) AddExercise(ctx context.Context, ownerID string, payload AddExercisePayload) (*Exercise, error) {
	if strings.TrimSpace(payload.MovementID) == "" {
		return nil, fmt.Errorf("%w: movement is required", ErrInvalidProgram)
	}
	if payload.Sets != nil && *payload.Sets < 0 {
		return nil, fmt.Errorf("%w: sets must not be negative", ErrInvalidProgram)
	}
	return s.repo.AddExerciseToWorkout(ctx, ownerID, payload)
}

func (s *Service) Draft(ctx context.Context, userID string) (*Draft, error) {
	return s.drafts.Get(ctx, userID)
}

// UpdateDraft loads the draft, applies the change and stores it back.
func (s *Service) UpdateDraft(ctx context.Context, userID string, change func(d *Draft) error) (_ *Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.update-draft")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	draft, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if err := change(draft); err != nil {
		return nil, err
	}
	if err := s.drafts.Save(ctx, userID, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return draft, nil
}

func (s *Service) ResetDraft(ctx context.Context, userID string) error {
	return s.drafts.Delete(ctx, userID)
}

// SubmitDraft creates the program from the draft and drops the draft.
func (s *Service) SubmitDraft(ctx context.Context, userID string) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.submit-draft")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	draft, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	p, err := s.Create(ctx, userID, draft.ToInput())
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx, userID); err != nil {
		// the program is stored already, only log
		log.Errorf("delete submitted draft [%s]: %s", userID, err)
	}
	return p, nil
}
