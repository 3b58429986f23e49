package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/fitnessxs/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=steps

const maxRangeDays = 366

var ErrInvalidSteps = errors.New("invalid steps")

type stepsRepo interface {
	Upsert(ctx context.Context, userID string, day pkg.Date, steps int, source string) (*DailySteps, error)
	Get(ctx context.Context, userID string, day pkg.Date) (*DailySteps, error)
	Range(ctx context.Context, userID string, from, to pkg.Date) ([]DailySteps, error)
}

type todayResolver interface {
	Today(ctx context.Context, userID string) (pkg.Date, error)
}

type Service struct {
	repo  stepsRepo
	today todayResolver
}

func NewService(repo stepsRepo, today todayResolver) *Service {
	return &Service{
		repo:  repo,
		today: today,
	}
}

func (s *Service) Report(ctx context.Context, userID string, payload ReportPayload) (*DailySteps, error) {
	if payload.Steps < 0 {
		return nil, fmt.Errorf("%w: steps must not be negative", ErrInvalidSteps)
	}

	today, err := s.today.Today(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}
	day := today
	if payload.Day != nil {
		if payload.Day.After(today) {
			return nil, fmt.Errorf("%w: %s is in the future", ErrInvalidSteps, payload.Day)
		}
		day = *payload.Day
	}

	source := strings.TrimSpace(payload.Source)
	if source == "" {
		source = SourceManual
	}
	return s.repo.Upsert(ctx, userID, day, payload.Steps, source)
}

// Today returns a zero count when nothing was reported yet.
func (s *Service) Today(ctx context.Context, userID string) (*DailySteps, error) {
	today, err := s.today.Today(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}

	ds, err := s.repo.Get(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return &DailySteps{Day: today, Steps: 0, Source: SourceManual}, nil
	}
	return ds, nil
}

func (s *Service) Range(ctx context.Context, userID string, from, to pkg.Date) ([]DailySteps, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range ends before it starts", ErrInvalidSteps)
	}
	if to.Sub(from.Time).Hours()/24 > maxRangeDays {
		return nil, fmt.Errorf("%w: range longer than %d days", ErrInvalidSteps, maxRangeDays)
	}
	return s.repo.Range(ctx, userID, from, to)
}
