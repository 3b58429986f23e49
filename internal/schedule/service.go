package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitnessxs/internal/events"
	"github.com/2beens/fitnessxs/internal/telemetry/metrics"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=schedule

var ErrInvalidMonth = errors.New("invalid month")

// how far back the streak looks, a longer streak is capped at this many days
const streakLookbackDays = 90

type scheduleRepo interface {
	TodayPlan(ctx context.Context, userID string, today pkg.Date) ([]Instance, error)
	History(ctx context.Context, userID string, from, to pkg.Date) ([]Instance, error)
	UpdateStatus(ctx context.Context, userID, scheduleID string, status Status) error
	SkipAndShift(ctx context.Context, userID, scheduleID string) (*SkipResult, error)
}

type todayResolver interface {
	Today(ctx context.Context, userID string) (pkg.Date, error)
}

type WeekHistory struct {
	From    pkg.Date       `json:"from"`
	To      pkg.Date       `json:"to"`
	Days    []WorkoutDay   `json:"days"`
	Summary HistorySummary `json:"summary"`
	Streak  int            `json:"streak"`
}

type MonthHistory struct {
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Days    []WorkoutDay   `json:"days"`
	Summary HistorySummary `json:"summary"`
}

type Service struct {
	repo           scheduleRepo
	today          todayResolver
	publisher      events.Publisher
	metricsManager *metrics.Manager
}

func NewService(
	repo scheduleRepo,
	today todayResolver,
	publisher events.Publisher,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		today:          today,
		publisher:      publisher,
		metricsManager: metricsManager,
	}
}

func (s *Service) TodayPlan(ctx context.Context, userID string) (_ []Instance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.today-plan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	today, err := s.today.Today(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}
	return s.repo.TodayPlan(ctx, userID, today)
}

func (s *Service) UpdateStatus(ctx context.Context, userID, scheduleID string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, userID, scheduleID, status)
}

func (s *Service) SkipAndShift(ctx context.Context, userID, scheduleID string) (_ *SkipResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.skip-and-shift")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	res, err := s.repo.SkipAndShift(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterSkipAndShift.Inc()
	s.metricsManager.CounterShiftedInstances.Add(float64(res.Shifted))
	log.Debugf("skip and shift [%s]: %d instances of program [%s] moved", scheduleID, res.Shifted, res.ProgramID)

	events.PublishAsync(ctx, s.publisher, events.Event{
		Type:     events.TypeScheduleShifted,
		UserID:   userID,
		TargetID: res.ProgramID,
		Attributes: map[string]string{
			"scheduleId": scheduleID,
			"shifted":    fmt.Sprint(res.Shifted),
		},
	})

	return res, nil
}

// Week returns the Monday to Sunday week containing today, with summary and streak.
func (s *Service) Week(ctx context.Context, userID string) (_ *WeekHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.week")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	today, err := s.today.Today(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}
	from := today.StartOfWeek()
	to := from.AddDays(6)

	lookbackFrom := today.AddDays(-streakLookbackDays)
	if from.Before(lookbackFrom) {
		lookbackFrom = from
	}
	instances, err := s.repo.History(ctx, userID, lookbackFrom, to)
	if err != nil {
		return nil, err
	}
	allDays := AggregateDays(instances)

	weekDays := make([]WorkoutDay, 0, 7)
	for _, d := range allDays {
		if !d.Date.Before(from) && !d.Date.After(to) {
			weekDays = append(weekDays, d)
		}
	}

	return &WeekHistory{
		From:    from,
		To:      to,
		Days:    weekDays,
		Summary: Summarize(weekDays),
		Streak:  Streak(allDays, today),
	}, nil
}

func (s *Service) Month(ctx context.Context, userID string, year int, month time.Month) (_ *MonthHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.month")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	from := pkg.NewDate(year, month, 1)
	to := pkg.Date{Time: from.AddDate(0, 1, -1)}

	instances, err := s.repo.History(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	days := AggregateDays(instances)

	return &MonthHistory{
		Year:    year,
		Month:   int(month),
		Days:    days,
		Summary: Summarize(days),
	}, nil
}

// CurrentMonth resolves the user's current year and month.
func (s *Service) CurrentMonth(ctx context.Context, userID string) (int, time.Month, error) {
	today, err := s.today.Today(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return today.Year(), today.Month(), nil
}
