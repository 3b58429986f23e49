package exerciselogs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/fitnessxs/internal/telemetry/metrics"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=exerciselogs

const (
	DefaultLogsLimit  = 30
	DefaultChartLimit = 20
	maxLimit          = 200
)

var ErrInvalidLog = errors.New("invalid exercise log")

type logsRepo interface {
	Upsert(ctx context.Context, userID string, payload CreatePayload, logDate pkg.Date) (*Log, error)
	MovementLogs(ctx context.Context, userID, movementID string, limit int) ([]Log, error)
	UserLogs(ctx context.Context, userID string) ([]Log, error)
	ChartLogs(ctx context.Context, userID, movementID string, limit int) ([]Log, error)
}

type todayResolver interface {
	Today(ctx context.Context, userID string) (pkg.Date, error)
}

type Service struct {
	repo           logsRepo
	today          todayResolver
	metricsManager *metrics.Manager
}

func NewService(repo logsRepo, today todayResolver, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		today:          today,
		metricsManager: metricsManager,
	}
}

func validate(payload CreatePayload) error {
	if strings.TrimSpace(payload.MovementID) == "" {
		return fmt.Errorf("%w: movement is required", ErrInvalidLog)
	}
	if payload.SetsCompleted < 0 {
		return fmt.Errorf("%w: sets must not be negative", ErrInvalidLog)
	}
	if r := payload.DifficultyRating; r != nil && (*r < 1 || *r > 5) {
		return fmt.Errorf("%w: difficulty must be between 1 and 5", ErrInvalidLog)
	}
	if payload.WeightKg != nil && *payload.WeightKg < 0 {
		return fmt.Errorf("%w: weight must not be negative", ErrInvalidLog)
	}
	if payload.DurationSeconds != nil && *payload.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidLog)
	}
	return nil
}

// Create logs the movement for today in the user's timezone.
func (s *Service) Create(ctx context.Context, userID string, payload CreatePayload) (_ *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercise-logs.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validate(payload); err != nil {
		return nil, err
	}

	today, err := s.today.Today(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}

	l, err := s.repo.Upsert(ctx, userID, payload, today)
	if err != nil {
		return nil, err
	}
	s.metricsManager.CounterExerciseLogs.Inc()
	return l, nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func (s *Service) MovementLogs(ctx context.Context, userID, movementID string, limit int) ([]Log, error) {
	return s.repo.MovementLogs(ctx, userID, movementID, clampLimit(limit, DefaultLogsLimit))
}

func (s *Service) Stats(ctx context.Context, userID string) ([]MovementStats, error) {
	logs, err := s.repo.UserLogs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ComputeStats(logs), nil
}

func (s *Service) Chart(ctx context.Context, userID, movementID string, metric Metric, limit int) ([]ChartPoint, error) {
	if metric == "" {
		metric = MetricWeight
	}
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidLog, metric)
	}

	logs, err := s.repo.ChartLogs(ctx, userID, movementID, clampLimit(limit, DefaultChartLimit))
	if err != nil {
		return nil, err
	}
	return ChartPoints(logs, metric), nil
}
