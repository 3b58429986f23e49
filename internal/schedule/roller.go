package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitnessxs/internal/profiles"
	"github.com/2beens/fitnessxs/internal/telemetry/metrics"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=roller_mocks_test.go -package=schedule

const DefaultRollHorizonDays = 14

type rollerRepo interface {
	LatestPerWorkout(ctx context.Context) ([]LatestInstance, error)
	InsertInstances(ctx context.Context, instances []Instance) error
}

// Roller keeps every active program scheduled up to the horizon.
type Roller struct {
	repo           rollerRepo
	horizonDays    int
	metricsManager *metrics.Manager
}

func NewRoller(repo rollerRepo, horizonDays int, metricsManager *metrics.Manager) *Roller {
	if horizonDays <= 0 {
		horizonDays = DefaultRollHorizonDays
	}
	return &Roller{
		repo:           repo,
		horizonDays:    horizonDays,
		metricsManager: metricsManager,
	}
}

func (r *Roller) Roll(ctx context.Context, now time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "job.schedule.roll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer func(begin time.Time) {
		r.metricsManager.HistogramJobDuration.WithLabelValues("schedule_roll").Observe(time.Since(begin).Seconds())
	}(time.Now())

	latest, err := r.repo.LatestPerWorkout(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest per workout: %w", err)
	}

	planned := r.plan(latest, now)
	if err := r.repo.InsertInstances(ctx, planned); err != nil {
		return 0, fmt.Errorf("insert instances: %w", err)
	}

	r.metricsManager.CounterRolledInstances.Add(float64(len(planned)))
	log.Debugf("schedule roll: %d workouts checked, %d instances added", len(latest), len(planned))
	return len(planned), nil
}

// plan rolls each owner's workouts from the owner's own today, so a roll near
// midnight UTC neither backfills a day that is already over nor misses today.
func (r *Roller) plan(latest []LatestInstance, now time.Time) []Instance {
	byZone := make(map[string][]LatestInstance)
	for _, l := range latest {
		byZone[l.Timezone] = append(byZone[l.Timezone], l)
	}

	planned := make([]Instance, 0)
	for tz, group := range byZone {
		planned = append(planned, PlanRoll(group, profiles.Today(now, tz), r.horizonDays)...)
	}
	return planned
}

// Run is the cron entry point.
func (r *Roller) Run() {
	if _, err := r.Roll(context.Background(), time.Now()); err != nil {
		log.Errorf("schedule roll: %s", err)
	}
}
