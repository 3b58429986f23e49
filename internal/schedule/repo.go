package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrScheduleNotFound = errors.New("schedule instance not found")
	ErrInvalidStatus    = errors.New("invalid schedule status")
)

const instanceSelect = `SELECT si.id::text, si.program_id::text, si.workout_id::text, si.scheduled_date,
		si.status, si.auto_shifted_from, p.title, pw.title, pw.day_of_week
	FROM schedule_instance si
		JOIN program p ON p.id = si.program_id
		JOIN program_workout pw ON pw.id = si.workout_id`

// BatchSender is satisfied by both the pool and a transaction.
type BatchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type SkipResult struct {
	ProgramID string  `json:"programId"`
	Shifted   int     `json:"shifted"`
	Shifts    []Shift `json:"shifts"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanInstances(rows pgx.Rows) ([]Instance, error) {
	defer rows.Close()
	instances := make([]Instance, 0)
	for rows.Next() {
		var (
			inst   Instance
			status string
		)
		if err := rows.Scan(
			&inst.ID, &inst.ProgramID, &inst.WorkoutID, &inst.ScheduledDate,
			&status, &inst.AutoShiftedFrom, &inst.ProgramTitle, &inst.WorkoutTitle, &inst.DayOfWeek,
		); err != nil {
			return nil, fmt.Errorf("scan schedule instance: %w", err)
		}
		inst.Status = Status(status)
		instances = append(instances, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *Repo) TodayPlan(ctx context.Context, userID string, today pkg.Date) (_ []Instance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.today-plan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("today", today.String()))

	rows, err := r.db.Query(
		ctx,
		instanceSelect+`
		WHERE p.owner_id = $1 AND si.scheduled_date = $2
		ORDER BY p.title, pw.order_index;`,
		userID, today,
	)
	if err != nil {
		return nil, err
	}
	return scanInstances(rows)
}

// History returns the user's instances dated within [from, to], oldest first.
func (r *Repo) History(ctx context.Context, userID string, from, to pkg.Date) (_ []Instance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	)

	rows, err := r.db.Query(
		ctx,
		instanceSelect+`
		WHERE p.owner_id = $1 AND si.scheduled_date BETWEEN $2 AND $3
		ORDER BY si.scheduled_date, pw.order_index;`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	return scanInstances(rows)
}

func (r *Repo) UpdateStatus(ctx context.Context, userID, scheduleID string, status Status) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.update-status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("schedule.id", scheduleID),
		attribute.String("status", string(status)),
	)

	if !status.Valid() {
		return ErrInvalidStatus
	}
	if uuid.Validate(scheduleID) != nil {
		return ErrScheduleNotFound
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE schedule_instance si SET status = $3
			FROM program p
			WHERE si.id = $2 AND p.id = si.program_id AND p.owner_id = $1;`,
		userID, scheduleID, string(status),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// SkipAndShift marks the instance skipped and moves every other pending instance
// of the same program dated on or after the skipped date one day forward, in one transaction.
func (r *Repo) SkipAndShift(ctx context.Context, userID, scheduleID string) (_ *SkipResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.skip-and-shift")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("schedule.id", scheduleID))

	if uuid.Validate(scheduleID) != nil {
		return nil, ErrScheduleNotFound
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var (
		programID   string
		skippedDate pkg.Date
	)
	err = tx.QueryRow(
		ctx,
		`SELECT si.program_id::text, si.scheduled_date
			FROM schedule_instance si JOIN program p ON p.id = si.program_id
			WHERE si.id = $1 AND p.owner_id = $2
			FOR UPDATE OF si;`,
		scheduleID, userID,
	).Scan(&programID, &skippedDate)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("get schedule instance: %w", err)
	}
	span.SetAttributes(attribute.String("skipped.date", skippedDate.String()))

	if _, err := tx.Exec(
		ctx,
		`UPDATE schedule_instance SET status = 'skipped' WHERE id = $1;`,
		scheduleID,
	); err != nil {
		return nil, fmt.Errorf("mark skipped: %w", err)
	}

	pending, err := pendingOfProgram(ctx, tx, programID)
	if err != nil {
		return nil, err
	}

	shifts := ShiftPending(pending, scheduleID, skippedDate)
	if err := applyShifts(ctx, tx, shifts); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	res := &SkipResult{ProgramID: programID, Shifted: len(shifts), Shifts: shifts}
	span.SetAttributes(attribute.Int("shifted", res.Shifted))
	return res, nil
}

// pendingOfProgram locks and returns the pending instances of the program, oldest first.
func pendingOfProgram(ctx context.Context, tx pgx.Tx, programID string) ([]Instance, error) {
	rows, err := tx.Query(
		ctx,
		`SELECT id::text, scheduled_date, status
			FROM schedule_instance
			WHERE program_id = $1 AND status = 'pending'
			ORDER BY scheduled_date
			FOR UPDATE;`,
		programID,
	)
	if err != nil {
		return nil, fmt.Errorf("get pending instances: %w", err)
	}
	defer rows.Close()

	pending := make([]Instance, 0)
	for rows.Next() {
		inst := Instance{ProgramID: programID}
		var status string
		if err := rows.Scan(&inst.ID, &inst.ScheduledDate, &status); err != nil {
			return nil, fmt.Errorf("scan pending instance: %w", err)
		}
		inst.Status = Status(status)
		pending = append(pending, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pending, nil
}

func applyShifts(ctx context.Context, db BatchSender, shifts []Shift) (err error) {
	if len(shifts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, sh := range shifts {
		batch.Queue(
			`UPDATE schedule_instance SET scheduled_date = $2, auto_shifted_from = $3 WHERE id = $1;`,
			sh.ID, sh.NewDate, sh.OldDate,
		)
	}

	results := db.SendBatch(ctx, batch)
	defer func() {
		if closeErr := results.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for range shifts {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("shift instance: %w", err)
		}
	}
	return nil
}

// LatestPerWorkout lists the workouts of active programs with their latest scheduled date
// and the timezone of the program owner.
func (r *Repo) LatestPerWorkout(ctx context.Context) (_ []LatestInstance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.latest-per-workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT pw.program_id::text, pw.id::text, pw.day_of_week, MAX(si.scheduled_date), COALESCE(pr.timezone, '')
			FROM program_workout pw
				JOIN program p ON p.id = pw.program_id
				LEFT JOIN profile pr ON pr.id = p.owner_id
				LEFT JOIN schedule_instance si ON si.workout_id = pw.id
			WHERE p.is_active = TRUE
			GROUP BY pw.program_id, pw.id, pw.day_of_week, pr.timezone;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := make([]LatestInstance, 0)
	for rows.Next() {
		var l LatestInstance
		if err := rows.Scan(&l.ProgramID, &l.WorkoutID, &l.DayOfWeek, &l.Latest, &l.Timezone); err != nil {
			return nil, fmt.Errorf("scan latest instance: %w", err)
		}
		latest = append(latest, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return latest, nil
}

func (r *Repo) InsertInstances(ctx context.Context, instances []Instance) error {
	return InsertInstances(ctx, r.db, instances)
}

// InsertInstances writes the instances in one batch, on the pool or inside a transaction.
func InsertInstances(ctx context.Context, db BatchSender, instances []Instance) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.insert-instances")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("instances.count", len(instances)))

	if len(instances) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, inst := range instances {
		batch.Queue(
			`INSERT INTO schedule_instance (id, program_id, workout_id, scheduled_date, status)
				VALUES ($1, $2, $3, $4, $5);`,
			inst.ID, inst.ProgramID, inst.WorkoutID, inst.ScheduledDate, string(inst.Status),
		)
	}

	results := db.SendBatch(ctx, batch)
	defer func() {
		if closeErr := results.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for range instances {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert schedule instance: %w", err)
		}
	}
	return nil
}
