package exerciselogs

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

var ErrMovementNotFound = errors.New("movement or schedule instance not found")

const logColumns = `l.id::text, l.user_id::text, l.movement_id::text, m.name, l.schedule_instance_id::text,
	l.log_date, l.sets_completed, l.reps_completed, l.weight_kg::float8, l.duration_seconds, l.note,
	l.difficulty_rating, l.logged_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanLog(row pgx.Row) (*Log, error) {
	var l Log
	if err := row.Scan(
		&l.ID, &l.UserID, &l.MovementID, &l.MovementName, &l.ScheduleInstanceID,
		&l.LogDate, &l.SetsCompleted, &l.RepsCompleted, &l.WeightKg, &l.DurationSeconds, &l.Note,
		&l.DifficultyRating, &l.LoggedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanLogs(rows pgx.Rows) ([]Log, error) {
	defer rows.Close()
	logs := make([]Log, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// Upsert stores the log of the day, replacing an earlier log of the same
// movement on the same day.
func (r *Repo) Upsert(ctx context.Context, userID string, payload CreatePayload, logDate pkg.Date) (_ *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercise-logs.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("movement.id", payload.MovementID))

	if uuid.Validate(payload.MovementID) != nil {
		return nil, ErrMovementNotFound
	}

	l, err := scanLog(r.db.QueryRow(
		ctx,
		`WITH upserted AS (
			INSERT INTO exercise_log
				(id, user_id, movement_id, schedule_instance_id, log_date, sets_completed, reps_completed,
				 weight_kg, duration_seconds, note, difficulty_rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (user_id, movement_id, log_date) DO UPDATE SET
				schedule_instance_id = EXCLUDED.schedule_instance_id,
				sets_completed = EXCLUDED.sets_completed,
				reps_completed = EXCLUDED.reps_completed,
				weight_kg = EXCLUDED.weight_kg,
				duration_seconds = EXCLUDED.duration_seconds,
				note = EXCLUDED.note,
				difficulty_rating = EXCLUDED.difficulty_rating,
				logged_at = now()
			RETURNING *
		)
		SELECT `+logColumns+` FROM upserted l JOIN movement m ON m.id = l.movement_id;`,
		uuid.NewString(), userID, payload.MovementID, payload.ScheduleInstanceID, logDate,
		payload.SetsCompleted, payload.RepsCompleted, payload.WeightKg, payload.DurationSeconds,
		payload.Note, payload.DifficultyRating,
	))
	if err != nil {
		return nil, upsertError(err)
	}
	return l, nil
}

func upsertError(err error) error {
	switch {
	case pkg.IsForeignKeyViolationError(err):
		return ErrMovementNotFound
	case pkg.IsCheckViolationError(err):
		return fmt.Errorf("%w: violates %s", ErrInvalidLog, pkg.ViolatedConstraint(err))
	}
	return err
}

// MovementLogs returns the latest logs of one movement, newest first.
func (r *Repo) MovementLogs(ctx context.Context, userID, movementID string, limit int) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercise-logs.movement")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("movement.id", movementID))

	if uuid.Validate(movementID) != nil {
		return make([]Log, 0), nil
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+logColumns+`
			FROM exercise_log l
				JOIN movement m ON m.id = l.movement_id
			WHERE l.user_id = $1 AND l.movement_id = $2
			ORDER BY l.log_date DESC, l.logged_at DESC
			LIMIT $3;`,
		userID, movementID, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanLogs(rows)
}

// UserLogs returns every log of the user, newest first.
func (r *Repo) UserLogs(ctx context.Context, userID string) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercise-logs.user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+logColumns+`
			FROM exercise_log l
				JOIN movement m ON m.id = l.movement_id
			WHERE l.user_id = $1
			ORDER BY l.logged_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	logs, err := scanLogs(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("logs.count", len(logs)))
	return logs, nil
}

// ChartLogs returns the latest logs of one movement, oldest first.
func (r *Repo) ChartLogs(ctx context.Context, userID, movementID string, limit int) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercise-logs.chart")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("movement.id", movementID))

	if uuid.Validate(movementID) != nil {
		return make([]Log, 0), nil
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT * FROM (
			SELECT `+logColumns+`
				FROM exercise_log l
					JOIN movement m ON m.id = l.movement_id
				WHERE l.user_id = $1 AND l.movement_id = $2
				ORDER BY l.log_date DESC
				LIMIT $3
		) latest ORDER BY log_date ASC;`,
		userID, movementID, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanLogs(rows)
}
