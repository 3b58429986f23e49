package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Upsert(ctx context.Context, userID string, day pkg.Date, steps int, source string) (_ *DailySteps, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.steps.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day.String()), attribute.Int("steps", steps))

	ds := &DailySteps{}
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO daily_steps (user_id, day, steps, source, updated_at)
			VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (user_id, day) DO UPDATE SET
				steps = EXCLUDED.steps,
				source = EXCLUDED.source,
				updated_at = now()
			RETURNING day, steps, source, updated_at;`,
		userID, day, steps, source,
	).Scan(&ds.Day, &ds.Steps, &ds.Source, &ds.UpdatedAt); err != nil {
		return nil, upsertError(err)
	}
	return ds, nil
}

func upsertError(err error) error {
	if pkg.IsCheckViolationError(err) {
		return fmt.Errorf("%w: violates %s", ErrInvalidSteps, pkg.ViolatedConstraint(err))
	}
	return err
}

// Get returns nil when nothing was reported for the day.
func (r *Repo) Get(ctx context.Context, userID string, day pkg.Date) (_ *DailySteps, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.steps.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ds := &DailySteps{}
	err = r.db.QueryRow(
		ctx,
		`SELECT day, steps, source, updated_at FROM daily_steps WHERE user_id = $1 AND day = $2;`,
		userID, day,
	).Scan(&ds.Day, &ds.Steps, &ds.Source, &ds.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (r *Repo) Range(ctx context.Context, userID string, from, to pkg.Date) (_ []DailySteps, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.steps.range")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT day, steps, source, updated_at FROM daily_steps
			WHERE user_id = $1 AND day BETWEEN $2 AND $3
			ORDER BY day ASC;`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]DailySteps, 0)
	for rows.Next() {
		var ds DailySteps
		if err := rows.Scan(&ds.Day, &ds.Steps, &ds.Source, &ds.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan daily steps: %w", err)
		}
		days = append(days, ds)
	}
	return days, rows.Err()
}
