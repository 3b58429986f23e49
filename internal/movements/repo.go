package movements

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitnessxs/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrMovementNotFound = errors.New("movement not found")

const movementColumns = `id::text, name, category_id, equipment, difficulty, COALESCE(instructions, ''),
	COALESCE(video_url, ''), COALESCE(image_url, ''), is_custom, owner_id::text, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanMovement(row pgx.Row) (*Movement, error) {
	var (
		m          Movement
		equipment  *string
		difficulty *string
	)
	if err := row.Scan(
		&m.ID, &m.Name, &m.CategoryID, &equipment, &difficulty, &m.Instructions,
		&m.VideoURL, &m.ImageURL, &m.IsCustom, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if equipment != nil {
		e := Equipment(*equipment)
		m.Equipment = &e
	}
	if difficulty != nil {
		d := Difficulty(*difficulty)
		m.Difficulty = &d
	}
	if m.CategoryID != nil {
		m.CategoryLabel = CategoryLabel(*m.CategoryID)
	} else {
		m.CategoryLabel = generalCategoryLabel
	}
	return &m, nil
}

// List returns the built-in movements and the custom ones of the user, by name.
func (r *Repo) List(ctx context.Context, userID string, params ListParams) (_ []Movement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.movements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("search", params.Search),
		attribute.String("category", params.CategoryID),
		attribute.String("equipment", params.Equipment),
	)

	query := `SELECT ` + movementColumns + ` FROM movement
		WHERE (is_custom = FALSE OR owner_id = $1)`
	args := []any{userID}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if params.CategoryID != "" {
		args = append(args, params.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if params.Equipment != "" {
		args = append(args, params.Equipment)
		query += fmt.Sprintf(" AND equipment = $%d", len(args))
	}
	query += " ORDER BY name ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("movements.count", len(movements)))
	return movements, nil
}

// Get returns a built-in movement or a custom one owned by the user.
func (r *Repo) Get(ctx context.Context, userID, id string) (_ *Movement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.movements.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	if uuid.Validate(id) != nil {
		return nil, ErrMovementNotFound
	}

	m, err := scanMovement(r.db.QueryRow(
		ctx,
		`SELECT `+movementColumns+` FROM movement
			WHERE id = $1 AND (is_custom = FALSE OR owner_id = $2);`,
		id, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMovementNotFound
	}
	return m, err
}

func (r *Repo) Create(ctx context.Context, ownerID string, payload CreatePayload) (_ *Movement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.movements.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	id := uuid.NewString()
	span.SetAttributes(attribute.String("id", id))

	return scanMovement(r.db.QueryRow(
		ctx,
		`INSERT INTO movement
				(id, name, category_id, equipment, difficulty, instructions, video_url, is_custom, owner_id)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), TRUE, $8)
			RETURNING `+movementColumns+`;`,
		id, payload.Name, payload.CategoryID, payload.Equipment, payload.Difficulty,
		payload.Instructions, payload.VideoURL, ownerID,
	))
}
