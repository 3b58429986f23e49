package programs

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitnessxs/internal/schedule"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrUnknownMovement = errors.New("unknown movement")
)

const programColumns = `p.id::text, p.owner_id::text, p.title, p.focus, p.training_days, p.is_active, p.created_at, p.updated_at`

const workoutColumns = `pw.id::text, pw.program_id::text, pw.day_of_week, pw.title, pw.order_index, pw.notes`

// execer is satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create stores the program with its workouts, one single block per
// workout, the exercises and the first week of the schedule, all in one
// transaction. The input is expected to be validated already.
func (r *Repo) Create(ctx context.Context, ownerID string, in ProgramInput, today pkg.Date) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	p := &Program{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        in.Title,
		Focus:        in.Focus,
		TrainingDays: in.TrainingDays(),
		IsActive:     true,
		Workouts:     make([]Workout, 0, len(in.Workouts)),
	}
	span.SetAttributes(attribute.String("id", p.ID))

	if err := tx.QueryRow(
		ctx,
		`INSERT INTO program (id, owner_id, title, focus, training_days, is_active)
			VALUES ($1, $2, $3, $4, $5, TRUE)
			RETURNING created_at, updated_at;`,
		p.ID, ownerID, p.Title, p.Focus, trainingDaysToStrings(p.TrainingDays),
	).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert program: %w", err)
	}

	slots := make([]schedule.WorkoutSlot, 0, len(in.Workouts))
	for i, wIn := range in.Workouts {
		dayIdx, err := wIn.Day.ToDayIndex()
		if err != nil {
			return nil, err
		}
		w := Workout{
			ID:         uuid.NewString(),
			ProgramID:  p.ID,
			DayOfWeek:  dayIdx,
			Day:        wIn.Day,
			Title:      wIn.Title,
			OrderIndex: i,
		}
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO program_workout (id, program_id, day_of_week, title, order_index)
				VALUES ($1, $2, $3, $4, $5);`,
			w.ID, w.ProgramID, w.DayOfWeek, w.Title, w.OrderIndex,
		); err != nil {
			return nil, fmt.Errorf("insert workout %s: %w", w.Day, err)
		}

		blockID, err := insertBlock(ctx, tx, w.ID, 0)
		if err != nil {
			return nil, err
		}
		for j, eIn := range wIn.Exercises {
			if _, err := insertExercise(ctx, tx, blockID, j, eIn); err != nil {
				return nil, err
			}
		}

		p.Workouts = append(p.Workouts, w)
		slots = append(slots, schedule.WorkoutSlot{
			ProgramID: p.ID,
			WorkoutID: w.ID,
			DayOfWeek: w.DayOfWeek,
		})
	}

	if err := schedule.InsertInstances(ctx, tx, schedule.GenerateInitial(slots, today)); err != nil {
		return nil, fmt.Errorf("initial schedule: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

func insertBlock(ctx context.Context, db execer, workoutID string, orderIndex int) (string, error) {
	blockID := uuid.NewString()
	if _, err := db.Exec(
		ctx,
		`INSERT INTO workout_block (id, workout_id, block_type, order_index) VALUES ($1, $2, $3, $4);`,
		blockID, workoutID, BlockTypeSingle, orderIndex,
	); err != nil {
		return "", fmt.Errorf("insert block: %w", err)
	}
	return blockID, nil
}

func insertExercise(ctx context.Context, db execer, blockID string, orderIndex int, in ExerciseInput) (*Exercise, error) {
	e := &Exercise{
		ID:           uuid.NewString(),
		BlockID:      blockID,
		MovementID:   in.MovementID,
		MovementName: in.MovementName,
		Sets:         in.Sets,
		Reps:         in.Reps,
		RestSeconds:  in.RestSeconds,
		Tempo:        in.Tempo,
		Note:         in.Note,
		OrderIndex:   orderIndex,
	}
	_, err := db.Exec(
		ctx,
		`INSERT INTO workout_exercise
				(id, block_id, movement_id, sets, reps, rest_seconds, tempo, note, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		e.ID, e.BlockID, e.MovementID, e.Sets, e.Reps, e.RestSeconds, e.Tempo, e.Note, e.OrderIndex,
	)
	if pkg.IsForeignKeyViolationError(err) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMovement, in.MovementID)
	}
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	return e, nil
}

func scanProgram(row pgx.Row) (*Program, error) {
	var (
		p    Program
		days []string
	)
	if err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Focus, &days, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.TrainingDays = stringsToTrainingDays(days)
	p.Workouts = make([]Workout, 0)
	return &p, nil
}

func scanWorkouts(rows pgx.Rows) ([]Workout, error) {
	defer rows.Close()
	workouts := make([]Workout, 0)
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.ProgramID, &w.DayOfWeek, &w.Title, &w.OrderIndex, &w.Notes); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		w.Day, _ = pkg.FromDayIndex(w.DayOfWeek)
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// List returns the programs of the owner, newest first, each with its workouts.
func (r *Repo) List(ctx context.Context, ownerID string) (_ []Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+programColumns+` FROM program p WHERE p.owner_id = $1 ORDER BY p.created_at DESC;`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := make([]Program, 0)
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		programs = append(programs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	wRows, err := r.db.Query(
		ctx,
		`SELECT `+workoutColumns+`
			FROM program_workout pw
				JOIN program p ON p.id = pw.program_id
			WHERE p.owner_id = $1
			ORDER BY pw.order_index ASC;`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	workouts, err := scanWorkouts(wRows)
	if err != nil {
		return nil, err
	}

	attachWorkouts(programs, workouts)
	span.SetAttributes(attribute.Int("programs.count", len(programs)))
	return programs, nil
}

func attachWorkouts(programs []Program, workouts []Workout) {
	byProgram := make(map[string][]Workout)
	for _, w := range workouts {
		byProgram[w.ProgramID] = append(byProgram[w.ProgramID], w)
	}
	for i := range programs {
		if ws, ok := byProgram[programs[i].ID]; ok {
			programs[i].Workouts = ws
		}
	}
}

// Detail returns the program with workouts, blocks and exercises.
func (r *Repo) Detail(ctx context.Context, ownerID, programID string) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.detail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", programID))

	if uuid.Validate(programID) != nil {
		return nil, ErrProgramNotFound
	}

	p, err := scanProgram(r.db.QueryRow(
		ctx,
		`SELECT `+programColumns+` FROM program p WHERE p.id = $1 AND p.owner_id = $2;`,
		programID, ownerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, err
	}

	wRows, err := r.db.Query(
		ctx,
		`SELECT `+workoutColumns+` FROM program_workout pw WHERE pw.program_id = $1 ORDER BY pw.order_index ASC;`,
		programID,
	)
	if err != nil {
		return nil, err
	}
	workouts, err := scanWorkouts(wRows)
	if err != nil {
		return nil, err
	}

	bRows, err := r.db.Query(
		ctx,
		`SELECT wb.id::text, wb.workout_id::text, wb.block_type, wb.order_index, wb.note
			FROM workout_block wb
				JOIN program_workout pw ON pw.id = wb.workout_id
			WHERE pw.program_id = $1
			ORDER BY wb.order_index ASC;`,
		programID,
	)
	if err != nil {
		return nil, err
	}
	defer bRows.Close()
	blocks := make([]Block, 0)
	for bRows.Next() {
		var b Block
		if err := bRows.Scan(&b.ID, &b.WorkoutID, &b.BlockType, &b.OrderIndex, &b.Note); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := bRows.Err(); err != nil {
		return nil, err
	}

	eRows, err := r.db.Query(
		ctx,
		`SELECT we.id::text, we.block_id::text, we.movement_id::text, m.name,
				we.sets, we.reps, we.rest_seconds, we.tempo, we.note, we.order_index
			FROM workout_exercise we
				JOIN workout_block wb ON wb.id = we.block_id
				JOIN program_workout pw ON pw.id = wb.workout_id
				JOIN movement m ON m.id = we.movement_id
			WHERE pw.program_id = $1
			ORDER BY we.order_index ASC;`,
		programID,
	)
	if err != nil {
		return nil, err
	}
	defer eRows.Close()
	exercises := make([]Exercise, 0)
	for eRows.Next() {
		var e Exercise
		if err := eRows.Scan(
			&e.ID, &e.BlockID, &e.MovementID, &e.MovementName,
			&e.Sets, &e.Reps, &e.RestSeconds, &e.Tempo, &e.Note, &e.OrderIndex,
		); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := eRows.Err(); err != nil {
		return nil, err
	}

	p.Workouts = assemble(workouts, blocks, exercises)
	return p, nil
}

// assemble nests exercises into blocks and blocks into workouts, keeping
// the order of each input slice.
func assemble(workouts []Workout, blocks []Block, exercises []Exercise) []Workout {
	exercisesByBlock := make(map[string][]Exercise)
	for _, e := range exercises {
		exercisesByBlock[e.BlockID] = append(exercisesByBlock[e.BlockID], e)
	}
	blocksByWorkout := make(map[string][]Block)
	for _, b := range blocks {
		b.Exercises = exercisesByBlock[b.ID]
		if b.Exercises == nil {
			b.Exercises = make([]Exercise, 0)
		}
		blocksByWorkout[b.WorkoutID] = append(blocksByWorkout[b.WorkoutID], b)
	}
	for i := range workouts {
		workouts[i].Blocks = blocksByWorkout[workouts[i].ID]
	}
	return workouts
}

// Delete removes the program, the database cascades to workouts, blocks,
// exercises and schedule instances.
func (r *Repo) Delete(ctx context.Context, ownerID, programID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", programID))

	if uuid.Validate(programID) != nil {
		return ErrProgramNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM program WHERE id = $1 AND owner_id = $2;`, programID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProgramNotFound
	}
	return nil
}

// AddExerciseToWorkout appends the exercise to the first block of the
// workout, creating a single block when the workout has none.
func (r *Repo) AddExerciseToWorkout(ctx context.Context, ownerID string, payload AddExercisePayload) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.add-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", payload.WorkoutID))

	if uuid.Validate(payload.WorkoutID) != nil {
		return nil, ErrWorkoutNotFound
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var workoutID string
	err = tx.QueryRow(
		ctx,
		`SELECT pw.id::text
			FROM program_workout pw
				JOIN program p ON p.id = pw.program_id
			WHERE pw.id = $1 AND p.owner_id = $2
			FOR UPDATE OF pw;`,
		payload.WorkoutID, ownerID,
	).Scan(&workoutID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}

	var blockID string
	err = tx.QueryRow(
		ctx,
		`SELECT id::text FROM workout_block WHERE workout_id = $1 ORDER BY order_index ASC LIMIT 1;`,
		workoutID,
	).Scan(&blockID)
	if errors.Is(err, pgx.ErrNoRows) {
		blockID, err = insertBlock(ctx, tx, workoutID, 0)
	}
	if err != nil {
		return nil, err
	}

	var orderIndex int
	if err := tx.QueryRow(
		ctx,
		`SELECT COALESCE(MAX(order_index) + 1, 0) FROM workout_exercise WHERE block_id = $1;`,
		blockID,
	).Scan(&orderIndex); err != nil {
		return nil, fmt.Errorf("next order index: %w", err)
	}

	e, err := insertExercise(ctx, tx, blockID, orderIndex, payload.ExerciseInput)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return e, nil
}

func trainingDaysToStrings(days []pkg.TrainingDay) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, string(d))
	}
	return out
}

func stringsToTrainingDays(days []string) []pkg.TrainingDay {
	out := make([]pkg.TrainingDay, 0, len(days))
	for _, d := range days {
		out = append(out, pkg.TrainingDay(d))
	}
	return out
}
