package profiles

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

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrUserCodeTaken   = errors.New("user code taken")
)

const profileColumns = `id::text, COALESCE(display_name, ''), COALESCE(avatar_url, ''), COALESCE(mail, ''),
	COALESCE(goal, ''), COALESCE(goal_description, ''), timezone, training_days,
	onboarding_complete, theme, user_code, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var (
		p            Profile
		trainingDays []string
		theme        string
	)
	if err := row.Scan(
		&p.ID, &p.DisplayName, &p.AvatarURL, &p.Mail,
		&p.Goal, &p.GoalDescription, &p.Timezone, &trainingDays,
		&p.OnboardingComplete, &theme, &p.UserCode, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.TrainingDays = stringsToTrainingDays(trainingDays)
	p.Theme = Theme(theme)
	return &p, nil
}

func (r *Repo) Create(ctx context.Context, p Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", p.ID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO profile
				(id, display_name, mail, timezone, training_days, onboarding_complete, theme, user_code)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		p.ID, p.DisplayName, p.Mail, p.Timezone, trainingDaysToStrings(p.TrainingDays),
		p.OnboardingComplete, string(p.Theme), p.UserCode,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			if pkg.ViolatedConstraint(err) == "profile_pkey" {
				return ErrProfileExists
			}
			return ErrUserCodeTaken
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	p, err := scanProfile(r.db.QueryRow(
		ctx,
		`SELECT `+profileColumns+` FROM profile WHERE id = $1;`,
		userID,
	))
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *Repo) GetByCode(ctx context.Context, code string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get-by-code")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := scanProfile(r.db.QueryRow(
		ctx,
		`SELECT `+profileColumns+` FROM profile WHERE user_code = $1;`,
		code,
	))
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *Repo) Update(ctx context.Context, userID string, input ProfileInput) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	onboardingComplete := true
	if input.OnboardingComplete != nil {
		onboardingComplete = *input.OnboardingComplete
	}

	p, err := scanProfile(r.db.QueryRow(
		ctx,
		`UPDATE profile SET
				display_name = $2, mail = $3, goal = $4, goal_description = $5, timezone = $6,
				training_days = $7, avatar_url = NULLIF($8, ''), onboarding_complete = $9, updated_at = now()
			WHERE id = $1
			RETURNING `+profileColumns+`;`,
		userID, input.DisplayName, input.Email, input.Goal, input.GoalDescription, input.Timezone,
		trainingDaysToStrings(input.TrainingDays), input.AvatarURL, onboardingComplete,
	))
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

func (r *Repo) SetTheme(ctx context.Context, userID string, theme Theme) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.set-theme")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("theme", string(theme)))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE profile SET theme = $2, updated_at = now() WHERE id = $1;`,
		userID, string(theme),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *Repo) Timezone(ctx context.Context, userID string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.timezone")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var tz string
	err = r.db.QueryRow(ctx, `SELECT timezone FROM profile WHERE id = $1;`, userID).Scan(&tz)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return "", ErrProfileNotFound
		}
		return "", err
	}
	return tz, nil
}
