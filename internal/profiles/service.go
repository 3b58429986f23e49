package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=profiles

const (
	// no 0/O and 1/I, codes are read out loud and typed by hand
	userCodeAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	userCodeLength     = 8
	userCodeMaxRetries = 5
)

var ErrInvalidProfile = errors.New("invalid profile")

type profilesRepo interface {
	Create(ctx context.Context, p Profile) error
	Get(ctx context.Context, userID string) (*Profile, error)
	GetByCode(ctx context.Context, code string) (*Profile, error)
	Update(ctx context.Context, userID string, input ProfileInput) (*Profile, error)
	SetTheme(ctx context.Context, userID string, theme Theme) error
	Timezone(ctx context.Context, userID string) (string, error)
}

type Service struct {
	repo         profilesRepo
	now          func() time.Time
	generateCode func() (string, error)
}

func NewService(repo profilesRepo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		generateCode: func() (string, error) {
			return pkg.GenerateCode(userCodeAlphabet, userCodeLength)
		},
	}
}

// EnsureProfile creates the default profile of a user if there is none yet.
func (s *Service) EnsureProfile(ctx context.Context, userID, email string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.ensure")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.repo.Get(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return err
	}

	displayName := email
	if at := strings.Index(email, "@"); at > 0 {
		displayName = email[:at]
	}

	for attempt := 1; attempt <= userCodeMaxRetries; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return fmt.Errorf("generate user code: %w", err)
		}

		err = s.repo.Create(ctx, Profile{
			ID:           userID,
			DisplayName:  displayName,
			Mail:         email,
			Timezone:     DefaultTimezone,
			TrainingDays: []pkg.TrainingDay{},
			Theme:        ThemeSystem,
			UserCode:     code,
		})
		switch {
		case err == nil:
			log.Debugf("profile created for user [%s] with code [%s]", userID, code)
			return nil
		case errors.Is(err, ErrProfileExists):
			// created concurrently by another login
			return nil
		case errors.Is(err, ErrUserCodeTaken):
			log.Tracef("user code [%s] taken, attempt %d", code, attempt)
			continue
		default:
			return fmt.Errorf("create profile: %w", err)
		}
	}

	return fmt.Errorf("create profile: %w after %d attempts", ErrUserCodeTaken, userCodeMaxRetries)
}

func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.Get(ctx, userID)
}

func (s *Service) Upsert(ctx context.Context, userID string, input ProfileInput) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.DisplayName == "" {
		return nil, fmt.Errorf("%w: display name is required", ErrInvalidProfile)
	}

	input.Timezone = strings.TrimSpace(input.Timezone)
	if input.Timezone == "" {
		input.Timezone = DefaultTimezone
	}
	if _, err := time.LoadLocation(input.Timezone); err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidProfile, input.Timezone)
	}

	days, err := pkg.ValidateTrainingDays(input.TrainingDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProfile, err)
	}
	input.TrainingDays = days

	if err := s.EnsureProfile(ctx, userID, input.Email); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, userID, input)
}

func (s *Service) SetTheme(ctx context.Context, userID string, theme Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidProfile, string(theme))
	}
	return s.repo.SetTheme(ctx, userID, theme)
}

// SearchByCode returns nil, nil when no profile has the code.
func (s *Service) SearchByCode(ctx context.Context, code string) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.search-by-code")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	p, err := s.repo.GetByCode(ctx, code)
	if errors.Is(err, ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	summary := p.Summary()
	return &summary, nil
}

// Today returns the current day in the user's timezone.
func (s *Service) Today(ctx context.Context, userID string) (pkg.Date, error) {
	tz, err := s.repo.Timezone(ctx, userID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return pkg.Date{}, err
	}
	return Today(s.now(), tz), nil
}
