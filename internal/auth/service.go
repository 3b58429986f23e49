package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

const minPasswordLen = 8

var (
	ErrInvalidEmail     = errors.New("invalid email")
	ErrWeakPassword     = fmt.Errorf("password must have at least %d characters", minPasswordLen)
	ErrWrongCredentials = errors.New("wrong credentials")
)

type usersRepo interface {
	Add(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type sessionStore interface {
	Create(ctx context.Context, userID string, createdAt time.Time) (string, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, userID, sessionID string) (bool, error)
}

// profileEnsurer creates the profile of a user the first time it is needed.
type profileEnsurer interface {
	EnsureProfile(ctx context.Context, userID, email string) error
}

type LoginResult struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Service struct {
	users    usersRepo
	sessions sessionStore
	tokens   *TokenIssuer
	profiles profileEnsurer
	now      func() time.Time
	// hashing with the production bcrypt cost is slow, tests swap it
	hashPassword func(password string) (string, error)
}

func NewService(
	users usersRepo,
	sessions sessionStore,
	tokens *TokenIssuer,
	profiles profileEnsurer,
) *Service {
	return &Service{
		users:        users,
		sessions:     sessions,
		tokens:       tokens,
		profiles:     profiles,
		now:          time.Now,
		hashPassword: pkg.HashPassword,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, email, password string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email = NormalizeEmail(email)
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Add(ctx, user); err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}

	if err := s.profiles.EnsureProfile(ctx, user.ID, user.Email); err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	return &user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (_ *LoginResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrWrongCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", user.ID)
		return nil, ErrWrongCredentials
	}

	// profiles of accounts created before onboarding existed
	if err := s.profiles.EnsureProfile(ctx, user.ID, user.Email); err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	sessionID, err := s.sessions.Create(ctx, user.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, sessionID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout drops the session behind the token. Returns false if it was already gone.
func (s *Service) Logout(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return false, err
	}

	return s.sessions.Delete(ctx, claims.UserID, claims.SessionID)
}
