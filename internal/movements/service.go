package movements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitnessxs/internal/cache"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=movements

const cacheNamespace = "movements"

var ErrInvalidMovement = errors.New("invalid movement")

type movementsRepo interface {
	List(ctx context.Context, userID string, params ListParams) ([]Movement, error)
	Get(ctx context.Context, userID, id string) (*Movement, error)
	Create(ctx context.Context, ownerID string, payload CreatePayload) (*Movement, error)
}

type Service struct {
	repo     movementsRepo
	cache    *cache.QueryCache
	cacheTTL time.Duration
}

func NewService(repo movementsRepo, queryCache *cache.QueryCache, cacheTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		cache:    queryCache,
		cacheTTL: cacheTTL,
	}
}

func (s *Service) List(ctx context.Context, userID string, params ListParams) ([]Movement, error) {
	params.Search = strings.TrimSpace(params.Search)
	key := fmt.Sprintf("%s|%s|%s|%s", userID, strings.ToLower(params.Search), params.CategoryID, params.Equipment)
	return cache.Fetch(ctx, s.cache, cacheNamespace, key, s.cacheTTL, func(ctx context.Context) ([]Movement, error) {
		return s.repo.List(ctx, userID, params)
	})
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Movement, error) {
	return s.repo.Get(ctx, userID, strings.TrimSpace(id))
}

func (s *Service) CreateCustom(ctx context.Context, ownerID string, payload CreatePayload) (*Movement, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidMovement)
	}
	payload.CategoryID = emptyToNil(payload.CategoryID)
	if payload.CategoryID != nil && !validCategory(*payload.CategoryID) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidMovement, *payload.CategoryID)
	}
	payload.Equipment = emptyToNil(payload.Equipment)
	if payload.Equipment != nil && !Equipment(*payload.Equipment).Valid() {
		return nil, fmt.Errorf("%w: unknown equipment %q", ErrInvalidMovement, *payload.Equipment)
	}
	payload.Difficulty = emptyToNil(payload.Difficulty)
	if payload.Difficulty != nil && !Difficulty(*payload.Difficulty).Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidMovement, *payload.Difficulty)
	}

	m, err := s.repo.Create(ctx, ownerID, payload)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(cacheNamespace)
	return m, nil
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
