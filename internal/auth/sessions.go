package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL          = 24 * 7 * time.Hour
	sessionKeyPrefix    = "fitnessxs-session||"
	userSessionsPrefix  = "fitnessxs-user-sessions||"
	cleanupScanPageSize = 100
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// SessionStore keeps login sessions in redis. A session is stored as
// "<created at unix>|<user id>" under its own key, and its id is tracked
// in a set per user so expired sessions can be cleaned up.
type SessionStore struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for session ids (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewSessionStore(ttl time.Duration, redisClient *redis.Client) *SessionStore {
	return &SessionStore{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func userSessionsKey(userID string) string {
	return userSessionsPrefix + userID
}

func sessionValue(userID string, createdAt time.Time) string {
	return fmt.Sprintf("%d|%s", createdAt.Unix(), userID)
}

func parseSessionValue(id, val string) (*Session, error) {
	createdAtStr, userID, ok := strings.Cut(val, "|")
	if !ok || userID == "" {
		return nil, fmt.Errorf("malformed session %s", id)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session %s created at: %w", id, err)
	}
	return &Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

func (s *SessionStore) Create(ctx context.Context, userID string, createdAt time.Time) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessionID, err := s.RandStringFunc(32)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	if err := s.redisClient.Set(ctx, sessionKeyPrefix+sessionID, sessionValue(userID, createdAt), s.ttl).Err(); err != nil {
		return "", err
	}

	if err := s.redisClient.SAdd(ctx, userSessionsKey(userID), sessionID).Err(); err != nil {
		return "", err
	}

	return sessionID, nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	val, err := s.redisClient.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return parseSessionValue(sessionID, val)
}

// Delete removes the session of the user and reports whether it existed.
func (s *SessionStore) Delete(ctx context.Context, userID, sessionID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	deleted, err := s.redisClient.Del(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}

	if err := s.redisClient.SRem(ctx, userSessionsKey(userID), sessionID).Err(); err != nil {
		return false, err
	}

	return deleted > 0, nil
}

// ScanAndClean will run through the session sets of all users, check the TTL, and clean them if old
func (s *SessionStore) ScanAndClean(ctx context.Context) int {
	var (
		cursor  uint64
		cleaned int
		users   int
	)
	for {
		keys, next, err := s.redisClient.Scan(ctx, cursor, userSessionsPrefix+"*", cleanupScanPageSize).Result()
		if err != nil {
			log.Errorf("!!! sessions, scan and clean, scan user sets: %s", err)
			return cleaned
		}
		for _, key := range keys {
			users++
			cleaned += s.cleanUserSessions(ctx, key)
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	if users == 0 {
		log.Debugln("=> sessions, scan and clean abort, no sessions")
		return 0
	}

	log.Debugf("=> sessions, scan and clean done, %d users, removed %d", users, cleaned)
	return cleaned
}

func (s *SessionStore) cleanUserSessions(ctx context.Context, setKey string) int {
	sessionIDs, err := s.redisClient.SMembers(ctx, setKey).Result()
	if err != nil {
		log.Errorf("!!! sessions, scan and clean, get sessions of %s: %s", setKey, err)
		return 0
	}

	var toRemove []string
	for _, id := range sessionIDs {
		val, err := s.redisClient.Get(ctx, sessionKeyPrefix+id).Result()
		if errors.Is(err, redis.Nil) {
			// key already expired in redis, only the set entry is left
			toRemove = append(toRemove, id)
			continue
		}
		if err != nil {
			log.Errorf("=> sessions, scan and clean %s: %s", id, err)
			continue
		}

		session, err := parseSessionValue(id, val)
		if err != nil {
			log.Errorf("=> sessions, scan and clean: %s", err)
			toRemove = append(toRemove, id)
			continue
		}

		if time.Since(session.CreatedAt) > s.ttl {
			toRemove = append(toRemove, id)
		}
	}

	cleaned := 0
	for _, id := range toRemove {
		if err := s.redisClient.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
			log.Errorf("=> sessions, clean %s: %s", id, err)
			continue
		}
		if err := s.redisClient.SRem(ctx, setKey, id).Err(); err != nil {
			log.Errorf("=> sessions, clean %s: %s", id, err)
			continue
		}
		cleaned++
	}
	return cleaned
}
