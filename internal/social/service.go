package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/2beens/fitnessxs/internal/events"
	"github.com/2beens/fitnessxs/internal/telemetry/metrics"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=social

type socialRepo interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	AreFriends(ctx context.Context, userID, otherID string) (bool, error)
	PendingRequestExists(ctx context.Context, senderID, receiverID string) (bool, error)
	CreateRequest(ctx context.Context, senderID, receiverID string) (*FriendRequest, error)
	GetRequest(ctx context.Context, requestID string) (*FriendRequest, error)
	PendingRequests(ctx context.Context, userID string, incoming bool) ([]FriendRequest, error)
	AcceptRequest(ctx context.Context, req FriendRequest) error
	RejectRequest(ctx context.Context, requestID string) error
	DeleteRequest(ctx context.Context, requestID string) error
	ListFriends(ctx context.Context, userID string) ([]Friend, error)
	RemoveFriend(ctx context.Context, userID, friendID string) (bool, error)
	FriendsWorkouts(ctx context.Context, userID string, day pkg.Date) ([]FriendWorkout, error)
	CreateInvite(ctx context.Context, senderID, receiverID string, message *string, day pkg.Date) (*WorkoutInvite, error)
	IncomingInvites(ctx context.Context, userID string, day pkg.Date) ([]WorkoutInvite, error)
	GetInvite(ctx context.Context, inviteID string) (*WorkoutInvite, error)
	SetInviteStatus(ctx context.Context, inviteID string, status Status) error
}

type todayResolver interface {
	Today(ctx context.Context, userID string) (pkg.Date, error)
}

type Service struct {
	repo           socialRepo
	today          todayResolver
	publisher      events.Publisher
	metricsManager *metrics.Manager
}

func NewService(
	repo socialRepo,
	today todayResolver,
	publisher events.Publisher,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		today:          today,
		publisher:      publisher,
		metricsManager: metricsManager,
	}
}

// SendFriendRequest checks the rules in order: not to self, receiver
// exists, not friends yet, no pending request either way.
func (s *Service) SendFriendRequest(ctx context.Context, userID, receiverID string) (_ *FriendRequest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.send-friend-request")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if receiverID == userID {
		return nil, ErrSelfRequest
	}
	if uuid.Validate(receiverID) != nil {
		return nil, ErrUserNotFound
	}

	exists, err := s.repo.UserExists(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("check receiver: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	friends, err := s.repo.AreFriends(ctx, userID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	incoming, err := s.repo.PendingRequestExists(ctx, receiverID, userID)
	if err != nil {
		return nil, fmt.Errorf("check incoming request: %w", err)
	}
	if incoming {
		return nil, ErrIncomingRequestExists
	}

	outgoing, err := s.repo.PendingRequestExists(ctx, userID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("check outgoing request: %w", err)
	}
	if outgoing {
		return nil, ErrRequestExists
	}

	req, err := s.repo.CreateRequest(ctx, userID, receiverID)
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterFriendRequests.WithLabelValues("sent").Inc()
	events.PublishAsync(ctx, s.publisher, events.Event{
		Type:       events.TypeFriendRequestSent,
		UserID:     receiverID,
		TargetID:   req.ID,
		Attributes: map[string]string{"senderId": userID},
	})
	return req, nil
}

func (s *Service) IncomingRequests(ctx context.Context, userID string) ([]FriendRequest, error) {
	return s.repo.PendingRequests(ctx, userID, true)
}

func (s *Service) OutgoingRequests(ctx context.Context, userID string) ([]FriendRequest, error) {
	return s.repo.PendingRequests(ctx, userID, false)
}

// receivedPendingRequest loads a request the user may answer.
func (s *Service) receivedPendingRequest(ctx context.Context, userID, requestID string) (*FriendRequest, error) {
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ReceiverID != userID {
		return nil, ErrNotRequestReceiver
	}
	if req.Status != StatusPending {
		return nil, ErrRequestProcessed
	}
	return req, nil
}

func (s *Service) AcceptFriendRequest(ctx context.Context, userID, requestID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.accept-friend-request")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req, err := s.receivedPendingRequest(ctx, userID, requestID)
	if err != nil {
		return err
	}
	if err := s.repo.AcceptRequest(ctx, *req); err != nil {
		return err
	}

	s.metricsManager.CounterFriendRequests.WithLabelValues("accepted").Inc()
	log.Debugf("friend request [%s] accepted: %s <-> %s", req.ID, req.SenderID, req.ReceiverID)
	events.PublishAsync(ctx, s.publisher, events.Event{
		Type:       events.TypeFriendRequestAccepted,
		UserID:     req.SenderID,
		TargetID:   req.ID,
		Attributes: map[string]string{"acceptedBy": userID},
	})
	return nil
}

func (s *Service) RejectFriendRequest(ctx context.Context, userID, requestID string) error {
	req, err := s.receivedPendingRequest(ctx, userID, requestID)
	if err != nil {
		return err
	}
	if err := s.repo.RejectRequest(ctx, req.ID); err != nil {
		return err
	}
	s.metricsManager.CounterFriendRequests.WithLabelValues("rejected").Inc()
	return nil
}

func (s *Service) CancelFriendRequest(ctx context.Context, userID, requestID string) error {
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.SenderID != userID {
		return ErrNotRequestSender
	}
	if req.Status != StatusPending {
		return ErrRequestProcessed
	}
	if err := s.repo.DeleteRequest(ctx, req.ID); err != nil {
		return err
	}
	s.metricsManager.CounterFriendRequests.WithLabelValues("cancelled").Inc()
	return nil
}

func (s *Service) ListFriends(ctx context.Context, userID string) ([]Friend, error) {
	return s.repo.ListFriends(ctx, userID)
}

func (s *Service) RemoveFriend(ctx context.Context, userID, friendID string) error {
	removed, err := s.repo.RemoveFriend(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFriends
	}
	return nil
}

func (s *Service) FriendsTodayWorkouts(ctx context.Context, userID string) ([]FriendWorkout, error) {
	today, err := s.today.Today(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}
	return s.repo.FriendsWorkouts(ctx, userID, today)
}

func (s *Service) SendWorkoutInvite(ctx context.Context, userID, receiverID, message string) (_ *WorkoutInvite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.send-workout-invite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if receiverID == userID {
		return nil, ErrSelfRequest
	}
	if uuid.Validate(receiverID) != nil {
		return nil, ErrNotFriends
	}

	friends, err := s.repo.AreFriends(ctx, userID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if !friends {
		return nil, ErrNotFriends
	}

	today, err := s.today.Today(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}

	var msg *string
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		msg = &trimmed
	}
	invite, err := s.repo.CreateInvite(ctx, userID, receiverID, msg, today)
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterWorkoutInvites.Inc()
	events.PublishAsync(ctx, s.publisher, events.Event{
		Type:     events.TypeWorkoutInviteSent,
		UserID:   receiverID,
		TargetID: invite.ID,
		Attributes: map[string]string{
			"senderId":   userID,
			"inviteDate": today.String(),
		},
	})
	return invite, nil
}

func (s *Service) IncomingWorkoutInvites(ctx context.Context, userID string) ([]WorkoutInvite, error) {
	today, err := s.today.Today(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}
	return s.repo.IncomingInvites(ctx, userID, today)
}

// RespondToWorkoutInvite lets the receiver accept or reject a pending invite.
func (s *Service) RespondToWorkoutInvite(ctx context.Context, userID, inviteID string, status Status) error {
	if status != StatusAccepted && status != StatusRejected {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	invite, err := s.repo.GetInvite(ctx, inviteID)
	if err != nil {
		return err
	}
	if invite.ReceiverID != userID {
		return ErrNotInviteReceiver
	}
	if invite.Status != StatusPending {
		return ErrInviteProcessed
	}
	return s.repo.SetInviteStatus(ctx, invite.ID, status)
}
