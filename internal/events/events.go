package events

import (
	"context"
	"time"
)

type Type string

const (
	TypeFriendRequestSent     Type = "friend_request.sent"
	TypeFriendRequestAccepted Type = "friend_request.accepted"
	TypeWorkoutInviteSent     Type = "workout_invite.sent"
	TypeScheduleShifted       Type = "schedule.skip_and_shift"
)

// Event is a domain event handed to the push notification consumer.
type Event struct {
	Type       Type              `json:"type"`
	UserID     string            `json:"userId"`
	TargetID   string            `json:"targetId,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
