package social

import (
	"errors"
	"time"

	"github.com/2beens/fitnessxs/internal/profiles"
	"github.com/2beens/fitnessxs/pkg"
)

var (
	ErrSelfRequest           = errors.New("cannot send a request to yourself")
	ErrUserNotFound          = errors.New("user not found")
	ErrAlreadyFriends        = errors.New("already friends")
	ErrIncomingRequestExists = errors.New("this user already sent you a friend request")
	ErrRequestExists         = errors.New("friend request already sent")
	ErrRequestNotFound       = errors.New("friend request not found")
	ErrNotRequestReceiver    = errors.New("only the receiver can respond to the request")
	ErrNotRequestSender      = errors.New("only the sender can cancel the request")
	ErrRequestProcessed      = errors.New("friend request already processed")
	ErrNotFriends            = errors.New("not friends")
	ErrInviteNotFound        = errors.New("workout invite not found")
	ErrNotInviteReceiver     = errors.New("only the receiver can respond to the invite")
	ErrInviteProcessed       = errors.New("workout invite already answered")
	ErrInvalidStatus         = errors.New("invalid status")
)

const defaultFriendName = "User"

// Status is shared by friend requests and workout invites.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type FriendRequest struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	// the other side, as seen by the user listing the requests
	Profile *profiles.Summary `json:"profile,omitempty"`
}

type Friend struct {
	FriendshipID string           `json:"friendshipId"`
	FriendID     string           `json:"friendId"`
	CreatedAt    time.Time        `json:"createdAt"`
	Profile      profiles.Summary `json:"profile"`
}

// FriendWorkout is a workout a friend has scheduled for today.
type FriendWorkout struct {
	FriendID     string `json:"friendId"`
	FriendName   string `json:"friendName"`
	FriendCode   string `json:"friendCode"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	ScheduleID   string `json:"scheduleId"`
	WorkoutTitle string `json:"workoutTitle"`
	ProgramTitle string `json:"programTitle"`
	Status       string `json:"status"`
}

type WorkoutInvite struct {
	ID         string            `json:"id"`
	SenderID   string            `json:"senderId"`
	ReceiverID string            `json:"receiverId"`
	Message    *string           `json:"message,omitempty"`
	InviteDate pkg.Date          `json:"inviteDate"`
	Status     Status            `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	Sender     *profiles.Summary `json:"sender,omitempty"`
}

func withDefaultName(summary profiles.Summary) profiles.Summary {
	if summary.DisplayName == "" {
		summary.DisplayName = defaultFriendName
	}
	return summary
}
