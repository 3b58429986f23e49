package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitnessxs/internal/profiles"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const summaryColumns = `COALESCE(pr.display_name, ''), COALESCE(pr.user_code, ''), COALESCE(pr.avatar_url, ''), COALESCE(pr.goal, '')`

const requestColumns = `fr.id::text, fr.sender_id::text, fr.receiver_id::text, fr.status, fr.created_at, fr.updated_at`

const inviteColumns = `wi.id::text, wi.sender_id::text, wi.receiver_id::text, wi.message, wi.invite_date, wi.status, wi.created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) UserExists(ctx context.Context, userID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.user-exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	err = r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM app_user WHERE id = $1);`, userID).Scan(&exists)
	return exists, err
}

func (r *Repo) AreFriends(ctx context.Context, userID, otherID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.are-friends")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var friends bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM friendship WHERE user_id = $1 AND friend_id = $2);`,
		userID, otherID,
	).Scan(&friends)
	return friends, err
}

func (r *Repo) PendingRequestExists(ctx context.Context, senderID, receiverID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.pending-request-exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (
			SELECT 1 FROM friend_request WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending'
		);`,
		senderID, receiverID,
	).Scan(&exists)
	return exists, err
}

func (r *Repo) CreateRequest(ctx context.Context, senderID, receiverID string) (_ *FriendRequest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.create-request")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req := &FriendRequest{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     StatusPending,
	}
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO friend_request (id, sender_id, receiver_id, status)
			VALUES ($1, $2, $3, 'pending')
			RETURNING created_at, updated_at;`,
		req.ID, senderID, receiverID,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if pkg.IsUniqueViolationError(err) {
		return nil, ErrRequestExists
	}
	if pkg.IsForeignKeyViolationError(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func scanRequest(row pgx.Row) (*FriendRequest, error) {
	var (
		req    FriendRequest
		status string
	)
	if err := row.Scan(&req.ID, &req.SenderID, &req.ReceiverID, &status, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	req.Status = Status(status)
	return &req, nil
}

func (r *Repo) GetRequest(ctx context.Context, requestID string) (_ *FriendRequest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.get-request")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if uuid.Validate(requestID) != nil {
		return nil, ErrRequestNotFound
	}

	req, err := scanRequest(r.db.QueryRow(
		ctx,
		`SELECT `+requestColumns+` FROM friend_request fr WHERE fr.id = $1;`,
		requestID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	return req, err
}

// PendingRequests lists the pending requests received by the user, or the
// ones sent by the user, newest first, with the profile of the other side.
func (r *Repo) PendingRequests(ctx context.Context, userID string, incoming bool) (_ []FriendRequest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.pending-requests")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("incoming", incoming))

	ownSide, otherSide := "sender_id", "receiver_id"
	if incoming {
		ownSide, otherSide = "receiver_id", "sender_id"
	}

	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(
			`SELECT %s, %s
				FROM friend_request fr
					LEFT JOIN profile pr ON pr.id = fr.%s
				WHERE fr.%s = $1 AND fr.status = 'pending'
				ORDER BY fr.created_at DESC;`,
			requestColumns, summaryColumns, otherSide, ownSide,
		),
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]FriendRequest, 0)
	for rows.Next() {
		var (
			req     FriendRequest
			status  string
			summary profiles.Summary
		)
		if err := rows.Scan(
			&req.ID, &req.SenderID, &req.ReceiverID, &status, &req.CreatedAt, &req.UpdatedAt,
			&summary.DisplayName, &summary.UserCode, &summary.AvatarURL, &summary.Goal,
		); err != nil {
			return nil, fmt.Errorf("scan friend request: %w", err)
		}
		req.Status = Status(status)
		summary.ID = req.SenderID
		if !incoming {
			summary.ID = req.ReceiverID
		}
		summary = withDefaultName(summary)
		req.Profile = &summary
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// AcceptRequest marks the request accepted and stores the friendship in
// both directions, in one transaction.
func (r *Repo) AcceptRequest(ctx context.Context, req FriendRequest) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.accept-request")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("request.id", req.ID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(
		ctx,
		`UPDATE friend_request SET status = 'accepted', updated_at = now() WHERE id = $1 AND status = 'pending';`,
		req.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestProcessed
	}

	for _, pair := range [][2]string{{req.SenderID, req.ReceiverID}, {req.ReceiverID, req.SenderID}} {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO friendship (id, user_id, friend_id) VALUES ($1, $2, $3)
				ON CONFLICT (user_id, friend_id) DO NOTHING;`,
			uuid.NewString(), pair[0], pair[1],
		); err != nil {
			return fmt.Errorf("insert friendship: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) RejectRequest(ctx context.Context, requestID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.reject-request")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE friend_request SET status = 'rejected', updated_at = now() WHERE id = $1 AND status = 'pending';`,
		requestID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestProcessed
	}
	return nil
}

func (r *Repo) DeleteRequest(ctx context.Context, requestID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.delete-request")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM friend_request WHERE id = $1;`, requestID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *Repo) ListFriends(ctx context.Context, userID string) (_ []Friend, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.list-friends")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT f.id::text, f.friend_id::text, f.created_at, `+summaryColumns+`
			FROM friendship f
				LEFT JOIN profile pr ON pr.id = f.friend_id
			WHERE f.user_id = $1
			ORDER BY f.created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friends := make([]Friend, 0)
	for rows.Next() {
		var f Friend
		if err := rows.Scan(
			&f.FriendshipID, &f.FriendID, &f.CreatedAt,
			&f.Profile.DisplayName, &f.Profile.UserCode, &f.Profile.AvatarURL, &f.Profile.Goal,
		); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		f.Profile.ID = f.FriendID
		f.Profile = withDefaultName(f.Profile)
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("friends.count", len(friends)))
	return friends, nil
}

// RemoveFriend deletes both directions of the friendship and reports
// whether there was anything to delete.
func (r *Repo) RemoveFriend(ctx context.Context, userID, friendID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.remove-friend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if uuid.Validate(friendID) != nil {
		return false, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(
		ctx,
		`DELETE FROM friendship
			WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1);`,
		userID, friendID,
	)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FriendsWorkouts lists the workouts the friends of the user have
// scheduled on the given day.
func (r *Repo) FriendsWorkouts(ctx context.Context, userID string, day pkg.Date) (_ []FriendWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.friends-workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT f.friend_id::text, COALESCE(pr.display_name, ''), COALESCE(pr.user_code, ''),
				COALESCE(pr.avatar_url, ''), si.id::text, pw.title, p.title, si.status
			FROM friendship f
				JOIN program p ON p.owner_id = f.friend_id
				JOIN schedule_instance si ON si.program_id = p.id
				JOIN program_workout pw ON pw.id = si.workout_id
				LEFT JOIN profile pr ON pr.id = f.friend_id
			WHERE f.user_id = $1 AND si.scheduled_date = $2
			ORDER BY pr.display_name ASC, pw.order_index ASC;`,
		userID, day,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]FriendWorkout, 0)
	for rows.Next() {
		var fw FriendWorkout
		if err := rows.Scan(
			&fw.FriendID, &fw.FriendName, &fw.FriendCode, &fw.AvatarURL,
			&fw.ScheduleID, &fw.WorkoutTitle, &fw.ProgramTitle, &fw.Status,
		); err != nil {
			return nil, fmt.Errorf("scan friend workout: %w", err)
		}
		if fw.FriendName == "" {
			fw.FriendName = defaultFriendName
		}
		workouts = append(workouts, fw)
	}
	return workouts, rows.Err()
}

func (r *Repo) CreateInvite(ctx context.Context, senderID, receiverID string, message *string, day pkg.Date) (_ *WorkoutInvite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.create-invite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	invite := &WorkoutInvite{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
		InviteDate: day,
		Status:     StatusPending,
	}
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO workout_invite (id, sender_id, receiver_id, message, invite_date, status)
			VALUES ($1, $2, $3, $4, $5, 'pending')
			RETURNING created_at;`,
		invite.ID, senderID, receiverID, message, day,
	).Scan(&invite.CreatedAt); err != nil {
		return nil, err
	}
	return invite, nil
}

func scanInvite(row pgx.Row, extra ...any) (*WorkoutInvite, error) {
	var (
		invite WorkoutInvite
		status string
	)
	dest := append([]any{
		&invite.ID, &invite.SenderID, &invite.ReceiverID, &invite.Message, &invite.InviteDate, &status, &invite.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	invite.Status = Status(status)
	return &invite, nil
}

// IncomingInvites lists the pending invites for the day, newest first,
// with the profile of the sender.
func (r *Repo) IncomingInvites(ctx context.Context, userID string, day pkg.Date) (_ []WorkoutInvite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.incoming-invites")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+inviteColumns+`, `+summaryColumns+`
			FROM workout_invite wi
				LEFT JOIN profile pr ON pr.id = wi.sender_id
			WHERE wi.receiver_id = $1 AND wi.invite_date = $2 AND wi.status = 'pending'
			ORDER BY wi.created_at DESC;`,
		userID, day,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := make([]WorkoutInvite, 0)
	for rows.Next() {
		var summary profiles.Summary
		invite, err := scanInvite(rows, &summary.DisplayName, &summary.UserCode, &summary.AvatarURL, &summary.Goal)
		if err != nil {
			return nil, fmt.Errorf("scan workout invite: %w", err)
		}
		summary.ID = invite.SenderID
		summary = withDefaultName(summary)
		invite.Sender = &summary
		invites = append(invites, *invite)
	}
	return invites, rows.Err()
}

func (r *Repo) GetInvite(ctx context.Context, inviteID string) (_ *WorkoutInvite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.get-invite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if uuid.Validate(inviteID) != nil {
		return nil, ErrInviteNotFound
	}

	invite, err := scanInvite(r.db.QueryRow(
		ctx,
		`SELECT `+inviteColumns+` FROM workout_invite wi WHERE wi.id = $1;`,
		inviteID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInviteNotFound
	}
	return invite, err
}

func (r *Repo) SetInviteStatus(ctx context.Context, inviteID string, status Status) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.set-invite-status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("status", string(status)))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_invite SET status = $2 WHERE id = $1 AND status = 'pending';`,
		inviteID, string(status),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInviteProcessed
	}
	return nil
}
