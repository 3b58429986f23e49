package social

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fitnessxs/internal/auth"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/social/requests", h.HandleSendRequest).Methods("POST", "OPTIONS").Name("send-friend-request")
	r.HandleFunc("/social/requests/incoming", h.HandleIncomingRequests).Methods("GET", "OPTIONS").Name("incoming-friend-requests")
	r.HandleFunc("/social/requests/outgoing", h.HandleOutgoingRequests).Methods("GET", "OPTIONS").Name("outgoing-friend-requests")
	r.HandleFunc("/social/requests/{id}/accept", h.HandleAcceptRequest).Methods("POST", "OPTIONS").Name("accept-friend-request")
	r.HandleFunc("/social/requests/{id}/reject", h.HandleRejectRequest).Methods("POST", "OPTIONS").Name("reject-friend-request")
	r.HandleFunc("/social/requests/{id}", h.HandleCancelRequest).Methods("DELETE", "OPTIONS").Name("cancel-friend-request")

	r.HandleFunc("/social/friends", h.HandleListFriends).Methods("GET", "OPTIONS").Name("list-friends")
	r.HandleFunc("/social/friends/today", h.HandleFriendsToday).Methods("GET", "OPTIONS").Name("friends-today")
	r.HandleFunc("/social/friends/{friendId}", h.HandleRemoveFriend).Methods("DELETE", "OPTIONS").Name("remove-friend")

	r.HandleFunc("/social/invites", h.HandleSendInvite).Methods("POST", "OPTIONS").Name("send-workout-invite")
	r.HandleFunc("/social/invites/incoming", h.HandleIncomingInvites).Methods("GET", "OPTIONS").Name("incoming-workout-invites")
	r.HandleFunc("/social/invites/{id}", h.HandleRespondInvite).Methods("PUT", "OPTIONS").Name("respond-workout-invite")
}

func writeError(w http.ResponseWriter, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrSelfRequest), errors.Is(err, ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotRequestReceiver), errors.Is(err, ErrNotRequestSender),
		errors.Is(err, ErrNotInviteReceiver), errors.Is(err, ErrNotFriends):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrRequestNotFound), errors.Is(err, ErrInviteNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrAlreadyFriends), errors.Is(err, ErrRequestExists),
		errors.Is(err, ErrIncomingRequestExists), errors.Is(err, ErrRequestProcessed),
		errors.Is(err, ErrInviteProcessed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("%s: %s", fallbackMsg, err)
		http.Error(w, fallbackMsg, http.StatusInternalServerError)
	}
}

func (h *Handler) HandleSendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.send-request")
	defer span.End()

	var req struct {
		ReceiverID string `json:"receiverId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReceiverID == "" {
		http.Error(w, "invalid friend request payload", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	fr, err := h.service.SendFriendRequest(ctx, userID, req.ReceiverID)
	if err != nil {
		writeError(w, err, "failed to send friend request")
		return
	}

	pkg.WriteJSON(w, fr, http.StatusCreated)
}

func (h *Handler) HandleIncomingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.incoming-requests")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	requests, err := h.service.IncomingRequests(ctx, userID)
	if err != nil {
		writeError(w, err, "failed to get friend requests")
		return
	}

	span.SetAttributes(attribute.Int("requests.count", len(requests)))
	pkg.WriteJSON(w, requests, http.StatusOK)
}

func (h *Handler) HandleOutgoingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.outgoing-requests")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	requests, err := h.service.OutgoingRequests(ctx, userID)
	if err != nil {
		writeError(w, err, "failed to get friend requests")
		return
	}

	span.SetAttributes(attribute.Int("requests.count", len(requests)))
	pkg.WriteJSON(w, requests, http.StatusOK)
}

func (h *Handler) HandleAcceptRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.accept-request")
	defer span.End()

	requestID := mux.Vars(r)["id"]
	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.service.AcceptFriendRequest(ctx, userID, requestID); err != nil {
		writeError(w, err, "failed to accept friend request")
		return
	}

	pkg.WriteJSON(w, map[string]string{"id": requestID, "status": string(StatusAccepted)}, http.StatusOK)
}

func (h *Handler) HandleRejectRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.reject-request")
	defer span.End()

	requestID := mux.Vars(r)["id"]
	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.service.RejectFriendRequest(ctx, userID, requestID); err != nil {
		writeError(w, err, "failed to reject friend request")
		return
	}

	pkg.WriteJSON(w, map[string]string{"id": requestID, "status": string(StatusRejected)}, http.StatusOK)
}

func (h *Handler) HandleCancelRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.cancel-request")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.service.CancelFriendRequest(ctx, userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "failed to cancel friend request")
		return
	}

	pkg.WriteTextResponseOK(w, "cancelled")
}

func (h *Handler) HandleListFriends(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.list-friends")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	friends, err := h.service.ListFriends(ctx, userID)
	if err != nil {
		writeError(w, err, "failed to get friends")
		return
	}

	pkg.WriteJSON(w, friends, http.StatusOK)
}

func (h *Handler) HandleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.remove-friend")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	err := h.service.RemoveFriend(ctx, userID, mux.Vars(r)["friendId"])
	if errors.Is(err, ErrNotFriends) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		writeError(w, err, "failed to remove friend")
		return
	}

	pkg.WriteTextResponseOK(w, "removed")
}

func (h *Handler) HandleFriendsToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.friends-today")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	workouts, err := h.service.FriendsTodayWorkouts(ctx, userID)
	if err != nil {
		writeError(w, err, "failed to get friends workouts")
		return
	}

	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	pkg.WriteJSON(w, workouts, http.StatusOK)
}

func (h *Handler) HandleSendInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.send-invite")
	defer span.End()

	var req struct {
		ReceiverID string `json:"receiverId"`
		Message    string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReceiverID == "" {
		http.Error(w, "invalid invite payload", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	invite, err := h.service.SendWorkoutInvite(ctx, userID, req.ReceiverID, req.Message)
	if err != nil {
		writeError(w, err, "failed to send workout invite")
		return
	}

	pkg.WriteJSON(w, invite, http.StatusCreated)
}

func (h *Handler) HandleIncomingInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.incoming-invites")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	invites, err := h.service.IncomingWorkoutInvites(ctx, userID)
	if err != nil {
		writeError(w, err, "failed to get workout invites")
		return
	}

	pkg.WriteJSON(w, invites, http.StatusOK)
}

func (h *Handler) HandleRespondInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.respond-invite")
	defer span.End()

	var req struct {
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid invite response payload", http.StatusBadRequest)
		return
	}

	inviteID := mux.Vars(r)["id"]
	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.service.RespondToWorkoutInvite(ctx, userID, inviteID, req.Status); err != nil {
		writeError(w, err, "failed to respond to workout invite")
		return
	}

	pkg.WriteJSON(w, map[string]string{"id": inviteID, "status": string(req.Status)}, http.StatusOK)
}
