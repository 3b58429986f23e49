package profiles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fitnessxs/internal/auth"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
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
	r.HandleFunc("/profile", h.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", h.HandleUpsert).Methods("PUT", "OPTIONS").Name("upsert-profile")
	r.HandleFunc("/profile/theme", h.HandleSetTheme).Methods("PUT", "OPTIONS").Name("set-theme")
	r.HandleFunc("/profiles/search", h.HandleSearchByCode).Methods("GET", "OPTIONS").Name("search-profile")
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.get")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	p, err := h.service.Get(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get profile [%s]: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.upsert")
	defer span.End()

	var input ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid profile payload", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	p, err := h.service.Upsert(ctx, userID, input)
	if errors.Is(err, ErrInvalidProfile) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("upsert profile [%s]: %s", userID, err)
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (h *Handler) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.set-theme")
	defer span.End()

	var req struct {
		Theme Theme `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid theme payload", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	err := h.service.SetTheme(ctx, userID, req.Theme)
	switch {
	case errors.Is(err, ErrInvalidProfile):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrProfileNotFound):
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("set theme [%s]: %s", userID, err)
		http.Error(w, "failed to set theme", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, req, http.StatusOK)
}

func (h *Handler) HandleSearchByCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.search")
	defer span.End()

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "error, code missing", http.StatusBadRequest)
		return
	}

	summary, err := h.service.SearchByCode(ctx, code)
	if err != nil {
		log.Errorf("search profile by code: %s", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	if summary == nil {
		http.Error(w, "no user with that code", http.StatusNotFound)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}
