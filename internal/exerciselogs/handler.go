package exerciselogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	r.HandleFunc("/logs", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-exercise-log")
	r.HandleFunc("/logs/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("exercise-stats")
	r.HandleFunc("/logs/movement/{movementId}", h.HandleMovementLogs).Methods("GET", "OPTIONS").Name("movement-logs")
	r.HandleFunc("/logs/movement/{movementId}/chart", h.HandleChart).Methods("GET", "OPTIONS").Name("movement-chart")
}

func limitParam(r *http.Request) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return 0, nil
	}
	return strconv.Atoi(limitStr)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercise-logs.create")
	defer span.End()

	var payload CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid exercise log payload", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	l, err := h.service.Create(ctx, userID, payload)
	switch {
	case errors.Is(err, ErrInvalidLog), errors.Is(err, ErrMovementNotFound):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("create exercise log [%s]: %s", userID, err)
		http.Error(w, "failed to save exercise log", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, l, http.StatusCreated)
}

func (h *Handler) HandleMovementLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercise-logs.movement")
	defer span.End()

	limit, err := limitParam(r)
	if err != nil {
		http.Error(w, "error, invalid limit", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	logs, err := h.service.MovementLogs(ctx, userID, mux.Vars(r)["movementId"], limit)
	if err != nil {
		log.Errorf("movement logs [%s]: %s", userID, err)
		http.Error(w, "failed to get exercise logs", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("logs.count", len(logs)))
	pkg.WriteJSON(w, logs, http.StatusOK)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercise-logs.stats")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	stats, err := h.service.Stats(ctx, userID)
	if err != nil {
		log.Errorf("exercise stats [%s]: %s", userID, err)
		http.Error(w, "failed to get exercise stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercise-logs.chart")
	defer span.End()

	limit, err := limitParam(r)
	if err != nil {
		http.Error(w, "error, invalid limit", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	metric := Metric(r.URL.Query().Get("metric"))
	points, err := h.service.Chart(ctx, userID, mux.Vars(r)["movementId"], metric, limit)
	if errors.Is(err, ErrInvalidLog) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("exercise chart [%s]: %s", userID, err)
		http.Error(w, "failed to get chart data", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, points, http.StatusOK)
}
