package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

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
	r.HandleFunc("/schedule/today", h.HandleToday).Methods("GET", "OPTIONS").Name("today-plan")
	r.HandleFunc("/schedule/history/week", h.HandleWeek).Methods("GET", "OPTIONS").Name("history-week")
	r.HandleFunc("/schedule/history/month", h.HandleMonth).Methods("GET", "OPTIONS").Name("history-month")
	r.HandleFunc("/schedule/{id}/status", h.HandleUpdateStatus).Methods("PUT", "OPTIONS").Name("update-schedule-status")
	r.HandleFunc("/schedule/{id}/skip-and-shift", h.HandleSkipAndShift).Methods("POST", "OPTIONS").Name("skip-and-shift")
}

func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.today")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	plan, err := h.service.TodayPlan(ctx, userID)
	if err != nil {
		log.Errorf("today plan [%s]: %s", userID, err)
		http.Error(w, "failed to get today plan", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("instances.count", len(plan)))
	pkg.WriteJSON(w, plan, http.StatusOK)
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.update-status")
	defer span.End()

	scheduleID := mux.Vars(r)["id"]
	var req struct {
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid status payload", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	err := h.service.UpdateStatus(ctx, userID, scheduleID, req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrScheduleNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("update schedule status [%s]: %s", scheduleID, err)
		http.Error(w, "failed to update status", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, map[string]string{"id": scheduleID, "status": string(req.Status)}, http.StatusOK)
}

func (h *Handler) HandleSkipAndShift(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.skip-and-shift")
	defer span.End()

	scheduleID := mux.Vars(r)["id"]
	userID, _ := auth.UserIDFromContext(ctx)
	res, err := h.service.SkipAndShift(ctx, userID, scheduleID)
	if errors.Is(err, ErrScheduleNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("skip and shift [%s]: %s", scheduleID, err)
		http.Error(w, "failed to shift workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, res, http.StatusOK)
}

func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.week")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	week, err := h.service.Week(ctx, userID)
	if err != nil {
		log.Errorf("week history [%s]: %s", userID, err)
		http.Error(w, "failed to get week history", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, week, http.StatusOK)
}

func (h *Handler) HandleMonth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.month")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	year, month, err := h.service.CurrentMonth(ctx, userID)
	if err != nil {
		log.Errorf("current month [%s]: %s", userID, err)
		http.Error(w, "failed to get month history", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	if yearParam := q.Get("year"); yearParam != "" {
		if year, err = strconv.Atoi(yearParam); err != nil {
			http.Error(w, "error, invalid year", http.StatusBadRequest)
			return
		}
	}
	if monthParam := q.Get("month"); monthParam != "" {
		m, err := strconv.Atoi(monthParam)
		if err != nil {
			http.Error(w, "error, invalid month", http.StatusBadRequest)
			return
		}
		month = time.Month(m)
	}

	history, err := h.service.Month(ctx, userID, year, month)
	if errors.Is(err, ErrInvalidMonth) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("month history [%s]: %s", userID, err)
		http.Error(w, "failed to get month history", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, history, http.StatusOK)
}
