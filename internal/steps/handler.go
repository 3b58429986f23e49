package steps

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
	r.HandleFunc("/steps", h.HandleReport).Methods("PUT", "OPTIONS").Name("report-steps")
	r.HandleFunc("/steps", h.HandleRange).Methods("GET", "OPTIONS").Name("steps-range")
	r.HandleFunc("/steps/today", h.HandleToday).Methods("GET", "OPTIONS").Name("steps-today")
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.steps.report")
	defer span.End()

	var payload ReportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid steps payload", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	ds, err := h.service.Report(ctx, userID, payload)
	if errors.Is(err, ErrInvalidSteps) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("report steps [%s]: %s", userID, err)
		http.Error(w, "failed to save steps", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ds, http.StatusOK)
}

func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.steps.today")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	ds, err := h.service.Today(ctx, userID)
	if err != nil {
		log.Errorf("today steps [%s]: %s", userID, err)
		http.Error(w, "failed to get steps", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ds, http.StatusOK)
}

func (h *Handler) HandleRange(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.steps.range")
	defer span.End()

	q := r.URL.Query()
	from, err := pkg.ParseDate(q.Get("from"))
	if err != nil {
		http.Error(w, "error, invalid from date", http.StatusBadRequest)
		return
	}
	to, err := pkg.ParseDate(q.Get("to"))
	if err != nil {
		http.Error(w, "error, invalid to date", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	days, err := h.service.Range(ctx, userID, from, to)
	if errors.Is(err, ErrInvalidSteps) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("steps range [%s]: %s", userID, err)
		http.Error(w, "failed to get steps", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, days, http.StatusOK)
}
