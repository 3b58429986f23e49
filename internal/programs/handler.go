package programs

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
	// draft routes go first, "/programs/{id}" would swallow "/programs/draft"
	r.HandleFunc("/programs/draft", h.HandleGetDraft).Methods("GET", "OPTIONS").Name("get-draft")
	r.HandleFunc("/programs/draft", h.HandleResetDraft).Methods("DELETE", "OPTIONS").Name("reset-draft")
	r.HandleFunc("/programs/draft/meta", h.HandleDraftMeta).Methods("PUT", "OPTIONS").Name("draft-meta")
	r.HandleFunc("/programs/draft/days/{day}/toggle", h.HandleDraftToggleDay).Methods("POST", "OPTIONS").Name("draft-toggle-day")
	r.HandleFunc("/programs/draft/days/{day}/title", h.HandleDraftWorkoutTitle).Methods("PUT", "OPTIONS").Name("draft-workout-title")
	r.HandleFunc("/programs/draft/days/{day}/exercises", h.HandleDraftAddExercise).Methods("POST", "OPTIONS").Name("draft-add-exercise")
	r.HandleFunc("/programs/draft/days/{day}/exercises/{index}", h.HandleDraftRemoveExercise).Methods("DELETE", "OPTIONS").Name("draft-remove-exercise")
	r.HandleFunc("/programs/draft/submit", h.HandleSubmitDraft).Methods("POST", "OPTIONS").Name("submit-draft")

	r.HandleFunc("/programs", h.HandleList).Methods("GET", "OPTIONS").Name("list-programs")
	r.HandleFunc("/programs", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-program")
	r.HandleFunc("/programs/workouts/{workoutId}/exercises", h.HandleAddExercise).Methods("POST", "OPTIONS").Name("add-workout-exercise")
	r.HandleFunc("/programs/{id}", h.HandleDetail).Methods("GET", "OPTIONS").Name("program-detail")
	r.HandleFunc("/programs/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-program")
}

// writeError maps the program errors to status codes.
func writeError(w http.ResponseWriter, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrInvalidProgram), errors.Is(err, ErrUnknownMovement):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrProgramNotFound), errors.Is(err, ErrWorkoutNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Errorf("%s: %s", fallbackMsg, err)
		http.Error(w, fallbackMsg, http.StatusInternalServerError)
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.list")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	programs, err := h.service.List(ctx, userID)
	if err != nil {
		writeError(w, err, "failed to get programs")
		return
	}

	span.SetAttributes(attribute.Int("programs.count", len(programs)))
	pkg.WriteJSON(w, programs, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.create")
	defer span.End()

	var in ProgramInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid program payload", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	p, err := h.service.Create(ctx, userID, in)
	if err != nil {
		writeError(w, err, "failed to create program")
		return
	}

	pkg.WriteJSON(w, p, http.StatusCreated)
}

func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.detail")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	p, err := h.service.Detail(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "failed to get program")
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.delete")
	defer span.End()

	programID := mux.Vars(r)["id"]
	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.service.Delete(ctx, userID, programID); err != nil {
		writeError(w, err, "failed to delete program")
		return
	}

	log.Debugf("program [%s] deleted by [%s]", programID, userID)
	pkg.WriteTextResponseOK(w, "deleted")
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.add-exercise")
	defer span.End()

	var payload AddExercisePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid exercise payload", http.StatusBadRequest)
		return
	}
	payload.WorkoutID = mux.Vars(r)["workoutId"]

	userID, _ := auth.UserIDFromContext(ctx)
	e, err := h.service.AddExercise(ctx, userID, payload)
	if err != nil {
		writeError(w, err, "failed to add exercise")
		return
	}

	pkg.WriteJSON(w, e, http.StatusCreated)
}

func (h *Handler) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.get-draft")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	draft, err := h.service.Draft(ctx, userID)
	if err != nil {
		writeError(w, err, "failed to get draft")
		return
	}

	pkg.WriteJSON(w, draft, http.StatusOK)
}

func (h *Handler) HandleResetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.reset-draft")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.service.ResetDraft(ctx, userID); err != nil {
		writeError(w, err, "failed to reset draft")
		return
	}

	pkg.WriteJSON(w, NewDraft(), http.StatusOK)
}

func (h *Handler) updateDraft(w http.ResponseWriter, r *http.Request, spanName string, change func(d *Draft) error) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), spanName)
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	draft, err := h.service.UpdateDraft(ctx, userID, change)
	if err != nil {
		writeError(w, err, "failed to update draft")
		return
	}

	pkg.WriteJSON(w, draft, http.StatusOK)
}

func (h *Handler) HandleDraftMeta(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title *string `json:"title"`
		Focus *string `json:"focus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid draft payload", http.StatusBadRequest)
		return
	}

	h.updateDraft(w, r, "handler.programs.draft-meta", func(d *Draft) error {
		d.SetMeta(req.Title, req.Focus)
		return nil
	})
}

func (h *Handler) HandleDraftToggleDay(w http.ResponseWriter, r *http.Request) {
	day := pkg.TrainingDay(mux.Vars(r)["day"])
	h.updateDraft(w, r, "handler.programs.draft-toggle-day", func(d *Draft) error {
		return d.ToggleTrainingDay(day)
	})
}

func (h *Handler) HandleDraftWorkoutTitle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid draft payload", http.StatusBadRequest)
		return
	}

	day := pkg.TrainingDay(mux.Vars(r)["day"])
	h.updateDraft(w, r, "handler.programs.draft-workout-title", func(d *Draft) error {
		return d.SetWorkoutTitle(day, req.Title)
	})
}

func (h *Handler) HandleDraftAddExercise(w http.ResponseWriter, r *http.Request) {
	var exercise ExerciseInput
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		http.Error(w, "invalid exercise payload", http.StatusBadRequest)
		return
	}

	day := pkg.TrainingDay(mux.Vars(r)["day"])
	h.updateDraft(w, r, "handler.programs.draft-add-exercise", func(d *Draft) error {
		return d.AddExercise(day, exercise)
	})
}

func (h *Handler) HandleDraftRemoveExercise(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, "error, invalid exercise index", http.StatusBadRequest)
		return
	}

	day := pkg.TrainingDay(vars["day"])
	h.updateDraft(w, r, "handler.programs.draft-remove-exercise", func(d *Draft) error {
		return d.RemoveExercise(day, index)
	})
}

func (h *Handler) HandleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.submit-draft")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	p, err := h.service.SubmitDraft(ctx, userID)
	if err != nil {
		writeError(w, err, "failed to submit draft")
		return
	}

	pkg.WriteJSON(w, p, http.StatusCreated)
}
