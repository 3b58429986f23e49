package movements

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
	r.HandleFunc("/movements", h.HandleList).Methods("GET", "OPTIONS").Name("list-movements")
	r.HandleFunc("/movements", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-movement")
	r.HandleFunc("/movements/categories", h.HandleCategories).Methods("GET", "OPTIONS").Name("movement-categories")
	r.HandleFunc("/movements/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("movement-detail")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.movements.list")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	q := r.URL.Query()
	movements, err := h.service.List(ctx, userID, ListParams{
		Search:     q.Get("search"),
		CategoryID: q.Get("category"),
		Equipment:  q.Get("equipment"),
	})
	if err != nil {
		log.Errorf("list movements: %s", err)
		http.Error(w, "failed to get movements", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("movements.count", len(movements)))
	pkg.WriteJSON(w, movements, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.movements.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	userID, _ := auth.UserIDFromContext(ctx)
	m, err := h.service.Get(ctx, userID, id)
	if errors.Is(err, ErrMovementNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get movement [%s]: %s", id, err)
		http.Error(w, "failed to get movement", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, m, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.movements.create")
	defer span.End()

	var payload CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid movement payload", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	m, err := h.service.CreateCustom(ctx, userID, payload)
	if errors.Is(err, ErrInvalidMovement) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("create movement: %s", err)
		http.Error(w, "failed to create movement", http.StatusInternalServerError)
		return
	}

	log.Debugf("custom movement added: %s [%s]", m.Name, m.ID)
	pkg.WriteJSON(w, m, http.StatusCreated)
}

func (h *Handler) HandleCategories(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, Categories, http.StatusOK)
}
