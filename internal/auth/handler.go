package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fitnessxs/internal/telemetry/metrics"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type Handler struct {
	service        *Service
	versionInfo    string
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, versionInfo string, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		versionInfo:    versionInfo,
		metricsManager: metricsManager,
	}
}

// SetupRoutes registers the public routes. The credential endpoints get the
// extra middlewares (rate limiting).
func (h *Handler) SetupRoutes(mainRouter *mux.Router, credentialsMiddlewares ...mux.MiddlewareFunc) {
	mainRouter.HandleFunc("/", h.HandleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", h.HandleVersion).Methods("GET", "OPTIONS").Name("version")

	authRouter := mainRouter.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", h.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	authRouter.HandleFunc("/login", h.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", h.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	authRouter.Use(credentialsMiddlewares...)
}

func (h *Handler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (h *Handler) HandleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, h.versionInfo)
}

func decodeCredentials(r *http.Request) (credentials, error) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return creds, err
	}
	if creds.Email == "" || creds.Password == "" {
		return creds, errors.New("email and password are required")
	}
	return creds, nil
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	creds, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.service.Register(ctx, creds.Email, creds.Password)
	switch {
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrWeakPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Errorf("register: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	pkg.WriteJSON(w, RegisterResponse{UserID: user.ID, Email: user.Email}, http.StatusCreated)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	creds, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.service.Login(ctx, creds.Email, creds.Password)
	if errors.Is(err, ErrWrongCredentials) {
		h.metricsManager.CounterLogins.WithLabelValues("wrong_credentials").Inc()
		http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.metricsManager.CounterLogins.WithLabelValues("error").Inc()
		log.Errorf("login: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	h.metricsManager.CounterLogins.WithLabelValues("ok").Inc()
	span.SetAttributes(attribute.String("user.id", res.UserID))
	pkg.WriteJSON(w, res, http.StatusOK)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := BearerToken(r.Header.Get("Authorization"))
	loggedOut, err := h.service.Logout(ctx, token)
	if errors.Is(err, ErrMissingToken) || errors.Is(err, ErrInvalidToken) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	if !loggedOut {
		pkg.WriteTextResponseOK(w, "session already gone")
		return
	}
	pkg.WriteTextResponseOK(w, "logged out")
}
