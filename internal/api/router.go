// Package api maps HTTP requests onto the box and auth services.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/prudhvinik1/boxfleet/internal/models"
	"github.com/prudhvinik1/boxfleet/internal/services"
)

type BoxService interface {
	UpdateBox(ctx context.Context, boxID string, patch models.BoxPatch, descriptors []models.SensorDescriptor) (*models.Box, error)
	CreateBox(ctx context.Context, box *models.NewBox) (string, error)
	DeleteBox(ctx context.Context, boxID string) (string, error)
	GetBox(ctx context.Context, boxID string) (*models.Box, error)
	ListBoxes(ctx context.Context, ownerID uuid.UUID) ([]*models.Box, error)
	Authorize(ctx context.Context, userID uuid.UUID, boxID string) error
	Evict(ctx context.Context, boxID string)
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResponse, error)
	VerifyToken(tokenString string) (*services.TokenClaims, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type Deps struct {
	Boxes BoxService
	Auth  AuthService
	Log   logrus.FieldLogger
	Ping  func(ctx context.Context) error
}

type handler struct {
	boxes BoxService
	auth  AuthService
	log   logrus.FieldLogger
	ping  func(ctx context.Context) error
}

func NewRouter(d Deps) http.Handler {
	h := &handler{boxes: d.Boxes, auth: d.Auth, log: d.Log, ping: d.Ping}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(d.Log))
	router.Use(middleware.Recoverer)

	router.Get("/health", h.health)

	router.Route("/users", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/sign-in", h.signIn)

		r.Group(func(r chi.Router) {
			r.Use(authenticate(d.Auth))
			r.Get("/me", h.getMe)
			r.Delete("/me", h.deleteMe)
			r.Get("/me/boxes", h.listMyBoxes)
		})
	})

	router.Route("/boxes", func(r chi.Router) {
		r.With(authenticate(d.Auth)).Post("/", h.createBox)
		r.Get("/{boxId}", h.getBox)

		r.Group(func(r chi.Router) {
			r.Use(authenticate(d.Auth))
			r.Use(requireOwner(d.Boxes, h))
			r.Put("/{boxId}", h.updateBox)
			r.Delete("/{boxId}", h.deleteBox)
		})
	})

	return router
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			h.log.WithError(err).Error("health check failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
