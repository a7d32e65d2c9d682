package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps — зависимости HTTP-слоя
type RouterDeps struct {
	Users          usecase.UserUseCase
	Auth           usecase.AuthUseCase
	Tasks          usecase.TaskUseCase
	Store          ports.Pinger
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

// NewRouter собирает маршруты API. Конечный слэш необязателен.
func NewRouter(d RouterDeps) http.Handler {
	userHandler := NewUserHandler(d.Users, d.Logger)
	authHandler := NewAuthHandler(d.Auth, d.Logger)
	taskHandler := NewTaskHandler(d.Tasks, d.Logger)
	healthHandler := NewHealthHandler(d.Store, d.Logger)
	authMiddleware := NewAuthMiddleware(d.Auth, d.Logger)

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}

	r.Get("/healthz", healthHandler.Check)
	r.Post("/auth", authHandler.ObtainToken)

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", userHandler.List)
		r.Post("/users", userHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireToken)
			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
		})
	})

	return r
}
