package handlers

import (
	"TaskBuckets/internal/config"
	"TaskBuckets/internal/middleware"
	"TaskBuckets/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	bucketService *service.BucketService,
	taskService *service.TaskService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	bucketHandler := NewBucketHandler(bucketService, logger)
	taskHandler := NewTaskHandler(taskService, logger)

	r.Get("/healthz", Health)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/logout", userHandler.Logout)
	r.Get("/api/user/status", userHandler.Status)

	// Bucket/task routes: без пользователя — 401 до обращения к данным
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Route("/api/buckets", func(r chi.Router) {
			r.Get("/", bucketHandler.List)
			r.Post("/", bucketHandler.Create)
			r.Get("/{id}", bucketHandler.Get)
			r.Put("/{id}", bucketHandler.Update)
			r.Delete("/{id}", bucketHandler.Delete)
		})

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Patch("/{id}", taskHandler.Patch)
			r.Delete("/{id}", taskHandler.Delete)
		})
	})

	return &Handler{Router: r}
}
