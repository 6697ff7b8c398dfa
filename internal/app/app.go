// Package app wires repositories, services and handlers into the HTTP router
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/learnhub/lms-webclient/internal/config"
	"github.com/learnhub/lms-webclient/internal/handlers"
	"github.com/learnhub/lms-webclient/internal/middleware"
	"github.com/learnhub/lms-webclient/internal/repositories"
	"github.com/learnhub/lms-webclient/internal/services"
	"github.com/learnhub/lms-webclient/internal/session"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SessionStore keeps browser sessions between requests
type SessionStore = session.Store

// sweeper is implemented by stores that hold expired sessions until swept
type sweeper interface {
	Sweep() []string
}

// App is the assembled web client
type App struct {
	router http.Handler
	store  SessionStore
	auth   interface {
		PruneViews(ctx context.Context) int
	}
	logger *zap.Logger
}

// New builds the web client on top of the remote API described by cfg
func New(cfg *config.Config, store SessionStore, logger *zap.Logger) *App {
	// Remote API
	rest := repositories.NewRestClient(cfg.API.BaseURL, cfg.API.Timeout)
	backends := func(token string) *services.Backend {
		api := repositories.NewAPIClient(rest, token, logger)
		return &services.Backend{
			Contents:    repositories.NewContentRepository(api),
			Progress:    repositories.NewProgressRepository(api),
			Courses:     repositories.NewCourseRepository(api),
			Enrollments: repositories.NewEnrollmentRepository(api),
			Admin:       repositories.NewAdminRepository(api),
			Auth:        repositories.NewAuthRepository(api),
		}
	}

	// Initialize services
	courseViews := services.NewCourseViewService(backends, logger)
	authService := services.NewAuthService(backends, store, courseViews, cfg.Session.TTL, logger)
	studentService := services.NewStudentService(backends, logger)
	teacherService := services.NewTeacherService(backends, logger)
	adminService := services.NewAdminService(backends, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Session.CookieSecure, logger)
	studentHandler := handlers.NewStudentHandler(studentService, courseViews, logger)
	teacherHandler := handlers.NewTeacherHandler(teacherService, cfg.Server.MaxUploadSize, logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger)

	sessionMiddleware := middleware.SessionMiddleware(authService, logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	if cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	}
	r.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxUploadSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Register auth routes
		authHandler.RegisterRoutes(r, sessionMiddleware)
		// Register page routes behind the session middleware
		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware)
			studentHandler.RegisterRoutes(r)
			teacherHandler.RegisterRoutes(r)
			adminHandler.RegisterRoutes(r)
		})
	})

	return &App{
		router: r,
		store:  store,
		auth:   authService,
		logger: logger,
	}
}

// Router returns the HTTP handler of the web client
func (a *App) Router() http.Handler {
	return a.router
}

// Sweep drops expired sessions and the course views of every session that ended
func (a *App) Sweep(ctx context.Context) {
	if s, ok := a.store.(sweeper); ok {
		if expired := s.Sweep(); len(expired) > 0 {
			a.logger.Debug("expired sessions swept", zap.Int("count", len(expired)))
		}
	}
	a.auth.PruneViews(ctx)
}

// RunSweeper calls Sweep every interval until ctx is done
func (a *App) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Sweep(ctx)
		}
	}
}
