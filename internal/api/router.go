package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/selim-ammari/user-management/docs"
	"github.com/selim-ammari/user-management/internal/api/handler"
	"github.com/selim-ammari/user-management/internal/api/middleware"
	"github.com/selim-ammari/user-management/internal/core/ports"
	"github.com/selim-ammari/user-management/internal/infrastructure/config"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users    ports.UserRepository
	Sessions ports.SessionService
	Store    handler.Pinger
	Log      zerolog.Logger
	HTTP     config.HTTPConfig
	Auth     config.AuthConfig

	// Registry overrides the Prometheus registry. Nil means the default one.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.HTTP.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "users",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper:    func(c echo.Context) bool { return c.Path() == "/metrics" },
	}))
	if d.HTTP.RateLimitRPS > 0 {
		e.Use(middleware.RateLimit(d.HTTP.RateLimitRPS))
	}

	// --- Dependencies ---
	userHandler := handler.NewUserHandler(d.Users)
	sessionHandler := handler.NewSessionHandler(d.Sessions)
	adminOnly := middleware.AdminGuard(d.Auth.AdminGuard, d.Auth.JWTSecret)

	// --- User directory ---
	api := e.Group("/api")
	api.GET("/users", userHandler.List)
	api.POST("/users", userHandler.Create)
	api.PUT("/users/:id", userHandler.Update, adminOnly...)
	api.DELETE("/users/:id", userHandler.Delete, adminOnly...)
	api.PUT("/users/:id/role", userHandler.SetRole, adminOnly...)
	api.POST("/session", sessionHandler.Create)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(map[string]handler.Pinger{"store": d.Store})

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the record store up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	mountFrontend(e, d.HTTP.StaticDir, d.Log)

	return e
}

// mountFrontend serves the built single-page app with index.html fallback
// when dir exists. API and operational paths never fall back.
func mountFrontend(e *echo.Echo, dir string, log zerolog.Logger) {
	if dir == "" {
		return
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("static dir unusable, frontend disabled")
		return
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		log.Info().Str("dir", abs).Msg("static dir not found, frontend disabled")
		return
	}

	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:       ".",
		Index:      "index.html",
		HTML5:      true,
		Filesystem: http.Dir(abs),
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			for _, prefix := range []string{"/api", "/health", "/metrics", "/swagger"} {
				if p == prefix || strings.HasPrefix(p, prefix+"/") {
					return true
				}
			}
			return false
		},
	}))
	log.Info().Str("dir", abs).Msg("serving frontend")
}
