package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/medconnect/appointments/docs"
	"github.com/medconnect/appointments/internal/api/handler"
	"github.com/medconnect/appointments/internal/api/middleware"
	"github.com/medconnect/appointments/internal/core/domain"
	"github.com/medconnect/appointments/internal/core/ports"
)

// Dependencies are the services and settings the router wires into handlers.
type Dependencies struct {
	Auth         ports.AuthService
	Availability ports.AvailabilityService
	Assistant    ports.AssistantService
	Profiles     ports.ProfileRepository

	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool

	Readiness []handler.DependencyCheck
	Logger    zerolog.Logger

	// Registry collects the HTTP metrics and serves /metrics. Nil means the
	// default Prometheus registry, where the application metrics live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "medconnect",
		Registerer: registerer,
	}))
	e.Use(middleware.Session(deps.JWTSecret))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.SessionTTL, deps.SecureCookie)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Doctor availability ---
	// Submit is reachable anonymously: the flow itself reports missing
	// sessions and non-doctor callers.
	availabilityHandler := handler.NewAvailabilityHandler(deps.Availability)
	v1 := e.Group("/v1")
	v1.POST("/doctor/availability", availabilityHandler.Submit)
	v1.GET("/doctor/availability", availabilityHandler.List,
		middleware.RequireAuth(),
		middleware.RBAC(deps.Profiles, deps.Logger, domain.RoleDoctor),
	)

	// --- AI assistant ---
	assistantHandler := handler.NewAssistantHandler(deps.Assistant, deps.Logger)
	ai := e.Group("/api/ai", middleware.RequireAuth())
	ai.POST("/symptom-triage", assistantHandler.Triage)
	ai.POST("/generate-summary", assistantHandler.Summarize)

	// --- Health checks, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Logger, deps.Readiness...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
