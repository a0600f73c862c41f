package api

import (
	"net"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskboard/task-system/docs"
	"github.com/taskboard/task-system/internal/api/handler"
	"github.com/taskboard/task-system/internal/api/metrics"
	"github.com/taskboard/task-system/internal/api/middleware"
	"github.com/taskboard/task-system/internal/core/ports"
)

const defaultBodyLimit = "10M"

// Dependencies is everything the HTTP layer needs, built by the composition root.
type Dependencies struct {
	AuthService ports.AuthService
	UserService ports.UserService
	TaskService ports.TaskService
	Tokens      ports.TokenGenerator

	// Limiter guards /v1/auth/*. Nil disables rate limiting.
	Limiter   middleware.Limiter
	Readiness []handler.Dependency

	Logger         zerolog.Logger
	Registerer     prometheus.Registerer // defaults to prometheus.DefaultRegisterer
	Gatherer       prometheus.Gatherer   // defaults to prometheus.DefaultGatherer
	AllowedOrigins []string
	BodyLimit      string
	// TrustedProxies are the only peers whose X-Forwarded-For is honoured
	// when resolving the client IP. Empty means the socket address is used.
	TrustedProxies []*net.IPNet
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if d.BodyLimit == "" {
		d.BodyLimit = defaultBodyLimit
	}
	m := metrics.New(d.Registerer)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()
	e.IPExtractor = ipExtractor(d.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.Secure())
	if len(d.AllowedOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: d.AllowedOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.BodyLimit(d.BodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "task_system",
		Registerer: d.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService, m)
	userHandler := handler.NewUserHandler(d.UserService)
	taskHandler := handler.NewTaskHandler(d.TaskService, m)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(m, d.Readiness...)

	v1 := e.Group("/v1")

	// --- Health probes (no auth required) ---
	v1.GET("/healthz", healthHandler.Liveness)           // liveness  – is the process alive?
	v1.GET("/healthz/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Auth routes ---
	authGroup := v1.Group("/auth")
	if d.Limiter != nil {
		authGroup.Use(middleware.RateLimit(d.Limiter, "auth", m, d.Logger))
	}
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// --- User routes (no auth required) ---
	v1.POST("/users", userHandler.CreateUser)
	v1.GET("/users", userHandler.GetUserByEmail)

	// --- Task routes ---
	tasks := v1.Group("/tasks", middleware.Auth(d.Tokens, m))
	tasks.GET("", taskHandler.ListTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	// --- Operational ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// ipExtractor resolves c.RealIP(), which keys the rate limiter. Forwarding
// headers are ignored unless the peer is a listed proxy.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
