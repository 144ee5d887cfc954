package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/parfumerie/storefront/internal/api/handler"
	"github.com/parfumerie/storefront/internal/api/middleware"
	"github.com/parfumerie/storefront/internal/core/ports"
	"github.com/parfumerie/storefront/internal/infrastructure/http/handlers"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	Users    ports.UserService
	Products ports.ProductService
	Seed     ports.SeedService
	Tokens   ports.TokenService
	Health   *handlers.HealthHandler
	Logger   zerolog.Logger

	// RecheckAdmin makes admin routes confirm the role against the store.
	RecheckAdmin bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// Each router owns its HTTP metrics registry; business counters live on
	// the default registry and are served alongside.
	registry := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "storefront",
		Registerer: registry,
		Skipper:    skipOperational,
	}))

	// --- Dependencies ---
	authenticated := middleware.Auth(deps.Tokens)
	var verifier middleware.RoleVerifier
	if deps.RecheckAdmin {
		verifier = middleware.StoredRole(deps.Users)
	}
	adminOnly := middleware.AdminOnly(verifier)

	users := handler.NewUserHandler(deps.Users, deps.Tokens)
	products := handler.NewProductHandler(deps.Products)
	seed := handler.NewSeedHandler(deps.Seed)

	// --- Catalog ---
	p := e.Group("/api/products")
	p.GET("", products.List)
	p.GET("/admin", products.List, authenticated, adminOnly)
	p.GET("/search", products.Search)
	p.GET("/categories", products.Categories)
	p.GET("/slug/:slug", products.GetBySlug)
	p.GET("/:id", products.Get)
	p.POST("", products.Create, authenticated, adminOnly)
	p.PUT("/:id", products.Update, authenticated, adminOnly)
	p.DELETE("/:id", products.Delete, authenticated, adminOnly)

	// --- Accounts ---
	u := e.Group("/api/users")
	u.POST("/signin", users.Signin)
	u.POST("/signup", users.Signup)
	u.PUT("/profile", users.UpdateProfile, authenticated)
	u.GET("", users.List, authenticated, adminOnly)
	u.GET("/:id", users.Get, authenticated, adminOnly)
	u.PUT("/:id", users.Update, authenticated)
	u.DELETE("/:id", users.Delete, authenticated, adminOnly)

	// --- Seed ---
	e.GET("/api/seed", seed.Seed)

	// --- Operational (no auth required) ---
	if deps.Health != nil {
		e.GET("/health", deps.Health.Liveness)
		e.GET("/health/ready", deps.Health.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, registry},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func skipOperational(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/metrics" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/swagger")
}
