package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/letsgrowesports/blog-api/docs"
	"github.com/letsgrowesports/blog-api/internal/api/handler"
	"github.com/letsgrowesports/blog-api/internal/api/middleware"
	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs from the rest of the process.
type Dependencies struct {
	Log    zerolog.Logger
	Auth   ports.AuthService
	Blogs  ports.BlogService
	Access ports.AccessController
	Checks map[string]handler.DependencyCheck

	CORSOrigins   []string
	AuthRateLimit float64
	AuthRateBurst int

	// Registerer and Gatherer enable the HTTP metrics middleware and the
	// /metrics endpoint. Both are left nil in tests.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodPatch, http.MethodOptions,
		},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	if deps.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "blog",
			Registerer: deps.Registerer,
		}))
	}

	authn := middleware.NewAuthenticator(deps.Access)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Log)
	auth := e.Group("/auth", middleware.RateLimit(deps.AuthRateLimit, deps.AuthRateBurst))
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)

	// --- Blog routes ---
	blogHandler := handler.NewBlogHandler(deps.Blogs, deps.Log)
	blogs := e.Group("/blogs")
	blogs.GET("", blogHandler.List)
	blogs.GET("/author/:authorId", blogHandler.ListByAuthor)
	blogs.POST("/postBlog", blogHandler.Create, authn.RequireAdmin())
	blogs.PUT("/updateBlog/:id", blogHandler.Update, authn.RequireAdmin())
	blogs.DELETE("/deleteBlog/:id", blogHandler.Delete, authn.RequireAdmin())
	blogs.GET("/:game/:id", blogHandler.Get)
	blogs.POST("/:game/:id/comments", blogHandler.AddComment, authn.RequireSignedIn())
	blogs.GET("/:game", blogHandler.ListByGame)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Checks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operational ---
	if deps.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
