// Package router maps the HTTP surface onto the handlers and decides which
// routes sit behind the bearer-token gate.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nd199/movie-booking/internal/config"
	"github.com/nd199/movie-booking/internal/handler"
	"github.com/nd199/movie-booking/internal/middleware"
	"github.com/nd199/movie-booking/internal/model"
	"github.com/nd199/movie-booking/internal/utils"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Customers *handler.CustomerHandler
	Movies    *handler.MovieHandler
	Roles     *handler.RoleHandler
	Auth      *handler.AuthHandler
	Tokens    *utils.TokenIssuer
	Accounts  middleware.AccountLoader
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// Register wires all routes. The token gate runs on every /api/v1 request
// but never rejects by itself; RequireAuth/RequireRole on the protected
// groups produce the 401/403 outcomes.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api/v1",
		middleware.NewRateLimiter(d.RateLimit, d.Redis),
		middleware.Authenticate(d.Tokens, d.Accounts))

	// Public: registration and login.
	api.POST("/customers", d.Customers.Register)
	api.POST("/admins", d.Customers.RegisterAdmin)
	api.POST("/auth/login", d.Auth.Login)

	// Public by design: the movie catalogue. Reads go through the Redis
	// response cache.
	cached := middleware.NewResponseCache(d.Cache, d.Redis)
	api.POST("/movies", d.Movies.Create)
	api.GET("/movies", d.Movies.List, cached)
	api.GET("/movies/:id", d.Movies.Get, cached)
	api.PUT("/movies/:id", d.Movies.Update)
	api.DELETE("/movies/:id", d.Movies.Delete)

	// Authenticated: account reads, updates and entitlements.
	authed := api.Group("/customers", middleware.RequireAuth())
	authed.GET("", d.Customers.List)
	authed.GET("/:id", d.Customers.Get)
	authed.PUT("/:id", d.Customers.Update)
	authed.DELETE("/:id", d.Customers.Delete)
	authed.PUT("/add-movie/:customerId/:movieId", d.Customers.AddMovie)
	authed.PUT("/remove-movie/:customerId/:movieId", d.Customers.RemoveMovie)

	// Admin-only: role administration.
	roles := api.Group("/roles", middleware.RequireAuth(), middleware.RequireRole(model.RoleAdmin))
	roles.POST("", d.Roles.Create)
	roles.GET("", d.Roles.List)
	roles.DELETE("/:id", d.Roles.Delete)
}
