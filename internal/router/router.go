// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/driveloop/vehicle-rental/internal/booking"
	"github.com/driveloop/vehicle-rental/internal/config"
	"github.com/driveloop/vehicle-rental/internal/handler"
	"github.com/driveloop/vehicle-rental/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check for load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Unauthenticated
// token operations live under /v1/auth; /v1/me requires a valid
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access only issues
	// a new access token against the existing one.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes the raw refresh token in the body, so it does not
	// need JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints.
// The optional Redis-backed cache and rate limiter protect these
// routes; with no Redis client both middlewares pass requests through
// untouched.
func RegisterPublic(e *echo.Echo, p *handler.PublicVehicleHandler, rdb *redis.Client) {
	mws := []echo.MiddlewareFunc{
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	}
	e.GET("/v1/vehicles", p.List, mws...)
	e.GET("/v1/vehicles/:id", p.Get, mws...)
	e.GET("/v1/vehicles/:id/reviews", p.ListReviews, mws...)
}

// RegisterOwner registers the owner fleet and booking-decision
// endpoints under /v1/owner.  Every route requires a JWT with the
// owner role.
func RegisterOwner(e *echo.Echo, v *handler.OwnerVehicleHandler, b *handler.OwnerBookingHandler, jwtSecret string) {
	g := e.Group("/v1/owner")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(string(booking.RoleOwner), string(booking.RoleAdmin)))

	g.POST("/vehicles", v.Create)
	g.GET("/vehicles", v.List)
	g.DELETE("/vehicles/:id", v.Delete)
	g.PATCH("/vehicles/:id/availability", v.SetAvailability)

	g.GET("/bookings", b.List)
	g.POST("/bookings/:id/accept", b.Accept)
	g.POST("/bookings/:id/decline", b.Decline)
	g.GET("/stats", b.Stats)
}

// RegisterRenter registers the renter-facing booking and review
// endpoints.  Owners can rent too, so any authenticated role passes.
func RegisterRenter(e *echo.Echo, b *handler.RenterBookingHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(
		string(booking.RoleRenter), string(booking.RoleOwner), string(booking.RoleAdmin)))

	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.List)
	g.POST("/bookings/:id/cancel", b.Cancel)
	g.POST("/vehicles/:id/reviews", b.CreateReview)
}

// RegisterAdmin registers the back-office endpoints under /v1/admin.
func RegisterAdmin(e *echo.Echo, a *handler.AdminBookingHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(string(booking.RoleAdmin)))

	g.POST("/bookings/:id/complete", a.Complete)
}
