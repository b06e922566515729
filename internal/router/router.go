// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes and their middleware.
// Unauthenticated operations live under /v1/auth; protected endpoints
// live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access issues a new
	// access token without rotating.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes the refresh token in the body and does not require
	// a JWT, so an expired session can still be terminated.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("OWNER", "CUSTOMER"))
	auth.GET("/me", a.Me)

	// Alias so clients can call either /v1/auth/logout or /v1/logout.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse and estimate
// endpoints. No JWT or role middleware applies; the extra middlewares
// (rate limiting, response caching) are supplied by the caller so
// deployments without Redis simply pass none.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, pr *handler.PricingHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	// Hotel catalogue
	g.GET("/hotels", p.GetHotels)
	g.GET("/hotels/:id", p.GetHotel)
	g.GET("/hotels/:id/room-types", p.GetHotelRoomTypes)
	g.GET("/hotels/:id/services", p.GetHotelServices)

	// Stateless estimates. Quote prices a stay; cancellation-fee
	// resolves the hotel's policy for a hypothetical cancellation.
	g.GET("/hotels/:id/room-types/:rtid/quote", pr.Quote)
	g.GET("/hotels/:id/cancellation-fee", pr.CancellationFee)
}
