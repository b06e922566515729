package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// RegisterOwner registers OWNER-scoped endpoints under /v1/owner.
// All routes require a valid JWT and the OWNER role. Ownership of the
// hotel in the path is verified again inside each handler.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	// ---- Hotels ----
	g.POST("/hotels", o.CreateHotel)
	g.GET("/hotels", o.ListHotels)
	g.PUT("/hotels/:id", o.UpdateHotel)
	g.PATCH("/hotels/:id", o.UpdateHotel)
	g.GET("/hotels/:id/bookings", o.ListHotelBookings)

	// ---- Room types ----
	g.POST("/hotels/:hotel_id/room-types", o.CreateRoomType)
	g.GET("/hotels/:hotel_id/room-types", o.ListRoomTypes)
	g.PUT("/hotels/:hotel_id/room-types/:id", o.UpdateRoomType)
	g.PATCH("/hotels/:hotel_id/room-types/:id", o.UpdateRoomType)

	// ---- Services ----
	g.POST("/hotels/:hotel_id/services", o.CreateService)
	g.GET("/hotels/:hotel_id/services", o.ListServices)
	g.PUT("/hotels/:hotel_id/services/:id", o.UpdateService)
	g.PATCH("/hotels/:hotel_id/services/:id", o.UpdateService)

	// ---- Cancellation policy ----
	g.POST("/hotels/:hotel_id/cancellation-rules", o.CreateCancellationRule)
	g.GET("/hotels/:hotel_id/cancellation-rules", o.ListCancellationRules)
	g.PUT("/hotels/:hotel_id/cancellation-rules/:id", o.UpdateCancellationRule)
	g.PATCH("/hotels/:hotel_id/cancellation-rules/:id", o.UpdateCancellationRule)
	g.DELETE("/hotels/:hotel_id/cancellation-rules/:id", o.DeleteCancellationRule)
}
