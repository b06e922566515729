package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/repository"
)

// OwnerHandler bundles the repositories owners need to manage their
// hotels, room types, services and cancellation policies.
type OwnerHandler struct {
	HotelRepo    *repository.HotelRepo
	RoomTypeRepo *repository.RoomTypeRepo
	ServiceRepo  *repository.ServiceRepo
	RuleRepo     *repository.CancellationRuleRepo
	BookingRepo  *repository.BookingRepo
}

// NewOwnerHandler constructs an OwnerHandler and panics if any
// dependency is nil.
func NewOwnerHandler(hotelRepo *repository.HotelRepo, roomTypeRepo *repository.RoomTypeRepo, serviceRepo *repository.ServiceRepo, ruleRepo *repository.CancellationRuleRepo, bookingRepo *repository.BookingRepo) *OwnerHandler {
	if hotelRepo == nil || roomTypeRepo == nil || serviceRepo == nil || ruleRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{
		HotelRepo:    hotelRepo,
		RoomTypeRepo: roomTypeRepo,
		ServiceRepo:  serviceRepo,
		RuleRepo:     ruleRepo,
		BookingRepo:  bookingRepo,
	}
}

// getUserID extracts the user_id set by the JWT middleware and
// converts it to uint64. JWT numeric claims decode as float64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}
