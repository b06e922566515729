package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// roomTypeReq carries the two nightly rates. Both must be present and
// non-negative: the pricing engine documents non-negative rates as a
// caller precondition, so the API boundary is where that is enforced.
type roomTypeReq struct {
	Name         string   `json:"name"`
	Capacity     int      `json:"capacity"`
	PriceOffPeak *float64 `json:"price_off_peak"`
	PricePeak    *float64 `json:"price_peak"`
	IsActive     *bool    `json:"is_active"`
}

func (r *roomTypeReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name is required"
	}
	if r.Capacity <= 0 {
		return "capacity must be positive"
	}
	if r.PriceOffPeak == nil || r.PricePeak == nil {
		return "price_off_peak and price_peak are required"
	}
	if *r.PriceOffPeak < 0 || *r.PricePeak < 0 {
		return "prices cannot be negative"
	}
	return ""
}

// CreateRoomType handles POST /v1/owner/hotels/:hotel_id/room-types.
func (h *OwnerHandler) CreateRoomType(c echo.Context) error {
	hotel, errResp := h.requireOwnedHotel(c, "hotel_id")
	if hotel == nil {
		return errResp
	}
	var body roomTypeReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rt := &model.RoomType{
		HotelID:      hotel.ID,
		Name:         body.Name,
		Capacity:     body.Capacity,
		PriceOffPeak: *body.PriceOffPeak,
		PricePeak:    *body.PricePeak,
	}
	if err := h.RoomTypeRepo.Create(c.Request().Context(), rt); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room type name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room type"})
	}
	return c.JSON(http.StatusCreated, rt)
}

// UpdateRoomType handles PUT /v1/owner/hotels/:hotel_id/room-types/:id.
func (h *OwnerHandler) UpdateRoomType(c echo.Context) error {
	hotel, errResp := h.requireOwnedHotel(c, "hotel_id")
	if hotel == nil {
		return errResp
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body roomTypeReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rt := &model.RoomType{
		ID:           id,
		HotelID:      hotel.ID,
		Name:         body.Name,
		Capacity:     body.Capacity,
		PriceOffPeak: *body.PriceOffPeak,
		PricePeak:    *body.PricePeak,
		IsActive:     true,
	}
	if body.IsActive != nil {
		rt.IsActive = *body.IsActive
	}
	if err := h.RoomTypeRepo.UpdateByIDAndHotel(c.Request().Context(), rt); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.RoomTypeRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrRoomTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// ListRoomTypes handles GET /v1/owner/hotels/:hotel_id/room-types.
func (h *OwnerHandler) ListRoomTypes(c echo.Context) error {
	hotel, errResp := h.requireOwnedHotel(c, "hotel_id")
	if hotel == nil {
		return errResp
	}
	items, err := h.RoomTypeRepo.ListByHotel(c.Request().Context(), hotel.ID, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
