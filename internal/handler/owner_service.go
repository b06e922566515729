package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

type serviceReq struct {
	Name      string   `json:"name"`
	UnitPrice *float64 `json:"unit_price"`
	IsActive  *bool    `json:"is_active"`
}

func (r *serviceReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name is required"
	}
	if r.UnitPrice == nil {
		return "unit_price is required"
	}
	if *r.UnitPrice < 0 {
		return "unit_price cannot be negative"
	}
	return ""
}

// CreateService handles POST /v1/owner/hotels/:hotel_id/services.
func (h *OwnerHandler) CreateService(c echo.Context) error {
	hotel, errResp := h.requireOwnedHotel(c, "hotel_id")
	if hotel == nil {
		return errResp
	}
	var body serviceReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	svc := &model.HotelService{
		HotelID:   hotel.ID,
		Name:      body.Name,
		UnitPrice: *body.UnitPrice,
	}
	if err := h.ServiceRepo.Create(c.Request().Context(), svc); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "service name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create service"})
	}
	return c.JSON(http.StatusCreated, svc)
}

// UpdateService handles PUT /v1/owner/hotels/:hotel_id/services/:id.
func (h *OwnerHandler) UpdateService(c echo.Context) error {
	hotel, errResp := h.requireOwnedHotel(c, "hotel_id")
	if hotel == nil {
		return errResp
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body serviceReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	svc := &model.HotelService{
		ID:        id,
		HotelID:   hotel.ID,
		Name:      body.Name,
		UnitPrice: *body.UnitPrice,
		IsActive:  true,
	}
	if body.IsActive != nil {
		svc.IsActive = *body.IsActive
	}
	if err := h.ServiceRepo.UpdateByIDAndHotel(c.Request().Context(), svc); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	// Re-read so the response carries the stored timestamps.
	updated, err := h.ServiceRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrServiceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// ListServices handles GET /v1/owner/hotels/:hotel_id/services.
func (h *OwnerHandler) ListServices(c echo.Context) error {
	hotel, errResp := h.requireOwnedHotel(c, "hotel_id")
	if hotel == nil {
		return errResp
	}
	items, err := h.ServiceRepo.ListByHotel(c.Request().Context(), hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
