package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// hotelReq is the owner-facing payload for creating or updating a
// hotel. TaxRate is a fraction (0.2 = 20%) and must stay in [0, 1].
type hotelReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Currency    string   `json:"currency"`
	TaxRate     *float64 `json:"tax_rate"`
	IsActive    *bool    `json:"is_active"`
}

func (r *hotelReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.City = strings.TrimSpace(r.City)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if r.Name == "" {
		return "name is required"
	}
	if r.Currency == "" {
		return "currency is required"
	}
	if r.TaxRate == nil {
		return "tax_rate is required"
	}
	if *r.TaxRate < 0 || *r.TaxRate > 1 {
		return "tax_rate must be a fraction between 0 and 1"
	}
	return ""
}

// CreateHotel handles POST /v1/owner/hotels.
func (h *OwnerHandler) CreateHotel(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body hotelReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	hotel := &model.Hotel{
		OwnerID:     ownerID,
		Name:        body.Name,
		Description: body.Description,
		City:        body.City,
		Currency:    body.Currency,
		TaxRate:     *body.TaxRate,
	}
	if err := h.HotelRepo.Create(c.Request().Context(), hotel); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hotel name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create hotel"})
	}
	return c.JSON(http.StatusCreated, hotel)
}

// UpdateHotel handles PUT /v1/owner/hotels/:id.
func (h *OwnerHandler) UpdateHotel(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body hotelReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	existing, err := h.HotelRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	existing.Name = body.Name
	existing.Description = body.Description
	existing.City = body.City
	existing.Currency = body.Currency
	existing.TaxRate = *body.TaxRate
	if body.IsActive != nil {
		existing.IsActive = *body.IsActive
	}
	if err := h.HotelRepo.UpdateByIDAndOwner(c.Request().Context(), existing); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hotel name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, _ := h.HotelRepo.GetByID(c.Request().Context(), id)
	return c.JSON(http.StatusOK, updated)
}

// ListHotels handles GET /v1/owner/hotels.
func (h *OwnerHandler) ListHotels(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.HotelRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListHotelBookings handles GET /v1/owner/hotels/:id/bookings for the
// owner dashboard.
func (h *OwnerHandler) ListHotelBookings(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.HotelRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.BookingRepo.ListByHotel(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// requireOwnedHotel loads a hotel and verifies ownership; used by the
// nested room type / service / rule handlers.
func (h *OwnerHandler) requireOwnedHotel(c echo.Context, hotelParam string) (*model.Hotel, error) {
	ownerID, err := getUserID(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := pathID(c, hotelParam)
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	hotel, err := h.HotelRepo.GetByIDAndOwner(c.Request().Context(), hotelID, ownerID)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return hotel, nil
}
