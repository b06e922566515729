package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/pricing"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// PublicHandler exposes unauthenticated browse endpoints returning
// sanitized data for guests: hotels, room types with display-ready
// rates, and bookable services.
type PublicHandler struct {
	HotelRepo    *repository.HotelRepo
	RoomTypeRepo *repository.RoomTypeRepo
	ServiceRepo  *repository.ServiceRepo
}

func NewPublicHandler(hotelRepo *repository.HotelRepo, roomTypeRepo *repository.RoomTypeRepo, serviceRepo *repository.ServiceRepo) *PublicHandler {
	if hotelRepo == nil || roomTypeRepo == nil || serviceRepo == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{HotelRepo: hotelRepo, RoomTypeRepo: roomTypeRepo, ServiceRepo: serviceRepo}
}

// publicHotel hides owner and tax internals from guests.
type publicHotel struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	City        string `json:"city"`
	Currency    string `json:"currency"`
}

func toPublicHotel(h *model.Hotel) publicHotel {
	return publicHotel{ID: h.ID, Name: h.Name, Description: h.Description, City: h.City, Currency: h.Currency}
}

// publicRoomType decorates rates with formatted per-night strings so
// UIs render them consistently.
type publicRoomType struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Capacity       int     `json:"capacity"`
	PriceOffPeak   float64 `json:"price_off_peak"`
	PricePeak      float64 `json:"price_peak"`
	DisplayOffPeak string  `json:"display_off_peak"`
	DisplayPeak    string  `json:"display_peak"`
}

// GetHotels handles GET /v1/hotels.
func (p *PublicHandler) GetHotels(c echo.Context) error {
	hotels, err := p.HotelRepo.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]publicHotel, 0, len(hotels))
	for _, h := range hotels {
		items = append(items, toPublicHotel(h))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetHotel handles GET /v1/hotels/:id.
func (p *PublicHandler) GetHotel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	hotel, err := p.HotelRepo.GetActiveByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toPublicHotel(hotel))
}

// GetHotelRoomTypes handles GET /v1/hotels/:id/room-types.
func (p *PublicHandler) GetHotelRoomTypes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	hotel, err := p.HotelRepo.GetActiveByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	roomTypes, err := p.RoomTypeRepo.ListByHotel(c.Request().Context(), hotel.ID, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]publicRoomType, 0, len(roomTypes))
	for _, rt := range roomTypes {
		items = append(items, publicRoomType{
			ID:             rt.ID,
			Name:           rt.Name,
			Capacity:       rt.Capacity,
			PriceOffPeak:   rt.PriceOffPeak,
			PricePeak:      rt.PricePeak,
			DisplayOffPeak: pricing.FormatPricePerNight(rt.PriceOffPeak, hotel.Currency),
			DisplayPeak:    pricing.FormatPricePerNight(rt.PricePeak, hotel.Currency),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "currency": hotel.Currency})
}

// GetHotelServices handles GET /v1/hotels/:id/services.
func (p *PublicHandler) GetHotelServices(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	hotel, err := p.HotelRepo.GetActiveByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	services, err := p.ServiceRepo.ListActiveByHotel(c.Request().Context(), hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": services, "currency": hotel.Currency})
}
