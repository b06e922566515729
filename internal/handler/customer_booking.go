package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/pricing"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	queuepublisher "github.com/iliyamo/hotel-booking/internal/service"
)

// BookingStore is the booking persistence surface the customer flow
// needs. The concrete repository satisfies it; tests swap in fakes.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking, lines []model.BookingService) error
	GetByIDAndUser(ctx context.Context, id, userID uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error)
	ListServices(ctx context.Context, bookingID uint64) ([]model.BookingService, error)
	Cancel(ctx context.Context, id, userID uint64, fee, refund float64) error
}

// HotelStore extends HotelReader with the inactive-inclusive lookup
// the cancellation notifier needs: a hotel delisted after a booking
// was made must still be named in the guest's notification.
type HotelStore interface {
	HotelReader
	GetByID(ctx context.Context, id uint64) (*model.Hotel, error)
}

// UserReader resolves the guest's email for notifications.
type UserReader interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// CustomerHandler serves the authenticated guest flow: create a
// booking at engine-computed prices, list and inspect own bookings,
// and cancel with the fee resolved against the amounts frozen at
// booking time.
type CustomerHandler struct {
	Bookings  BookingStore
	Hotels    HotelStore
	RoomTypes RoomTypeReader
	Services  ServiceReader
	Rules     RuleReader
	Users     UserReader

	// now is swapped in tests to pin the cancellation clock.
	now func() time.Time
}

func NewCustomerHandler(bookings BookingStore, hotels HotelStore, roomTypes RoomTypeReader, services ServiceReader, rules RuleReader, users UserReader) *CustomerHandler {
	if bookings == nil || hotels == nil || roomTypes == nil || services == nil || rules == nil || users == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{
		Bookings:  bookings,
		Hotels:    hotels,
		RoomTypes: roomTypes,
		Services:  services,
		Rules:     rules,
		Users:     users,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type bookingServiceReq struct {
	ServiceID uint64 `json:"service_id"`
	Quantity  int    `json:"quantity"`
}

type createBookingReq struct {
	HotelID    uint64              `json:"hotel_id"`
	RoomTypeID uint64              `json:"room_type_id"`
	CheckIn    string              `json:"check_in"`
	CheckOut   string              `json:"check_out"`
	IsPeak     bool                `json:"is_peak"`
	Services   []bookingServiceReq `json:"services"`
}

// bookingView is the guest-facing booking representation with
// display-ready amounts alongside the raw numbers.
type bookingView struct {
	ID              uint64               `json:"id"`
	HotelID         uint64               `json:"hotel_id"`
	RoomTypeID      uint64               `json:"room_type_id"`
	CheckIn         string               `json:"check_in"`
	CheckOut        string               `json:"check_out"`
	Nights          int                  `json:"nights"`
	IsPeak          bool                 `json:"is_peak"`
	RoomPerNight    float64              `json:"room_per_night"`
	RoomCost        float64              `json:"room_cost"`
	ServicesCost    float64              `json:"services_cost"`
	TaxAmount       float64              `json:"tax_amount"`
	TotalCost       float64              `json:"total_cost"`
	Currency        string               `json:"currency"`
	Status          string               `json:"status"`
	CancellationFee *float64             `json:"cancellation_fee,omitempty"`
	RefundAmount    *float64             `json:"refund_amount,omitempty"`
	DisplayTotal    string               `json:"display_total"`
	Services        []bookingServiceView `json:"services,omitempty"`
}

type bookingServiceView struct {
	ServiceID   uint64  `json:"service_id"`
	ServiceName string  `json:"service_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

func toBookingView(b *model.Booking, lines []model.BookingService) bookingView {
	v := bookingView{
		ID:              b.ID,
		HotelID:         b.HotelID,
		RoomTypeID:      b.RoomTypeID,
		CheckIn:         b.CheckIn.Format(dateLayout),
		CheckOut:        b.CheckOut.Format(dateLayout),
		Nights:          b.Nights,
		IsPeak:          b.IsPeak,
		RoomPerNight:    b.RoomPerNight,
		RoomCost:        b.RoomCost,
		ServicesCost:    b.ServicesCost,
		TaxAmount:       b.TaxAmount,
		TotalCost:       b.TotalCost,
		Currency:        b.Currency,
		Status:          b.Status,
		CancellationFee: b.CancellationFee,
		RefundAmount:    b.RefundAmount,
		DisplayTotal:    pricing.FormatCurrency(b.TotalCost, b.Currency),
	}
	for _, l := range lines {
		v.Services = append(v.Services, bookingServiceView{
			ServiceID:   l.ServiceID,
			ServiceName: l.ServiceName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			LineTotal:   l.UnitPrice * float64(l.Quantity),
		})
	}
	return v
}

// CreateBooking handles POST /v1/bookings. Prices are always computed
// server-side from the stored rates; the client never sends amounts.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body createBookingReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.HotelID == 0 || body.RoomTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id and room_type_id are required"})
	}
	checkIn, err := time.Parse(dateLayout, body.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := time.Parse(dateLayout, body.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	if pricing.Nights(checkIn, checkOut) <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}
	for _, s := range body.Services {
		if s.ServiceID == 0 || s.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "service lines need a service_id and a positive quantity"})
		}
	}

	ctx := c.Request().Context()
	hotel, err := h.Hotels.GetActiveByID(ctx, body.HotelID)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	roomType, err := h.RoomTypes.GetActiveByHotel(ctx, hotel.ID, body.RoomTypeID)
	if err != nil {
		if err == repository.ErrRoomTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	available, err := h.Services.ListActiveByHotel(ctx, hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	byID := make(map[uint64]*model.HotelService, len(available))
	for _, svc := range available {
		byID[svc.ID] = svc
	}

	selections := make([]pricing.ServiceSelection, 0, len(body.Services))
	lines := make([]model.BookingService, 0, len(body.Services))
	for _, s := range body.Services {
		svc, ok := byID[s.ServiceID]
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown service for this hotel"})
		}
		selections = append(selections, pricing.ServiceSelection{
			ServiceName: svc.Name,
			UnitPrice:   svc.UnitPrice,
			Quantity:    s.Quantity,
		})
		lines = append(lines, model.BookingService{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			UnitPrice:   svc.UnitPrice,
			Quantity:    s.Quantity,
		})
	}

	rp := pricing.RoomPriceByDates(roomType.PriceOffPeak, roomType.PricePeak, checkIn, checkOut, body.IsPeak)
	itemized := pricing.ItemizedCost(rp, selections, hotel.TaxRate, hotel.Currency)

	booking := &model.Booking{
		UserID:       userID,
		HotelID:      hotel.ID,
		RoomTypeID:   roomType.ID,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Nights:       rp.Nights,
		IsPeak:       rp.IsPeak,
		RoomPerNight: rp.PerNight,
		RoomCost:     rp.RoomCost,
		ServicesCost: itemized.ServicesCost,
		TaxAmount:    itemized.TaxAmount,
		TotalCost:    itemized.TotalCost,
		Currency:     hotel.Currency,
	}
	if err := h.Bookings.Create(ctx, booking, lines); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	// Best-effort notification; a broker outage never fails the booking.
	go h.publishConfirmed(booking, hotel, roomType)

	return c.JSON(http.StatusCreated, toBookingView(booking, lines))
}

func (h *CustomerHandler) publishConfirmed(b *model.Booking, hotel *model.Hotel, roomType *model.RoomType) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	email := ""
	if u, err := h.Users.GetByID(ctx, b.UserID); err == nil {
		email = u.Email
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:    b.ID,
		UserID:       b.UserID,
		GuestEmail:   email,
		HotelID:      hotel.ID,
		HotelName:    hotel.Name,
		RoomTypeName: roomType.Name,
		CheckIn:      b.CheckIn.Format(dateLayout),
		CheckOut:     b.CheckOut.Format(dateLayout),
		Nights:       b.Nights,
		TotalCost:    b.TotalCost,
		Currency:     b.Currency,
		ConfirmedAt:  h.now().Format(time.RFC3339),
	}
	if err := queuepublisher.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("booking %d: publish confirmed event failed: %v", b.ID, err)
	}
}

// ListBookings handles GET /v1/bookings.
func (h *CustomerHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toBookingView(b, nil))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:id, including service lines.
func (h *CustomerHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	booking, err := h.Bookings.GetByIDAndUser(c.Request().Context(), id, userID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	lines, err := h.Bookings.ListServices(c.Request().Context(), booking.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toBookingView(booking, lines))
}

// cancelResp reports the applied policy alongside the money amounts.
type cancelResp struct {
	Booking           bookingView     `json:"booking"`
	DaysBeforeCheckIn int             `json:"days_before_checkin"`
	FeeAmount         float64         `json:"fee_amount"`
	RefundAmount      float64         `json:"refund_amount"`
	ApplicableRule    pricing.FeeRule `json:"applicable_rule"`
	PolicyDescription string          `json:"policy_description"`
	DisplayFee        string          `json:"display_fee"`
	DisplayRefund     string          `json:"display_refund"`
}

// CancelBooking handles POST /v1/bookings/:id/cancel. The fee is
// resolved against the hotel's current active rules but computed from
// the amounts frozen on the booking row. When no rule covers the
// notice period the booking is left untouched and the caller gets a
// 404: a policy gap must never turn into a free cancellation.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	booking, err := h.Bookings.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if booking.Status != model.BookingStatusConfirmed {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
	}

	stored, err := h.Rules.ListActiveByHotel(ctx, booking.HotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if len(stored) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel has no cancellation policy"})
	}

	days := pricing.DaysBeforeCheckIn(booking.CheckIn, h.now())
	rule, ok := pricing.ApplicableRule(days, toFeeRules(stored))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no cancellation rule covers this notice period"})
	}
	result := pricing.CancellationFee(days, booking.RoomPerNight, booking.TotalCost, rule)

	if err := h.Bookings.Cancel(ctx, booking.ID, userID, result.FeeAmount, result.RefundAmount); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not cancel booking"})
	}
	booking.Status = model.BookingStatusCancelled
	booking.CancellationFee = &result.FeeAmount
	booking.RefundAmount = &result.RefundAmount

	go h.publishCancelled(booking, result)

	return c.JSON(http.StatusOK, cancelResp{
		Booking:           toBookingView(booking, nil),
		DaysBeforeCheckIn: result.DaysBeforeCheckIn,
		FeeAmount:         result.FeeAmount,
		RefundAmount:      result.RefundAmount,
		ApplicableRule:    result.Rule,
		PolicyDescription: result.Rule.Description,
		DisplayFee:        pricing.FormatCurrency(result.FeeAmount, booking.Currency),
		DisplayRefund:     pricing.FormatCurrency(result.RefundAmount, booking.Currency),
	})
}

func (h *CustomerHandler) publishCancelled(b *model.Booking, result pricing.FeeResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	email := ""
	if u, err := h.Users.GetByID(ctx, b.UserID); err == nil {
		email = u.Email
	}
	hotelName := ""
	if hotel, err := h.Hotels.GetByID(ctx, b.HotelID); err == nil {
		hotelName = hotel.Name
	}
	ev := queue.BookingCancelledEvent{
		BookingID:         b.ID,
		UserID:            b.UserID,
		GuestEmail:        email,
		HotelID:           b.HotelID,
		HotelName:         hotelName,
		CheckIn:           b.CheckIn.Format(dateLayout),
		DaysBeforeCheckIn: result.DaysBeforeCheckIn,
		FeeAmount:         result.FeeAmount,
		RefundAmount:      result.RefundAmount,
		Currency:          b.Currency,
		PolicyDescription: result.Rule.Description,
		CancelledAt:       h.now().Format(time.RFC3339),
	}
	if err := queuepublisher.PublishBookingCancelled(ctx, ev); err != nil {
		log.Printf("booking %d: publish cancelled event failed: %v", b.ID, err)
	}
}
