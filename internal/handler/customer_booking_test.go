package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// ----- fakes -----

// GetByID makes fakeHotels satisfy HotelStore as well.
func (f *fakeHotels) GetByID(_ context.Context, id uint64) (*model.Hotel, error) {
	if f.hotel != nil && f.hotel.ID == id {
		return f.hotel, nil
	}
	return nil, repository.ErrHotelNotFound
}

type fakeUsers struct {
	user model.User
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	if f.user.ID == id {
		return f.user, nil
	}
	return model.User{}, sql.ErrNoRows
}

type fakeBookings struct {
	booking *model.Booking
	lines   []model.BookingService

	created     *model.Booking
	cancelCalls int
	cancelErr   error
	cancelFee   float64
	cancelRef   float64
}

func (f *fakeBookings) Create(_ context.Context, b *model.Booking, lines []model.BookingService) error {
	b.ID = 21
	b.Status = model.BookingStatusConfirmed
	f.created = b
	f.lines = lines
	return nil
}

func (f *fakeBookings) GetByIDAndUser(_ context.Context, id, userID uint64) (*model.Booking, error) {
	if f.booking != nil && f.booking.ID == id && f.booking.UserID == userID {
		cp := *f.booking
		return &cp, nil
	}
	return nil, repository.ErrBookingNotFound
}

func (f *fakeBookings) ListByUser(_ context.Context, userID uint64) ([]*model.Booking, error) {
	if f.booking != nil && f.booking.UserID == userID {
		return []*model.Booking{f.booking}, nil
	}
	return nil, nil
}

func (f *fakeBookings) ListServices(_ context.Context, _ uint64) ([]model.BookingService, error) {
	return f.lines, nil
}

func (f *fakeBookings) Cancel(_ context.Context, id, userID uint64, fee, refund float64) error {
	f.cancelCalls++
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.booking.Status = model.BookingStatusCancelled
	f.cancelFee = fee
	f.cancelRef = refund
	return nil
}

const testGuestID = 9

func confirmedBooking() *model.Booking {
	return &model.Booking{
		ID:           21,
		UserID:       testGuestID,
		HotelID:      1,
		RoomTypeID:   2,
		CheckIn:      time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:     time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Nights:       5,
		RoomPerNight: 100,
		RoomCost:     500,
		TotalCost:    500,
		Currency:     "GBP",
		Status:       model.BookingStatusConfirmed,
	}
}

func testCustomerHandler(bookings *fakeBookings, rules []*model.CancellationRule, now time.Time) *CustomerHandler {
	h := NewCustomerHandler(
		bookings,
		&fakeHotels{hotel: &model.Hotel{ID: 1, Name: "Seaview", Currency: "GBP", TaxRate: 0.2, IsActive: true}},
		&fakeRoomTypes{roomType: &model.RoomType{ID: 2, HotelID: 1, Name: "Double", Capacity: 2, PriceOffPeak: 100, PricePeak: 150, IsActive: true}},
		&fakeServices{services: []*model.HotelService{
			{ID: 3, HotelID: 1, Name: "Breakfast", UnitPrice: 15, IsActive: true},
		}},
		&fakeRules{rules: rules},
		&fakeUsers{user: model.User{ID: testGuestID, Email: "guest@example.com", Role: "CUSTOMER", IsActive: true}},
	)
	h.now = func() time.Time { return now }
	return h
}

func doCancel(t *testing.T, h *CustomerHandler, bookingID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/"+bookingID+"/cancel", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(bookingID)
	c.Set("user_id", float64(testGuestID)) // as stored by the JWT middleware
	if err := h.CancelBooking(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

// ----- cancel -----

func TestCancelBooking_AppliesPolicy(t *testing.T) {
	// 6 days of notice against overlapping tiers stored longest notice
	// first: the 20% tier must win and the fee comes off the frozen
	// total, not a re-quote.
	rules := []*model.CancellationRule{
		{ID: 1, HotelID: 1, DaysMin: 5, DaysMax: 10, FeeType: "percentage", FeeValue: 20, Description: "moderate notice", IsActive: true},
		{ID: 2, HotelID: 1, DaysMin: 0, DaysMax: 7, FeeType: "percentage", FeeValue: 50, Description: "short notice", IsActive: true},
	}
	bookings := &fakeBookings{booking: confirmedBooking()}
	h := testCustomerHandler(bookings, rules, time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC))

	rec := doCancel(t, h, "21")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp cancelResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.DaysBeforeCheckIn != 6 {
		t.Errorf("days = %d, want 6", resp.DaysBeforeCheckIn)
	}
	if resp.FeeAmount != 100 || resp.RefundAmount != 400 {
		t.Errorf("fee/refund = %v/%v, want 100/400", resp.FeeAmount, resp.RefundAmount)
	}
	if resp.PolicyDescription != "moderate notice" {
		t.Errorf("policy = %q, want moderate notice", resp.PolicyDescription)
	}
	if resp.Booking.Status != model.BookingStatusCancelled {
		t.Errorf("booking status = %q, want CANCELLED", resp.Booking.Status)
	}
	if bookings.cancelCalls != 1 {
		t.Errorf("cancel calls = %d, want 1", bookings.cancelCalls)
	}
	if bookings.cancelFee != 100 || bookings.cancelRef != 400 {
		t.Errorf("persisted fee/refund = %v/%v, want 100/400", bookings.cancelFee, bookings.cancelRef)
	}
	if resp.DisplayFee != "£100.00" || resp.DisplayRefund != "£400.00" {
		t.Errorf("display fee/refund = %q/%q", resp.DisplayFee, resp.DisplayRefund)
	}
}

func TestCancelBooking_PolicyGapLeavesBookingUntouched(t *testing.T) {
	// 40 days of notice, policy only covers 0-30: the gap is a 404 and
	// the booking row must stay confirmed, not cancel for free.
	rules := []*model.CancellationRule{
		{ID: 1, HotelID: 1, DaysMin: 0, DaysMax: 30, FeeType: "percentage", FeeValue: 50, Description: "late", IsActive: true},
	}
	bookings := &fakeBookings{booking: confirmedBooking()}
	h := testCustomerHandler(bookings, rules, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	rec := doCancel(t, h, "21")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body: %s)", rec.Code, rec.Body.String())
	}
	if bookings.cancelCalls != 0 {
		t.Errorf("cancel calls = %d, want 0", bookings.cancelCalls)
	}
	if bookings.booking.Status != model.BookingStatusConfirmed {
		t.Errorf("booking status = %q, want CONFIRMED", bookings.booking.Status)
	}
	if bookings.booking.CancellationFee != nil || bookings.booking.RefundAmount != nil {
		t.Error("fee/refund set on a booking that was not cancelled")
	}
}

func TestCancelBooking_NoPolicy(t *testing.T) {
	bookings := &fakeBookings{booking: confirmedBooking()}
	h := testCustomerHandler(bookings, nil, time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC))

	rec := doCancel(t, h, "21")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body: %s)", rec.Code, rec.Body.String())
	}
	if bookings.cancelCalls != 0 {
		t.Errorf("cancel calls = %d, want 0", bookings.cancelCalls)
	}
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	rules := []*model.CancellationRule{
		{ID: 1, HotelID: 1, DaysMin: 0, DaysMax: 9999, FeeType: "percentage", FeeValue: 20, Description: "any notice", IsActive: true},
	}
	booking := confirmedBooking()
	booking.Status = model.BookingStatusCancelled
	bookings := &fakeBookings{booking: booking}
	h := testCustomerHandler(bookings, rules, time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC))

	rec := doCancel(t, h, "21")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body: %s)", rec.Code, rec.Body.String())
	}
	if bookings.cancelCalls != 0 {
		t.Errorf("cancel calls = %d, want 0", bookings.cancelCalls)
	}
}

func TestCancelBooking_ConcurrentCancelConflict(t *testing.T) {
	// The booking reads as confirmed but another request wins the
	// update: the repository's status guard reports ErrConflict and the
	// handler must answer 409, same as the already-cancelled read.
	rules := []*model.CancellationRule{
		{ID: 1, HotelID: 1, DaysMin: 0, DaysMax: 9999, FeeType: "percentage", FeeValue: 20, Description: "any notice", IsActive: true},
	}
	bookings := &fakeBookings{booking: confirmedBooking(), cancelErr: repository.ErrConflict}
	h := testCustomerHandler(bookings, rules, time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC))

	rec := doCancel(t, h, "21")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body: %s)", rec.Code, rec.Body.String())
	}
	if bookings.cancelCalls != 1 {
		t.Errorf("cancel calls = %d, want 1", bookings.cancelCalls)
	}
}

func TestCancelBooking_NotFound(t *testing.T) {
	bookings := &fakeBookings{booking: confirmedBooking()}
	h := testCustomerHandler(bookings, nil, time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC))

	rec := doCancel(t, h, "99")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body: %s)", rec.Code, rec.Body.String())
	}
}

// ----- create -----

func doCreate(t *testing.T, h *CustomerHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(testGuestID))
	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestCreateBooking_PricesServerSide(t *testing.T) {
	bookings := &fakeBookings{}
	h := testCustomerHandler(bookings, nil, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	rec := doCreate(t, h, `{"hotel_id":1,"room_type_id":2,"check_in":"2026-06-01","check_out":"2026-06-04","services":[{"service_id":3,"quantity":2}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}
	if bookings.created == nil {
		t.Fatal("booking was not persisted")
	}
	// 3 off-peak nights at 100 + breakfast 15x2, 20% tax on 330.
	if bookings.created.RoomPerNight != 100 || bookings.created.RoomCost != 300 {
		t.Errorf("room = %v/%v, want 100/300", bookings.created.RoomPerNight, bookings.created.RoomCost)
	}
	if bookings.created.ServicesCost != 30 || bookings.created.TotalCost != 396 {
		t.Errorf("services/total = %v/%v, want 30/396", bookings.created.ServicesCost, bookings.created.TotalCost)
	}
	var resp bookingView
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.DisplayTotal != "£396.00" {
		t.Errorf("display total = %q, want £396.00", resp.DisplayTotal)
	}
	if len(resp.Services) != 1 || resp.Services[0].LineTotal != 30 {
		t.Errorf("service lines = %+v", resp.Services)
	}
}

func TestCreateBooking_InvertedDates(t *testing.T) {
	bookings := &fakeBookings{}
	h := testCustomerHandler(bookings, nil, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	rec := doCreate(t, h, `{"hotel_id":1,"room_type_id":2,"check_in":"2026-06-04","check_out":"2026-06-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
	}
	if bookings.created != nil {
		t.Error("booking persisted despite invalid dates")
	}
}

func TestCreateBooking_UnknownService(t *testing.T) {
	bookings := &fakeBookings{}
	h := testCustomerHandler(bookings, nil, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	rec := doCreate(t, h, `{"hotel_id":1,"room_type_id":2,"check_in":"2026-06-01","check_out":"2026-06-04","services":[{"service_id":99,"quantity":1}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
	}
	if bookings.created != nil {
		t.Error("booking persisted despite unknown service")
	}
}
