package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// ----- fakes -----

type fakeHotels struct {
	hotel *model.Hotel
}

func (f *fakeHotels) GetActiveByID(_ context.Context, id uint64) (*model.Hotel, error) {
	if f.hotel != nil && f.hotel.ID == id {
		return f.hotel, nil
	}
	return nil, repository.ErrHotelNotFound
}

type fakeRoomTypes struct {
	roomType *model.RoomType
}

func (f *fakeRoomTypes) GetActiveByHotel(_ context.Context, hotelID, id uint64) (*model.RoomType, error) {
	if f.roomType != nil && f.roomType.HotelID == hotelID && f.roomType.ID == id {
		return f.roomType, nil
	}
	return nil, repository.ErrRoomTypeNotFound
}

type fakeServices struct {
	services []*model.HotelService
}

func (f *fakeServices) ListActiveByHotel(_ context.Context, _ uint64) ([]*model.HotelService, error) {
	return f.services, nil
}

type fakeRules struct {
	rules []*model.CancellationRule
}

func (f *fakeRules) ListActiveByHotel(_ context.Context, _ uint64) ([]*model.CancellationRule, error) {
	return f.rules, nil
}

func testPricingHandler(rules []*model.CancellationRule) *PricingHandler {
	return NewPricingHandler(
		&fakeHotels{hotel: &model.Hotel{ID: 1, Name: "Seaview", Currency: "GBP", TaxRate: 0.2, IsActive: true}},
		&fakeRoomTypes{roomType: &model.RoomType{ID: 2, HotelID: 1, Name: "Double", Capacity: 2, PriceOffPeak: 100, PricePeak: 150, IsActive: true}},
		&fakeServices{services: []*model.HotelService{
			{ID: 3, HotelID: 1, Name: "Breakfast", UnitPrice: 15, IsActive: true},
			{ID: 4, HotelID: 1, Name: "Parking", UnitPrice: 10, IsActive: true},
		}},
		&fakeRules{rules: rules},
	)
}

func doGET(t *testing.T, h echo.HandlerFunc, target string, names, values []string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

// ----- quote -----

func TestQuote_RoomOnly(t *testing.T) {
	h := testPricingHandler(nil)
	rec := doGET(t, h.Quote,
		"/v1/hotels/1/room-types/2/quote?check_in=2026-06-01&check_out=2026-06-04",
		[]string{"id", "rtid"}, []string{"1", "2"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp quoteResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Pricing.Nights != 3 {
		t.Errorf("nights = %d, want 3", resp.Pricing.Nights)
	}
	if resp.Itemized.RoomCost != 300 {
		t.Errorf("room cost = %v, want 300", resp.Itemized.RoomCost)
	}
	if resp.Itemized.TaxAmount != 60 {
		t.Errorf("tax = %v, want 60", resp.Itemized.TaxAmount)
	}
	if resp.Itemized.TotalCost != 360 {
		t.Errorf("total = %v, want 360", resp.Itemized.TotalCost)
	}
	if resp.DisplayTotal != "£360.00" {
		t.Errorf("display total = %q, want £360.00", resp.DisplayTotal)
	}
}

func TestQuote_PeakWithServices(t *testing.T) {
	h := testPricingHandler(nil)
	rec := doGET(t, h.Quote,
		"/v1/hotels/1/room-types/2/quote?check_in=2026-08-01&check_out=2026-08-03&peak=true&services=3:2",
		[]string{"id", "rtid"}, []string{"1", "2"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp quoteResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// 2 peak nights at 150 + breakfast 15x2, 20% tax on 330.
	if resp.Itemized.RoomCost != 300 {
		t.Errorf("room cost = %v, want 300", resp.Itemized.RoomCost)
	}
	if resp.Itemized.ServicesCost != 30 {
		t.Errorf("services cost = %v, want 30", resp.Itemized.ServicesCost)
	}
	if resp.Itemized.TotalCost != 396 {
		t.Errorf("total = %v, want 396", resp.Itemized.TotalCost)
	}
	if !resp.Pricing.IsPeak {
		t.Error("expected peak pricing")
	}
	if len(resp.AvailableServices) != 2 {
		t.Errorf("available services = %d, want 2", len(resp.AvailableServices))
	}
}

func TestQuote_ServiceLinesInCatalogueOrder(t *testing.T) {
	// Selections arrive keyed by id; the itemization must list them in
	// catalogue order no matter how the query string orders them.
	h := testPricingHandler(nil)
	rec := doGET(t, h.Quote,
		"/v1/hotels/1/room-types/2/quote?check_in=2026-06-01&check_out=2026-06-04&services=4:1,3:2",
		[]string{"id", "rtid"}, []string{"1", "2"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp quoteResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Itemized.Services) != 2 {
		t.Fatalf("service lines = %d, want 2", len(resp.Itemized.Services))
	}
	if resp.Itemized.Services[0].ServiceName != "Breakfast" || resp.Itemized.Services[0].Quantity != 2 {
		t.Errorf("line 0 = %+v, want Breakfast x2", resp.Itemized.Services[0])
	}
	if resp.Itemized.Services[1].ServiceName != "Parking" || resp.Itemized.Services[1].Quantity != 1 {
		t.Errorf("line 1 = %+v, want Parking x1", resp.Itemized.Services[1])
	}
	if resp.Itemized.ServicesCost != 40 {
		t.Errorf("services cost = %v, want 40", resp.Itemized.ServicesCost)
	}
}

func TestQuote_InvertedDates(t *testing.T) {
	h := testPricingHandler(nil)
	rec := doGET(t, h.Quote,
		"/v1/hotels/1/room-types/2/quote?check_in=2026-06-04&check_out=2026-06-01",
		[]string{"id", "rtid"}, []string{"1", "2"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestQuote_UnknownService(t *testing.T) {
	h := testPricingHandler(nil)
	rec := doGET(t, h.Quote,
		"/v1/hotels/1/room-types/2/quote?check_in=2026-06-01&check_out=2026-06-04&services=99:1",
		[]string{"id", "rtid"}, []string{"1", "2"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestQuote_HotelNotFound(t *testing.T) {
	h := testPricingHandler(nil)
	rec := doGET(t, h.Quote,
		"/v1/hotels/7/room-types/2/quote?check_in=2026-06-01&check_out=2026-06-04",
		[]string{"id", "rtid"}, []string{"7", "2"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

// ----- cancellation fee -----

func feeTarget(cancellationDate string) string {
	return "/v1/hotels/1/cancellation-fee?check_in=2026-06-10&cancellation_date=" + cancellationDate +
		"&first_night_price=100&total_booking_price=500"
}

func TestCancellationFee_OverlapPrefersLongerNotice(t *testing.T) {
	// Overlapping windows, stored longest notice first: at 6 days of
	// notice both match and the 20% tier must win over the 50% one.
	rules := []*model.CancellationRule{
		{ID: 1, HotelID: 1, DaysMin: 5, DaysMax: 10, FeeType: "percentage", FeeValue: 20, Description: "moderate notice", IsActive: true},
		{ID: 2, HotelID: 1, DaysMin: 0, DaysMax: 7, FeeType: "percentage", FeeValue: 50, Description: "short notice", IsActive: true},
	}
	h := testPricingHandler(rules)
	rec := doGET(t, h.CancellationFee, feeTarget("2026-06-04"), []string{"id"}, []string{"1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp feeResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.DaysBeforeCheckIn != 6 {
		t.Errorf("days = %d, want 6", resp.DaysBeforeCheckIn)
	}
	if resp.FeeAmount != 100 {
		t.Errorf("fee = %v, want 100", resp.FeeAmount)
	}
	if resp.RefundAmount != 400 {
		t.Errorf("refund = %v, want 400", resp.RefundAmount)
	}
	if resp.PolicyDescription != "moderate notice" {
		t.Errorf("policy = %q, want moderate notice", resp.PolicyDescription)
	}
	if resp.DisplayFee != "£100.00" {
		t.Errorf("display fee = %q, want £100.00", resp.DisplayFee)
	}
}

func TestCancellationFee_NightsRule(t *testing.T) {
	rules := []*model.CancellationRule{
		{ID: 1, HotelID: 1, DaysMin: 0, DaysMax: 9999, FeeType: "nights", FeeValue: 2, Description: "two nights", IsActive: true},
	}
	h := testPricingHandler(rules)
	rec := doGET(t, h.CancellationFee, feeTarget("2026-06-04"), []string{"id"}, []string{"1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp feeResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.FeeAmount != 200 || resp.RefundAmount != 300 {
		t.Errorf("fee/refund = %v/%v, want 200/300", resp.FeeAmount, resp.RefundAmount)
	}
}

func TestCancellationFee_ClampsToTotal(t *testing.T) {
	rules := []*model.CancellationRule{
		{ID: 1, HotelID: 1, DaysMin: 0, DaysMax: 9999, FeeType: "percentage", FeeValue: 150, Description: "misconfigured", IsActive: true},
	}
	h := testPricingHandler(rules)
	rec := doGET(t, h.CancellationFee, feeTarget("2026-06-04"), []string{"id"}, []string{"1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp feeResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.FeeAmount != 500 || resp.RefundAmount != 0 {
		t.Errorf("fee/refund = %v/%v, want 500/0", resp.FeeAmount, resp.RefundAmount)
	}
}

func TestCancellationFee_NoRuleCoversNotice(t *testing.T) {
	// 40 days of notice against a policy that only covers 0-30 days:
	// the gap is a 404, never a free cancellation.
	rules := []*model.CancellationRule{
		{ID: 1, HotelID: 1, DaysMin: 0, DaysMax: 30, FeeType: "percentage", FeeValue: 50, Description: "late", IsActive: true},
	}
	h := testPricingHandler(rules)
	rec := doGET(t, h.CancellationFee, feeTarget("2026-05-01"), []string{"id"}, []string{"1"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestCancellationFee_NoPolicy(t *testing.T) {
	h := testPricingHandler(nil)
	rec := doGET(t, h.CancellationFee, feeTarget("2026-06-04"), []string{"id"}, []string{"1"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCancellationFee_BadQuery(t *testing.T) {
	h := testPricingHandler(nil)
	rec := doGET(t, h.CancellationFee,
		"/v1/hotels/1/cancellation-fee?check_in=2026-06-10&cancellation_date=2026-06-04&first_night_price=-1&total_booking_price=500",
		[]string{"id"}, []string{"1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
