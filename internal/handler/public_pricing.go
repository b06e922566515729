package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/pricing"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

const dateLayout = "2006-01-02"

// Read-side interfaces for the pricing endpoints. The concrete
// repositories satisfy them; tests swap in fakes.
type HotelReader interface {
	GetActiveByID(ctx context.Context, id uint64) (*model.Hotel, error)
}

type RoomTypeReader interface {
	GetActiveByHotel(ctx context.Context, hotelID, id uint64) (*model.RoomType, error)
}

type ServiceReader interface {
	ListActiveByHotel(ctx context.Context, hotelID uint64) ([]*model.HotelService, error)
}

type RuleReader interface {
	ListActiveByHotel(ctx context.Context, hotelID uint64) ([]*model.CancellationRule, error)
}

// PricingHandler serves the stateless quote and cancellation-fee
// estimates. Nothing here writes; both endpoints are safe to cache.
type PricingHandler struct {
	Hotels    HotelReader
	RoomTypes RoomTypeReader
	Services  ServiceReader
	Rules     RuleReader
}

func NewPricingHandler(hotels HotelReader, roomTypes RoomTypeReader, services ServiceReader, rules RuleReader) *PricingHandler {
	if hotels == nil || roomTypes == nil || services == nil || rules == nil {
		panic("nil reader passed to NewPricingHandler")
	}
	return &PricingHandler{Hotels: hotels, RoomTypes: roomTypes, Services: services, Rules: rules}
}

// parseServicesParam decodes "3:1,7:2" into id→quantity. Zero and
// negative quantities are rejected rather than dropped so a malformed
// cart never silently prices to less than the guest selected.
func parseServicesParam(raw string) (map[uint64]int, string) {
	out := map[uint64]int{}
	if raw == "" {
		return out, ""
	}
	for _, part := range strings.Split(raw, ",") {
		idStr, qtyStr, found := strings.Cut(part, ":")
		qty := 1
		if found {
			n, err := strconv.Atoi(qtyStr)
			if err != nil {
				return nil, "invalid service quantity"
			}
			qty = n
		}
		if qty <= 0 {
			return nil, "service quantity must be positive"
		}
		id, err := strconv.ParseUint(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			return nil, "invalid service id"
		}
		out[id] += qty
	}
	return out, ""
}

// quoteResp is the body of a successful pricing estimate.
type quoteResp struct {
	Pricing           pricing.RoomPricing         `json:"pricing"`
	Itemized          pricing.ItemizedBookingCost `json:"itemized"`
	AvailableServices []*model.HotelService       `json:"available_services"`
	Currency          string                      `json:"currency"`
	DisplayTotal      string                      `json:"display_total"`
}

// Quote handles GET /v1/hotels/:id/room-types/:rtid/quote. It prices
// a stay without creating anything: room rate by season, selected
// services, tax on the subtotal. A same-day or inverted range is a
// 400, not a zero-night quote.
func (p *PricingHandler) Quote(c echo.Context) error {
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	roomTypeID, err := pathID(c, "rtid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type id"})
	}

	checkIn, err := time.Parse(dateLayout, c.QueryParam("check_in"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := time.Parse(dateLayout, c.QueryParam("check_out"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	if pricing.Nights(checkIn, checkOut) <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}
	isPeak, _ := strconv.ParseBool(c.QueryParam("peak"))

	selected, msg := parseServicesParam(c.QueryParam("services"))
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx := c.Request().Context()
	hotel, err := p.Hotels.GetActiveByID(ctx, hotelID)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	roomType, err := p.RoomTypes.GetActiveByHotel(ctx, hotel.ID, roomTypeID)
	if err != nil {
		if err == repository.ErrRoomTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	available, err := p.Services.ListActiveByHotel(ctx, hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	byID := make(map[uint64]*model.HotelService, len(available))
	for _, svc := range available {
		byID[svc.ID] = svc
	}
	for id := range selected {
		if _, ok := byID[id]; !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown service id " + strconv.FormatUint(id, 10)})
		}
	}
	// Walk the catalogue, not the map, so identical requests itemize
	// their service lines in the same order.
	selections := make([]pricing.ServiceSelection, 0, len(selected))
	for _, svc := range available {
		qty, ok := selected[svc.ID]
		if !ok {
			continue
		}
		selections = append(selections, pricing.ServiceSelection{
			ServiceName: svc.Name,
			UnitPrice:   svc.UnitPrice,
			Quantity:    qty,
		})
	}

	rp := pricing.RoomPriceByDates(roomType.PriceOffPeak, roomType.PricePeak, checkIn, checkOut, isPeak)
	itemized := pricing.ItemizedCost(rp, selections, hotel.TaxRate, hotel.Currency)

	return c.JSON(http.StatusOK, quoteResp{
		Pricing:           rp,
		Itemized:          itemized,
		AvailableServices: available,
		Currency:          hotel.Currency,
		DisplayTotal:      pricing.FormatCurrency(itemized.TotalCost, hotel.Currency),
	})
}

// toFeeRules converts stored rules, preserving the repository's
// descending-DaysMin order the resolver expects.
func toFeeRules(rules []*model.CancellationRule) []pricing.FeeRule {
	out := make([]pricing.FeeRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, pricing.FeeRule{
			DaysMin:     r.DaysMin,
			DaysMax:     r.DaysMax,
			FeeType:     pricing.ParseFeeType(r.FeeType),
			FeeValue:    r.FeeValue,
			Description: r.Description,
		})
	}
	return out
}

// feeResp is the body of a cancellation-fee estimate.
type feeResp struct {
	DaysBeforeCheckIn int             `json:"days_before_checkin"`
	FeeAmount         float64         `json:"fee_amount"`
	RefundAmount      float64         `json:"refund_amount"`
	ApplicableRule    pricing.FeeRule `json:"applicable_rule"`
	PolicyDescription string          `json:"policy_description"`
	Currency          string          `json:"currency"`
	DisplayFee        string          `json:"display_fee"`
	DisplayRefund     string          `json:"display_refund"`
}

// CancellationFee handles GET /v1/hotels/:id/cancellation-fee. When
// no rule window covers the notice period the answer is 404, never a
// silent zero fee: "free cancellation" must come from an explicit
// zero-value rule, not from a policy gap.
func (p *PricingHandler) CancellationFee(c echo.Context) error {
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}

	checkIn, err := time.Parse(dateLayout, c.QueryParam("check_in"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	cancelledAt, err := time.Parse(dateLayout, c.QueryParam("cancellation_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cancellation_date must be YYYY-MM-DD"})
	}
	firstNight, err := strconv.ParseFloat(c.QueryParam("first_night_price"), 64)
	if err != nil || firstNight < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_night_price must be a non-negative number"})
	}
	total, err := strconv.ParseFloat(c.QueryParam("total_booking_price"), 64)
	if err != nil || total < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_booking_price must be a non-negative number"})
	}

	ctx := c.Request().Context()
	hotel, err := p.Hotels.GetActiveByID(ctx, hotelID)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	stored, err := p.Rules.ListActiveByHotel(ctx, hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if len(stored) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel has no cancellation policy"})
	}

	days := pricing.DaysBeforeCheckIn(checkIn, cancelledAt)
	rule, ok := pricing.ApplicableRule(days, toFeeRules(stored))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no cancellation rule covers this notice period"})
	}
	result := pricing.CancellationFee(days, firstNight, total, rule)

	return c.JSON(http.StatusOK, feeResp{
		DaysBeforeCheckIn: result.DaysBeforeCheckIn,
		FeeAmount:         result.FeeAmount,
		RefundAmount:      result.RefundAmount,
		ApplicableRule:    result.Rule,
		PolicyDescription: result.Rule.Description,
		Currency:          hotel.Currency,
		DisplayFee:        pricing.FormatCurrency(result.FeeAmount, hotel.Currency),
		DisplayRefund:     pricing.FormatCurrency(result.RefundAmount, hotel.Currency),
	})
}
