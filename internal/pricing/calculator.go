// Package pricing implements the booking cost calculator and the
// cancellation fee resolver. Every function in this package is a pure,
// deterministic transformation of its inputs: no I/O, no shared state,
// no clock reads. Callers (handlers, the booking flow) fetch rates and
// rules from storage, invoke the calculator and persist or render the
// result themselves.
package pricing

import (
	"fmt"
	"time"
)

// RoomPricing is the result of pricing a stay for a single room type.
// PerNight echoes the nightly rate that was selected (peak or off-peak)
// so downstream itemization does not need to re-derive it.
type RoomPricing struct {
	PerNight float64 `json:"room_per_night"`
	Nights   int     `json:"room_nights"`
	RoomCost float64 `json:"room_cost"`
	IsPeak   bool    `json:"is_peak"`
}

// ServiceSelection is one additional service line on a booking, e.g.
// breakfast for two. Quantity is resolved by the caller; availability
// and inventory are not this package's concern.
type ServiceSelection struct {
	ServiceName string  `json:"service_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// TotalCost is the line total for the selection.
func (s ServiceSelection) TotalCost() float64 {
	return s.UnitPrice * float64(s.Quantity)
}

// ItemizedBookingCost is the full breakdown of a booking's price:
// room, service lines, tax and total. Amounts are kept unrounded;
// rounding happens once, at FormatCurrency, so the displayed lines
// always sum to the displayed total.
type ItemizedBookingCost struct {
	RoomPerNight float64            `json:"room_per_night"`
	RoomNights   int                `json:"room_nights"`
	RoomCost     float64            `json:"room_cost"`
	Services     []ServiceSelection `json:"services"`
	ServicesCost float64            `json:"services_cost"`
	Subtotal     float64            `json:"subtotal"`
	TaxRate      float64            `json:"tax_rate"`
	TaxAmount    float64            `json:"tax_amount"`
	TotalCost    float64            `json:"total_cost"`
	Currency     string             `json:"currency"`
	IsPeak       bool               `json:"is_peak"`
}

// Nights returns the whole-day difference between two calendar dates.
// Time-of-day components are discarded before subtracting so that a
// 14:00 check-in and an 11:00 check-out still count full nights.
// The result is negative when checkOut precedes checkIn.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

// RoomPriceByDates prices a stay given the room type's two nightly
// rates and the caller-determined peak flag. The engine never infers
// seasonality from the calendar; which rate applies is the caller's
// decision. A non-positive night count yields a zero-cost result
// rather than an error: an inverted date range is a caller-level
// validation failure and the calculator stays total. Rates are assumed
// non-negative; validating that is the caller's contract.
func RoomPriceByDates(priceOffPeak, pricePeak float64, checkIn, checkOut time.Time, isPeak bool) RoomPricing {
	perNight := priceOffPeak
	if isPeak {
		perNight = pricePeak
	}
	nights := Nights(checkIn, checkOut)
	if nights < 0 {
		nights = 0
	}
	return RoomPricing{
		PerNight: perNight,
		Nights:   nights,
		RoomCost: perNight * float64(nights),
		IsPeak:   isPeak,
	}
}

// ItemizedCost builds the full cost breakdown for a booking: the room
// pricing result, zero or more service lines, tax at the given rate
// and the grand total. taxRate is a fraction (0.2 = 20%). Nothing is
// rounded here; intermediate amounts keep full precision so that
// per-line rounding cannot drift away from the rounded total.
func ItemizedCost(rp RoomPricing, services []ServiceSelection, taxRate float64, currency string) ItemizedBookingCost {
	var servicesCost float64
	for _, s := range services {
		servicesCost += s.TotalCost()
	}
	subtotal := rp.RoomCost + servicesCost
	tax := subtotal * taxRate
	return ItemizedBookingCost{
		RoomPerNight: rp.PerNight,
		RoomNights:   rp.Nights,
		RoomCost:     rp.RoomCost,
		Services:     services,
		ServicesCost: servicesCost,
		Subtotal:     subtotal,
		TaxRate:      taxRate,
		TaxAmount:    tax,
		TotalCost:    subtotal + tax,
		Currency:     currency,
		IsPeak:       rp.IsPeak,
	}
}

// currencySymbols maps ISO codes to display symbols. Codes outside
// this table are rendered as "CODE 12.34" so formatting stays total.
var currencySymbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
}

// FormatCurrency renders an amount for display with exactly two
// decimals. This is the single place where rounding happens. The
// output is locale-independent so tests and API responses are stable
// across machines.
func FormatCurrency(amount float64, code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return fmt.Sprintf("%s%.2f", sym, amount)
	}
	return fmt.Sprintf("%s %.2f", code, amount)
}

// FormatPricePerNight renders a nightly rate, e.g. "£120.00 / night".
func FormatPricePerNight(amount float64, code string) string {
	return FormatCurrency(amount, code) + " / night"
}
