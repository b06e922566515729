package model

import "time"

// Booking statuses. A booking is confirmed on creation (payment is an
// external collaborator; PaymentRef is an opaque reference) and moves
// to CANCELLED when the guest cancels, at which point the fee and
// refund columns are populated.
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Booking records a guest's stay together with the full itemized cost
// computed at creation time. The stored amounts are the pricing
// engine's outputs, frozen so later rate changes never alter what the
// guest was charged.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – guest who made the booking.
//  HotelID         – hotel being booked.
//  RoomTypeID      – room type being booked.
//  CheckIn         – arrival date.
//  CheckOut        – departure date (after CheckIn).
//  Nights          – whole-day night count.
//  IsPeak          – which of the two nightly rates was charged.
//  RoomPerNight    – nightly rate at booking time.
//  RoomCost        – RoomPerNight × Nights.
//  ServicesCost    – sum of service line totals.
//  TaxAmount       – tax on room + services.
//  TotalCost       – grand total the guest paid.
//  Currency        – ISO currency code echoed from the hotel.
//  Status          – CONFIRMED or CANCELLED.
//  CancellationFee – fee charged on cancellation (nil until cancelled).
//  RefundAmount    – refund issued on cancellation (nil until cancelled).
//  PaymentRef      – external payment reference, if any.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64     // bookings.id
	UserID          uint64     // bookings.user_id
	HotelID         uint64     // bookings.hotel_id
	RoomTypeID      uint64     // bookings.room_type_id
	CheckIn         time.Time  // bookings.check_in
	CheckOut        time.Time  // bookings.check_out
	Nights          int        // bookings.nights
	IsPeak          bool       // bookings.is_peak
	RoomPerNight    float64    // bookings.room_per_night
	RoomCost        float64    // bookings.room_cost
	ServicesCost    float64    // bookings.services_cost
	TaxAmount       float64    // bookings.tax_amount
	TotalCost       float64    // bookings.total_cost
	Currency        string     // bookings.currency
	Status          string     // bookings.status
	CancellationFee *float64   // bookings.cancellation_fee (nullable)
	RefundAmount    *float64   // bookings.refund_amount (nullable)
	PaymentRef      *string    // bookings.payment_ref (nullable)
	CreatedAt       time.Time  // bookings.created_at
	UpdatedAt       time.Time  // bookings.updated_at
}

// BookingService is one service line attached to a booking, with the
// unit price frozen at booking time.
type BookingService struct {
	ID          uint64  // booking_services.id
	BookingID   uint64  // booking_services.booking_id
	ServiceID   uint64  // booking_services.service_id
	ServiceName string  // booking_services.service_name
	UnitPrice   float64 // booking_services.unit_price
	Quantity    int     // booking_services.quantity
}
