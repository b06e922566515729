package model

import "time"

// HotelService is an add-on a guest can attach to a booking, such as
// breakfast or parking. Pricing is a flat unit price; quantities are
// chosen by the guest at booking time.
type HotelService struct {
	ID        uint64    // hotel_services.id
	HotelID   uint64    // hotel_services.hotel_id
	Name      string    // hotel_services.name
	UnitPrice float64   // hotel_services.unit_price
	IsActive  bool      // hotel_services.is_active
	CreatedAt time.Time // hotel_services.created_at
	UpdatedAt time.Time // hotel_services.updated_at
}
