package model

import "time"

// RoomType is a bookable category of room within a hotel. Each room
// type carries a fixed pair of nightly rates; which one applies to a
// stay is decided by the caller's peak flag, never inferred from the
// calendar by the pricing engine.
//
// Fields:
//  ID           – primary key identifier.
//  HotelID      – hotel the room type belongs to.
//  Name         – label such as "Double" or "Suite".
//  Capacity     – maximum number of guests.
//  PriceOffPeak – nightly rate outside peak season.
//  PricePeak    – nightly rate during peak season.
//  IsActive     – whether the room type can currently be booked.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type RoomType struct {
	ID           uint64    // room_types.id
	HotelID      uint64    // room_types.hotel_id
	Name         string    // room_types.name
	Capacity     int       // room_types.capacity
	PriceOffPeak float64   // room_types.price_off_peak
	PricePeak    float64   // room_types.price_peak
	IsActive     bool      // room_types.is_active
	CreatedAt    time.Time // room_types.created_at
	UpdatedAt    time.Time // room_types.updated_at
}
