package model

import "time"

// Hotel represents a property managed by an owner account. Currency
// and TaxRate live on the hotel row and are threaded through pricing
// calls explicitly; there is no process-wide pricing configuration.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user who manages this hotel.
//  Name        – display name, unique per owner.
//  Description – optional marketing text.
//  City        – city the hotel is located in.
//  Currency    – ISO currency code for all of the hotel's prices.
//  TaxRate     – tax fraction applied to bookings (0.2 = 20%).
//  IsActive    – whether the hotel is visible to guests.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Hotel struct {
	ID          uint64    // hotels.id
	OwnerID     uint64    // hotels.owner_id
	Name        string    // hotels.name
	Description string    // hotels.description
	City        string    // hotels.city
	Currency    string    // hotels.currency
	TaxRate     float64   // hotels.tax_rate
	IsActive    bool      // hotels.is_active
	CreatedAt   time.Time // hotels.created_at
	UpdatedAt   time.Time // hotels.updated_at
}
