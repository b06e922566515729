package model

import "time"

// CancellationRule is one tier of a hotel's cancellation policy as
// stored in the database. The [DaysMin, DaysMax] window is inclusive;
// DaysMax 9999 means "or more". FeeType is a free string at this
// layer and is mapped into the pricing package's closed fee type set
// at the boundary before any fee is computed.
//
// Fields:
//  ID          – primary key identifier.
//  HotelID     – hotel the rule belongs to.
//  DaysMin     – minimum days before check-in for the rule to apply.
//  DaysMax     – maximum days before check-in (9999 = unbounded).
//  FeeType     – "percentage", "nights" or "fixed_amount".
//  FeeValue    – magnitude; meaning depends on FeeType.
//  Description – operator-facing explanation shown to guests.
//  IsActive    – inactive rules are excluded from resolution.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type CancellationRule struct {
	ID          uint64    // cancellation_rules.id
	HotelID     uint64    // cancellation_rules.hotel_id
	DaysMin     int       // cancellation_rules.days_before_checkin_min
	DaysMax     int       // cancellation_rules.days_before_checkin_max
	FeeType     string    // cancellation_rules.fee_type
	FeeValue    float64   // cancellation_rules.fee_value
	Description string    // cancellation_rules.description
	IsActive    bool      // cancellation_rules.is_active
	CreatedAt   time.Time // cancellation_rules.created_at
	UpdatedAt   time.Time // cancellation_rules.updated_at
}
