// Package repository holds the data access layer: plain-SQL
// repositories over *sql.DB plus the sentinel errors handlers use to
// map failures onto HTTP statuses. Ownership is enforced by scoping
// queries (WHERE owner_id/user_id), so a foreign resource surfaces as
// a not-found sentinel rather than a distinct forbidden error.
package repository

import "errors"

// ErrConflict is returned when an update cannot proceed because of
// current state, such as cancelling a booking that is already
// cancelled.
var ErrConflict = errors.New("conflict")

// Not-found sentinels, one per aggregate. Handlers translate these
// into 404 responses.
var (
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrRuleNotFound     = errors.New("cancellation rule not found")
	ErrBookingNotFound  = errors.New("booking not found")
)
