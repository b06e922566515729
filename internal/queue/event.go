// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into guest
// notifications.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// created. It carries enough information for downstream consumers to
// notify the guest or feed analytics without querying the primary
// database.
type BookingConfirmedEvent struct {
	BookingID    uint64  `json:"booking_id"`
	UserID       uint64  `json:"user_id"`
	GuestEmail   string  `json:"guest_email"`
	HotelID      uint64  `json:"hotel_id"`
	HotelName    string  `json:"hotel_name"`
	RoomTypeName string  `json:"room_type_name"`
	CheckIn      string  `json:"check_in"`
	CheckOut     string  `json:"check_out"`
	Nights       int     `json:"nights"`
	TotalCost    float64 `json:"total_cost"`
	Currency     string  `json:"currency"`
	ConfirmedAt  string  `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a guest cancels a booking.
// The fee and refund are the frozen amounts stored on the booking row,
// and PolicyDescription names the rule they were computed under.
type BookingCancelledEvent struct {
	BookingID         uint64  `json:"booking_id"`
	UserID            uint64  `json:"user_id"`
	GuestEmail        string  `json:"guest_email"`
	HotelID           uint64  `json:"hotel_id"`
	HotelName         string  `json:"hotel_name"`
	CheckIn           string  `json:"check_in"`
	DaysBeforeCheckIn int     `json:"days_before_checkin"`
	FeeAmount         float64 `json:"fee_amount"`
	RefundAmount      float64 `json:"refund_amount"`
	Currency          string  `json:"currency"`
	PolicyDescription string  `json:"policy_description"`
	CancelledAt       string  `json:"cancelled_at"`
}
