package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

const bookingColumns = `id, user_id, hotel_id, room_type_id, check_in, check_out, nights, is_peak,
	room_per_night, room_cost, services_cost, tax_amount, total_cost, currency, status,
	cancellation_fee, refund_amount, payment_ref, created_at, updated_at`

// BookingRepo persists bookings and their service lines. Creation is
// transactional so a booking can never exist without its lines.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.HotelID, &b.RoomTypeID, &b.CheckIn, &b.CheckOut,
		&b.Nights, &b.IsPeak, &b.RoomPerNight, &b.RoomCost, &b.ServicesCost, &b.TaxAmount,
		&b.TotalCost, &b.Currency, &b.Status, &b.CancellationFee, &b.RefundAmount,
		&b.PaymentRef, &b.CreatedAt, &b.UpdatedAt)
}

// Create inserts the booking and its service lines in one
// transaction and re-reads the stored row.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking, lines []model.BookingService) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const qInsert = `INSERT INTO bookings
		(user_id, hotel_id, room_type_id, check_in, check_out, nights, is_peak,
		 room_per_night, room_cost, services_cost, tax_amount, total_cost, currency, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, qInsert,
		b.UserID, b.HotelID, b.RoomTypeID, b.CheckIn, b.CheckOut, b.Nights, b.IsPeak,
		b.RoomPerNight, b.RoomCost, b.ServicesCost, b.TaxAmount, b.TotalCost, b.Currency,
		model.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const qLine = `INSERT INTO booking_services (booking_id, service_id, service_name, unit_price, quantity)
	               VALUES (?, ?, ?, ?, ?)`
	for i := range lines {
		lines[i].BookingID = b.ID
		if _, err := tx.ExecContext(ctx, qLine,
			b.ID, lines[i].ServiceID, lines[i].ServiceName, lines[i].UnitPrice, lines[i].Quantity); err != nil {
			return err
		}
	}

	const qSelect = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	if err := scanBooking(tx.QueryRowContext(ctx, qSelect, b.ID), b); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByIDAndUser retrieves a booking owned by the given user.
func (r *BookingRepo) GetByIDAndUser(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? AND user_id = ?`
	var b model.Booking
	if err := scanBooking(r.db.QueryRowContext(ctx, q, id, userID), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY id DESC`
	return r.list(ctx, q, userID)
}

// ListByHotel returns a hotel's bookings for the owner dashboard.
func (r *BookingRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE hotel_id = ? ORDER BY id DESC`
	return r.list(ctx, q, hotelID)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Booking
	for rows.Next() {
		b := new(model.Booking)
		if err := scanBooking(rows, b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListServices returns the service lines of a booking.
func (r *BookingRepo) ListServices(ctx context.Context, bookingID uint64) ([]model.BookingService, error) {
	const q = `SELECT id, booking_id, service_id, service_name, unit_price, quantity
               FROM booking_services WHERE booking_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BookingService
	for rows.Next() {
		var l model.BookingService
		if err := rows.Scan(&l.ID, &l.BookingID, &l.ServiceID, &l.ServiceName, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel marks a confirmed booking as cancelled and freezes the
// computed fee and refund on the row. The status guard in the WHERE
// clause makes cancellation idempotent-safe: a second attempt matches
// no rows and surfaces as ErrConflict to the handler.
func (r *BookingRepo) Cancel(ctx context.Context, id, userID uint64, fee, refund float64) error {
	const q = `UPDATE bookings
               SET status = ?, cancellation_fee = ?, refund_amount = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND user_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q,
		model.BookingStatusCancelled, fee, refund, id, userID, model.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}
