package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

const roomTypeColumns = "id, hotel_id, name, capacity, price_off_peak, price_peak, is_active, created_at, updated_at"

// RoomTypeRepo provides access to the 'room_types' table. Nightly
// rates are stored as DECIMAL and scanned into float64; the pricing
// engine rounds only at display time.
type RoomTypeRepo struct {
	db *sql.DB
}

func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

func scanRoomType(row interface{ Scan(...any) error }, rt *model.RoomType) error {
	return row.Scan(&rt.ID, &rt.HotelID, &rt.Name, &rt.Capacity,
		&rt.PriceOffPeak, &rt.PricePeak, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt)
}

// Create inserts a room type and re-reads the full row.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *model.RoomType) error {
	const qInsert = `INSERT INTO room_types (hotel_id, name, capacity, price_off_peak, price_peak)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		rt.HotelID, rt.Name, rt.Capacity, rt.PriceOffPeak, rt.PricePeak)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)

	const qSelect = `SELECT ` + roomTypeColumns + ` FROM room_types WHERE id = ?`
	return scanRoomType(r.db.QueryRowContext(ctx, qSelect, rt.ID), rt)
}

// GetByID retrieves a room type by ID.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
	const q = `SELECT ` + roomTypeColumns + ` FROM room_types WHERE id = ?`
	var rt model.RoomType
	if err := scanRoomType(r.db.QueryRowContext(ctx, q, id), &rt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// GetActiveByHotel retrieves an active room type scoped to a hotel.
// The pricing quote endpoint uses this so a room type ID from one
// hotel cannot be priced against another hotel's tax and currency.
func (r *RoomTypeRepo) GetActiveByHotel(ctx context.Context, hotelID, id uint64) (*model.RoomType, error) {
	const q = `SELECT ` + roomTypeColumns + ` FROM room_types WHERE id = ? AND hotel_id = ? AND is_active = 1`
	var rt model.RoomType
	if err := scanRoomType(r.db.QueryRowContext(ctx, q, id, hotelID), &rt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// ListByHotel returns all room types of a hotel. When activeOnly is
// set, inactive room types are filtered out (public view).
func (r *RoomTypeRepo) ListByHotel(ctx context.Context, hotelID uint64, activeOnly bool) ([]*model.RoomType, error) {
	q := `SELECT ` + roomTypeColumns + ` FROM room_types WHERE hotel_id = ?`
	if activeOnly {
		q += ` AND is_active = 1`
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.RoomType
	for rows.Next() {
		rt := new(model.RoomType)
		if err := scanRoomType(rows, rt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByIDAndHotel updates the editable fields of a room type
// within the given hotel. Returns sql.ErrNoRows when nothing matched.
func (r *RoomTypeRepo) UpdateByIDAndHotel(ctx context.Context, rt *model.RoomType) error {
	const q = `UPDATE room_types
               SET name = ?, capacity = ?, price_off_peak = ?, price_peak = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		rt.Name, rt.Capacity, rt.PriceOffPeak, rt.PricePeak, rt.IsActive, rt.ID, rt.HotelID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
