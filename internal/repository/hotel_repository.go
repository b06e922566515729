package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

const hotelColumns = "id, owner_id, name, description, city, currency, tax_rate, is_active, created_at, updated_at"

// HotelRepo provides CRUD access to the 'hotels' table.
type HotelRepo struct {
	db *sql.DB
}

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

func scanHotel(row interface{ Scan(...any) error }, h *model.Hotel) error {
	return row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Description, &h.City,
		&h.Currency, &h.TaxRate, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
}

// Create inserts a hotel and re-reads the row so defaulted columns
// (is_active, timestamps) come back populated.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	const qInsert = `INSERT INTO hotels (owner_id, name, description, city, currency, tax_rate)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		h.OwnerID, h.Name, h.Description, h.City, h.Currency, h.TaxRate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	const qSelect = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`
	return scanHotel(r.db.QueryRowContext(ctx, qSelect, h.ID), h)
}

// GetByID retrieves a hotel regardless of owner. Returns
// ErrHotelNotFound when no row exists.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`
	var h model.Hotel
	if err := scanHotel(r.db.QueryRowContext(ctx, q, id), &h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// GetActiveByID retrieves a hotel only if it is active. Used by the
// public browse and pricing endpoints.
func (r *HotelRepo) GetActiveByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ? AND is_active = 1`
	var h model.Hotel
	if err := scanHotel(r.db.QueryRowContext(ctx, q, id), &h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// GetByIDAndOwner enforces resource ownership for owner endpoints.
func (r *HotelRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ? AND owner_id = ?`
	var h model.Hotel
	if err := scanHotel(r.db.QueryRowContext(ctx, q, id, ownerID), &h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// ListByOwner returns all hotels the owner manages.
func (r *HotelRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE owner_id = ? ORDER BY id`
	return r.list(ctx, q, ownerID)
}

// ListActive returns all guest-visible hotels.
func (r *HotelRepo) ListActive(ctx context.Context) ([]*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE is_active = 1 ORDER BY id`
	return r.list(ctx, q)
}

func (r *HotelRepo) list(ctx context.Context, q string, args ...any) ([]*model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Hotel
	for rows.Next() {
		h := new(model.Hotel)
		if err := scanHotel(rows, h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByIDAndOwner updates the editable hotel fields if the hotel
// belongs to the owner. Returns sql.ErrNoRows when nothing matched.
func (r *HotelRepo) UpdateByIDAndOwner(ctx context.Context, h *model.Hotel) error {
	const q = `UPDATE hotels
               SET name = ?, description = ?, city = ?, currency = ?, tax_rate = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		h.Name, h.Description, h.City, h.Currency, h.TaxRate, h.IsActive, h.ID, h.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
