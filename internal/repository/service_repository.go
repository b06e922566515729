package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

const serviceColumns = "id, hotel_id, name, unit_price, is_active, created_at, updated_at"

// ServiceRepo provides access to the 'hotel_services' table.
type ServiceRepo struct {
	db *sql.DB
}

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func scanService(row interface{ Scan(...any) error }, s *model.HotelService) error {
	return row.Scan(&s.ID, &s.HotelID, &s.Name, &s.UnitPrice,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a service and re-reads the row.
func (r *ServiceRepo) Create(ctx context.Context, s *model.HotelService) error {
	const qInsert = `INSERT INTO hotel_services (hotel_id, name, unit_price) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, s.HotelID, s.Name, s.UnitPrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const qSelect = `SELECT ` + serviceColumns + ` FROM hotel_services WHERE id = ?`
	return scanService(r.db.QueryRowContext(ctx, qSelect, s.ID), s)
}

// GetByID retrieves a service by ID.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (*model.HotelService, error) {
	const q = `SELECT ` + serviceColumns + ` FROM hotel_services WHERE id = ?`
	var s model.HotelService
	if err := scanService(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListActiveByHotel returns the services a guest can add to a booking
// at the given hotel.
func (r *ServiceRepo) ListActiveByHotel(ctx context.Context, hotelID uint64) ([]*model.HotelService, error) {
	const q = `SELECT ` + serviceColumns + ` FROM hotel_services WHERE hotel_id = ? AND is_active = 1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.HotelService
	for rows.Next() {
		s := new(model.HotelService)
		if err := scanService(rows, s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByHotel returns all services of a hotel, including inactive
// ones, for the owner dashboard.
func (r *ServiceRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.HotelService, error) {
	const q = `SELECT ` + serviceColumns + ` FROM hotel_services WHERE hotel_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.HotelService
	for rows.Next() {
		s := new(model.HotelService)
		if err := scanService(rows, s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByIDAndHotel updates name, unit price and active flag.
func (r *ServiceRepo) UpdateByIDAndHotel(ctx context.Context, s *model.HotelService) error {
	const q = `UPDATE hotel_services
               SET name = ?, unit_price = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.UnitPrice, s.IsActive, s.ID, s.HotelID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
