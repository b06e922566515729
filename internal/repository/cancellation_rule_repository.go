package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

const ruleColumns = "id, hotel_id, days_before_checkin_min, days_before_checkin_max, fee_type, fee_value, description, is_active, created_at, updated_at"

// CancellationRuleRepo provides access to the 'cancellation_rules'
// table. ListActiveByHotel returns rows ordered by
// days_before_checkin_min descending — the exact ordering the fee
// resolver's first-match walk depends on.
type CancellationRuleRepo struct {
	db *sql.DB
}

func NewCancellationRuleRepo(db *sql.DB) *CancellationRuleRepo {
	return &CancellationRuleRepo{db: db}
}

func scanRule(row interface{ Scan(...any) error }, cr *model.CancellationRule) error {
	return row.Scan(&cr.ID, &cr.HotelID, &cr.DaysMin, &cr.DaysMax, &cr.FeeType,
		&cr.FeeValue, &cr.Description, &cr.IsActive, &cr.CreatedAt, &cr.UpdatedAt)
}

// Create inserts a rule and re-reads the row.
func (r *CancellationRuleRepo) Create(ctx context.Context, cr *model.CancellationRule) error {
	const qInsert = `INSERT INTO cancellation_rules
	                 (hotel_id, days_before_checkin_min, days_before_checkin_max, fee_type, fee_value, description)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		cr.HotelID, cr.DaysMin, cr.DaysMax, cr.FeeType, cr.FeeValue, cr.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cr.ID = uint64(id)

	const qSelect = `SELECT ` + ruleColumns + ` FROM cancellation_rules WHERE id = ?`
	return scanRule(r.db.QueryRowContext(ctx, qSelect, cr.ID), cr)
}

// GetByID retrieves a rule by ID.
func (r *CancellationRuleRepo) GetByID(ctx context.Context, id uint64) (*model.CancellationRule, error) {
	const q = `SELECT ` + ruleColumns + ` FROM cancellation_rules WHERE id = ?`
	var cr model.CancellationRule
	if err := scanRule(r.db.QueryRowContext(ctx, q, id), &cr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return &cr, nil
}

// ListActiveByHotel returns the hotel's active rules sorted longest
// notice first. Do not change the ORDER BY: the resolver's
// first-match tie-break for overlapping windows is defined on this
// ordering and reordering would change real refund amounts.
func (r *CancellationRuleRepo) ListActiveByHotel(ctx context.Context, hotelID uint64) ([]*model.CancellationRule, error) {
	const q = `SELECT ` + ruleColumns + ` FROM cancellation_rules
               WHERE hotel_id = ? AND is_active = 1
               ORDER BY days_before_checkin_min DESC, id`
	return r.list(ctx, q, hotelID)
}

// ListByHotel returns all rules for the owner dashboard, same order.
func (r *CancellationRuleRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.CancellationRule, error) {
	const q = `SELECT ` + ruleColumns + ` FROM cancellation_rules
               WHERE hotel_id = ?
               ORDER BY days_before_checkin_min DESC, id`
	return r.list(ctx, q, hotelID)
}

func (r *CancellationRuleRepo) list(ctx context.Context, q string, args ...any) ([]*model.CancellationRule, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.CancellationRule
	for rows.Next() {
		cr := new(model.CancellationRule)
		if err := scanRule(rows, cr); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByIDAndHotel updates the rule's window, fee model and flags.
func (r *CancellationRuleRepo) UpdateByIDAndHotel(ctx context.Context, cr *model.CancellationRule) error {
	const q = `UPDATE cancellation_rules
               SET days_before_checkin_min = ?, days_before_checkin_max = ?, fee_type = ?, fee_value = ?, description = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		cr.DaysMin, cr.DaysMax, cr.FeeType, cr.FeeValue, cr.Description, cr.IsActive, cr.ID, cr.HotelID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDAndHotel removes a rule.
func (r *CancellationRuleRepo) DeleteByIDAndHotel(ctx context.Context, id, hotelID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cancellation_rules WHERE id = ? AND hotel_id = ?`, id, hotelID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
