package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/pricing"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// ruleReq is the owner payload for one cancellation policy tier.
// DaysMax defaults to the 9999 "or more" sentinel when omitted.
type ruleReq struct {
	DaysMin     *int     `json:"days_before_checkin_min"`
	DaysMax     *int     `json:"days_before_checkin_max"`
	FeeType     string   `json:"fee_type"`
	FeeValue    *float64 `json:"fee_value"`
	Description string   `json:"description"`
	IsActive    *bool    `json:"is_active"`
}

// validate normalizes the payload and reports the first problem. The
// fee type must be one of the closed set up front; deferring that to
// ParseFeeType's fixed-amount fallback would let a typo like
// "percent" silently charge fee_value as a flat amount.
func (r *ruleReq) validate() string {
	if r.DaysMin == nil || r.FeeValue == nil {
		return "days_before_checkin_min and fee_value are required"
	}
	if *r.DaysMin < 0 {
		return "days_before_checkin_min cannot be negative"
	}
	if r.DaysMax == nil {
		max := pricing.DaysMaxSentinel
		r.DaysMax = &max
	}
	if *r.DaysMax < *r.DaysMin {
		return "days_before_checkin_max must be >= days_before_checkin_min"
	}
	if *r.FeeValue < 0 {
		return "fee_value cannot be negative"
	}
	ft := strings.ToLower(strings.TrimSpace(r.FeeType))
	switch ft {
	case string(pricing.FeeTypePercentage), string(pricing.FeeTypeNights), string(pricing.FeeTypeFixedAmount):
		r.FeeType = ft
	default:
		return "fee_type must be percentage, nights or fixed_amount"
	}
	return ""
}

// CreateCancellationRule handles POST /v1/owner/hotels/:hotel_id/cancellation-rules.
func (h *OwnerHandler) CreateCancellationRule(c echo.Context) error {
	hotel, errResp := h.requireOwnedHotel(c, "hotel_id")
	if hotel == nil {
		return errResp
	}
	var body ruleReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rule := &model.CancellationRule{
		HotelID:     hotel.ID,
		DaysMin:     *body.DaysMin,
		DaysMax:     *body.DaysMax,
		FeeType:     body.FeeType,
		FeeValue:    *body.FeeValue,
		Description: body.Description,
	}
	if err := h.RuleRepo.Create(c.Request().Context(), rule); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create rule"})
	}
	return c.JSON(http.StatusCreated, rule)
}

// UpdateCancellationRule handles PUT /v1/owner/hotels/:hotel_id/cancellation-rules/:id.
func (h *OwnerHandler) UpdateCancellationRule(c echo.Context) error {
	hotel, errResp := h.requireOwnedHotel(c, "hotel_id")
	if hotel == nil {
		return errResp
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body ruleReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rule := &model.CancellationRule{
		ID:          id,
		HotelID:     hotel.ID,
		DaysMin:     *body.DaysMin,
		DaysMax:     *body.DaysMax,
		FeeType:     body.FeeType,
		FeeValue:    *body.FeeValue,
		Description: body.Description,
		IsActive:    true,
	}
	if body.IsActive != nil {
		rule.IsActive = *body.IsActive
	}
	if err := h.RuleRepo.UpdateByIDAndHotel(c.Request().Context(), rule); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	// Re-read so the response carries the stored timestamps.
	updated, err := h.RuleRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrRuleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// ListCancellationRules handles GET /v1/owner/hotels/:hotel_id/cancellation-rules.
// Rules come back longest notice first, the same order the resolver
// evaluates them in.
func (h *OwnerHandler) ListCancellationRules(c echo.Context) error {
	hotel, errResp := h.requireOwnedHotel(c, "hotel_id")
	if hotel == nil {
		return errResp
	}
	items, err := h.RuleRepo.ListByHotel(c.Request().Context(), hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteCancellationRule handles DELETE /v1/owner/hotels/:hotel_id/cancellation-rules/:id.
func (h *OwnerHandler) DeleteCancellationRule(c echo.Context) error {
	hotel, errResp := h.requireOwnedHotel(c, "hotel_id")
	if hotel == nil {
		return errResp
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.RuleRepo.DeleteByIDAndHotel(c.Request().Context(), id, hotel.ID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
