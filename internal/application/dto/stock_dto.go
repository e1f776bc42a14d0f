package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/stock-movements.
type ApplyMovementRequest struct {
	ProductLineID string          `json:"product_line_id"`
	UserProductID string          `json:"user_product_id"`
	Type          string          `json:"type"` // IN | OUT
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason,omitempty"`
}

// MovementResponse representación de un movimiento del ledger.
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductLineID string          `json:"product_line_id"`
	UserProductID string          `json:"user_product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reason        string          `json:"reason"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}
