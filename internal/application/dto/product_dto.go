package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateUserProductRequest body para POST /api/products (crear lote).
type CreateUserProductRequest struct {
	Name string `json:"name"`
}

// UserProductResponse cabecera de lote con sus líneas (si se solicitan).
type UserProductResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	CreatedAt time.Time             `json:"created_at"`
	Lines     []ProductLineResponse `json:"lines,omitempty"`
}

// UserProductListResponse respuesta de GET /api/products.
type UserProductListResponse struct {
	Products []UserProductResponse `json:"products"`
	Total    int                   `json:"total"`
}

// CreateProductLineRequest body para POST /api/products/:id/lines.
type CreateProductLineRequest struct {
	Name          string          `json:"name"`
	CategoryLabel string          `json:"category"`
	Quality       int             `json:"quality"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Unite         string          `json:"unite"`
	InitialStock  decimal.Decimal `json:"initial_stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
}

// UpdateProductLineRequest body para PUT /api/products/:id/lines/:lineId.
// Campos nil no se tocan. TargetStock (si viene) se aplica como ajuste absoluto
// vía el servicio de reconciliación, nunca como mutación directa.
type UpdateProductLineRequest struct {
	Name          *string          `json:"name,omitempty"`
	CategoryLabel *string          `json:"category,omitempty"`
	Quality       *int             `json:"quality,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	Unite         *string          `json:"unite,omitempty"`
	MinStock      *decimal.Decimal `json:"min_stock,omitempty"`
	TargetStock   *decimal.Decimal `json:"target_stock,omitempty"`
}

// ProductLineResponse representación de una línea de producto.
type ProductLineResponse struct {
	ID            string          `json:"id"`
	UserProductID string          `json:"user_product_id"`
	Name          string          `json:"name"`
	CategoryKey   string          `json:"category_key"`
	CategoryLabel string          `json:"category"`
	Quality       int             `json:"quality"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Unite         string          `json:"unite"`
	InitialStock  decimal.Decimal `json:"initial_stock"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
}
