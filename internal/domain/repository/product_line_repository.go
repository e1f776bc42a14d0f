package repository

import (
	"github.com/shopspring/decimal"

	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
)

// ProductLineRepository define el puerto de persistencia para líneas de producto.
// CurrentStock solo se actualiza vía UpdateCurrentStock y siempre dentro de la
// misma transacción que escribe el movimiento correspondiente.
type ProductLineRepository interface {
	Create(line *entity.ProductLine) error
	GetByID(id string) (*entity.ProductLine, error)
	// GetForUpdate obtiene la línea bloqueando su fila (SELECT FOR UPDATE);
	// serializa movimientos concurrentes sobre la misma línea.
	GetForUpdate(id string) (*entity.ProductLine, error)
	UpdateCurrentStock(id string, newStock decimal.Decimal) error
	Update(line *entity.ProductLine) error
	ListByUserProduct(userProductID string) ([]*entity.ProductLine, error)
	ListByUser(userID string) ([]*entity.ProductLine, error)
	Delete(id string) error
	DeleteByUserProduct(userProductID string) error
}
