package repository

import (
	"time"

	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del ledger (append-only).
// No hay Update: los movimientos son inmutables; solo se crean, se listan y
// se borran en cascada al eliminar su línea o su lote.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByUserInRange devuelve los movimientos del usuario en [from, to),
	// ordenados por fecha ascendente (orden estable para la agregación).
	ListByUserInRange(userID string, from, to time.Time) ([]*entity.StockMovement, error)
	ListByProductLine(productLineID string, limit, offset int) ([]*entity.StockMovement, error)
	DeleteByProductLine(productLineID string) error
	DeleteByUserProduct(userProductID string) error
}
