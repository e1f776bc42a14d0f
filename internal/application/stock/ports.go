package stock

import (
	"context"

	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad movimiento + stock:
// o ambas escrituras quedan, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		lineRepo repository.ProductLineRepository,
	) error) error

	// RunLifecycle añade el repo de lotes para operaciones de ciclo de vida
	// (crear línea con entrada inicial, borrados en cascada).
	RunLifecycle(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		lineRepo repository.ProductLineRepository,
		upRepo repository.UserProductRepository,
	) error) error
}
