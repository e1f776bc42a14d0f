package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appstock "github.com/essaghir/stock-ledger-api/internal/application/stock"
	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ appstock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	lineRepo repository.ProductLineRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	lineRepo := NewProductLineRepository(tx)

	if err := fn(movRepo, lineRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLifecycle inicia una transacción con los repos del ciclo de vida de lotes
// (alta de líneas con stock inicial y borrados en cascada).
func (r *TxRunner) RunLifecycle(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	lineRepo repository.ProductLineRepository,
	upRepo repository.UserProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	lineRepo := NewProductLineRepository(tx)
	upRepo := NewUserProductRepository(tx)

	if err := fn(movRepo, lineRepo, upRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
