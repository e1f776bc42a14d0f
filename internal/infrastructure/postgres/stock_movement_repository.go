package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const stockMovementColumns = `id, product_line_id, user_product_id, type, quantity,
		previous_stock, new_stock, reason, created_by, created_at`

// StockMovementRepo implementación del puerto del ledger sobre PostgreSQL (usable con pool o tx).
// Append-only: no hay UPDATE sobre stock_movements.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento del ledger.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_line_id, user_product_id, type, quantity,
			previous_stock, new_stock, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductLineID, m.UserProductID, m.Type, m.Quantity,
		m.PreviousStock, m.NewStock, m.Reason, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock_movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductLineID, &m.UserProductID, &m.Type, &m.Quantity,
		&m.PreviousStock, &m.NewStock, &m.Reason, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock_movement: %w", err)
	}
	return &m, nil
}

// ListByUserInRange devuelve los movimientos del usuario en [from, to),
// ordenados por fecha ascendente. El orden estable importa para la agregación.
func (r *StockMovementRepo) ListByUserInRange(userID string, from, to time.Time) ([]*entity.StockMovement, error) {
	query := `
		SELECT sm.id, sm.product_line_id, sm.user_product_id, sm.type, sm.quantity,
			sm.previous_stock, sm.new_stock, sm.reason, sm.created_by, sm.created_at
		FROM stock_movements sm
		JOIN user_products up ON up.id = sm.user_product_id
		WHERE up.user_id = $1 AND sm.created_at >= $2 AND sm.created_at < $3
		ORDER BY sm.created_at ASC, sm.id ASC`
	return r.scanMany(query, userID, from, to)
}

// ListByProductLine lista el historial de una línea (más reciente primero) con paginación.
func (r *StockMovementRepo) ListByProductLine(productLineID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements
		WHERE product_line_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, productLineID, limit, offset)
}

// DeleteByProductLine elimina los movimientos de una línea (cascada del borrado de línea).
func (r *StockMovementRepo) DeleteByProductLine(productLineID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE product_line_id = $1`, productLineID)
	if err != nil {
		return fmt.Errorf("delete stock_movements by product_line: %w", err)
	}
	return nil
}

// DeleteByUserProduct elimina los movimientos de todas las líneas de un lote.
func (r *StockMovementRepo) DeleteByUserProduct(userProductID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE user_product_id = $1`, userProductID)
	if err != nil {
		return fmt.Errorf("delete stock_movements by user_product: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) scanMany(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock_movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductLineID, &m.UserProductID, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.Reason, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock_movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
