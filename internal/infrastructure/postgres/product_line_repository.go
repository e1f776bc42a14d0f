package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductLineRepository = (*ProductLineRepo)(nil)

const productLineColumns = `id, user_product_id, name, category_key, category_label, quality,
		unit_price, unite, initial_stock, current_stock, min_stock, created_at, updated_at`

// ProductLineRepo implementación del puerto ProductLineRepository sobre PostgreSQL (usable con pool o tx).
type ProductLineRepo struct {
	q Querier
}

// NewProductLineRepository construye el adaptador de líneas de producto. Pasar pool o tx (Querier).
func NewProductLineRepository(q Querier) *ProductLineRepo {
	return &ProductLineRepo{q: q}
}

// Create persiste una nueva línea. CurrentStock arranca igual a InitialStock.
func (r *ProductLineRepo) Create(line *entity.ProductLine) error {
	query := `
		INSERT INTO product_lines (id, user_product_id, name, category_key, category_label, quality,
			unit_price, unite, initial_stock, current_stock, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.UserProductID, line.Name, line.CategoryKey, line.CategoryLabel, line.Quality,
		line.UnitPrice, line.Unite, line.InitialStock, line.CurrentStock, line.MinStock,
		line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product_line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *ProductLineRepo) GetByID(id string) (*entity.ProductLine, error) {
	query := `SELECT ` + productLineColumns + ` FROM product_lines WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene la línea y bloquea su fila (SELECT FOR UPDATE) para
// serializar movimientos concurrentes sobre la misma línea.
func (r *ProductLineRepo) GetForUpdate(id string) (*entity.ProductLine, error) {
	query := `SELECT ` + productLineColumns + ` FROM product_lines WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// UpdateCurrentStock actualiza solo la proyección de stock (usado por la reconciliación, siempre en tx).
func (r *ProductLineRepo) UpdateCurrentStock(id string, newStock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE product_lines SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, newStock,
	)
	if err != nil {
		return fmt.Errorf("update product_line stock: %w", err)
	}
	return nil
}

// Update actualiza los campos descriptivos de la línea. No toca current_stock
// ni initial_stock (se manejan vía movimientos).
func (r *ProductLineRepo) Update(line *entity.ProductLine) error {
	query := `
		UPDATE product_lines SET name = $2, category_key = $3, category_label = $4, quality = $5,
			unit_price = $6, unite = $7, min_stock = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.Name, line.CategoryKey, line.CategoryLabel, line.Quality,
		line.UnitPrice, line.Unite, line.MinStock, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product_line: %w", err)
	}
	return nil
}

// ListByUserProduct lista las líneas de un lote (orden de creación).
func (r *ProductLineRepo) ListByUserProduct(userProductID string) ([]*entity.ProductLine, error) {
	query := `SELECT ` + productLineColumns + ` FROM product_lines
		WHERE user_product_id = $1 ORDER BY created_at ASC`
	return r.scanMany(query, userProductID)
}

// ListByUser lista todas las líneas de todos los lotes del usuario.
func (r *ProductLineRepo) ListByUser(userID string) ([]*entity.ProductLine, error) {
	query := `
		SELECT pl.id, pl.user_product_id, pl.name, pl.category_key, pl.category_label, pl.quality,
			pl.unit_price, pl.unite, pl.initial_stock, pl.current_stock, pl.min_stock, pl.created_at, pl.updated_at
		FROM product_lines pl
		JOIN user_products up ON up.id = pl.user_product_id
		WHERE up.user_id = $1
		ORDER BY pl.created_at ASC`
	return r.scanMany(query, userID)
}

// Delete elimina una línea por ID.
func (r *ProductLineRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product_line: %w", err)
	}
	return nil
}

// DeleteByUserProduct elimina todas las líneas de un lote (cascada del borrado de lote).
func (r *ProductLineRepo) DeleteByUserProduct(userProductID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM product_lines WHERE user_product_id = $1`, userProductID)
	if err != nil {
		return fmt.Errorf("delete product_lines by user_product: %w", err)
	}
	return nil
}

func (r *ProductLineRepo) scanOne(query string, arg any) (*entity.ProductLine, error) {
	var p entity.ProductLine
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.UserProductID, &p.Name, &p.CategoryKey, &p.CategoryLabel, &p.Quality,
		&p.UnitPrice, &p.Unite, &p.InitialStock, &p.CurrentStock, &p.MinStock,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product_line: %w", err)
	}
	return &p, nil
}

func (r *ProductLineRepo) scanMany(query string, args ...any) ([]*entity.ProductLine, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list product_lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductLine
	for rows.Next() {
		var p entity.ProductLine
		if err := rows.Scan(
			&p.ID, &p.UserProductID, &p.Name, &p.CategoryKey, &p.CategoryLabel, &p.Quality,
			&p.UnitPrice, &p.Unite, &p.InitialStock, &p.CurrentStock, &p.MinStock,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product_line: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
