package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

var _ repository.UserProductRepository = (*UserProductRepo)(nil)

// UserProductRepo implementación del puerto UserProductRepository sobre PostgreSQL (usable con pool o tx).
type UserProductRepo struct {
	q Querier
}

// NewUserProductRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewUserProductRepository(q Querier) *UserProductRepo {
	return &UserProductRepo{q: q}
}

// Create persiste un nuevo lote.
func (r *UserProductRepo) Create(up *entity.UserProduct) error {
	query := `
		INSERT INTO user_products (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		up.ID, up.UserID, up.Name, up.CreatedAt, up.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user_product: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *UserProductRepo) GetByID(id string) (*entity.UserProduct, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM user_products WHERE id = $1`
	var up entity.UserProduct
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&up.ID, &up.UserID, &up.Name, &up.CreatedAt, &up.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user_product: %w", err)
	}
	return &up, nil
}

// ListByUser lista los lotes de un usuario con paginación (más reciente primero).
func (r *UserProductRepo) ListByUser(userID string, limit, offset int) ([]*entity.UserProduct, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM user_products WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list user_products: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserProduct
	for rows.Next() {
		var up entity.UserProduct
		if err := rows.Scan(&up.ID, &up.UserID, &up.Name, &up.CreatedAt, &up.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user_product: %w", err)
		}
		list = append(list, &up)
	}
	return list, rows.Err()
}

// Delete elimina la cabecera del lote. La cascada la orquesta el caso de uso.
func (r *UserProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM user_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user_product: %w", err)
	}
	return nil
}
