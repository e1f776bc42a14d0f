package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el snapshot de inventario.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetOverview devuelve totales y contadores de umbral del inventario del usuario.
// COALESCE y FILTER garantizan ceros (no NULL) cuando el usuario no tiene líneas.
func (r *AnalyticsRepo) GetOverview(ctx context.Context, userID string) (*repository.OverviewResult, error) {
	const query = `
	SELECT
	    COUNT(pl.id)                                                            AS total_products,
	    COALESCE(SUM(pl.current_stock * pl.unit_price), 0)                      AS total_stock_value,
	    COUNT(pl.id) FILTER (WHERE pl.current_stock < pl.min_stock)             AS low_stock_products,
	    COUNT(pl.id) FILTER (WHERE pl.current_stock >= pl.initial_stock * 0.8)  AS high_stock_products
	FROM product_lines pl
	JOIN user_products up ON up.id = pl.user_product_id
	WHERE up.user_id = $1`

	var res repository.OverviewResult
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&res.TotalProducts,
		&res.TotalStockValue,
		&res.LowStockProducts,
		&res.HighStockProducts,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetOverview: %w", err)
	}
	return &res, nil
}
