package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// OverviewResult resultado crudo de la consulta de snapshot de inventario.
// Lo produce la DB; el use case lo convierte en DTO.
type OverviewResult struct {
	TotalProducts     int
	TotalStockValue   decimal.Decimal // Σ current_stock × unit_price
	LowStockProducts  int             // current_stock < min_stock
	HighStockProducts int             // current_stock >= 0.8 × initial_stock
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos) y toleran snapshots
// eventualmente consistentes: nunca un movimiento a medias, pero un reporte
// tomado en paralelo a una escritura puede reflejar el estado pre o post.
type AnalyticsRepository interface {
	// GetOverview devuelve el snapshot de stock del usuario: totales y
	// contadores de umbral. Usa COALESCE para devolver cero sin filas.
	GetOverview(ctx context.Context, userID string) (*OverviewResult, error)
}
