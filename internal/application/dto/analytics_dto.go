package dto

import "github.com/shopspring/decimal"

// DailyMovementsDTO agregado de un día calendario del ledger.
type DailyMovementsDTO struct {
	Date      string             `json:"date"` // YYYY-MM-DD
	StockIn   decimal.Decimal    `json:"stock_in"`
	StockOut  decimal.Decimal    `json:"stock_out"`
	Net       decimal.Decimal    `json:"net"` // stock_in − stock_out
	Movements []MovementResponse `json:"movements"`
}

// WeeklyTotalsDTO agregado de una semana (inicio lunes) derivado de los días.
type WeeklyTotalsDTO struct {
	WeekStart     string          `json:"week_start"` // lunes, YYYY-MM-DD
	StockIn       decimal.Decimal `json:"stock_in"`
	StockOut      decimal.Decimal `json:"stock_out"`
	Net           decimal.Decimal `json:"net"`
	MovementCount int             `json:"movement_count"`
}

// MonthlySummaryDTO agregado único del mes completo.
type MonthlySummaryDTO struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	TotalIn       decimal.Decimal `json:"total_in"`
	TotalOut      decimal.Decimal `json:"total_out"`
	Net           decimal.Decimal `json:"net"`
	MovementCount int             `json:"movement_count"`
}

// CategoryStatsDTO totales por categoría en un rango.
// Percentage = movement_count / total × 100, redondeado a 1 decimal;
// con total cero el porcentaje es 0, nunca NaN.
type CategoryStatsDTO struct {
	CategoryKey   string          `json:"category_key"`
	CategoryLabel string          `json:"category"`
	StockIn       decimal.Decimal `json:"stock_in"`
	StockOut      decimal.Decimal `json:"stock_out"`
	MovementCount int             `json:"movement_count"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// ProductPerformanceDTO totales por línea de producto, ordenado por actividad.
type ProductPerformanceDTO struct {
	ProductLineID string          `json:"product_line_id"`
	ProductName   string          `json:"product_name"`
	TotalIn       decimal.Decimal `json:"total_in"`
	TotalOut      decimal.Decimal `json:"total_out"`
	MovementCount int             `json:"movement_count"`
}

// OverviewDTO snapshot de stock del usuario (GET /api/analytics/current-overview).
type OverviewDTO struct {
	TotalProducts     int             `json:"total_products"`
	TotalStockValue   decimal.Decimal `json:"total_stock_value"`
	LowStockProducts  int             `json:"low_stock_products"`
	HighStockProducts int             `json:"high_stock_products"`
}
