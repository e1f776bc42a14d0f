package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/essaghir/stock-ledger-api/internal/application/dto"
	"github.com/essaghir/stock-ledger-api/internal/domain"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

// AggregatorUseCase expone las vistas analíticas del dashboard. Lee el ledger
// una sola vez por petición y aplica los folds puros de aggregator.go; el
// snapshot de stock (overview) se delega en una consulta SQL read-only.
type AggregatorUseCase struct {
	movRepo       repository.StockMovementRepository
	lineRepo      repository.ProductLineRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewAggregatorUseCase construye el caso de uso.
func NewAggregatorUseCase(
	movRepo repository.StockMovementRepository,
	lineRepo repository.ProductLineRepository,
	analyticsRepo repository.AnalyticsRepository,
) *AggregatorUseCase {
	return &AggregatorUseCase{movRepo: movRepo, lineRepo: lineRepo, analyticsRepo: analyticsRepo}
}

// GetDailyMovements devuelve los agregados por día del rango [from, to).
func (uc *AggregatorUseCase) GetDailyMovements(userID string, from, to time.Time) ([]dto.DailyMovementsDTO, error) {
	movs, err := uc.fetchRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	return DailyMovements(movs), nil
}

// GetWeeklyTotals devuelve los agregados por semana (lunes) del rango: fold
// sobre los agregados diarios, no un segundo escaneo del ledger.
func (uc *AggregatorUseCase) GetWeeklyTotals(userID string, from, to time.Time) ([]dto.WeeklyTotalsDTO, error) {
	daily, err := uc.GetDailyMovements(userID, from, to)
	if err != nil {
		return nil, err
	}
	return WeeklyTotals(daily), nil
}

// GetMonthlySummary devuelve el agregado único del mes completo.
func (uc *AggregatorUseCase) GetMonthlySummary(userID string, year, month int) (*dto.MonthlySummaryDTO, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidInput
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	movs, err := uc.fetchRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	summary := MonthlySummary(movs, year, month)
	return &summary, nil
}

// GetCategoryStats devuelve totales y porcentajes por categoría en el rango.
func (uc *AggregatorUseCase) GetCategoryStats(userID string, from, to time.Time) ([]dto.CategoryStatsDTO, error) {
	movs, err := uc.fetchRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	lines, err := uc.linesByID(userID)
	if err != nil {
		return nil, err
	}
	return CategoryStats(movs, lines), nil
}

// GetProductPerformance devuelve el ranking de líneas por actividad en el rango.
func (uc *AggregatorUseCase) GetProductPerformance(userID string, from, to time.Time, limit int) ([]dto.ProductPerformanceDTO, error) {
	movs, err := uc.fetchRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	lines, err := uc.linesByID(userID)
	if err != nil {
		return nil, err
	}
	return ProductPerformance(movs, lines, limit), nil
}

// GetCurrentOverview devuelve el snapshot de stock del usuario.
func (uc *AggregatorUseCase) GetCurrentOverview(ctx context.Context, userID string) (*dto.OverviewDTO, error) {
	res, err := uc.analyticsRepo.GetOverview(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	return &dto.OverviewDTO{
		TotalProducts:     res.TotalProducts,
		TotalStockValue:   res.TotalStockValue,
		LowStockProducts:  res.LowStockProducts,
		HighStockProducts: res.HighStockProducts,
	}, nil
}

// ListMovements lista el ledger de una línea del usuario, más reciente primero.
func (uc *AggregatorUseCase) ListMovements(userID, productLineID string, limit, offset int) ([]dto.MovementResponse, error) {
	lines, err := uc.linesByID(userID)
	if err != nil {
		return nil, err
	}
	if _, ok := lines[productLineID]; !ok {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByProductLine(productLineID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func (uc *AggregatorUseCase) fetchRange(userID string, from, to time.Time) ([]*entity.StockMovement, error) {
	if !from.Before(to) {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.movRepo.ListByUserInRange(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("leer ledger: %w", err)
	}
	return movs, nil
}

func (uc *AggregatorUseCase) linesByID(userID string) (map[string]*entity.ProductLine, error) {
	list, err := uc.lineRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("leer líneas: %w", err)
	}
	byID := make(map[string]*entity.ProductLine, len(list))
	for _, line := range list {
		byID[line.ID] = line
	}
	return byID, nil
}
