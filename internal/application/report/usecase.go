package report

import (
	"context"
	"fmt"
	"time"

	"github.com/essaghir/stock-ledger-api/internal/application/analytics"
	"github.com/essaghir/stock-ledger-api/internal/application/dto"
	"github.com/essaghir/stock-ledger-api/internal/domain"
	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

// StockReportData datos consolidados que consume el generador de PDF.
type StockReportData struct {
	UserName    string
	UserEmail   string
	From        time.Time
	To          time.Time
	GeneratedAt time.Time
	Overview    dto.OverviewDTO
	Daily       []dto.DailyMovementsDTO
	Categories  []dto.CategoryStatsDTO
	TopProducts []dto.ProductPerformanceDTO
}

// StockReportGenerator puerto del generador de PDF (implementado en infrastructure/pdf).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, data *StockReportData) ([]byte, error)
}

// ReportUseCase arma el reporte de stock: snapshot + agregados del rango + PDF.
type ReportUseCase struct {
	aggregator *analytics.AggregatorUseCase
	userRepo   repository.UserRepository
	generator  StockReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	aggregator *analytics.AggregatorUseCase,
	userRepo repository.UserRepository,
	generator StockReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{aggregator: aggregator, userRepo: userRepo, generator: generator}
}

// GenerateStockReport genera el PDF del reporte de stock del usuario para [from, to).
func (uc *ReportUseCase) GenerateStockReport(ctx context.Context, userID string, from, to time.Time) ([]byte, error) {
	if !from.Before(to) {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("leer usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	overview, err := uc.aggregator.GetCurrentOverview(ctx, userID)
	if err != nil {
		return nil, err
	}
	daily, err := uc.aggregator.GetDailyMovements(userID, from, to)
	if err != nil {
		return nil, err
	}
	categories, err := uc.aggregator.GetCategoryStats(userID, from, to)
	if err != nil {
		return nil, err
	}
	top, err := uc.aggregator.GetProductPerformance(userID, from, to, 10)
	if err != nil {
		return nil, err
	}

	data := &StockReportData{
		UserName:    user.Name,
		UserEmail:   user.Email,
		From:        from,
		To:          to,
		GeneratedAt: time.Now().UTC(),
		Overview:    *overview,
		Daily:       daily,
		Categories:  categories,
		TopProducts: top,
	}
	return uc.generator.GenerateStockReport(ctx, data)
}
