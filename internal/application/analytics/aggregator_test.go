package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essaghir/stock-ledger-api/internal/application/analytics"
	"github.com/essaghir/stock-ledger-api/internal/application/dto"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mov(line, typ, qty string, at time.Time) *entity.StockMovement {
	return &entity.StockMovement{
		ID:            line + "-" + at.Format("20060102T150405"),
		ProductLineID: line,
		UserProductID: "lot-1",
		Type:          typ,
		Quantity:      d(qty),
		CreatedAt:     at,
	}
}

func at(day string, hour int) time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

// ──────────────────────────────────────────────────────────────────────────────
// DailyMovements
// ──────────────────────────────────────────────────────────────────────────────

// Escenario del enunciado: IN 5 y OUT 3 el mismo día → stockIn=5, stockOut=3, net=2.
func TestDailyMovements_MismoDia(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("line-1", entity.MovementTypeIN, "5", at("2024-03-11", 9)),
		mov("line-1", entity.MovementTypeOUT, "3", at("2024-03-11", 14)),
	}

	daily := analytics.DailyMovements(movs)
	require.Len(t, daily, 1)
	assert.Equal(t, "2024-03-11", daily[0].Date)
	assert.True(t, d("5").Equal(daily[0].StockIn))
	assert.True(t, d("3").Equal(daily[0].StockOut))
	assert.True(t, d("2").Equal(daily[0].Net))
	assert.Len(t, daily[0].Movements, 2)
}

func TestDailyMovements_DiasOrdenados(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("line-1", entity.MovementTypeIN, "1", at("2024-03-13", 10)),
		mov("line-1", entity.MovementTypeIN, "1", at("2024-03-11", 10)),
		mov("line-1", entity.MovementTypeOUT, "1", at("2024-03-12", 10)),
	}

	daily := analytics.DailyMovements(movs)
	require.Len(t, daily, 3)
	assert.Equal(t, "2024-03-11", daily[0].Date)
	assert.Equal(t, "2024-03-12", daily[1].Date)
	assert.Equal(t, "2024-03-13", daily[2].Date)
}

func TestDailyMovements_Vacio(t *testing.T) {
	assert.Empty(t, analytics.DailyMovements(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// WeeklyTotals
// ──────────────────────────────────────────────────────────────────────────────

// 2024-03-11 es lunes; el domingo 2024-03-17 pertenece a esa misma semana y el
// lunes 2024-03-18 abre la siguiente.
func TestWeeklyTotals_SemanaInicioLunes(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("line-1", entity.MovementTypeIN, "10", at("2024-03-11", 8)),  // lunes
		mov("line-1", entity.MovementTypeOUT, "4", at("2024-03-17", 8)),  // domingo, misma semana
		mov("line-1", entity.MovementTypeIN, "7", at("2024-03-18", 8)),   // lunes siguiente
	}

	weekly := analytics.WeeklyTotals(analytics.DailyMovements(movs))
	require.Len(t, weekly, 2)

	assert.Equal(t, "2024-03-11", weekly[0].WeekStart)
	assert.True(t, d("10").Equal(weekly[0].StockIn))
	assert.True(t, d("4").Equal(weekly[0].StockOut))
	assert.True(t, d("6").Equal(weekly[0].Net))
	assert.Equal(t, 2, weekly[0].MovementCount)

	assert.Equal(t, "2024-03-18", weekly[1].WeekStart)
	assert.True(t, d("7").Equal(weekly[1].StockIn))
	assert.Equal(t, 1, weekly[1].MovementCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// MonthlySummary
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthlySummary_FiltraMes(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("line-1", entity.MovementTypeIN, "20", at("2024-03-05", 8)),
		mov("line-1", entity.MovementTypeOUT, "8", at("2024-03-20", 8)),
		mov("line-1", entity.MovementTypeIN, "99", at("2024-04-01", 8)), // fuera del mes
	}

	s := analytics.MonthlySummary(movs, 2024, 3)
	assert.True(t, d("20").Equal(s.TotalIn))
	assert.True(t, d("8").Equal(s.TotalOut))
	assert.True(t, d("12").Equal(s.Net))
	assert.Equal(t, 2, s.MovementCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// CategoryStats
// ──────────────────────────────────────────────────────────────────────────────

func testLines() map[string]*entity.ProductLine {
	return map[string]*entity.ProductLine{
		"line-1": {ID: "line-1", Name: "Pommes", CategoryKey: "fruits-فواكه", CategoryLabel: "Fruits (فواكه)"},
		"line-2": {ID: "line-2", Name: "Carottes", CategoryKey: "legumes-خضروات", CategoryLabel: "Légumes (خضروات)"},
		"line-3": {ID: "line-3", Name: "Riz", CategoryKey: "cereales", CategoryLabel: "Céréales"},
	}
}

func TestCategoryStats_PorcentajesYOrden(t *testing.T) {
	day := at("2024-03-11", 8)
	movs := []*entity.StockMovement{
		mov("line-1", entity.MovementTypeIN, "5", day),
		mov("line-2", entity.MovementTypeOUT, "2", day),
		mov("line-1", entity.MovementTypeOUT, "1", day),
	}

	stats := analytics.CategoryStats(movs, testLines())
	require.Len(t, stats, 2)

	// Orden de primera aparición en el ledger: fruits antes que legumes.
	assert.Equal(t, "fruits-فواكه", stats[0].CategoryKey)
	assert.Equal(t, 2, stats[0].MovementCount)
	assert.True(t, d("66.7").Equal(stats[0].Percentage), "2/3 → 66.7, got %s", stats[0].Percentage)

	assert.Equal(t, "legumes-خضروات", stats[1].CategoryKey)
	assert.True(t, d("33.3").Equal(stats[1].Percentage))

	// Σ counts por categoría == total plano del rango.
	total := 0
	for _, s := range stats {
		total += s.MovementCount
	}
	assert.Equal(t, len(movs), total)
}

func TestCategoryStats_SinMovimientos_SinNaN(t *testing.T) {
	assert.Empty(t, analytics.CategoryStats(nil, testLines()))
}

func TestCategoryStats_LineaBorrada_SeOmite(t *testing.T) {
	day := at("2024-03-11", 8)
	movs := []*entity.StockMovement{
		mov("line-huerfana", entity.MovementTypeIN, "5", day),
		mov("line-1", entity.MovementTypeIN, "5", day),
	}

	stats := analytics.CategoryStats(movs, testLines())
	require.Len(t, stats, 1)
	assert.True(t, d("100").Equal(stats[0].Percentage))
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductPerformance
// ──────────────────────────────────────────────────────────────────────────────

func TestProductPerformance_RankingYLimite(t *testing.T) {
	day := at("2024-03-11", 8)
	movs := []*entity.StockMovement{
		mov("line-1", entity.MovementTypeIN, "5", day),
		mov("line-2", entity.MovementTypeIN, "3", day),
		mov("line-2", entity.MovementTypeOUT, "1", day),
		mov("line-2", entity.MovementTypeOUT, "1", day),
		mov("line-3", entity.MovementTypeIN, "9", day),
	}

	perf := analytics.ProductPerformance(movs, testLines(), 2)
	require.Len(t, perf, 2)

	assert.Equal(t, "line-2", perf[0].ProductLineID)
	assert.Equal(t, "Carottes", perf[0].ProductName)
	assert.Equal(t, 3, perf[0].MovementCount)
	assert.True(t, d("3").Equal(perf[0].TotalIn))
	assert.True(t, d("2").Equal(perf[0].TotalOut))

	// Empate 1-1 entre line-1 y line-3: gana la primera aparición (line-1).
	assert.Equal(t, "line-1", perf[1].ProductLineID)
}

func TestProductPerformance_SinLimite(t *testing.T) {
	day := at("2024-03-11", 8)
	movs := []*entity.StockMovement{
		mov("line-1", entity.MovementTypeIN, "5", day),
		mov("line-2", entity.MovementTypeIN, "3", day),
	}
	assert.Len(t, analytics.ProductPerformance(movs, testLines(), 0), 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia de lecturas: mismo rango, mismos datos → resultados idénticos
// ──────────────────────────────────────────────────────────────────────────────

func TestAgregados_LecturasIdempotentes(t *testing.T) {
	day := at("2024-03-11", 8)
	movs := []*entity.StockMovement{
		mov("line-1", entity.MovementTypeIN, "5", day),
		mov("line-2", entity.MovementTypeOUT, "2", at("2024-03-12", 9)),
		mov("line-3", entity.MovementTypeIN, "4", at("2024-03-13", 10)),
	}
	lines := testLines()

	assert.Equal(t, analytics.CategoryStats(movs, lines), analytics.CategoryStats(movs, lines))
	assert.Equal(t, analytics.DailyMovements(movs), analytics.DailyMovements(movs))
	assert.Equal(t, analytics.ProductPerformance(movs, lines, 10), analytics.ProductPerformance(movs, lines, 10))
}

// Sanity del DTO semanal frente a días de distintas semanas y meses.
func TestWeeklyTotals_CruceDeMes(t *testing.T) {
	daily := []dto.DailyMovementsDTO{
		{Date: "2024-02-29", StockIn: d("3"), StockOut: d("0"), Net: d("3")},
		{Date: "2024-03-01", StockIn: d("2"), StockOut: d("1"), Net: d("1")},
	}
	weekly := analytics.WeeklyTotals(daily)
	require.Len(t, weekly, 1, "jueves y viernes de la misma semana (lunes 2024-02-26)")
	assert.Equal(t, "2024-02-26", weekly[0].WeekStart)
	assert.True(t, d("5").Equal(weekly[0].StockIn))
}
