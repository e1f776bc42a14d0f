// Package analytics deriva vistas de solo lectura sobre el ledger de
// movimientos: agregados diarios, semanales, mensuales, por categoría y por
// producto. Nunca muta datos; todas las funciones de este archivo son folds
// puros sobre el slice de movimientos ya leído.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/essaghir/stock-ledger-api/internal/application/dto"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// DailyMovements agrupa los movimientos por día calendario (ascendente).
// Para cada día: stockIn/stockOut = suma de cantidades por tipo, net = in − out.
func DailyMovements(movs []*entity.StockMovement) []dto.DailyMovementsDTO {
	byDay := map[string]*dto.DailyMovementsDTO{}
	var order []string

	for _, m := range movs {
		day := m.CreatedAt.Format(dateLayout)
		agg, ok := byDay[day]
		if !ok {
			agg = &dto.DailyMovementsDTO{
				Date:     day,
				StockIn:  decimal.Zero,
				StockOut: decimal.Zero,
				Net:      decimal.Zero,
			}
			byDay[day] = agg
			order = append(order, day)
		}
		if m.Type == entity.MovementTypeIN {
			agg.StockIn = agg.StockIn.Add(m.Quantity)
		} else {
			agg.StockOut = agg.StockOut.Add(m.Quantity)
		}
		agg.Net = agg.StockIn.Sub(agg.StockOut)
		agg.Movements = append(agg.Movements, toMovementResponse(m))
	}

	sort.Strings(order)
	out := make([]dto.DailyMovementsDTO, 0, len(order))
	for _, day := range order {
		out = append(out, *byDay[day])
	}
	return out
}

// WeeklyTotals agrupa agregados diarios ya calculados en semanas con inicio en
// lunes. Es un fold sobre los días, no un segundo escaneo del ledger.
func WeeklyTotals(daily []dto.DailyMovementsDTO) []dto.WeeklyTotalsDTO {
	byWeek := map[string]*dto.WeeklyTotalsDTO{}
	var order []string

	for _, day := range daily {
		t, err := time.Parse(dateLayout, day.Date)
		if err != nil {
			continue
		}
		week := mondayOf(t).Format(dateLayout)
		agg, ok := byWeek[week]
		if !ok {
			agg = &dto.WeeklyTotalsDTO{
				WeekStart: week,
				StockIn:   decimal.Zero,
				StockOut:  decimal.Zero,
				Net:       decimal.Zero,
			}
			byWeek[week] = agg
			order = append(order, week)
		}
		agg.StockIn = agg.StockIn.Add(day.StockIn)
		agg.StockOut = agg.StockOut.Add(day.StockOut)
		agg.Net = agg.StockIn.Sub(agg.StockOut)
		agg.MovementCount += len(day.Movements)
	}

	sort.Strings(order)
	out := make([]dto.WeeklyTotalsDTO, 0, len(order))
	for _, week := range order {
		out = append(out, *byWeek[week])
	}
	return out
}

// mondayOf devuelve el lunes de la semana de t (el domingo pertenece a la
// semana que empezó seis días antes).
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// MonthlySummary reduce los movimientos del mes indicado a un único agregado.
func MonthlySummary(movs []*entity.StockMovement, year, month int) dto.MonthlySummaryDTO {
	summary := dto.MonthlySummaryDTO{
		Year:     year,
		Month:    month,
		TotalIn:  decimal.Zero,
		TotalOut: decimal.Zero,
		Net:      decimal.Zero,
	}
	for _, m := range movs {
		if m.CreatedAt.Year() != year || int(m.CreatedAt.Month()) != month {
			continue
		}
		if m.Type == entity.MovementTypeIN {
			summary.TotalIn = summary.TotalIn.Add(m.Quantity)
		} else {
			summary.TotalOut = summary.TotalOut.Add(m.Quantity)
		}
		summary.MovementCount++
	}
	summary.Net = summary.TotalIn.Sub(summary.TotalOut)
	return summary
}

// CategoryStats acumula totales por categoría en el orden de primera aparición
// en el ledger. percentage = count/total × 100 redondeado a 1 decimal; la suma
// de counts por categoría siempre iguala al total plano del rango.
func CategoryStats(movs []*entity.StockMovement, lines map[string]*entity.ProductLine) []dto.CategoryStatsDTO {
	byKey := map[string]*dto.CategoryStatsDTO{}
	var order []string
	total := 0

	for _, m := range movs {
		line := lines[m.ProductLineID]
		if line == nil {
			continue // línea borrada a mitad de rango: sin categoría conocida
		}
		agg, ok := byKey[line.CategoryKey]
		if !ok {
			agg = &dto.CategoryStatsDTO{
				CategoryKey:   line.CategoryKey,
				CategoryLabel: line.CategoryLabel,
				StockIn:       decimal.Zero,
				StockOut:      decimal.Zero,
			}
			byKey[line.CategoryKey] = agg
			order = append(order, line.CategoryKey)
		}
		if m.Type == entity.MovementTypeIN {
			agg.StockIn = agg.StockIn.Add(m.Quantity)
		} else {
			agg.StockOut = agg.StockOut.Add(m.Quantity)
		}
		agg.MovementCount++
		total++
	}

	out := make([]dto.CategoryStatsDTO, 0, len(order))
	for _, key := range order {
		agg := byKey[key]
		agg.Percentage = percentage(agg.MovementCount, total)
		out = append(out, *agg)
	}
	return out
}

// ProductPerformance acumula totales por línea y ordena por número de
// movimientos descendente, truncando a limit (limit <= 0 devuelve todo).
// Empates conservan el orden de primera aparición (sort estable).
func ProductPerformance(movs []*entity.StockMovement, lines map[string]*entity.ProductLine, limit int) []dto.ProductPerformanceDTO {
	byLine := map[string]*dto.ProductPerformanceDTO{}
	var order []string

	for _, m := range movs {
		agg, ok := byLine[m.ProductLineID]
		if !ok {
			name := ""
			if line := lines[m.ProductLineID]; line != nil {
				name = line.Name
			}
			agg = &dto.ProductPerformanceDTO{
				ProductLineID: m.ProductLineID,
				ProductName:   name,
				TotalIn:       decimal.Zero,
				TotalOut:      decimal.Zero,
			}
			byLine[m.ProductLineID] = agg
			order = append(order, m.ProductLineID)
		}
		if m.Type == entity.MovementTypeIN {
			agg.TotalIn = agg.TotalIn.Add(m.Quantity)
		} else {
			agg.TotalOut = agg.TotalOut.Add(m.Quantity)
		}
		agg.MovementCount++
	}

	out := make([]dto.ProductPerformanceDTO, 0, len(order))
	for _, id := range order {
		out = append(out, *byLine[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MovementCount > out[j].MovementCount
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// percentage devuelve count/total × 100 con 1 decimal; total cero → 0, nunca NaN.
func percentage(count, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(count)).Mul(hundred).
		DivRound(decimal.NewFromInt(int64(total)), 1)
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductLineID: m.ProductLineID,
		UserProductID: m.UserProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
