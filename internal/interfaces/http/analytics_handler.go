package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/essaghir/stock-ledger-api/internal/application/analytics"
	"github.com/essaghir/stock-ledger-api/internal/application/dto"
)

// Rango por defecto del dashboard cuando no se pasan start_date/end_date.
const defaultRangeDays = 30

// AnalyticsHandler expone las vistas del dashboard, todas derivadas del ledger.
type AnalyticsHandler struct {
	uc *analytics.AggregatorUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.AggregatorUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// DailyMovements godoc
// @Summary      Agregados diarios del ledger
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (defecto: hace 30 días)"
// @Param        end_date    query  string  false  "YYYY-MM-DD exclusivo (defecto: mañana)"
// @Success      200  {array}   dto.DailyMovementsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/daily-movements [get]
func (h *AnalyticsHandler) DailyMovements(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	res, err := h.uc.GetDailyMovements(GetUserID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// WeeklyTotals godoc
// @Summary      Totales por semana (inicio lunes)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD exclusivo"
// @Success      200  {array}  dto.WeeklyTotalsDTO
// @Router       /api/analytics/weekly-totals [get]
func (h *AnalyticsHandler) WeeklyTotals(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	res, err := h.uc.GetWeeklyTotals(GetUserID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// MonthlySummary godoc
// @Summary      Resumen de un mes calendario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  true  "año (ej. 2024)"
// @Param        month  query  int  true  "mes 1-12"
// @Success      200  {object}  dto.MonthlySummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/monthly-summary [get]
func (h *AnalyticsHandler) MonthlySummary(c *fiber.Ctx) error {
	now := time.Now().UTC()
	year, errY := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	month, errM := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "año o mes inválido"})
	}
	res, err := h.uc.GetMonthlySummary(GetUserID(c), year, month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// CategoryStats godoc
// @Summary      Totales y porcentajes por categoría
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD exclusivo"
// @Success      200  {array}  dto.CategoryStatsDTO
// @Router       /api/analytics/category-stats [get]
func (h *AnalyticsHandler) CategoryStats(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	res, err := h.uc.GetCategoryStats(GetUserID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ProductPerformance godoc
// @Summary      Ranking de líneas por actividad
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD exclusivo"
// @Param        limit  query  int     false  "máx. líneas (defecto 10, 0 = todas)"
// @Success      200  {array}  dto.ProductPerformanceDTO
// @Router       /api/analytics/product-performance [get]
func (h *AnalyticsHandler) ProductPerformance(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	limit, errL := strconv.Atoi(c.Query("limit", "10"))
	if errL != nil || limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit inválido"})
	}
	res, err := h.uc.GetProductPerformance(GetUserID(c), from, to, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// CurrentOverview godoc
// @Summary      Snapshot actual del inventario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverviewDTO
// @Router       /api/analytics/current-overview [get]
func (h *AnalyticsHandler) CurrentOverview(c *fiber.Ctx) error {
	res, err := h.uc.GetCurrentOverview(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// parseRange lee start_date/end_date (YYYY-MM-DD, end_date exclusivo). Sin
// parámetros devuelve los últimos 30 días incluyendo hoy.
func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	to := now.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -defaultRangeDays)

	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	return from, to, nil
}
