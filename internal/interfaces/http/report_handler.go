package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/essaghir/stock-ledger-api/internal/application/dto"
	"github.com/essaghir/stock-ledger-api/internal/application/report"
)

// ReportHandler sirve el reporte de stock en PDF.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockPDF godoc
// @Summary      Reporte de stock en PDF
// @Description  Snapshot de inventario + agregados diarios, por categoría y
//
//	top de productos del rango solicitado.
//
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "YYYY-MM-DD (defecto: hace 30 días)"
// @Param        end_date    query  string  false  "YYYY-MM-DD exclusivo"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	pdfBytes, err := h.uc.GenerateStockReport(c.Context(), GetUserID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="rapport-stock.pdf"`)
	return c.Send(pdfBytes)
}
