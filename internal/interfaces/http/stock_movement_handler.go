package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/essaghir/stock-ledger-api/internal/application/analytics"
	"github.com/essaghir/stock-ledger-api/internal/application/dto"
	appstock "github.com/essaghir/stock-ledger-api/internal/application/stock"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
)

// StockMovementHandler maneja el registro y la consulta del ledger.
type StockMovementHandler struct {
	reconcile  *appstock.ReconcileUseCase
	aggregator *analytics.AggregatorUseCase
}

// NewStockMovementHandler construye el handler.
func NewStockMovementHandler(reconcile *appstock.ReconcileUseCase, aggregator *analytics.AggregatorUseCase) *StockMovementHandler {
	return &StockMovementHandler{reconcile: reconcile, aggregator: aggregator}
}

// Apply godoc
// @Summary      Registrar movimiento de stock (IN/OUT)
// @Description  Único punto de escritura del ledger: valida, bloquea la línea,
//
//	calcula el nuevo stock y persiste movimiento y proyección en
//	una sola transacción.
//
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "product_line_id, user_product_id, type (IN|OUT), quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *StockMovementHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.reconcile.ApplyMovement(c.Context(), appstock.MovementInput{
		UserID:        GetUserID(c),
		ProductLineID: in.ProductLineID,
		UserProductID: in.UserProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementToResponse(mov))
}

// List godoc
// @Summary      Historial de movimientos de una línea
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        product_line_id  query  string  true   "ID de la línea"
// @Param        limit            query  int     false  "máx. resultados (defecto 20)"
// @Param        offset           query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *StockMovementHandler) List(c *fiber.Ctx) error {
	lineID := c.Query("product_line_id")
	if lineID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_line_id requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	movs, err := h.aggregator.ListMovements(GetUserID(c), lineID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movs), "movements": movs})
}

func movementToResponse(m *entity.StockMovement) dto.MovementResponse {
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
