package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/essaghir/stock-ledger-api/internal/application/dto"
	"github.com/essaghir/stock-ledger-api/internal/application/usecase"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
)

// UserProductHandler maneja lotes (user products) y sus líneas.
type UserProductHandler struct {
	uc *usecase.UserProductUseCase
}

// NewUserProductHandler construye el handler.
func NewUserProductHandler(uc *usecase.UserProductUseCase) *UserProductHandler {
	return &UserProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lote
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserProductRequest  true  "name"
// @Success      201   {object}  dto.UserProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *UserProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// List godoc
// @Summary      Listar lotes del usuario
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. resultados (defecto 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.UserProductListResponse
// @Router       /api/products [get]
func (h *UserProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	res, err := h.uc.List(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// GetByID godoc
// @Summary      Obtener lote con sus líneas
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.UserProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *UserProductHandler) GetByID(c *fiber.Ctx) error {
	res, err := h.uc.GetByID(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Delete godoc
// @Summary      Eliminar lote (cascada: movimientos, líneas, lote)
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID del lote"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *UserProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLine godoc
// @Summary      Añadir línea de producto al lote
// @Description  Registra la línea y, si initial_stock > 0, el movimiento IN
//
//	implícito INITIAL_STOCK en la misma transacción.
//
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del lote"
// @Param        body  body  dto.CreateProductLineRequest  true  "name, category, quality, unit_price, unite, initial_stock, min_stock"
// @Success      201   {object}  dto.ProductLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/lines [post]
func (h *UserProductHandler) AddLine(c *fiber.Ctx) error {
	var in dto.CreateProductLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.AddProductLine(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// UpdateLine godoc
// @Summary      Actualizar línea de producto
// @Description  Campos descriptivos se actualizan en sitio; target_stock se
//
//	aplica como ajuste absoluto vía reconciliación (STOCK_ADJUSTMENT).
//
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                        true  "ID del lote"
// @Param        lineId  path  string                        true  "ID de la línea"
// @Param        body    body  dto.UpdateProductLineRequest  true  "campos opcionales"
// @Success      200   {object}  dto.ProductLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/lines/{lineId} [put]
func (h *UserProductHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateProductLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El ajuste absoluto de stock queda reservado a administradores.
	if in.TargetStock != nil && GetRole(c) != entity.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol admin para ajustar stock"})
	}
	res, err := h.uc.UpdateProductLine(c.Context(), GetUserID(c), c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// DeleteLine godoc
// @Summary      Eliminar línea de producto (cascada: movimientos, línea)
// @Tags         products
// @Security     Bearer
// @Param        id      path  string  true  "ID del lote"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/lines/{lineId} [delete]
func (h *UserProductHandler) DeleteLine(c *fiber.Ctx) error {
	if err := h.uc.DeleteProductLine(c.Context(), GetUserID(c), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
