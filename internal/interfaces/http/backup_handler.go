package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/essaghir/stock-ledger-api/internal/application/backup"
)

// BackupHandler sirve la exportación XML del inventario.
type BackupHandler struct {
	uc *backup.BackupUseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.BackupUseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar respaldo XML del inventario
// @Description  Lotes, líneas y el ledger completo del usuario. El header
//
//	X-Content-Digest lleva el SHA-256 hex del XML canonicalizado.
//
// @Tags         backup
// @Security     Bearer
// @Produce      application/xml
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/backup/export [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	res, err := h.uc.Export(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-ledger-export.xml"`)
	c.Set("X-Content-Digest", res.Digest)
	return c.Send(res.XML)
}
