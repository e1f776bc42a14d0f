package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/essaghir/stock-ledger-api/internal/domain"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

// ExportData snapshot completo del inventario de un usuario para respaldo.
// Los movimientos van ordenados por fecha ascendente (mismo orden que el ledger).
type ExportData struct {
	User        *entity.User
	GeneratedAt time.Time
	Lots        []*LotExport
	Movements   []*entity.StockMovement
	Truncated   bool // true si se alcanzó el tope de movimientos configurado
}

// LotExport un lote con sus líneas.
type LotExport struct {
	Lot   *entity.UserProduct
	Lines []*entity.ProductLine
}

// ExportResult XML listo para servir más su digest canónico.
type ExportResult struct {
	XML         []byte
	Digest      string // SHA-256 hex del XML canonicalizado (C14N)
	GeneratedAt time.Time
}

// ExportBuilder puerto del serializador XML (implementado en infrastructure/backup).
type ExportBuilder interface {
	Build(data *ExportData) ([]byte, string, error)
}

const listPageSize = 200

// BackupUseCase arma la exportación XML del inventario completo de un usuario.
type BackupUseCase struct {
	upRepo       repository.UserProductRepository
	lineRepo     repository.ProductLineRepository
	movRepo      repository.StockMovementRepository
	userRepo     repository.UserRepository
	builder      ExportBuilder
	maxMovements int // 0 = sin tope
}

// NewBackupUseCase construye el caso de uso.
func NewBackupUseCase(
	upRepo repository.UserProductRepository,
	lineRepo repository.ProductLineRepository,
	movRepo repository.StockMovementRepository,
	userRepo repository.UserRepository,
	builder ExportBuilder,
	maxMovements int,
) *BackupUseCase {
	return &BackupUseCase{
		upRepo:       upRepo,
		lineRepo:     lineRepo,
		movRepo:      movRepo,
		userRepo:     userRepo,
		builder:      builder,
		maxMovements: maxMovements,
	}
}

// Export genera el respaldo XML del usuario: lotes, líneas y el ledger completo.
func (uc *BackupUseCase) Export(ctx context.Context, userID string) (*ExportResult, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("leer usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	lots, err := uc.collectLots(userID)
	if err != nil {
		return nil, err
	}

	// Ledger completo del usuario, orden ascendente.
	movs, err := uc.movRepo.ListByUserInRange(userID, time.Time{}, farFuture())
	if err != nil {
		return nil, fmt.Errorf("leer ledger: %w", err)
	}
	truncated := false
	if uc.maxMovements > 0 && len(movs) > uc.maxMovements {
		movs = movs[:uc.maxMovements]
		truncated = true
	}

	data := &ExportData{
		User:        user,
		GeneratedAt: time.Now().UTC(),
		Lots:        lots,
		Movements:   movs,
		Truncated:   truncated,
	}
	xmlBytes, digest, err := uc.builder.Build(data)
	if err != nil {
		return nil, fmt.Errorf("serializar respaldo: %w", err)
	}
	return &ExportResult{XML: xmlBytes, Digest: digest, GeneratedAt: data.GeneratedAt}, nil
}

func (uc *BackupUseCase) collectLots(userID string) ([]*LotExport, error) {
	var lots []*LotExport
	for offset := 0; ; offset += listPageSize {
		page, err := uc.upRepo.ListByUser(userID, listPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("listar lotes: %w", err)
		}
		for _, up := range page {
			lines, err := uc.lineRepo.ListByUserProduct(up.ID)
			if err != nil {
				return nil, fmt.Errorf("listar líneas del lote %s: %w", up.ID, err)
			}
			lots = append(lots, &LotExport{Lot: up, Lines: lines})
		}
		if len(page) < listPageSize {
			return lots, nil
		}
	}
}

func farFuture() time.Time {
	return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
}
