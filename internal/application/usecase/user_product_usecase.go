// Package usecase contiene los casos de uso de ciclo de vida de lotes y líneas.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appstock "github.com/essaghir/stock-ledger-api/internal/application/stock"
	"github.com/essaghir/stock-ledger-api/internal/application/dto"
	"github.com/essaghir/stock-ledger-api/internal/domain"
	"github.com/essaghir/stock-ledger-api/internal/domain/category"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

// UserProductUseCase CRUD de lotes (UserProduct) y sus líneas de producto.
// Toda alta de línea registra su entrada inicial por el servicio de
// reconciliación y todo borrado cascada en una única transacción.
type UserProductUseCase struct {
	txRunner appstock.TxRunner
	upRepo   repository.UserProductRepository
	lineRepo repository.ProductLineRepository
}

// NewUserProductUseCase construye el caso de uso.
func NewUserProductUseCase(
	txRunner appstock.TxRunner,
	upRepo repository.UserProductRepository,
	lineRepo repository.ProductLineRepository,
) *UserProductUseCase {
	return &UserProductUseCase{
		txRunner: txRunner,
		upRepo:   upRepo,
		lineRepo: lineRepo,
	}
}

// Create crea un lote vacío. Los nombres duplicados se permiten: un mismo
// proveedor puede entregar dos lotes con la misma etiqueta.
func (uc *UserProductUseCase) Create(userID string, in dto.CreateUserProductRequest) (*dto.UserProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	up := &entity.UserProduct{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.upRepo.Create(up); err != nil {
		return nil, err
	}
	return toUserProductResponse(up, nil), nil
}

// GetByID obtiene un lote del usuario con sus líneas.
func (uc *UserProductUseCase) GetByID(userID, id string) (*dto.UserProductResponse, error) {
	up, err := uc.ownedLot(userID, id)
	if err != nil {
		return nil, err
	}
	lines, err := uc.lineRepo.ListByUserProduct(id)
	if err != nil {
		return nil, err
	}
	return toUserProductResponse(up, lines), nil
}

// List lista los lotes del usuario con paginación.
func (uc *UserProductUseCase) List(userID string, limit, offset int) (*dto.UserProductListResponse, error) {
	list, err := uc.upRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := dto.UserProductListResponse{Products: make([]dto.UserProductResponse, 0, len(list))}
	for _, up := range list {
		out.Products = append(out.Products, *toUserProductResponse(up, nil))
	}
	out.Total = len(out.Products)
	return &out, nil
}

// AddProductLine crea una línea con currentStock = initialStock y registra la
// entrada INITIAL_STOCK (previousStock = 0) en la misma transacción que el
// INSERT. Stock inicial cero crea la línea sin movimiento.
func (uc *UserProductUseCase) AddProductLine(ctx context.Context, userID, userProductID string, in dto.CreateProductLineRequest) (*dto.ProductLineResponse, error) {
	if _, err := uc.ownedLot(userID, userProductID); err != nil {
		return nil, err
	}
	if err := validateLineFields(in.Name, in.Quality, in.UnitPrice, in.InitialStock, in.MinStock); err != nil {
		return nil, err
	}

	now := time.Now()
	line := &entity.ProductLine{
		ID:            uuid.New().String(),
		UserProductID: userProductID,
		Name:          in.Name,
		CategoryKey:   category.Key(in.CategoryLabel),
		CategoryLabel: in.CategoryLabel,
		Quality:       in.Quality,
		UnitPrice:     in.UnitPrice,
		Unite:         in.Unite,
		InitialStock:  in.InitialStock,
		CurrentStock:  in.InitialStock,
		MinStock:      in.MinStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.RunLifecycle(ctx, func(
		movRepo repository.StockMovementRepository,
		lineRepo repository.ProductLineRepository,
		_ repository.UserProductRepository,
	) error {
		if err := lineRepo.Create(line); err != nil {
			return err
		}
		return appstock.RegisterInitialInTx(movRepo, line, userID, now)
	})
	if err != nil {
		return nil, err
	}
	return toProductLineResponse(line), nil
}

// UpdateProductLine actualiza metadatos de la línea; TargetStock (si viene) se
// aplica como ajuste absoluto vía reconciliación. Cambiar la etiqueta de
// categoría re-deriva la clave estable.
func (uc *UserProductUseCase) UpdateProductLine(ctx context.Context, userID, userProductID, lineID string, in dto.UpdateProductLineRequest) (*dto.ProductLineResponse, error) {
	line, err := uc.ownedLine(userID, userProductID, lineID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		line.Name = *in.Name
	}
	if in.CategoryLabel != nil {
		line.CategoryLabel = *in.CategoryLabel
		line.CategoryKey = category.Key(*in.CategoryLabel)
	}
	if in.Quality != nil {
		if *in.Quality < 1 || *in.Quality > 5 {
			return nil, domain.ErrInvalidInput
		}
		line.Quality = *in.Quality
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		line.UnitPrice = *in.UnitPrice
	}
	if in.Unite != nil {
		line.Unite = *in.Unite
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		line.MinStock = *in.MinStock
	}
	if in.TargetStock != nil && in.TargetStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Metadatos y ajuste de stock en la misma transacción: o se aplica el PUT
	// completo o no se aplica nada.
	line.UpdatedAt = time.Now()
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		lineRepo repository.ProductLineRepository,
	) error {
		if err := lineRepo.Update(line); err != nil {
			return err
		}
		if in.TargetStock != nil {
			if _, err := appstock.SetAbsoluteInTx(movRepo, lineRepo, lineID, *in.TargetStock, userID, line.UpdatedAt); err != nil {
				return err
			}
			line.CurrentStock = *in.TargetStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductLineResponse(line), nil
}

// DeleteProductLine borra la línea y todos sus movimientos (cascada, una tx).
// No es reversible.
func (uc *UserProductUseCase) DeleteProductLine(ctx context.Context, userID, userProductID, lineID string) error {
	if _, err := uc.ownedLine(userID, userProductID, lineID); err != nil {
		return err
	}
	return uc.txRunner.RunLifecycle(ctx, func(
		movRepo repository.StockMovementRepository,
		lineRepo repository.ProductLineRepository,
		_ repository.UserProductRepository,
	) error {
		if err := movRepo.DeleteByProductLine(lineID); err != nil {
			return err
		}
		return lineRepo.Delete(lineID)
	})
}

// Delete borra el lote completo: movimientos → líneas → cabecera, una tx.
// No es reversible.
func (uc *UserProductUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.ownedLot(userID, id); err != nil {
		return err
	}
	return uc.txRunner.RunLifecycle(ctx, func(
		movRepo repository.StockMovementRepository,
		lineRepo repository.ProductLineRepository,
		upRepo repository.UserProductRepository,
	) error {
		if err := movRepo.DeleteByUserProduct(id); err != nil {
			return err
		}
		if err := lineRepo.DeleteByUserProduct(id); err != nil {
			return err
		}
		return upRepo.Delete(id)
	})
}

// ownedLot devuelve el lote si existe y pertenece al usuario.
func (uc *UserProductUseCase) ownedLot(userID, id string) (*entity.UserProduct, error) {
	up, err := uc.upRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, domain.ErrNotFound
	}
	if up.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return up, nil
}

// ownedLine valida lote + línea + emparejamiento (ErrConsistency si la línea
// pertenece a otro lote).
func (uc *UserProductUseCase) ownedLine(userID, userProductID, lineID string) (*entity.ProductLine, error) {
	if _, err := uc.ownedLot(userID, userProductID); err != nil {
		return nil, err
	}
	line, err := uc.lineRepo.GetByID(lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if line.UserProductID != userProductID {
		return nil, domain.ErrConsistency
	}
	return line, nil
}

func validateLineFields(name string, quality int, unitPrice, initialStock, minStock decimal.Decimal) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	if quality < 1 || quality > 5 {
		return domain.ErrInvalidInput
	}
	if unitPrice.IsNegative() || initialStock.IsNegative() || minStock.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

func toUserProductResponse(up *entity.UserProduct, lines []*entity.ProductLine) *dto.UserProductResponse {
	resp := &dto.UserProductResponse{
		ID:        up.ID,
		Name:      up.Name,
		CreatedAt: up.CreatedAt,
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, *toProductLineResponse(line))
	}
	return resp
}

func toProductLineResponse(line *entity.ProductLine) *dto.ProductLineResponse {
	return &dto.ProductLineResponse{
		ID:            line.ID,
		UserProductID: line.UserProductID,
		Name:          line.Name,
		CategoryKey:   line.CategoryKey,
		CategoryLabel: line.CategoryLabel,
		Quality:       line.Quality,
		UnitPrice:     line.UnitPrice,
		Unite:         line.Unite,
		InitialStock:  line.InitialStock,
		CurrentStock:  line.CurrentStock,
		MinStock:      line.MinStock,
		LowStock:      line.IsLowStock(),
		CreatedAt:     line.CreatedAt,
	}
}
