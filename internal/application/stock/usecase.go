// Package stock implementa el servicio de reconciliación: el único punto por
// el que puede cambiar el stock actual de una línea de producto.
package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/essaghir/stock-ledger-api/internal/domain"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
	domainstock "github.com/essaghir/stock-ledger-api/internal/domain/stock"
)

// ReconcileUseCase aplica movimientos de stock de forma transaccional con
// bloqueo de fila (SELECT FOR UPDATE) sobre la línea y Commit/Rollback.
// Mutar current_stock sin su movimiento correspondiente es una violación de
// integridad: todo cambio pasa por aquí.
type ReconcileUseCase struct {
	txRunner        TxRunner
	lineRepo        repository.ProductLineRepository
	userProductRepo repository.UserProductRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	txRunner TxRunner,
	lineRepo repository.ProductLineRepository,
	userProductRepo repository.UserProductRepository,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		txRunner:        txRunner,
		lineRepo:        lineRepo,
		userProductRepo: userProductRepo,
	}
}

// MovementInput entrada para aplicar un movimiento IN/OUT.
type MovementInput struct {
	UserID        string // actor autenticado
	ProductLineID string
	UserProductID string
	Type          string // IN | OUT
	Quantity      decimal.Decimal
	Reason        string
}

// ApplyMovement valida la entrada, abre una transacción, bloquea la fila de la
// línea, calcula el nuevo stock y escribe el movimiento junto con el stock
// actualizado. Una salida que dejaría stock negativo se rechaza con
// ErrInsufficientStock sin alterar el estado almacenado.
func (uc *ReconcileUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if input.ProductLineID == "" || input.UserProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Type != entity.MovementTypeIN && input.Type != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// Validar que el lote exista, sea del actor y contenga la línea
	up, err := uc.userProductRepo.GetByID(input.UserProductID)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, domain.ErrNotFound
	}
	if up.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}
	line, err := uc.lineRepo.GetByID(input.ProductLineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if line.UserProductID != input.UserProductID {
		return nil, domain.ErrConsistency
	}

	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		lineRepo repository.ProductLineRepository,
	) error {
		mov, err = applyLocked(movRepo, lineRepo, input.ProductLineID, input.UserID,
			input.Type, input.Quantity, input.Reason, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// SetAbsoluteStock fija el stock de una línea a un valor objetivo: calcula el
// delta respecto al stock bloqueado y lo re-expresa como movimiento IN/OUT con
// motivo STOCK_ADJUSTMENT por la misma vía atómica. Delta cero no escribe nada
// y devuelve (nil, nil).
func (uc *ReconcileUseCase) SetAbsoluteStock(ctx context.Context, productLineID string, target decimal.Decimal, actorID string) (*entity.StockMovement, error) {
	if productLineID == "" || target.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		lineRepo repository.ProductLineRepository,
	) error {
		var err error
		mov, err = SetAbsoluteInTx(movRepo, lineRepo, productLineID, target, actorID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// SetAbsoluteInTx fija el stock de la línea al objetivo usando los
// repositorios del caller (misma transacción). Delta cero no escribe nada y
// devuelve (nil, nil).
func SetAbsoluteInTx(
	movRepo repository.StockMovementRepository,
	lineRepo repository.ProductLineRepository,
	productLineID string,
	target decimal.Decimal,
	actorID string,
	now time.Time,
) (*entity.StockMovement, error) {
	line, err := lineRepo.GetForUpdate(productLineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	movType, qty, err := domainstock.DeltaMovement(line.CurrentStock, target)
	if err != nil {
		return nil, err
	}
	if qty.IsZero() {
		return nil, nil // stock ya en el objetivo
	}
	mov := buildMovement(line, movType, qty, target, entity.ReasonStockAdjustment, actorID, now)
	if err := lineRepo.UpdateCurrentStock(line.ID, target); err != nil {
		return nil, err
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterInitialInTx registra la entrada INITIAL_STOCK de una línea recién
// creada usando los repositorios del caller (misma transacción que el INSERT
// de la línea). previousStock es 0 por definición.
func RegisterInitialInTx(
	movRepo repository.StockMovementRepository,
	line *entity.ProductLine,
	actorID string,
	now time.Time,
) error {
	if !line.InitialStock.GreaterThan(decimal.Zero) {
		return nil // línea creada vacía: sin movimiento
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductLineID: line.ID,
		UserProductID: line.UserProductID,
		Type:          entity.MovementTypeIN,
		Quantity:      line.InitialStock,
		PreviousStock: decimal.Zero,
		NewStock:      line.InitialStock,
		Reason:        entity.ReasonInitialStock,
		CreatedBy:     actorID,
		CreatedAt:     now,
	}
	return movRepo.Create(mov)
}

// applyLocked bloquea la línea, calcula el nuevo stock y persiste movimiento +
// stock en la transacción del caller.
func applyLocked(
	movRepo repository.StockMovementRepository,
	lineRepo repository.ProductLineRepository,
	productLineID, actorID, movType string,
	quantity decimal.Decimal,
	reason string,
	now time.Time,
) (*entity.StockMovement, error) {
	line, err := lineRepo.GetForUpdate(productLineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	newStock, err := domainstock.ComputeNewStock(line.CurrentStock, quantity, movType)
	if err != nil {
		return nil, err
	}
	mov := buildMovement(line, movType, quantity, newStock, reason, actorID, now)
	if err := lineRepo.UpdateCurrentStock(line.ID, newStock); err != nil {
		return nil, err
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func buildMovement(
	line *entity.ProductLine,
	movType string,
	quantity, newStock decimal.Decimal,
	reason, actorID string,
	now time.Time,
) *entity.StockMovement {
	return &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductLineID: line.ID,
		UserProductID: line.UserProductID,
		Type:          movType,
		Quantity:      quantity,
		PreviousStock: line.CurrentStock,
		NewStock:      newStock,
		Reason:        reason,
		CreatedBy:     actorID,
		CreatedAt:     now,
	}
}
