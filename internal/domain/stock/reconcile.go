// Package stock contiene la aritmética pura del ledger (servicio de dominio).
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/essaghir/stock-ledger-api/internal/domain"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
)

// ComputeNewStock calcula el stock resultante de aplicar un movimiento.
// Reglas: quantity > 0; tipo IN suma, tipo OUT resta; una salida que dejaría
// el stock por debajo de cero se rechaza con ErrInsufficientStock (nunca se
// recorta a cero: el estado almacenado no debe cambiar).
func ComputeNewStock(previous, quantity decimal.Decimal, movementType string) (decimal.Decimal, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	switch movementType {
	case entity.MovementTypeIN:
		return previous.Add(quantity), nil
	case entity.MovementTypeOUT:
		newStock := previous.Sub(quantity)
		if newStock.IsNegative() {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		return newStock, nil
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}
}

// DeltaMovement re-expresa un stock objetivo absoluto como movimiento IN/OUT
// relativo al stock actual. delta cero devuelve cantidad cero (no-op para el caller).
func DeltaMovement(current, target decimal.Decimal) (movementType string, quantity decimal.Decimal, err error) {
	if target.IsNegative() {
		return "", decimal.Zero, domain.ErrInvalidInput
	}
	delta := target.Sub(current)
	switch {
	case delta.IsPositive():
		return entity.MovementTypeIN, delta, nil
	case delta.IsNegative():
		return entity.MovementTypeOUT, delta.Neg(), nil
	default:
		return "", decimal.Zero, nil
	}
}
