package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Motivos reservados por el sistema; el resto son texto libre del usuario.
const (
	ReasonInitialStock    = "INITIAL_STOCK"    // entrada implícita al crear la línea
	ReasonStockAdjustment = "STOCK_ADJUSTMENT" // ajuste manual de administrador
)

// StockMovement representa un evento IN/OUT del ledger. Inmutable una vez creado:
// los movimientos nunca se editan, solo se añaden. El ledger es la fuente de
// verdad de toda la analítica.
//
// Invariante: NewStock = PreviousStock + Quantity (IN) o PreviousStock − Quantity (OUT),
// y NewStock >= 0 siempre.
type StockMovement struct {
	ID            string
	ProductLineID string
	UserProductID string
	Type          string          // IN, OUT
	Quantity      decimal.Decimal // siempre > 0; el signo lo da Type
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reason        string
	CreatedBy     string // UserID del actor
	CreatedAt     time.Time
}
