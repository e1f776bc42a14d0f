package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Factor sobre el stock inicial a partir del cual la línea se considera "stock alto".
var highStockFactor = decimal.NewFromFloat(0.8)

// ProductLine representa un artículo trazable dentro de un lote (UserProduct).
// CurrentStock es una proyección cacheada del ledger: inicial + Σ(IN) − Σ(OUT);
// solo cambia a través del servicio de reconciliación, nunca por mutación directa.
type ProductLine struct {
	ID            string
	UserProductID string
	Name          string
	CategoryKey   string // identificador estable (derivado de la etiqueta, ver domain/category)
	CategoryLabel string // etiqueta visible, puede ser bilingüe: "Fruits (فواكه)"
	Quality       int    // calificación 1–5
	UnitPrice     decimal.Decimal
	Unite         string // etiqueta de unidad: kg, L, pièce...
	InitialStock  decimal.Decimal // base inmutable fijada al crear la línea
	CurrentStock  decimal.Decimal // invariante: siempre >= 0
	MinStock      decimal.Decimal // umbral de alerta de stock bajo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si la línea está bajo el umbral mínimo (currentStock < minStock).
func (p *ProductLine) IsLowStock() bool {
	return p.CurrentStock.LessThan(p.MinStock)
}

// IsHighStock indica si la línea conserva al menos el 80% de su stock inicial.
func (p *ProductLine) IsHighStock() bool {
	return p.CurrentStock.GreaterThanOrEqual(p.InitialStock.Mul(highStockFactor))
}

// StockValue devuelve el valor monetario del stock actual (currentStock × unitPrice).
func (p *ProductLine) StockValue() decimal.Decimal {
	return p.CurrentStock.Mul(p.UnitPrice)
}
