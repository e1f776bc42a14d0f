// Package pdf implementa la generación del reporte de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Usuario │ Rango de fechas + Generado el   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Productos / Valor stock / Stock bajo / Stock alto │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Día | Entradas | Salidas | Neto | Movs              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Entradas | Salidas | Movs | %           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Entradas | Salidas | Movs (top 10)       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/essaghir/stock-ledger-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.StockReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.StockReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(
	_ context.Context,
	data *report.StockReportData,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rapport de stock", true).
		WithAuthor(data.UserName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(overviewRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Movimientos por día
	m.AddRows(sectionTitleRow("MOUVEMENTS PAR JOUR"))
	m.AddRows(dailyHeaderRow())
	for _, r := range dailyRows(data) {
		m.AddRows(r)
	}

	// Categorías
	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("RÉPARTITION PAR CATÉGORIE"))
	m.AddRows(categoryHeaderRow())
	for _, r := range categoryRows(data) {
		m.AddRows(r)
	}

	// Top productos
	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("PRODUITS LES PLUS ACTIFS"))
	m.AddRows(productHeaderRow())
	for _, r := range productRows(data) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + usuario (izq) y rango + fecha de generación (der).
func headerRow(data *report.StockReportData) core.Row {
	rango := data.From.Format("02/01/2006") + " – " + data.To.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("RAPPORT DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(data.UserName+"  ("+data.UserEmail+")", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Période: "+rango, props.Text{
				Size: 9, Align: align.Right, Top: 3,
			}),
			text.New("Généré le: "+data.GeneratedAt.Format("02/01/2006 15:04 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// overviewRow: snapshot actual de inventario en cuatro columnas.
func overviewRow(data *report.StockReportData) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7.5, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6, Align: align.Center, Color: colorPrimary,
			}),
		)
	}
	ov := data.Overview
	return row.New(14).Add(
		cell("Produits", strconv.Itoa(ov.TotalProducts)),
		cell("Valeur du stock", ov.TotalStockValue.StringFixed(2)),
		cell("Stock bas", strconv.Itoa(ov.LowStockProducts)),
		cell("Stock élevé", strconv.Itoa(ov.HighStockProducts)),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}),
	))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
	}))
}

func dailyHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Jour", 3, align.Left),
		headerCol("Entrées", 2, align.Right),
		headerCol("Sorties", 2, align.Right),
		headerCol("Net", 2, align.Right),
		headerCol("Mouvements", 3, align.Right),
	)
}

func dailyRows(data *report.StockReportData) []core.Row {
	result := make([]core.Row, 0, len(data.Daily))
	for _, d := range data.Daily {
		result = append(result, row.New(5).Add(
			tableCell(d.Date, 3, align.Left),
			tableCell(d.StockIn.String(), 2, align.Right),
			tableCell(d.StockOut.String(), 2, align.Right),
			tableCell(d.Net.String(), 2, align.Right),
			tableCell(strconv.Itoa(len(d.Movements)), 3, align.Right),
		))
	}
	if len(result) == 0 {
		result = append(result, emptyRow())
	}
	return result
}

func categoryHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Catégorie", 4, align.Left),
		headerCol("Entrées", 2, align.Right),
		headerCol("Sorties", 2, align.Right),
		headerCol("Mouvements", 2, align.Right),
		headerCol("%", 2, align.Right),
	)
}

func categoryRows(data *report.StockReportData) []core.Row {
	result := make([]core.Row, 0, len(data.Categories))
	for _, c := range data.Categories {
		result = append(result, row.New(5).Add(
			tableCell(c.CategoryLabel, 4, align.Left),
			tableCell(c.StockIn.String(), 2, align.Right),
			tableCell(c.StockOut.String(), 2, align.Right),
			tableCell(strconv.Itoa(c.MovementCount), 2, align.Right),
			tableCell(c.Percentage.StringFixed(1)+"%", 2, align.Right),
		))
	}
	if len(result) == 0 {
		result = append(result, emptyRow())
	}
	return result
}

func productHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Produit", 5, align.Left),
		headerCol("Entrées", 2, align.Right),
		headerCol("Sorties", 2, align.Right),
		headerCol("Mouvements", 3, align.Right),
	)
}

func productRows(data *report.StockReportData) []core.Row {
	result := make([]core.Row, 0, len(data.TopProducts))
	for _, p := range data.TopProducts {
		result = append(result, row.New(5).Add(
			tableCell(p.ProductName, 5, align.Left),
			tableCell(p.TotalIn.String(), 2, align.Right),
			tableCell(p.TotalOut.String(), 2, align.Right),
			tableCell(strconv.Itoa(p.MovementCount), 3, align.Right),
		))
	}
	if len(result) == 0 {
		result = append(result, emptyRow())
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func tableCell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 0.5}))
}

func emptyRow() core.Row {
	return row.New(5).Add(col.New(12).Add(
		text.New("Aucune donnée sur la période", props.Text{
			Size: 8, Color: colorGray, Align: align.Center, Top: 0.5,
		}),
	))
}
