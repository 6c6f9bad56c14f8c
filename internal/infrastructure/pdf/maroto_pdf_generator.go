// Package pdf genera el cierre diario del negocio en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Cierre del día + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Vendido hoy / Ganancia / Fiado pendiente          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA VENTAS: Hora | Producto | Cant | Pago | Total         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIADOS PENDIENTES: Cliente | Descripción | Monto            │
//	│  STOCK BAJO: Producto | Stock                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/Caderno-api/internal/application/report"
	"github.com/jhoicas/Caderno-api/internal/domain/entity"
	"github.com/jhoicas/Caderno-api/pkg/money"
)

var _ report.DailyPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.DailyPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	fmt *money.Formatter
}

// NewMarotoPDFGenerator construye el generador con el formateador de montos del negocio.
func NewMarotoPDFGenerator(f *money.Formatter) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{fmt: f}
}

// GenerateDailyPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDailyPDF(_ context.Context, r *report.DailyReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre del día "+r.DateLabel, true).
		WithAuthor(r.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow(fmt.Sprintf("VENTAS DEL DÍA (%d)", len(r.Sales))))
	if len(r.Sales) == 0 {
		m.AddRows(emptyRow("Sin ventas registradas hoy."))
	} else {
		m.AddRows(salesHeaderRow())
		m.AddRows(g.salesRows(r)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow(fmt.Sprintf("FIADOS PENDIENTES (%d)", len(r.PendingDebts))))
	if len(r.PendingDebts) == 0 {
		m.AddRows(emptyRow("Sin deudas pendientes."))
	} else {
		m.AddRows(g.debtRows(r.PendingDebts)...)
	}

	if len(r.LowStock) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionRow("STOCK BAJO"))
		m.AddRows(lowStockRows(r.LowStock)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generado el "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 7, Color: colorGray, Top: 1, Align: align.Right,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *report.DailyReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(r.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("CIERRE DEL DÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(r.DateLabel, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: tres indicadores del día.
func (g *MarotoPDFGenerator) summaryRow(r *report.DailyReport) core.Row {
	box := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Color: c, Top: 6, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		box("Vendido hoy", g.fmt.Format(r.Revenue), colorPrimary),
		box("Ganancia", g.fmt.Format(r.Profit), colorPrimary),
		box("Fiado pendiente", g.fmt.Format(r.PendingTotal), colorAlert),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}

func salesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Hora", 1, align.Left),
		h("Producto", 5, align.Left),
		h("Cant.", 1, align.Center),
		h("Pago", 2, align.Center),
		h("Total", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) salesRows(r *report.DailyReport) []core.Row {
	loc := r.GeneratedAt.Location()
	rows := make([]core.Row, 0, len(r.Sales))
	for _, s := range r.Sales {
		pago := string(s.PaymentMethod)
		if s.CustomerName != "" {
			pago += " · " + s.CustomerName
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(s.Date.In(loc).Format("15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(s.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", s.Quantity), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(2).Add(text.New(pago, props.Text{Size: 7, Top: 1, Align: align.Center, Color: colorGray})),
			col.New(3).Add(text.New(g.fmt.Format(s.Total), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) debtRows(debts []entity.Debt) []core.Row {
	rows := make([]core.Row, 0, len(debts))
	for _, d := range debts {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(d.CustomerName, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(nonEmpty(d.Description, "-"), props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(3).Add(text.New(g.fmt.Format(d.Amount), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1, Color: colorAlert})),
		))
	}
	return rows
}

func lowStockRows(products []entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d un.", p.Stock), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1, Color: colorAlert})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
