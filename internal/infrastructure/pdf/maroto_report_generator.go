// Package pdf genera el informe general de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  RESUMEN: artículos / inconsistentes / valorización total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR CATEGORÍA:                                              │
//	│    Nombre categoría                        Valorización      │
//	│    Código | Artículo | Unidad | Stock | Movs | Costo | Valor │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de inconsistencias                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

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

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/shopspring/decimal"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa usecase.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
	now   func() time.Time
}

// NewMarotoReportGenerator construye el generador; title encabeza el documento.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Informe general de inventario"
	}
	return &MarotoReportGenerator{title: title, now: time.Now}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(report *dto.GeneralReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, g.now()))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, cat := range report.Categories {
		m.AddRows(categoryRow(cat))
		if len(cat.Articles) == 0 {
			m.AddRows(row.New(6).Add(col.New(12).Add(
				text.New("Sin artículos asignados", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
			)))
			continue
		}
		m.AddRows(tableHeaderRow())
		m.AddRows(articleRows(cat.Articles)...)
		m.AddRows(line.NewRow(2))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, at time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func summaryRow(report *dto.GeneralReportDTO) core.Row {
	item := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
	}
	return row.New(14).Add(
		item("ARTÍCULOS", fmt.Sprintf("%d", report.TotalArticles)),
		item("INCONSISTENTES", fmt.Sprintf("%d", report.Inconsistent)),
		item("VALORIZACIÓN TOTAL", "$"+formatMoney(report.TotalValuation)),
	)
}

func categoryRow(cat dto.ReportCategoryDTO) core.Row {
	return row.New(9).Add(
		col.New(8).Add(text.New(strings.ToUpper(cat.Name), props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
		})),
		col.New(4).Add(text.New("$"+formatMoney(cat.Valuation), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3, Right: 1,
		})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Código", 2, align.Left),
		h("Artículo", 4, align.Left),
		h("Unidad", 1, align.Center),
		h("Stock", 1, align.Right),
		h("Movs.", 1, align.Center),
		h("Costo prom.", 1, align.Right),
		h("Valorización", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func articleRows(items []dto.ReportArticleDTO) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, a := range items {
		stock := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		stockLabel := a.Stock.StringFixed(2)
		if !a.Consistent {
			stock.Color = colorAlert
			stock.Style = fontstyle.Bold
			stockLabel += " *"
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(a.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(a.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(a.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(stockLabel, stock)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", a.TotalMovements), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(a.AverageCost.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(a.Valuation), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"* El stock no coincide con el stock inicial más el neto de movimientos registrados "+
				"(ajuste directo de stock). Revise el kardex del artículo.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney redondea a pesos e inserta puntos de miles.
// Ej: 25000 → "25.000", 1234567.8 → "1.234.568"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
