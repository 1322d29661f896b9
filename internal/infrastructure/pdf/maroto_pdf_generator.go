// Package pdf genera el reporte PDF del resumen del panel de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + periodo   │  Fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: pedidos / unidades / beneficio / más vendido          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Precio | Vendidas | Repuestas | Beneficio │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REPARTO: color + producto + % del beneficio                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/application/analytics"
	"github.com/jhoicas/inventario-panel/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorZebra   = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.DashboardPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	titulo string
}

var _ analytics.DashboardPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador. titulo encabeza el reporte (nombre de la app).
func NewMarotoPDFGenerator(titulo string) *MarotoPDFGenerator {
	if titulo == "" {
		titulo = "Inventario"
	}
	return &MarotoPDFGenerator{titulo: titulo}
}

// GenerarDashboard genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerarDashboard(_ context.Context, r *dto.DashboardDTO) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de inventario", true).
		WithAuthor(g.titulo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRows(r.KPIs)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(seccionRow("VENTAS Y REPOSICIÓN POR PRODUCTO"))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(r.Productos)...)

	if len(r.Pastel) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(seccionRow("REPARTO DEL BENEFICIO"))
		m.AddRows(repartoRows(r.Pastel, r.KPIs.Beneficio)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(r *dto.DashboardDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.titulo, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Resumen de pedidos · "+r.Periodo, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.Generado.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func kpiRows(k dto.KPIsDTO) []core.Row {
	kpi := func(label, valor string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(valor, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center, Color: colorPrimary}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			kpi("Pedidos salientes", strconv.Itoa(k.PedidosSalientes)),
			kpi("Pedidos entrantes", strconv.Itoa(k.PedidosEntrantes)),
			kpi("Unidades vendidas", strconv.Itoa(k.UnidadesVendidas)),
			kpi("Unidades repuestas", strconv.Itoa(k.UnidadesRepuestas)),
		),
		row.New(14).Add(
			col.New(6).Add(
				text.New("Beneficio total", props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
				text.New(formatMoney(k.Beneficio), props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center}),
			),
			col.New(6).Add(
				text.New("Producto más vendido", props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
				text.New(nonEmpty(k.ProductoMasVendido, "—"), props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center}),
			),
		),
	}
}

func seccionRow(titulo string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(titulo, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 5, align.Left),
		h("Precio", 2, align.Right),
		h("Vendidas", 1, align.Center),
		h("Repuestas", 1, align.Center),
		h("Beneficio", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows una fila por producto; filas alternas sombreadas.
func tableDetailRows(productos []dto.ProductoVentasDTO) []core.Row {
	if len(productos) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin pedidos registrados.", props.Text{Size: 8, Top: 2, Color: colorGray, Align: align.Center}),
		))}
	}
	result := make([]core.Row, 0, len(productos))
	for i, p := range productos {
		r := row.New(7).Add(
			col.New(5).Add(text.New(p.Nombre, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(p.Precio), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(strconv.Itoa(p.Vendidas), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(p.Repuestas), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(formatMoney(p.Beneficio), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
		}
		result = append(result, r)
	}
	return result
}

// repartoRows leyenda del gráfico de pastel: muestra de color, producto y porcentaje.
func repartoRows(porciones []dto.PorcionDTO, total decimal.Decimal) []core.Row {
	rows := make([]core.Row, 0, len(porciones))
	for _, p := range porciones {
		pct := "—"
		if total.IsPositive() {
			pct = p.Beneficio.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).WithStyle(&props.Cell{BackgroundColor: hexColor(p.Color)}),
			col.New(7).Add(text.New(p.Nombre, props.Text{Size: 8, Top: 1, Left: 2})),
			col.New(2).Add(text.New(formatMoney(p.Beneficio), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(2).Add(text.New(pct, props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
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

// formatMoney importe con dos decimales, puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", 1234.5 → "1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	signo := ""
	if strings.HasPrefix(s, "-") {
		signo, s = "-", s[1:]
	}
	entero, frac, _ := strings.Cut(s, ".")

	n := len(entero)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(entero) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return signo + string(buf) + "," + frac
}

// hexColor "#RRGGBB" → props.Color; gris si no se puede interpretar.
func hexColor(hex string) *props.Color {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if len(hex) != 6 || err != nil {
		return colorGray
	}
	return &props.Color{Red: int(v >> 16 & 0xFF), Green: int(v >> 8 & 0xFF), Blue: int(v & 0xFF)}
}
