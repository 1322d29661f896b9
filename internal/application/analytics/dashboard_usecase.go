// Package analytics contiene el resumen del panel de inicio: KPIs y series
// derivadas del historial de pedidos entrantes y salientes.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

// Paleta colores del gráfico de pastel; se recorre cíclicamente.
var Paleta = [...]string{
	"#FF6384", "#5DADE2", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#C9CBCF", "#8B0000", "#228B22", "#00008B",
}

// DashboardUseCase arma el resumen del panel.
//
// Fuente de datos: los dos historiales de PedidoGateway (entrante y saliente).
// Salientes = ventas; entrantes = reposición.
type DashboardUseCase struct {
	pedidos   gateway.PedidoGateway
	generator DashboardPDFGenerator
	ahora     func() time.Time
}

// NewDashboardUseCase construye el caso de uso. generator puede ser nil si no se exporta a PDF.
func NewDashboardUseCase(pedidos gateway.PedidoGateway, generator DashboardPDFGenerator) *DashboardUseCase {
	return &DashboardUseCase{pedidos: pedidos, generator: generator, ahora: time.Now}
}

// GetSummary trae ambos historiales en paralelo y deriva KPIs y series.
// Si cualquiera de las dos llamadas falla no hay resumen parcial.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardDTO, error) {
	var entrantes, salientes []entity.Pedido

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entrantes, err = uc.pedidos.Historial(gctx, entity.PedidoEntrante)
		if err != nil {
			return fmt.Errorf("dashboard: pedidos entrantes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		salientes, err = uc.pedidos.Historial(gctx, entity.PedidoSaliente)
		if err != nil {
			return fmt.Errorf("dashboard: pedidos salientes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := Resumir(entrantes, salientes)
	now := uc.ahora()
	out.Generado = now
	out.Periodo = monthLabel(now)
	return out, nil
}

// DescargarPDF arma el resumen y lo entrega como reporte PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - el error del historial si no se pudo armar el resumen.
func (uc *DashboardUseCase) DescargarPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	if uc.generator == nil {
		return nil, "", errors.New("dashboard: generador PDF no configurado")
	}
	resumen, err := uc.GetSummary(ctx)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerarDashboard(ctx, resumen)
	if err != nil {
		return nil, "", fmt.Errorf("dashboard: generar pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("dashboard-%s.pdf", resumen.Generado.Format("2006-01-02")), nil
}

// Resumir calcula el resumen a partir de historiales ya obtenidos.
func Resumir(entrantes, salientes []entity.Pedido) *dto.DashboardDTO {
	// ── Acumulados por producto (id), en orden de primera aparición ─────────
	idx := map[int64]int{}
	var productos []dto.ProductoVentasDTO
	acumular := func(l entity.ProductoPedido) *dto.ProductoVentasDTO {
		i, ok := idx[l.ID]
		if !ok {
			i = len(productos)
			idx[l.ID] = i
			productos = append(productos, dto.ProductoVentasDTO{
				Nombre:    l.Nombre,
				Precio:    l.Precio,
				Beneficio: decimal.Zero,
			})
		}
		return &productos[i]
	}

	var kpis dto.KPIsDTO
	kpis.Beneficio = decimal.Zero
	for _, p := range salientes {
		for _, l := range p.Productos {
			acc := acumular(l)
			acc.Vendidas += l.Cantidad
			ingreso := l.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad)))
			acc.Beneficio = acc.Beneficio.Add(ingreso)
			kpis.UnidadesVendidas += l.Cantidad
			kpis.Beneficio = kpis.Beneficio.Add(ingreso)
		}
	}
	for _, p := range entrantes {
		for _, l := range p.Productos {
			acumular(l).Repuestas += l.Cantidad
			kpis.UnidadesRepuestas += l.Cantidad
		}
	}

	kpis.PedidosEntrantes = len(entrantes)
	kpis.PedidosSalientes = len(salientes)
	kpis.ProductoMasVendido = masVendido(productos)

	// ── Series ────────────────────────────────────────────────────────────
	out := &dto.DashboardDTO{
		KPIs:       kpis,
		Productos:  productos,
		Barras:     barras(entrantes, salientes),
		Dispersion: make([]dto.PuntoDispersionDTO, 0),
		Pastel:     make([]dto.PorcionDTO, 0),
	}
	if out.Productos == nil {
		out.Productos = make([]dto.ProductoVentasDTO, 0)
	}
	for _, p := range productos {
		if p.Vendidas == 0 {
			continue
		}
		out.Dispersion = append(out.Dispersion, dto.PuntoDispersionDTO{Nombre: p.Nombre, Precio: p.Precio, Vendidas: p.Vendidas})
		out.Pastel = append(out.Pastel, dto.PorcionDTO{
			Nombre:    p.Nombre,
			Beneficio: p.Beneficio.Round(2),
			Color:     Paleta[len(out.Pastel)%len(Paleta)],
		})
	}
	return out
}

// masVendido primer producto con el máximo de unidades vendidas; "" si no hubo ventas.
func masVendido(productos []dto.ProductoVentasDTO) string {
	nombre, mejor := "", 0
	for _, p := range productos {
		if p.Vendidas > mejor {
			nombre, mejor = p.Nombre, p.Vendidas
		}
	}
	return nombre
}

// barras agrupa por nombre: etiquetas en orden de primera aparición,
// recorriendo primero los entrantes y luego los salientes.
func barras(entrantes, salientes []entity.Pedido) dto.BarrasDTO {
	b := dto.BarrasDTO{Etiquetas: []string{}, Ventas: []int{}, Reposicion: []int{}}
	pos := map[string]int{}
	indice := func(nombre string) int {
		i, ok := pos[nombre]
		if !ok {
			i = len(b.Etiquetas)
			pos[nombre] = i
			b.Etiquetas = append(b.Etiquetas, nombre)
			b.Ventas = append(b.Ventas, 0)
			b.Reposicion = append(b.Reposicion, 0)
		}
		return i
	}
	for _, p := range entrantes {
		for _, l := range p.Productos {
			b.Reposicion[indice(l.Nombre)] += l.Cantidad
		}
	}
	for _, p := range salientes {
		for _, l := range p.Productos {
			b.Ventas[indice(l.Nombre)] += l.Cantidad
		}
	}
	return b
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
