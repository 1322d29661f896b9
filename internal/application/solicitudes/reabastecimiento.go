package solicitudes

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

// Reabastecimiento detecta productos bajo umbral y, previa confirmación, crea la solicitud de reposición.
type Reabastecimiento struct {
	solicitudes gateway.SolicitudGateway
	productos   gateway.ProductoGateway
	factor      decimal.Decimal
	log         zerolog.Logger
}

// NewReabastecimiento construye el detector. factor es el multiplicador de stock ideal sobre el umbral.
func NewReabastecimiento(
	solicitudes gateway.SolicitudGateway,
	productos gateway.ProductoGateway,
	factor decimal.Decimal,
	log zerolog.Logger,
) *Reabastecimiento {
	return &Reabastecimiento{
		solicitudes: solicitudes,
		productos:   productos,
		factor:      factor,
		log:         log,
	}
}

// StockIdeal ceil(umbral × factor).
func (r *Reabastecimiento) StockIdeal(p entity.Producto) int {
	return int(decimal.NewFromInt(int64(p.Umbral)).Mul(r.factor).Ceil().IntPart())
}

// CantidadSugerida unidades a pedir para llegar al stock ideal; nunca menos de 1.
func (r *Reabastecimiento) CantidadSugerida(p entity.Producto) int {
	n := r.StockIdeal(p) - p.Stock
	if n < 1 {
		return 1
	}
	return n
}

// Proponer pregunta por cada candidato bajo umbral y agrupa los confirmados en una sola solicitud.
// Devuelve nil sin error si no hay nada que pedir.
func (r *Reabastecimiento) Proponer(ctx context.Context, dlg ports.Dialogos, candidatos []entity.Producto) (*entity.Solicitud, error) {
	lineas := make([]entity.LineaPedido, 0, len(candidatos))
	for _, p := range candidatos {
		if !p.BajoUmbral() {
			continue
		}
		if !dlg.Confirmar(fmt.Sprintf(domain.MsgConfirmarReposicion, p.Nombre, p.Stock, p.Umbral)) {
			continue
		}
		lineas = append(lineas, entity.LineaPedido{ID: p.ID, Cantidad: r.CantidadSugerida(p)})
	}
	if len(lineas) == 0 {
		return nil, nil
	}

	sol, err := r.solicitudes.Crear(ctx, lineas)
	if err != nil {
		r.log.Error().Err(err).Int("lineas", len(lineas)).Msg("crear solicitud de reposición")
		dlg.Alertar(domain.MsgErrorCrearSolicitud)
		return nil, fmt.Errorf("crear solicitud: %w", err)
	}
	dlg.Alertar(fmt.Sprintf(domain.MsgSolicitudCreada, len(lineas)))
	return sol, nil
}

// Sugerencias lista los productos bajo umbral con la cantidad sugerida,
// priorizando el mayor déficit relativo al umbral.
func (r *Reabastecimiento) Sugerencias(ctx context.Context) ([]dto.SugerenciaReposicion, error) {
	productos, err := r.productos.Listar(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SugerenciaReposicion, 0)
	for _, p := range productos {
		if p.Umbral <= 0 || !p.BajoUmbral() {
			continue
		}
		cantidad := r.CantidadSugerida(p)
		out = append(out, dto.SugerenciaReposicion{
			ProductoID:       p.ID,
			Nombre:           p.Nombre,
			Stock:            p.Stock,
			Umbral:           p.Umbral,
			StockIdeal:       r.StockIdeal(p),
			CantidadSugerida: cantidad,
			CostoEstimado:    p.Precio.Mul(decimal.NewFromInt(int64(cantidad))),
		})
	}

	// Mayor déficit relativo primero; empate: mayor déficit absoluto.
	slices.SortStableFunc(out, func(a, b dto.SugerenciaReposicion) int {
		ra := decimal.NewFromInt(int64(a.Umbral - a.Stock)).Div(decimal.NewFromInt(int64(a.Umbral)))
		rb := decimal.NewFromInt(int64(b.Umbral - b.Stock)).Div(decimal.NewFromInt(int64(b.Umbral)))
		if c := rb.Cmp(ra); c != 0 {
			return c
		}
		return (b.Umbral - b.Stock) - (a.Umbral - a.Stock)
	})
	for i := range out {
		out[i].Prioridad = i + 1
	}
	return out, nil
}
