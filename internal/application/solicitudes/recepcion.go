package solicitudes

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

// Recepcion pantalla de solicitudes pendientes: recibe mercancía contra una solicitud.
//
// Cada recepción registra un pedido entrante y actualiza las cantidades pendientes de la
// solicitud. Las dos llamadas van en paralelo y se tratan como una unidad: si solo una
// prospera se deshace con una acción compensatoria y se revierte el descuento local.
type Recepcion struct {
	solicitudes gateway.SolicitudGateway
	pedidos     gateway.PedidoGateway
	log         zerolog.Logger

	op sync.Mutex // serializa recepciones

	mu             sync.Mutex
	lista          []entity.Solicitud
	seleccionadaID int64
	errorMessage   string
}

// NewRecepcion construye la pantalla.
func NewRecepcion(solicitudes gateway.SolicitudGateway, pedidos gateway.PedidoGateway, log zerolog.Logger) *Recepcion {
	return &Recepcion{solicitudes: solicitudes, pedidos: pedidos, log: log}
}

// Cargar trae las solicitudes, descarta las ya recibidas por completo y ordena por fecha
// descendente. La selección se mantiene si la solicitud sigue en la lista.
func (r *Recepcion) Cargar(ctx context.Context) error {
	data, err := r.solicitudes.Listar(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.log.Error().Err(err).Msg("obtener solicitudes")
		if errors.Is(err, domain.ErrSinConexion) {
			r.errorMessage = domain.MsgErrorConexion
		} else {
			r.errorMessage = domain.MsgErrorSolicitudes
		}
		return fmt.Errorf("obtener solicitudes: %w", err)
	}

	abiertas := make([]entity.Solicitud, 0, len(data))
	for _, s := range data {
		if s.Abierta() {
			s.Productos = slices.Clone(s.Productos)
			abiertas = append(abiertas, s)
		}
	}
	slices.SortStableFunc(abiertas, func(a, b entity.Solicitud) int { return b.Fecha.Compare(a.Fecha) })
	r.lista = abiertas
	if r.buscar(r.seleccionadaID) == nil {
		r.seleccionadaID = 0
	}

	r.errorMessage = ""
	if len(abiertas) == 0 {
		r.errorMessage = domain.MsgSinSolicitudes
	}
	return nil
}

// buscar puntero a la solicitud en la lista local. Requiere r.mu.
func (r *Recepcion) buscar(id int64) *entity.Solicitud {
	if id == 0 {
		return nil
	}
	for i := range r.lista {
		if r.lista[i].ID == id {
			return &r.lista[i]
		}
	}
	return nil
}

// Solicitudes copia de la lista.
func (r *Recepcion) Solicitudes() []entity.Solicitud {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Solicitud, 0, len(r.lista))
	for _, s := range r.lista {
		s.Productos = slices.Clone(s.Productos)
		out = append(out, s)
	}
	return out
}

// ErrorMessage mensaje de error o de lista vacía.
func (r *Recepcion) ErrorMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errorMessage
}

// VerDetalles selecciona la solicitud; nil si no está en la lista.
func (r *Recepcion) VerDetalles(id int64) *entity.Solicitud {
	r.mu.Lock()
	r.seleccionadaID = 0
	if r.buscar(id) != nil {
		r.seleccionadaID = id
	}
	r.mu.Unlock()
	return r.Seleccionada()
}

// CerrarDetalles quita la selección.
func (r *Recepcion) CerrarDetalles() {
	r.mu.Lock()
	r.seleccionadaID = 0
	r.mu.Unlock()
}

// Seleccionada copia de la solicitud en detalle, o nil.
func (r *Recepcion) Seleccionada() *entity.Solicitud {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.buscar(r.seleccionadaID)
	if s == nil {
		return nil
	}
	cp := *s
	cp.Productos = slices.Clone(s.Productos)
	return &cp
}

// Eliminar borra la solicitud en el backend y la quita de la lista.
func (r *Recepcion) Eliminar(ctx context.Context, id int64) error {
	if err := r.solicitudes.Eliminar(ctx, id); err != nil {
		r.log.Error().Err(err).Int64("solicitud_id", id).Msg("eliminar solicitud")
		r.mu.Lock()
		if errors.Is(err, domain.ErrSinConexion) {
			r.errorMessage = domain.MsgErrorConexion
		} else {
			r.errorMessage = domain.MsgErrorEliminarSolicitud
		}
		r.mu.Unlock()
		return fmt.Errorf("eliminar solicitud: %w", err)
	}

	r.mu.Lock()
	r.lista = slices.DeleteFunc(r.lista, func(s entity.Solicitud) bool { return s.ID == id })
	if r.seleccionadaID == id {
		r.seleccionadaID = 0
	}
	if len(r.lista) == 0 {
		r.errorMessage = domain.MsgSinSolicitudes
	}
	r.mu.Unlock()
	return nil
}

// AbrirRecepcion pregunta cuántas unidades se reciben del producto de la solicitud seleccionada
// (sugerencia "1") y, si el valor es válido, confirma la recepción. Recibir todo lo pendiente
// muestra el aviso de cierre del producto y, si la solicitud queda sin pendientes, cierra el detalle.
// Devuelve true si la recepción se registró.
func (r *Recepcion) AbrirRecepcion(ctx context.Context, dlg ports.Dialogos, productoID int64) (bool, error) {
	r.mu.Lock()
	sel := r.buscar(r.seleccionadaID)
	var linea entity.ProductoSolicitud
	if sel != nil {
		if l := sel.Linea(productoID); l != nil {
			linea = *l
		} else {
			sel = nil
		}
	}
	r.mu.Unlock()

	if sel == nil {
		dlg.Alertar(domain.MsgSolicitudNoEncontrada)
		return false, fmt.Errorf("%w: producto %d en la solicitud seleccionada", domain.ErrNotFound, productoID)
	}

	valor, ok := dlg.Solicitar(fmt.Sprintf(domain.MsgPromptRecepcion, linea.Nombre), "1")
	if !ok {
		return false, nil
	}

	unidades, valido := parseUnidades(valor)
	if !valido || unidades <= 0 || unidades > linea.Pendiente {
		dlg.Alertar(domain.MsgRecepcionInvalida)
		return false, domain.NewValidationError(domain.MsgRecepcionInvalida)
	}

	if err := r.ConfirmarRecepcion(ctx, dlg, productoID, unidades); err != nil {
		return false, err
	}
	if unidades == linea.Pendiente {
		dlg.Alertar(fmt.Sprintf(domain.MsgProductoCompletado, linea.Nombre))
	}
	return true, nil
}

// parseUnidades interpreta el texto como un entero; vacío o con decimales no es válido.
func parseUnidades(s string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// ConfirmarRecepcion registra la recepción de unidades del producto en la solicitud seleccionada.
func (r *Recepcion) ConfirmarRecepcion(ctx context.Context, dlg ports.Dialogos, productoID int64, unidades int) error {
	r.op.Lock()
	defer r.op.Unlock()

	r.mu.Lock()
	sel := r.buscar(r.seleccionadaID)
	if sel == nil {
		r.mu.Unlock()
		dlg.Alertar(domain.MsgSolicitudNoEncontrada)
		return fmt.Errorf("%w: no hay solicitud seleccionada", domain.ErrNotFound)
	}
	linea := sel.Linea(productoID)
	if linea == nil || unidades <= 0 || unidades > linea.Pendiente {
		r.mu.Unlock()
		dlg.Alertar(domain.MsgCantidadInvalida)
		return domain.NewValidationError(domain.MsgCantidadInvalida)
	}

	solicitudID := sel.ID
	previas := sel.Pendientes()
	linea.Pendiente -= unidades
	nuevas := sel.Pendientes()
	cerrada := !sel.Abierta()
	r.mu.Unlock()

	var (
		g        errgroup.Group
		pedido   *entity.Pedido
		errPed   error
		errSolic error
	)
	g.Go(func() error {
		pedido, errPed = r.pedidos.Registrar(ctx, gateway.NuevoPedido{
			Productos: []entity.LineaPedido{{ID: productoID, Cantidad: unidades}},
			Tipo:      entity.PedidoEntrante,
		})
		return errPed
	})
	g.Go(func() error {
		_, errSolic = r.solicitudes.Actualizar(ctx, solicitudID, nuevas)
		return errSolic
	})

	if err := g.Wait(); err != nil {
		r.compensar(context.WithoutCancel(ctx), solicitudID, previas, pedido, errPed, errSolic)
		r.revertir(solicitudID, productoID, unidades)
		r.log.Error().
			AnErr("pedido", errPed).
			AnErr("solicitud", errSolic).
			Int64("solicitud_id", solicitudID).
			Int64("producto_id", productoID).
			Int("unidades", unidades).
			Msg("recepción fallida")
		dlg.Alertar(domain.MsgErrorRecepcion)
		return fmt.Errorf("recepción: %w", errors.Join(errPed, errSolic))
	}

	r.log.Info().
		Int64("solicitud_id", solicitudID).
		Int64("producto_id", productoID).
		Int("unidades", unidades).
		Int64("pedido_id", pedido.ID).
		Msg("recepción registrada")

	if cerrada {
		r.CerrarDetalles()
	}
	if err := r.Cargar(ctx); err != nil {
		r.log.Warn().Err(err).Msg("recargar solicitudes tras la recepción")
	}
	return nil
}

// compensar deshace la mitad que sí llegó al backend.
func (r *Recepcion) compensar(ctx context.Context, solicitudID int64, previas []entity.LineaPedido, pedido *entity.Pedido, errPed, errSolic error) {
	if errPed == nil && pedido != nil {
		if err := r.pedidos.Eliminar(ctx, pedido.ID); err != nil {
			r.log.Error().Err(err).Int64("pedido_id", pedido.ID).Msg("compensación: eliminar pedido entrante")
		}
	}
	if errSolic == nil {
		if _, err := r.solicitudes.Actualizar(ctx, solicitudID, previas); err != nil {
			r.log.Error().Err(err).Int64("solicitud_id", solicitudID).Msg("compensación: restaurar pendientes")
		}
	}
}

func (r *Recepcion) revertir(solicitudID, productoID int64, unidades int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s := r.buscar(solicitudID); s != nil {
		if l := s.Linea(productoID); l != nil {
			l.Pendiente += unidades
		}
	}
}
