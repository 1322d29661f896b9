package pedidos

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

// Historial historial de pedidos de un tipo, más reciente primero.
type Historial struct {
	pedidos gateway.PedidoGateway
	red     ports.Conectividad
	nav     ports.Navegador
	tipo    entity.TipoPedido
	log     zerolog.Logger

	mu            sync.Mutex
	originales    []entity.Pedido
	visibles      []entity.Pedido
	seleccionado  *entity.Pedido
	errorMessage  string
	errorBusqueda string
}

// NewHistorial construye el historial. tipo vacío muestra todos los pedidos.
func NewHistorial(pedidos gateway.PedidoGateway, red ports.Conectividad, nav ports.Navegador, tipo entity.TipoPedido, log zerolog.Logger) *Historial {
	return &Historial{pedidos: pedidos, red: red, nav: nav, tipo: tipo, log: log}
}

// Cargar trae el historial y lo ordena por fecha descendente.
func (h *Historial) Cargar(ctx context.Context) error {
	data, err := h.pedidos.Historial(ctx, h.tipo)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.log.Error().Err(err).Str("tipo", string(h.tipo)).Msg("obtener historial")
		if errors.Is(err, domain.ErrSinConexion) {
			h.errorMessage = domain.MsgErrorConexion
		} else {
			h.errorMessage = domain.MsgErrorHistorial
		}
		return fmt.Errorf("obtener historial: %w", err)
	}

	data = slices.Clone(data)
	slices.SortStableFunc(data, func(a, b entity.Pedido) int { return b.Fecha.Compare(a.Fecha) })
	h.originales = data
	h.visibles = slices.Clone(data)
	h.errorMessage = ""
	if len(data) == 0 {
		h.errorMessage = domain.MsgSinPedidos
	}
	return nil
}

// FiltrarPorID muestra los pedidos cuyo número contiene q. Solo se admiten dígitos;
// una consulta inválida restaura la lista completa y deja el aviso en ErrorBusqueda.
func (h *Historial) FiltrarPorID(q string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !soloDigitos(q) {
		h.errorBusqueda = domain.MsgBusquedaPedidoInvalida
		h.visibles = slices.Clone(h.originales)
		return
	}
	h.errorBusqueda = ""

	q = strings.TrimSpace(q)
	if q == "" {
		h.visibles = slices.Clone(h.originales)
	} else {
		h.visibles = make([]entity.Pedido, 0)
		for _, p := range h.originales {
			if strings.Contains(strconv.FormatInt(p.ID, 10), q) {
				h.visibles = append(h.visibles, p)
			}
		}
	}

	h.errorMessage = ""
	if len(h.visibles) == 0 {
		h.errorMessage = domain.MsgSinPedidos
	}
}

func soloDigitos(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Pedidos pedidos visibles.
func (h *Historial) Pedidos() []entity.Pedido {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.visibles)
}

// ErrorMessage mensaje de error o de lista vacía.
func (h *Historial) ErrorMessage() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errorMessage
}

// ErrorBusqueda aviso de búsqueda inválida.
func (h *Historial) ErrorBusqueda() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errorBusqueda
}

// VerDetalles selecciona un pedido visible; nil si no está.
func (h *Historial) VerDetalles(id int64) *entity.Pedido {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seleccionado = nil
	if i := slices.IndexFunc(h.visibles, func(p entity.Pedido) bool { return p.ID == id }); i >= 0 {
		p := h.visibles[i]
		h.seleccionado = &p
	}
	return copiaPedido(h.seleccionado)
}

// CerrarDetalles quita la selección.
func (h *Historial) CerrarDetalles() {
	h.mu.Lock()
	h.seleccionado = nil
	h.mu.Unlock()
}

// Seleccionado pedido en detalle, o nil.
func (h *Historial) Seleccionado() *entity.Pedido {
	h.mu.Lock()
	defer h.mu.Unlock()
	return copiaPedido(h.seleccionado)
}

// copiaPedido copia con sus líneas, para no exponer el estado interno.
func copiaPedido(p *entity.Pedido) *entity.Pedido {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Productos = slices.Clone(p.Productos)
	return &cp
}

// Editar navega a la pantalla de edición del pedido.
func (h *Historial) Editar(id int64) string {
	tipo := h.tipo
	h.mu.Lock()
	if i := slices.IndexFunc(h.originales, func(p entity.Pedido) bool { return p.ID == id }); i >= 0 && h.originales[i].Tipo.Valido() {
		tipo = h.originales[i].Tipo
	}
	h.mu.Unlock()

	ruta := RutaEdicion(tipo, id)
	if h.nav != nil {
		h.nav.Navegar(ruta)
	}
	return ruta
}

// Eliminar borra un pedido previa confirmación. Sin conexión no se intenta.
// Si el usuario lo pide, antes se devuelve al inventario el stock del pedido.
// Devuelve false si el usuario canceló.
func (h *Historial) Eliminar(ctx context.Context, dlg ports.Dialogos, id int64) (bool, error) {
	if !dlg.Confirmar(domain.MsgConfirmarEliminarPed) {
		return false, nil
	}
	if h.red != nil && !h.red.EnLinea() {
		h.setError(domain.MsgEliminarSinConexion)
		return true, domain.ErrSinConexion
	}

	if dlg.Confirmar(domain.MsgConfirmarDevolverStock) {
		if err := h.pedidos.DevolverStock(ctx, id); err != nil {
			h.log.Error().Err(err).Int64("pedido_id", id).Msg("devolver stock")
			h.setError(domain.MsgErrorEliminarPedido + motivo(err))
			return true, fmt.Errorf("devolver stock: %w", err)
		}
	}

	if err := h.pedidos.Eliminar(ctx, id); err != nil {
		h.log.Error().Err(err).Int64("pedido_id", id).Msg("eliminar pedido")
		h.setError(domain.MsgErrorEliminarPedido + motivo(err))
		return true, fmt.Errorf("eliminar pedido: %w", err)
	}

	h.mu.Lock()
	quitar := func(p entity.Pedido) bool { return p.ID == id }
	h.originales = slices.DeleteFunc(h.originales, quitar)
	h.visibles = slices.DeleteFunc(h.visibles, quitar)
	if h.seleccionado != nil && h.seleccionado.ID == id {
		h.seleccionado = nil
	}
	h.errorMessage = ""
	h.mu.Unlock()
	h.log.Info().Int64("pedido_id", id).Msg("pedido eliminado")
	return true, nil
}

func (h *Historial) setError(msg string) {
	h.mu.Lock()
	h.errorMessage = msg
	h.mu.Unlock()
}

func motivo(err error) string {
	if msg := domain.MensajeServidor(err); msg != "" {
		return msg
	}
	return domain.MsgErrorDesconocido
}
