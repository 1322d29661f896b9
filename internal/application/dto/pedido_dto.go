package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// LineaPedidoResponse línea de un pedido persistido.
type LineaPedidoResponse struct {
	ProductoID int64           `json:"productoId"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad"`
}

// PedidoResponse pedido del historial.
type PedidoResponse struct {
	ID          int64                 `json:"id"`
	Fecha       time.Time             `json:"fecha"`
	Tipo        entity.TipoPedido     `json:"tipo"`
	PrecioTotal decimal.Decimal       `json:"precioTotal"`
	Lineas      []LineaPedidoResponse `json:"lineas"`
}

// NewPedidoResponse mapea la entidad.
func NewPedidoResponse(p entity.Pedido) PedidoResponse {
	lineas := make([]LineaPedidoResponse, 0, len(p.Productos))
	for _, l := range p.Productos {
		lineas = append(lineas, LineaPedidoResponse{ProductoID: l.ID, Nombre: l.Nombre, Precio: l.Precio, Cantidad: l.Cantidad})
	}
	return PedidoResponse{ID: p.ID, Fecha: p.Fecha, Tipo: p.Tipo, PrecioTotal: p.PrecioTotal, Lineas: lineas}
}

// HistorialResponse página del historial de pedidos.
type HistorialResponse struct {
	Items   []PedidoResponse `json:"items"`
	Page    PageResponse     `json:"page"`
	Mensaje string           `json:"mensaje,omitempty"`
}

// AbrirBorradorRequest body para POST /api/borradores. PedidoID activa el modo edición.
type AbrirBorradorRequest struct {
	Tipo     entity.TipoPedido `json:"tipo"`
	PedidoID int64             `json:"pedidoId,omitempty"`
}

// AgregarLineaRequest body para POST /api/borradores/:id/lineas.
type AgregarLineaRequest struct {
	ProductoID int64 `json:"productoId"`
}

// CantidadRequest body para PUT /api/borradores/:id/lineas/:productoId.
// Cantidad es el texto introducido; se interpreta como número como lo haría un campo de formulario.
type CantidadRequest struct {
	Cantidad  string `json:"cantidad"`
	Confirmar bool   `json:"confirmar"`
}

// RegistrarBorradorRequest body para POST /api/borradores/:id/registrar.
type RegistrarBorradorRequest struct {
	Reponer bool `json:"reponer"`
}

// LineaBorradorResponse línea en composición.
type LineaBorradorResponse struct {
	ProductoID int64           `json:"productoId"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Stock      int             `json:"stock"`
	Cantidad   int             `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// BorradorResponse estado de un pedido en composición.
type BorradorResponse struct {
	ID           string                  `json:"id"`
	Tipo         entity.TipoPedido       `json:"tipo"`
	PedidoID     int64                   `json:"pedidoId,omitempty"`
	Lineas       []LineaBorradorResponse `json:"lineas"`
	Total        decimal.Decimal         `json:"total"`
	Pendiente    bool                    `json:"pendiente"` // hay un envío esperando reconexión
	ErrorMessage string                  `json:"errorMessage,omitempty"`
	Avisos       []string                `json:"avisos"`
	Redirigir    string                  `json:"redirigir,omitempty"`
	Pedido       *PedidoResponse         `json:"pedido,omitempty"`
	Solicitud    *SolicitudResponse      `json:"solicitud,omitempty"`
}
