package gateway

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// NuevoPedido cuerpo de POST /api/pedidos.
type NuevoPedido struct {
	Productos []entity.LineaPedido `json:"productos"`
	Tipo      entity.TipoPedido    `json:"tipo,omitempty"`
}

// CambiosPedido cuerpo de PUT /api/pedidos/:id.
type CambiosPedido struct {
	Fecha     time.Time            `json:"fecha"`
	Productos []entity.LineaPedido `json:"productos"`
	Tipo      entity.TipoPedido    `json:"tipo"`
}

// PedidoGateway define el puerto hacia la colección /api/pedidos del backend.
type PedidoGateway interface {
	// Historial lista pedidos; tipo vacío devuelve todos.
	Historial(ctx context.Context, tipo entity.TipoPedido) ([]entity.Pedido, error)
	ObtenerPorID(ctx context.Context, id int64) (*entity.Pedido, error)
	Registrar(ctx context.Context, in NuevoPedido) (*entity.Pedido, error)
	Actualizar(ctx context.Context, id int64, in CambiosPedido) (*entity.Pedido, error)
	Eliminar(ctx context.Context, id int64) error
	DevolverStock(ctx context.Context, id int64) error
}
