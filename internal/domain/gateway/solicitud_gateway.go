package gateway

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// SolicitudGateway define el puerto hacia la colección /api/solicitudes del backend.
// Actualizar recibe las cantidades pendientes completas de la solicitud.
type SolicitudGateway interface {
	Listar(ctx context.Context) ([]entity.Solicitud, error)
	Crear(ctx context.Context, lineas []entity.LineaPedido) (*entity.Solicitud, error)
	Actualizar(ctx context.Context, id int64, lineas []entity.LineaPedido) (*entity.Solicitud, error)
	Eliminar(ctx context.Context, id int64) error
}
