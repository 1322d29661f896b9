package gateway

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// ProductoGateway define el puerto hacia la colección /api/productos del backend.
type ProductoGateway interface {
	Listar(ctx context.Context) ([]entity.Producto, error)
	Crear(ctx context.Context, p entity.Producto) (*entity.Producto, error)
	Actualizar(ctx context.Context, p entity.Producto) (*entity.Producto, error)
	Eliminar(ctx context.Context, id int64) error
	// ExisteNombre consulta /verificar-nombre. La comprobación no es atómica con Crear.
	ExisteNombre(ctx context.Context, nombre string) (bool, error)
}
