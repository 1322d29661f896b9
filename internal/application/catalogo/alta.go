package catalogo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

// Alta formulario de alta de producto.
type Alta struct {
	productos gateway.ProductoGateway
	log       zerolog.Logger

	mu           sync.Mutex
	errorMessage string
}

// NewAlta construye el formulario.
func NewAlta(productos gateway.ProductoGateway, log zerolog.Logger) *Alta {
	return &Alta{productos: productos, log: log}
}

// ErrorMessage último error mostrado ("" tras un alta correcta).
func (a *Alta) ErrorMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errorMessage
}

// ValidarAlta comprueba los campos del formulario antes de enviarlo.
func ValidarAlta(p entity.Producto) error {
	switch {
	case strings.TrimSpace(p.Nombre) == "":
		return domain.NewValidationError(domain.MsgNombreObligatorio)
	case !p.Precio.IsPositive():
		return domain.NewValidationError(domain.MsgPrecioInvalido)
	case p.Stock <= 0:
		return domain.NewValidationError(domain.MsgStockInvalido)
	case p.Umbral <= 0:
		return domain.NewValidationError(domain.MsgUmbralInvalido)
	case p.Umbral > p.Stock:
		return domain.NewValidationError(domain.MsgUmbralSuperaStock)
	}
	return nil
}

// Agregar valida, comprueba que el nombre no exista y crea el producto.
// La comprobación de duplicados es previa y no atómica: dos altas simultáneas pueden pasarla.
func (a *Alta) Agregar(ctx context.Context, p entity.Producto) (*entity.Producto, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p.Nombre = strings.TrimSpace(p.Nombre)
	if err := ValidarAlta(p); err != nil {
		a.errorMessage = err.Error()
		return nil, err
	}

	existe, err := a.productos.ExisteNombre(ctx, p.Nombre)
	if err != nil {
		return nil, a.fallo(err, "verificar nombre")
	}
	if existe {
		a.errorMessage = domain.MsgNombreDuplicado
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicate, domain.MsgNombreDuplicado)
	}

	creado, err := a.productos.Crear(ctx, p)
	if err != nil {
		return nil, a.fallo(err, "crear producto")
	}
	a.errorMessage = ""
	a.log.Info().Int64("producto_id", creado.ID).Str("nombre", creado.Nombre).Msg("producto añadido")
	return creado, nil
}

func (a *Alta) fallo(err error, op string) error {
	a.log.Error().Err(err).Msg(op)
	if errors.Is(err, domain.ErrSinConexion) {
		a.errorMessage = domain.MsgErrorConexion
	} else {
		a.errorMessage = domain.MsgErrorAltaProducto
	}
	return fmt.Errorf("%s: %w", op, err)
}
