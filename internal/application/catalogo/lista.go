package catalogo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/application/solicitudes"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

// Orden campo de ordenación de la lista.
type Orden string

const (
	SinOrden    Orden = ""
	OrdenNombre Orden = "nombre"
	OrdenStock  Orden = "stock"
)

// Vista lo que la lista muestra en este momento.
type Vista struct {
	Productos []entity.Producto
	Filtro    Filtro
	Orden     Orden
	Asc       bool
	Consulta  string
	Mensaje   string // "No se encontraron productos." cuando la búsqueda no encuentra nada
}

// Lista catálogo de productos con filtro, búsqueda, orden y edición en línea.
type Lista struct {
	productos gateway.ProductoGateway
	reab      *solicitudes.Reabastecimiento
	factor    decimal.Decimal
	log       zerolog.Logger

	mu           sync.Mutex
	todos        []entity.Producto
	filtro       Filtro
	consulta     string
	orden        Orden
	asc          bool
	errorMessage string
}

// NewLista construye la lista. factor define la banda "cerca del umbral"; reab puede ser nil.
func NewLista(
	productos gateway.ProductoGateway,
	reab *solicitudes.Reabastecimiento,
	factor decimal.Decimal,
	log zerolog.Logger,
) *Lista {
	return &Lista{productos: productos, reab: reab, factor: factor, log: log}
}

// Cargar trae el catálogo del backend. Filtro, búsqueda y orden se conservan.
func (l *Lista) Cargar(ctx context.Context) error {
	prods, err := l.productos.Listar(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.log.Error().Err(err).Msg("listar productos")
		if errors.Is(err, domain.ErrSinConexion) {
			l.errorMessage = domain.MsgErrorConexion
		} else {
			l.errorMessage = domain.MsgErrorProductos
		}
		return fmt.Errorf("listar productos: %w", err)
	}
	l.todos = prods
	l.errorMessage = ""
	return nil
}

// ErrorMessage último error de carga o guardado.
func (l *Lista) ErrorMessage() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errorMessage
}

// Buscar fija la consulta de texto libre.
func (l *Lista) Buscar(consulta string) {
	l.mu.Lock()
	l.consulta = consulta
	l.mu.Unlock()
}

// AlternarFiltro activa f; si ya estaba activo lo quita.
func (l *Lista) AlternarFiltro(f Filtro) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.filtro == f {
		l.filtro = SinFiltro
		return
	}
	l.filtro = f
}

// OrdenarPorNombre alterna entre ascendente y descendente por nombre.
func (l *Lista) OrdenarPorNombre() { l.alternarOrden(OrdenNombre) }

// OrdenarPorStock alterna entre ascendente y descendente por stock.
func (l *Lista) OrdenarPorStock() { l.alternarOrden(OrdenStock) }

func (l *Lista) alternarOrden(o Orden) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.orden == o {
		l.asc = !l.asc
		return
	}
	l.orden, l.asc = o, true
}

// Ordenar fija campo y dirección sin alternar.
func (l *Lista) Ordenar(o Orden, asc bool) {
	l.mu.Lock()
	l.orden, l.asc = o, asc
	l.mu.Unlock()
}

// Vista aplica filtro de umbral, búsqueda y orden sobre el catálogo cargado.
func (l *Lista) Vista() Vista {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := FiltrarUmbral(l.todos, l.filtro, l.factor)
	out = Buscar(out, l.consulta)
	switch l.orden {
	case OrdenNombre:
		out = OrdenarPorNombre(out, l.asc)
	case OrdenStock:
		out = OrdenarPorStock(out, l.asc)
	}

	v := Vista{Productos: out, Filtro: l.filtro, Orden: l.orden, Asc: l.asc, Consulta: l.consulta}
	if len(out) == 0 && strings.TrimSpace(l.consulta) != "" {
		v.Mensaje = domain.MsgSinProductos
	}
	return v
}

// Eliminar borra el producto y recarga la lista.
func (l *Lista) Eliminar(ctx context.Context, id int64) error {
	if err := l.productos.Eliminar(ctx, id); err != nil {
		l.log.Error().Err(err).Int64("producto_id", id).Msg("eliminar producto")
		l.mu.Lock()
		if errors.Is(err, domain.ErrSinConexion) {
			l.errorMessage = domain.MsgErrorConexion
		} else {
			l.errorMessage = domain.MsgErrorEliminarProd
		}
		l.mu.Unlock()
		return fmt.Errorf("eliminar producto: %w", err)
	}
	l.log.Info().Int64("producto_id", id).Msg("producto eliminado")
	return l.Cargar(ctx)
}

// ValidarEdicion comprueba precio, stock y umbral de una edición en línea.
// A diferencia del alta, no exige umbral <= stock.
func ValidarEdicion(p entity.Producto) error {
	switch {
	case !p.Precio.IsPositive():
		return domain.NewValidationError(domain.MsgPrecioInvalido)
	case p.Stock < 0:
		return domain.NewValidationError(domain.MsgStockNegativo)
	case p.Umbral <= 0:
		return domain.NewValidationError(domain.MsgUmbralInvalido)
	}
	return nil
}

// GuardarProducto persiste una edición en línea y actualiza la copia local. Si el producto
// queda bajo umbral y reponer es true, propone una solicitud de reposición.
func (l *Lista) GuardarProducto(ctx context.Context, dlg ports.Dialogos, p entity.Producto, reponer bool) (*entity.Producto, *entity.Solicitud, error) {
	if err := ValidarEdicion(p); err != nil {
		l.mu.Lock()
		l.errorMessage = err.Error()
		l.mu.Unlock()
		return nil, nil, err
	}

	guardado, err := l.productos.Actualizar(ctx, p)
	if err != nil {
		l.log.Error().Err(err).Int64("producto_id", p.ID).Msg("actualizar producto")
		l.mu.Lock()
		if errors.Is(err, domain.ErrSinConexion) {
			l.errorMessage = domain.MsgErrorConexion
		} else {
			l.errorMessage = domain.MsgErrorGuardar
		}
		l.mu.Unlock()
		return nil, nil, fmt.Errorf("actualizar producto: %w", err)
	}

	l.mu.Lock()
	if i := slices.IndexFunc(l.todos, func(x entity.Producto) bool { return x.ID == guardado.ID }); i >= 0 {
		l.todos[i] = *guardado
	} else {
		l.todos = append(l.todos, *guardado)
	}
	l.errorMessage = ""
	l.mu.Unlock()

	if !reponer || l.reab == nil || !guardado.BajoUmbral() {
		return guardado, nil, nil
	}
	// El fallo al crear la solicitud ya se avisó; el producto sí quedó guardado.
	sol, _ := l.reab.Proponer(ctx, dlg, []entity.Producto{*guardado})
	return guardado, sol, nil
}
