package pedidos_test

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/internal/application/pedidos"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/application/solicitudes"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway/mocks"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/api"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/conexion"
)

var (
	gafasSol = entity.Producto{ID: 1, Nombre: "Gafas de Sol", Precio: decimal.RequireFromString("50.5"), Stock: 5, Umbral: 2}
	lentes   = entity.Producto{ID: 2, Nombre: "Lentes", Precio: decimal.NewFromInt(20), Stock: 10, Umbral: 8}
)

type entorno struct {
	pedidos   *mocks.MockPedidoGateway
	productos *mocks.MockProductoGateway
	sols      *mocks.MockSolicitudGateway
	red       *conexion.Monitor
	nav       *ports.Destino
}

func nuevoEntorno() *entorno {
	return &entorno{
		pedidos:   new(mocks.MockPedidoGateway),
		productos: new(mocks.MockProductoGateway),
		sols:      new(mocks.MockSolicitudGateway),
		red:       conexion.NewMonitor(nil, 0, zerolog.Nop()),
		nav:       &ports.Destino{},
	}
}

func (e *entorno) composicion(t *testing.T, tipo entity.TipoPedido) *pedidos.Composicion {
	t.Helper()
	reab := solicitudes.NewReabastecimiento(e.sols, e.productos, decimal.RequireFromString("1.5"), zerolog.Nop())
	c, err := pedidos.NewComposicion(pedidos.ComposicionDeps{
		Pedidos:          e.pedidos,
		Productos:        e.productos,
		Reabastecimiento: reab,
		Red:              e.red,
		Navegador:        e.nav,
		Log:              zerolog.Nop(),
	}, tipo)
	require.NoError(t, err)
	t.Cleanup(c.Cerrar)
	return c
}

func TestNewComposicion_TipoInvalido(t *testing.T) {
	_, err := pedidos.NewComposicion(pedidos.ComposicionDeps{}, "devolucion")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComposicion_AgregarYTotal(t *testing.T) {
	c := nuevoEntorno().composicion(t, entity.PedidoSaliente)

	c.AgregarProducto(gafasSol)
	c.AgregarProducto(lentes)
	c.AgregarProducto(gafasSol)

	lineas := c.Lineas()
	require.Len(t, lineas, 2)
	assert.Equal(t, 2, lineas[0].Cantidad)
	assert.Equal(t, 1, lineas[1].Cantidad)
	assert.True(t, c.CalcularTotal().Equal(decimal.RequireFromString("121")), "2×50.5 + 20")
	assert.True(t, c.CalcularTotal().Equal(c.CalcularTotal()))
}

func TestComposicion_ActualizarProducto(t *testing.T) {
	tests := []struct {
		name      string
		cantidad  float64
		confirmar bool
		want      int // -1: línea quitada
		avisos    []string
	}{
		{"no numérica", math.NaN(), false, 1, []string{domain.MsgCantidadNoNumero}},
		{"decimal se trunca", 2.7, false, 2, []string{domain.MsgCantidadNoEntera}},
		{"decimal bajo 1 pregunta", 0.5, true, -1, []string{domain.MsgCantidadNoEntera}},
		{"cero y confirma quitar", 0, true, -1, nil},
		{"negativa y no confirma", -3, false, 1, nil},
		{"igual al stock", 5, false, 5, nil},
		{"uno más que el stock", 6, false, 5, []string{domain.MsgCantidadSuperaStock}},
		{"enorme se ajusta al stock", 1e20, false, 5, []string{domain.MsgCantidadSuperaStock}},
		{"enorme negativa no confirma", -1e20, false, 1, nil},
		{"válida", 3, false, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := nuevoEntorno().composicion(t, entity.PedidoSaliente)
			c.AgregarProducto(gafasSol)
			g := ports.NewGuion(tt.confirmar)

			c.ActualizarProducto(g, gafasSol.ID, tt.cantidad)

			lineas := c.Lineas()
			if tt.want < 0 {
				assert.Empty(t, lineas)
			} else {
				require.Len(t, lineas, 1)
				assert.Equal(t, tt.want, lineas[0].Cantidad)
			}
			if tt.avisos == nil {
				assert.Empty(t, g.Avisos())
			} else {
				assert.Equal(t, tt.avisos, g.Avisos())
			}
		})
	}
}

func TestComposicion_QuitarYVaciar(t *testing.T) {
	c := nuevoEntorno().composicion(t, entity.PedidoEntrante)
	c.AgregarProducto(gafasSol)
	c.AgregarProducto(lentes)

	assert.False(t, c.QuitarProductoConfirmado(ports.NewGuion(false), gafasSol.ID))
	assert.Len(t, c.Lineas(), 2)
	c.QuitarProducto(gafasSol.ID)
	assert.Len(t, c.Lineas(), 1)

	g := ports.NewGuion(true)
	assert.True(t, c.EliminarTodos(g))
	assert.Empty(t, c.Lineas())
	assert.Equal(t, []string{domain.MsgConfirmarVaciar}, g.Preguntas())
}

func TestComposicion_RegistrarEntrante(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("Registrar", mock.Anything, gateway.NuevoPedido{
		Productos: []entity.LineaPedido{{ID: 2, Cantidad: 1}},
		Tipo:      entity.PedidoEntrante,
	}).Return(&entity.Pedido{ID: 30, Tipo: entity.PedidoEntrante}, nil).Once()
	c := e.composicion(t, entity.PedidoEntrante)
	c.AgregarProducto(lentes)

	g := ports.NewGuion()
	res, err := c.Registrar(context.Background(), g, true)
	require.NoError(t, err)
	assert.Equal(t, int64(30), res.Pedido.ID)
	assert.Empty(t, c.Lineas())
	assert.Empty(t, c.ErrorMessage())
	assert.Equal(t, []string{domain.MsgPedidoRegistrado}, g.Avisos())
	e.productos.AssertNotCalled(t, "Listar", mock.Anything)
	e.pedidos.AssertExpectations(t)
}

func TestComposicion_RegistrarVacio(t *testing.T) {
	e := nuevoEntorno()
	c := e.composicion(t, entity.PedidoSaliente)

	_, err := c.Registrar(context.Background(), ports.NewGuion(), false)
	assert.ErrorIs(t, err, domain.ErrPedidoVacio)
	e.pedidos.AssertNotCalled(t, "Registrar", mock.Anything, mock.Anything)
}

func TestComposicion_FalloConservaLineas(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("Registrar", mock.Anything, mock.Anything).
		Return(nil, &api.Error{Status: 400, Mensaje: "Stock insuficiente para Gafas de Sol"}).Once()
	e.pedidos.On("Registrar", mock.Anything, mock.Anything).
		Return(nil, &api.Error{Status: 500}).Once()
	c := e.composicion(t, entity.PedidoSaliente)
	c.AgregarProducto(gafasSol)

	g := ports.NewGuion()
	_, err := c.Registrar(context.Background(), g, false)
	require.Error(t, err)
	assert.Equal(t, "Stock insuficiente para Gafas de Sol", c.ErrorMessage())
	assert.Len(t, c.Lineas(), 1)

	_, err = c.Registrar(context.Background(), g, false)
	require.Error(t, err)
	assert.Equal(t, domain.MsgErrorRegistrarPedido, c.ErrorMessage())
	assert.Len(t, c.Lineas(), 1)
	assert.Equal(t, []string{"Stock insuficiente para Gafas de Sol", domain.MsgErrorRegistrarPedido}, g.Avisos())
}

func TestComposicion_SinConexionReintentaUnaVez(t *testing.T) {
	e := nuevoEntorno()
	esperado := gateway.NuevoPedido{
		Productos: []entity.LineaPedido{{ID: 1, Cantidad: 1}},
		Tipo:      entity.PedidoSaliente,
	}
	c := e.composicion(t, entity.PedidoSaliente)
	c.AgregarProducto(gafasSol)

	e.red.Notificar(false)
	_, err := c.Registrar(context.Background(), ports.NewGuion(), false)
	assert.ErrorIs(t, err, domain.ErrSinConexion)
	assert.Equal(t, domain.MsgErrorConexion, c.ErrorMessage())
	assert.True(t, c.Pendiente())
	e.pedidos.AssertNotCalled(t, "Registrar", mock.Anything, mock.Anything)

	e.pedidos.On("Registrar", mock.Anything, esperado).Return(&entity.Pedido{ID: 8}, nil).Once()
	e.red.Notificar(true)

	e.pedidos.AssertNumberOfCalls(t, "Registrar", 1)
	assert.False(t, c.Pendiente())
	assert.Empty(t, c.ErrorMessage())
	assert.Empty(t, c.Lineas())

	e.red.Notificar(false)
	e.red.Notificar(true)
	e.pedidos.AssertNumberOfCalls(t, "Registrar", 1)
}

func TestComposicion_ReintentoConservaLineasNuevas(t *testing.T) {
	e := nuevoEntorno()
	esperado := gateway.NuevoPedido{
		Productos: []entity.LineaPedido{{ID: gafasSol.ID, Cantidad: 1}},
		Tipo:      entity.PedidoSaliente,
	}
	c := e.composicion(t, entity.PedidoSaliente)
	c.AgregarProducto(gafasSol)

	e.red.Notificar(false)
	_, err := c.Registrar(context.Background(), ports.NewGuion(), false)
	require.ErrorIs(t, err, domain.ErrSinConexion)

	c.AgregarProducto(lentes)

	e.pedidos.On("Registrar", mock.Anything, esperado).Return(&entity.Pedido{ID: 10}, nil).Once()
	e.red.Notificar(true)

	e.pedidos.AssertExpectations(t)
	assert.False(t, c.Pendiente())
	lineas := c.Lineas()
	require.Len(t, lineas, 1, "la línea añadida tras el envío pendiente sigue en el pedido")
	assert.Equal(t, lentes.ID, lineas[0].Producto.ID)
	assert.True(t, c.CalcularTotal().Equal(decimal.NewFromInt(20)))
}

func TestComposicion_ReintentoFallidoSiguePendiente(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("Registrar", mock.Anything, mock.Anything).Return(nil, &api.Error{Status: 500}).Once()
	e.pedidos.On("Registrar", mock.Anything, mock.Anything).Return(&entity.Pedido{ID: 9}, nil).Once()
	c := e.composicion(t, entity.PedidoSaliente)
	c.AgregarProducto(gafasSol)

	e.red.Notificar(false)
	_, _ = c.Registrar(context.Background(), ports.NewGuion(), false)

	e.red.Notificar(true)
	assert.True(t, c.Pendiente(), "un reintento fallido conserva el pendiente")
	assert.Equal(t, domain.MsgErrorRegistrarPedido, c.ErrorMessage())

	e.red.Notificar(false)
	e.red.Notificar(true)
	assert.False(t, c.Pendiente())
	e.pedidos.AssertNumberOfCalls(t, "Registrar", 2)
}

func TestComposicion_ModoEdicion(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("ObtenerPorID", mock.Anything, int64(12)).Return(&entity.Pedido{
		ID:   12,
		Tipo: entity.PedidoSaliente,
		Productos: []entity.ProductoPedido{
			{ID: 1, Nombre: "Gafas de Sol", Precio: decimal.RequireFromString("50.5"), Stock: 5, Cantidad: 3},
		},
	}, nil)
	e.pedidos.On("Actualizar", mock.Anything, int64(12), mock.MatchedBy(func(in gateway.CambiosPedido) bool {
		return !in.Fecha.IsZero() && in.Tipo == entity.PedidoSaliente &&
			len(in.Productos) == 1 && in.Productos[0] == entity.LineaPedido{ID: 1, Cantidad: 4}
	})).Return(&entity.Pedido{ID: 12}, nil).Once()
	c := e.composicion(t, entity.PedidoSaliente)

	require.NoError(t, c.CargarPedido(context.Background(), 12))
	assert.Equal(t, int64(12), c.EnEdicion())
	require.Len(t, c.Lineas(), 1)
	assert.Equal(t, 3, c.Lineas()[0].Cantidad)

	c.AgregarProducto(gafasSol)
	g := ports.NewGuion()
	res, err := c.Registrar(context.Background(), g, false)
	require.NoError(t, err)
	assert.Equal(t, "/historial-pedidos-salientes", res.Redirigir)
	assert.Equal(t, "/historial-pedidos-salientes", e.nav.Ruta())
	assert.Equal(t, []string{domain.MsgPedidoActualizado}, g.Avisos())
	e.pedidos.AssertNotCalled(t, "Registrar", mock.Anything, mock.Anything)
	e.pedidos.AssertExpectations(t)
}

func TestComposicion_VentaBajoUmbralProponeReposicion(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("Registrar", mock.Anything, mock.Anything).Return(&entity.Pedido{ID: 5}, nil)
	// Tras la venta el backend informa stock 1 (< umbral 2) para Gafas y 9 (>= 8) para Lentes.
	e.productos.On("Listar", mock.Anything).Return([]entity.Producto{
		{ID: 1, Nombre: "Gafas de Sol", Precio: decimal.RequireFromString("50.5"), Stock: 1, Umbral: 2},
		{ID: 2, Nombre: "Lentes", Precio: decimal.NewFromInt(20), Stock: 9, Umbral: 8},
		{ID: 3, Nombre: "No vendido", Stock: 0, Umbral: 4},
	}, nil)
	e.sols.On("Crear", mock.Anything, []entity.LineaPedido{{ID: 1, Cantidad: 2}}).Return(&entity.Solicitud{ID: 77}, nil).Once()
	c := e.composicion(t, entity.PedidoSaliente)
	c.AgregarProducto(gafasSol)
	c.AgregarProducto(lentes)

	g := ports.NewGuion(true)
	res, err := c.Registrar(context.Background(), g, true)
	require.NoError(t, err)
	require.NotNil(t, res.Solicitud)
	assert.Equal(t, int64(77), res.Solicitud.ID)
	assert.Equal(t, []string{"El stock de Gafas de Sol (1) está por debajo del umbral (2). ¿Deseas crear una solicitud de reposición?"}, g.Preguntas())
	e.sols.AssertExpectations(t)
}

func TestComposicion_ProyeccionLocalSiNoHayCatalogo(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("Registrar", mock.Anything, mock.Anything).Return(&entity.Pedido{ID: 5}, nil)
	e.productos.On("Listar", mock.Anything).Return(nil, &api.Error{Status: 500})
	// Lentes: 10 - 3 = 7 < 8 → ceil(8×1.5) - 7 = 5
	e.sols.On("Crear", mock.Anything, []entity.LineaPedido{{ID: 2, Cantidad: 5}}).Return(&entity.Solicitud{ID: 78}, nil).Once()
	c := e.composicion(t, entity.PedidoSaliente)
	c.AgregarProducto(lentes)
	c.ActualizarProducto(ports.NewGuion(), lentes.ID, 3)

	res, err := c.Registrar(context.Background(), ports.NewGuion(true), true)
	require.NoError(t, err)
	require.NotNil(t, res.Solicitud)
	e.sols.AssertExpectations(t)
}

func TestComposicion_AgregarPorID(t *testing.T) {
	e := nuevoEntorno()
	e.productos.On("Listar", mock.Anything).Return([]entity.Producto{lentes, gafasSol}, nil)
	c := e.composicion(t, entity.PedidoEntrante)

	require.NoError(t, c.CargarProductos(context.Background()))
	assert.Equal(t, "Gafas de Sol", c.Catalogo()[0].Nombre)
	require.NoError(t, c.AgregarPorID(2))
	assert.ErrorIs(t, c.AgregarPorID(99), domain.ErrNotFound)
	assert.Len(t, c.Lineas(), 1)
}
