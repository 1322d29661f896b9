package pedidos_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/internal/application/pedidos"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/api"
)

func historialDePrueba() []entity.Pedido {
	base := time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)
	return []entity.Pedido{
		{ID: 3, Fecha: base, Tipo: entity.PedidoSaliente},
		{ID: 13, Fecha: base.Add(48 * time.Hour), Tipo: entity.PedidoSaliente},
		{ID: 21, Fecha: base.Add(24 * time.Hour), Tipo: entity.PedidoSaliente},
	}
}

func ids(ps []entity.Pedido) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func nuevoHistorial(e *entorno) *pedidos.Historial {
	return pedidos.NewHistorial(e.pedidos, e.red, e.nav, entity.PedidoSaliente, zerolog.Nop())
}

func TestHistorial_CargarOrdenaPorFecha(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("Historial", mock.Anything, entity.PedidoSaliente).Return(historialDePrueba(), nil)
	h := nuevoHistorial(e)

	require.NoError(t, h.Cargar(context.Background()))
	assert.Equal(t, []int64{13, 21, 3}, ids(h.Pedidos()))
	assert.Empty(t, h.ErrorMessage())
}

func TestHistorial_Vacio(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("Historial", mock.Anything, entity.PedidoSaliente).Return([]entity.Pedido{}, nil)
	h := nuevoHistorial(e)

	require.NoError(t, h.Cargar(context.Background()))
	assert.Equal(t, domain.MsgSinPedidos, h.ErrorMessage())
}

func TestHistorial_Errores(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"sin conexión", &api.Error{Status: 0}, domain.MsgErrorConexion},
		{"servidor", &api.Error{Status: 500}, domain.MsgErrorHistorial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := nuevoEntorno()
			e.pedidos.On("Historial", mock.Anything, entity.PedidoSaliente).Return(nil, tt.err)
			h := nuevoHistorial(e)

			assert.Error(t, h.Cargar(context.Background()))
			assert.Equal(t, tt.msg, h.ErrorMessage())
		})
	}
}

func TestHistorial_FiltrarPorID(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("Historial", mock.Anything, entity.PedidoSaliente).Return(historialDePrueba(), nil)
	h := nuevoHistorial(e)
	require.NoError(t, h.Cargar(context.Background()))

	h.FiltrarPorID("3")
	assert.Equal(t, []int64{13, 3}, ids(h.Pedidos()))
	assert.Empty(t, h.ErrorBusqueda())

	h.FiltrarPorID("12a")
	assert.Equal(t, domain.MsgBusquedaPedidoInvalida, h.ErrorBusqueda())
	assert.Len(t, h.Pedidos(), 3, "búsqueda inválida restaura la lista")

	h.FiltrarPorID("99")
	assert.Empty(t, h.Pedidos())
	assert.Equal(t, domain.MsgSinPedidos, h.ErrorMessage())

	h.FiltrarPorID("")
	assert.Len(t, h.Pedidos(), 3)
	assert.Empty(t, h.ErrorMessage())
}

func TestHistorial_DetalleEsUnaCopia(t *testing.T) {
	e := nuevoEntorno()
	data := historialDePrueba()
	data[1].Productos = []entity.ProductoPedido{{ID: 1, Nombre: "Gafas de Sol", Cantidad: 2}}
	e.pedidos.On("Historial", mock.Anything, entity.PedidoSaliente).Return(data, nil)
	h := nuevoHistorial(e)
	require.NoError(t, h.Cargar(context.Background()))

	det := h.VerDetalles(13)
	require.NotNil(t, det)
	det.ID = 99
	det.Productos[0].Cantidad = 50

	sel := h.Seleccionado()
	require.NotNil(t, sel)
	assert.Equal(t, int64(13), sel.ID)
	assert.Equal(t, 2, sel.Productos[0].Cantidad)

	sel.Productos[0].Cantidad = 7
	assert.Equal(t, 2, h.Seleccionado().Productos[0].Cantidad)
	assert.Equal(t, 2, h.Pedidos()[0].Productos[0].Cantidad)
}

func TestHistorial_EliminarDevolviendoStock(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("Historial", mock.Anything, entity.PedidoSaliente).Return(historialDePrueba(), nil)
	e.pedidos.On("DevolverStock", mock.Anything, int64(13)).Return(nil).Once()
	e.pedidos.On("Eliminar", mock.Anything, int64(13)).Return(nil).Once()
	h := nuevoHistorial(e)
	require.NoError(t, h.Cargar(context.Background()))
	h.VerDetalles(13)

	g := ports.NewGuion(true, true)
	ok, err := h.Eliminar(context.Background(), g, 13)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int64{21, 3}, ids(h.Pedidos()))
	assert.Nil(t, h.Seleccionado())
	assert.Equal(t, []string{domain.MsgConfirmarEliminarPed, domain.MsgConfirmarDevolverStock}, g.Preguntas())
	e.pedidos.AssertExpectations(t)
}

func TestHistorial_EliminarCancelado(t *testing.T) {
	e := nuevoEntorno()
	h := nuevoHistorial(e)

	ok, err := h.Eliminar(context.Background(), ports.NewGuion(false), 13)
	require.NoError(t, err)
	assert.False(t, ok)
	e.pedidos.AssertNotCalled(t, "Eliminar", mock.Anything, mock.Anything)
}

func TestHistorial_EliminarSinConexion(t *testing.T) {
	e := nuevoEntorno()
	e.red.Notificar(false)
	h := nuevoHistorial(e)

	_, err := h.Eliminar(context.Background(), ports.NewGuion(true), 13)
	assert.ErrorIs(t, err, domain.ErrSinConexion)
	assert.Equal(t, domain.MsgEliminarSinConexion, h.ErrorMessage())
	e.pedidos.AssertNotCalled(t, "Eliminar", mock.Anything, mock.Anything)
}

func TestHistorial_EliminarFalla(t *testing.T) {
	e := nuevoEntorno()
	e.pedidos.On("Eliminar", mock.Anything, int64(13)).Return(&api.Error{Status: 409, Mensaje: "El pedido tiene devoluciones"})
	h := nuevoHistorial(e)

	_, err := h.Eliminar(context.Background(), ports.NewGuion(true, false), 13)
	require.Error(t, err)
	assert.Equal(t, "Error al eliminar pedido: El pedido tiene devoluciones", h.ErrorMessage())
	e.pedidos.AssertNotCalled(t, "DevolverStock", mock.Anything, mock.Anything)
}

func TestHistorial_Editar(t *testing.T) {
	e := nuevoEntorno()
	h := nuevoHistorial(e)

	assert.Equal(t, "/registrar-pedido-saliente/21", h.Editar(21))
	assert.Equal(t, "/registrar-pedido-saliente/21", e.nav.Ruta())
}
