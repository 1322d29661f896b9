package mocks

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
	"github.com/stretchr/testify/mock"
)

type MockPedidoGateway struct {
	mock.Mock
}

func (m *MockPedidoGateway) Historial(ctx context.Context, tipo entity.TipoPedido) ([]entity.Pedido, error) {
	args := m.Called(ctx, tipo)
	if res := args.Get(0); res != nil {
		return res.([]entity.Pedido), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPedidoGateway) ObtenerPorID(ctx context.Context, id int64) (*entity.Pedido, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*entity.Pedido), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPedidoGateway) Registrar(ctx context.Context, in gateway.NuevoPedido) (*entity.Pedido, error) {
	args := m.Called(ctx, in)
	if res := args.Get(0); res != nil {
		return res.(*entity.Pedido), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPedidoGateway) Actualizar(ctx context.Context, id int64, in gateway.CambiosPedido) (*entity.Pedido, error) {
	args := m.Called(ctx, id, in)
	if res := args.Get(0); res != nil {
		return res.(*entity.Pedido), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPedidoGateway) Eliminar(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPedidoGateway) DevolverStock(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
