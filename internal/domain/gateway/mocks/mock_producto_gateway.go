package mocks

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

type MockProductoGateway struct {
	mock.Mock
}

func (m *MockProductoGateway) Listar(ctx context.Context) ([]entity.Producto, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]entity.Producto), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductoGateway) Crear(ctx context.Context, p entity.Producto) (*entity.Producto, error) {
	args := m.Called(ctx, p)
	if res := args.Get(0); res != nil {
		return res.(*entity.Producto), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductoGateway) Actualizar(ctx context.Context, p entity.Producto) (*entity.Producto, error) {
	args := m.Called(ctx, p)
	if res := args.Get(0); res != nil {
		return res.(*entity.Producto), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductoGateway) Eliminar(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductoGateway) ExisteNombre(ctx context.Context, nombre string) (bool, error) {
	args := m.Called(ctx, nombre)
	return args.Bool(0), args.Error(1)
}
