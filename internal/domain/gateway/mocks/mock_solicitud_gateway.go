package mocks

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

type MockSolicitudGateway struct {
	mock.Mock
}

func (m *MockSolicitudGateway) Listar(ctx context.Context) ([]entity.Solicitud, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]entity.Solicitud), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSolicitudGateway) Crear(ctx context.Context, lineas []entity.LineaPedido) (*entity.Solicitud, error) {
	args := m.Called(ctx, lineas)
	if res := args.Get(0); res != nil {
		return res.(*entity.Solicitud), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSolicitudGateway) Actualizar(ctx context.Context, id int64, lineas []entity.LineaPedido) (*entity.Solicitud, error) {
	args := m.Called(ctx, id, lineas)
	if res := args.Get(0); res != nil {
		return res.(*entity.Solicitud), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSolicitudGateway) Eliminar(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
