package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

var _ gateway.SolicitudGateway = (*SolicitudClient)(nil)

const rutaSolicitudes = "/api/solicitudes"

// SolicitudClient implementa SolicitudGateway contra /api/solicitudes.
// POST y PUT envían la lista de líneas tal cual, sin envoltorio.
type SolicitudClient struct {
	c *Cliente
}

func NewSolicitudClient(c *Cliente) *SolicitudClient {
	return &SolicitudClient{c: c}
}

func (s *SolicitudClient) Listar(ctx context.Context) ([]entity.Solicitud, error) {
	var out []entity.Solicitud
	if err := s.c.do(ctx, http.MethodGet, rutaSolicitudes, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SolicitudClient) Crear(ctx context.Context, lineas []entity.LineaPedido) (*entity.Solicitud, error) {
	var out entity.Solicitud
	if err := s.c.do(ctx, http.MethodPost, rutaSolicitudes, lineas, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SolicitudClient) Actualizar(ctx context.Context, id int64, lineas []entity.LineaPedido) (*entity.Solicitud, error) {
	var out entity.Solicitud
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", rutaSolicitudes, id), lineas, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SolicitudClient) Eliminar(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", rutaSolicitudes, id), nil, nil)
}
