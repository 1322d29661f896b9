package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

var _ gateway.PedidoGateway = (*PedidoClient)(nil)

const rutaPedidos = "/api/pedidos"

// PedidoClient implementa PedidoGateway contra /api/pedidos.
type PedidoClient struct {
	c *Cliente
}

func NewPedidoClient(c *Cliente) *PedidoClient {
	return &PedidoClient{c: c}
}

func (p *PedidoClient) Historial(ctx context.Context, tipo entity.TipoPedido) ([]entity.Pedido, error) {
	path := rutaPedidos
	if tipo != "" {
		path += "?tipo=" + url.QueryEscape(string(tipo))
	}
	var out []entity.Pedido
	if err := p.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PedidoClient) ObtenerPorID(ctx context.Context, id int64) (*entity.Pedido, error) {
	var out entity.Pedido
	if err := p.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", rutaPedidos, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PedidoClient) Registrar(ctx context.Context, in gateway.NuevoPedido) (*entity.Pedido, error) {
	var out entity.Pedido
	if err := p.c.do(ctx, http.MethodPost, rutaPedidos, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PedidoClient) Actualizar(ctx context.Context, id int64, in gateway.CambiosPedido) (*entity.Pedido, error) {
	var out entity.Pedido
	if err := p.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", rutaPedidos, id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PedidoClient) Eliminar(ctx context.Context, id int64) error {
	return p.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", rutaPedidos, id), nil, nil)
}

// DevolverStock POST /api/pedidos/devolver-stock/:id con cuerpo vacío {}.
func (p *PedidoClient) DevolverStock(ctx context.Context, id int64) error {
	return p.c.do(ctx, http.MethodPost, fmt.Sprintf("%s/devolver-stock/%d", rutaPedidos, id), struct{}{}, nil)
}
