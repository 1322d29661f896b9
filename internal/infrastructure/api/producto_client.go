package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

var _ gateway.ProductoGateway = (*ProductoClient)(nil)

const rutaProductos = "/api/productos"

// ProductoClient implementa ProductoGateway contra /api/productos.
type ProductoClient struct {
	c *Cliente
}

// productoBody cuerpo de alta/edición. El backend espera el precio como número JSON.
type productoBody struct {
	ID          int64       `json:"id,omitempty"`
	Nombre      string      `json:"nombre"`
	Descripcion string      `json:"descripcion,omitempty"`
	Precio      json.Number `json:"precio"`
	Stock       int         `json:"stock"`
	Umbral      int         `json:"umbral"`
}

func newProductoBody(p entity.Producto) productoBody {
	return productoBody{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      json.Number(p.Precio.String()),
		Stock:       p.Stock,
		Umbral:      p.Umbral,
	}
}

func NewProductoClient(c *Cliente) *ProductoClient {
	return &ProductoClient{c: c}
}

func (p *ProductoClient) Listar(ctx context.Context) ([]entity.Producto, error) {
	var out []entity.Producto
	if err := p.c.do(ctx, http.MethodGet, rutaProductos, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *ProductoClient) Crear(ctx context.Context, prod entity.Producto) (*entity.Producto, error) {
	var out entity.Producto
	if err := p.c.do(ctx, http.MethodPost, rutaProductos, newProductoBody(prod), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductoClient) Actualizar(ctx context.Context, prod entity.Producto) (*entity.Producto, error) {
	var out entity.Producto
	if err := p.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", rutaProductos, prod.ID), newProductoBody(prod), &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out = prod
	}
	return &out, nil
}

func (p *ProductoClient) Eliminar(ctx context.Context, id int64) error {
	return p.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", rutaProductos, id), nil, nil)
}

// ExisteNombre GET /verificar-nombre?nombre=; el backend responde un booleano plano.
func (p *ProductoClient) ExisteNombre(ctx context.Context, nombre string) (bool, error) {
	var existe bool
	path := "/verificar-nombre?nombre=" + url.QueryEscape(nombre)
	if err := p.c.do(ctx, http.MethodGet, path, nil, &existe); err != nil {
		return false, err
	}
	return existe, nil
}
