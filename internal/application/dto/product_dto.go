package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// CrearProductoRequest body para POST /api/productos.
type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Umbral      int             `json:"umbral"`
}

// ToEntity convierte la petición en el producto a crear.
func (r CrearProductoRequest) ToEntity() entity.Producto {
	return entity.Producto{
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Precio:      r.Precio,
		Stock:       r.Stock,
		Umbral:      r.Umbral,
	}
}

// ActualizarProductoRequest body para PUT /api/productos/:id (edición en línea).
type ActualizarProductoRequest struct {
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Umbral      int             `json:"umbral"`
}

// ProductoResponse salida de un producto con sus marcas de umbral.
type ProductoResponse struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Umbral      int             `json:"umbral"`
	BajoUmbral  bool            `json:"bajoUmbral"`
	CercaUmbral bool            `json:"cercaUmbral"`
}

// NewProductoResponse mapea la entidad; factor es el multiplicador de "cerca del umbral".
func NewProductoResponse(p entity.Producto, factor decimal.Decimal) ProductoResponse {
	return ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		Umbral:      p.Umbral,
		BajoUmbral:  p.BajoUmbral(),
		CercaUmbral: p.CercaUmbral(factor),
	}
}

// ProductoListResponse vista del catálogo tras filtrar, buscar y ordenar.
type ProductoListResponse struct {
	Items   []ProductoResponse `json:"items"`
	Total   int                `json:"total"`
	Filtro  string             `json:"filtro,omitempty"`
	Orden   string             `json:"orden,omitempty"`
	Dir     string             `json:"dir,omitempty"`
	Mensaje string             `json:"mensaje,omitempty"`
}

// GuardarProductoResponse resultado de la edición en línea, con la solicitud de reposición si se creó.
type GuardarProductoResponse struct {
	Producto  ProductoResponse   `json:"producto"`
	Solicitud *SolicitudResponse `json:"solicitud,omitempty"`
	Avisos    []string           `json:"avisos"`
}
