package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TipoPedido discrimina pedidos de entrada y de salida.
type TipoPedido string

// Tipos de pedido.
const (
	PedidoEntrante TipoPedido = "entrante" // recepción de mercancía (reposición)
	PedidoSaliente TipoPedido = "saliente" // venta / despacho
)

// Valido indica si el tipo es uno de los conocidos.
func (t TipoPedido) Valido() bool {
	return t == PedidoEntrante || t == PedidoSaliente
}

// Pedido registro de pedido tal como lo devuelve el backend.
type Pedido struct {
	ID          int64            `json:"id"`
	Fecha       time.Time        `json:"fecha"`
	PrecioTotal decimal.Decimal  `json:"precioTotal"`
	Tipo        TipoPedido       `json:"tipo,omitempty"`
	Productos   []ProductoPedido `json:"Productos"`
}

// ProductoPedido línea de un pedido persistido (producto + cantidad en la tabla de unión).
type ProductoPedido struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Descripcion string          `json:"descripcion,omitempty"`
	Cantidad    int             `json:"-"`
}

type cantidadUnion struct {
	Cantidad int `json:"cantidad"`
}

type productoPedidoJSON struct {
	ID             int64           `json:"id"`
	Nombre         string          `json:"nombre"`
	Precio         decimal.Decimal `json:"precio"`
	Stock          int             `json:"stock"`
	Descripcion    string          `json:"descripcion,omitempty"`
	ProductoPedido *cantidadUnion  `json:"ProductoPedido,omitempty"`
	PedidoProducto *cantidadUnion  `json:"PedidoProducto,omitempty"`
}

// UnmarshalJSON acepta la tabla de unión como ProductoPedido o PedidoProducto;
// el backend ha usado ambos nombres.
func (l *ProductoPedido) UnmarshalJSON(data []byte) error {
	var raw productoPedidoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = ProductoPedido{
		ID:          raw.ID,
		Nombre:      raw.Nombre,
		Precio:      raw.Precio,
		Stock:       raw.Stock,
		Descripcion: raw.Descripcion,
	}
	switch {
	case raw.ProductoPedido != nil:
		l.Cantidad = raw.ProductoPedido.Cantidad
	case raw.PedidoProducto != nil:
		l.Cantidad = raw.PedidoProducto.Cantidad
	}
	return nil
}

// MarshalJSON serializa con la clave ProductoPedido.
func (l ProductoPedido) MarshalJSON() ([]byte, error) {
	return json.Marshal(productoPedidoJSON{
		ID:             l.ID,
		Nombre:         l.Nombre,
		Precio:         l.Precio,
		Stock:          l.Stock,
		Descripcion:    l.Descripcion,
		ProductoPedido: &cantidadUnion{Cantidad: l.Cantidad},
	})
}

// Producto reconstruye el producto referenciado por la línea.
// El umbral no viaja en la línea; queda en 0.
func (l ProductoPedido) Producto() Producto {
	return Producto{ID: l.ID, Nombre: l.Nombre, Precio: l.Precio, Stock: l.Stock, Descripcion: l.Descripcion}
}

// LineaPedido cuerpo mínimo de una línea al crear o actualizar pedidos y solicitudes.
type LineaPedido struct {
	ID       int64 `json:"id"`
	Cantidad int   `json:"cantidad"`
}
