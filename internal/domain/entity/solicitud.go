package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Solicitud solicitud de reposición pendiente. Cada línea guarda las unidades que faltan por recibir.
type Solicitud struct {
	ID        int64               `json:"id"`
	Fecha     time.Time           `json:"fecha"`
	Productos []ProductoSolicitud `json:"Productos"`
}

// ProductoSolicitud línea de una solicitud.
type ProductoSolicitud struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Descripcion string          `json:"descripcion,omitempty"`
	Pendiente   int             `json:"-"`
}

type productoSolicitudJSON struct {
	ID                int64           `json:"id"`
	Nombre            string          `json:"nombre"`
	Precio            decimal.Decimal `json:"precio"`
	Stock             int             `json:"stock"`
	Descripcion       string          `json:"descripcion,omitempty"`
	ProductoSolicitud cantidadUnion   `json:"ProductoSolicitud"`
}

// UnmarshalJSON lee la cantidad pendiente de la tabla de unión ProductoSolicitud.
func (l *ProductoSolicitud) UnmarshalJSON(data []byte) error {
	var raw productoSolicitudJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = ProductoSolicitud{
		ID:          raw.ID,
		Nombre:      raw.Nombre,
		Precio:      raw.Precio,
		Stock:       raw.Stock,
		Descripcion: raw.Descripcion,
		Pendiente:   raw.ProductoSolicitud.Cantidad,
	}
	return nil
}

// MarshalJSON serializa con la clave ProductoSolicitud.
func (l ProductoSolicitud) MarshalJSON() ([]byte, error) {
	return json.Marshal(productoSolicitudJSON{
		ID:                l.ID,
		Nombre:            l.Nombre,
		Precio:            l.Precio,
		Stock:             l.Stock,
		Descripcion:       l.Descripcion,
		ProductoSolicitud: cantidadUnion{Cantidad: l.Pendiente},
	})
}

// Abierta indica si queda alguna línea con unidades pendientes.
func (s Solicitud) Abierta() bool {
	for _, p := range s.Productos {
		if p.Pendiente > 0 {
			return true
		}
	}
	return false
}

// Linea devuelve la línea del producto indicado, o nil.
func (s *Solicitud) Linea(productoID int64) *ProductoSolicitud {
	for i := range s.Productos {
		if s.Productos[i].ID == productoID {
			return &s.Productos[i]
		}
	}
	return nil
}

// Pendientes devuelve las líneas en el formato de actualización {id, cantidad restante}.
func (s Solicitud) Pendientes() []LineaPedido {
	out := make([]LineaPedido, 0, len(s.Productos))
	for _, p := range s.Productos {
		out = append(out, LineaPedido{ID: p.ID, Cantidad: p.Pendiente})
	}
	return out
}
