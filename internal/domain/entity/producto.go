package entity

import (
	"github.com/shopspring/decimal"
)

// Producto copia local (solo lectura/render) de un producto del catálogo.
// El registro de verdad vive en el backend.
type Producto struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Umbral      int             `json:"umbral"`
}

// BajoUmbral indica si el stock actual está por debajo del umbral mínimo.
func (p Producto) BajoUmbral() bool {
	return p.Stock < p.Umbral
}

// CercaUmbral indica si el stock está en [umbral, umbral × factor].
func (p Producto) CercaUmbral(factor decimal.Decimal) bool {
	if p.Stock < p.Umbral {
		return false
	}
	return decimal.NewFromInt(int64(p.Stock)).LessThanOrEqual(decimal.NewFromInt(int64(p.Umbral)).Mul(factor))
}
