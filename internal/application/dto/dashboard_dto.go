package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardDTO respuesta de GET /api/dashboard: KPIs y series listas para graficar.
type DashboardDTO struct {
	Generado   time.Time            `json:"generado"`
	Periodo    string               `json:"periodo"` // ej: "Noviembre 2024"
	KPIs       KPIsDTO              `json:"kpis"`
	Productos  []ProductoVentasDTO  `json:"productos"`
	Barras     BarrasDTO            `json:"barras"`
	Dispersion []PuntoDispersionDTO `json:"dispersion"`
	Pastel     []PorcionDTO         `json:"pastel"`
}

// KPIsDTO indicadores principales.
type KPIsDTO struct {
	PedidosSalientes   int             `json:"pedidosSalientes"`
	PedidosEntrantes   int             `json:"pedidosEntrantes"`
	UnidadesVendidas   int             `json:"unidadesVendidas"`
	UnidadesRepuestas  int             `json:"unidadesRepuestas"`
	Beneficio          decimal.Decimal `json:"beneficio"`
	ProductoMasVendido string          `json:"productoMasVendido"`
}

// ProductoVentasDTO acumulados por producto, en orden de primera aparición.
type ProductoVentasDTO struct {
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	Vendidas  int             `json:"vendidas"`
	Repuestas int             `json:"repuestas"`
	Beneficio decimal.Decimal `json:"beneficio"` // Σ cantidad × precio en salientes
}

// BarrasDTO series apiladas ventas vs reposición por producto.
type BarrasDTO struct {
	Etiquetas  []string `json:"etiquetas"`
	Ventas     []int    `json:"ventas"`
	Reposicion []int    `json:"reposicion"`
}

// PuntoDispersionDTO precio frente a unidades vendidas.
type PuntoDispersionDTO struct {
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"x"`
	Vendidas int             `json:"y"`
}

// PorcionDTO porción del gráfico de pastel de beneficio por producto.
type PorcionDTO struct {
	Nombre    string          `json:"nombre"`
	Beneficio decimal.Decimal `json:"beneficio"`
	Color     string          `json:"color"`
}
