package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// SugerenciaReposicion producto bajo umbral con la cantidad sugerida para llegar al stock ideal.
type SugerenciaReposicion struct {
	ProductoID       int64           `json:"productoId"`
	Nombre           string          `json:"nombre"`
	Stock            int             `json:"stock"`
	Umbral           int             `json:"umbral"`
	StockIdeal       int             `json:"stockIdeal"`       // ceil(umbral × factor)
	CantidadSugerida int             `json:"cantidadSugerida"` // stockIdeal - stock, mínimo 1
	CostoEstimado    decimal.Decimal `json:"costoEstimado"`    // cantidadSugerida × precio
	Prioridad        int             `json:"prioridad"`        // 1 = más urgente
}

// LineaSolicitudResponse línea de una solicitud con las unidades pendientes.
type LineaSolicitudResponse struct {
	ProductoID int64           `json:"productoId"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Stock      int             `json:"stock"`
	Pendiente  int             `json:"pendiente"`
}

// SolicitudResponse solicitud de reposición.
type SolicitudResponse struct {
	ID     int64                    `json:"id"`
	Fecha  time.Time                `json:"fecha"`
	Lineas []LineaSolicitudResponse `json:"lineas"`
}

// NewSolicitudResponse mapea la entidad.
func NewSolicitudResponse(s entity.Solicitud) SolicitudResponse {
	lineas := make([]LineaSolicitudResponse, 0, len(s.Productos))
	for _, p := range s.Productos {
		lineas = append(lineas, LineaSolicitudResponse{
			ProductoID: p.ID,
			Nombre:     p.Nombre,
			Precio:     p.Precio,
			Stock:      p.Stock,
			Pendiente:  p.Pendiente,
		})
	}
	return SolicitudResponse{ID: s.ID, Fecha: s.Fecha, Lineas: lineas}
}

// SolicitudListResponse solicitudes pendientes.
type SolicitudListResponse struct {
	Items   []SolicitudResponse `json:"items"`
	Mensaje string              `json:"mensaje,omitempty"`
}

// RecepcionRequest body para POST /api/solicitudes/:id/recepciones.
// Unidades es el texto tal cual lo escribió el usuario; vacío acepta la sugerencia (1).
type RecepcionRequest struct {
	ProductoID int64  `json:"productoId"`
	Unidades   string `json:"unidades"`
	Confirmar  *bool  `json:"confirmar,omitempty"`
}

// RecepcionResponse estado tras registrar una recepción.
type RecepcionResponse struct {
	Solicitudes  []SolicitudResponse `json:"solicitudes"`
	Seleccionada *SolicitudResponse  `json:"seleccionada,omitempty"`
	Registrada   bool                `json:"registrada"`
	Avisos       []string            `json:"avisos"`
}
