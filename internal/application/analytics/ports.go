package analytics

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
)

// DashboardPDFGenerator genera el reporte PDF del resumen del panel.
type DashboardPDFGenerator interface {
	GenerarDashboard(ctx context.Context, resumen *dto.DashboardDTO) ([]byte, error)
}
