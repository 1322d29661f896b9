package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-panel/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del panel de inicio.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del panel
// @Description  KPIs de pedidos y series para los gráficos (barras ventas/reposición, dispersión precio/unidades, pastel de beneficio).
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return responderError(c, err, "", nil)
	}
	return c.JSON(summary)
}

// DownloadPDF godoc
// @Summary      Resumen del panel en PDF
// @Tags         dashboard
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/pdf [get]
func (h *DashboardHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.DescargarPDF(c.Context())
	if err != nil {
		return responderError(c, err, "", nil)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
