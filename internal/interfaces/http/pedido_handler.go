package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/pedidos"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

// PedidoHandler historial de pedidos.
type PedidoHandler struct {
	pedidos gateway.PedidoGateway
	red     ports.Conectividad
	log     zerolog.Logger
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(pedidos gateway.PedidoGateway, red ports.Conectividad, log zerolog.Logger) *PedidoHandler {
	return &PedidoHandler{pedidos: pedidos, red: red, log: log}
}

// List godoc
// @Summary      Historial de pedidos
// @Description  Pedidos del tipo indicado, del más reciente al más antiguo. q filtra por número de pedido.
// @Tags         pedidos
// @Produce      json
// @Param        tipo    query  string  true   "entrante | saliente"
// @Param        q       query  string  false  "Dígitos del número de pedido"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.HistorialResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	tipo := entity.TipoPedido(c.Query("tipo"))
	if !tipo.Valido() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "tipo debe ser entrante o saliente"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	page.DefaultPage()

	hist := pedidos.NewHistorial(h.pedidos, h.red, nil, tipo, h.log)
	if err := hist.Cargar(c.Context()); err != nil {
		return responderError(c, err, hist.ErrorMessage(), nil)
	}
	if q := c.Query("q"); q != "" {
		hist.FiltrarPorID(q)
	}

	visibles := hist.Pedidos()
	out := dto.HistorialResponse{
		Items:   make([]dto.PedidoResponse, 0, page.Limit),
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(visibles)},
		Mensaje: hist.ErrorMessage(),
	}
	if msg := hist.ErrorBusqueda(); msg != "" {
		out.Mensaje = msg
	}
	if page.Offset < len(visibles) {
		fin := min(page.Offset+page.Limit, len(visibles))
		for _, p := range visibles[page.Offset:fin] {
			out.Items = append(out.Items, dto.NewPedidoResponse(p))
		}
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Description  Con devolverStock=true primero se devuelven al inventario las unidades del pedido.
// @Tags         pedidos
// @Produce      json
// @Param        id             path   int   true   "ID del pedido"
// @Param        devolverStock  query  bool  false  "Devolver el stock antes de eliminar"
// @Success      200            {object}  dto.AccionResponse
// @Failure      502            {object}  dto.ErrorResponse
// @Failure      503            {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [delete]
func (h *PedidoHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	// La petición DELETE ya es la confirmación de borrado.
	g := ports.NewGuion(true, c.QueryBool("devolverStock"))
	hist := pedidos.NewHistorial(h.pedidos, h.red, nil, entity.PedidoSaliente, h.log)
	if _, err := hist.Eliminar(c.Context(), g, id); err != nil {
		return responderError(c, err, hist.ErrorMessage(), g.Avisos())
	}
	return c.JSON(dto.AccionResponse{Avisos: avisos(g)})
}
