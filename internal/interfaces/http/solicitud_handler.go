package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/application/solicitudes"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

// SolicitudHandler solicitudes de reposición pendientes y su recepción.
type SolicitudHandler struct {
	solicitudes gateway.SolicitudGateway
	pedidos     gateway.PedidoGateway
	reab        *solicitudes.Reabastecimiento
	log         zerolog.Logger
}

// NewSolicitudHandler construye el handler.
func NewSolicitudHandler(sols gateway.SolicitudGateway, pedidos gateway.PedidoGateway, reab *solicitudes.Reabastecimiento, log zerolog.Logger) *SolicitudHandler {
	return &SolicitudHandler{solicitudes: sols, pedidos: pedidos, reab: reab, log: log}
}

func (h *SolicitudHandler) recepcion() *solicitudes.Recepcion {
	return solicitudes.NewRecepcion(h.solicitudes, h.pedidos, h.log)
}

func solicitudesResponse(lista []entity.Solicitud) []dto.SolicitudResponse {
	out := make([]dto.SolicitudResponse, 0, len(lista))
	for _, s := range lista {
		out = append(out, dto.NewSolicitudResponse(s))
	}
	return out
}

// List godoc
// @Summary      Solicitudes pendientes
// @Description  Solo las que aún tienen unidades por recibir, de la más reciente a la más antigua.
// @Tags         solicitudes
// @Produce      json
// @Success      200  {object}  dto.SolicitudListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/solicitudes [get]
func (h *SolicitudHandler) List(c *fiber.Ctx) error {
	r := h.recepcion()
	if err := r.Cargar(c.Context()); err != nil {
		return responderError(c, err, r.ErrorMessage(), nil)
	}
	return c.JSON(dto.SolicitudListResponse{
		Items:   solicitudesResponse(r.Solicitudes()),
		Mensaje: r.ErrorMessage(),
	})
}

// Delete godoc
// @Summary      Eliminar solicitud
// @Tags         solicitudes
// @Param        id   path  int  true  "ID de la solicitud"
// @Success      204
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id} [delete]
func (h *SolicitudHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	r := h.recepcion()
	if err := r.Eliminar(c.Context(), id); err != nil {
		return responderError(c, err, r.ErrorMessage(), nil)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recibir godoc
// @Summary      Registrar recepción de unidades
// @Description  Registra un pedido entrante por las unidades recibidas y descuenta las pendientes de la solicitud.
// @Description  Si una de las dos operaciones falla se deshace la otra. unidades vacío recibe 1; confirmar=false cancela.
// @Tags         solicitudes
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID de la solicitud"
// @Param        body  body  dto.RecepcionRequest  true  "productoId y unidades"
// @Success      200   {object}  dto.RecepcionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/recepciones [post]
func (h *SolicitudHandler) Recibir(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.RecepcionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}

	r := h.recepcion()
	if err := r.Cargar(c.Context()); err != nil {
		return responderError(c, err, r.ErrorMessage(), nil)
	}
	if r.VerDetalles(id) == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.MsgSolicitudNoEncontrada})
	}

	g := ports.NewGuion()
	switch {
	case in.Confirmar != nil && !*in.Confirmar:
		g.Respuestas = []ports.Respuesta{{OK: false}}
	case in.Unidades != "":
		g.Respuestas = []ports.Respuesta{{Valor: in.Unidades, OK: true}}
	}

	registrada, err := r.AbrirRecepcion(c.Context(), g, in.ProductoID)
	if err != nil {
		// El mensaje es el último aviso mostrado.
		msg := ""
		if a := g.Avisos(); len(a) > 0 {
			msg = a[len(a)-1]
		}
		return responderError(c, err, msg, g.Avisos())
	}

	out := dto.RecepcionResponse{
		Solicitudes: solicitudesResponse(r.Solicitudes()),
		Registrada:  registrada,
		Avisos:      avisos(g),
	}
	if sel := r.Seleccionada(); sel != nil {
		s := dto.NewSolicitudResponse(*sel)
		out.Seleccionada = &s
	}
	return c.JSON(out)
}

// Sugerencias godoc
// @Summary      Sugerencias de reposición
// @Description  Productos bajo umbral con la cantidad para llegar al stock ideal, por urgencia.
// @Tags         solicitudes
// @Produce      json
// @Success      200  {array}   dto.SugerenciaReposicion
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/sugerencias [get]
func (h *SolicitudHandler) Sugerencias(c *fiber.Ctx) error {
	out, err := h.reab.Sugerencias(c.Context())
	if err != nil {
		return responderError(c, err, domain.MsgErrorProductos, nil)
	}
	return c.JSON(out)
}
