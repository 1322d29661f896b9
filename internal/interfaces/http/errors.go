package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/domain"
)

// clasificar traduce los errores de dominio a status HTTP y código.
func clasificar(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrPedidoVacio):
		return fiber.StatusBadRequest, "PEDIDO_VACIO"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrSinConexion):
		return fiber.StatusServiceUnavailable, "SIN_CONEXION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrServidor):
		return fiber.StatusBadGateway, "BACKEND"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// responderError escribe un dto.ErrorResponse. mensaje es el texto que el flujo mostró al usuario;
// si está vacío se usa el del backend o el del error.
func responderError(c *fiber.Ctx, err error, mensaje string, avisos []string) error {
	status, code := clasificar(err)
	if mensaje == "" {
		mensaje = domain.MensajeServidor(err)
	}
	if mensaje == "" {
		mensaje = err.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: mensaje, Avisos: avisos})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID lee un id numérico de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	return id, err == nil && id > 0
}

func invalidID(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: name + " inválido"})
}
