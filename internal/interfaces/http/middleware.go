package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/sesion"
)

// Locals keys.
const (
	LocalRequestID = "request_id"
	LocalBorrador  = "borrador"
)

// RequestLogger asigna un X-Request-ID (respeta el entrante) y registra cada petición con su latencia.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalRequestID, rid)
		c.Set(fiber.HeaderXRequestID, rid)

		err := c.Next()

		ev := log.Info()
		if status := c.Response().StatusCode(); status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Err(err).
			Msg("http")
		return err
	}
}

// GetRequestID devuelve el id de la petición (después de RequestLogger).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// CargarBorrador resuelve el borrador del parámetro :id y ejecuta el resto de la cadena
// con el borrador bloqueado; dos peticiones sobre el mismo borrador no se intercalan.
//
// Comportamiento:
//   - 404 Not Found → el borrador no existe o caducó por inactividad.
func CargarBorrador(store *sesion.Almacen[*Borrador]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		encontrado := false
		err := store.Con(c.Params("id"), func(b *Borrador) error {
			encontrado = true
			c.Locals(LocalBorrador, b)
			return c.Next()
		})
		if !encontrado {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "borrador no encontrado o caducado",
			})
		}
		return err
	}
}

// GetBorrador devuelve el borrador cargado por CargarBorrador.
func GetBorrador(c *fiber.Ctx) *Borrador {
	b, _ := c.Locals(LocalBorrador).(*Borrador)
	return b
}
