package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrPedidoVacio  = errors.New("el pedido no contiene productos")

	// ErrSinConexion la petición no llegó al backend (status 0).
	ErrSinConexion = errors.New("sin conexión con el servidor")
	// ErrServidor el backend respondió con un status de error.
	ErrServidor = errors.New("error del servidor")
)

// ValidationError error de validación del lado cliente con el mensaje a mostrar al usuario.
// Nunca se envía al servidor.
type ValidationError struct {
	Mensaje string
}

func (e *ValidationError) Error() string { return e.Mensaje }

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(mensaje string) error {
	return &ValidationError{Mensaje: mensaje}
}

// MensajeServidor devuelve el mensaje que el backend adjuntó al error, o "".
func MensajeServidor(err error) string {
	var m interface{ MensajeServidor() string }
	if errors.As(err, &m) {
		return m.MensajeServidor()
	}
	return ""
}
