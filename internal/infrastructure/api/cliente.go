package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-panel/internal/domain"
)

// maxRespuesta límite de lectura de cuerpos de respuesta.
const maxRespuesta = 4 << 20

// Error respuesta fallida del backend. Status 0 indica que la petición no llegó al servidor.
type Error struct {
	Status  int
	Mensaje string
	Causa   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend: sin conexión: %v", e.Causa)
	}
	if e.Mensaje != "" {
		return fmt.Sprintf("backend: HTTP %d: %s", e.Status, e.Mensaje)
	}
	return fmt.Sprintf("backend: HTTP %d", e.Status)
}

// Unwrap expone el sentinel de dominio correspondiente y la causa de transporte.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 3)
	switch e.Status {
	case 0:
		out = append(out, domain.ErrSinConexion)
	case http.StatusNotFound:
		out = append(out, domain.ErrNotFound, domain.ErrServidor)
	case http.StatusConflict:
		out = append(out, domain.ErrConflict, domain.ErrServidor)
	default:
		out = append(out, domain.ErrServidor)
	}
	if e.Causa != nil {
		out = append(out, e.Causa)
	}
	return out
}

// MensajeServidor campo mensaje de la respuesta de error, si el backend lo envió.
func (e *Error) MensajeServidor() string { return e.Mensaje }

// Cliente transporte HTTP compartido por los gateways del backend de inventario.
type Cliente struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewCliente construye el cliente. timeout 0 deja las peticiones sin límite (el contexto manda).
func NewCliente(baseURL string, timeout time.Duration, log zerolog.Logger) *Cliente {
	return &Cliente{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// BaseURL URL base configurada.
func (c *Cliente) BaseURL() string { return c.baseURL }

type cuerpoError struct {
	Mensaje string `json:"mensaje"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do ejecuta la petición y decodifica la respuesta en out (si no es nil).
func (c *Cliente) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend inaccesible")
		return &Error{Status: 0, Causa: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRespuesta))
	if err != nil {
		return &Error{Status: 0, Causa: fmt.Errorf("leer respuesta: %w", err)}
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var ce cuerpoError
		if json.Unmarshal(raw, &ce) == nil {
			switch {
			case ce.Mensaje != "":
				apiErr.Mensaje = ce.Mensaje
			case ce.Message != "":
				apiErr.Mensaje = ce.Message
			default:
				apiErr.Mensaje = ce.Error
			}
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: deserializar %s %s: %w", method, path, err)
	}
	return nil
}
