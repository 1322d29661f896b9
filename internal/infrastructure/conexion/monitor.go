package conexion

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sondeo comprueba si el backend es alcanzable. Solo los fallos de transporte cuentan como "sin conexión".
type Sondeo func(ctx context.Context) error

// Monitor sigue la conectividad con el backend y avisa a los suscriptores en cada
// transición de fuera de línea a en línea.
type Monitor struct {
	sondeo    Sondeo
	intervalo time.Duration
	log       zerolog.Logger

	mu      sync.Mutex
	enLinea bool
	nextID  int
	oyentes map[int]func()
}

// NewMonitor crea un monitor que arranca "en línea".
func NewMonitor(sondeo Sondeo, intervalo time.Duration, log zerolog.Logger) *Monitor {
	return &Monitor{
		sondeo:    sondeo,
		intervalo: intervalo,
		log:       log,
		enLinea:   true,
		oyentes:   make(map[int]func()),
	}
}

// SondeoHTTP sondea baseURL con HEAD; cualquier respuesta HTTP, incluso un error, significa que hay red.
func SondeoHTTP(baseURL string, timeout time.Duration) Sondeo {
	client := &http.Client{Timeout: timeout}
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		return resp.Body.Close()
	}
}

// EnLinea último estado conocido.
func (m *Monitor) EnLinea() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enLinea
}

// AlReconectar registra fn para cada reconexión y devuelve la función que la da de baja.
func (m *Monitor) AlReconectar(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.oyentes[id] = fn

	return func() {
		m.mu.Lock()
		delete(m.oyentes, id)
		m.mu.Unlock()
	}
}

// Notificar fija el estado de conectividad. Los oyentes se ejecutan en el goroutine que llama,
// fuera del lock, solo cuando se pasa de fuera de línea a en línea.
func (m *Monitor) Notificar(enLinea bool) {
	m.mu.Lock()
	reconecta := enLinea && !m.enLinea
	m.enLinea = enLinea
	var pendientes []func()
	if reconecta {
		pendientes = make([]func(), 0, len(m.oyentes))
		for _, fn := range m.oyentes {
			pendientes = append(pendientes, fn)
		}
	}
	m.mu.Unlock()

	if reconecta {
		m.log.Info().Int("oyentes", len(pendientes)).Msg("conexión restablecida")
	}
	for _, fn := range pendientes {
		fn()
	}
}

// Iniciar sondea periódicamente hasta que ctx se cancele. Bloquea.
func (m *Monitor) Iniciar(ctx context.Context) {
	if m.sondeo == nil || m.intervalo <= 0 {
		return
	}
	ticker := time.NewTicker(m.intervalo)
	defer ticker.Stop()

	for {
		m.comprobar(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) comprobar(ctx context.Context) {
	sctx, cancel := context.WithTimeout(ctx, m.intervalo)
	defer cancel()

	err := m.sondeo(sctx)
	if err != nil && ctx.Err() != nil {
		return
	}
	if err != nil && m.EnLinea() {
		m.log.Warn().Err(err).Msg("backend inaccesible, modo sin conexión")
	}
	m.Notificar(err == nil)
}
