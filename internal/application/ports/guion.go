package ports

import "sync"

// Respuesta respuesta preparada para un Solicitar.
type Respuesta struct {
	Valor string
	OK    bool
}

// Guion implementa Dialogos con respuestas preparadas de antemano y registra
// todo lo que se mostró. Lo usan la capa HTTP (una petición = un guion) y los tests.
//
// Confirmar consume Confirmaciones en orden; agotadas, devuelve ConfirmarPorDefecto.
// Solicitar consume Respuestas; agotadas, acepta la sugerencia.
type Guion struct {
	mu sync.Mutex

	Confirmaciones      []bool
	ConfirmarPorDefecto bool
	Respuestas          []Respuesta

	avisos    []string
	preguntas []string
}

var _ Dialogos = (*Guion)(nil)

// NewGuion crea un guion que responde a las confirmaciones en el orden dado.
func NewGuion(confirmaciones ...bool) *Guion {
	return &Guion{Confirmaciones: confirmaciones}
}

func (g *Guion) Alertar(mensaje string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.avisos = append(g.avisos, mensaje)
}

func (g *Guion) Confirmar(mensaje string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.preguntas = append(g.preguntas, mensaje)
	if len(g.Confirmaciones) == 0 {
		return g.ConfirmarPorDefecto
	}
	r := g.Confirmaciones[0]
	g.Confirmaciones = g.Confirmaciones[1:]
	return r
}

func (g *Guion) Solicitar(mensaje, sugerencia string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.preguntas = append(g.preguntas, mensaje)
	if len(g.Respuestas) == 0 {
		return sugerencia, true
	}
	r := g.Respuestas[0]
	g.Respuestas = g.Respuestas[1:]
	return r.Valor, r.OK
}

// Avisos mensajes mostrados con Alertar, en orden.
func (g *Guion) Avisos() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.avisos...)
}

// Preguntas textos de Confirmar y Solicitar, en orden.
func (g *Guion) Preguntas() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.preguntas...)
}

// Destino Navegador que solo recuerda la última ruta pedida.
type Destino struct {
	mu   sync.Mutex
	ruta string
}

func (d *Destino) Navegar(ruta string) {
	d.mu.Lock()
	d.ruta = ruta
	d.mu.Unlock()
}

// Ruta última ruta navegada ("" si ninguna).
func (d *Destino) Ruta() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ruta
}
