package ports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-panel/internal/application/ports"
)

func TestGuion(t *testing.T) {
	g := ports.NewGuion(false)
	g.Respuestas = []ports.Respuesta{{Valor: "3", OK: true}}

	assert.False(t, g.Confirmar("¿primera?"))
	assert.False(t, g.Confirmar("¿segunda?"), "agotadas, usa el valor por defecto")

	v, ok := g.Solicitar("¿cuántas?", "1")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	v, ok = g.Solicitar("¿cuántas?", "1")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	g.Alertar("hola")
	assert.Equal(t, []string{"hola"}, g.Avisos())
	assert.Len(t, g.Preguntas(), 4)
}
