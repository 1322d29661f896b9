package sesion

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/internal/domain"
)

type reloj struct {
	mu sync.Mutex
	t  time.Time
}

func (r *reloj) ahora() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.t
}

func (r *reloj) avanzar(d time.Duration) {
	r.mu.Lock()
	r.t = r.t.Add(d)
	r.mu.Unlock()
}

func TestAlmacen_CrearYCon(t *testing.T) {
	a := NewAlmacen[*int](0, nil)
	v := 1
	id := a.Crear(&v)
	require.NotEmpty(t, id)

	err := a.Con(id, func(p *int) error {
		*p++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	err = a.Con("no-existe", func(*int) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAlmacen_Caducidad(t *testing.T) {
	r := &reloj{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	var cerrados atomic.Int32
	a := NewAlmacen[string](time.Minute, func(string) { cerrados.Add(1) })
	a.ahora = r.ahora

	viejo := a.Crear("viejo")
	activo := a.Crear("activo")

	r.avanzar(50 * time.Second)
	require.NoError(t, a.Con(activo, func(string) error { return nil }), "el uso renueva la caducidad")
	r.avanzar(20 * time.Second)

	assert.Equal(t, 1, a.Purgar())
	assert.Equal(t, 1, a.Len())
	assert.ErrorIs(t, a.Con(viejo, func(string) error { return nil }), domain.ErrNotFound)
	assert.NoError(t, a.Con(activo, func(string) error { return nil }))

	r.avanzar(2 * time.Minute)
	assert.ErrorIs(t, a.Con(activo, func(string) error { return nil }), domain.ErrNotFound)
	assert.Zero(t, a.Len())
	assert.Equal(t, int32(2), cerrados.Load())
}

func TestAlmacen_Eliminar(t *testing.T) {
	var cerrado string
	a := NewAlmacen[string](0, func(v string) { cerrado = v })
	id := a.Crear("borrador")

	assert.True(t, a.Eliminar(id))
	assert.Equal(t, "borrador", cerrado)
	assert.False(t, a.Eliminar(id))
}

func TestAlmacen_ConSerializaPorEntrada(t *testing.T) {
	a := NewAlmacen[*int](0, nil)
	n := 0
	id := a.Crear(&n)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = a.Con(id, func(p *int) error {
				*p++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, n)
}
