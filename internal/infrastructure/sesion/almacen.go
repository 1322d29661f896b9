// Package sesion guarda en memoria el estado de los flujos abiertos desde la API
// (borradores de pedido), indexado por un id opaco y con caducidad por inactividad.
package sesion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-panel/internal/domain"
)

type entrada[T any] struct {
	mu    sync.Mutex // serializa las operaciones sobre el mismo valor
	valor T
	usado time.Time
}

// Almacen mapa id → valor con TTL. ttl 0 = sin caducidad.
type Almacen[T any] struct {
	mu       sync.RWMutex
	entradas map[string]*entrada[T]
	ttl      time.Duration
	alCerrar func(T)
	ahora    func() time.Time
}

// NewAlmacen crea el almacén. alCerrar (opcional) se invoca al eliminar o caducar un valor.
func NewAlmacen[T any](ttl time.Duration, alCerrar func(T)) *Almacen[T] {
	return &Almacen[T]{
		entradas: make(map[string]*entrada[T]),
		ttl:      ttl,
		alCerrar: alCerrar,
		ahora:    time.Now,
	}
}

// Crear guarda v y devuelve su id.
func (a *Almacen[T]) Crear(v T) string {
	id := uuid.NewString()
	a.mu.Lock()
	a.entradas[id] = &entrada[T]{valor: v, usado: a.ahora()}
	a.mu.Unlock()
	return id
}

// Con ejecuta fn con el valor bajo el candado de la entrada y renueva su caducidad.
// Devuelve domain.ErrNotFound si el id no existe o caducó.
func (a *Almacen[T]) Con(id string, fn func(T) error) error {
	a.mu.RLock()
	e, ok := a.entradas[id]
	a.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: sesión %s", domain.ErrNotFound, id)
	}

	e.mu.Lock()
	if a.caducada(e) {
		e.mu.Unlock()
		a.Eliminar(id)
		return fmt.Errorf("%w: sesión %s caducada", domain.ErrNotFound, id)
	}
	e.usado = a.ahora()
	defer e.mu.Unlock()
	return fn(e.valor)
}

// Eliminar quita el valor; false si no existía.
func (a *Almacen[T]) Eliminar(id string) bool {
	a.mu.Lock()
	e, ok := a.entradas[id]
	delete(a.entradas, id)
	a.mu.Unlock()
	if ok && a.alCerrar != nil {
		a.alCerrar(e.valor)
	}
	return ok
}

// Len número de valores guardados (incluye caducados aún no purgados).
func (a *Almacen[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entradas)
}

// Purgar elimina los valores caducados y devuelve cuántos quitó.
func (a *Almacen[T]) Purgar() int {
	var ids []string
	a.mu.RLock()
	for id, e := range a.entradas {
		if e.mu.TryLock() {
			if a.caducada(e) {
				ids = append(ids, id)
			}
			e.mu.Unlock()
		}
	}
	a.mu.RUnlock()

	n := 0
	for _, id := range ids {
		if a.Eliminar(id) {
			n++
		}
	}
	return n
}

// Iniciar purga periódicamente hasta que ctx termine.
func (a *Almacen[T]) Iniciar(ctx context.Context, intervalo time.Duration) {
	if a.ttl <= 0 || intervalo <= 0 {
		return
	}
	t := time.NewTicker(intervalo)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.Purgar()
		}
	}
}

// caducada requiere e.mu.
func (a *Almacen[T]) caducada(e *entrada[T]) bool {
	return a.ttl > 0 && a.ahora().Sub(e.usado) > a.ttl
}
