package conexion_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-panel/internal/infrastructure/conexion"
)

func TestMonitor_AvisaUnaVezPorReconexion(t *testing.T) {
	m := conexion.NewMonitor(nil, 0, zerolog.Nop())
	var avisos int32
	m.AlReconectar(func() { atomic.AddInt32(&avisos, 1) })

	assert.True(t, m.EnLinea())
	m.Notificar(true)
	assert.Zero(t, atomic.LoadInt32(&avisos), "seguir en línea no es una reconexión")

	m.Notificar(false)
	assert.False(t, m.EnLinea())
	m.Notificar(true)
	m.Notificar(true)
	assert.Equal(t, int32(1), atomic.LoadInt32(&avisos))

	m.Notificar(false)
	m.Notificar(true)
	assert.Equal(t, int32(2), atomic.LoadInt32(&avisos))
}

func TestMonitor_BajaDeOyente(t *testing.T) {
	m := conexion.NewMonitor(nil, 0, zerolog.Nop())
	var avisos int32
	baja := m.AlReconectar(func() { atomic.AddInt32(&avisos, 1) })
	baja()

	m.Notificar(false)
	m.Notificar(true)
	assert.Zero(t, atomic.LoadInt32(&avisos))
}

func TestMonitor_IniciarSondea(t *testing.T) {
	var caido atomic.Bool
	caido.Store(true)
	sondeo := func(context.Context) error {
		if caido.Load() {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	}
	m := conexion.NewMonitor(sondeo, 10*time.Millisecond, zerolog.Nop())
	reconectado := make(chan struct{}, 1)
	m.AlReconectar(func() {
		select {
		case reconectado <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Iniciar(ctx)

	assert.Eventually(t, func() bool { return !m.EnLinea() }, time.Second, 5*time.Millisecond)
	caido.Store(false)

	select {
	case <-reconectado:
	case <-time.After(time.Second):
		t.Fatal("no se notificó la reconexión")
	}
	assert.True(t, m.EnLinea())
}
