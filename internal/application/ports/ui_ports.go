package ports

// Dialogos abstrae los diálogos modales del navegador (alert, confirm, prompt).
type Dialogos interface {
	Alertar(mensaje string)
	Confirmar(mensaje string) bool
	// Solicitar pide un valor con una sugerencia inicial; ok=false si el usuario cancela.
	Solicitar(mensaje, sugerencia string) (valor string, ok bool)
}

// Conectividad estado de red y aviso de reconexión.
type Conectividad interface {
	EnLinea() bool
	// AlReconectar registra fn y devuelve la función para darla de baja.
	AlReconectar(fn func()) func()
}

// Navegador cambio de pantalla tras una acción (p. ej. volver al historial).
type Navegador interface {
	Navegar(ruta string)
}
