package pedidos

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/application/catalogo"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/application/solicitudes"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

// Linea producto seleccionado y cantidad en el pedido en composición.
type Linea struct {
	Producto entity.Producto
	Cantidad int
}

// Subtotal precio × cantidad.
func (l Linea) Subtotal() decimal.Decimal {
	return l.Producto.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// Resultado de un envío correcto.
type Resultado struct {
	Pedido    *entity.Pedido
	Solicitud *entity.Solicitud // solicitud de reposición creada tras la venta, si la hubo
	Redirigir string
}

// ComposicionDeps dependencias de Composicion.
type ComposicionDeps struct {
	Pedidos          gateway.PedidoGateway
	Productos        gateway.ProductoGateway
	Reabastecimiento *solicitudes.Reabastecimiento // nil desactiva la detección de umbral
	Red              ports.Conectividad
	Navegador        ports.Navegador
	Log              zerolog.Logger
}

// Composicion pedido en construcción (entrante o saliente), nuevo o en edición.
//
// Sin conexión, Registrar guarda las líneas como pendientes; cada aviso de reconexión
// reintenta el envío exactamente una vez.
type Composicion struct {
	deps ComposicionDeps
	tipo entity.TipoPedido

	mu           sync.Mutex
	catalogo     []entity.Producto
	lineas       []Linea
	pendiente    []entity.LineaPedido
	pedido       *entity.Pedido // != nil en modo edición
	errorMessage string

	bajaReconexion func()
}

// NewComposicion crea el flujo y lo suscribe a las reconexiones. Llamar Cerrar al descartarlo.
func NewComposicion(deps ComposicionDeps, tipo entity.TipoPedido) (*Composicion, error) {
	if !tipo.Valido() {
		return nil, fmt.Errorf("%w: tipo de pedido %q", domain.ErrInvalidInput, tipo)
	}
	c := &Composicion{deps: deps, tipo: tipo}
	if deps.Red != nil {
		c.bajaReconexion = deps.Red.AlReconectar(c.alReconectar)
	}
	return c, nil
}

// Cerrar da de baja la suscripción a reconexiones.
func (c *Composicion) Cerrar() {
	if c.bajaReconexion != nil {
		c.bajaReconexion()
	}
}

// Tipo tipo del pedido.
func (c *Composicion) Tipo() entity.TipoPedido { return c.tipo }

// ── Carga ─────────────────────────────────────────────────────────────────────

// CargarProductos trae el catálogo seleccionable, ordenado por nombre.
func (c *Composicion) CargarProductos(ctx context.Context) error {
	prods, err := c.deps.Productos.Listar(ctx)
	if err != nil {
		c.deps.Log.Error().Err(err).Msg("listar productos")
		return fmt.Errorf("listar productos: %w", err)
	}
	c.mu.Lock()
	c.catalogo = catalogo.OrdenarPorNombre(prods, true)
	c.mu.Unlock()
	return nil
}

// Catalogo productos seleccionables.
func (c *Composicion) Catalogo() []entity.Producto {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.catalogo)
}

// CargarPedido activa el modo edición: las líneas salen del pedido persistido y
// Registrar actualizará en lugar de crear.
func (c *Composicion) CargarPedido(ctx context.Context, id int64) error {
	p, err := c.deps.Pedidos.ObtenerPorID(ctx, id)
	if err != nil {
		c.deps.Log.Error().Err(err).Int64("pedido_id", id).Msg("obtener pedido")
		return fmt.Errorf("obtener pedido %d: %w", id, err)
	}

	lineas := make([]Linea, 0, len(p.Productos))
	for _, l := range p.Productos {
		lineas = append(lineas, Linea{Producto: l.Producto(), Cantidad: l.Cantidad})
	}

	c.mu.Lock()
	c.pedido = p
	c.lineas = lineas
	c.mu.Unlock()
	return nil
}

// EnEdicion id del pedido en edición, 0 si es nuevo.
func (c *Composicion) EnEdicion() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pedido == nil {
		return 0
	}
	return c.pedido.ID
}

// ── Líneas ────────────────────────────────────────────────────────────────────

// Lineas copia de las líneas actuales.
func (c *Composicion) Lineas() []Linea {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lineas)
}

// AgregarProducto suma una unidad si el producto ya está; si no, lo añade con cantidad 1.
func (c *Composicion) AgregarProducto(p entity.Producto) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indice(p.ID); i >= 0 {
		c.lineas[i].Cantidad++
		return
	}
	c.lineas = append(c.lineas, Linea{Producto: p, Cantidad: 1})
}

// AgregarPorID como AgregarProducto, buscando el producto en el catálogo cargado.
func (c *Composicion) AgregarPorID(productoID int64) error {
	c.mu.Lock()
	i := slices.IndexFunc(c.catalogo, func(p entity.Producto) bool { return p.ID == productoID })
	var p entity.Producto
	if i >= 0 {
		p = c.catalogo[i]
	}
	c.mu.Unlock()

	if i < 0 {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, productoID)
	}
	c.AgregarProducto(p)
	return nil
}

// ActualizarProducto valida y aplica la cantidad introducida para la línea:
//   - no numérica: aviso y la línea vuelve a 1
//   - con decimales: aviso y se trunca; el valor truncado sigue validándose
//   - menor que 1: se pregunta si quitar la línea; si no, vuelve a 1
//   - mayor que el stock: aviso y se ajusta al stock
func (c *Composicion) ActualizarProducto(dlg ports.Dialogos, productoID int64, cantidad float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indice(productoID)
	if i < 0 {
		return
	}

	if math.IsNaN(cantidad) || math.IsInf(cantidad, 0) {
		dlg.Alertar(domain.MsgCantidadNoNumero)
		c.lineas[i].Cantidad = 1
		return
	}
	if cantidad != math.Floor(cantidad) {
		dlg.Alertar(domain.MsgCantidadNoEntera)
		cantidad = math.Floor(cantidad)
	}

	if cantidad < 1 {
		if dlg.Confirmar(domain.MsgConfirmarQuitar) {
			c.quitar(productoID)
		} else {
			c.lineas[i].Cantidad = 1
		}
		return
	}

	// Se compara en float: un valor fuera del rango de int no debe convertirse antes del ajuste.
	stock := c.lineas[i].Producto.Stock
	if cantidad > float64(stock) {
		dlg.Alertar(domain.MsgCantidadSuperaStock)
		cantidad = float64(stock)
	}
	n := int(cantidad)
	if n < 1 {
		// Sin stock: no tiene sentido conservar la línea.
		c.quitar(productoID)
		return
	}
	c.lineas[i].Cantidad = n
}

// QuitarProducto quita la línea sin preguntar.
func (c *Composicion) QuitarProducto(productoID int64) {
	c.mu.Lock()
	c.quitar(productoID)
	c.mu.Unlock()
}

// QuitarProductoConfirmado pregunta antes de quitar la línea.
func (c *Composicion) QuitarProductoConfirmado(dlg ports.Dialogos, productoID int64) bool {
	if !dlg.Confirmar(domain.MsgConfirmarQuitar) {
		return false
	}
	c.QuitarProducto(productoID)
	return true
}

// EliminarTodos vacía el pedido previa confirmación.
func (c *Composicion) EliminarTodos(dlg ports.Dialogos) bool {
	if !dlg.Confirmar(domain.MsgConfirmarVaciar) {
		return false
	}
	c.mu.Lock()
	c.lineas = nil
	c.mu.Unlock()
	return true
}

// CalcularTotal Σ precio × cantidad.
func (c *Composicion) CalcularTotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, l := range c.lineas {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Composicion) indice(productoID int64) int {
	return slices.IndexFunc(c.lineas, func(l Linea) bool { return l.Producto.ID == productoID })
}

func (c *Composicion) quitar(productoID int64) {
	c.lineas = slices.DeleteFunc(c.lineas, func(l Linea) bool { return l.Producto.ID == productoID })
}

// quitarEnviadas quita las líneas de los productos enviados; las añadidas después se conservan.
// Requiere c.mu.
func (c *Composicion) quitarEnviadas(enviadas []entity.LineaPedido) {
	ids := make(map[int64]struct{}, len(enviadas))
	for _, l := range enviadas {
		ids[l.ID] = struct{}{}
	}
	c.lineas = slices.DeleteFunc(c.lineas, func(l Linea) bool {
		_, ok := ids[l.Producto.ID]
		return ok
	})
}

// ── Estado ────────────────────────────────────────────────────────────────────

// ErrorMessage mensaje de error visible ("" si no hay).
func (c *Composicion) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMessage
}

// Pendiente indica si hay un envío esperando la reconexión.
func (c *Composicion) Pendiente() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pendiente) > 0
}

// ── Envío ─────────────────────────────────────────────────────────────────────

// Registrar envía el pedido (crea, o actualiza en modo edición). Sin conexión deja las líneas
// pendientes para el próximo aviso de reconexión y no llama al backend. Si falla, las líneas
// se conservan para reintentar. Con reponer, tras una venta correcta propone reposición para
// los productos que quedaron bajo umbral.
func (c *Composicion) Registrar(ctx context.Context, dlg ports.Dialogos, reponer bool) (*Resultado, error) {
	c.mu.Lock()
	lineas := c.lineasEnvio()
	if c.deps.Red != nil && !c.deps.Red.EnLinea() {
		c.errorMessage = domain.MsgErrorConexion
		c.pendiente = lineas
		c.mu.Unlock()
		c.deps.Log.Warn().Int("lineas", len(lineas)).Str("tipo", string(c.tipo)).Msg("sin conexión, pedido pendiente")
		return nil, domain.ErrSinConexion
	}
	if len(lineas) == 0 {
		c.errorMessage = domain.MsgPedidoVacio
		c.mu.Unlock()
		return nil, domain.ErrPedidoVacio
	}
	enviadas := slices.Clone(c.lineas)
	c.mu.Unlock()

	pedido, err := c.enviar(ctx, lineas)
	if err != nil {
		msg := c.mensajeFallo(err)
		c.mu.Lock()
		c.errorMessage = msg
		c.mu.Unlock()
		dlg.Alertar(msg)
		return nil, err
	}

	res := &Resultado{Pedido: pedido}
	c.mu.Lock()
	editado := c.pedido != nil
	c.quitarEnviadas(lineas)
	c.pendiente = nil
	c.errorMessage = ""
	c.mu.Unlock()

	if editado {
		dlg.Alertar(domain.MsgPedidoActualizado)
		res.Redirigir = RutaHistorial(c.tipo)
		if c.deps.Navegador != nil {
			c.deps.Navegador.Navegar(res.Redirigir)
		}
	} else {
		dlg.Alertar(domain.MsgPedidoRegistrado)
	}

	if reponer && c.tipo == entity.PedidoSaliente && c.deps.Reabastecimiento != nil {
		candidatos := c.bajoUmbralTrasVenta(ctx, enviadas)
		if len(candidatos) > 0 {
			res.Solicitud, _ = c.deps.Reabastecimiento.Proponer(ctx, dlg, candidatos)
		}
	}
	return res, nil
}

// lineasEnvio cuerpo {id, cantidad} de las líneas actuales. Requiere c.mu.
func (c *Composicion) lineasEnvio() []entity.LineaPedido {
	out := make([]entity.LineaPedido, 0, len(c.lineas))
	for _, l := range c.lineas {
		out = append(out, entity.LineaPedido{ID: l.Producto.ID, Cantidad: l.Cantidad})
	}
	return out
}

func (c *Composicion) enviar(ctx context.Context, lineas []entity.LineaPedido) (*entity.Pedido, error) {
	c.mu.Lock()
	pedido := c.pedido
	c.mu.Unlock()

	if pedido != nil {
		p, err := c.deps.Pedidos.Actualizar(ctx, pedido.ID, gateway.CambiosPedido{
			Fecha:     time.Now(),
			Productos: lineas,
			Tipo:      c.tipo,
		})
		if err != nil {
			c.deps.Log.Error().Err(err).Int64("pedido_id", pedido.ID).Msg("actualizar pedido")
			return nil, fmt.Errorf("actualizar pedido: %w", err)
		}
		c.deps.Log.Info().Int64("pedido_id", pedido.ID).Str("tipo", string(c.tipo)).Msg("pedido actualizado")
		return p, nil
	}

	p, err := c.deps.Pedidos.Registrar(ctx, gateway.NuevoPedido{Productos: lineas, Tipo: c.tipo})
	if err != nil {
		c.deps.Log.Error().Err(err).Str("tipo", string(c.tipo)).Msg("registrar pedido")
		return nil, fmt.Errorf("registrar pedido: %w", err)
	}
	c.deps.Log.Info().Int64("pedido_id", p.ID).Str("tipo", string(c.tipo)).Int("lineas", len(lineas)).Msg("pedido registrado")
	return p, nil
}

func (c *Composicion) mensajeFallo(err error) string {
	if msg := domain.MensajeServidor(err); msg != "" {
		return msg
	}
	if errors.Is(err, domain.ErrSinConexion) {
		return domain.MsgErrorConexion
	}
	if c.EnEdicion() != 0 {
		return domain.MsgErrorActualizarPedido
	}
	return domain.MsgErrorRegistrarPedido
}

// bajoUmbralTrasVenta productos vendidos que quedaron bajo umbral. Usa el stock actualizado
// del backend; si no está disponible, proyecta stock - cantidad sobre la copia local.
func (c *Composicion) bajoUmbralTrasVenta(ctx context.Context, vendidas []Linea) []entity.Producto {
	vendidos := make(map[int64]Linea, len(vendidas))
	for _, l := range vendidas {
		vendidos[l.Producto.ID] = l
	}

	out := make([]entity.Producto, 0)
	prods, err := c.deps.Productos.Listar(ctx)
	if err == nil {
		for _, p := range prods {
			if _, ok := vendidos[p.ID]; ok && p.BajoUmbral() {
				out = append(out, p)
			}
		}
		return out
	}

	c.deps.Log.Warn().Err(err).Msg("stock tras la venta no disponible, se proyecta localmente")
	for _, l := range vendidas {
		p := l.Producto
		p.Stock -= l.Cantidad
		if p.Umbral > 0 && p.BajoUmbral() {
			out = append(out, p)
		}
	}
	return out
}

// alReconectar reintenta una vez el envío pendiente. Se ejecuta en el goroutine del monitor.
func (c *Composicion) alReconectar() {
	c.mu.Lock()
	lineas := c.pendiente
	c.mu.Unlock()
	if len(lineas) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := c.enviar(ctx, lineas); err != nil {
		msg := c.mensajeFallo(err)
		c.mu.Lock()
		c.errorMessage = msg
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.pendiente = nil
	c.quitarEnviadas(lineas)
	c.errorMessage = ""
	c.mu.Unlock()
	c.deps.Log.Info().Int("lineas", len(lineas)).Msg("pedido pendiente registrado tras reconexión")
}

// RutaHistorial pantalla de historial del tipo dado.
func RutaHistorial(tipo entity.TipoPedido) string {
	return "/historial-pedidos-" + string(tipo) + "s"
}

// RutaEdicion pantalla de edición de un pedido.
func RutaEdicion(tipo entity.TipoPedido, id int64) string {
	return fmt.Sprintf("/registrar-pedido-%s/%d", tipo, id)
}
