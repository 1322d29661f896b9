package http

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/pedidos"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/sesion"
)

// Borrador pedido en composición abierto desde la API.
type Borrador struct {
	ID      string
	Comp    *pedidos.Composicion
	Destino *ports.Destino
}

// CerrarBorrador libera el borrador al descartarlo o caducar.
func CerrarBorrador(b *Borrador) {
	if b != nil && b.Comp != nil {
		b.Comp.Cerrar()
	}
}

// NewBorradores almacén de borradores con caducidad por inactividad.
func NewBorradores(ttl time.Duration) *sesion.Almacen[*Borrador] {
	return sesion.NewAlmacen(ttl, CerrarBorrador)
}

// BorradorHandler composición de pedidos: abrir, editar líneas, registrar.
type BorradorHandler struct {
	store *sesion.Almacen[*Borrador]
	deps  pedidos.ComposicionDeps
}

// NewBorradorHandler construye el handler. deps.Navegador se ignora: cada borrador lleva el suyo.
func NewBorradorHandler(store *sesion.Almacen[*Borrador], deps pedidos.ComposicionDeps) *BorradorHandler {
	return &BorradorHandler{store: store, deps: deps}
}

func borradorResponse(b *Borrador, g *ports.Guion) dto.BorradorResponse {
	lineas := b.Comp.Lineas()
	out := dto.BorradorResponse{
		ID:           b.ID,
		Tipo:         b.Comp.Tipo(),
		PedidoID:     b.Comp.EnEdicion(),
		Lineas:       make([]dto.LineaBorradorResponse, 0, len(lineas)),
		Total:        b.Comp.CalcularTotal(),
		Pendiente:    b.Comp.Pendiente(),
		ErrorMessage: b.Comp.ErrorMessage(),
		Avisos:       []string{},
		Redirigir:    b.Destino.Ruta(),
	}
	for _, l := range lineas {
		out.Lineas = append(out.Lineas, dto.LineaBorradorResponse{
			ProductoID: l.Producto.ID,
			Nombre:     l.Producto.Nombre,
			Precio:     l.Producto.Precio,
			Stock:      l.Producto.Stock,
			Cantidad:   l.Cantidad,
			Subtotal:   l.Subtotal(),
		})
	}
	if g != nil {
		out.Avisos = avisos(g)
	}
	return out
}

// Open godoc
// @Summary      Abrir borrador de pedido
// @Description  Carga el catálogo seleccionable. Con pedidoId se edita ese pedido: sus líneas precargan el borrador.
// @Tags         borradores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AbrirBorradorRequest  true  "tipo y, opcional, pedidoId"
// @Success      201   {object}  dto.BorradorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/borradores [post]
func (h *BorradorHandler) Open(c *fiber.Ctx) error {
	var in dto.AbrirBorradorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}

	deps := h.deps
	destino := &ports.Destino{}
	deps.Navegador = destino
	comp, err := pedidos.NewComposicion(deps, in.Tipo)
	if err != nil {
		return responderError(c, err, "tipo debe ser entrante o saliente", nil)
	}

	if err := comp.CargarProductos(c.Context()); err != nil {
		comp.Cerrar()
		return responderError(c, err, domain.MsgErrorProductos, nil)
	}
	if in.PedidoID > 0 {
		if err := comp.CargarPedido(c.Context(), in.PedidoID); err != nil {
			comp.Cerrar()
			return responderError(c, err, comp.ErrorMessage(), nil)
		}
	}

	b := &Borrador{Comp: comp, Destino: destino}
	b.ID = h.store.Crear(b)
	return c.Status(fiber.StatusCreated).JSON(borradorResponse(b, nil))
}

// Get godoc
// @Summary      Estado del borrador
// @Tags         borradores
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.BorradorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/borradores/{id} [get]
func (h *BorradorHandler) Get(c *fiber.Ctx) error {
	return c.JSON(borradorResponse(GetBorrador(c), nil))
}

// AddLine godoc
// @Summary      Agregar producto al borrador
// @Description  Si el producto ya está en el borrador su cantidad sube en 1; si no, entra con cantidad 1.
// @Tags         borradores
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del borrador"
// @Param        body  body  dto.AgregarLineaRequest  true  "productoId"
// @Success      200   {object}  dto.BorradorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/borradores/{id}/lineas [post]
func (h *BorradorHandler) AddLine(c *fiber.Ctx) error {
	b := GetBorrador(c)
	var in dto.AgregarLineaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := b.Comp.AgregarPorID(in.ProductoID); err != nil {
		return responderError(c, err, "producto no encontrado en el catálogo", nil)
	}
	return c.JSON(borradorResponse(b, nil))
}

// UpdateLine godoc
// @Summary      Cambiar cantidad de una línea
// @Description  La cantidad se valida como en el formulario: no numérica se rechaza, decimal se trunca,
// @Description  cero o negativa pide confirmación para quitar la línea (confirmar) y por encima del stock se ajusta al stock.
// @Tags         borradores
// @Accept       json
// @Produce      json
// @Param        id          path  string               true  "ID del borrador"
// @Param        productoId  path  int                  true  "ID del producto"
// @Param        body        body  dto.CantidadRequest  true  "cantidad y confirmar"
// @Success      200         {object}  dto.BorradorResponse
// @Router       /api/borradores/{id}/lineas/{productoId} [put]
func (h *BorradorHandler) UpdateLine(c *fiber.Ctx) error {
	b := GetBorrador(c)
	productoID, ok := paramID(c, "productoId")
	if !ok {
		return invalidID(c, "productoId")
	}
	var in dto.CantidadRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	g := &ports.Guion{ConfirmarPorDefecto: in.Confirmar}
	b.Comp.ActualizarProducto(g, productoID, parseCantidad(in.Cantidad))
	return c.JSON(borradorResponse(b, g))
}

// parseCantidad interpreta el texto del campo; lo que no es número queda como NaN.
func parseCantidad(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// RemoveLine godoc
// @Summary      Quitar línea del borrador
// @Tags         borradores
// @Produce      json
// @Param        id          path  string  true  "ID del borrador"
// @Param        productoId  path  int     true  "ID del producto"
// @Success      200         {object}  dto.BorradorResponse
// @Router       /api/borradores/{id}/lineas/{productoId} [delete]
func (h *BorradorHandler) RemoveLine(c *fiber.Ctx) error {
	b := GetBorrador(c)
	productoID, ok := paramID(c, "productoId")
	if !ok {
		return invalidID(c, "productoId")
	}
	b.Comp.QuitarProducto(productoID)
	return c.JSON(borradorResponse(b, nil))
}

// Register godoc
// @Summary      Registrar el borrador
// @Description  Crea el pedido (o lo actualiza si el borrador edita uno). Sin conexión responde 202 y el
// @Description  envío queda pendiente hasta la próxima reconexión. Con reponer=true, tras una venta se crea
// @Description  la solicitud de reposición de los productos que quedaron bajo umbral.
// @Tags         borradores
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del borrador"
// @Param        body  body  dto.RegistrarBorradorRequest  false "reponer"
// @Success      201   {object}  dto.BorradorResponse
// @Success      202   {object}  dto.BorradorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/borradores/{id}/registrar [post]
func (h *BorradorHandler) Register(c *fiber.Ctx) error {
	b := GetBorrador(c)
	var in dto.RegistrarBorradorRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}

	g := &ports.Guion{ConfirmarPorDefecto: in.Reponer}
	res, err := b.Comp.Registrar(c.Context(), g, in.Reponer)
	if errors.Is(err, domain.ErrSinConexion) && b.Comp.Pendiente() {
		return c.Status(fiber.StatusAccepted).JSON(borradorResponse(b, g))
	}
	if err != nil {
		return responderError(c, err, b.Comp.ErrorMessage(), g.Avisos())
	}

	out := borradorResponse(b, g)
	out.Redirigir = res.Redirigir
	if res.Pedido != nil {
		p := dto.NewPedidoResponse(*res.Pedido)
		out.Pedido = &p
	}
	if res.Solicitud != nil {
		s := dto.NewSolicitudResponse(*res.Solicitud)
		out.Solicitud = &s
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Discard godoc
// @Summary      Descartar borrador
// @Tags         borradores
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/borradores/{id} [delete]
func (h *BorradorHandler) Discard(c *fiber.Ctx) error {
	if !h.store.Eliminar(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "borrador no encontrado o caducado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
