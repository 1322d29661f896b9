package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/application/catalogo"
	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/application/solicitudes"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
)

// ProductHandler maneja el catálogo de productos.
type ProductHandler struct {
	productos gateway.ProductoGateway
	reab      *solicitudes.Reabastecimiento
	factor    decimal.Decimal
	log       zerolog.Logger
}

// NewProductHandler construye el handler. factor es el de "cerca del umbral".
func NewProductHandler(productos gateway.ProductoGateway, reab *solicitudes.Reabastecimiento, factor decimal.Decimal, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{productos: productos, reab: reab, factor: factor, log: log}
}

func (h *ProductHandler) lista() *catalogo.Lista {
	return catalogo.NewLista(h.productos, h.reab, h.factor, h.log)
}

func (h *ProductHandler) listResponse(v catalogo.Vista) dto.ProductoListResponse {
	out := dto.ProductoListResponse{
		Items:   make([]dto.ProductoResponse, 0, len(v.Productos)),
		Total:   len(v.Productos),
		Filtro:  string(v.Filtro),
		Orden:   string(v.Orden),
		Mensaje: v.Mensaje,
	}
	if v.Orden != catalogo.SinOrden {
		out.Dir = "desc"
		if v.Asc {
			out.Dir = "asc"
		}
	}
	for _, p := range v.Productos {
		out.Items = append(out.Items, dto.NewProductoResponse(p, h.factor))
	}
	return out
}

// List godoc
// @Summary      Listar productos
// @Description  Catálogo con búsqueda por nombre (todas las palabras), filtro de umbral y orden.
// @Tags         productos
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por nombre"
// @Param        filtro  query  string  false  "bajo | cercano"
// @Param        orden   query  string  false  "nombre | stock"
// @Param        dir     query  string  false  "asc | desc"  default(asc)
// @Success      200     {object}  dto.ProductoListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Failure      503     {object}  dto.ErrorResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filtro := catalogo.Filtro(c.Query("filtro"))
	if !filtro.Valido() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "filtro debe ser bajo o cercano"})
	}
	orden := catalogo.Orden(c.Query("orden"))
	if orden != catalogo.SinOrden && orden != catalogo.OrdenNombre && orden != catalogo.OrdenStock {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "orden debe ser nombre o stock"})
	}

	l := h.lista()
	if err := l.Cargar(c.Context()); err != nil {
		return responderError(c, err, l.ErrorMessage(), nil)
	}
	if filtro != catalogo.SinFiltro {
		l.AlternarFiltro(filtro)
	}
	l.Buscar(c.Query("q"))
	if orden != catalogo.SinOrden {
		l.Ordenar(orden, c.Query("dir") != "desc")
	}
	return c.JSON(h.listResponse(l.Vista()))
}

// Create godoc
// @Summary      Crear producto
// @Description  Valida nombre, precio, stock y umbral (umbral <= stock) y rechaza nombres repetidos.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearProductoRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	alta := catalogo.NewAlta(h.productos, h.log)
	out, err := alta.Agregar(c.Context(), in.ToEntity())
	if err != nil {
		return responderError(c, err, alta.ErrorMessage(), nil)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductoResponse(*out, h.factor))
}

// Update godoc
// @Summary      Guardar edición de producto
// @Description  Con reponer=true, si el producto queda bajo umbral se crea la solicitud de reposición.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id       path   int   true   "ID del producto"
// @Param        reponer  query  bool  false  "Proponer reposición si queda bajo umbral"
// @Param        body     body   dto.ActualizarProductoRequest  true  "Datos a guardar"
// @Success      200      {object}  dto.GuardarProductoResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.ActualizarProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p := entity.Producto{
		ID:          id,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Precio:      in.Precio,
		Stock:       in.Stock,
		Umbral:      in.Umbral,
	}

	// Pedir reposición en la query equivale a aceptar la propuesta.
	g := &ports.Guion{ConfirmarPorDefecto: true}
	l := h.lista()
	guardado, sol, err := l.GuardarProducto(c.Context(), g, p, c.QueryBool("reponer"))
	if err != nil {
		return responderError(c, err, l.ErrorMessage(), g.Avisos())
	}

	out := dto.GuardarProductoResponse{
		Producto: dto.NewProductoResponse(*guardado, h.factor),
		Avisos:   avisos(g),
	}
	if sol != nil {
		r := dto.NewSolicitudResponse(*sol)
		out.Solicitud = &r
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductoListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	l := h.lista()
	if err := l.Eliminar(c.Context(), id); err != nil {
		return responderError(c, err, l.ErrorMessage(), nil)
	}
	return c.JSON(h.listResponse(l.Vista()))
}

// avisos nunca nil, para que el JSON lleve [].
func avisos(g *ports.Guion) []string {
	if a := g.Avisos(); a != nil {
		return a
	}
	return []string{}
}
