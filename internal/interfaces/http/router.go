package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/inventario-panel/internal/application/analytics"
	"github.com/jhoicas/inventario-panel/internal/application/pedidos"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/application/solicitudes"
	"github.com/jhoicas/inventario-panel/internal/domain/gateway"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/sesion"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName          string
	Productos        gateway.ProductoGateway
	Pedidos          gateway.PedidoGateway
	Solicitudes      gateway.SolicitudGateway
	Red              ports.Conectividad
	Reabastecimiento *solicitudes.Reabastecimiento
	DashboardUC      *appanalytics.DashboardUseCase
	Borradores       *sesion.Almacen[*Borrador]
	FactorCercano    decimal.Decimal
	Log              zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		estado := "ok"
		if deps.Red != nil && !deps.Red.EnLinea() {
			estado = "sin_conexion"
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName, "backend": estado})
	})

	api := app.Group("/api")

	// Productos
	products := api.Group("/productos")
	productHandler := NewProductHandler(deps.Productos, deps.Reabastecimiento, deps.FactorCercano, deps.Log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Historial de pedidos
	orders := api.Group("/pedidos")
	pedidoHandler := NewPedidoHandler(deps.Pedidos, deps.Red, deps.Log)
	orders.Get("/", pedidoHandler.List)
	orders.Delete("/:id", pedidoHandler.Delete)

	// Borradores de pedido (composición)
	drafts := api.Group("/borradores")
	borradorHandler := NewBorradorHandler(deps.Borradores, pedidos.ComposicionDeps{
		Pedidos:          deps.Pedidos,
		Productos:        deps.Productos,
		Reabastecimiento: deps.Reabastecimiento,
		Red:              deps.Red,
		Log:              deps.Log,
	})
	cargar := CargarBorrador(deps.Borradores)
	drafts.Post("/", borradorHandler.Open)
	drafts.Get("/:id", cargar, borradorHandler.Get)
	drafts.Delete("/:id", borradorHandler.Discard)
	drafts.Post("/:id/lineas", cargar, borradorHandler.AddLine)
	drafts.Put("/:id/lineas/:productoId", cargar, borradorHandler.UpdateLine)
	drafts.Delete("/:id/lineas/:productoId", cargar, borradorHandler.RemoveLine)
	drafts.Post("/:id/registrar", cargar, borradorHandler.Register)

	// Solicitudes de reposición
	requests := api.Group("/solicitudes")
	solicitudHandler := NewSolicitudHandler(deps.Solicitudes, deps.Pedidos, deps.Reabastecimiento, deps.Log)
	requests.Get("/", solicitudHandler.List)
	requests.Get("/sugerencias", solicitudHandler.Sugerencias)
	requests.Delete("/:id", solicitudHandler.Delete)
	requests.Post("/:id/recepciones", solicitudHandler.Recibir)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetSummary)
	api.Get("/dashboard/pdf", dashboardHandler.DownloadPDF)
}
