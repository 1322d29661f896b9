package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/inventario-panel/internal/application/analytics"
	"github.com/jhoicas/inventario-panel/internal/application/solicitudes"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/api"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/conexion"
	infrapdf "github.com/jhoicas/inventario-panel/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/inventario-panel/internal/interfaces/http"
	"github.com/jhoicas/inventario-panel/pkg/config"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.URL).
		Msg("iniciando panel")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	cliente := api.NewCliente(cfg.Backend.URL, cfg.Backend.Timeout, log.Component("api"))
	productoGW := api.NewProductoClient(cliente)
	pedidoGW := api.NewPedidoClient(cliente)
	solicitudGW := api.NewSolicitudClient(cliente)

	// Conectividad: los borradores con envío pendiente se reintentan al reconectar.
	monitor := conexion.NewMonitor(
		conexion.SondeoHTTP(cfg.Backend.URL, cfg.Backend.Timeout),
		cfg.Backend.IntervaloConexion,
		log.Component("conexion"),
	)
	go monitor.Iniciar(ctx)

	reabastecimiento := solicitudes.NewReabastecimiento(
		solicitudGW, productoGW, cfg.Inventario.FactorReposicion, log.Component("reabastecimiento"),
	)
	dashboardUC := appanalytics.NewDashboardUseCase(pedidoGW, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	borradores := httpRouter.NewBorradores(cfg.Inventario.BorradorTTL)
	go borradores.Iniciar(ctx, time.Minute)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout + time.Second*10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Panel de inventario",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:          cfg.App.Name,
		Productos:        productoGW,
		Pedidos:          pedidoGW,
		Solicitudes:      solicitudGW,
		Red:              monitor,
		Reabastecimiento: reabastecimiento,
		DashboardUC:      dashboardUC,
		Borradores:       borradores,
		FactorCercano:    cfg.Inventario.FactorUmbralCercano,
		Log:              log.Component("handler"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Int("borradores_abiertos", borradores.Len()).Msg("panel detenido")
}
