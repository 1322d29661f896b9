package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/inventario-panel/internal/application/analytics"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/api"
	infrapdf "github.com/jhoicas/inventario-panel/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-panel/pkg/config"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// opciones de línea de comandos.
type opciones struct {
	formato string
	salida  string
}

func parseFlags(args []string, stderr io.Writer) (opciones, error) {
	fs := flag.NewFlagSet("reportes", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o opciones
	fs.StringVar(&o.formato, "formato", "pdf", "Formato de salida: pdf o json")
	fs.StringVar(&o.salida, "salida", "", "Archivo destino; '-' escribe en stdout (por defecto dashboard-<fecha>.<ext>)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	o.formato = strings.ToLower(strings.TrimSpace(o.formato))
	if o.formato != "pdf" && o.formato != "json" {
		return o, fmt.Errorf("formato %q no soportado (pdf o json)", o.formato)
	}
	return o, nil
}

// run exporta el dashboard. stdout solo recibe el informe cuando -salida es "-".
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.NewWithWriter(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}, stderr)

	cliente := api.NewCliente(cfg.Backend.URL, cfg.Backend.Timeout, log.Component("api"))
	uc := appanalytics.NewDashboardUseCase(api.NewPedidoClient(cliente), infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	var (
		data   []byte
		nombre string
	)
	switch o.formato {
	case "pdf":
		data, nombre, err = uc.DescargarPDF(ctx)
	case "json":
		data, nombre, err = dashboardJSON(ctx, uc)
	}
	if err != nil {
		return err
	}

	destino := o.salida
	if destino == "" {
		destino = nombre
	}
	if destino == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(destino, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", destino, err)
	}
	log.Info().Str("archivo", destino).Int("bytes", len(data)).Str("formato", o.formato).Msg("dashboard exportado")
	return nil
}

func dashboardJSON(ctx context.Context, uc *appanalytics.DashboardUseCase) ([]byte, string, error) {
	resumen, err := uc.GetSummary(ctx)
	if err != nil {
		return nil, "", err
	}
	data, err := json.MarshalIndent(resumen, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("serializar dashboard: %w", err)
	}
	return append(data, '\n'), fmt.Sprintf("dashboard-%s.json", resumen.Generado.Format(time.DateOnly)), nil
}
