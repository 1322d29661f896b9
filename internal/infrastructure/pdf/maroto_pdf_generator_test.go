package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
)

func TestGenerarDashboard(t *testing.T) {
	resumen := &dto.DashboardDTO{
		Generado: time.Date(2024, 11, 12, 10, 30, 0, 0, time.UTC),
		Periodo:  "Noviembre 2024",
		KPIs: dto.KPIsDTO{
			PedidosSalientes:   2,
			PedidosEntrantes:   1,
			UnidadesVendidas:   9,
			UnidadesRepuestas:  10,
			Beneficio:          decimal.RequireFromString("87"),
			ProductoMasVendido: "Gafas",
		},
		Productos: []dto.ProductoVentasDTO{
			{Nombre: "Gafas", Precio: decimal.RequireFromString("12.5"), Vendidas: 4, Beneficio: decimal.NewFromInt(50)},
			{Nombre: "Gorra", Precio: decimal.NewFromInt(8), Vendidas: 4, Beneficio: decimal.NewFromInt(32)},
		},
		Pastel: []dto.PorcionDTO{
			{Nombre: "Gafas", Beneficio: decimal.NewFromInt(50), Color: "#FF6384"},
			{Nombre: "Gorra", Beneficio: decimal.NewFromInt(32), Color: "#5DADE2"},
		},
	}

	out, err := NewMarotoPDFGenerator("Inventario").GenerarDashboard(context.Background(), resumen)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerarDashboard_SinDatos(t *testing.T) {
	g := NewMarotoPDFGenerator("")

	out, err := g.GenerarDashboard(context.Background(), &dto.DashboardDTO{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = g.GenerarDashboard(context.Background(), nil)
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":         "0,00",
		"12.5":      "12,50",
		"1234.5":    "1.234,50",
		"1000000":   "1.000.000,00",
		"-25000.99": "-25.000,99",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, &props.Color{Red: 255, Green: 99, Blue: 132}, hexColor("#FF6384"))
	assert.Equal(t, &props.Color{Red: 0, Green: 0, Blue: 139}, hexColor("#00008B"))
	assert.Same(t, colorGray, hexColor("rojo"))
}
