package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
)

func backendFalso(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("tipo") {
		case "saliente":
			_, _ = w.Write([]byte(`[{"id":1,"fecha":"2024-11-02T10:00:00Z","tipo":"saliente","Productos":[
				{"id":1,"nombre":"Gafas","precio":10,"stock":3,"ProductoPedido":{"cantidad":2}}]}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_JSONPorStdout(t *testing.T) {
	srv := backendFalso(t)
	t.Setenv("BACKEND_URL", srv.URL)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-formato", "json", "-salida", "-"}, &stdout, &stderr)
	require.NoError(t, err)

	var out dto.DashboardDTO
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, 2, out.KPIs.UnidadesVendidas)
	assert.Equal(t, "Gafas", out.KPIs.ProductoMasVendido)
}

func TestRun_PDFAArchivo(t *testing.T) {
	srv := backendFalso(t)
	t.Setenv("BACKEND_URL", srv.URL)
	destino := filepath.Join(t.TempDir(), "informe.pdf")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-salida", destino}, &stdout, &stderr))

	data, err := os.ReadFile(destino)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Zero(t, stdout.Len(), "stdout queda libre cuando se escribe a archivo")
}

func TestRun_BackendCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("BACKEND_URL", srv.URL)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-formato", "json", "-salida", "-"}, &stdout, &stderr)
	assert.Error(t, err)
	assert.Zero(t, stdout.Len())
}

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer

	o, err := parseFlags(nil, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "pdf", o.formato)

	o, err = parseFlags([]string{"-formato", " JSON "}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "json", o.formato)

	_, err = parseFlags([]string{"-formato", "csv"}, &stderr)
	assert.Error(t, err)
}
