package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración del panel (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	Backend    BackendConfig
	Inventario InventarioConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP del panel.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig configuración de la API REST de inventario que consume el panel.
type BackendConfig struct {
	URL               string
	Timeout           time.Duration // 0 = sin timeout
	IntervaloConexion time.Duration // cada cuánto se sondea la conectividad
}

// InventarioConfig parámetros de negocio del lado cliente.
type InventarioConfig struct {
	FactorUmbralCercano decimal.Decimal // stock ∈ [umbral, umbral × factor] se considera "cerca del umbral"
	FactorReposicion    decimal.Decimal // stock ideal = umbral × factor al generar solicitudes
	BorradorTTL         time.Duration   // vida de un borrador de pedido sin actividad
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, BACKEND_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cercano, err := getDecimal(v, "UMBRAL_CERCANO_FACTOR", "1.2")
	if err != nil {
		return nil, err
	}
	reposicion, err := getDecimal(v, "REPOSICION_FACTOR", "1.5")
	if err != nil {
		return nil, err
	}
	if !cercano.GreaterThanOrEqual(decimal.NewFromInt(1)) || !reposicion.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("config: los factores de umbral y reposición deben ser >= 1")
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-panel"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Backend: BackendConfig{
			URL:               strings.TrimRight(getString(v, "BACKEND_URL", "http://localhost:3000"), "/"),
			Timeout:           time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 15)) * time.Second,
			IntervaloConexion: time.Duration(getInt(v, "CONEXION_INTERVALO_SEGUNDOS", 5)) * time.Second,
		},
		Inventario: InventarioConfig{
			FactorUmbralCercano: cercano,
			FactorReposicion:    reposicion,
			BorradorTTL:         time.Duration(getInt(v, "BORRADOR_TTL_MINUTOS", 30)) * time.Minute,
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getDecimal(v *viper.Viper, key, def string) (decimal.Decimal, error) {
	raw := getString(v, key, def)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s inválido (%q): %w", key, raw, err)
	}
	return d, nil
}
