package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Holded    HoldedConfig
	GCS       GCSConfig
	Reconcile ReconcileConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// HoldedConfig credenciales y URL base de la API de Holded.
type HoldedConfig struct {
	APIKey  string
	BaseURL string // base de la API invoicing, sin barra final
}

// GCSConfig acceso a Google Cloud Storage.
// CredentialsBase64 es el JSON de la cuenta de servicio codificado en base64
// (formato heredado del despliegue: una sola variable de entorno).
type GCSConfig struct {
	CredentialsBase64 string
	BucketName        string
}

// Configured indica si hay credenciales presentes.
func (c GCSConfig) Configured() bool {
	return c.CredentialsBase64 != ""
}

// ReconcileConfig parámetros del pipeline de reconciliación.
type ReconcileConfig struct {
	// WarehouseAliases: alias extra de terminal -> warehouse_id, además de
	// los nombres del propio listado de almacenes. Se configura como objeto
	// JSON en WAREHOUSE_ALIASES.
	WarehouseAliases map[string]string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, HOLDED_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	aliases, err := parseAliases(getString(v, "WAREHOUSE_ALIASES", ""))
	if err != nil {
		return nil, fmt.Errorf("WAREHOUSE_ALIASES: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "glop-holded-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Holded: HoldedConfig{
			APIKey:  getString(v, "HOLDED_API_KEY", ""),
			BaseURL: strings.TrimSuffix(getString(v, "HOLDED_BASE_URL", "https://api.holded.com/api/invoicing/v1"), "/"),
		},
		GCS: GCSConfig{
			CredentialsBase64: getString(v, "GCS_CREDENTIALS_BASE64", ""),
			BucketName:        getString(v, "GCS_BUCKET_NAME", "alternativecbd-glop-reports"),
		},
		Reconcile: ReconcileConfig{
			WarehouseAliases: aliases,
		},
	}

	return cfg, nil
}

// parseAliases interpreta el objeto JSON {"alias": "warehouse_id", ...}.
func parseAliases(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	out := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("objeto JSON inválido: %w", err)
	}
	return out, nil
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
