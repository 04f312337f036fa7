package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo .env).
type Config struct {
	App    AppConfig
	CIDB   PostgresConfig // diarco_data: órdenes Connexa, stock, maestros
	ERPDB  MSSQLConfig    // SGM (SQL Server): cabeceras de OC
	Redis  RedisConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Report ReportConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// PostgresConfig conexión a PostgreSQL.
// Si DatabaseURL no está vacío se usa como connection string completo.
type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DatabaseURL si está definido, si no
// el construido campo a campo.
func (c PostgresConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MSSQLConfig conexión a SQL Server (SGM).
type MSSQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ConnectionString devuelve la URL sqlserver:// para go-mssqldb.
func (c MSSQLConfig) ConnectionString() string {
	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		RawQuery: url.Values{"database": {c.DBName}}.Encode(),
	}
	return u.String()
}

// RedisConfig caché de extracciones. Addr vacío desactiva la caché y los
// repositorios se consultan directo.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig validación de tokens de acceso a la API.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReportConfig parámetros del motor de reportes.
type ReportConfig struct {
	// Timezone zona de negocio para truncar meses y semanas.
	Timezone string
	// ExtractorTimeout timeout independiente de cada extractor (CI y SGM).
	ExtractorTimeout time.Duration
	// CacheTTL vigencia de las extracciones cacheadas. Siempre acotada: la
	// caché jamás se deja sin vencimiento.
	CacheTTL time.Duration
}

// Load lee la configuración desde variables de entorno y opcionalmente desde
// .env. Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // el archivo es opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "compras-monitor"),
		},
		CIDB: PostgresConfig{
			DatabaseURL: getString(v, "CI_DATABASE_URL", ""),
			Host:        getString(v, "CI_DB_HOST", "localhost"),
			Port:        getInt(v, "CI_DB_PORT", 5432),
			User:        getString(v, "CI_DB_USER", "postgres"),
			Password:    getString(v, "CI_DB_PASSWORD", ""),
			DBName:      getString(v, "CI_DB_NAME", "diarco_data"),
			SSLMode:     getString(v, "CI_DB_SSLMODE", "disable"),
		},
		ERPDB: MSSQLConfig{
			Host:     getString(v, "ERP_DB_HOST", "localhost"),
			Port:     getInt(v, "ERP_DB_PORT", 1433),
			User:     getString(v, "ERP_DB_USER", "sa"),
			Password: getString(v, "ERP_DB_PASSWORD", ""),
			DBName:   getString(v, "ERP_DB_NAME", "DiarcoP"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "compras-monitor"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Report: ReportConfig{
			Timezone:         getString(v, "REPORT_TIMEZONE", "America/Argentina/Buenos_Aires"),
			ExtractorTimeout: getDuration(v, "REPORT_EXTRACTOR_TIMEOUT", 30*time.Second),
			CacheTTL:         getDuration(v, "REPORT_CACHE_TTL", 10*time.Minute),
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
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		if d, err := time.ParseDuration(v.GetString(key)); err == nil {
			return d
		}
	}
	return def
}
