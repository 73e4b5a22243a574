package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sam247/disclosurely-sub001/internal/util"
)

// EchoServer configures the HTTP listener.
type EchoServer struct {
	ListenAddress string
}

// Database configures the PostgreSQL connection.
type Database struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	SSLMode  string
}

// ConnectionString assembles the lib/pq DSN.
func (c Database) ConnectionString() string {
	parts := []string{
		fmt.Sprintf("host=%s", c.Host),
		fmt.Sprintf("port=%d", c.Port),
		fmt.Sprintf("user=%s", c.Username),
		fmt.Sprintf("password=%s", c.Password),
		fmt.Sprintf("dbname=%s", c.Database),
		fmt.Sprintf("sslmode=%s", c.SSLMode),
	}

	return strings.Join(parts, " ")
}

// Redis configures the shared rate-limit counter store. When disabled the
// limiter falls back to an in-process store (single-instance deployments and
// local development only).
type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// Crypto configures tenant payload encryption. An empty Secret does not stop
// boot; it fails readiness and every individual encrypt/decrypt call.
type Crypto struct {
	Secret string
}

// PIIDetector configures the scanner, including the optional external
// NLP-based backend selected per organization via feature flag.
type PIIDetector struct {
	ExternalEndpoint string
	ExternalAPIKey   string
	ExternalTimeout  time.Duration
	ContextWindow    int
}

// Logger configures zerolog.
type Logger struct {
	Level              string
	PrettyPrintConsole bool
}

// Server is the full service configuration.
type Server struct {
	Echo     EchoServer
	Database Database
	Redis    Redis
	Crypto   Crypto
	PII      PIIDetector
	Logger   Logger
}

// DefaultServiceConfigFromEnv returns the server config populated from the
// environment with production defaults.
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Echo: EchoServer{
			ListenAddress: util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
		},
		Database: Database{
			Host:     util.GetEnv("PGHOST", "postgres"),
			Port:     util.GetEnvAsInt("PGPORT", 5432),
			Username: util.GetEnv("PGUSER", "disclosurely"),
			Password: util.GetEnv("PGPASSWORD", ""),
			Database: util.GetEnv("PGDATABASE", "disclosurely"),
			SSLMode:  util.GetEnv("PGSSLMODE", "disable"),
		},
		Redis: Redis{
			Enabled:  util.GetEnvAsBool("SERVER_REDIS_ENABLED", true),
			Addr:     util.GetEnv("SERVER_REDIS_ADDR", "redis:6379"),
			Password: util.GetEnv("SERVER_REDIS_PASSWORD", ""),
			DB:       util.GetEnvAsInt("SERVER_REDIS_DB", 0),
		},
		Crypto: Crypto{
			Secret: util.GetEnv("SERVER_ENCRYPTION_SECRET", ""),
		},
		PII: PIIDetector{
			ExternalEndpoint: util.GetEnv("SERVER_PII_EXTERNAL_ENDPOINT", ""),
			ExternalAPIKey:   util.GetEnv("SERVER_PII_EXTERNAL_API_KEY", ""),
			ExternalTimeout:  util.GetEnvAsDuration("SERVER_PII_EXTERNAL_TIMEOUT", 5*time.Second),
			ContextWindow:    util.GetEnvAsInt("SERVER_PII_CONTEXT_WINDOW", 30),
		},
		Logger: Logger{
			Level:              util.GetEnv("SERVER_LOGGER_LEVEL", "info"),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
	}
}
