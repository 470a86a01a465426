package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains client configuration parameters.
type Config struct {
	LogLevel int      `env:"LOG_LEVEL" envDefault:"4"`
	LogFile  string   `env:"LOG_FILE"`
	API      API      `envPrefix:"API_"`
	Database Database `envPrefix:"DATABASE_"`
	Secrets  Secrets  `envPrefix:"SECRETS_"`
	Storage  Storage  `envPrefix:"MINIO_"`
	Metrics  Metrics  `envPrefix:"METRICS_"`
}

// API contains remote API client parameters.
type API struct {
	BaseURL  string        `env:"BASE_URL" envDefault:"https://truck-api.ngbr.avesweb.ru/api"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"30s"`
	CAFile   string        `env:"CA_FILE"`
	CertFile string        `env:"CERT_FILE"`
	KeyFile  string        `env:"KEY_FILE"`
}

// Database contains local contractor cache parameters.
type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DSN" envDefault:"counterparty.db"`
}

// Secrets contains credential storage parameters.
type Secrets struct {
	Backend      string `env:"BACKEND" envDefault:"file"`
	Dir          string `env:"DIR" envDefault:".counterparty/secrets"`
	IdentityFile string `env:"IDENTITY_FILE" envDefault:".counterparty/identity.txt"`
}

// Storage contains object storage parameters for the minio secrets backend.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"counterparty-access-key"`
	SecretKey string `env:"SECRET_KEY" envDefault:"counterparty-secret-key"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"counterparty-secrets"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Metrics contains the optional metrics endpoint parameters. The endpoint is
// disabled when Addr is empty.
type Metrics struct {
	Addr     string `env:"ADDR"`
	CertFile string `env:"CERT_FILE"`
	KeyFile  string `env:"KEY_FILE"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	return Load("")
}

// Load reads an optional dotenv file and then parses the environment.
// Variables already set in the environment win over the file.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath == "" {
		dotenvPath = ".env"
	}
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Secrets.Backend {
	case "file", "minio", "memory":
	default:
		return fmt.Errorf("unsupported secrets backend %q", c.Secrets.Backend)
	}

	if (c.API.CertFile == "") != (c.API.KeyFile == "") {
		return fmt.Errorf("API_CERT_FILE and API_KEY_FILE must be set together")
	}

	if (c.Metrics.CertFile == "") != (c.Metrics.KeyFile == "") {
		return fmt.Errorf("METRICS_CERT_FILE and METRICS_KEY_FILE must be set together")
	}

	return nil
}
