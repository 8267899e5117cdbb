package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config de la API. Se lee de variables de entorno (y opcionalmente de un .env).
type Config struct {
	Port         string        `env:"PORT,default=3001"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=5s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=10s"`

	// Store: DB_DSN => postgres; PETS_FILE/HEROES_FILE => json; si no, memoria.
	DatabaseDSN string `env:"DB_DSN"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE,default=false"`
	PetsFile    string `env:"PETS_FILE"`
	HeroesFile  string `env:"HEROES_FILE"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=2h"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
	AppName   string `env:"APP_NAME,default=superhero-pets"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`

	LoginRatePerSec float64 `env:"LOGIN_RATE_PER_SEC,default=5"`
	LoginBurst      int     `env:"LOGIN_BURST,default=10"`
}

type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StoreJSONFile StoreKind = "jsonfile"
	StorePostgres StoreKind = "postgres"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Load carga envFiles (si existen) y decodifica el entorno.
// Las variables ya definidas en el entorno tienen prioridad sobre el .env.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.LoginRatePerSec <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_SEC must be positive, got %v", c.LoginRatePerSec)
	}
	return nil
}

func (c Config) Store() StoreKind {
	switch {
	case strings.TrimSpace(c.DatabaseDSN) != "":
		return StorePostgres
	case strings.TrimSpace(c.PetsFile) != "" || strings.TrimSpace(c.HeroesFile) != "":
		return StoreJSONFile
	default:
		return StoreMemory
	}
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

// AllowedOrigins separa CORS_ALLOWED_ORIGINS por comas.
func (c Config) AllowedOrigins() []string {
	out := make([]string, 0)
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = append(out, "*")
	}
	return out
}
