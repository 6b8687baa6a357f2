package configs

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config is the process configuration, read from the environment after
// an optional .env file has been loaded into it.
type Config struct {
	Env        string
	Port       string
	MongoURI   string
	MongoDB    string
	Store      string
	JWTSecret  string
	JWTExpire  time.Duration
	CORSOrigin string
	LogLevel   slog.Level
	Email      EmailConfig

	// EphemeralSecret is set when JWTSecret was generated for this process
	// because JWT_SECRET was empty. Tokens stop verifying on restart.
	EphemeralSecret bool
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Configured reports whether host, user and password are all set.
func (e EmailConfig) Configured() bool {
	return e.Host != "" && e.User != "" && e.Password != ""
}

// Sender is the From address, falling back to the SMTP user.
func (e EmailConfig) Sender() string {
	if e.From != "" {
		return e.From
	}
	return e.User
}

func (c Config) IsDevelopment() bool { return c.Env != EnvProduction }

// Load reads envFile (missing files are ignored) and then the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Env:        getEnv("APP_ENV", EnvDevelopment),
		Port:       getEnv("PORT", "5000"),
		MongoURI:   getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGODB_DB", "fitnessgym"),
		Store:      getEnv("STORE", StoreMongo),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		Email: EmailConfig{
			Host:     os.Getenv("EMAIL_HOST"),
			User:     os.Getenv("EMAIL_USER"),
			Password: os.Getenv("EMAIL_PASS"),
			From:     os.Getenv("EMAIL_FROM"),
		},
	}

	var err error
	if cfg.JWTExpire, err = time.ParseDuration(getEnv("JWT_EXPIRE", "720h")); err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRE: %w", err)
	}
	if cfg.Email.Port, err = strconv.Atoi(getEnv("EMAIL_PORT", "587")); err != nil {
		return Config{}, fmt.Errorf("EMAIL_PORT: %w", err)
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("APP_ENV must be %s or %s, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	switch c.Store {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE must be %s or %s, got %q", StoreMongo, StoreMemory, c.Store)
	}
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required in production")
		}
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("generate JWT secret: %w", err)
		}
		c.JWTSecret = secret
		c.EphemeralSecret = true
	}
	if c.JWTExpire <= 0 {
		return errors.New("JWT_EXPIRE must be positive")
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
