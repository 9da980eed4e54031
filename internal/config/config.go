package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
)

// ConfigPathEnvVar names an optional YAML file layered between defaults and env.
const ConfigPathEnvVar = "CONFIG_FILE"

type Config struct {
	GinMode string `koanf:"gin_mode"`
	Port    string `koanf:"port"`

	DBDriver    string `koanf:"db_driver"`
	DatabaseURL string `koanf:"database_url"`
	DBHost      string `koanf:"db_host"`
	DBPort      string `koanf:"db_port"`
	DBUser      string `koanf:"db_user"`
	DBPassword  string `koanf:"db_password"`
	DBName      string `koanf:"db_name"`

	JWTSecret    string `koanf:"jwt_secret"`
	CookieSecure bool   `koanf:"cookie_secure"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`

	CORSOrigins []string `koanf:"cors_origins"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	LoginRatePerMinute int `koanf:"login_rate_per_minute"`
	LoginRateBurst     int `koanf:"login_rate_burst"`
}

func defaultConfig() Config {
	return Config{
		GinMode:            "debug",
		Port:               "8080",
		DBDriver:           "mysql",
		DBHost:             "localhost",
		DBPort:             "3306",
		DBUser:             "tripuser",
		DBName:             "trip_planner",
		CORSOrigins:        []string{"http://localhost:3000"},
		LogLevel:           "info",
		LogFormat:          "json",
		LoginRatePerMinute: 10,
		LoginRateBurst:     5,
	}
}

var sliceConfigPaths = []string{"cors_origins"}

// Load reads defaults, then the optional YAML file, then the environment
// (including a .env file when present), and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envTransformFunc(key string) string {
	return strings.ToLower(key)
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(raw, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// Validate reports missing required settings as a Configuration error.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return apierrors.Configuration("JWT_SECRET is not set")
	}

	switch c.DBDriver {
	case "mysql", "postgres":
		if c.DatabaseURL == "" && (c.DBHost == "" || c.DBName == "") {
			return apierrors.Configuration("DATABASE_URL or DB_HOST and DB_NAME must be set")
		}
	case "sqlite":
		if c.DatabaseURL == "" && c.DBName == "" {
			return apierrors.Configuration("DATABASE_URL or DB_NAME must be set for sqlite")
		}
	default:
		return apierrors.Configuration(fmt.Sprintf("unsupported DB_DRIVER %q", c.DBDriver))
	}

	if c.LoginRatePerMinute <= 0 || c.LoginRateBurst <= 0 {
		return apierrors.Configuration("LOGIN_RATE_PER_MINUTE and LOGIN_RATE_BURST must be positive")
	}
	return nil
}

// IsProduction reports whether the process runs in gin release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// SecureCookies reports whether session cookies carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.CookieSecure || c.IsProduction()
}

// DSN builds the driver-specific connection string unless DATABASE_URL is set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	case "sqlite":
		return c.DBName
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
}
