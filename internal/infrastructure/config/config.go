package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Shutdown ShutdownConfig `koanf:"shutdown"`
	Log      LogConfig      `koanf:"log"`
	OTLP     OTLPConfig     `koanf:"otel"`
}

type ServerConfig struct {
	Port         int           `koanf:"port"`
	Host         string        `koanf:"host"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type OTLPConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
	Environment string `koanf:"environment"`
}

// Address returns the host:port the HTTP server listens on
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Sources lists the optional files consulted by Load
type Sources struct {
	YAMLFile string
	EnvFile  string
}

// DefaultSources are the files read by LoadConfig
var DefaultSources = Sources{YAMLFile: "config.yaml", EnvFile: ".env"}

var defaults = map[string]any{
	"server.host":          "0.0.0.0",
	"server.port":          8080,
	"server.read_timeout":  "10s",
	"server.write_timeout": "10s",
	"server.idle_timeout":  "60s",
	"shutdown.timeout":     "5s",
	"log.level":            "debug",
	"otel.enabled":         true,
	"otel.endpoint":        "localhost:4317",
	"otel.service_name":    "catalog-api",
	"otel.environment":     "development",
}

// envKeys maps environment variable names onto configuration keys
var envKeys = map[string]string{
	"SERVER_HOST":                 "server.host",
	"SERVER_PORT":                 "server.port",
	"SERVER_READ_TIMEOUT":         "server.read_timeout",
	"SERVER_WRITE_TIMEOUT":        "server.write_timeout",
	"SERVER_IDLE_TIMEOUT":         "server.idle_timeout",
	"SHUTDOWN_TIMEOUT":            "shutdown.timeout",
	"LOG_LEVEL":                   "log.level",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENVIRONMENT":            "otel.environment",
}

// envKey returns the configuration key for an environment variable, or "" to skip it
func envKey(name string) string {
	return envKeys[name]
}

// LoadConfig loads configuration from defaults, config.yaml, .env and the environment
func LoadConfig() (*Config, error) {
	return Load(DefaultSources)
}

// Load layers defaults, the optional files in src and the process environment, highest priority last
func Load(src Sources) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if src.YAMLFile != "" {
		if err := k.Load(file.Provider(src.YAMLFile), yaml.Parser()); err != nil && !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config file '%s': %v", src.YAMLFile, err)
		}
	}

	if src.EnvFile != "" {
		if envFileMap, err := godotenv.Read(src.EnvFile); err == nil {
			envMap := make(map[string]any)
			for name, value := range envFileMap {
				if key := envKey(name); key != "" {
					envMap[key] = value
				}
			}
			if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
				log.Printf("WARN: error loading .env config: %v", err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("WARN: error reading .env file: %v", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid HTTP server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid HTTP server read timeout: %v", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid HTTP server write timeout: %v", c.Server.WriteTimeout)
	}
	if c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("invalid HTTP server idle timeout: %v", c.Server.IdleTimeout)
	}
	if c.Shutdown.Timeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %v", c.Shutdown.Timeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	if c.OTLP.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}
	return nil
}
