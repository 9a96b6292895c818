package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	apperrors "github.com/cristianadrielbraun/qrapi/internal/errors"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. QRAPI_SERVER_ADDR or QRAPI_CACHE_BACKEND.
const EnvPrefix = "QRAPI"

// Load loads the configuration from defaults, an optional config file and
// environment variables, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &apperrors.ConfigError{Section: "file", Message: fmt.Sprintf("read %s: %v", path, err)}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, &apperrors.ConfigError{Section: "decode", Message: err.Error()}
	}

	// Platforms such as Heroku or Cloud Run only hand out PORT.
	if _, set := os.LookupEnv(EnvPrefix + "_SERVER_ADDR"); !set && !v.InConfig("server.addr") {
		if port := os.Getenv("PORT"); port != "" {
			cfg.Server.Addr = ":" + port
		}
	}

	normalize(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("qr.encoder", "skip2")
	v.SetDefault("qr.max_data_length", 900)
	v.SetDefault("qr.cache_max_age", "1h")
	v.SetDefault("qr.png_compression", "default")

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.cleanup_interval", "15m")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
}

func normalize(cfg *Config) {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Server.Addr = strings.TrimSpace(cfg.Server.Addr)
	cfg.QR.Encoder = strings.ToLower(strings.TrimSpace(cfg.QR.Encoder))
	cfg.QR.PNGCompression = strings.ToLower(strings.TrimSpace(cfg.QR.PNGCompression))
	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
	cfg.Cache.Redis.Addr = strings.TrimSpace(cfg.Cache.Redis.Addr)
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return &apperrors.ConfigError{Section: "log_level", Message: err.Error()}
	}

	if cfg.Server.Addr == "" {
		return &apperrors.ConfigError{Section: "server", Message: "addr is required"}
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 || cfg.Server.ShutdownTimeout <= 0 {
		return &apperrors.ConfigError{Section: "server", Message: "timeouts must be positive"}
	}

	switch cfg.QR.Encoder {
	case "skip2", "yeqown":
	default:
		return &apperrors.ConfigError{Section: "qr", Message: fmt.Sprintf("unknown encoder %q", cfg.QR.Encoder)}
	}
	if cfg.QR.MaxDataLength <= 0 {
		return &apperrors.ConfigError{Section: "qr", Message: "max_data_length must be positive"}
	}
	if cfg.QR.CacheMaxAge < 0 {
		return &apperrors.ConfigError{Section: "qr", Message: "cache_max_age must not be negative"}
	}
	if _, ok := pngCompressionLevels[cfg.QR.PNGCompression]; !ok {
		return &apperrors.ConfigError{Section: "qr", Message: fmt.Sprintf("unknown png_compression %q", cfg.QR.PNGCompression)}
	}

	switch cfg.Cache.Backend {
	case "memory", "none":
	case "redis":
		if cfg.Cache.Redis.Addr == "" {
			return &apperrors.ConfigError{Section: "cache", Message: "redis.addr is required for the redis backend"}
		}
	default:
		return &apperrors.ConfigError{Section: "cache", Message: fmt.Sprintf("unknown backend %q", cfg.Cache.Backend)}
	}
	if cfg.Cache.Backend != "none" && cfg.Cache.TTL <= 0 {
		return &apperrors.ConfigError{Section: "cache", Message: "ttl must be positive"}
	}

	return nil
}
