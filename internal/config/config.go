package config

import (
	"image/png"
	"time"
)

// Config represents the application configuration
type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Server   ServerConfig `mapstructure:"server"`
	QR       QRConfig     `mapstructure:"qr"`
	Cache    CacheConfig  `mapstructure:"cache"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// QRConfig holds QR generation settings
type QRConfig struct {
	Encoder        string        `mapstructure:"encoder"`
	MaxDataLength  int           `mapstructure:"max_data_length"`
	CacheMaxAge    time.Duration `mapstructure:"cache_max_age"`
	PNGCompression string        `mapstructure:"png_compression"`
}

// CacheConfig holds the rendered-response cache configuration
type CacheConfig struct {
	Backend         string        `mapstructure:"backend"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Redis           RedisConfig   `mapstructure:"redis"`
}

// RedisConfig holds the redis connection settings for the redis backend
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

var pngCompressionLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
	"none":    png.NoCompression,
}

// PNGCompressionLevel returns the image/png level for PNGCompression.
func (c QRConfig) PNGCompressionLevel() png.CompressionLevel {
	if l, ok := pngCompressionLevels[c.PNGCompression]; ok {
		return l
	}
	return png.DefaultCompression
}
