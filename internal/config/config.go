// Package config reads the environment into a Config and builds the
// connections it describes.
package config

import (
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"

	"github.com/composersite/catalog/internal/store"
)

const (
	DefaultAPIVersion = "2025-11-21"
	DefaultHTTPPort   = "4001"
)

type LegacyConfig struct {
	// Source is one of ddev, postgres or sqlite.
	Source     string
	DSN        string
	Dir        string
	AssetsPath string
}

type StoreConfig struct {
	// Driver is one of sanity, postgres or sqlite.
	Driver string
	DSN    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration

	// Compression names the codec of cached values: gzip, brotli, lz4 or none.
	Compression string
}

type KafkaConfig struct {
	Brokers string
	Topic   string
}

type Config struct {
	Env            string
	Sanity         store.SanityConfig
	Legacy         LegacyConfig
	Store          StoreConfig
	Redis          RedisConfig
	Kafka          KafkaConfig
	HTTPPort       string
	CookieSecure   bool
	RepairSchedule string
	// AllowedOrigins lists the cross-origin sites that may call the API with
	// credentials. Empty means same-origin only.
	AllowedOrigins []string
}

// LoadConfig reads the configuration from the environment and a .env file
// in the working directory.
func LoadConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("SANITY_API_VERSION", DefaultAPIVersion)
	v.SetDefault("LEGACY_SOURCE", "ddev")
	v.SetDefault("LEGACY_DIR", ".")
	v.SetDefault("LEGACY_ASSETS_PATH", "public")
	v.SetDefault("STORE_DRIVER", "sqlite")
	v.SetDefault("STORE_DSN", ".data/catalog.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CACHE_COMPRESSION", "gzip")
	v.SetDefault("HTTP_PORT", DefaultHTTPPort)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("KAFKA_TOPIC", "catalog.documents")

	env := v.GetString("ENV")
	return &Config{
		Env: env,
		Sanity: store.SanityConfig{
			ProjectID:  firstSet(v, "SANITY_PROJECT_ID", "NEXT_PUBLIC_SANITY_PROJECT_ID"),
			Dataset:    firstSet(v, "SANITY_DATASET", "NEXT_PUBLIC_SANITY_DATASET"),
			Token:      v.GetString("SANITY_TOKEN"),
			APIVersion: firstSet(v, "NEXT_PUBLIC_SANITY_API_VERSION", "SANITY_API_VERSION"),
			BaseURL:    v.GetString("SANITY_BASE_URL"),
		},
		Legacy: LegacyConfig{
			Source:     strings.ToLower(v.GetString("LEGACY_SOURCE")),
			DSN:        v.GetString("LEGACY_DSN"),
			Dir:        v.GetString("LEGACY_DIR"),
			AssetsPath: v.GetString("LEGACY_ASSETS_PATH"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
			DSN:    v.GetString("STORE_DSN"),
		},
		Redis: RedisConfig{
			Addr:        v.GetString("REDIS_ADDR"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			TTL:         v.GetDuration("CACHE_TTL"),
			Compression: strings.ToLower(v.GetString("CACHE_COMPRESSION")),
		},
		Kafka: KafkaConfig{
			Brokers: v.GetString("KAFKA_BROKERS"),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		HTTPPort:       v.GetString("HTTP_PORT"),
		CookieSecure:   v.GetBool("COOKIE_SECURE") || env == "production",
		RepairSchedule: v.GetString("REPAIR_SCHEDULE"),
		AllowedOrigins: splitList(v.GetString("CORS_ORIGINS")),
	}
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func firstSet(v *viper.Viper, keys ...string) string {
	for _, key := range keys {
		if value := v.GetString(key); value != "" {
			return value
		}
	}
	return ""
}

// RequireProject checks that the hosted project and dataset are known.
func (c *Config) RequireProject() error {
	if c.Sanity.ProjectID == "" {
		return &MissingEnvError{Name: "SANITY_PROJECT_ID"}
	}
	if c.Sanity.Dataset == "" {
		return &MissingEnvError{Name: "SANITY_DATASET"}
	}
	return nil
}

// RequireToken checks that writes to the hosted project are possible.
func (c *Config) RequireToken() error {
	if err := c.RequireProject(); err != nil {
		return err
	}
	if c.Sanity.Token == "" {
		return &MissingEnvError{Name: "SANITY_TOKEN"}
	}
	return nil
}

// UsesSanity reports whether the content store is the hosted dataset.
func (c *Config) UsesSanity() bool {
	return c.Store.Driver == "sanity"
}
