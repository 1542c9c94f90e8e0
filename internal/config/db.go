package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/composersite/catalog/internal/cache"
	"github.com/composersite/catalog/internal/compress"
	"github.com/composersite/catalog/internal/legacy"
	"github.com/composersite/catalog/internal/store"
)

// GetDb opens a gorm connection for driver, postgres or sqlite.
func GetDb(driver, dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), gormConfig)
	case "sqlite":
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, err
			}
		}
		return gorm.Open(sqlite.Open(dsn), gormConfig)
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownDriver, driver)
	}
}

// LegacySource returns the source the export reads from.
func (c *Config) LegacySource() (legacy.Source, error) {
	switch c.Legacy.Source {
	case "ddev":
		return legacy.NewCommandSource(c.Legacy.Dir), nil
	case "postgres", "sqlite":
		if c.Legacy.DSN == "" {
			return nil, &MissingEnvError{Name: "LEGACY_DSN"}
		}
		db, err := GetDb(c.Legacy.Source, c.Legacy.DSN)
		if err != nil {
			return nil, err
		}
		return legacy.NewGormSource(db), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, c.Legacy.Source)
	}
}

// OpenStore returns the configured content store, wrapped in a cache when
// REDIS_ADDR is set.
func (c *Config) OpenStore() (store.Store, error) {
	var s store.Store
	switch c.Store.Driver {
	case "sanity":
		if err := c.RequireProject(); err != nil {
			return nil, err
		}
		s = store.NewSanityStore(c.Sanity)
	default:
		db, err := GetDb(c.Store.Driver, c.Store.DSN)
		if err != nil {
			return nil, err
		}
		s = store.NewGormStore(db)
	}

	cached := c.OpenCache()
	if _, off := cached.(cache.Nop); off {
		return s, nil
	}
	return store.NewCachedStore(s, cached, c.cacheTTL()), nil
}

// OpenCache returns the redis cache at REDIS_ADDR, or Nop when it is unset.
func (c *Config) OpenCache() cache.Cache {
	if c.Redis.Addr == "" {
		return cache.Nop{}
	}
	logrus.Infof("caching store reads in redis at %s", c.Redis.Addr)
	return cache.NewRedis(c.Redis.Addr, c.Redis.Password, c.Redis.DB, compress.ByName(c.Redis.Compression))
}

func (c *Config) cacheTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 5 * time.Minute
	}
	return c.Redis.TTL
}
