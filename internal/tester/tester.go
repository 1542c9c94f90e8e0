package tester

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/composersite/catalog/internal/cache"
	"github.com/composersite/catalog/internal/compress"
	"github.com/composersite/catalog/internal/model"
)

const (
	testPath = "../../.test/"
)

var (
	db     *gorm.DB
	dbFile = filepath.Join(testPath, "db", fmt.Sprintf("catalog-%d.db", os.Getpid()))
)

// Setup opens a fresh sqlite content store for the calling test binary.
func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(filepath.Dir(dbFile), os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(dbFile), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

// Reset removes every stored document.
func Reset() {
	if err := db.Exec("DELETE FROM documents").Error; err != nil {
		panic(err)
	}
}

func RemoveDBFile() {
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	err := os.Remove(dbFile)
	if err != nil && !os.IsNotExist(err) {
		panic(err)
	}
}

// Cache returns a redis cache when REDIS_ADDR is set, otherwise an
// in-memory one.
func Cache() cache.Cache {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return cache.NewRedis(addr, os.Getenv("REDIS_PASSWORD"), 0, compress.NewLZ4())
	}
	return cache.NewMemory()
}
