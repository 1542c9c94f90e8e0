package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/config"
	"github.com/composersite/catalog/internal/server"
)

// main runs the API against the local sqlite store with debug logging.
func main() {
	logrus.SetLevel(logrus.DebugLevel)

	cfg := config.LoadConfig()
	if os.Getenv("STORE_DRIVER") == "" {
		cfg.Store.Driver = "sqlite"
		cfg.Store.DSN = ".data/debug.db"
	}

	err := server.Start(cfg)
	if err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}
