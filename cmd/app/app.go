package main

import (
	"os"

	"github.com/DRSN-tech/catalog-backend/internal/app"
	config "github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

//	@title			Catalog Admin API
//	@version		1.0
//	@description	Администрирование категорий каталога
//	@host			localhost:8080
//	@BasePath		/api/v1
func main() {
	logCfg, err := config.LoadLogCfg()
	if err != nil {
		logger.NewZapLogger("info").Errorf(err, "failed to load log config")
		os.Exit(1)
	}

	log := logger.NewZapLogger(logCfg.Level)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		_ = log.Sync()
		os.Exit(1)
	}
}
