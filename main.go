// @title Course Platform Admin Gateway API
// @version 1.0
// @description Headless gateway the staff dashboard talks to. Normalizes the upstream
// @description course-platform API, owns the cascading selection pipeline and keeps an audit log.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"course_admin_gateway/internal/app"
	"course_admin_gateway/internal/config"
	"course_admin_gateway/pkg/configwatcher"
	"course_admin_gateway/pkg/logger"
	"flag"
	"log"
	"path/filepath"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run audit schema migration and exit")
	migrate := flag.Bool("migrate", false, "force audit schema migration on startup")
	configPath := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("audit schema migration finished, exiting")
		return
	}

	go configwatcher.WatchConfig(filepath.Join(*configPath, "config.yaml"), application.ApplyConfig)

	application.Run()
}
