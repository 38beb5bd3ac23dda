package main

import (
	"log"

	"github.com/arname-match/internal/config"
	"github.com/arname-match/internal/web"
)

func main() {
	config.LoadEnv()

	cfg := web.DefaultConfig()
	cfg.Server.Host = config.GetEnv("WEB_HOST", cfg.Server.Host)
	cfg.Server.Port = config.GetEnvInt("WEB_PORT", cfg.Server.Port)
	cfg.Database.URL = config.GetEnv("DATABASE_URL", cfg.Database.URL)
	cfg.Database.MaxConnections = config.GetEnvInt("DB_MAX_CONNECTIONS", cfg.Database.MaxConnections)
	cfg.Features.CorrectionEnabled = config.GetEnvBool("SYMSPELL_ENABLED", cfg.Features.CorrectionEnabled)

	server, err := web.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
