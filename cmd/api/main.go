package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/yigit/edutube/internal/pkg/logger"
	"github.com/yigit/edutube/internal/server"
)

// @title EduTube LMS API
// @version 1.0
// @description Learning management API: lecture videos, class notes, quizzes and user administration.

// @contact.name API Support
// @contact.email support@edutube.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization, as "Bearer <token>"

func main() {
	configPath := flag.String("config", filepath.Join("configs", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(context.Background(), *configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
