package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/notehive/notehive-server/internal/pkg/logger" // Still needed for initial error logging
	"github.com/notehive/notehive-server/internal/server"
)

// @title NoteHive API
// @version 1.0
// @description API for NoteHive, a study notes library for medical students

// @contact.name API Support
// @contact.email support@notehive.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Bearer access token for editor endpoints

func main() {
	// Load .env if present; containers set the environment directly
	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("No .env file loaded")
	}

	// Initialize the server with all its dependencies
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	// If Run completes without error, graceful shutdown was successful
	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
