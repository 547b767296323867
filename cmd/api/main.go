package main

import (
	"os"

	"github.com/derya/castlink/internal/pkg/logger" // Still needed for initial error logging
	"github.com/derya/castlink/internal/server"
)

// @title CastLink API
// @version 1.0
// @description API for creating casting calls, collecting applications through shareable links, and watching them arrive live.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@castlink.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize the server with all its dependencies
	srv, err := server.NewServer()
	if err != nil {
		// Use the default logger setup by the logger package's init
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
