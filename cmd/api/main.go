package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/yigit/quizapi/internal/config"
	"github.com/yigit/quizapi/internal/pkg/logger"
	"github.com/yigit/quizapi/internal/server"
)

func main() {
	// A local .env file is optional; real environment variables still win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to read .env file")
	}

	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")

	srv, err := server.NewServer(configPath)
	if err != nil {
		// Details are logged inside the bootstrap steps
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
