package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores all configuration of the application.
// The values are read from a .env file in the given directory, then from the environment.
type Config struct {
	Beta          float64
	DBDriver      string
	DBSource      string
	ServerAddress string
	LogLevel      string
}

// LoadConfig reads configuration from path/.env and environment variables.
// A missing .env file is not an error.
func LoadConfig(path string) (config Config, err error) {
	err = godotenv.Load(filepath.Join(path, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, err
	}

	config = Config{
		Beta:          1.0,
		DBDriver:      getenv("DB_DRIVER", "postgres"),
		DBSource:      os.Getenv("DB_SOURCE"),
		ServerAddress: getenv("SERVER_ADDRESS", "0.0.0.0:8080"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}
	if s := os.Getenv("SABR_BETA"); s != "" {
		config.Beta, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return config, fmt.Errorf("SABR_BETA: %w", err)
		}
	}
	if config.Beta < 0 || config.Beta > 1 {
		return config, fmt.Errorf("SABR_BETA must lie in [0, 1], got %v", config.Beta)
	}
	return config, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
