// Package config loads settings from the environment, after an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/edp1096/toy-xfmr/internal/consts"
)

type Config struct {
	LogLevel  string  // debug, info, warn, error (default: info)
	LogFormat string  // text, json (default: text)
	Frequency float64 // Hz, used when ratings give none (default: 60)
	OutputDir string  // where xlsx and html files go (default: .)
	Workers   int     // concurrent sweep points (default: NumCPU)
}

// Load reads ./.env if present, then the XFMR_* variables.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file. A missing file is not an
// error; variables already set in the environment win over the file.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	cfg := &Config{
		LogLevel:  getEnv("XFMR_LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnv("XFMR_LOG_FORMAT", "text")),
		Frequency: getEnvFloat("XFMR_FREQUENCY", consts.DefaultFrequency),
		OutputDir: getEnv("XFMR_OUTPUT_DIR", "."),
		Workers:   getEnvInt("XFMR_WORKERS", runtime.NumCPU()),
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("XFMR_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.Frequency <= 0 {
		return nil, fmt.Errorf("XFMR_FREQUENCY must be positive, got %g", cfg.Frequency)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("XFMR_WORKERS must be at least 1, got %d", cfg.Workers)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
