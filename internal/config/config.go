// Package config loads runtime settings for the command-line binaries.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the application's configuration values.
type Config struct {
	Rows            int     // Grid rows
	Columns         int     // Grid columns
	WallProbability float64 // Chance of a cell being a wall
	Seed            int64   // Random seed, 0 picks one from the clock
	LogLevel        string  // logrus level name
	VizAddr         string  // Listen address of the visualisation server
	SearchWorkers   int     // Batch search goroutines, 0 means one per CPU
	SearchQueries   int     // Random start/goal pairs searched per run
	RenderColor     bool    // ANSI colours in text renderings

	VizMaxSessions int           // Sessions kept by the visualisation server
	VizSessionTTL  time.Duration // Idle time after which a session is dropped
}

// Load reads a .env file when present, then the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		logrus.Debugf(".env file not found or could not be loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, using defaults for unset ones.
func FromEnv() (Config, error) {
	var (
		cfg Config
		err error
	)
	if cfg.Rows, err = intEnv("GRID_ROWS", 25); err != nil {
		return Config{}, err
	}
	if cfg.Columns, err = intEnv("GRID_COLUMNS", 25); err != nil {
		return Config{}, err
	}
	if cfg.WallProbability, err = floatEnv("GRID_WALL_PROBABILITY", 0.2); err != nil {
		return Config{}, err
	}
	seed, err := intEnv("GRID_SEED", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.Seed = int64(seed)
	if cfg.SearchWorkers, err = intEnv("SEARCH_WORKERS", 0); err != nil {
		return Config{}, err
	}
	if cfg.SearchQueries, err = intEnv("SEARCH_QUERIES", 1); err != nil {
		return Config{}, err
	}
	if cfg.RenderColor, err = boolEnv("RENDER_COLOR", true); err != nil {
		return Config{}, err
	}
	if cfg.VizMaxSessions, err = intEnv("VIZ_MAX_SESSIONS", 256); err != nil {
		return Config{}, err
	}
	if cfg.VizSessionTTL, err = durationEnv("VIZ_SESSION_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.VizAddr = getEnvWithDefault("VIZ_ADDR", ":8080")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Rows <= 0 || c.Columns <= 0 {
		return fmt.Errorf("grid must have positive dimensions, got %dx%d", c.Rows, c.Columns)
	}
	if c.WallProbability < 0 || c.WallProbability > 1 {
		return fmt.Errorf("GRID_WALL_PROBABILITY must be within [0, 1], got %v", c.WallProbability)
	}
	if c.SearchWorkers < 0 {
		return fmt.Errorf("SEARCH_WORKERS must not be negative, got %d", c.SearchWorkers)
	}
	if c.SearchQueries < 1 {
		return fmt.Errorf("SEARCH_QUERIES must be at least 1, got %d", c.SearchQueries)
	}
	if c.VizMaxSessions < 1 {
		return fmt.Errorf("VIZ_MAX_SESSIONS must be at least 1, got %d", c.VizMaxSessions)
	}
	if c.VizSessionTTL <= 0 {
		return fmt.Errorf("VIZ_SESSION_TTL must be positive, got %s", c.VizSessionTTL)
	}
	return nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

func floatEnv(key string, defaultValue float64) (float64, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a number: %w", key, err)
	}
	return value, nil
}

func boolEnv(key string, defaultValue bool) (bool, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("environment variable %s must be a boolean: %w", key, err)
	}
	return value, nil
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a duration: %w", key, err)
	}
	return value, nil
}
