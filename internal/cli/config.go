package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/mcoot/solaropoly/internal/board"
	"github.com/mcoot/solaropoly/internal/factory"
	redisstorage "github.com/mcoot/solaropoly/internal/storage/redis"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool

	// Local game and server settings
	StorageType  string
	RedisURL     string
	Port         int
	Board        string
	StartBalance int
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("SOLAROPOLY_SERVER", "http://localhost:8080"),
		Output:       "text",
		Verbose:      false,
		StorageType:  getEnvOrDefault("SOLAROPOLY_STORAGE", factory.StorageTypeMemory),
		RedisURL:     getEnvOrDefault("REDIS_URL", redisstorage.DefaultConfig().URL),
		Port:         getEnvIntOrDefault("SOLAROPOLY_PORT", 8080),
		Board:        getEnvOrDefault("SOLAROPOLY_BOARD", board.DefaultLayout),
		StartBalance: getEnvIntOrDefault("SOLAROPOLY_START_BALANCE", 1500),
	}
}

// FactoryConfig builds the application factory config for local commands
func (c *Config) FactoryConfig(logger *slog.Logger) (factory.Config, error) {
	fc := factory.Config{
		Logger:      logger,
		StorageType: c.StorageType,
	}
	switch c.StorageType {
	case factory.StorageTypeMemory, "":
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	default:
		return factory.Config{}, fmt.Errorf("unknown storage type %q: must be %s or %s",
			c.StorageType, factory.StorageTypeMemory, factory.StorageTypeRedis)
	}
	return fc, nil
}

// Logger returns the logger for local commands. Output goes to stderr so it
// never mixes with the game.
func (c *Config) Logger() *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return val
	}
	return defaultVal
}
