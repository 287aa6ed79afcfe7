// Package config collects the settings of a report run from flags and the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/naka-gawa/pr-stats/internal/domain"
)

// Config holds the settings of one report run.
type Config struct {
	Input   string
	Query   string
	Start   string
	End     string
	Delay   time.Duration
	Token   string
	Verbose bool
}

// LoadEnv reads .env files into the process environment and returns the GitHub token.
// A missing .env file is not an error.
func LoadEnv(logger *log.Logger, envFiles ...string) string {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Println("env file not found, using system environment variables")
	}
	return os.Getenv("GITHUB_TOKEN")
}

// Validate checks that exactly one source is selected and that it can be used.
func (c Config) Validate() error {
	switch {
	case c.Query == "" && c.Input == "":
		return fmt.Errorf("%w: you must specify either --query or --input", domain.ErrUsage)
	case c.Query != "" && c.Input != "":
		return fmt.Errorf("%w: --query and --input cannot be used together", domain.ErrUsage)
	case c.Query != "" && c.Token == "":
		return fmt.Errorf("%w: GITHUB_TOKEN environment variable is not set", domain.ErrUsage)
	case c.Start == "":
		return fmt.Errorf("%w: --start is required", domain.ErrUsage)
	case c.Delay < 0:
		return fmt.Errorf("%w: --delay must not be negative", domain.ErrUsage)
	}
	return nil
}
