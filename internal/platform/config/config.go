// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultPort is used when PORT is unset or empty.
const DefaultPort = "3000"

// Config holds runtime settings. The listen port is the only one.
type Config struct {
	Port string
}

// Load reads optional dotenv files (".env" when none are given) and then the
// process environment. Variables already set in the environment are never
// overridden by file values. A missing file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}
	if err := validatePort(port); err != nil {
		return Config{}, err
	}
	return Config{Port: port}, nil
}

// Addr is the listen address for all interfaces on the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func validatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid PORT %q: must be an integer between 0 and 65535", port)
	}
	return nil
}
