package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

// envFiles are tried in order; the first one that loads wins.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads KEY=VALUE pairs from the first readable env file.
// Existing process environment variables are never overwritten.
func loadEnvFiles() error {
	for _, name := range envFiles {
		err := godotenv.Load(name)
		if err == nil {
			slog.Debug("Loaded environment variables", slog.String("file", name))
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}
