package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first of .env/.env.local that exists. Variables already
// set in the process environment are kept.
func loadEnvFile() error {
	for _, name := range envFiles {
		err := godotenv.Load(name)
		if err == nil {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", name, err)
	}
	return fmt.Errorf("no .env file found")
}
