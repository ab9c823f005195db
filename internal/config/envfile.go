package config

import (
	"os"

	"github.com/joho/godotenv"

	"go.eggybyte.com/jerseykit/internal/core/errors"
)

// readEnvFile parses a .env file into a map. A missing file yields an empty map.
func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(errors.CodeInternal, "read env file", err, "read %s", path)
	}
	return vars, nil
}
