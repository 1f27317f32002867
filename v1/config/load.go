package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingHost is returned when the file does not name a database host.
var ErrMissingHost = errors.New("postgres.connection.host is required")

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands environment references in data, decodes it and applies
// defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Postgres.Connection.Host == "" {
		return Config{}, ErrMissingHost
	}
	return cfg.WithDefaults(), nil
}
