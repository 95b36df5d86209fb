// Package config loads server configuration from an optional YAML file
// with environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds everything the server needs at startup.
type Config struct {
	Server struct {
		// Address is the listen address, e.g. ":8080".
		Address string `yaml:"address"`
	} `yaml:"server"`

	Extraction struct {
		// BaseURL is the root of the bill-extraction service,
		// e.g. "http://localhost:8001/api".
		BaseURL string `yaml:"base_url"`

		// TimeoutSeconds bounds one extraction call.
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"extraction"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// Load reads the YAML file at path, falling back to defaults when the
// file is absent, then applies environment overrides (ADDR,
// EXTRACTION_URL). A present-but-broken file is an error; a missing one
// is not.
func Load(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Server.Address = addr
	}
	if url := os.Getenv("EXTRACTION_URL"); url != "" {
		cfg.Extraction.BaseURL = url
	}

	return cfg, nil
}

func defaults() Config {
	var cfg Config
	cfg.Server.Address = ":8080"
	cfg.Extraction.BaseURL = "http://localhost:8001/api"
	cfg.Extraction.TimeoutSeconds = 60
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	return cfg
}
