// Package config loads the shell's YAML settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIURL string    `yaml:"api_url"`
	Log    LogConfig `yaml:"log"`
	Map    MapConfig `yaml:"map"`
}

type LogConfig struct {
	// File receives JSON log lines. Empty disables logging.
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// MapConfig is what the home screen's map panel shows.
type MapConfig struct {
	Region Region `yaml:"region"`
	Marker Marker `yaml:"marker"`
}

type Region struct {
	Latitude       float64 `yaml:"latitude"`
	Longitude      float64 `yaml:"longitude"`
	LatitudeDelta  float64 `yaml:"latitude_delta"`
	LongitudeDelta float64 `yaml:"longitude_delta"`
}

type Marker struct {
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
}

func DefaultConfig() *Config {
	return &Config{
		APIURL: "http://localhost:8080",
		Log: LogConfig{
			Level: "info",
		},
		Map: MapConfig{
			Region: Region{
				Latitude:       -37.721,
				Longitude:      145.046,
				LatitudeDelta:  0.01,
				LongitudeDelta: 0.01,
			},
			Marker: Marker{
				Latitude:    -37.721077,
				Longitude:   145.047977,
				Title:       "Agora",
				Description: "My Coffee",
			},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if c.Map.Region.LatitudeDelta <= 0 || c.Map.Region.LongitudeDelta <= 0 {
		return fmt.Errorf("map region deltas must be positive")
	}
	return nil
}
