package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	OutputPath     string   `env:"OUTPUT_PATH" env-default:"youtube_data.db"`
	VideoDirectory string   `env:"VIDEO_DIR" env-default:"videos"`
	ManifestPath   string   `env:"MANIFEST_PATH"`
	LogDirectory   string   `env:"LOG_DIR" env-default:"logs"`
	LogLevel       string   `env:"LOG_LEVEL" env-default:"info"`
	StrictDecode   bool     `env:"STRICT_DECODE" env-default:"false"` // abort the run on a mid-stream decode failure
	MonitorPort    int      `env:"MONITOR_PORT" env-default:"0"`      // 0 disables the progress/metrics server
	QuoteURLs      []string `env:"QUOTES_URLS" env-separator:"," env-default:"http://quotes.toscrape.com/page/1/,http://quotes.toscrape.com/page/2/"`
	QuotesOutput   string   `env:"QUOTES_OUTPUT" env-default:"quotes.jl"` // JSON lines
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}
