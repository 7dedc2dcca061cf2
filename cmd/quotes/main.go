package main

import (
	"bufio"
	"encoding/json"
	"log"
	"os"

	"colorize/internal/config"
	"colorize/internal/logger"
	"colorize/internal/model"
	"colorize/internal/service/quotes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger(cfg)
	defer logger.Sync()

	file, err := os.Create(cfg.QuotesOutput)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", cfg.QuotesOutput, err)
	}
	defer file.Close()

	out := bufio.NewWriter(file)
	encoder := json.NewEncoder(out)

	count := 0
	var writeErr error
	runErr := quotes.NewExtractor(cfg.QuoteURLs, logger).Run(func(q model.Quote) {
		if writeErr != nil {
			return
		}
		writeErr = encoder.Encode(q)
		count++
	})

	if err := out.Flush(); err != nil && writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		log.Fatalf("Failed to write %s: %v", cfg.QuotesOutput, writeErr)
	}
	if runErr != nil {
		log.Fatalf("Scrape failed: %v", runErr)
	}

	logger.Info("Wrote %d quotes to %s", count, cfg.QuotesOutput)
}
