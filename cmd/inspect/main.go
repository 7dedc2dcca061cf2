package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"colorize/internal/repository/sqlite"
)

func main() {
	dbPath := flag.String("db", "youtube_data.db", "Dataset file path")
	flag.Parse()

	if _, err := os.Stat(*dbPath); err != nil {
		log.Fatalf("Dataset file not found: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open dataset: %v", err)
	}
	defer db.Close()

	repo, err := sqlite.NewTableRepository(db)
	if err != nil {
		log.Fatalf("Failed to open tables: %v", err)
	}
	defer repo.Close()

	stats, err := repo.Stats()
	if err != nil {
		log.Fatalf("Failed to read stats: %v", err)
	}

	fmt.Printf("Dataset %s\n", *dbPath)
	for _, s := range stats {
		fmt.Printf("\n%s %v\n", s.Name, s.Columns)
		fmt.Printf("   Rows: %d\n", s.Rows)
		fmt.Printf("   Blocks: %d\n", s.Blocks)
		fmt.Printf("   Compressed: %d bytes (%s level %d)\n", s.CompressedBytes, s.Codec, s.Level)
		if s.Rows > 0 {
			raw := s.Rows * int64(len(s.Columns))
			fmt.Printf("   Ratio: %.2fx\n", float64(raw)/float64(max(s.CompressedBytes, 1)))
		}
	}
}
