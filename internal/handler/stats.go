package handler

import (
	"encoding/json"
	"net/http"

	"colorize/internal/logger"
	"colorize/internal/model"
)

// StatsProvider reports the dataset tables.
type StatsProvider interface {
	Stats() ([]model.TableStats, error)
}

// ClientCounter reports connected monitor clients.
type ClientCounter interface {
	GetClientCount() int
}

type statsResponse struct {
	Tables         []model.TableStats `json:"tables"`
	MonitorClients int                `json:"monitor_clients"`
}

// StatsHandler returns row and block counts of every table as JSON, along
// with the number of connected progress clients.
func StatsHandler(stats StatsProvider, clients ClientCounter, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables, err := stats.Stats()
		if err != nil {
			logger.Error("Failed to read table stats: %v", err)
			http.Error(w, "failed to read stats", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(statsResponse{
			Tables:         tables,
			MonitorClients: clients.GetClientCount(),
		})
	}
}
