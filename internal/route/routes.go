package route

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"colorize/internal/handler"
	"colorize/internal/logger"
	"colorize/internal/service/websocket"
)

// SetupRoutes registers the monitor endpoints: live progress, metrics,
// table stats and the log files.
func SetupRoutes(hub *websocket.HubService, stats handler.StatsProvider, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/progress", handler.ProgressWebsocketHandler(hub, logger))
	mux.HandleFunc("/api/stats", handler.StatsHandler(stats, hub, logger))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Log endpoints
	for level := range handler.LogFiles {
		mux.HandleFunc("/logs/"+level, handler.ShowLogsHandler(logger, level))
		mux.HandleFunc("/logs/"+level+"/clear", handler.ClearLogsHandler(logger, level))
	}

	return mux
}
