package route

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colorize/internal/config"
	"colorize/internal/logger"
	"colorize/internal/model"
	"colorize/internal/service/websocket"
)

type staticStats []model.TableStats

func (s staticStats) Stats() ([]model.TableStats, error) {
	return s, nil
}

func setupServer(t *testing.T) (*httptest.Server, *logger.Logger) {
	t.Helper()

	log := logger.NewLogger(&config.Config{LogDirectory: t.TempDir(), LogLevel: "info"})
	t.Cleanup(log.Sync)

	stats := staticStats{{Name: "Train", Columns: []string{"R", "G", "B"}, Rows: 12}}
	srv := httptest.NewServer(SetupRoutes(websocket.NewHubService(log), stats, log))
	t.Cleanup(srv.Close)
	return srv, log
}

func TestRoutes_Metrics(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRoutes_Stats(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"name":"Train"`)
	assert.Contains(t, string(body), `"rows":12`)
	assert.Contains(t, string(body), `"monitor_clients":0`)
}

func TestRoutes_StatsCountsProgressClients(t *testing.T) {
	log := logger.NewNop()
	hub := websocket.NewHubService(log)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(SetupRoutes(hub, staticStats{}, log))
	t.Cleanup(srv.Close)

	conn, _, err := gorilla.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/progress", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL + "/api/stats")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return strings.Contains(string(body), `"monitor_clients":1`)
	}, 2*time.Second, 20*time.Millisecond)
}

func TestRoutes_ShowAndClearLogs(t *testing.T) {
	srv, log := setupServer(t)

	log.Info("sampling video_0")
	log.Sync()

	resp, err := http.Get(srv.URL + "/logs/info")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "sampling video_0")

	resp, err = http.Get(srv.URL + "/logs/info/clear")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/logs/info/clear", "text/plain", strings.NewReader(""))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	data, err := os.ReadFile(filepath.Join(log.Directory(), "info.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sampling video_0")
}
