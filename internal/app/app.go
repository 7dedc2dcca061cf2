package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kkdai/youtube/v2"

	"colorize/internal/config"
	"colorize/internal/logger"
	"colorize/internal/model"
	"colorize/internal/repository/sqlite"
	"colorize/internal/route"
	"colorize/internal/service"
	"colorize/internal/service/download"
	"colorize/internal/service/storage"
	"colorize/internal/service/websocket"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config     *config.Config
	logger     *logger.Logger
	manifest   *config.Manifest
	db         *sqlite.DB
	repo       *sqlite.TableRepository
	sink       *storage.Sink
	hubService *websocket.HubService
	manager    *service.Manager
}

// NewApp creates a fresh output file and wires the batch job. open decodes
// downloaded videos; downloader may be nil to fetch from YouTube.
func NewApp(cfg *config.Config, logger *logger.Logger, downloader service.Downloader, open service.Opener) (*App, error) {
	manifest, err := config.LoadManifest(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Create(cfg.OutputPath, model.Tables()...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s: %w", cfg.OutputPath, err)
	}

	repo, err := sqlite.NewTableRepository(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	if downloader == nil {
		downloader = download.NewDownloader(&youtube.Client{}, cfg.VideoDirectory, logger)
	}

	sink := storage.NewSink(repo, logger)
	hub := websocket.NewHubService(logger)

	var publisher service.Publisher
	if cfg.MonitorPort > 0 {
		publisher = hub
	}

	return &App{
		config:     cfg,
		logger:     logger,
		manifest:   manifest,
		db:         db,
		repo:       repo,
		sink:       sink,
		hubService: hub,
		manager:    service.NewManager(downloader, open, sink, publisher, cfg, logger),
	}, nil
}

// Run executes the batch job. With a monitor port configured, progress,
// metrics and logs are served while it runs.
func (a *App) Run(ctx context.Context) error {
	if a.config.MonitorPort > 0 {
		hubCtx, stopHub := context.WithCancel(ctx)
		defer stopHub()
		go a.hubService.Run(hubCtx)

		srv := a.startMonitor()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	a.logger.Info("Writing %d train and %d test sources to %s", len(a.manifest.Train), len(a.manifest.Test), a.config.OutputPath)
	if err := a.manager.Run(ctx, a.manifest); err != nil {
		return err
	}

	stats, err := a.sink.Stats()
	if err != nil {
		return err
	}
	for _, s := range stats {
		a.logger.Info("Table %s: %d rows in %d blocks, %d bytes compressed", s.Name, s.Rows, s.Blocks, s.CompressedBytes)
	}
	a.logger.Info("Dataset written to %s", a.db.Path())
	return nil
}

func (a *App) startMonitor() *http.Server {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.config.MonitorPort),
		Handler: route.SetupRoutes(a.hubService, a.sink, a.logger),
	}

	go func() {
		a.logger.Info("Monitor listening on http://localhost:%d", a.config.MonitorPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Monitor server error: %v", err)
		}
	}()
	return srv
}

// Close releases the codec and checkpoints the output file.
func (a *App) Close() error {
	a.repo.Close()
	return a.db.Close()
}
