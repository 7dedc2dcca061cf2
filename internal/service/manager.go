package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"colorize/internal/config"
	"colorize/internal/dto"
	"colorize/internal/logger"
	"colorize/internal/metrics"
	"colorize/internal/model"
	"colorize/internal/service/storage"
	"colorize/internal/service/video"
)

// Downloader makes a source available as a local file.
type Downloader interface {
	Download(ctx context.Context, url, filename string) (string, error)
}

// Opener opens a local video file for decoding.
type Opener func(path string) (video.FrameSource, error)

// Publisher receives progress events. The websocket hub implements it.
type Publisher interface {
	Publish(event dto.ProgressEvent)
}

// Manager runs the batch job: every source is downloaded, sampled and
// appended to its table, one after another.
type Manager struct {
	downloader   Downloader
	open         Opener
	sink         *storage.Sink
	publisher    Publisher
	logger       *logger.Logger
	strictDecode bool
}

// NewManager wires the pipeline stages. publisher may be nil.
func NewManager(downloader Downloader, open Opener, sink *storage.Sink, publisher Publisher, config *config.Config, logger *logger.Logger) *Manager {
	return &Manager{
		downloader:   downloader,
		open:         open,
		sink:         sink,
		publisher:    publisher,
		logger:       logger,
		strictDecode: config.StrictDecode,
	}
}

// Run processes the train sources into Train and then the test sources into
// Test. The first failing source stops the run.
func (m *Manager) Run(ctx context.Context, manifest *config.Manifest) error {
	start := time.Now()
	jobs := []struct {
		table   model.TableSchema
		sources []config.Source
	}{
		{model.TrainTable, manifest.Train},
		{model.TestTable, manifest.Test},
	}

	var total int64
	for _, job := range jobs {
		for _, src := range job.sources {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, err := m.ProcessSource(ctx, job.table, src)
			if err != nil {
				return err
			}
			total += rows
		}
	}

	m.logger.Info("Job finished: %d rows appended in %s", total, time.Since(start).Round(time.Millisecond))
	m.publish(dto.ProgressEvent{Type: dto.EventJobDone, Rows: total})
	return nil
}

// ProcessSource downloads src, samples it and appends the frames to table.
// It returns the number of rows appended.
func (m *Manager) ProcessSource(ctx context.Context, table model.TableSchema, src config.Source) (int64, error) {
	m.publish(dto.ProgressEvent{Type: dto.EventSourceStarted, Table: table.Name, Source: src.Filename})

	rows, err := m.processSource(ctx, table, src)
	if err != nil {
		metrics.SourcesProcessedTotal.WithLabelValues(table.Name, "failed").Inc()
		m.logger.Error("Source %s failed: %v", src.Filename, err)
		m.publish(dto.ProgressEvent{Type: dto.EventSourceFailed, Table: table.Name, Source: src.Filename, Error: err.Error()})
		return 0, err
	}

	metrics.SourcesProcessedTotal.WithLabelValues(table.Name, "completed").Inc()
	return rows, nil
}

func (m *Manager) processSource(ctx context.Context, table model.TableSchema, src config.Source) (int64, error) {
	mode, err := model.ParseMode(src.Mode)
	if err != nil {
		return 0, err
	}
	if mode.Channels() != len(table.Columns) {
		return 0, fmt.Errorf("source %s is %s but table %s has %d columns", src.Filename, mode, table.Name, len(table.Columns))
	}

	dlStart := time.Now()
	path, err := m.downloader.Download(ctx, src.URL, src.Filename)
	if err != nil {
		return 0, err
	}
	metrics.StageDuration.WithLabelValues("download").Observe(time.Since(dlStart).Seconds())
	m.publish(dto.ProgressEvent{Type: dto.EventDownloaded, Table: table.Name, Source: src.Filename})

	frames, err := m.sample(path, video.SampleOptions{SkipOpen: src.SkipOpen, SkipEnd: src.SkipEnd, Mode: mode})
	if err != nil {
		return 0, err
	}
	metrics.FramesKeptTotal.WithLabelValues(table.Name).Add(float64(len(frames)))
	m.publish(dto.ProgressEvent{Type: dto.EventSampled, Table: table.Name, Source: src.Filename, Frames: len(frames)})

	appendStart := time.Now()
	rows, err := m.sink.Append(table, frames)
	if err != nil {
		return 0, err
	}
	metrics.StageDuration.WithLabelValues("append").Observe(time.Since(appendStart).Seconds())
	metrics.RowsAppendedTotal.WithLabelValues(table.Name).Add(float64(rows))
	m.publish(dto.ProgressEvent{Type: dto.EventAppended, Table: table.Name, Source: src.Filename, Frames: len(frames), Rows: rows})

	return rows, nil
}

// sample decodes path. A mid-stream decode failure keeps the frames sampled
// so far unless strict decoding is configured.
func (m *Manager) sample(path string, opts video.SampleOptions) ([]model.Frame, error) {
	source, err := m.open(path)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	start := time.Now()
	m.logger.Info("Sampling %s: %.2f fps, %.0f frames, expecting %d", path,
		source.FPS(), source.FrameCount(), video.Expected(source.FrameCount(), source.FPS(), opts))

	frames, err := video.Sample(source, opts)
	metrics.StageDuration.WithLabelValues("sample").Observe(time.Since(start).Seconds())

	if errors.Is(err, video.ErrDecode) {
		metrics.DecodeErrorsTotal.Inc()
		if m.strictDecode {
			return nil, fmt.Errorf("sampling %s: %w", path, err)
		}
		m.logger.Warning("Sampling %s stopped early, keeping %d frames: %v", path, len(frames), err)
		return frames, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sampling %s: %w", path, err)
	}

	m.logger.Info("Sampled %d frames from %s", len(frames), path)
	return frames, nil
}

func (m *Manager) publish(event dto.ProgressEvent) {
	if m.publisher != nil {
		m.publisher.Publish(event)
	}
}
