package storage

import (
	"fmt"

	"colorize/internal/logger"
	"colorize/internal/model"
	"colorize/internal/repository"
)

// Sink flattens sampled frames into per-channel columns and appends them to
// the dataset tables.
type Sink struct {
	repo   repository.TableRepository
	logger *logger.Logger
}

// NewSink creates a Sink writing through repo.
func NewSink(repo repository.TableRepository, logger *logger.Logger) *Sink {
	return &Sink{
		repo:   repo,
		logger: logger,
	}
}

// Flatten lays frames out channel-major: column c holds channel c of every
// pixel of the first frame, then of the second, and so on. Row i of the
// result is therefore one pixel.
func Flatten(frames []model.Frame, channels int) ([][]uint8, error) {
	total := 0
	for i, f := range frames {
		if f.Channels != channels {
			return nil, fmt.Errorf("%w: frame %d has %d channels, table has %d", repository.ErrSchemaMismatch, i, f.Channels, channels)
		}
		total += f.Pixels()
	}

	columns := make([][]uint8, channels)
	for c := range columns {
		columns[c] = make([]uint8, 0, total)
		for _, f := range frames {
			columns[c] = append(columns[c], f.Plane(c)...)
		}
	}
	return columns, nil
}

// Append writes frames to table and returns the number of rows added.
// The frames are not retained.
func (s *Sink) Append(table model.TableSchema, frames []model.Frame) (int64, error) {
	columns, err := Flatten(frames, len(table.Columns))
	if err != nil {
		return 0, err
	}

	rows := int64(0)
	if len(columns) > 0 {
		rows = int64(len(columns[0]))
	}
	if rows == 0 {
		s.logger.Warning("No frames to append to %s", table.Name)
		return 0, nil
	}

	total, err := s.repo.Append(table.Name, columns)
	if err != nil {
		return 0, fmt.Errorf("failed to append to %s: %w", table.Name, err)
	}

	s.logger.Info("Appended %d frames (%d rows) to %s, %d rows total", len(frames), rows, table.Name, total)
	return rows, nil
}

// Stats reports the stored tables.
func (s *Sink) Stats() ([]model.TableStats, error) {
	return s.repo.Stats()
}
