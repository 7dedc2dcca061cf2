package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kkdai/youtube/v2"

	"colorize/internal/logger"
)

const (
	// StreamMimeType is the container every source is fetched in.
	StreamMimeType = "video/mp4"
	// StreamQuality is the only resolution the sampler is tuned for.
	StreamQuality = "360p"
)

var ErrNoStream = errors.New("no 360p mp4 stream available")

// VideoClient is the subset of *youtube.Client the downloader needs.
type VideoClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// Downloader fetches source videos into a local directory, once.
type Downloader struct {
	client VideoClient
	dir    string
	logger *logger.Logger
}

func NewDownloader(client VideoClient, dir string, logger *logger.Logger) *Downloader {
	return &Downloader{
		client: client,
		dir:    dir,
		logger: logger,
	}
}

// Path is where filename is stored locally.
func (d *Downloader) Path(filename string) string {
	return filepath.Join(d.dir, filename+".mp4")
}

// SelectFormat returns the first 360p mp4 format in list order, or nil.
func SelectFormat(formats youtube.FormatList) *youtube.Format {
	for i := range formats {
		f := &formats[i]
		mime, _, _ := strings.Cut(f.MimeType, ";")
		if strings.TrimSpace(mime) == StreamMimeType && f.QualityLabel == StreamQuality {
			return f
		}
	}
	return nil
}

// Download stores url as <dir>/<filename>.mp4 and returns the path. An
// existing file is returned as is, without contacting the video host.
func (d *Downloader) Download(ctx context.Context, url, filename string) (string, error) {
	path := d.Path(filename)
	if _, err := os.Stat(path); err == nil {
		d.logger.Info("Video %s already downloaded, skipping", path)
		return path, nil
	}

	video, err := d.client.GetVideoContext(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to resolve video %s: %w", url, err)
	}

	format := SelectFormat(video.Formats)
	if format == nil {
		return "", fmt.Errorf("%w: %s", ErrNoStream, url)
	}

	stream, size, err := d.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("failed to open stream for %s: %w", url, err)
	}
	defer stream.Close()

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create video directory: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, filename+"-*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, stream)
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if size > 0 && written != size {
		return "", fmt.Errorf("short download for %s: got %d of %d bytes", url, written, size)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}

	d.logger.Info("Downloaded %q (itag %d, %d bytes) to %s", video.Title, format.ItagNo, written, path)
	return path, nil
}
