// Package capture decodes local video files with OpenCV.
package capture

import (
	"fmt"

	"gocv.io/x/gocv"

	"colorize/internal/model"
	"colorize/internal/service/video"
)

// Capture decodes a local video file with OpenCV.
type Capture struct {
	vc  *gocv.VideoCapture
	mat gocv.Mat
}

// OpenCapture opens a video file for sequential decoding.
func OpenCapture(path string) (*Capture, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("video %s could not be opened", path)
	}

	return &Capture{vc: vc, mat: gocv.NewMat()}, nil
}

// Open adapts OpenCapture to video.FrameSource.
func Open(path string) (video.FrameSource, error) {
	c, err := OpenCapture(path)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Capture) FPS() float64 {
	return c.vc.Get(gocv.VideoCaptureFPS)
}

func (c *Capture) FrameCount() float64 {
	return c.vc.Get(gocv.VideoCaptureFrameCount)
}

// Read decodes the next frame. The Mat is reused between calls; the returned
// frame owns a copy of its pixels.
func (c *Capture) Read() (model.Frame, bool) {
	if ok := c.vc.Read(&c.mat); !ok || c.mat.Empty() {
		return model.Frame{}, false
	}

	return model.Frame{
		Width:    c.mat.Cols(),
		Height:   c.mat.Rows(),
		Channels: c.mat.Channels(),
		Pix:      c.mat.ToBytes(),
	}, true
}

func (c *Capture) Close() error {
	if err := c.mat.Close(); err != nil {
		c.vc.Close()
		return fmt.Errorf("failed to release frame buffer: %w", err)
	}
	return c.vc.Close()
}
