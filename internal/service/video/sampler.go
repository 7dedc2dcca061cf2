package video

import (
	"errors"
	"fmt"
	"math"

	"colorize/internal/model"
)

const (
	// SourceWidth is the letterboxed width of 4:3 content delivered in a 16:9 frame.
	SourceWidth = 640
	// TargetWidth is the width every sampled frame is normalised to.
	TargetWidth = 480
	// CropMargin is trimmed from each side of a SourceWidth frame.
	CropMargin = (SourceWidth - TargetWidth) / 2
)

var (
	ErrInvalidFrameRate = errors.New("invalid frame rate")
	ErrInvalidSkip      = errors.New("skip durations must be >= 0")
	ErrShapeMismatch    = errors.New("frame shape differs from first sampled frame")
	ErrDecode           = errors.New("frame decode failed")
)

// DecodeError reports a read failure well before the source's advertised end.
// Frames sampled before Index are still returned alongside it.
type DecodeError struct {
	Index int
	Total float64
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("frame decode failed at index %d of %.0f", e.Index, e.Total)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// FrameSource yields decoded frames in the capture device's native BGR order.
type FrameSource interface {
	FPS() float64
	FrameCount() float64
	Read() (model.Frame, bool)
	Close() error
}

// SampleOptions controls which frames are kept.
type SampleOptions struct {
	SkipOpen float64 // seconds discarded at the start
	SkipEnd  float64 // seconds discarded at the end
	Mode     model.Mode
}

// frameStep is the keep interval in frames. The rate is truncated, so
// non-integer rates (29.97) sample slightly faster than once per second.
func frameStep(fps float64) int {
	step := int(fps)
	if step < 1 {
		return 1
	}
	return step
}

func bounds(total, fps float64, opts SampleOptions) (start, cutoff float64) {
	return fps * opts.SkipOpen, total - fps*opts.SkipEnd
}

func validate(fps float64, opts SampleOptions) error {
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFrameRate, fps)
	}
	if opts.SkipOpen < 0 || opts.SkipEnd < 0 {
		return fmt.Errorf("%w: open=%v end=%v", ErrInvalidSkip, opts.SkipOpen, opts.SkipEnd)
	}
	return nil
}

// Expected is the number of frames Sample keeps from a fully decodable source.
func Expected(total, fps float64, opts SampleOptions) int {
	if validate(fps, opts) != nil {
		return 0
	}
	step := frameStep(fps)
	start, cutoff := bounds(total, fps, opts)

	lo := max(int(math.Ceil(start)), 0)
	if r := lo % step; r != 0 {
		lo += step - r
	}
	hi := int(math.Ceil(cutoff)) - 1
	if hi < lo {
		return 0
	}
	return (hi-lo)/step + 1
}

// Normalize crops letterboxed frames to TargetWidth and converts channels
// for the requested mode: BGR becomes RGB, or only the first channel is kept.
func Normalize(frame model.Frame, mode model.Mode) model.Frame {
	if frame.Width == SourceWidth {
		frame = frame.CropWidth(CropMargin, CropMargin)
	}
	if mode == model.ModeGray {
		return frame.FirstChannel()
	}
	return frame.ReverseChannels()
}

// Sample walks src from the first frame and keeps roughly one frame per
// elapsed second between SkipOpen and the end cutoff.
//
// Frame i is kept when i >= fps*SkipOpen, i is a multiple of int(fps) and
// i < total - fps*SkipEnd. Reading stops as soon as the cutoff is reached.
// A source whose first read fails yields an empty sequence. A later read
// failure more than one second before the advertised frame count returns the
// frames kept so far together with a *DecodeError. Container frame counts are
// estimates, so a failure inside the final second is end of stream.
func Sample(src FrameSource, opts SampleOptions) ([]model.Frame, error) {
	fps := src.FPS()
	if err := validate(fps, opts); err != nil {
		return nil, err
	}

	total := src.FrameCount()
	step := frameStep(fps)
	start, cutoff := bounds(total, fps, opts)

	frames := make([]model.Frame, 0, Expected(total, fps, opts))
	for i := 0; float64(i) < cutoff; i++ {
		frame, ok := src.Read()
		if !ok {
			if i > 0 && float64(i) < total-fps {
				return frames, &DecodeError{Index: i, Total: total}
			}
			return frames, nil
		}

		if float64(i) < start || i%step != 0 {
			continue
		}

		out := Normalize(frame, opts.Mode)
		if len(frames) > 0 && !out.SameShape(frames[0]) {
			return frames, fmt.Errorf("%w: frame %d is %dx%dx%d, expected %dx%dx%d", ErrShapeMismatch, i,
				out.Height, out.Width, out.Channels, frames[0].Height, frames[0].Width, frames[0].Channels)
		}
		frames = append(frames, out)
	}

	return frames, nil
}
