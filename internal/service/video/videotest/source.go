// Package videotest provides synthetic frame sources for tests.
package videotest

import "colorize/internal/model"

// Source is an in-memory video. Pixel (y, x) of frame i holds native BGR
// values B=i, G=x, R=y (each mod 256), so reordering and cropping can be
// checked exactly.
type Source struct {
	Rate     float64
	Count    float64 // advertised frame count
	Frames   int     // frames that actually decode
	Width    int
	Height   int
	Channels int
	FailAt   int // read index that fails to decode; -1 for none

	// Resize, when set, overrides the width of frame i.
	Resize func(i int) int

	Reads  int
	Closed bool
}

// New returns a 3-channel source whose advertised and decodable counts agree.
func New(fps float64, frames, width, height int) *Source {
	return &Source{
		Rate:     fps,
		Count:    float64(frames),
		Frames:   frames,
		Width:    width,
		Height:   height,
		Channels: 3,
		FailAt:   -1,
	}
}

func (s *Source) FPS() float64 {
	return s.Rate
}

func (s *Source) FrameCount() float64 {
	return s.Count
}

func (s *Source) Read() (model.Frame, bool) {
	i := s.Reads
	s.Reads++
	if i >= s.Frames || i == s.FailAt {
		return model.Frame{}, false
	}

	width := s.Width
	if s.Resize != nil {
		width = s.Resize(i)
	}

	frame := model.NewFrame(width, s.Height, s.Channels)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < width; x++ {
			native := [3]uint8{uint8(i), uint8(x), uint8(y)}
			for c := 0; c < s.Channels; c++ {
				frame.Set(y, x, c, native[c%3])
			}
		}
	}
	return frame, true
}

func (s *Source) Close() error {
	s.Closed = true
	return nil
}
