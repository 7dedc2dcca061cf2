package model

import (
	"fmt"
	"strings"
)

// Mode selects which channels of a sampled frame are kept.
type Mode int

const (
	// ModeColor keeps three channels in RGB order.
	ModeColor Mode = iota
	// ModeGray keeps only the first channel.
	ModeGray
)

// ParseMode accepts "RGB"/"color" and "L"/"gray"/"grayscale" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rgb", "color":
		return ModeColor, nil
	case "l", "gray", "grayscale":
		return ModeGray, nil
	default:
		return 0, fmt.Errorf("unknown sampling mode %q", s)
	}
}

func (m Mode) String() string {
	if m == ModeGray {
		return "L"
	}
	return "RGB"
}

// Channels returns how many channels a frame sampled in this mode carries.
func (m Mode) Channels() int {
	if m == ModeGray {
		return 1
	}
	return 3
}

// Frame is one decoded image: Height x Width x Channels uint8 values stored
// interleaved, row-major with the channel index varying fastest.
//
// Frames are treated as immutable. Every transform returns a new Frame and
// leaves the receiver's Pix untouched.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewFrame allocates a zeroed frame.
func NewFrame(width, height, channels int) Frame {
	return Frame{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

func (f Frame) offset(y, x, c int) int {
	return (y*f.Width+x)*f.Channels + c
}

// At returns the value of channel c at row y, column x.
func (f Frame) At(y, x, c int) uint8 {
	return f.Pix[f.offset(y, x, c)]
}

// Set writes channel c at row y, column x. Only meant for frames still being built.
func (f Frame) Set(y, x, c int, v uint8) {
	f.Pix[f.offset(y, x, c)] = v
}

// Pixels is the number of pixels, i.e. the number of table rows the frame yields.
func (f Frame) Pixels() int {
	return f.Width * f.Height
}

// SameShape reports whether both frames have identical dimensions and channel count.
func (f Frame) SameShape(o Frame) bool {
	return f.Width == o.Width && f.Height == o.Height && f.Channels == o.Channels
}

// Plane returns channel c flattened row-major.
func (f Frame) Plane(c int) []uint8 {
	plane := make([]uint8, f.Pixels())
	for i := range plane {
		plane[i] = f.Pix[i*f.Channels+c]
	}
	return plane
}

// CropWidth removes left columns from the left edge and right columns from the right edge.
func (f Frame) CropWidth(left, right int) Frame {
	width := f.Width - left - right
	if width <= 0 {
		return Frame{Height: f.Height, Channels: f.Channels}
	}

	out := NewFrame(width, f.Height, f.Channels)
	rowBytes := width * f.Channels
	for y := 0; y < f.Height; y++ {
		src := f.offset(y, left, 0)
		copy(out.Pix[y*rowBytes:(y+1)*rowBytes], f.Pix[src:src+rowBytes])
	}
	return out
}

// ReverseChannels flips the channel order of every pixel (BGR <-> RGB).
func (f Frame) ReverseChannels() Frame {
	out := NewFrame(f.Width, f.Height, f.Channels)
	n := f.Channels
	for p := 0; p < f.Pixels(); p++ {
		base := p * n
		for c := 0; c < n; c++ {
			out.Pix[base+c] = f.Pix[base+n-1-c]
		}
	}
	return out
}

// FirstChannel returns a single-channel frame holding channel 0.
func (f Frame) FirstChannel() Frame {
	return Frame{
		Width:    f.Width,
		Height:   f.Height,
		Channels: 1,
		Pix:      f.Plane(0),
	}
}
