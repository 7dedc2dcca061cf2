package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientFrame(width, height int) Frame {
	f := NewFrame(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.Set(y, x, 0, 10)
			f.Set(y, x, 1, uint8(x))
			f.Set(y, x, 2, uint8(y))
		}
	}
	return f
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"RGB", ModeColor},
		{"", ModeColor},
		{"color", ModeColor},
		{"L", ModeGray},
		{"grayscale", ModeGray},
		{" gray ", ModeGray},
	}

	for _, tt := range tests {
		mode, err := ParseMode(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, mode, tt.input)
	}

	_, err := ParseMode("CMYK")
	assert.Error(t, err)
}

func TestMode_Channels(t *testing.T) {
	assert.Equal(t, 3, ModeColor.Channels())
	assert.Equal(t, 1, ModeGray.Channels())
	assert.Equal(t, "RGB", ModeColor.String())
	assert.Equal(t, "L", ModeGray.String())
}

func TestFrame_CropWidth(t *testing.T) {
	f := gradientFrame(640, 4)

	cropped := f.CropWidth(80, 80)

	assert.Equal(t, 480, cropped.Width)
	assert.Equal(t, 4, cropped.Height)
	assert.Len(t, cropped.Pix, 480*4*3)
	assert.Equal(t, uint8(80), cropped.At(0, 0, 1))
	assert.Equal(t, uint8((80+479)%256), cropped.At(3, 479, 1))
	assert.Equal(t, uint8(3), cropped.At(3, 0, 2))

	// receiver is untouched
	assert.Equal(t, 640, f.Width)
	assert.Equal(t, uint8(0), f.At(0, 0, 1))
}

func TestFrame_ReverseChannels(t *testing.T) {
	f := NewFrame(2, 1, 3)
	f.Set(0, 0, 0, 1)
	f.Set(0, 0, 1, 2)
	f.Set(0, 0, 2, 3)
	f.Set(0, 1, 0, 4)
	f.Set(0, 1, 1, 5)
	f.Set(0, 1, 2, 6)

	rev := f.ReverseChannels()

	assert.Equal(t, []uint8{3, 2, 1, 6, 5, 4}, rev.Pix)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6}, f.Pix)
}

func TestFrame_FirstChannelAndPlane(t *testing.T) {
	f := gradientFrame(3, 2)

	gray := f.FirstChannel()
	assert.Equal(t, 1, gray.Channels)
	assert.Equal(t, []uint8{10, 10, 10, 10, 10, 10}, gray.Pix)

	assert.Equal(t, []uint8{0, 1, 2, 0, 1, 2}, f.Plane(1))
	assert.Equal(t, []uint8{0, 0, 0, 1, 1, 1}, f.Plane(2))
	assert.Equal(t, 6, f.Pixels())
}

func TestFrame_SameShape(t *testing.T) {
	a := NewFrame(4, 3, 3)
	assert.True(t, a.SameShape(NewFrame(4, 3, 3)))
	assert.False(t, a.SameShape(NewFrame(4, 3, 1)))
	assert.False(t, a.SameShape(NewFrame(5, 3, 3)))
}
