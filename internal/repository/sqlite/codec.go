package sqlite

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// blockCodec compresses column chunks. Encoder and decoder are safe for
// concurrent EncodeAll/DecodeAll calls.
type blockCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newBlockCodec(level int) (*blockCodec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &blockCodec{encoder: encoder, decoder: decoder}, nil
}

func (c *blockCodec) encode(values []uint8) []byte {
	return c.encoder.EncodeAll(values, make([]byte, 0, len(values)/4))
}

func (c *blockCodec) decode(data []byte, rows int) ([]uint8, error) {
	out, err := c.decoder.DecodeAll(data, make([]byte, 0, rows))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress chunk: %w", err)
	}
	return out, nil
}

func (c *blockCodec) close() {
	c.encoder.Close()
	c.decoder.Close()
}
