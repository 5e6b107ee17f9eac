package artifact

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the artifact compression scheme, selected by the
// artifact name's extension: ".zst" is zstd, ".lz4" is LZ4, anything else
// is stored raw.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZSTD
	CompressionLZ4
)

func compressionFor(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return CompressionZSTD
	case strings.HasSuffix(name, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

var (
	zstdDecoderOnce sync.Once
	zstdDecoder     *zstd.Decoder
)

func getZstdDecoder() *zstd.Decoder {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, _ = zstd.NewReader(nil)
	})
	return zstdDecoder
}

func decompress(name string, payload []byte) ([]byte, error) {
	switch compressionFor(name) {
	case CompressionZSTD:
		return getZstdDecoder().DecodeAll(payload, nil)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
	default:
		return payload, nil
	}
}

// Compress encodes raw bytes with the scheme implied by the artifact name.
// The training pipeline is the usual producer; this exists for tooling and
// tests.
func Compress(name string, raw []byte) ([]byte, error) {
	switch compressionFor(name) {
	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		out := enc.EncodeAll(raw, nil)
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return out, nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return raw, nil
	}
}
