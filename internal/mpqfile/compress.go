package mpqfile

import (
	"bytes"
	"compress/bzip2"
	"compress/zlib"
	"fmt"
	"io"
)

// decompressSector decodes a compressed sector of the given expected size.
// The first byte is the compression mask.
func decompressSector(data []byte, expected uint32) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty compressed sector", ErrCorrupt)
	}

	mask, payload := data[0], data[1:]

	var rd io.Reader
	switch mask {
	case compressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrCorrupt, err)
		}
		defer func() { _ = zr.Close() }()
		rd = zr
	case compressionBzip2:
		rd = bzip2.NewReader(bytes.NewReader(payload))
	default:
		return nil, fmt.Errorf("%w: mask 0x%02X", ErrUnsupportedCompression, mask)
	}

	out := make([]byte, expected)
	if _, err := io.ReadFull(rd, out); err != nil {
		return nil, fmt.Errorf("%w: sector decompressed short: %v", ErrCorrupt, err)
	}
	return out, nil
}

// compressSector zlib-compresses data and prefixes the compression mask.
// It reports false when the result would not be smaller than the input.
func compressSector(data []byte) ([]byte, bool) {
	var buf bytes.Buffer
	buf.WriteByte(compressionZlib)

	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, false
	}
	if err := zw.Close(); err != nil {
		return nil, false
	}

	if buf.Len() >= len(data) {
		return nil, false
	}
	return buf.Bytes(), true
}
