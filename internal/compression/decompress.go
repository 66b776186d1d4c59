// Package compression transparently unwraps compressed image streams.
package compression

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// MaxDecompressedSize caps how many bytes a compressed stream may expand to.
const MaxDecompressedSize = 512 * 1024 * 1024

// Format identifies the compression wrapping a stream.
type Format string

// Recognised formats.
const (
	FormatNone  Format = "none"
	FormatGzip  Format = "gzip"
	FormatBzip2 Format = "bzip2"
	FormatXz    Format = "xz"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Detect identifies the compression format from the leading bytes of a stream.
func Detect(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, xzMagic):
		return FormatXz
	case bytes.HasPrefix(header, gzipMagic):
		return FormatGzip
	case bytes.HasPrefix(header, bzip2Magic):
		return FormatBzip2
	default:
		return FormatNone
	}
}

// NewReader sniffs r for gzip, bzip2 or xz compression and returns a reader
// over the decompressed bytes. Uncompressed input is passed through.
// Decompressed output is limited to MaxDecompressedSize.
func NewReader(r io.Reader) (io.Reader, Format, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, FormatNone, fmt.Errorf("failed to read stream header: %w", err)
	}

	format := Detect(header)
	var dr io.Reader
	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		dr = gzr
	case FormatBzip2:
		dr = bzip2.NewReader(br)
	case FormatXz:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create xz reader: %w", err)
		}
		dr = xzr
	default:
		return br, FormatNone, nil
	}

	return NewLimitedReader(dr, MaxDecompressedSize), format, nil
}

// LimitedReader wraps an io.Reader and fails once more than the allowed
// number of bytes have been read.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// ErrSizeLimit is returned when a stream expands beyond its size limit.
var ErrSizeLimit = errors.New("decompression size limit exceeded")

// Read implements io.Reader with size limits. A stream that ends exactly at
// the limit reads as io.EOF.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if l.Remaining <= 0 {
		var extra [1]byte
		if _, err := io.ReadFull(l.R, extra[:]); err != nil {
			return 0, err
		}
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
