package source

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies how a logbook file is stored on disk.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// Extensions lists the file suffixes recognised as logbook exports.
var Extensions = []string{".flu", ".flu.gz", ".flu.zst"}

// IsLogbook reports whether path carries one of the logbook extensions.
func IsLogbook(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// DetectCompression derives the compression from the file extension.
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// Open returns a reader yielding the uncompressed logbook bytes.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open logbook: %w", err)
	}
	reader, err := wrap(file, DetectCompression(path))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("open logbook %s: %w", filepath.Base(path), err)
	}
	return reader, nil
}

// Read loads and decompresses an entire logbook file.
func Read(path string) ([]byte, error) {
	reader, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read logbook %s: %w", filepath.Base(path), err)
	}
	return data, nil
}

// Checksum returns the hex encoded SHA-256 of the uncompressed content.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Compress encodes data with zstd for archival.
func Compress(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()
	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress archive: %w", err)
	}
	return out, nil
}

// Decode wraps r according to compression; the caller closes the result.
func Decode(r io.Reader, compression Compression) (io.ReadCloser, error) {
	return wrap(io.NopCloser(r), compression)
}

// Sniff guesses the compression from the leading magic bytes.
func Sniff(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, []byte{0x1f, 0x8b}):
		return CompressionGzip
	case bytes.HasPrefix(data, []byte{0x28, 0xb5, 0x2f, 0xfd}):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

func wrap(rc io.ReadCloser, compression Compression) (io.ReadCloser, error) {
	switch compression {
	case CompressionGzip:
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("gzip header: %w", err)
		}
		return &stackedCloser{Reader: gz, closers: []io.Closer{gz, rc}}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(rc, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("zstd stream: %w", err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zstdCloser{zr}, rc}}, nil
	default:
		return rc, nil
	}
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type zstdCloser struct{ d *zstd.Decoder }

func (z zstdCloser) Close() error {
	z.d.Close()
	return nil
}
