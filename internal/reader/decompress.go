package reader

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Compression names a codec detected from a file extension.
type Compression string

const (
	CompressionNone   Compression = ""
	CompressionGzip   Compression = "gzip"
	CompressionZstd   Compression = "zstd"
	CompressionLZ4    Compression = "lz4"
	CompressionBrotli Compression = "brotli"
)

var compressionExts = map[string]Compression{
	".gz":   CompressionGzip,
	".gzip": CompressionGzip,
	".zst":  CompressionZstd,
	".zstd": CompressionZstd,
	".lz4":  CompressionLZ4,
	".br":   CompressionBrotli,
}

// DetectCompression returns the codec implied by the extension of path.
func DetectCompression(path string) Compression {
	return compressionExts[strings.ToLower(filepath.Ext(path))]
}

// inputReader closes the decompressor, if it has a Close, then the file.
type inputReader struct {
	io.Reader
	file       *os.File
	closeCodec func() error
}

func (r *inputReader) Close() error {
	var err error
	if r.closeCodec != nil {
		err = r.closeCodec()
	}
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// openInput opens path and wraps it in the decompressor its extension calls
// for. The returned error wraps the *os.PathError from opening the file, so
// os.IsNotExist-style checks via errors.Is keep working.
func openInput(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}

	r := &inputReader{Reader: file, file: file}

	switch DetectCompression(path) {
	case CompressionGzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, errors.Wrapf(err, "failed to open gzip stream %s", path)
		}
		r.Reader, r.closeCodec = gz, gz.Close
	case CompressionZstd:
		zr, err := zstd.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, errors.Wrapf(err, "failed to open zstd stream %s", path)
		}
		r.Reader = zr
		r.closeCodec = func() error {
			zr.Close()
			return nil
		}
	case CompressionLZ4:
		r.Reader = lz4.NewReader(file)
	case CompressionBrotli:
		r.Reader = brotli.NewReader(file)
	}

	return r, nil
}
