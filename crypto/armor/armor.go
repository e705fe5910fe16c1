// Package armor turns serialized ciphertexts into compact printable text and
// back: gzip compression followed by standard base64.
package armor

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// MaxUnwrappedSize bounds the decompressed size accepted by Unwrap.
const MaxUnwrappedSize = 64 << 20

// ErrTooLarge is returned when the armored payload inflates past
// MaxUnwrappedSize.
var ErrTooLarge = errors.New("armored payload too large")

// Wrap compresses text and returns it base64 encoded.
func Wrap(text string) (string, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := io.WriteString(zw, text); err != nil {
		return "", fmt.Errorf("cannot compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("cannot compress: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Unwrap is the inverse of Wrap.
func Unwrap(armored string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(armored)
	if err != nil {
		return "", fmt.Errorf("invalid base64: %w", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("invalid gzip stream: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, MaxUnwrappedSize+1))
	if err != nil {
		return "", fmt.Errorf("cannot decompress: %w", err)
	}
	if len(out) > MaxUnwrappedSize {
		return "", ErrTooLarge
	}
	return string(out), nil
}
