// Package fingerprint computes the content-derived identity hash used as the
// lookup key by fingerprint-based subtitle providers.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KennethWKZ/subfinder/internal/apperrors"
	"github.com/KennethWKZ/subfinder/internal/metrics"
)

const (
	// chunkSize is the number of bytes hashed at each sampled offset.
	chunkSize = 4096

	// minFileSize is the smallest file that can be fingerprinted: the last
	// window starts at size-8192 and every window must fit in the file.
	minFileSize = 8192 + chunkSize
)

// Compute returns the fingerprint of the video file at path.
//
// Four fixed windows of 4096 bytes are sampled at offsets 4096, 2/3 of the
// file, 1/3 of the file, and 8192 bytes before the end, each hashed with MD5.
// The result joins the four hex digests with ";" in that exact offset order;
// the remote service keys its database on this layout, so neither the
// offsets nor the order may change.
//
// The fingerprint depends only on file content and size: computing it twice
// on an unmodified file yields identical strings.
func Compute(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		metrics.FingerprintsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		metrics.FingerprintsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("stat video file: %w", err)
	}

	size := info.Size()
	if size < minFileSize {
		metrics.FingerprintsTotal.WithLabelValues("too_small").Inc()
		return "", apperrors.NewInvalidFileError(path, size)
	}

	// Offset order is significant and must not be sorted.
	offsets := [4]int64{
		chunkSize,
		size / 3 * 2,
		size / 3,
		size - 2*chunkSize,
	}

	digests := make([]string, 0, len(offsets))
	buf := make([]byte, chunkSize)
	for _, offset := range offsets {
		n, err := f.ReadAt(buf, offset)
		// A short read at true EOF is not expected given the size guard,
		// but hash whatever was read rather than failing.
		if err != nil && !errors.Is(err, io.EOF) {
			metrics.FingerprintsTotal.WithLabelValues("error").Inc()
			return "", fmt.Errorf("read %d bytes at offset %d: %w", chunkSize, offset, err)
		}
		sum := md5.Sum(buf[:n])
		digests = append(digests, hex.EncodeToString(sum[:]))
	}

	metrics.FingerprintsTotal.WithLabelValues("success").Inc()
	return strings.Join(digests, ";"), nil
}
