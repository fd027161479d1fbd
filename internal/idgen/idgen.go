// Package idgen produces opaque, URL-safe file identifiers.
//
// Identifiers double as download capabilities for /file/{id}, so they are
// drawn from crypto/rand. With the default length of 16 over 62 symbols the
// space is about 2^95; no uniqueness check against stored ids is performed and
// the collision risk is accepted.
package idgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the identifier length used for stored files.
const DefaultLength = 16

// maxByte is the largest multiple of len(alphabet) that fits in a byte.
// Bytes at or above it are discarded to keep the distribution uniform.
const maxByte = 256 - (256 % len(alphabet))

var ErrInvalidLength = errors.New("id length must be positive")

// randReader is a seam for tests.
var randReader io.Reader = rand.Reader

// Generate returns a random identifier of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)
	for len(out) < length {
		if _, err := io.ReadFull(randReader, buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// New returns an identifier of DefaultLength.
func New() (string, error) {
	return Generate(DefaultLength)
}
