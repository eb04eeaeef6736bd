// Package cryptids generates random identifiers from crypto/rand.
package cryptids

import (
	"crypto/rand"
	"fmt"
)

var (
	// IDAlphabet avoids vowels so generated ids never spell anything.
	IDAlphabet = "bcdfghjklmnpqrstvwxyzBCDFGHJKLMNPQRSTVWXYZ0123456789"
	IDLength   = 18

	// TokenLength is used for session tokens, which want more entropy than
	// plain record ids.
	TokenLength = 42
)

// GenerateID creates a random string using the package defaults.
func GenerateID() (string, error) {
	return generateID(IDAlphabet, IDLength)
}

// GenerateToken creates a longer random string suitable for bearer tokens.
func GenerateToken() (string, error) {
	return generateID(IDAlphabet, TokenLength)
}

// GenerateCustomID creates a random string from the given alphabet and size.
func GenerateCustomID(alphabet string, size int) (string, error) {
	return generateID(alphabet, size)
}

func generateID(alphabet string, size int) (string, error) {
	if len(alphabet) < 2 {
		return "", fmt.Errorf("alphabet must contain at least 2 characters")
	}
	if size < 1 {
		return "", fmt.Errorf("size must be at least 1")
	}

	// Mask to the closest power of two so the modulo bias disappears; indexes
	// past the alphabet length are skipped and re-drawn.
	mask := 1
	for mask < len(alphabet) {
		mask = (mask << 1) | 1
	}

	step := int(float64(size) * 1.6)
	if step < size {
		step = size
	}

	id := make([]byte, size)
	bytes := make([]byte, step)

	idIndex := 0
	for idIndex < size {
		if _, err := rand.Read(bytes); err != nil {
			return "", err
		}

		for i := 0; i < len(bytes) && idIndex < size; i++ {
			alphabetIndex := int(bytes[i]) & mask
			if alphabetIndex >= len(alphabet) {
				continue
			}
			id[idIndex] = alphabet[alphabetIndex]
			idIndex++
		}
	}

	return string(id), nil
}
