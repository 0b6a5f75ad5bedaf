package utils

import (
	"crypto/rand"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SuffixLength is the number of random characters in an output file name
const SuffixLength = 6

// SuffixSource produces the random part of an output file name
type SuffixSource interface {
	Suffix() (string, error)
}

// UUIDSuffix takes the first characters of a random UUID drawn from Rand.
// A nil Rand uses crypto/rand.
type UUIDSuffix struct {
	Rand io.Reader
}

func (u UUIDSuffix) Suffix() (string, error) {
	r := u.Rand
	if r == nil {
		r = rand.Reader
	}
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to generate output suffix: %w", err)
	}
	return id.String()[:SuffixLength], nil
}

// OutputPath places the processed file next to the input:
// <input without extension>_processed_<suffix>.csv
func OutputPath(inputPath string, src SuffixSource) (string, error) {
	suffix, err := src.Suffix()
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return fmt.Sprintf("%s_processed_%s.csv", base, suffix), nil
}
