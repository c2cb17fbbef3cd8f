package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxChordNameLength bounds chord names accepted from users and library files.
const maxChordNameLength = 64

// ValidateChordName validates a chord name used as a library key or URL
// path segment.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 64 characters
//
// Musical spelling ("C#m7b5", "Bb/D") is not checked here.
func ValidateChordName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidChordName, "chord name cannot be empty")
	}

	if len(name) > maxChordNameLength {
		return New(ErrCodeInvalidChordName, "chord name too long (max %d characters)", maxChordNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidChordName, "chord name contains invalid characters")
		}
	}

	// Slash chords ("C/G") are legal, but not as traversal.
	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidChordName, "chord name contains invalid characters: %q", pattern)
		}
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return New(ErrCodeInvalidChordName, "chord name cannot start or end with '/'")
	}

	return nil
}

// ValidateLibraryFilename validates the filename of a chord library or theme.
// Only TOML and YAML documents are accepted.
func ValidateLibraryFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	for _, r := range filename {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}

	lower := strings.ToLower(filename)
	for _, ext := range []string{".toml", ".yaml", ".yml"} {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return New(ErrCodeInvalidPath, "unsupported file type %q (want .toml, .yaml or .yml)", filename)
}

// ValidateDimensions checks a requested drawing area.
// Both sides must be finite and strictly positive.
func ValidateDimensions(width, height float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return New(ErrCodeInvalidLayoutArea, "width must be positive, got %v", width)
	}
	if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 {
		return New(ErrCodeInvalidLayoutArea, "height must be positive, got %v", height)
	}
	return nil
}
