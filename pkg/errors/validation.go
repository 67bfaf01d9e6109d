package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxDimension bounds chip rows and columns. At the limit the densest grid
// (2*rows x 2*cols) still has a capacity that fits in an int.
const MaxDimension = 1 << 15

// ValidateDimensions validates chip row and column counts.
func ValidateDimensions(rows, cols int) error {
	if rows <= 0 {
		return New(ErrCodeInvalidInput, "chip rows must be positive, got %d", rows)
	}
	if cols <= 0 {
		return New(ErrCodeInvalidInput, "chip cols must be positive, got %d", cols)
	}
	if rows > MaxDimension {
		return New(ErrCodeInvalidInput, "chip rows must be at most %d, got %d", MaxDimension, rows)
	}
	if cols > MaxDimension {
		return New(ErrCodeInvalidInput, "chip cols must be at most %d, got %d", MaxDimension, cols)
	}
	return nil
}

// ValidateMaskLength validates a requested mask length. Zero means "use the
// longest source sequence" and is accepted.
func ValidateMaskLength(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "mask length cannot be negative, got %d", n)
	}
	return nil
}

// ValidateBaseRange validates a 1-based inclusive base range used by the
// pattern view. The zero range (0, 0) selects the whole sequence.
func ValidateBaseRange(from, to int) error {
	if from == 0 && to == 0 {
		return nil
	}
	if from < 1 {
		return New(ErrCodeInvalidRange, "range start must be >= 1, got %d", from)
	}
	if to < from {
		return New(ErrCodeInvalidRange, "range end %d is before start %d", to, from)
	}
	return nil
}

// labelRegex matches partition labels: letters, digits, dot, dash, underscore.
var labelRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidatePartitionLabel validates a partition label read from an input file.
//
// The validation rules are intentionally conservative:
//   - No empty labels
//   - No control characters or whitespace
//   - Maximum length of 64 characters
//   - Letters, digits, '.', '-' and '_' only
func ValidatePartitionLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "partition label cannot be empty")
	}

	if len(label) > 64 {
		return New(ErrCodeInvalidInput, "partition label too long (max 64 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "partition label %q contains whitespace or control characters", label)
		}
	}

	if !labelRegex.MatchString(label) {
		return New(ErrCodeInvalidInput, "invalid partition label: %q", label)
	}

	return nil
}

// ValidateFormat checks an output format name against the allowed set.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}
