package errors

import (
	"slices"
	"strings"
	"unicode"
)

// Formats lists the output formats the pipeline can produce.
var Formats = []string{"json", "svg", "png", "dot", "txt"}

// ValidateFormat checks that format is one of [Formats].
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(Formats, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateRepeats checks the extra-repeats count. Any non-negative count is
// accepted.
func ValidateRepeats(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidOption, "extra repeats cannot be negative")
	}
	return nil
}

// ValidateNodeID validates a node identifier. Identifiers are single
// whitespace-free tokens of the text format.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id %q contains whitespace or control characters", id)
		}
	}
	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
