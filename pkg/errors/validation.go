package errors

import (
	"strings"
	"unicode"
)

// ValidateStackName checks that a stack name is safe to embed in an output
// filename of the form <stem>_<name><ext>.
//
// The rules are intentionally conservative:
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
//
// An empty name is allowed; outputs are then named <stem>_<ext>.
func ValidateStackName(name string) error {
	if len(name) > 128 {
		return New(ErrCodeInvalidStackName, "stack name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStackName, "stack name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidStackName, "stack name contains invalid characters: %q", pattern)
		}
	}

	return nil
}
