package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString removes potentially dangerous characters from
// user-supplied free text (names, descriptions, shop links).
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if len(input) > 1000 {
		input = input[:1000]
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// ValidateImageContentType checks the content type of an uploaded image.
func ValidateImageContentType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png", "image/webp", "image/bmp":
		return true
	}
	return false
}

// ValidateFileSize checks if file size is within limit
func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}
