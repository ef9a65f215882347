// Package id provides unique identifier generation for video jobs.
package id

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Generate creates a new job ID derived from the product name and the
// current time. Format: <product-slug>_<unix-millis>.
// Example: ecoglow_smart_garden_1701432000000.
// When the product name has no usable characters a random identifier is
// returned instead.
func Generate(productName string) string {
	slug := Slug(productName)
	if slug == "" {
		return uuid.NewString()
	}
	return fmt.Sprintf("%s_%d", slug, time.Now().UnixMilli())
}

// Slug normalizes a product name for use in identifiers and storage paths:
// lowercase, alphanumeric runs joined by single underscores.
func Slug(name string) string {
	var sb strings.Builder
	lastUnderscore := true // Suppress a leading underscore
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			sb.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(sb.String(), "_")
}
