package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizePolicy = bluemonday.UGCPolicy()

// Sanitize strips dangerous HTML from article content while keeping the
// formatting tags the reader UI renders.
func Sanitize(html string) string {
	return sanitizePolicy.Sanitize(html)
}
