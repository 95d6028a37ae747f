package validators

import "strings"

// Trim strips surrounding whitespace from each non-nil string in place.
func Trim(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
