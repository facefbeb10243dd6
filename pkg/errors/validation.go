package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseTrackID parses a track identifier supplied by a user (CLI flag, URL
// path segment, query parameter). Track ids are non-negative integers.
func ParseTrackID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, New(ErrCodeInvalidInput, "track id cannot be empty")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return 0, New(ErrCodeInvalidInput, "track id contains invalid control characters")
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidInput, err, "invalid track id %q", s)
	}
	if id < 0 {
		return 0, New(ErrCodeInvalidInput, "track id must not be negative: %d", id)
	}
	return id, nil
}

// ValidateFormats checks that every requested output format is one of the
// supported ones. Matching is case-sensitive; callers normalise beforehand.
func ValidateFormats(formats []string, supported []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "no output format requested")
	}
	for _, f := range formats {
		ok := false
		for _, s := range supported {
			if f == s {
				ok = true
				break
			}
		}
		if !ok {
			return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", f, strings.Join(supported, ", "))
		}
	}
	return nil
}
