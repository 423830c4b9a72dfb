package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxLayoutLength bounds the raw notation accepted from untrusted callers.
// Real layouts are a few dozen tokens; anything longer is rejected before parsing.
const MaxLayoutLength = 512

// ValidateLayoutString validates a raw notation string for safety before it
// reaches the parser. It does not check musical content.
//
// Validation rules:
//   - Not empty after trimming
//   - Maximum length of MaxLayoutLength bytes
//   - No control characters other than tab and newline
func ValidateLayoutString(s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidInput, "layout cannot be empty")
	}

	if len(s) > MaxLayoutLength {
		return New(ErrCodeInvalidInput, "layout too long (max %d characters)", MaxLayoutLength)
	}

	for _, r := range s {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "layout contains invalid control characters")
		}
	}

	return nil
}

// instrumentNameRegex matches printable instrument names.
var instrumentNameRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ._#()'&-]*$`)

// ValidateInstrumentName validates a display name for a stored instrument.
func ValidateInstrumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "instrument name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "instrument name too long (max 128 characters)")
	}

	if !instrumentNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid instrument name: %q", name)
	}

	return nil
}

// presetIDRegex matches catalog identifiers such as "kurd-9" or "low_pygmy".
var presetIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidatePresetID validates a preset catalog identifier.
func ValidatePresetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "preset id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "preset id too long (max 64 characters)")
	}
	if !presetIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid preset id: %q", id)
	}
	return nil
}
