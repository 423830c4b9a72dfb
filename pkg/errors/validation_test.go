package errors

import (
	"strings"
	"testing"
)

func TestValidateLayoutString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"kurd", "D/-A-Bb-C-D-E-F-G-A_", false},
		{"multiline", "D3\nA3 C4", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"control", "D/\x00A", true},
		{"too long", strings.Repeat("A-", MaxLayoutLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayoutString(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayoutString(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestValidateInstrumentName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"Kurd 9", false},
		{"Pygmy F#3 (low)", false},
		{"Ré Hijaz", false},
		{"", true},
		{" leading space", true},
		{"<script>", true},
	}

	for _, tt := range tests {
		err := ValidateInstrumentName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateInstrumentName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidatePresetID(t *testing.T) {
	if err := ValidatePresetID("kurd-9"); err != nil {
		t.Errorf("kurd-9 should be valid: %v", err)
	}
	if err := ValidatePresetID("Kurd"); err == nil {
		t.Error("uppercase ids should be rejected")
	}
	if err := ValidatePresetID("../etc"); err == nil {
		t.Error("path-like ids should be rejected")
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidPitchClass,
		ErrCodeInvalidMode,
		ErrCodeInvalidFormat,
		ErrCodeInvalidLayout,
		ErrCodeParseFailure,
		ErrCodeNotFound,
		ErrCodePresetNotFound,
		ErrCodeRateLimited,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
