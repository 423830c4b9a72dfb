package notation

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"D/-A-Bb-C-D-E-F-G-A_", "D/-A-Bb-C-D-E-F-G-A"},
		{"  D3   A3\tBb3  ", "D3 A3 Bb3"},
		{"D/A__", "D/A"},
		{"D/A_ ", "D/A"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"hyphens", "-A-Bb-C", []string{"A", "Bb", "C"}},
		{"spaces", "A Bb C", []string{"A", "Bb", "C"}},
		{"groups", "(F)-(G)-A-[D]", []string{"(F)", "(G)", "A", "[D]"}},
		{"adjacent groups", "(F)(G)A[D]", []string{"(F)", "(G)", "A", "[D]"}},
		{"group with octave", "(F2)-A3", []string{"(F2)", "A3"}},
		{"spaces inside group", "( F )", []string{"(F)"}},
		{"several notes in one group", "(F G)-A", []string{"(F)", "(G)", "A"}},
		{"hyphen inside group", "[C-D]", []string{"[C]", "[D]"}},
		{"unclosed group", "A-(F", []string{"A", "(F)"}},
		{"stray closer", "A)B", []string{"A", "B"}},
		{"empty group", "A-()-B", []string{"A", "B"}},
		{"mismatched closer inside group", "(F]G)", []string{"(FG)"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		tok  string
		name string
		role Role
	}{
		{"A", "A", Tonal},
		{"(F)", "F", Bottom},
		{"[D4]", "D4", Mutant},
		{"(", "(", Tonal},
		{"[]", "", Mutant},
	}

	for _, tt := range tests {
		name, role := Classify(tt.tok)
		if name != tt.name || role != tt.role {
			t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.tok, name, role, tt.name, tt.role)
		}
	}
}
