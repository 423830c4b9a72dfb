package notation

import (
	"strings"
)

// Normalize prepares a raw layout string for tokenizing: it trims surrounding
// whitespace, strips trailing underscores and collapses internal whitespace
// runs to single spaces.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "_")
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize splits a notes part into raw tokens. Tokens are separated by
// '-', ' ', and the group delimiters themselves. A note inside "(...)" or
// "[...]" is emitted wrapped in its group pair ("(F)", "[D4]"); bare tokens
// are emitted as-is.
//
// The strict grammar treats a group as a single note and never splits inside
// it. Tokenize is more lenient: '-' and ' ' inside a group separate notes, so
// a group holding several notes ("(F G)", "[C-D]") yields one wrapped token
// per note. Single-note groups tokenize the same either way. A group left open
// at the end of input is closed implicitly. Empty groups produce nothing.
func Tokenize(s string) []string {
	var (
		tokens []string
		acc    strings.Builder
		group  rune // 0 outside a group, else '(' or '['
	)

	flush := func() {
		if acc.Len() == 0 {
			return
		}
		tok := acc.String()
		if group != 0 {
			tok = string(group) + tok + string(closer(group))
		}
		tokens = append(tokens, tok)
		acc.Reset()
	}

	for _, r := range s {
		if group != 0 {
			switch {
			case r == closer(group):
				flush()
				group = 0
			case isSeparator(r):
				flush()
			case isGroupDelimiter(r):
				// Nested or mismatched delimiters inside a group are dropped.
			default:
				acc.WriteRune(r)
			}
			continue
		}

		switch {
		case r == '(' || r == '[':
			flush()
			group = r
		case isSeparator(r) || r == ')' || r == ']':
			flush()
		default:
			acc.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// Classify strips a token's group wrapping and returns the bare note text
// with the role the wrapping implies. Unwrapped tokens are Tonal.
func Classify(tok string) (string, Role) {
	if len(tok) >= 2 {
		switch {
		case tok[0] == '(' && tok[len(tok)-1] == ')':
			return tok[1 : len(tok)-1], Bottom
		case tok[0] == '[' && tok[len(tok)-1] == ']':
			return tok[1 : len(tok)-1], Mutant
		}
	}
	return tok, Tonal
}

// splitExtended separates "root/notes". ok is false when no '/' is present.
func splitExtended(s string) (root, notes string, ok bool) {
	root, notes, ok = strings.Cut(s, "/")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(root), notes, true
}

func closer(open rune) rune {
	if open == '[' {
		return ']'
	}
	return ')'
}

func isSeparator(r rune) bool {
	return r == '-' || r == ' ' || r == '\t' || r == '\n'
}

func isGroupDelimiter(r rune) bool {
	return r == '(' || r == ')' || r == '[' || r == ']'
}
