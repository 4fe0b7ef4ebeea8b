// Package ident implements the Identifier Mint: deterministic, pure
// conversions between user-written StreamAsm identifiers and the
// PascalCase/snake_case forms the emitter writes into the target
// artifact. Reserved prefixes (Alphabet, Char, Clock, Program,
// gateway_, exit_, label_) are applied by callers — this package never
// sees them.
package ident

import "unicode"

// splitWords breaks a user identifier into its constituent words at
// underscores, hyphens, spaces, case transitions, and letter/digit
// boundaries. "A_UPPERCASE" -> ["A", "UPPERCASE"]; "CounterClock" ->
// ["Counter", "Clock"]; "ASCII" -> ["ASCII"] (a single all-caps run
// with no internal lowercase never splits).
func splitWords(s string) []string {
	var words []string
	var cur []rune
	runes := []rune(s)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			continue
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					flush()
				} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					flush()
				}
			}
		case unicode.IsDigit(r):
			if i > 0 && unicode.IsLetter(runes[i-1]) {
				flush()
			}
		default:
			if i > 0 && unicode.IsDigit(runes[i-1]) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func titleWord(w string) string {
	runes := []rune(w)
	if len(runes) == 0 {
		return w
	}
	out := make([]rune, len(runes))
	out[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		out[i] = unicode.ToLower(runes[i])
	}
	return string(out)
}

// Pascal converts a user identifier to PascalCase, the form used for
// type and enum-variant names (AlphabetX, CharX, ClockY, ProgramP).
func Pascal(name string) string {
	words := splitWords(name)
	out := ""
	for _, w := range words {
		out += titleWord(w)
	}
	return out
}

// Snake converts a user identifier to snake_case, the form used for
// field and method names (gateway_*, exit_*, label_*).
func Snake(name string) string {
	words := splitWords(name)
	out := ""
	for i, w := range words {
		if i > 0 {
			out += "_"
		}
		out += lowerWord(w)
	}
	return out
}

func lowerWord(w string) string {
	runes := []rune(w)
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return string(out)
}
