// Package literal implements the Literal Parser: acceptance of the
// decimal and hex numeric tokens used for alphabet byte values, buffer
// sizes, and moment increments. The returned token carries both the
// parsed numeric value (used internally for duplicate-value checks)
// and the original source text, which the emitter inserts verbatim —
// type fit against the target CharRep/MomentRep is left to the target
// compiler.
package literal

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	decimalRe = regexp.MustCompile(`^[0-9]+$`)
	hexRe     = regexp.MustCompile(`^0[xX][0-9A-Fa-f]+$`)
)

// Literal is a parsed numeric token. Raw is embedded verbatim into
// emitted code; Value is used only by the compiler's own
// duplicate-value checks.
type Literal struct {
	Raw   string
	Value int64
}

// ErrMalformed is returned (wrapped) when a token is neither a
// decimal nor a 0x-hex literal.
var ErrMalformed = fmt.Errorf("malformed literal")

// Parse accepts a decimal (\d+) or hex (0x[0-9A-Fa-f]+) token. An
// empty or otherwise malformed token is rejected.
func Parse(tok string) (Literal, error) {
	switch {
	case decimalRe.MatchString(tok):
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return Literal{}, fmt.Errorf("%w: %q: %v", ErrMalformed, tok, err)
		}
		return Literal{Raw: tok, Value: v}, nil
	case hexRe.MatchString(tok):
		v, err := strconv.ParseInt(tok[2:], 16, 64)
		if err != nil {
			return Literal{}, fmt.Errorf("%w: %q: %v", ErrMalformed, tok, err)
		}
		return Literal{Raw: tok, Value: v}, nil
	default:
		return Literal{}, fmt.Errorf("%w: %q", ErrMalformed, tok)
	}
}
