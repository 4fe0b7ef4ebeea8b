package literal

import (
	"errors"
	"testing"
)

func TestParseValid(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"80", 80},
		{"0x50", 0x50},
		{"0X50", 0x50},
		{"0x2C", 0x2C},
		{"0x41", 0x41},
	}
	for _, c := range cases {
		lit, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", c.in, err)
		}
		if lit.Value != c.want {
			t.Errorf("Parse(%q).Value = %d, want %d", c.in, lit.Value, c.want)
		}
		if lit.Raw != c.in {
			t.Errorf("Parse(%q).Raw = %q, want %q (verbatim)", c.in, lit.Raw, c.in)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"", "0x", "xyz", "0x41g", "-5", "4.2", " 5"} {
		_, err := Parse(in)
		if err == nil {
			t.Errorf("Parse(%q) expected error, got nil", in)
			continue
		}
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformed", in, err)
		}
	}
}
