package sourcelex

import "testing"

func TestSplitBlank(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		ln, ok := (Splitter{}).Split(line)
		if !ok || ln.Kind != Blank {
			t.Errorf("Split(%q) = %+v, %v; want Blank, true", line, ln, ok)
		}
	}
}

func TestSplitComment(t *testing.T) {
	ln, ok := (Splitter{}).Split("# this is a comment #")
	if !ok || ln.Kind != Comment {
		t.Errorf("Split(comment) = %+v, %v; want Comment, true", ln, ok)
	}
}

func TestSplitCommandSingleArg(t *testing.T) {
	ln, ok := (Splitter{}).Split("label main;")
	if !ok || ln.Kind != Command {
		t.Fatalf("Split(label main;) = %+v, %v; want Command, true", ln, ok)
	}
	if ln.Cmd != "label" {
		t.Errorf("Cmd = %q, want %q", ln.Cmd, "label")
	}
	if len(ln.Args) != 1 || ln.Args[0] != "main" {
		t.Errorf("Args = %v, want [main]", ln.Args)
	}
}

func TestSplitCommandMultiArgs(t *testing.T) {
	ln, ok := (Splitter{}).Split("def_char 0x41,A_UPPERCASE;")
	if !ok || ln.Kind != Command {
		t.Fatalf("Split failed: %+v, %v", ln, ok)
	}
	if ln.Cmd != "def_char" {
		t.Errorf("Cmd = %q", ln.Cmd)
	}
	if len(ln.Args) != 2 || ln.Args[0] != "0x41" || ln.Args[1] != "A_UPPERCASE" {
		t.Errorf("Args = %v, want [0x41 A_UPPERCASE]", ln.Args)
	}
}

func TestSplitCommandSurroundingWhitespace(t *testing.T) {
	ln, ok := (Splitter{}).Split("   reg_exit A,ASCII,CounterClock,0x50;   ")
	if !ok || ln.Kind != Command || ln.Cmd != "reg_exit" {
		t.Fatalf("Split failed: %+v, %v", ln, ok)
	}
	if len(ln.Args) != 4 {
		t.Errorf("Args = %v, want 4 elements", ln.Args)
	}
}

func TestSplitMalformed(t *testing.T) {
	_, ok := (Splitter{}).Split("this is not valid streamasm")
	if ok {
		t.Errorf("expected Split to reject malformed line")
	}
}
