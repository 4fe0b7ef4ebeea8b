package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamasm/streamasmc/ir"
)

func mustParseAll(t *testing.T, c *Compiler, lines []string) {
	t.Helper()
	for _, l := range lines {
		require.NoError(t, c.ParseLine(l))
	}
}

func TestCompilerHelloWorldEndToEnd(t *testing.T) {
	c := New("hello_world.stream")
	mustParseAll(t, c, []string{
		"defalphabet ASCII;",
		"set_char_type u8;",
		"def_char 0x48,H_UPPERCASE;",
		"def_char 0x65,E_LOWERCASE;",
		"def_char 0x6C,L_LOWERCASE;",
		"def_char 0x6F,O_LOWERCASE;",
		"defclock CounterClock;",
		"set_moment_type u32;",
		"set_clock_repr QUANTITY;",
		"defprogram hello_world;",
		"reg_exit A,ASCII,CounterClock,0x50;",
		"start_moment 0,A;",
		"push_moment 1,A;",
		"push_char H_UPPERCASE,A;",
		"push_char E_LOWERCASE,A;",
	})

	out, err := c.Generate()
	require.NoError(t, err)

	assert.Contains(t, out, "pub enum CharAscii {")
	assert.Contains(t, out, "pub struct ClockCounterClock {}")
	assert.Contains(t, out, "pub struct ProgramHelloWorld {")
	assert.Contains(t, out, "self.exit_a.set_initial_moment(0);")

	alphaIdx := indexOf(out, "pub enum CharAscii {")
	clockIdx := indexOf(out, "pub struct ClockCounterClock {}")
	progIdx := indexOf(out, "pub struct ProgramHelloWorld {")
	assert.True(t, alphaIdx < clockIdx)
	assert.True(t, clockIdx < progIdx)
}

func TestCompilerSectionsOutOfSourceOrderStillAssembleInFixedOrder(t *testing.T) {
	c := New("mixed.stream")
	mustParseAll(t, c, []string{
		"defprogram p;",
		"reg_exit A,ASCII,Clk,0x10;",
		"push_val 0x1,A;",
		"defalphabet ASCII;",
		"set_char_type u8;",
		"def_char 0x1,ONE;",
		"defclock Clk;",
		"set_moment_type u32;",
		"set_clock_repr QUANTITY;",
	})

	out, err := c.Generate()
	require.NoError(t, err)
	progIdx := indexOf(out, "pub struct ProgramP {")
	alphaIdx := indexOf(out, "pub enum CharAscii {")
	clockIdx := indexOf(out, "pub struct ClockClk {}")
	require.True(t, alphaIdx >= 0 && clockIdx >= 0 && progIdx >= 0)
	assert.True(t, alphaIdx < clockIdx, "alphabets must precede clocks regardless of source order")
	assert.True(t, clockIdx < progIdx, "clocks must precede programs regardless of source order")
}

func TestCompilerUnknownCommandInGeneralState(t *testing.T) {
	c := New("bad.stream")
	err := c.ParseLine("push_val 1,A;")
	require.Error(t, err)
	ce, ok := err.(*ir.CompileError)
	require.True(t, ok)
	assert.Equal(t, ir.UnknownCommand, ce.Kind)
}

func TestCompilerMalformedSourceLine(t *testing.T) {
	c := New("bad.stream")
	err := c.ParseLine("this is not valid streamasm")
	require.Error(t, err)
}

func TestCompilerBlankAndCommentLinesIgnored(t *testing.T) {
	c := New("ok.stream")
	require.NoError(t, c.ParseLine(""))
	require.NoError(t, c.ParseLine("   "))
	require.NoError(t, c.ParseLine("# a full line comment #"))
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
