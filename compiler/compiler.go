// Package compiler wires sourcelex -> dispatch -> emit into the
// StreamAsm source-to-target pipeline, the way
// original_source/src/parser/mod.rs's Parser wires parse_line and
// generate. It is peripheral glue (SPEC_FULL.md §4.10), not itself a
// spec component.
package compiler

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/streamasm/streamasmc/dispatch"
	"github.com/streamasm/streamasmc/emit"
	"github.com/streamasm/streamasmc/ir"
	"github.com/streamasm/streamasmc/sourcelex"
)

// Compiler holds the dispatcher's current state, the source filename
// and line counter, and the IR accumulated so far, grouped by kind so
// the Assembler can concatenate alphabets-then-clocks-then-programs
// regardless of how they were interleaved in the source (spec.md §4.8).
type Compiler struct {
	Filename string
	Log      *logrus.Logger

	splitter sourcelex.Splitter
	state    *dispatch.State
	lineno   int

	alphabets    []*ir.AlphabetDef
	clocks       []*ir.ClockDef
	programs     []*ir.ProgramDef
	alphabetByID map[string]*ir.AlphabetDef
	clockByID    map[string]*ir.ClockDef
}

// New returns a Compiler ready to parse source attributed to filename
// in error messages.
func New(filename string) *Compiler {
	return &Compiler{
		Filename:     filename,
		Log:          logrus.StandardLogger(),
		state:        dispatch.NewGeneral(),
		alphabetByID: make(map[string]*ir.AlphabetDef),
		clockByID:    make(map[string]*ir.ClockDef),
	}
}

// ParseLine feeds one source line through sourcelex then dispatch. It
// should be called once per line, in source order.
func (c *Compiler) ParseLine(line string) error {
	c.lineno++
	ln, ok := c.splitter.Split(line)
	if !ok {
		return ir.ErrorAt(c.Filename, c.lineno, ir.MalformedArgs, "malformed source line: %q", line)
	}
	switch ln.Kind {
	case sourcelex.Blank, sourcelex.Comment:
		return nil
	}

	switch ln.Cmd {
	case "defalphabet":
		if len(ln.Args) != 1 {
			return ir.ErrorAt(c.Filename, c.lineno, ir.MalformedArgs, "defalphabet expects 1 argument, got %d", len(ln.Args))
		}
		return c.transition(dispatch.NewAlphabet(ln.Args[0]), "defalphabet", ln.Args[0])
	case "defclock":
		if len(ln.Args) != 1 {
			return ir.ErrorAt(c.Filename, c.lineno, ir.MalformedArgs, "defclock expects 1 argument, got %d", len(ln.Args))
		}
		return c.transition(dispatch.NewClock(ln.Args[0]), "defclock", ln.Args[0])
	case "defprogram":
		if len(ln.Args) != 1 {
			return ir.ErrorAt(c.Filename, c.lineno, ir.MalformedArgs, "defprogram expects 1 argument, got %d", len(ln.Args))
		}
		return c.transition(dispatch.NewProgram(ln.Args[0]), "defprogram", ln.Args[0])
	default:
		if err := c.state.ProcessCommand(c.Filename, c.lineno, ln.Cmd, ln.Args); err != nil {
			return err
		}
		return nil
	}
}

// transition finalizes the currently open section (recording its IR
// node for later emission — never running an emitter early, since
// alphabet/clock/program chunks are only rendered once every
// reference they might need has been seen) and moves to next.
func (c *Compiler) transition(next *dispatch.State, cmd, name string) error {
	c.closeCurrent()
	c.Log.WithFields(logrus.Fields{"command": cmd, "name": name, "line": c.lineno}).Debug("entering section")
	c.state = next
	return nil
}

func (c *Compiler) closeCurrent() {
	switch c.state.Kind {
	case dispatch.InAlphabet:
		if c.state.Alphabet != nil {
			c.alphabets = append(c.alphabets, c.state.Alphabet)
			c.alphabetByID[c.state.Alphabet.Name] = c.state.Alphabet
		}
	case dispatch.InClock:
		if c.state.Clock != nil {
			c.clocks = append(c.clocks, c.state.Clock)
			c.clockByID[c.state.Clock.Name] = c.state.Clock
		}
	case dispatch.InProgram:
		if c.state.Program != nil {
			c.programs = append(c.programs, c.state.Program)
		}
	}
}

// Generate finalizes the last open section and renders the full
// artifact: preamble, then every alphabet, then every clock, then
// every program, per spec.md §4.8.
func (c *Compiler) Generate() (string, error) {
	c.closeCurrent()

	var alphabetChunks, clockChunks, programChunks []string
	for _, a := range c.alphabets {
		chunk, err := emit.Alphabet(a)
		if err != nil {
			return "", attachLocation(err, c.Filename)
		}
		alphabetChunks = append(alphabetChunks, chunk)
	}
	for _, cl := range c.clocks {
		chunk, err := emit.Clock(cl)
		if err != nil {
			return "", attachLocation(err, c.Filename)
		}
		clockChunks = append(clockChunks, chunk)
	}
	for _, p := range c.programs {
		chunk, err := emit.Program(p, c.alphabetByID, c.clockByID)
		if err != nil {
			return "", attachLocation(err, c.Filename)
		}
		programChunks = append(programChunks, chunk)
	}

	artifact := emit.Assemble(emit.Preamble, alphabetChunks, clockChunks, programChunks)
	c.Log.WithField("bytes", len(artifact)).Info("artifact generated")
	return artifact, nil
}

// attachLocation fills in the filename on CompileErrors the emitters
// raise. The emitters already attach the real source line from the
// offending ir.StreamDecl/ir.Instruction, but carry no filename of
// their own (ir has no notion of which file it was parsed from), so
// the filename is the one piece of (filename, line, message) the
// compiler must still backfill here.
func attachLocation(err error, filename string) error {
	ce, ok := err.(*ir.CompileError)
	if !ok {
		return err
	}
	if ce.File == "" {
		ce.File = filename
	}
	return fmt.Errorf("%w", ce)
}
