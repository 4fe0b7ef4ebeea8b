// Package dispatch implements the Command Dispatcher: the finite
// state machine (General, InAlphabet, InClock, InProgram) that routes
// each (cmd, args) tuple from the source grammar into the matching IR
// builder. Grounded on gmofishsauce-wut4/lang/ysem's Analyzer
// (current-state-pointer + per-kind process methods) and on
// original_source/src/parser/state/*.rs (one process_command per
// section kind).
package dispatch

import "github.com/streamasm/streamasmc/ir"

// Kind identifies which builder state is currently open.
type Kind int

const (
	General Kind = iota
	InAlphabet
	InClock
	InProgram
)

// State holds the dispatcher's current position: which kind of
// section is open, and (at most) one of the three IR builders it is
// populating.
type State struct {
	Kind     Kind
	Alphabet *ir.AlphabetDef
	Clock    *ir.ClockDef
	Program  *ir.ProgramDef
}

// NewGeneral returns the dispatcher's initial state, before any
// defalphabet/defclock/defprogram has been seen.
func NewGeneral() *State { return &State{Kind: General} }

// NewAlphabet opens a fresh InAlphabet state for a just-issued
// defalphabet NAME.
func NewAlphabet(name string) *State {
	return &State{Kind: InAlphabet, Alphabet: &ir.AlphabetDef{Name: name}}
}

// NewClock opens a fresh InClock state for a just-issued defclock NAME.
func NewClock(name string) *State {
	return &State{Kind: InClock, Clock: &ir.ClockDef{Name: name}}
}

// NewProgram opens a fresh InProgram state for a just-issued
// defprogram NAME.
func NewProgram(name string) *State {
	return &State{Kind: InProgram, Program: &ir.ProgramDef{Name: name}}
}

// ProcessCommand routes cmd/args to the builder matching s.Kind. The
// three def* commands are handled by the caller (compiler.Compiler),
// which records the current state's finished IR node and constructs
// the next State with New*; no emitter runs at that point (emission
// happens later, in Compiler.Generate). ProcessCommand only ever sees
// non-def* commands.
func (s *State) ProcessCommand(file string, line int, cmd string, args []string) error {
	switch s.Kind {
	case General:
		return ir.ErrorAt(file, line, ir.UnknownCommand,
			"command %q issued before any defalphabet/defclock/defprogram", cmd)
	case InAlphabet:
		return processAlphabetCommand(s.Alphabet, file, line, cmd, args)
	case InClock:
		return processClockCommand(s.Clock, file, line, cmd, args)
	case InProgram:
		return processProgramCommand(s.Program, file, line, cmd, args)
	default:
		return ir.ErrorAt(file, line, ir.UnknownCommand, "command %q issued in an unrecognized state", cmd)
	}
}

func malformedArgs(file string, line int, cmd string, want, got int) error {
	return ir.ErrorAt(file, line, ir.MalformedArgs,
		"%s expects %d argument(s), got %d", cmd, want, got)
}

func unknownCommand(file string, line int, cmd string) error {
	return ir.ErrorAt(file, line, ir.UnknownCommand, "unknown command %q", cmd)
}
