package dispatch

import (
	"github.com/streamasm/streamasmc/ir"
	"github.com/streamasm/streamasmc/literal"
)

// processAlphabetCommand handles the two commands valid in
// InAlphabet, per spec.md §4.3: set_char_type T; def_char VALUE,NAME.
func processAlphabetCommand(a *ir.AlphabetDef, file string, line int, cmd string, args []string) error {
	switch cmd {
	case "set_char_type":
		if len(args) != 1 {
			return malformedArgs(file, line, cmd, 1, len(args))
		}
		if a.CharType != "" {
			return ir.ErrorAt(file, line, ir.DuplicateName,
				"set_char_type already called for alphabet %s (was %s)", a.Name, a.CharType)
		}
		a.CharType = args[0]
		return nil

	case "def_char":
		if len(args) != 2 {
			return malformedArgs(file, line, cmd, 2, len(args))
		}
		lit, err := literal.Parse(args[0])
		if err != nil {
			return ir.ErrorAt(file, line, ir.MalformedLiteral, "def_char: %v", err)
		}
		name := args[1]
		if prevLine, ok := a.FirstNameLine(name); ok {
			return ir.ErrorAt(file, line, ir.DuplicateName,
				"char name %q already defined on line %d", name, prevLine)
		}
		if prevLine, ok := a.FirstValueLine(lit.Value); ok {
			return ir.ErrorAt(file, line, ir.DuplicateName,
				"char value %s already defined on line %d", lit.Raw, prevLine)
		}
		a.AddChar(ir.CharDef{Value: lit, Name: name, Line: line})
		return nil

	default:
		return unknownCommand(file, line, cmd)
	}
}
