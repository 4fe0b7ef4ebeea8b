package dispatch

import "github.com/streamasm/streamasmc/ir"

// processClockCommand handles the two commands valid in InClock, per
// spec.md §4.3: set_moment_type T; set_clock_repr TAG. Lifecycle is
// analogous to AlphabetDef per spec.md §3: each field may be set at
// most once.
func processClockCommand(c *ir.ClockDef, file string, line int, cmd string, args []string) error {
	switch cmd {
	case "set_moment_type":
		if len(args) != 1 {
			return malformedArgs(file, line, cmd, 1, len(args))
		}
		if c.MomentType != "" {
			return ir.ErrorAt(file, line, ir.DuplicateName,
				"set_moment_type already called for clock %s (was %s)", c.Name, c.MomentType)
		}
		c.MomentType = args[0]
		return nil

	case "set_clock_repr":
		if len(args) != 1 {
			return malformedArgs(file, line, cmd, 1, len(args))
		}
		if c.Representation != "" {
			return ir.ErrorAt(file, line, ir.DuplicateName,
				"set_clock_repr already called for clock %s (was %s)", c.Name, c.Representation)
		}
		c.Representation = args[0]
		return nil

	default:
		return unknownCommand(file, line, cmd)
	}
}
