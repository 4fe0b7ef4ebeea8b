package dispatch

import (
	"regexp"

	"github.com/streamasm/streamasmc/ir"
	"github.com/streamasm/streamasmc/literal"
)

var (
	timeExprRe = regexp.MustCompile(`^Time\(([A-Za-z0-9_]+)\)$`)
	// parenCallRe captures the "NAME(INNER)" shape shared
	// by connect's PROGRAM(GATEWAY|GATEWAY|...) and reg_exit_gateway's
	// CONNECTED(EXIT) operands.
	parenCallRe = regexp.MustCompile(`^([A-Za-z0-9_]+)\(([^)]*)\)$`)
)

// parseMoment accepts either a bare literal or the Time(GATEWAY) form
// documented in spec.md §6.1 (TIME_EXPR) and SPEC_FULL.md §3.
func parseMoment(file string, line int, tok string) (ir.Moment, error) {
	if m := timeExprRe.FindStringSubmatch(tok); m != nil {
		return ir.Moment{Gateway: m[1]}, nil
	}
	if _, err := literal.Parse(tok); err != nil {
		return ir.Moment{}, ir.ErrorAt(file, line, ir.MalformedLiteral, "moment operand: %v", err)
	}
	return ir.Moment{Literal: tok}, nil
}

// parseTimeExpr accepts only the Time(GATEWAY) form (used by jlt/jgt,
// which always compare gateway moments, never literals).
func parseTimeExpr(file string, line int, tok string) (string, error) {
	m := timeExprRe.FindStringSubmatch(tok)
	if m == nil {
		return "", ir.ErrorAt(file, line, ir.MalformedArgs, "expected Time(GATEWAY), got %q", tok)
	}
	return m[1], nil
}

func splitPipeList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '|' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return out
}

// processProgramCommand handles every command valid in InProgram, per
// spec.md §4.3 and the grammar in §6.1.
func processProgramCommand(p *ir.ProgramDef, file string, line int, cmd string, args []string) error {
	switch cmd {
	case "reg_gateway", "reg_exit":
		if len(args) != 4 {
			return malformedArgs(file, line, cmd, 4, len(args))
		}
		name, alphabetRef, clockRef, bufTok := args[0], args[1], args[2], args[3]
		if prevLine, ok := p.FirstStreamLine(name); ok {
			return ir.ErrorAt(file, line, ir.DuplicateName,
				"gateway/exit name %q already declared on line %d", name, prevLine)
		}
		buf, err := literal.Parse(bufTok)
		if err != nil {
			return ir.ErrorAt(file, line, ir.MalformedLiteral, "%s buffer size: %v", cmd, err)
		}
		decl := ir.StreamDecl{Name: name, Alphabet: alphabetRef, Clock: clockRef, BufSize: buf, Line: line}
		if cmd == "reg_gateway" {
			p.AddGateway(decl)
		} else {
			p.AddExit(decl)
		}
		return nil

	case "start_moment", "push_moment":
		if len(args) != 2 {
			return malformedArgs(file, line, cmd, 2, len(args))
		}
		moment, err := parseMoment(file, line, args[0])
		if err != nil {
			return err
		}
		if cmd == "start_moment" {
			p.AddInstruction(ir.StartMoment{Moment: moment, Exit: args[1], At: line})
		} else {
			p.AddInstruction(ir.PushMoment{Moment: moment, Exit: args[1], At: line})
		}
		return nil

	case "push_char":
		if len(args) != 2 {
			return malformedArgs(file, line, cmd, 2, len(args))
		}
		p.AddInstruction(ir.PushChar{Name: args[0], Exit: args[1], At: line})
		return nil

	case "push_val":
		if len(args) != 2 {
			return malformedArgs(file, line, cmd, 2, len(args))
		}
		val, err := literal.Parse(args[0])
		if err != nil {
			return ir.ErrorAt(file, line, ir.MalformedLiteral, "push_val: %v", err)
		}
		p.AddInstruction(ir.PushVal{Value: val, Exit: args[1], At: line})
		return nil

	case "forward_duration":
		if len(args) != 2 {
			return malformedArgs(file, line, cmd, 2, len(args))
		}
		p.AddInstruction(ir.ForwardDuration{Gateway: args[0], Exit: args[1], At: line})
		return nil

	case "label":
		if len(args) != 1 {
			return malformedArgs(file, line, cmd, 1, len(args))
		}
		p.OpenLabel(args[0])
		return nil

	case "jlt", "jgt":
		if len(args) != 3 {
			return malformedArgs(file, line, cmd, 3, len(args))
		}
		a, err := parseTimeExpr(file, line, args[1])
		if err != nil {
			return err
		}
		b, err := parseTimeExpr(file, line, args[2])
		if err != nil {
			return err
		}
		if cmd == "jlt" {
			p.AddInstruction(ir.JumpLessThan{Target: args[0], A: a, B: b, At: line})
		} else {
			p.AddInstruction(ir.JumpGreaterThan{Target: args[0], A: a, B: b, At: line})
		}
		return nil

	case "connect":
		if len(args) != 2 {
			return malformedArgs(file, line, cmd, 2, len(args))
		}
		m := parenCallRe.FindStringSubmatch(args[0])
		if m == nil {
			return ir.ErrorAt(file, line, ir.MalformedArgs, "connect: expected PROGRAM(GATEWAY|...), got %q", args[0])
		}
		p.AddInstruction(ir.Connect{Program: m[1], Gateways: splitPipeList(m[2]), Name: args[1], At: line})
		return nil

	case "reg_exit_gateway":
		if len(args) != 2 {
			return malformedArgs(file, line, cmd, 2, len(args))
		}
		m := parenCallRe.FindStringSubmatch(args[0])
		if m == nil {
			return ir.ErrorAt(file, line, ir.MalformedArgs, "reg_exit_gateway: expected CONNECTED(EXIT), got %q", args[0])
		}
		p.AddInstruction(ir.RegExitGateway{Connected: m[1], Exit: m[2], Name: args[1], At: line})
		return nil

	default:
		return unknownCommand(file, line, cmd)
	}
}
