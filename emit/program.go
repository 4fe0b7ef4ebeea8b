package emit

import (
	"fmt"
	"strings"

	"github.com/streamasm/streamasmc/ident"
	"github.com/streamasm/streamasmc/ir"
)

// streamInfo is the emitter's working record for one declared gateway
// or exit: the struct field name it was minted to, its original
// source name (used verbatim in diagnostic strings, per
// transpiled.rs), and the Pascal-cased alphabet/clock carrier types
// its Stream<...> field is specialized on.
type streamInfo struct {
	Field        string
	SourceName   string
	AlphabetType string
	ClockType    string
	BufSize      string
}

func resolveStream(programName string, decl ir.StreamDecl, fieldPrefix string,
	alphabets map[string]*ir.AlphabetDef, clocks map[string]*ir.ClockDef) (streamInfo, error) {
	a, ok := alphabets[decl.Alphabet]
	if !ok {
		return streamInfo{}, ir.ErrorAt("", decl.Line, ir.UnknownReference,
			"program %s: %s%s references unknown alphabet %q", programName, fieldPrefix, decl.Name, decl.Alphabet)
	}
	c, ok := clocks[decl.Clock]
	if !ok {
		return streamInfo{}, ir.ErrorAt("", decl.Line, ir.UnknownReference,
			"program %s: %s%s references unknown clock %q", programName, fieldPrefix, decl.Name, decl.Clock)
	}
	return streamInfo{
		Field:        fieldPrefix + ident.Snake(decl.Name),
		SourceName:   decl.Name,
		AlphabetType: "Alphabet" + ident.Pascal(a.Name),
		ClockType:    "Clock" + ident.Pascal(c.Name),
		BufSize:      decl.BufSize.Raw,
	}, nil
}

// Program renders one ProgramDef to a text chunk: the ProgramP
// record, its constructor, and one label_<name> method per label
// block. Grounded on transpiled.rs's ProgramHelloWorld/ProgramSync2 —
// spec.md §4.7.
func Program(p *ir.ProgramDef, alphabets map[string]*ir.AlphabetDef, clocks map[string]*ir.ClockDef) (string, error) {
	programType := "Program" + ident.Pascal(p.Name)

	gateways := make(map[string]streamInfo, len(p.Gateways))
	var gatewayOrder []streamInfo
	for _, decl := range p.Gateways {
		info, err := resolveStream(p.Name, decl, "gateway_", alphabets, clocks)
		if err != nil {
			return "", err
		}
		gateways[decl.Name] = info
		gatewayOrder = append(gatewayOrder, info)
	}

	exits := make(map[string]streamInfo, len(p.Exits))
	var exitOrder []streamInfo
	for _, decl := range p.Exits {
		info, err := resolveStream(p.Name, decl, "exit_", alphabets, clocks)
		if err != nil {
			return "", err
		}
		exits[decl.Name] = info
		exitOrder = append(exitOrder, info)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "pub struct %s {\n", programType)
	for _, info := range gatewayOrder {
		fmt.Fprintf(&b, "    pub %s: Stream<%s, %s, %s>,\n", info.Field, info.AlphabetType, info.ClockType, info.BufSize)
	}
	for _, info := range exitOrder {
		fmt.Fprintf(&b, "    pub %s: Stream<%s, %s, %s>,\n", info.Field, info.AlphabetType, info.ClockType, info.BufSize)
	}
	b.WriteString("}\n")

	fmt.Fprintf(&b, "impl %s {\n", programType)
	b.WriteString("    pub const fn new() -> Self {\n        Self {\n")
	for _, info := range gatewayOrder {
		fmt.Fprintf(&b, "            %s: <Stream<%s, %s, %s>>::new(),\n", info.Field, info.AlphabetType, info.ClockType, info.BufSize)
	}
	for _, info := range exitOrder {
		fmt.Fprintf(&b, "            %s: <Stream<%s, %s, %s>>::new(),\n", info.Field, info.AlphabetType, info.ClockType, info.BufSize)
	}
	b.WriteString("        }\n    }\n")

	for i, block := range p.Blocks {
		fmt.Fprintf(&b, "    pub fn label_%s(&mut self) {\n", ident.Snake(block.Name))
		for _, instr := range block.Instructions {
			if err := lowerInstruction(&b, p, i, instr, gateways, exits); err != nil {
				return "", err
			}
		}
		b.WriteString("    }\n")
	}
	b.WriteString("}\n")

	return b.String(), nil
}

func mustGateway(programName string, gateways map[string]streamInfo, name string, line int) (streamInfo, error) {
	info, ok := gateways[name]
	if !ok {
		return streamInfo{}, ir.ErrorAt("", line, ir.UnknownReference,
			"program %s: reference to undeclared gateway %q", programName, name)
	}
	return info, nil
}

func mustExit(programName string, exits map[string]streamInfo, name string, line int) (streamInfo, error) {
	info, ok := exits[name]
	if !ok {
		return streamInfo{}, ir.ErrorAt("", line, ir.UnknownReference,
			"program %s: reference to undeclared exit %q", programName, name)
	}
	return info, nil
}

// lowerInstruction writes one instruction's lowered body into b. blockIdx
// is the index of the label block instr belongs to, used to enforce
// the forward-only jump invariant (spec.md §4.7/§9).
func lowerInstruction(b *strings.Builder, p *ir.ProgramDef, blockIdx int, instr ir.Instruction,
	gateways, exits map[string]streamInfo) error {
	switch v := instr.(type) {
	case ir.StartMoment:
		if v.Moment.IsGatewayRef() {
			return ir.ErrorAt("", v.At, ir.MalformedArgs,
				"program %s: start_moment does not support a Time(gateway) operand", p.Name)
		}
		exit, err := mustExit(p.Name, exits, v.Exit, v.At)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "        self.%s.set_initial_moment(%s);\n", exit.Field, v.Moment.Literal)
		return nil

	case ir.PushMoment:
		exit, err := mustExit(p.Name, exits, v.Exit, v.At)
		if err != nil {
			return err
		}
		if v.Moment.IsGatewayRef() {
			gw, err := mustGateway(p.Name, gateways, v.Moment.Gateway, v.At)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "        if self.%s.next_is_moment() {\n", gw.Field)
			fmt.Fprintf(b, "            match self.%s.pop() {\n", gw.Field)
			b.WriteString("                StreamItem::Moment(moment) => {\n")
			fmt.Fprintf(b, "                    self.%s\n", exit.Field)
			b.WriteString("                        .push_moment(moment)\n")
			fmt.Fprintf(b, "                        .expect(\"Failed to forward moment from Gateway %s to Exit %s\");\n", gw.SourceName, exit.SourceName)
			b.WriteString("                }\n")
			b.WriteString("                _ => {\n")
			b.WriteString("                    panic!(\"Unreachable Code - unexpectedly popped a non-moment when calling forward_moment()\");\n")
			b.WriteString("                }\n            }\n        } else {\n")
			fmt.Fprintf(b, "            panic!(\"Tried to forward_moment from {} to {} when the next item in the gateway, is not a Moment\", %q, %q)\n",
				gw.SourceName, exit.SourceName)
			b.WriteString("        }\n")
			return nil
		}
		fmt.Fprintf(b, "        self.%s\n", exit.Field)
		b.WriteString("            .push_moment(" + v.Moment.Literal + ")\n")
		fmt.Fprintf(b, "            .expect(\"Could not push_moment to Exit (%s)\");\n", exit.SourceName)
		return nil

	case ir.PushChar:
		exit, err := mustExit(p.Name, exits, v.Exit, v.At)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "        self.%s\n", exit.Field)
		fmt.Fprintf(b, "            .push(<%s as AlphabetLike>::CharEnum::%s())\n", exit.AlphabetType, ident.Pascal(v.Name))
		fmt.Fprintf(b, "            .expect(\"Could not push_char (%q)\");\n", v.Name)
		return nil

	case ir.PushVal:
		exit, err := mustExit(p.Name, exits, v.Exit, v.At)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "        self.%s\n", exit.Field)
		b.WriteString("            .push(\n")
		fmt.Fprintf(b, "                %s::to_char(%s)\n", exit.AlphabetType, v.Value.Raw)
		fmt.Fprintf(b, "                    .expect(\"No character found in Alphabet (%s): %q\"),\n", exit.SourceName, v.Value.Raw)
		b.WriteString("            )\n")
		fmt.Fprintf(b, "            .expect(\"Could not push_val to Exit (%s)\");\n", exit.SourceName)
		return nil

	case ir.ForwardDuration:
		gw, err := mustGateway(p.Name, gateways, v.Gateway, v.At)
		if err != nil {
			return err
		}
		exit, err := mustExit(p.Name, exits, v.Exit, v.At)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "        loop {\n            match self.%s.pop() {\n", gw.Field)
		b.WriteString("                StreamItem::Character(chr) => {\n")
		fmt.Fprintf(b, "                    self.%s\n", exit.Field)
		b.WriteString("                        .push(chr)\n")
		fmt.Fprintf(b, "                        .expect(\"Failed to forward character from Gateway %s to Exit %s\");\n", gw.SourceName, exit.SourceName)
		b.WriteString("                }\n                StreamItem::Moment(moment) => {\n")
		fmt.Fprintf(b, "                    self.%s\n", exit.Field)
		b.WriteString("                        .push_moment(moment)\n")
		fmt.Fprintf(b, "                        .expect(\"Failed to forward moment from Gateway %s to Exit %s\");\n", gw.SourceName, exit.SourceName)
		b.WriteString("                    break;\n                }\n")
		b.WriteString("                StreamItem::Empty => continue,\n            }\n        }\n")
		return nil

	case ir.JumpLessThan:
		return lowerJump(b, p, blockIdx, v.Target, v.A, v.B, v.At, gateways, "<", "(None, Some(_))")
	case ir.JumpGreaterThan:
		return lowerJump(b, p, blockIdx, v.Target, v.A, v.B, v.At, gateways, ">", "(Some(_), None)")

	case ir.Connect:
		return ir.ErrorAt("", v.At, ir.NotImplemented,
			"program %s: connect is parsed but not lowered (see DESIGN.md)", p.Name)
	case ir.RegExitGateway:
		return ir.ErrorAt("", v.At, ir.NotImplemented,
			"program %s: reg_exit_gateway is parsed but not lowered (see DESIGN.md)", p.Name)

	default:
		return ir.ErrorAt("", instr.Line(), ir.UnknownCommand, "program %s: unrecognized instruction kind %T", p.Name, instr)
	}
}

// lowerJump emits the clock-tag-guarded comparison shared by jlt/jgt,
// per spec.md §4.7. op is "<" or ">"; edgeCase is the (None,Some)/
// (Some,None) arm specific to each direction.
func lowerJump(b *strings.Builder, p *ir.ProgramDef, blockIdx int, target, aName, bName string, line int,
	gateways map[string]streamInfo, op, edgeCase string) error {
	idx, ok := p.BlockIndex(target)
	if !ok {
		return ir.ErrorAt("", line, ir.UnknownReference, "program %s: jump target label %q not found", p.Name, target)
	}
	if idx <= blockIdx {
		return ir.ErrorAt("", line, ir.UnknownReference,
			"program %s: jump target label %q does not follow the current block", p.Name, target)
	}
	a, err := mustGateway(p.Name, gateways, aName, line)
	if err != nil {
		return err
	}
	bGw, err := mustGateway(p.Name, gateways, bName, line)
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "        if %s::represents() != %s::represents() {\n", a.ClockType, bGw.ClockType)
	fmt.Fprintf(b, "            panic!(\"(Clock of) Gateway %s and (Clock of) Gateway %s being compared while not representing the same thing\");\n", a.SourceName, bGw.SourceName)
	b.WriteString("        }\n")
	fmt.Fprintf(b, "        match (self.%s.current_moment(), self.%s.current_moment()) {\n", a.Field, bGw.Field)
	fmt.Fprintf(b, "            %s => {\n                return self.label_%s();\n            }\n", edgeCase, ident.Snake(target))
	fmt.Fprintf(b, "            (Some(a), Some(b)) if a %s b => {\n                return self.label_%s();\n            }\n", op, ident.Snake(target))
	b.WriteString("            _ => (),\n        }\n")
	return nil
}
