// Package ir defines the intermediate representation the Command
// Dispatcher builds and the Alphabet/Clock/Program Emitters consume:
// AlphabetDef, ClockDef, ProgramDef, and the instruction set a
// ProgramDef's label blocks carry.
package ir

import "github.com/streamasm/streamasmc/literal"

// CharDef is one declared (value, name) pair inside an alphabet.
type CharDef struct {
	Value literal.Literal
	Name  string
	Line  int
}

// AlphabetDef is the IR record built while the dispatcher is in the
// InAlphabet state. CharType is set exactly once by set_char_type;
// Chars accumulates append-only via def_char.
type AlphabetDef struct {
	Name     string
	CharType string
	Chars    []CharDef

	nameLines  map[string]int
	valueLines map[int64]int
}

// FirstNameLine reports the line on which name was first declared, if
// any.
func (a *AlphabetDef) FirstNameLine(name string) (int, bool) {
	line, ok := a.nameLines[name]
	return line, ok
}

// FirstValueLine reports the line on which value was first declared,
// if any.
func (a *AlphabetDef) FirstValueLine(value int64) (int, bool) {
	line, ok := a.valueLines[value]
	return line, ok
}

// AddChar appends a char definition, recording its name/value for
// future duplicate lookups. Callers must check FirstNameLine and
// FirstValueLine before calling AddChar.
func (a *AlphabetDef) AddChar(c CharDef) {
	if a.nameLines == nil {
		a.nameLines = make(map[string]int)
	}
	if a.valueLines == nil {
		a.valueLines = make(map[int64]int)
	}
	a.Chars = append(a.Chars, c)
	a.nameLines[c.Name] = c.Line
	a.valueLines[c.Value.Value] = c.Line
}

// ClockDef is the IR record built while the dispatcher is in the
// InClock state. MomentType and Representation are each set exactly
// once, by set_moment_type and set_clock_repr respectively.
type ClockDef struct {
	Name           string
	MomentType     string
	Representation string
}

// StreamDecl is a single reg_gateway or reg_exit declaration.
type StreamDecl struct {
	Name      string
	Alphabet  string
	Clock     string
	BufSize   literal.Literal
	Line      int
}

// Moment is the operand of start_moment/push_moment: either a literal
// token or a gateway reference of the form Time(GATEWAY_NAME), per
// spec.md §6.1's TIME_EXPR and the recovered push_moment nuance in
// SPEC_FULL.md §3.
type Moment struct {
	Literal      string // set when Gateway == ""
	Gateway      string // set when this is Time(GATEWAY)
}

// IsGatewayRef reports whether this Moment names a gateway (the
// Time(GATEWAY) form) rather than carrying a literal.
func (m Moment) IsGatewayRef() bool { return m.Gateway != "" }

// Instruction is one element of a label block's instruction list. It
// is a closed set — the marker method is unexported so no package
// outside ir can introduce a new instruction kind. Line reports the
// source line the instruction was issued on, so the Program Emitter
// can attach a real location to any error it raises while lowering —
// spec.md §7 requires every error to carry (filename, line, message).
type Instruction interface {
	isInstruction()
	Line() int
}

// StartMoment lowers to exit_E.set_initial_moment(M).
type StartMoment struct {
	Moment Moment
	Exit   string
	At     int
}

// PushMoment lowers to exit_E.push_moment(M) when Moment is a literal,
// or to a forward_moment drain of Moment.Gateway when it is a gateway
// reference.
type PushMoment struct {
	Moment Moment
	Exit   string
	At     int
}

// PushChar lowers to exit_E.push(<AlphabetX>::CharEnum::Name()).
type PushChar struct {
	Name string
	Exit string
	At   int
}

// PushVal lowers to exit_E.push(AlphabetX::to_char(Value)).
type PushVal struct {
	Value literal.Literal
	Exit  string
	At    int
}

// ForwardDuration lowers to an inline drain loop from gateway_G to
// exit_E.
type ForwardDuration struct {
	Gateway string
	Exit    string
	At      int
}

// JumpLessThan lowers to a clock-tag-guarded current_moment
// comparison with a tail call to label_Target when A < B.
type JumpLessThan struct {
	Target string
	A, B   string // gateway names, from Time(A)/Time(B) TIME_EXPRs
	At     int
}

// JumpGreaterThan is the symmetric counterpart of JumpLessThan.
type JumpGreaterThan struct {
	Target string
	A, B   string
	At     int
}

// Connect and RegExitGateway are parsed into the IR (so a program
// using them is otherwise fully accepted) but rejected by the Program
// Emitter with NotImplemented — see DESIGN.md and SPEC_FULL.md §9.
type Connect struct {
	Program  string
	Gateways []string
	Name     string
	At       int
}

type RegExitGateway struct {
	Connected string
	Exit      string
	Name      string
	At        int
}

func (StartMoment) isInstruction()     {}
func (PushMoment) isInstruction()      {}
func (PushChar) isInstruction()        {}
func (PushVal) isInstruction()         {}
func (ForwardDuration) isInstruction() {}
func (JumpLessThan) isInstruction()    {}
func (JumpGreaterThan) isInstruction() {}
func (Connect) isInstruction()         {}
func (RegExitGateway) isInstruction()  {}

func (i StartMoment) Line() int     { return i.At }
func (i PushMoment) Line() int      { return i.At }
func (i PushChar) Line() int        { return i.At }
func (i PushVal) Line() int         { return i.At }
func (i ForwardDuration) Line() int { return i.At }
func (i JumpLessThan) Line() int    { return i.At }
func (i JumpGreaterThan) Line() int { return i.At }
func (i Connect) Line() int         { return i.At }
func (i RegExitGateway) Line() int  { return i.At }

// LabelBlock is the instruction sequence between one label directive
// and the next. The first block is always named "root".
type LabelBlock struct {
	Name         string
	Instructions []Instruction
}

// ProgramDef is the IR record built while the dispatcher is in the
// InProgram state.
type ProgramDef struct {
	Name     string
	Gateways []StreamDecl
	Exits    []StreamDecl
	Blocks   []LabelBlock

	streamLines map[string]int
}

// FirstStreamLine reports the line on which a gateway or exit name was
// first declared (gateway and exit names share one namespace).
func (p *ProgramDef) FirstStreamLine(name string) (int, bool) {
	line, ok := p.streamLines[name]
	return line, ok
}

func (p *ProgramDef) recordStream(name string, line int) {
	if p.streamLines == nil {
		p.streamLines = make(map[string]int)
	}
	p.streamLines[name] = line
}

// AddGateway appends a gateway declaration. Callers must check
// FirstStreamLine first.
func (p *ProgramDef) AddGateway(d StreamDecl) {
	p.Gateways = append(p.Gateways, d)
	p.recordStream(d.Name, d.Line)
}

// AddExit appends an exit declaration. Callers must check
// FirstStreamLine first.
func (p *ProgramDef) AddExit(d StreamDecl) {
	p.Exits = append(p.Exits, d)
	p.recordStream(d.Name, d.Line)
}

// currentBlock returns the open label block, lazily opening "root" if
// no instruction has been issued yet.
func (p *ProgramDef) currentBlock() *LabelBlock {
	if len(p.Blocks) == 0 {
		p.Blocks = append(p.Blocks, LabelBlock{Name: "root"})
	}
	return &p.Blocks[len(p.Blocks)-1]
}

// AddInstruction appends instr to the currently open label block,
// implicitly opening "root" if this is the first instruction in the
// program.
func (p *ProgramDef) AddInstruction(instr Instruction) {
	b := p.currentBlock()
	b.Instructions = append(b.Instructions, instr)
}

// OpenLabel closes the current block (if any are open) and opens a
// new one named name. The very first "root" block may end up empty —
// e.g. a program that declares gateways/exits and then immediately
// issues "label main" — which is valid.
func (p *ProgramDef) OpenLabel(name string) {
	p.currentBlock() // ensure root exists even if empty
	p.Blocks = append(p.Blocks, LabelBlock{Name: name})
}

// BlockIndex returns the index of the label block named name.
func (p *ProgramDef) BlockIndex(name string) (int, bool) {
	for i, b := range p.Blocks {
		if b.Name == name {
			return i, true
		}
	}
	return 0, false
}
