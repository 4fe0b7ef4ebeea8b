package ir

import (
	"testing"

	"github.com/streamasm/streamasmc/literal"
)

func TestAlphabetDefDuplicateDetection(t *testing.T) {
	a := &AlphabetDef{Name: "A", CharType: "u8"}
	v41, _ := literal.Parse("0x41")
	a.AddChar(CharDef{Value: v41, Name: "A_UPPERCASE", Line: 3})

	if _, ok := a.FirstNameLine("A_UPPERCASE"); !ok {
		t.Fatal("expected A_UPPERCASE to be recorded")
	}
	if line, ok := a.FirstValueLine(0x41); !ok || line != 3 {
		t.Fatalf("FirstValueLine(0x41) = (%d, %v), want (3, true)", line, ok)
	}
	if _, ok := a.FirstNameLine("B_UPPERCASE"); ok {
		t.Fatal("did not expect B_UPPERCASE to be recorded")
	}
}

func TestProgramDefImplicitRootBlock(t *testing.T) {
	p := &ProgramDef{Name: "HelloWorld"}
	p.AddInstruction(StartMoment{Moment: Moment{Literal: "0"}, Exit: "a"})

	if len(p.Blocks) != 1 || p.Blocks[0].Name != "root" {
		t.Fatalf("expected implicit root block, got %+v", p.Blocks)
	}
	if len(p.Blocks[0].Instructions) != 1 {
		t.Fatalf("expected 1 instruction in root, got %d", len(p.Blocks[0].Instructions))
	}
}

func TestProgramDefLabelOpensNewBlock(t *testing.T) {
	p := &ProgramDef{Name: "Sync2"}
	// reg_gateway/reg_exit never touch blocks; "label main" is the
	// first block-affecting command, leaving root empty — matching
	// ProgramSync2::label_root()'s empty body in transpiled.rs.
	p.OpenLabel("main")
	p.AddInstruction(ForwardDuration{Gateway: "a", Exit: "c"})
	p.OpenLabel("a_earlier")
	p.AddInstruction(ForwardDuration{Gateway: "a", Exit: "c"})

	if len(p.Blocks) != 3 {
		t.Fatalf("expected 3 blocks (root, main, a_earlier), got %d: %+v", len(p.Blocks), p.Blocks)
	}
	if p.Blocks[0].Name != "root" || len(p.Blocks[0].Instructions) != 0 {
		t.Fatalf("expected empty root block, got %+v", p.Blocks[0])
	}
	if p.Blocks[1].Name != "main" || len(p.Blocks[1].Instructions) != 1 {
		t.Fatalf("expected main block with 1 instruction, got %+v", p.Blocks[1])
	}
	idx, ok := p.BlockIndex("a_earlier")
	if !ok || idx != 2 {
		t.Fatalf("BlockIndex(a_earlier) = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestMomentIsGatewayRef(t *testing.T) {
	if (Moment{Literal: "1"}).IsGatewayRef() {
		t.Error("literal moment should not be a gateway ref")
	}
	if !(Moment{Gateway: "a"}).IsGatewayRef() {
		t.Error("Time(a) moment should be a gateway ref")
	}
}
