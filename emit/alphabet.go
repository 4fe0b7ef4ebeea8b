package emit

import (
	"fmt"
	"strings"

	"github.com/streamasm/streamasmc/ident"
	"github.com/streamasm/streamasmc/ir"
)

// Alphabet renders one AlphabetDef to a text chunk: the CharX sum
// type, the stateless AlphabetX carrier, its three associated
// functions, and the AlphabetLike impl. Grounded on
// transpiled.rs's CharAscii/AlphabetAscii — spec.md §4.4.
func Alphabet(a *ir.AlphabetDef) (string, error) {
	if a.CharType == "" {
		return "", ir.ErrorAt("", 0, ir.MissingField,
			"alphabet %s: set_char_type was never called", a.Name)
	}

	alphabetType := "Alphabet" + ident.Pascal(a.Name)
	charType := "Char" + ident.Pascal(a.Name)
	rep := a.CharType

	var b strings.Builder

	fmt.Fprintf(&b, "#[derive(Copy, Clone, Debug)]\npub enum %s {\n", charType)
	for _, c := range a.Chars {
		fmt.Fprintf(&b, "    %s(),\n", ident.Pascal(c.Name))
	}
	b.WriteString("}\n")

	fmt.Fprintf(&b, "pub struct %s {}\n", alphabetType)
	fmt.Fprintf(&b, "impl %s {\n", alphabetType)

	fmt.Fprintf(&b, "    fn char_with_name(name: &str) -> Result<%s, AlphabetError<&str>> {\n", charType)
	fmt.Fprintf(&b, "        use %s::*;\n", charType)
	b.WriteString("        match name {\n")
	for _, c := range a.Chars {
		fmt.Fprintf(&b, "            %q => Ok(%s()),\n", c.Name, ident.Pascal(c.Name))
	}
	b.WriteString("            _ => Err(AlphabetError::NameNotFound()),\n        }\n    }\n")

	fmt.Fprintf(&b, "    const fn to_char(rep: %s) -> Result<%s, AlphabetError<%s>> {\n", rep, charType, rep)
	fmt.Fprintf(&b, "        use %s::*;\n", charType)
	b.WriteString("        match rep {\n")
	for _, c := range a.Chars {
		fmt.Fprintf(&b, "            %s => Ok(%s()),\n", c.Value.Raw, ident.Pascal(c.Name))
	}
	b.WriteString("            _ => Err(AlphabetError::UnknownCharacter(rep)),\n        }\n    }\n")

	fmt.Fprintf(&b, "    const fn to_val(chr: %s) -> %s {\n", charType, rep)
	fmt.Fprintf(&b, "        use %s::*;\n", charType)
	b.WriteString("        match chr {\n")
	for _, c := range a.Chars {
		fmt.Fprintf(&b, "            %s() => %s as %s,\n", ident.Pascal(c.Name), c.Value.Raw, rep)
	}
	b.WriteString("        }\n    }\n")
	b.WriteString("}\n")

	fmt.Fprintf(&b, "impl AlphabetLike for %s {\n", alphabetType)
	fmt.Fprintf(&b, "    type CharRep = %s;\n", rep)
	fmt.Fprintf(&b, "    type CharEnum = %s;\n", charType)
	fmt.Fprintf(&b, "    fn char_with_name(name: &str) -> Result<%s, AlphabetError<&str>> {\n", charType)
	fmt.Fprintf(&b, "        <%s>::char_with_name(name)\n    }\n", alphabetType)
	fmt.Fprintf(&b, "    fn to_char(rep: %s) -> Result<%s, AlphabetError<%s>> {\n", rep, charType, rep)
	fmt.Fprintf(&b, "        <%s>::to_char(rep)\n    }\n", alphabetType)
	fmt.Fprintf(&b, "    fn to_val(chr: %s) -> %s {\n", charType, rep)
	fmt.Fprintf(&b, "        <%s>::to_val(chr)\n    }\n", alphabetType)
	b.WriteString("}\n")

	return b.String(), nil
}
