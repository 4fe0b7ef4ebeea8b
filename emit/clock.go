package emit

import (
	"fmt"
	"strings"

	"github.com/streamasm/streamasmc/ident"
	"github.com/streamasm/streamasmc/ir"
)

// momentVariant maps a clock's Representation tag to the ClockMoment
// variant to_moment wraps its value in. The preamble's ClockMoment
// sum (spec.md §4.6) declares exactly three variants; a
// Representation tag that names none of them (the glossary's
// NATURAL_MILLISECONDS, say) falls back to Quantity — the
// catch-all "just a number along this clock's axis" variant — since
// nothing in the corpus shows a fourth ClockMoment case. See
// DESIGN.md.
func momentVariant(tag string) string {
	switch tag {
	case "UNIX_SECONDS":
		return "UnixSeconds"
	case "UNIX_MILLISECONDS":
		return "UnixMilliseconds"
	default:
		return "Quantity"
	}
}

// Clock renders one ClockDef to a text chunk: the stateless ClockY
// carrier, to_moment, represents(), and the ClockLike/AddableClockLike
// impls. Grounded on transpiled.rs's ClockCounterClock — spec.md §4.5.
func Clock(c *ir.ClockDef) (string, error) {
	if c.MomentType == "" {
		return "", ir.ErrorAt("", 0, ir.MissingField,
			"clock %s: set_moment_type was never called", c.Name)
	}
	if c.Representation == "" {
		return "", ir.ErrorAt("", 0, ir.MissingField,
			"clock %s: set_clock_repr was never called", c.Name)
	}

	clockType := "Clock" + ident.Pascal(c.Name)
	rep := c.MomentType
	variant := momentVariant(c.Representation)

	var b strings.Builder
	fmt.Fprintf(&b, "pub struct %s {}\n", clockType)
	fmt.Fprintf(&b, "impl %s {\n", clockType)
	fmt.Fprintf(&b, "    const fn to_moment(rep: %s) -> ClockMoment<%s> {\n", rep, rep)
	fmt.Fprintf(&b, "        ClockMoment::%s(rep)\n    }\n", variant)
	fmt.Fprintf(&b, "    const fn represents() -> &'static str {\n        %q\n    }\n", c.Representation)
	b.WriteString("}\n")

	fmt.Fprintf(&b, "impl ClockLike for %s {\n", clockType)
	fmt.Fprintf(&b, "    type MomentRep = %s;\n", rep)
	b.WriteString("    fn represents(&self) -> &str {\n")
	fmt.Fprintf(&b, "        <%s>::represents()\n    }\n", clockType)
	fmt.Fprintf(&b, "    fn to_moment(rep: %s) -> ClockMoment<%s> {\n", rep, rep)
	fmt.Fprintf(&b, "        <%s>::to_moment(rep)\n    }\n", clockType)
	b.WriteString("}\n")
	fmt.Fprintf(&b, "impl AddableClockLike<%s> for %s {}\n", rep, clockType)

	return b.String(), nil
}
