package emit

import "strings"

// Assemble concatenates the preamble and the rendered alphabet,
// clock, and program chunks, in that fixed order, per spec.md §4.8.
// Sections are separated by a single newline; no other
// post-processing is performed.
func Assemble(preamble string, alphabetChunks, clockChunks, programChunks []string) string {
	var b strings.Builder
	b.WriteString(preamble)
	for _, c := range alphabetChunks {
		b.WriteString(c)
		b.WriteString("\n")
	}
	for _, c := range clockChunks {
		b.WriteString(c)
		b.WriteString("\n")
	}
	for _, c := range programChunks {
		b.WriteString(c)
		b.WriteString("\n")
	}
	return b.String()
}
