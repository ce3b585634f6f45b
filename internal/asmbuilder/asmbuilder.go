// Package asmbuilder assembles generated instructions into a flat
// list of rows and applies a single peephole optimization over them.
// Grounded on original_source/src/asm_builder.rs, whose Row{indent,
// elements} / AsmBuilder{rows} shape carries over to Go almost
// unchanged.
package asmbuilder

import "strings"

// Row is one line of output: a directive or label (no leading tab)
// or an instruction (tab-indented), split into whitespace-separated
// tokens so the peephole pass can compare mnemonic and operand
// without re-parsing text.
type Row struct {
	Indent bool
	Tokens []string
}

// Builder accumulates rows in emission order.
type Builder struct {
	rows []Row
}

func New() *Builder {
	return &Builder{}
}

// AddRow appends a row, splitting text on whitespace into tokens.
func (b *Builder) AddRow(text string, indent bool) {
	b.rows = append(b.rows, Row{Indent: indent, Tokens: strings.Fields(text)})
}

// Build renders the accumulated rows, one per line, indented rows
// prefixed with a tab.
func (b *Builder) Build() string {
	var sb strings.Builder
	for _, row := range b.rows {
		if row.Indent {
			sb.WriteByte('\t')
		}
		sb.WriteString(strings.Join(row.Tokens, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Optimize removes adjacent "push R" / "pop R" pairs on the same
// register, which the generator routinely emits across
// get_val/load/store boundaries. Each reverse scan can expose a new
// adjacent pair just above a pair it just removed (an inner pop/push
// colliding with an outer one once the inner pair drops out); Optimize
// repeats the scan until one makes no further change, so the result
// is a genuine fixed point — running it again is always a no-op.
func (b *Builder) Optimize() {
	for b.pass() {
	}
}

// pass runs one reverse scan and reports whether it removed anything.
func (b *Builder) pass() bool {
	changed := false
	i := len(b.rows)
	for i > 1 {
		i--
		prev, cur := b.rows[i-1], b.rows[i]
		if len(prev.Tokens) == 2 && len(cur.Tokens) == 2 &&
			prev.Tokens[0] == "push" && cur.Tokens[0] == "pop" &&
			prev.Tokens[1] == cur.Tokens[1] {
			b.rows = append(b.rows[:i-1], b.rows[i+1:]...)
			i--
			changed = true
		}
	}
	return changed
}
