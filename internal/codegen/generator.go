// Package codegen lowers a typed ast.Unit to GNU-assembler, Intel
// syntax, System V AMD64 source text. Every expression evaluates
// under a stack-machine discipline (exactly one value pushed), every
// statement discards its own pushed result, and control flow is
// expressed through a per-function table of label/break/continue
// sequence numbers rather than structured blocks. Grounded line for
// line on original_source/src/x86.rs's Generator.
package codegen

import (
	"fmt"

	"github.com/minicc/minicc/internal/asmbuilder"
	"github.com/minicc/minicc/internal/ast"
	"github.com/minicc/minicc/internal/ccerrors"
	"github.com/minicc/minicc/internal/lexer"
)

var (
	argByteRegs  = [6]string{"dil", "sil", "dl", "cl", "r8b", "r9b"}
	argWordRegs  = [6]string{"di", "si", "dx", "cx", "r8w", "r9w"}
	argDwordRegs = [6]string{"edi", "esi", "edx", "ecx", "r8d", "r9d"}
	argQwordRegs = [6]string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}
)

// Generator holds the mutable state for one compilation: the rows
// accumulated so far and, while walking a function body, that
// function's label/break/continue sequence counters and name. This
// mirrors the teacher's evaluator.Evaluator convention of a struct
// carrying mutable traversal state rather than package-level globals.
type Generator struct {
	builder *asmbuilder.Builder

	labelSeq    int
	breakSeq    int
	continueSeq int
	funcName    string
}

// New constructs a Generator ready to emit a single compilation unit.
func New() *Generator {
	return &Generator{
		builder:  asmbuilder.New(),
		labelSeq: 1,
	}
}

func (g *Generator) row(text string, indent bool) {
	g.builder.AddRow(text, indent)
}

func (g *Generator) rowf(indent bool, format string, args ...any) {
	g.builder.AddRow(fmt.Sprintf(format, args...), indent)
}

// Generate lowers unit to assembly text, in the section order of
// .intel_syntax noprefix / .text / .bss / .data / .text-per-function /
// .note.GNU-stack, and runs the peephole optimizer over the result.
func Generate(unit *ast.Unit) (string, error) {
	g := New()
	if err := g.generateUnit(unit); err != nil {
		return "", err
	}
	g.builder.Optimize()
	return g.builder.Build(), nil
}

func (g *Generator) generateUnit(unit *ast.Unit) error {
	g.row(".intel_syntax noprefix", true)
	g.row(".text", true)

	g.row(".bss", true)
	for _, gvar := range unit.Globals {
		g.rowf(true, ".globl %s", gvar.Name)
		g.row(".align 8", true)
		g.rowf(true, ".type %s, @object", gvar.Name)
		g.rowf(true, ".size %s, %d", gvar.Name, gvar.Type.Size)
		g.row(gvar.Name+":", false)
		g.rowf(true, ".zero %d", gvar.Type.Size)
		// Global initializers are never emitted: per the language's
		// zero-initialization rule, storage is reserved with .zero and
		// nothing else, regardless of whether Var.Init is set.
	}

	g.row(".data", true)
	for _, s := range unit.Strings {
		g.rowf(false, ".L.str.%d:", s.Index)
		g.rowf(true, ".string %q", s.Value)
	}

	g.row(".text", true)
	for _, fn := range unit.Functions {
		if err := g.generateFunction(fn); err != nil {
			return err
		}
	}

	g.row(`.section .note.GNU-stack,"",@progbits`, true)
	return nil
}

func (g *Generator) generateFunction(fn *ast.Function) error {
	g.funcName = fn.Name
	g.breakSeq = 0
	g.continueSeq = 0

	g.rowf(true, ".globl %s", fn.Name)
	g.rowf(true, ".type %s, @function", fn.Name)
	g.row(fn.Name+":", false)

	g.row("push rbp", true)
	g.row("mov rbp, rsp", true)

	maxOffset := 0
	if n := len(fn.Locals); n > 0 {
		maxOffset = fn.Locals[n-1].Offset
	}
	stackSize := alignUp16(maxOffset)
	if stackSize > 0 {
		g.rowf(true, "sub rsp, %d", stackSize)
	}

	// Only the declared parameters arrive in argument registers; any
	// local beyond them is pure stack storage with no register to
	// store from.
	for i, p := range fn.Params {
		reg, err := argRegFor(p.Type.Size, i, fn.Name)
		if err != nil {
			return err
		}
		g.rowf(true, "mov [rbp-%d], %s", p.Offset, reg)
	}

	for _, s := range fn.Body {
		if err := g.genStmt(s); err != nil {
			return err
		}
	}

	g.rowf(false, ".L.return.%s:", fn.Name)
	g.row("leave", true)
	g.row("ret", true)
	return nil
}

func alignUp16(n int) int {
	return (n + 15) / 16 * 16
}

func argRegFor(size, index int, funcName string) (string, error) {
	if index >= 6 {
		return "", ccerrors.InternalErr(
			fmt.Sprintf("function %q has more than 6 parameters", funcName), lexer.Position{})
	}
	switch size {
	case 1:
		return argByteRegs[index], nil
	case 2:
		return argWordRegs[index], nil
	case 4:
		return argDwordRegs[index], nil
	case 8:
		return argQwordRegs[index], nil
	default:
		return "", ccerrors.InternalErr(fmt.Sprintf("unsupported parameter size %d", size), lexer.Position{})
	}
}

func (g *Generator) nextSeq() int {
	seq := g.labelSeq
	g.labelSeq++
	return seq
}
