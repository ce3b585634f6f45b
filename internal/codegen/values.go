package codegen

import (
	"fmt"

	"github.com/minicc/minicc/internal/ast"
	"github.com/minicc/minicc/internal/ccerrors"
)

// getVal pushes the address of an lvalue: a local's frame-relative
// address, a global's RIP-relative address, or — for a dereference —
// the pointer value itself, recursing into the operand as an
// ordinary expression.
func (g *Generator) getVal(n ast.Expr) error {
	switch v := n.(type) {
	case *ast.LocalVar:
		g.rowf(true, "lea rax, [rbp-%d]", v.V.Offset)
		g.row("push rax", true)
		return nil
	case *ast.GlobalVar:
		g.rowf(true, "lea rax, %s[rip]", v.Name)
		g.row("push rax", true)
		return nil
	case *ast.Unary:
		if v.Op == ast.Deref {
			return g.genExpr(v.X)
		}
	}
	return ccerrors.InternalErr(fmt.Sprintf("%T is not an lvalue", n), n.Pos())
}

// load pops an address and pushes the value stored there, sign
// extending narrow loads to a full 64-bit rax.
func (g *Generator) load(n ast.Expr) error {
	g.row("pop rax", true)
	t := n.GetType()
	if t == nil {
		return ccerrors.InternalErr("missing type information on load", n.Pos())
	}
	switch t.Size {
	case 1:
		g.row("movsx rax, BYTE PTR [rax]", true)
	case 2:
		g.row("movsx rax, WORD PTR [rax]", true)
	case 4:
		g.row("movsxd rax, DWORD PTR [rax]", true)
	case 8:
		g.row("mov rax, QWORD PTR [rax]", true)
	default:
		return ccerrors.InternalErr(fmt.Sprintf("unsupported load size %d", t.Size), n.Pos())
	}
	g.row("push rax", true)
	return nil
}

// store pops a value then an address, writes the value at the
// width dictated by n's type, and re-pushes the value so the
// enclosing assignment expression still has a result.
func (g *Generator) store(n ast.Expr) error {
	g.row("pop rdi", true)
	g.row("pop rax", true)
	t := n.GetType()
	if t == nil {
		return ccerrors.InternalErr("missing type information on store", n.Pos())
	}
	switch t.Size {
	case 1:
		g.row("mov BYTE PTR [rax], dil", true)
	case 2:
		g.row("mov WORD PTR [rax], di", true)
	case 4:
		g.row("mov DWORD PTR [rax], edi", true)
	case 8:
		g.row("mov QWORD PTR [rax], rdi", true)
	default:
		return ccerrors.InternalErr(fmt.Sprintf("unsupported store size %d", t.Size), n.Pos())
	}
	g.row("push rdi", true)
	return nil
}

func (g *Generator) inc() {
	g.row("pop rax", true)
	g.row("add rax, 1", true)
	g.row("push rax", true)
}

func (g *Generator) dec() {
	g.row("pop rax", true)
	g.row("sub rax, 1", true)
	g.row("push rax", true)
}
