package codegen

import (
	"fmt"

	"github.com/minicc/minicc/internal/ast"
	"github.com/minicc/minicc/internal/ccerrors"
	"github.com/minicc/minicc/internal/lexer"
)

// genExpr emits code for n under the stack-machine discipline: after
// it returns, exactly one 8-byte value sits on top of the stack.
func (g *Generator) genExpr(n ast.Expr) error {
	switch e := n.(type) {
	case *ast.NumberLit:
		g.rowf(true, "push %d", e.Value)
		return nil

	case *ast.StringLit:
		g.rowf(true, "lea rax, .L.str.%d[rip]", e.Index)
		g.row("push rax", true)
		return nil

	case *ast.LocalVar, *ast.GlobalVar:
		if err := g.getVal(e); err != nil {
			return err
		}
		// Array decay: the identifier evaluates to its own address,
		// never to a loaded value, matching the a[i] -> *(a+i) rewrite
		// the parser already applied at every use site.
		if e.GetType().IsArray() {
			return nil
		}
		return g.load(e)

	case *ast.Assign:
		if err := g.getVal(e.Target); err != nil {
			return err
		}
		if err := g.genExpr(e.Value); err != nil {
			return err
		}
		return g.store(e.Target)

	case *ast.Ternary:
		return g.genTernary(e)

	case *ast.IncDec:
		return g.genIncDec(e)

	case *ast.CompoundAssign:
		return g.genCompoundAssign(e)

	case *ast.Unary:
		return g.genUnary(e)

	case *ast.Binary:
		switch e.Op {
		case ast.LogicalAnd:
			return g.genLogicalAnd(e)
		case ast.LogicalOr:
			return g.genLogicalOr(e)
		default:
			if err := g.genExpr(e.X); err != nil {
				return err
			}
			if err := g.genExpr(e.Y); err != nil {
				return err
			}
			return g.genBinaryOp(e.Op)
		}

	case *ast.Call:
		return g.genCall(e)
	}

	return ccerrors.InternalErr(fmt.Sprintf("codegen: unhandled expression %T", n), n.Pos())
}

func (g *Generator) genUnary(e *ast.Unary) error {
	switch e.Op {
	case ast.LogicalNot:
		if err := g.genExpr(e.X); err != nil {
			return err
		}
		g.row("pop rax", true)
		g.row("cmp rax, 0", true)
		g.row("sete al", true)
		g.row("movzb rax, al", true)
		g.row("push rax", true)
		return nil

	case ast.BitNot:
		if err := g.genExpr(e.X); err != nil {
			return err
		}
		g.row("pop rax", true)
		g.row("not rax", true)
		g.row("push rax", true)
		return nil

	case ast.Addr:
		return g.getVal(e.X)

	case ast.Deref:
		if err := g.genExpr(e.X); err != nil {
			return err
		}
		return g.load(e)
	}
	return ccerrors.InternalErr(fmt.Sprintf("codegen: unhandled unary op %v", e.Op), e.Pos())
}

func (g *Generator) genTernary(e *ast.Ternary) error {
	seq := g.nextSeq()
	if err := g.genExpr(e.Cond); err != nil {
		return err
	}
	g.row("pop rax", true)
	g.row("cmp rax, 0", true)
	g.rowf(true, "je .L.else.%d", seq)
	if err := g.genExpr(e.Then); err != nil {
		return err
	}
	g.rowf(true, "jmp .L.end.%d", seq)
	g.rowf(false, ".L.else.%d:", seq)
	if err := g.genExpr(e.Else); err != nil {
		return err
	}
	g.rowf(false, ".L.end.%d:", seq)
	return nil
}

// genIncDec implements the pre/post increment/decrement trick: get
// the lvalue's address, duplicate it, load-then-update the value
// (storing the updated value back to memory and re-pushing it), and
// for the post forms apply one more inverse update so the expression
// result is the pre-update value while memory holds the post-update
// one.
func (g *Generator) genIncDec(e *ast.IncDec) error {
	if err := g.getVal(e.X); err != nil {
		return err
	}
	g.row("push [rsp]", true)
	if err := g.load(e.X); err != nil {
		return err
	}
	if e.Inc {
		g.inc()
	} else {
		g.dec()
	}
	if err := g.store(e.X); err != nil {
		return err
	}
	if !e.Pre {
		if e.Inc {
			g.dec()
		} else {
			g.inc()
		}
	}
	return nil
}

func (g *Generator) genCompoundAssign(e *ast.CompoundAssign) error {
	if err := g.getVal(e.Target); err != nil {
		return err
	}
	g.row("push [rsp]", true)
	if err := g.load(e.Target); err != nil {
		return err
	}
	if err := g.genExpr(e.Value); err != nil {
		return err
	}
	if err := g.genBinaryOp(e.Op); err != nil {
		return err
	}
	return g.store(e.Target)
}

func (g *Generator) genLogicalAnd(e *ast.Binary) error {
	seq := g.nextSeq()
	if err := g.genExpr(e.X); err != nil {
		return err
	}
	g.row("pop rax", true)
	g.row("cmp rax, 0", true)
	g.rowf(true, "je .L.false.%d", seq)
	if err := g.genExpr(e.Y); err != nil {
		return err
	}
	g.row("pop rax", true)
	g.row("cmp rax, 0", true)
	g.rowf(true, "je .L.false.%d", seq)
	g.row("push 1", true)
	g.rowf(true, "jmp .L.end.%d", seq)
	g.rowf(false, ".L.false.%d:", seq)
	g.row("push 0", true)
	g.rowf(false, ".L.end.%d:", seq)
	return nil
}

func (g *Generator) genLogicalOr(e *ast.Binary) error {
	seq := g.nextSeq()
	if err := g.genExpr(e.X); err != nil {
		return err
	}
	g.row("pop rax", true)
	g.row("cmp rax, 0", true)
	g.rowf(true, "jne .L.true.%d", seq)
	if err := g.genExpr(e.Y); err != nil {
		return err
	}
	g.row("pop rax", true)
	g.row("cmp rax, 0", true)
	g.rowf(true, "jne .L.true.%d", seq)
	g.row("push 0", true)
	g.rowf(true, "jmp .L.end.%d", seq)
	g.rowf(false, ".L.true.%d:", seq)
	g.row("push 1", true)
	g.rowf(false, ".L.end.%d:", seq)
	return nil
}

func (g *Generator) genCall(e *ast.Call) error {
	if len(e.Args) > 6 {
		return ccerrors.TooManyArgumentsErr(e.Name, len(e.Args), e.Pos())
	}
	for _, arg := range e.Args {
		if err := g.genExpr(arg); err != nil {
			return err
		}
	}
	for i := 0; i < len(e.Args); i++ {
		g.rowf(true, "pop %s", argQwordRegs[i])
	}
	g.row("mov al, 0", true)
	g.rowf(true, "call %s", e.Name)
	g.row("push rax", true)
	return nil
}

// genBinaryOp pops the right then left operand and emits the
// instruction sequence for op, shared between a plain binary
// expression and a compound assignment's implicit binary step.
func (g *Generator) genBinaryOp(op ast.BinaryOp) error {
	g.row("pop rdi", true)
	g.row("pop rax", true)

	switch op {
	case ast.Add:
		g.row("add rax, rdi", true)
	case ast.Sub:
		g.row("sub rax, rdi", true)
	case ast.Mul:
		g.row("imul rax, rdi", true)
	case ast.Div:
		g.row("cqo", true)
		g.row("idiv rdi", true)
	case ast.Rem:
		g.row("cqo", true)
		g.row("idiv rdi", true)
		g.row("mov rax, rdx", true)
	case ast.BitAnd:
		g.row("and rax, rdi", true)
	case ast.BitOr:
		g.row("or rax, rdi", true)
	case ast.BitXor:
		g.row("xor rax, rdi", true)
	case ast.Shl:
		g.row("mov cl, dil", true)
		g.row("shl rax, cl", true)
	case ast.Shr:
		g.row("mov cl, dil", true)
		g.row("shr rax, cl", true)
	case ast.Eq:
		g.row("cmp rax, rdi", true)
		g.row("sete al", true)
		g.row("movzb rax, al", true)
	case ast.Ne:
		g.row("cmp rax, rdi", true)
		g.row("setne al", true)
		g.row("movzb rax, al", true)
	case ast.Lt:
		g.row("cmp rax, rdi", true)
		g.row("setl al", true)
		g.row("movzb rax, al", true)
	case ast.Le:
		g.row("cmp rax, rdi", true)
		g.row("setle al", true)
		g.row("movzb rax, al", true)
	default:
		return ccerrors.InternalErr(fmt.Sprintf("codegen: unhandled binary op %v", op), lexer.Position{})
	}
	g.row("push rax", true)
	return nil
}
