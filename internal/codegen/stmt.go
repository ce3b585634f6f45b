package codegen

import (
	"fmt"

	"github.com/minicc/minicc/internal/ast"
	"github.com/minicc/minicc/internal/ccerrors"
)

// genStmt emits s and discards the one result value genStmtValue
// guarantees it leaves on the stack. This is the single statement
// sequencer used both for a function's top-level body and for nested
// blocks, fixing the one inconsistency found in the source this is
// grounded on: there, a Block pops after every child statement but
// the function-body loop and the While/For/Do loop bodies do not,
// which would pop a value those constructs never pushed. Making every
// statement kind push exactly one value — a dummy one, for the
// control-flow forms that have nothing meaningful to report — lets a
// single sequencer discard it uniformly everywhere a statement
// appears.
func (g *Generator) genStmt(s ast.Stmt) error {
	if err := g.genStmtValue(s); err != nil {
		return err
	}
	g.row("pop rax", true)
	return nil
}

// genStmtValue emits s such that the stack depth after it returns is
// exactly one 8-byte value higher than before. Compound statements
// that wrap a single sub-statement (only LabelStmt today) delegate to
// genStmtValue directly rather than genStmt, so the wrapped
// statement's own push is the one genStmt's caller will pop — calling
// the wrapping genStmt here would pop it prematurely.
func (g *Generator) genStmtValue(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.Nop:
		g.row("push 0", true)
		return nil

	case *ast.ExprStmt:
		return g.genExpr(st.X)

	case *ast.Block:
		for _, inner := range st.Stmts {
			if err := g.genStmt(inner); err != nil {
				return err
			}
		}
		g.row("push 0", true)
		return nil

	case *ast.If:
		return g.genIf(st)

	case *ast.While:
		return g.genWhile(st)

	case *ast.For:
		return g.genFor(st)

	case *ast.DoWhile:
		return g.genDoWhile(st)

	case *ast.Break:
		g.rowf(true, "jmp .L.break.%d", g.breakSeq)
		g.row("push 0", true) // unreachable; keeps push/pop bookkeeping balanced
		return nil

	case *ast.Continue:
		g.rowf(true, "jmp .L.continue.%d", g.continueSeq)
		g.row("push 0", true)
		return nil

	case *ast.Goto:
		g.rowf(true, "jmp .L.label.%s.%s", g.funcName, st.Label)
		g.row("push 0", true)
		return nil

	case *ast.LabelStmt:
		g.rowf(false, ".L.label.%s.%s:", g.funcName, st.Name)
		return g.genStmtValue(st.Stmt)

	case *ast.Return:
		if st.Value != nil {
			if err := g.genExpr(st.Value); err != nil {
				return err
			}
			g.row("pop rax", true)
		}
		g.rowf(true, "jmp .L.return.%s", g.funcName)
		g.row("push 0", true)
		return nil
	}

	return ccerrors.InternalErr(fmt.Sprintf("codegen: unhandled statement %T", s), s.Pos())
}

// genIf uses genStmt (not genStmtValue) on its branches: by the time
// either branch returns, its own trailing pop has left the branch's
// result in rax, which the shared end label then re-pushes as If's
// own result.
func (g *Generator) genIf(st *ast.If) error {
	seq := g.nextSeq()
	if err := g.genExpr(st.Cond); err != nil {
		return err
	}
	g.row("pop rax", true)
	g.row("cmp rax, 0", true)

	if st.Else != nil {
		g.rowf(true, "je .L.else.%d", seq)
		if err := g.genStmt(st.Then); err != nil {
			return err
		}
		g.rowf(true, "jmp .L.end.%d", seq)
		g.rowf(false, ".L.else.%d:", seq)
		if err := g.genStmt(st.Else); err != nil {
			return err
		}
		g.rowf(false, ".L.end.%d:", seq)
	} else {
		g.rowf(true, "je .L.end.%d", seq)
		if err := g.genStmt(st.Then); err != nil {
			return err
		}
		g.rowf(false, ".L.end.%d:", seq)
	}
	g.row("push rax", true)
	return nil
}

func (g *Generator) genWhile(st *ast.While) error {
	seq := g.nextSeq()
	savedBreak, savedContinue := g.breakSeq, g.continueSeq
	g.breakSeq, g.continueSeq = seq, seq

	g.rowf(false, ".L.continue.%d:", seq)
	if err := g.genExpr(st.Cond); err != nil {
		return err
	}
	g.row("pop rax", true)
	g.row("cmp rax, 0", true)
	g.rowf(true, "je .L.break.%d", seq)
	if err := g.genStmt(st.Body); err != nil {
		return err
	}
	g.rowf(true, "jmp .L.continue.%d", seq)
	g.rowf(false, ".L.break.%d:", seq)
	g.row("push rax", true)

	g.breakSeq, g.continueSeq = savedBreak, savedContinue
	return nil
}

func (g *Generator) genFor(st *ast.For) error {
	seq := g.nextSeq()
	savedBreak, savedContinue := g.breakSeq, g.continueSeq
	g.breakSeq, g.continueSeq = seq, seq

	if st.Init != nil {
		if err := g.genExpr(st.Init); err != nil {
			return err
		}
		g.row("pop rax", true)
	}
	g.rowf(false, ".L.begin.%d:", seq)
	if st.Cond != nil {
		if err := g.genExpr(st.Cond); err != nil {
			return err
		}
		g.row("pop rax", true)
		g.row("cmp rax, 0", true)
		g.rowf(true, "je .L.break.%d", seq)
	}
	if err := g.genStmt(st.Body); err != nil {
		return err
	}
	g.rowf(false, ".L.continue.%d:", seq)
	if st.Inc != nil {
		if err := g.genExpr(st.Inc); err != nil {
			return err
		}
		g.row("pop rax", true)
	}
	g.rowf(true, "jmp .L.begin.%d", seq)
	g.rowf(false, ".L.break.%d:", seq)
	g.row("push rax", true)

	g.breakSeq, g.continueSeq = savedBreak, savedContinue
	return nil
}

func (g *Generator) genDoWhile(st *ast.DoWhile) error {
	seq := g.nextSeq()
	savedBreak, savedContinue := g.breakSeq, g.continueSeq
	g.breakSeq, g.continueSeq = seq, seq

	g.rowf(false, ".L.begin.%d:", seq)
	if err := g.genStmt(st.Body); err != nil {
		return err
	}
	g.rowf(false, ".L.continue.%d:", seq)
	if err := g.genExpr(st.Cond); err != nil {
		return err
	}
	g.row("pop rax", true)
	g.row("cmp rax, 0", true)
	g.rowf(true, "jne .L.begin.%d", seq)
	g.rowf(false, ".L.break.%d:", seq)
	g.row("push rax", true)

	g.breakSeq, g.continueSeq = savedBreak, savedContinue
	return nil
}
