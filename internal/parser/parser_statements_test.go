package parser

import (
	"testing"

	"github.com/minicc/minicc/internal/ast"
)

func TestDeclarationWithoutInitializerLowersToNop(t *testing.T) {
	fn := parseFuncBody(t, "int f() { int a; return 0; }")
	if _, ok := fn.Body[0].(*ast.Nop); !ok {
		t.Fatalf("got %T, want *Nop", fn.Body[0])
	}
}

func TestDeclarationWithInitializerLowersToAssignment(t *testing.T) {
	fn := parseFuncBody(t, "int f() { int a = 3; return a; }")
	exprStmt, ok := fn.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T, want *ExprStmt", fn.Body[0])
	}
	assign, ok := exprStmt.X.(*ast.Assign)
	if !ok {
		t.Fatalf("got %T, want *Assign", exprStmt.X)
	}
	if assign.Value.(*ast.NumberLit).Value != 3 {
		t.Fatalf("got initializer %v, want 3", assign.Value)
	}
	if fn.Locals[0].Init == nil {
		t.Fatal("Var.Init was not set")
	}
}

func TestIfElseStatement(t *testing.T) {
	fn := parseFuncBody(t, "int f(int a) { if (a) return 1; else return 2; return 0; }")
	ifStmt, ok := fn.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *If", fn.Body[0])
	}
	if ifStmt.Then == nil || ifStmt.Else == nil {
		t.Fatal("expected both branches to be set")
	}
}

func TestIfWithoutElseHasNilElse(t *testing.T) {
	fn := parseFuncBody(t, "int f(int a) { if (a) return 1; return 0; }")
	ifStmt := fn.Body[0].(*ast.If)
	if ifStmt.Else != nil {
		t.Fatal("expected nil Else")
	}
}

func TestWhileLoop(t *testing.T) {
	fn := parseFuncBody(t, "int f() { int i; i = 0; while (i < 10) i = i + 1; return i; }")
	w, ok := fn.Body[2].(*ast.While)
	if !ok {
		t.Fatalf("got %T, want *While", fn.Body[2])
	}
	if w.Cond == nil || w.Body == nil {
		t.Fatal("while loop missing cond or body")
	}
}

func TestForLoopAllThreeClauses(t *testing.T) {
	fn := parseFuncBody(t, "int f() { int i; int s; s = 0; for (i = 0; i < 10; i = i + 1) s = s + i; return s; }")
	var forStmt *ast.For
	for _, s := range fn.Body {
		if f, ok := s.(*ast.For); ok {
			forStmt = f
		}
	}
	if forStmt == nil {
		t.Fatal("no for statement found")
	}
	if forStmt.Init == nil || forStmt.Cond == nil || forStmt.Inc == nil {
		t.Fatal("expected all three for-clauses to be present")
	}
}

func TestForLoopWithOmittedClauses(t *testing.T) {
	fn := parseFuncBody(t, "int f() { for (;;) return 0; return 1; }")
	forStmt := fn.Body[0].(*ast.For)
	if forStmt.Init != nil || forStmt.Cond != nil || forStmt.Inc != nil {
		t.Fatal("expected all for-clauses to be nil")
	}
}

func TestDoWhileLoop(t *testing.T) {
	fn := parseFuncBody(t, "int f() { int i; i = 0; do i = i + 1; while (i < 10); return i; }")
	dw, ok := fn.Body[2].(*ast.DoWhile)
	if !ok {
		t.Fatalf("got %T, want *DoWhile", fn.Body[2])
	}
	if dw.Body == nil || dw.Cond == nil {
		t.Fatal("do-while missing body or cond")
	}
}

func TestBreakAndContinue(t *testing.T) {
	fn := parseFuncBody(t, `int f() {
		int i;
		for (i = 0; i < 10; i = i + 1) {
			if (i == 5) break;
			if (i == 2) continue;
		}
		return i;
	}`)
	forStmt := fn.Body[1].(*ast.For)
	body := forStmt.Body.(*ast.Block)
	if len(body.Stmts) != 2 {
		t.Fatalf("got %d stmts in loop body, want 2", len(body.Stmts))
	}
}

func TestGotoAndLabel(t *testing.T) {
	fn := parseFuncBody(t, "int f() { goto done; return 1; done: return 0; }")
	g, ok := fn.Body[0].(*ast.Goto)
	if !ok || g.Label != "done" {
		t.Fatalf("got %#v, want Goto{done}", fn.Body[0])
	}
	label, ok := fn.Body[2].(*ast.LabelStmt)
	if !ok || label.Name != "done" {
		t.Fatalf("got %#v, want LabelStmt{done}", fn.Body[2])
	}
}

func TestBareReturnInVoidFunction(t *testing.T) {
	fn := parseFuncBody(t, "void f() { return; }")
	ret := fn.Body[0].(*ast.Return)
	if ret.Value != nil {
		t.Fatal("expected nil return value")
	}
}

func TestBareSemicolonIsNop(t *testing.T) {
	fn := parseFuncBody(t, "int f() { ; return 0; }")
	if _, ok := fn.Body[0].(*ast.Nop); !ok {
		t.Fatalf("got %T, want *Nop", fn.Body[0])
	}
}

func TestNestedBlock(t *testing.T) {
	fn := parseFuncBody(t, "int f() { { int a; a = 1; } return 0; }")
	if _, ok := fn.Body[0].(*ast.Block); !ok {
		t.Fatalf("got %T, want *Block", fn.Body[0])
	}
}
