package parser

import (
	"github.com/minicc/minicc/internal/ast"
	"github.com/minicc/minicc/internal/ccerrors"
	"github.com/minicc/minicc/internal/lexer"
	"github.com/minicc/minicc/internal/types"
)

// This file is the type-assignment pass woven into expression
// construction (§4.3 of the component design): every mk* helper below
// both builds an expression node and fills in its type descriptor, so
// no node is ever visible to the rest of the parser or to the code
// generator without a type already set.

func (p *Parser) mkNumber(pos lexer.Position, v int64) ast.Expr {
	n := ast.NewNumber(pos, v)
	n.SetType(types.NewInt())
	return n
}

func (p *Parser) mkString(pos lexer.Position, v string, idx int) ast.Expr {
	n := ast.NewString(pos, v, idx)
	n.SetType(types.NewArray(types.NewChar(), len(v)+1))
	return n
}

func (p *Parser) mkLocalVar(pos lexer.Position, v *ast.Var) ast.Expr {
	n := ast.NewLocalVar(pos, v.Name, v)
	n.SetType(v.Type)
	return n
}

func (p *Parser) mkGlobalVar(pos lexer.Position, v *ast.Var) ast.Expr {
	n := ast.NewGlobalVar(pos, v.Name, v)
	n.SetType(v.Type)
	return n
}

// mkUnary builds a bitwise-not, logical-not, address-of, or dereference
// node. Address-of yields a pointer to the operand's type; dereference
// yields the operand's base type and is the one case that can fail,
// when the operand isn't pointer- or array-typed.
func (p *Parser) mkUnary(pos lexer.Position, op ast.UnaryOp, x ast.Expr) (ast.Expr, error) {
	n := ast.NewUnary(pos, op, x)
	switch op {
	case ast.Addr:
		n.SetType(types.NewPointer(x.GetType()))
	case ast.Deref:
		xt := x.GetType()
		if xt == nil || !xt.IsPointerOrArray() {
			return nil, ccerrors.InvalidExpressionErr("cannot dereference a non-pointer, non-array value", pos)
		}
		n.SetType(xt.BaseType())
	default: // BitNot, LogicalNot
		n.SetType(x.GetType())
	}
	return n, nil
}

func (p *Parser) mkIncDec(pos lexer.Position, x ast.Expr, pre, inc bool) ast.Expr {
	n := ast.NewIncDec(pos, x, pre, inc)
	n.SetType(x.GetType())
	return n
}

// mkBinary builds a binary node, applying the array-decay/pointer-
// scaling rewrite described in §4.2 before construction: when Add or
// Sub has a left operand of pointer or array type, the right operand
// is replaced by a multiplication scaling it by the pointee's size.
// This is also how `a[i]` becomes `*(a + i*size-of(base))`, since
// subscript lowering builds an Add through this same helper.
func (p *Parser) mkBinary(pos lexer.Position, op ast.BinaryOp, x, y ast.Expr) ast.Expr {
	if op == ast.Add || op == ast.Sub {
		if xt := x.GetType(); xt != nil && xt.IsPointerOrArray() {
			scale := ast.NewBinary(pos, ast.Mul, y, p.mkNumber(pos, int64(xt.BaseType().Size)))
			scale.SetType(types.NewLong())
			y = scale
		}
	}

	n := ast.NewBinary(pos, op, x, y)
	switch op {
	case ast.Eq, ast.Ne, ast.Lt, ast.Le, ast.LogicalAnd, ast.LogicalOr:
		n.SetType(types.NewInt())
	default:
		n.SetType(x.GetType())
	}
	return n
}

func (p *Parser) mkAssign(pos lexer.Position, target, value ast.Expr) ast.Expr {
	n := ast.NewAssign(pos, target, value)
	n.SetType(target.GetType())
	return n
}

func (p *Parser) mkCompoundAssign(pos lexer.Position, op ast.BinaryOp, target, value ast.Expr) ast.Expr {
	n := ast.NewCompoundAssign(pos, op, target, value)
	n.SetType(target.GetType())
	return n
}

func (p *Parser) mkTernary(pos lexer.Position, cond, then, els ast.Expr) ast.Expr {
	n := ast.NewTernary(pos, cond, then, els)
	n.SetType(then.GetType())
	return n
}

func (p *Parser) mkCall(pos lexer.Position, name string, fn *ast.Function, args []ast.Expr) ast.Expr {
	n := ast.NewCall(pos, name, fn, args)
	n.SetType(fn.Return)
	return n
}
