package parser

import (
	"fmt"
	"strconv"

	"github.com/minicc/minicc/internal/ast"
	"github.com/minicc/minicc/internal/ccerrors"
	"github.com/minicc/minicc/internal/lexer"
)

// compoundAssignOps maps a compound-assignment punctuator to the
// binary operator it reuses, per §4.4 ("compound assignments reuse
// the binary case").
var compoundAssignOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS_EQ:  ast.Add,
	lexer.MINUS_EQ: ast.Sub,
	lexer.STAR_EQ:  ast.Mul,
	lexer.SLASH_EQ: ast.Div,
	lexer.PCT_EQ:   ast.Rem,
	lexer.SHL_EQ:   ast.Shl,
	lexer.SHR_EQ:   ast.Shr,
	lexer.AMP_EQ:   ast.BitAnd,
	lexer.CARET_EQ: ast.BitXor,
	lexer.PIPE_EQ:  ast.BitOr,
}

// parseExpr is the grammar's `expr` production, which is simply
// `assign_expr` — there is no comma operator in this language.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignExpr()
}

// parseAssignExpr is precedence level 1: `= *= /= %= += -= <<= >>=
// &= ^= |=`, right-associative.
func (p *Parser) parseAssignExpr() (ast.Expr, error) {
	lhs, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	pos := p.tok.Pos

	if ok, err := p.match(lexer.ASSIGN); err != nil {
		return nil, err
	} else if ok {
		rhs, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		return p.mkAssign(pos, lhs, rhs), nil
	}

	if op, isCompound := compoundAssignOps[p.tok.Type]; isCompound {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		return p.mkCompoundAssign(pos, op, lhs, rhs), nil
	}

	return lhs, nil
}

// parseConditionalExpr is precedence level 2: `cond ? then : else`,
// right-associative. The then-branch is a full assign_expr; the
// else-branch recurses into conditional_expr, matching the grammar's
// `logical_or_expr "?" expr ":" conditional_expr`.
func (p *Parser) parseConditionalExpr() (ast.Expr, error) {
	cond, err := p.parseLogicalOrExpr()
	if err != nil {
		return nil, err
	}
	pos := p.tok.Pos
	ok, err := p.match(lexer.QUESTION)
	if err != nil {
		return nil, err
	}
	if !ok {
		return cond, nil
	}
	then, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	els, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	return p.mkTernary(pos, cond, then, els), nil
}

func (p *Parser) parseLogicalOrExpr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseLogicalAndExpr, map[lexer.TokenType]ast.BinaryOp{
		lexer.OROR: ast.LogicalOr,
	})
}

func (p *Parser) parseLogicalAndExpr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseInclusiveOrExpr, map[lexer.TokenType]ast.BinaryOp{
		lexer.ANDAND: ast.LogicalAnd,
	})
}

func (p *Parser) parseInclusiveOrExpr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseExclusiveOrExpr, map[lexer.TokenType]ast.BinaryOp{
		lexer.PIPE: ast.BitOr,
	})
}

func (p *Parser) parseExclusiveOrExpr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseAndExpr, map[lexer.TokenType]ast.BinaryOp{
		lexer.CARET: ast.BitXor,
	})
}

func (p *Parser) parseAndExpr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseEqualityExpr, map[lexer.TokenType]ast.BinaryOp{
		lexer.AMP: ast.BitAnd,
	})
}

func (p *Parser) parseEqualityExpr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseRelationalExpr, map[lexer.TokenType]ast.BinaryOp{
		lexer.EQ:  ast.Eq,
		lexer.NEQ: ast.Ne,
	})
}

// parseRelationalExpr handles `< <= > >=`. `>` and `>=` are normalized
// here to `Lt`/`Le` with swapped operands, per §4.2's invariant, so
// the code generator only ever sees the two forms.
func (p *Parser) parseRelationalExpr() (ast.Expr, error) {
	node, err := p.parseShiftExpr()
	if err != nil {
		return nil, err
	}
	for {
		pos := p.tok.Pos
		switch p.tok.Type {
		case lexer.LT:
			if err := p.advance(); err != nil {
				return nil, err
			}
			rhs, err := p.parseShiftExpr()
			if err != nil {
				return nil, err
			}
			node = p.mkBinary(pos, ast.Lt, node, rhs)
		case lexer.LE:
			if err := p.advance(); err != nil {
				return nil, err
			}
			rhs, err := p.parseShiftExpr()
			if err != nil {
				return nil, err
			}
			node = p.mkBinary(pos, ast.Le, node, rhs)
		case lexer.GT:
			if err := p.advance(); err != nil {
				return nil, err
			}
			rhs, err := p.parseShiftExpr()
			if err != nil {
				return nil, err
			}
			node = p.mkBinary(pos, ast.Lt, rhs, node)
		case lexer.GE:
			if err := p.advance(); err != nil {
				return nil, err
			}
			rhs, err := p.parseShiftExpr()
			if err != nil {
				return nil, err
			}
			node = p.mkBinary(pos, ast.Le, rhs, node)
		default:
			return node, nil
		}
	}
}

func (p *Parser) parseShiftExpr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseAddExpr, map[lexer.TokenType]ast.BinaryOp{
		lexer.SHL: ast.Shl,
		lexer.SHR: ast.Shr,
	})
}

func (p *Parser) parseAddExpr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseMulExpr, map[lexer.TokenType]ast.BinaryOp{
		lexer.PLUS:  ast.Add,
		lexer.MINUS: ast.Sub,
	})
}

func (p *Parser) parseMulExpr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseUnaryExpr, map[lexer.TokenType]ast.BinaryOp{
		lexer.STAR:    ast.Mul,
		lexer.SLASH:   ast.Div,
		lexer.PERCENT: ast.Rem,
	})
}

// parseLeftAssoc factors the common shape of every left-associative
// binary precedence level: parse one operand of the next-higher
// level, then repeatedly consume an operator from ops and another
// operand for as long as one matches.
func (p *Parser) parseLeftAssoc(next func() (ast.Expr, error), ops map[lexer.TokenType]ast.BinaryOp) (ast.Expr, error) {
	node, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.tok.Type]
		if !ok {
			return node, nil
		}
		pos := p.tok.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		node = p.mkBinary(pos, op, node, rhs)
	}
}

// parseUnaryExpr is precedence level 13: prefix `++ -- & * + - ~ !`
// and `sizeof`, right-associative. Unary `+` is the identity and is
// dropped; unary `-` is lowered to `0 - x`.
func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	pos := p.tok.Pos
	switch p.tok.Type {
	case lexer.INC:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return p.mkIncDec(pos, x, true, true), nil
	case lexer.DEC:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return p.mkIncDec(pos, x, true, false), nil
	case lexer.PLUS:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseUnaryExpr()
	case lexer.MINUS:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return p.mkBinary(pos, ast.Sub, p.mkNumber(pos, 0), x), nil
	case lexer.AMP:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return p.mkUnary(pos, ast.Addr, x)
	case lexer.STAR:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return p.mkUnary(pos, ast.Deref, x)
	case lexer.TILDE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return p.mkUnary(pos, ast.BitNot, x)
	case lexer.BANG:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return p.mkUnary(pos, ast.LogicalNot, x)
	case lexer.SIZEOF_KW:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		t := x.GetType()
		if t == nil {
			return nil, ccerrors.InternalErr("sizeof operand has no assigned type", pos)
		}
		return p.mkNumber(pos, int64(t.Size)), nil
	default:
		return p.parsePostfixExpr()
	}
}

// parsePostfixExpr is precedence level 14's postfix increment/decrement;
// call and subscript are handled inside parsePrimaryExpr because both
// apply only to a bare identifier in this grammar.
func (p *Parser) parsePostfixExpr() (ast.Expr, error) {
	node, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		pos := p.tok.Pos
		if ok, err := p.match(lexer.INC); err != nil {
			return nil, err
		} else if ok {
			node = p.mkIncDec(pos, node, false, true)
			continue
		}
		if ok, err := p.match(lexer.DEC); err != nil {
			return nil, err
		} else if ok {
			node = p.mkIncDec(pos, node, false, false)
			continue
		}
		return node, nil
	}
}

// parsePrimaryExpr handles parenthesized expressions, identifiers
// (variable reference, call, or subscript), string literals, and
// number literals.
func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	pos := p.tok.Pos

	if ok, err := p.match(lexer.LPAREN); err != nil {
		return nil, err
	} else if ok {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return x, nil
	}

	if p.tok.Type == lexer.IDENT {
		name := p.tok.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}

		if ok, err := p.match(lexer.LPAREN); err != nil {
			return nil, err
		} else if ok {
			args, err := p.parseArgumentExprList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			fn, found := p.sc.lookupFunc(name)
			if !found {
				return nil, ccerrors.UndefinedIdentifierErr(name, pos)
			}
			if len(args) > 6 {
				return nil, ccerrors.TooManyArgumentsErr(name, len(args), pos)
			}
			return p.mkCall(pos, name, fn, args), nil
		}

		v, isLocal, found := p.sc.lookup(name)
		if !found {
			return nil, ccerrors.UndefinedIdentifierErr(name, pos)
		}
		var varNode ast.Expr
		if isLocal {
			varNode = p.mkLocalVar(pos, v)
		} else {
			varNode = p.mkGlobalVar(pos, v)
		}

		if ok, err := p.match(lexer.LBRACK); err != nil {
			return nil, err
		} else if ok {
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACK); err != nil {
				return nil, err
			}
			addr := p.mkBinary(pos, ast.Add, varNode, idx)
			return p.mkUnary(pos, ast.Deref, addr)
		}
		return varNode, nil
	}

	if p.tok.Type == lexer.STRING {
		val := p.tok.Literal
		idx := len(p.strings)
		if err := p.advance(); err != nil {
			return nil, err
		}
		lit := p.mkString(pos, val, idx)
		p.strings = append(p.strings, ast.StringLiteral{Value: val, Index: idx})
		return lit, nil
	}

	if p.tok.Type == lexer.NUMBER {
		lit := p.tok.Literal
		n, convErr := strconv.ParseInt(lit, 10, 64)
		if convErr != nil {
			return nil, ccerrors.InvalidExpressionErr(fmt.Sprintf("invalid number literal %q", lit), pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.mkNumber(pos, n), nil
	}

	return nil, ccerrors.InvalidExpressionErr(fmt.Sprintf("unexpected %s", p.tokenDesc()), pos)
}

// parseArgumentExprList parses a comma-separated list of assign_expr
// and returns it in reverse source order (see ast.Call's doc comment
// for why the code generator wants it that way).
func (p *Parser) parseArgumentExprList() ([]ast.Expr, error) {
	if p.tok.Type == lexer.RPAREN {
		return nil, nil
	}
	var args []ast.Expr
	arg, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	args = append([]ast.Expr{arg}, args...)
	for {
		ok, err := p.match(lexer.COMMA)
		if err != nil {
			return nil, err
		}
		if !ok {
			return args, nil
		}
		arg, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		args = append([]ast.Expr{arg}, args...)
	}
}
