package parser

import (
	"github.com/minicc/minicc/internal/ast"
	"github.com/minicc/minicc/internal/ccerrors"
	"github.com/minicc/minicc/internal/lexer"
)

// parseCompoundStmt parses `"{" (declaration | stmt)* "}"`. A type
// keyword at the start of an item dispatches to a declaration;
// anything else is an ordinary statement.
func (p *Parser) parseCompoundStmt() (*ast.Block, error) {
	pos := p.tok.Pos
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for p.tok.Type != lexer.RBRACE {
		if p.tok.Type == lexer.EOF {
			return nil, ccerrors.UnexpectedTokenErr("}", "EOF", p.tok.Pos)
		}
		var (
			s   ast.Stmt
			err error
		)
		if lexer.IsTypeKeyword(p.tok.Type) {
			s, err = p.parseDeclaration()
		} else {
			s, err = p.parseStmt()
		}
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return ast.NewBlock(pos, stmts), nil
}

// parseDeclaration parses a local variable declaration. The grammar
// itself shows no initializer syntax, but the data model carries an
// optional initializer expression on Var, and C programs routinely
// write `int x = 1;`; a declarator followed by `=` is accepted here
// and lowered immediately to an assignment statement so the code
// generator never needs to special-case initializers at all — by the
// time it sees the block's statement list, `int x = 1;` is just `int
// x;` followed by `x = 1;`.
func (p *Parser) parseDeclaration() (ast.Stmt, error) {
	pos := p.tok.Pos
	v, err := p.parseDeclarator()
	if err != nil {
		return nil, err
	}
	if !p.sc.declareLocal(v) {
		return nil, ccerrors.RedeclarationErr(v.Name, pos)
	}

	if ok, err := p.match(lexer.ASSIGN); err != nil {
		return nil, err
	} else if ok {
		value, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		v.Init = value
		target := p.mkLocalVar(pos, v)
		assign := p.mkAssign(pos, target, value)
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return ast.NewExprStmt(pos, assign), nil
	}

	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return ast.NewNop(pos), nil
}

// parseStmt dispatches on the current token to one of labeled,
// compound, selection, iteration, jump, or expression statement.
func (p *Parser) parseStmt() (ast.Stmt, error) {
	pos := p.tok.Pos

	switch p.tok.Type {
	case lexer.LBRACE:
		return p.parseCompoundStmt()
	case lexer.IF_KW:
		return p.parseIfStmt()
	case lexer.WHILE_KW:
		return p.parseWhileStmt()
	case lexer.FOR_KW:
		return p.parseForStmt()
	case lexer.DO_KW:
		return p.parseDoWhileStmt()
	case lexer.GOTO_KW:
		return p.parseGotoStmt()
	case lexer.BREAK_KW:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return ast.NewBreak(pos), nil
	case lexer.CONTINUE_KW:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return ast.NewContinue(pos), nil
	case lexer.RETURN_KW:
		return p.parseReturnStmt()
	case lexer.SEMI:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewNop(pos), nil
	}

	if p.tok.Type == lexer.IDENT {
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Type == lexer.COLON {
			name := p.tok.Literal
			if err := p.advance(); err != nil { // consumes IDENT, buffered COLON becomes current
				return nil, err
			}
			if _, err := p.expect(lexer.COLON); err != nil {
				return nil, err
			}
			inner, err := p.parseStmt()
			if err != nil {
				return nil, err
			}
			return ast.NewLabelStmt(pos, name, inner), nil
		}
	}

	return p.parseExprStmt()
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	pos := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if ok, err := p.match(lexer.ELSE_KW); err != nil {
		return nil, err
	} else if ok {
		els, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(pos, cond, then, els), nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	pos := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(pos, cond, body), nil
}

func (p *Parser) parseForStmt() (ast.Stmt, error) {
	pos := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var init, cond, inc ast.Expr
	var err error
	if p.tok.Type != lexer.SEMI {
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	if p.tok.Type != lexer.SEMI {
		cond, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	if p.tok.Type != lexer.RPAREN {
		inc, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(pos, init, cond, inc, body), nil
}

func (p *Parser) parseDoWhileStmt() (ast.Stmt, error) {
	pos := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.WHILE_KW); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return ast.NewDoWhile(pos, body, cond), nil
}

func (p *Parser) parseGotoStmt() (ast.Stmt, error) {
	pos := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	label, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return ast.NewGoto(pos, label.Literal), nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	pos := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	var value ast.Expr
	if p.tok.Type != lexer.SEMI {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return ast.NewReturn(pos, value), nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	pos := p.tok.Pos
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return ast.NewExprStmt(pos, x), nil
}
