// Package parser implements the recursive-descent parser: it consumes
// the lexer's token stream and produces a compilation unit (function
// definitions, globals, and the string-literal table), resolving
// identifiers and assigning every expression node its type as it goes.
package parser

import (
	"fmt"
	"strconv"

	"github.com/minicc/minicc/internal/ast"
	"github.com/minicc/minicc/internal/ccerrors"
	"github.com/minicc/minicc/internal/lexer"
	"github.com/minicc/minicc/internal/types"
)

// Parser holds the single current token plus a one-token lookahead
// buffer, used only to disambiguate a label statement (`name:`) from
// an expression statement starting with the same identifier.
type Parser struct {
	lex *lexer.Lexer

	tok     lexer.Token
	buf     lexer.Token
	hasBuf  bool
	strings []ast.StringLiteral
	sc      *scope
}

// New creates a Parser over lex and primes the first token.
func New(lex *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: lex, sc: newScope()}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseUnit parses the whole token stream into a compilation unit: a
// sequence of top-level function definitions and global declarations,
// each starting with a shared declarator production disambiguated by
// the token that follows it (`(` starts a function body, anything
// else ends a global declaration).
func (p *Parser) ParseUnit() (*ast.Unit, error) {
	unit := &ast.Unit{}
	for p.tok.Type != lexer.EOF {
		pos := p.tok.Pos
		v, err := p.parseDeclarator()
		if err != nil {
			return nil, err
		}
		if p.tok.Type == lexer.LPAREN {
			fn, err := p.parseFunctionDef(v, pos)
			if err != nil {
				return nil, err
			}
			unit.Functions = append(unit.Functions, fn)
			continue
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		if !p.sc.declareGlobal(v) {
			return nil, ccerrors.RedeclarationErr(v.Name, pos)
		}
		unit.Globals = append(unit.Globals, v)
	}
	unit.Strings = p.strings
	return unit, nil
}

// parseFunctionDef parses the parameter list and body of a function
// whose return type and name were already parsed as sig. It declares
// the function before parsing its body so self-recursive calls
// resolve, then declares every parameter as a local before the body
// is parsed so they receive the first offsets in the function's
// local table.
func (p *Parser) parseFunctionDef(sig *ast.Var, pos lexer.Position) (*ast.Function, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var params []*ast.Var
	if p.tok.Type != lexer.RPAREN {
		for {
			pv, err := p.parseDeclarator()
			if err != nil {
				return nil, err
			}
			params = append(params, pv)
			ok, err := p.match(lexer.COMMA)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	fn := &ast.Function{Name: sig.Name, Return: sig.Type}
	if !p.sc.declareFunc(fn) {
		return nil, ccerrors.RedeclarationErr(fn.Name, pos)
	}
	fn.Params = params

	p.sc.enterFunction(fn)
	for _, pv := range params {
		if !p.sc.declareLocal(pv) {
			p.sc.leaveFunction()
			return nil, ccerrors.RedeclarationErr(pv.Name, pos)
		}
	}

	body, err := p.parseCompoundStmt()
	if err != nil {
		p.sc.leaveFunction()
		return nil, err
	}
	fn.Body = body.Stmts
	p.sc.leaveFunction()
	return fn, nil
}

// parseTypeSpecifier consumes `signed`/`unsigned` modifiers (kept for
// lexical completeness; this type system has no distinct signed and
// unsigned kinds, so they do not change the resulting descriptor)
// followed by exactly one of the seven scalar type keywords; a
// signed/unsigned modifier with no type keyword after it yields int.
func (p *Parser) parseTypeSpecifier() (*types.Type, error) {
	sawSignedness := false
	for p.tok.Type == lexer.SIGNED_KW || p.tok.Type == lexer.UNSIGNED_KW {
		sawSignedness = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	pos := p.tok.Pos
	switch p.tok.Type {
	case lexer.VOID_KW:
		return p.consumeTypeKeyword(types.NewVoid())
	case lexer.CHAR_KW:
		return p.consumeTypeKeyword(types.NewChar())
	case lexer.SHORT_KW:
		return p.consumeTypeKeyword(types.NewShort())
	case lexer.INT_KW:
		return p.consumeTypeKeyword(types.NewInt())
	case lexer.LONG_KW:
		return p.consumeTypeKeyword(types.NewLong())
	case lexer.FLOAT_KW:
		return p.consumeTypeKeyword(types.NewFloat())
	case lexer.DOUBLE_KW:
		return p.consumeTypeKeyword(types.NewDouble())
	case lexer.STRUCT_KW, lexer.UNION_KW, lexer.ENUM_KW:
		return nil, ccerrors.InvalidTypeSpecifierErr(fmt.Sprintf("%s types are not supported", p.tok.Type), pos)
	default:
		if sawSignedness {
			return types.NewInt(), nil
		}
		return nil, ccerrors.InvalidTypeSpecifierErr(fmt.Sprintf("expected a type, found %s", p.tokenDesc()), pos)
	}
}

func (p *Parser) consumeTypeKeyword(t *types.Type) (*types.Type, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	return t, nil
}

// parseDeclarator parses `type_specifier "*"* ident ("[" number "]")?`,
// building the pointer chain and optional array type around the base
// type in that order.
func (p *Parser) parseDeclarator() (*ast.Var, error) {
	base, err := p.parseTypeSpecifier()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == lexer.STAR {
		base = types.NewPointer(base)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.Type != lexer.IDENT {
		return nil, ccerrors.UnexpectedTokenErr("identifier", p.tokenDesc(), p.tok.Pos)
	}
	name := p.tok.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Type == lexer.LBRACK {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Type != lexer.NUMBER {
			return nil, ccerrors.UnexpectedTokenErr("array length", p.tokenDesc(), p.tok.Pos)
		}
		n, convErr := strconv.ParseInt(p.tok.Literal, 10, 64)
		if convErr != nil {
			return nil, ccerrors.InvalidDeclarationErr(fmt.Sprintf("invalid array length %q", p.tok.Literal), p.tok.Pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACK); err != nil {
			return nil, err
		}
		base = types.NewArray(base, int(n))
	}
	return &ast.Var{Name: name, Type: base}, nil
}

// advance discards the current token and pulls the next one, either
// from the one-token lookahead buffer or directly from the lexer.
func (p *Parser) advance() error {
	if p.hasBuf {
		p.tok = p.buf
		p.hasBuf = false
		return nil
	}
	tok, err := p.lex.NextToken()
	if err != nil {
		if lexErr, ok := err.(*lexer.LexError); ok {
			return ccerrors.FromLexError(lexErr)
		}
		return err
	}
	p.tok = tok
	return nil
}

// peek returns the token after the current one without consuming
// either, fetching and buffering it from the lexer on first use.
func (p *Parser) peek() (lexer.Token, error) {
	if !p.hasBuf {
		tok, err := p.lex.NextToken()
		if err != nil {
			if lexErr, ok := err.(*lexer.LexError); ok {
				return lexer.Token{}, ccerrors.FromLexError(lexErr)
			}
			return lexer.Token{}, err
		}
		p.buf = tok
		p.hasBuf = true
	}
	return p.buf, nil
}

// expect consumes the current token if it has type tt, or reports an
// unexpected-token error.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.tok.Type != tt {
		return lexer.Token{}, ccerrors.UnexpectedTokenErr(tt.String(), p.tokenDesc(), p.tok.Pos)
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// match consumes the current token and reports true if it has type
// tt; otherwise it leaves the token stream untouched and reports
// false.
func (p *Parser) match(tt lexer.TokenType) (bool, error) {
	if p.tok.Type != tt {
		return false, nil
	}
	if err := p.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// tokenDesc renders the current token for an error message: its
// literal text when it has one, otherwise its type's name.
func (p *Parser) tokenDesc() string {
	if p.tok.Literal != "" {
		return p.tok.Literal
	}
	return p.tok.Type.String()
}
