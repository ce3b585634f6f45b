// Package ast defines the abstract syntax tree produced by the parser:
// function definitions, global variables, the string-literal table,
// and the expression/statement node hierarchy the code generator walks.
package ast

import (
	"github.com/minicc/minicc/internal/lexer"
	"github.com/minicc/minicc/internal/types"
)

// Node is the common interface of every tree node.
type Node interface {
	Pos() lexer.Position
}

// Expr is any node that produces exactly one value when generated.
// Every Expr carries a type slot that the parser's type-assignment
// pass fills in as soon as the node is constructed; GetType returns
// nil only for nodes the type pass has not yet reached.
type Expr interface {
	Node
	exprNode()
	GetType() *types.Type
	SetType(*types.Type)
}

// Stmt is any node that performs an action. Under the stack-machine
// discipline every statement also leaves one value on the evaluation
// stack, immediately discarded by its caller; Stmt itself carries no
// type because statements are not expressions.
type Stmt interface {
	Node
	stmtNode()
}

// baseExpr factors out the type slot and position shared by every
// expression node, following the teacher's pattern of embedding a
// common struct rather than repeating the same three methods on every
// node type.
type baseExpr struct {
	pos lexer.Position
	typ *types.Type
}

func (b *baseExpr) Pos() lexer.Position   { return b.pos }
func (b *baseExpr) GetType() *types.Type  { return b.typ }
func (b *baseExpr) SetType(t *types.Type) { b.typ = t }
func (b *baseExpr) exprNode()             {}

type baseStmt struct {
	pos lexer.Position
}

func (b *baseStmt) Pos() lexer.Position { return b.pos }
func (b *baseStmt) stmtNode()           {}

// Var is a declared variable: a parameter, a local, or a global.
//
// For locals (and parameters, which are locals pushed first), Offset
// is a positive byte count from the frame pointer, subtracted when
// the code generator computes its address (lea rax, [rbp-Offset]).
// For globals, Offset is unused; they are addressed by name via
// RIP-relative `lea`.
//
// Init is the variable's optional initializer expression. For a
// local, the parser lowers it into an assignment executed in place at
// the point of declaration. Globals never carry an Init that produces
// code: per the language's zero-initialization rule, global storage
// is reserved with `.zero` and no initializer is ever emitted.
type Var struct {
	Name   string
	Type   *types.Type
	Offset int
	Init   Expr
}

// Function is one function definition: its signature, its complete
// append-only local-variable table (parameters first, in source
// order, followed by locals in first-appearance order), and its body.
type Function struct {
	Name   string
	Return *types.Type
	Params []*Var
	Locals []*Var
	Body   []Stmt
}

// StringLiteral is one entry of the compilation unit's ordered string
// table; Index becomes the literal's emit-time label suffix
// (.L.str.<Index>).
type StringLiteral struct {
	Value string
	Index int
}

// Unit is the parser's complete output: every function definition,
// every global variable, and the string-literal table, in source
// order.
type Unit struct {
	Functions []*Function
	Globals   []*Var
	Strings   []StringLiteral
}
