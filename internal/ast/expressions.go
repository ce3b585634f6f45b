package ast

import "github.com/minicc/minicc/internal/lexer"

// BinaryOp identifies a two-operand arithmetic, bitwise, shift,
// comparison, or short-circuit logical operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Rem
	Shl
	Shr
	BitAnd
	BitOr
	BitXor
	Eq
	Ne
	Lt // also used for normalized '>' (operands swapped at parse time)
	Le // also used for normalized '>=' (operands swapped at parse time)
	LogicalAnd
	LogicalOr
)

// UnaryOp identifies a one-operand operator.
type UnaryOp int

const (
	BitNot UnaryOp = iota
	LogicalNot
	Addr
	Deref
)

// NumberLit is an integer literal. Its type is always int.
type NumberLit struct {
	baseExpr
	Value int64
}

// StringLit is a string literal. Index is its position in the
// compilation unit's ordered string table and becomes the emit-time
// label suffix .L.str.<Index>. Its type is "array of char" sized at
// len(Value)+1 (room for the trailing NUL the assembler's .string
// directive appends).
type StringLit struct {
	baseExpr
	Value string
	Index int
}

// LocalVar references a function parameter or local variable by name.
// V.Offset supplies the frame-relative address the code generator
// emits.
type LocalVar struct {
	baseExpr
	Name string
	V    *Var
}

// GlobalVar references a global variable by name, addressed at emit
// time via RIP-relative lea.
type GlobalVar struct {
	baseExpr
	Name string
	V    *Var
}

// Unary is a prefix bitwise-not, logical-not, address-of, or
// dereference expression. Unary minus is lowered by the parser into
// Binary{Sub, NumberLit{0}, X}; unary plus is dropped entirely (it is
// the identity operation), so neither needs a node kind of its own.
type Unary struct {
	baseExpr
	Op UnaryOp
	X  Expr
}

// IncDec is a prefix or postfix increment/decrement of an lvalue.
// Pre distinguishes ++x/--x (value after the update) from x++/x--
// (value before the update); Inc distinguishes ++ from --.
type IncDec struct {
	baseExpr
	X   Expr
	Pre bool
	Inc bool
}

// Binary is a two-operand arithmetic, bitwise, shift, comparison, or
// short-circuit logical expression.
type Binary struct {
	baseExpr
	Op   BinaryOp
	X, Y Expr
}

// Ternary is the `cond ? then : else` conditional expression.
type Ternary struct {
	baseExpr
	Cond, Then, Else Expr
}

// Assign is a plain `target = value` assignment expression. Its type
// is the target's type; as an expression it evaluates to the assigned
// value.
type Assign struct {
	baseExpr
	Target, Value Expr
}

// CompoundAssign is one of the ten compound assignment forms
// (+= -= *= /= %= <<= >>= &= ^= |=), semantically `target = target Op
// value` with target evaluated only once.
type CompoundAssign struct {
	baseExpr
	Op            BinaryOp
	Target, Value Expr
}

// Call is a function call. Args is stored in reverse source order:
// the parser parses and appends each argument to the front of the
// list as it goes, so the code generator can emit argument evaluation
// in that same reverse order and pop values straight into the
// calling-convention registers (rdi, rsi, rdx, rcx, r8, r9) without
// an extra reversal pass.
type Call struct {
	baseExpr
	Name string
	Func *Function
	Args []Expr
}

func newBaseExpr(pos lexer.Position) baseExpr { return baseExpr{pos: pos} }

func NewNumber(pos lexer.Position, value int64) *NumberLit {
	return &NumberLit{baseExpr: newBaseExpr(pos), Value: value}
}

func NewString(pos lexer.Position, value string, index int) *StringLit {
	return &StringLit{baseExpr: newBaseExpr(pos), Value: value, Index: index}
}

func NewLocalVar(pos lexer.Position, name string, v *Var) *LocalVar {
	return &LocalVar{baseExpr: newBaseExpr(pos), Name: name, V: v}
}

func NewGlobalVar(pos lexer.Position, name string, v *Var) *GlobalVar {
	return &GlobalVar{baseExpr: newBaseExpr(pos), Name: name, V: v}
}

func NewUnary(pos lexer.Position, op UnaryOp, x Expr) *Unary {
	return &Unary{baseExpr: newBaseExpr(pos), Op: op, X: x}
}

func NewIncDec(pos lexer.Position, x Expr, pre, inc bool) *IncDec {
	return &IncDec{baseExpr: newBaseExpr(pos), X: x, Pre: pre, Inc: inc}
}

func NewBinary(pos lexer.Position, op BinaryOp, x, y Expr) *Binary {
	return &Binary{baseExpr: newBaseExpr(pos), Op: op, X: x, Y: y}
}

func NewTernary(pos lexer.Position, cond, then, els Expr) *Ternary {
	return &Ternary{baseExpr: newBaseExpr(pos), Cond: cond, Then: then, Else: els}
}

func NewAssign(pos lexer.Position, target, value Expr) *Assign {
	return &Assign{baseExpr: newBaseExpr(pos), Target: target, Value: value}
}

func NewCompoundAssign(pos lexer.Position, op BinaryOp, target, value Expr) *CompoundAssign {
	return &CompoundAssign{baseExpr: newBaseExpr(pos), Op: op, Target: target, Value: value}
}

func NewCall(pos lexer.Position, name string, fn *Function, args []Expr) *Call {
	return &Call{baseExpr: newBaseExpr(pos), Name: name, Func: fn, Args: args}
}
