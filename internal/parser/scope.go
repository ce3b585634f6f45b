package parser

import (
	"github.com/minicc/minicc/internal/ast"
	"github.com/minicc/minicc/internal/types"
)

// scope is the parser's symbol table: one global table shared by the
// whole compilation unit, and one local table that is reset at the
// start of every function definition. Identifier lookup always tries
// locals first, falling back to globals, matching the language's
// ordinary block-scoping rule that a parameter or local shadows a
// global of the same name.
type scope struct {
	globals map[string]*ast.Var
	funcs   map[string]*ast.Function

	fn        *ast.Function
	locals    map[string]*ast.Var
	maxOffset int
}

func newScope() *scope {
	return &scope{
		globals: make(map[string]*ast.Var),
		funcs:   make(map[string]*ast.Function),
	}
}

// enterFunction resets the per-function local table so offsets start
// fresh for fn, whose Params/Locals slices are both still empty.
func (s *scope) enterFunction(fn *ast.Function) {
	s.fn = fn
	s.locals = make(map[string]*ast.Var)
	s.maxOffset = 0
}

func (s *scope) leaveFunction() {
	s.fn = nil
	s.locals = nil
	s.maxOffset = 0
}

// declareGlobal registers v in the global table. ok is false if name
// is already declared at global scope.
func (s *scope) declareGlobal(v *ast.Var) bool {
	if _, exists := s.globals[v.Name]; exists {
		return false
	}
	s.globals[v.Name] = v
	return true
}

func (s *scope) declareFunc(fn *ast.Function) bool {
	if _, exists := s.funcs[fn.Name]; exists {
		return false
	}
	s.funcs[fn.Name] = fn
	return true
}

// declareLocal assigns v its frame offset and appends it to the
// current function's local table (Params first, then locals, in
// first-appearance order — the caller controls which by calling this
// once per parameter before any body declaration is parsed). The
// offset is `align_up(prior-max-offset + size-of(type), align-of(type))`,
// which also yields `size-of(type)` for the very first local since
// prior-max-offset starts at 0.
func (s *scope) declareLocal(v *ast.Var) bool {
	if _, exists := s.locals[v.Name]; exists {
		return false
	}
	newOffset := types.AlignUp(s.maxOffset+v.Type.Size, v.Type.Align)
	v.Offset = newOffset
	s.maxOffset = newOffset

	s.locals[v.Name] = v
	s.fn.Locals = append(s.fn.Locals, v)
	return true
}

// lookup resolves name against the local table first, then globals.
// local reports which table satisfied the lookup, so the caller can
// build the right kind of variable-reference node.
func (s *scope) lookup(name string) (v *ast.Var, local bool, ok bool) {
	if s.locals != nil {
		if v, ok := s.locals[name]; ok {
			return v, true, true
		}
	}
	v, ok = s.globals[name]
	return v, false, ok
}

func (s *scope) lookupFunc(name string) (*ast.Function, bool) {
	fn, ok := s.funcs[name]
	return fn, ok
}
