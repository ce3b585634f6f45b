// Package types implements the shared library of type descriptors used
// by both the parser (for type assignment) and the code generator (for
// pointer-arithmetic scaling and load/store width selection).
package types

import "fmt"

// Kind identifies the category of a Type.
type Kind int

const (
	Void Kind = iota
	Char
	Short
	Int
	Long
	Float
	Double
	Pointer
	Array
	Struct
	Func
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case Pointer:
		return "pointer"
	case Array:
		return "array"
	case Struct:
		return "struct"
	case Func:
		return "func"
	default:
		return "unknown"
	}
}

// Member is a single named, typed, offset-carrying field — used for
// both struct members and function parameters, since both are
// "a name plus a type plus a position" in this type system.
type Member struct {
	Name   string
	Type   *Type
	Offset int
}

// Type is a complete type descriptor: its kind, concrete size and
// alignment in bytes, a const flag, and whatever payload its kind
// needs (pointee/element type, array length, struct member list,
// function parameter list and return type).
type Type struct {
	Kind  Kind
	Size  int
	Align int
	Const bool

	Of      *Type // Pointer: pointee. Array: element type.
	Len     int   // Array: element count.
	Name    string
	Members []Member // Struct
	Params  []Member // Func
	Return  *Type    // Func
}

// AlignUp rounds n up to the next multiple of align. align must be a
// power of two; a value of 0 is treated as 1 (no rounding).
func AlignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

func primitive(k Kind, size, align int) *Type {
	return &Type{Kind: k, Size: size, Align: align}
}

// NewVoid, NewChar, ... construct the primitive type descriptors. Sizes
// and alignments are fixed per the language's ABI: void=0, char=1,
// short=2, int=4, long=8, float=4, double=8.
func NewVoid() *Type   { return primitive(Void, 0, 1) }
func NewChar() *Type   { return primitive(Char, 1, 1) }
func NewShort() *Type  { return primitive(Short, 2, 2) }
func NewInt() *Type    { return primitive(Int, 4, 4) }
func NewLong() *Type   { return primitive(Long, 8, 8) }
func NewFloat() *Type  { return primitive(Float, 4, 4) }
func NewDouble() *Type { return primitive(Double, 8, 8) }

// NewPointer builds a pointer-to-to type. Pointer types are always
// 8 bytes, 8-byte aligned, regardless of the pointee.
func NewPointer(to *Type) *Type {
	return &Type{Kind: Pointer, Size: 8, Align: 8, Of: to}
}

// NewArray builds an array of n elements of base, with size
// base.Size*n and the base's alignment. The base type may itself be
// an array (arrays of arrays), though the parser only constructs
// single-dimension arrays per the grammar's one-subscript declarator.
func NewArray(base *Type, n int) *Type {
	return &Type{Kind: Array, Size: base.Size * n, Align: base.Align, Of: base, Len: n}
}

// NewStruct builds a struct type, computing each member's offset as
// align_up(sum of prior members, member's own alignment) and the
// struct's total size as that running offset aligned up to the
// largest member alignment.
func NewStruct(name string, fields []Member) *Type {
	offset := 0
	maxAlign := 1
	members := make([]Member, len(fields))
	for i, f := range fields {
		offset = AlignUp(offset, f.Type.Align)
		members[i] = Member{Name: f.Name, Type: f.Type, Offset: offset}
		offset += f.Type.Size
		if f.Type.Align > maxAlign {
			maxAlign = f.Type.Align
		}
	}
	return &Type{
		Kind:    Struct,
		Size:    AlignUp(offset, maxAlign),
		Align:   maxAlign,
		Name:    name,
		Members: members,
	}
}

// NewFunc builds a function type. Function types are always 8/8,
// mirroring pointer types, since a function designator decays to a
// code address wherever a function type would otherwise be used.
func NewFunc(ret *Type, params []Member) *Type {
	return &Type{Kind: Func, Size: 8, Align: 8, Return: ret, Params: params}
}

// WithConst returns a copy of t marked const.
func (t *Type) WithConst() *Type {
	cp := *t
	cp.Const = true
	return &cp
}

// IsPointerOrArray reports whether t decays to / is indexed like a
// pointer (pointer or array kind).
func (t *Type) IsPointerOrArray() bool {
	return t.Kind == Pointer || t.Kind == Array
}

// IsArray reports whether t is an array type.
func (t *Type) IsArray() bool {
	return t.Kind == Array
}

// IsInteger reports whether t is one of the integer kinds.
func (t *Type) IsInteger() bool {
	switch t.Kind {
	case Char, Short, Int, Long:
		return true
	default:
		return false
	}
}

// BaseType returns the pointee type for a pointer, the element type
// for an array, or t itself for anything else (matching the source's
// base_type, which is only meaningful for pointer/array types but is
// defined total to keep call sites simple).
func (t *Type) BaseType() *Type {
	switch t.Kind {
	case Pointer, Array:
		return t.Of
	default:
		return t
	}
}

// Equal reports whether two type descriptors describe the same type,
// ignoring const. The parser's redeclaration checks compare names
// only and do not call it.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Pointer:
		return t.Of.Equal(other.Of)
	case Array:
		return t.Len == other.Len && t.Of.Equal(other.Of)
	case Struct:
		return t.Name == other.Name
	case Func:
		if !t.Return.Equal(other.Return) || len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Type.Equal(other.Params[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (t *Type) String() string {
	switch t.Kind {
	case Pointer:
		return fmt.Sprintf("%s*", t.Of)
	case Array:
		return fmt.Sprintf("%s[%d]", t.Of, t.Len)
	case Struct:
		return fmt.Sprintf("struct %s", t.Name)
	case Func:
		return fmt.Sprintf("func(...) %s", t.Return)
	default:
		return t.Kind.String()
	}
}
