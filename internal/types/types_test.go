package types

import "testing"

func TestPrimitiveSizes(t *testing.T) {
	cases := []struct {
		ty         *Type
		size, alig int
	}{
		{NewVoid(), 0, 1},
		{NewChar(), 1, 1},
		{NewShort(), 2, 2},
		{NewInt(), 4, 4},
		{NewLong(), 8, 8},
		{NewFloat(), 4, 4},
		{NewDouble(), 8, 8},
	}
	for _, c := range cases {
		if c.ty.Size != c.size || c.ty.Align != c.alig {
			t.Errorf("%s: got size=%d align=%d, want size=%d align=%d",
				c.ty.Kind, c.ty.Size, c.ty.Align, c.size, c.alig)
		}
	}
}

func TestPointerAndFuncAreAlways8(t *testing.T) {
	p := NewPointer(NewChar())
	if p.Size != 8 || p.Align != 8 {
		t.Errorf("pointer: got size=%d align=%d, want 8/8", p.Size, p.Align)
	}
	f := NewFunc(NewInt(), nil)
	if f.Size != 8 || f.Align != 8 {
		t.Errorf("func: got size=%d align=%d, want 8/8", f.Size, f.Align)
	}
}

func TestArraySizeIsBaseTimesLen(t *testing.T) {
	a := NewArray(NewInt(), 3)
	if a.Size != 12 {
		t.Errorf("array: got size=%d, want 12", a.Size)
	}
	if a.Align != 4 {
		t.Errorf("array: got align=%d, want 4", a.Align)
	}
}

func TestArrayOfArray(t *testing.T) {
	inner := NewArray(NewInt(), 2) // 8 bytes
	outer := NewArray(inner, 3)
	if outer.Size != 24 {
		t.Errorf("got size=%d, want 24", outer.Size)
	}
}

func TestStructOffsetsAlignEachMember(t *testing.T) {
	// struct { char a; int b; char c; long d; }
	st := NewStruct("s", []Member{
		{Name: "a", Type: NewChar()},
		{Name: "b", Type: NewInt()},
		{Name: "c", Type: NewChar()},
		{Name: "d", Type: NewLong()},
	})
	want := []int{0, 4, 8, 16}
	for i, m := range st.Members {
		if m.Offset != want[i] {
			t.Errorf("member %s: got offset=%d, want %d", m.Name, m.Offset, want[i])
		}
	}
	if st.Align != 8 {
		t.Errorf("struct align: got %d, want 8", st.Align)
	}
	if st.Size != 24 {
		t.Errorf("struct size: got %d, want 24 (24 rounded up to align 8)", st.Size)
	}
}

func TestBaseTypeOfPointerAndArray(t *testing.T) {
	p := NewPointer(NewInt())
	if p.BaseType().Kind != Int {
		t.Errorf("pointer base: got %s, want int", p.BaseType().Kind)
	}
	a := NewArray(NewChar(), 5)
	if a.BaseType().Kind != Char {
		t.Errorf("array base: got %s, want char", a.BaseType().Kind)
	}
	i := NewInt()
	if i.BaseType() != i {
		t.Error("non-pointer/array BaseType should return itself")
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ n, align, want int }{
		{0, 16, 0}, {1, 16, 16}, {16, 16, 16}, {17, 16, 32},
		{3, 4, 4}, {4, 4, 4}, {5, 8, 8},
	}
	for _, c := range cases {
		if got := AlignUp(c.n, c.align); got != c.want {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", c.n, c.align, got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !NewInt().Equal(NewInt()) {
		t.Error("int should equal int")
	}
	if NewInt().Equal(NewChar()) {
		t.Error("int should not equal char")
	}
	if !NewPointer(NewInt()).Equal(NewPointer(NewInt())) {
		t.Error("int* should equal int*")
	}
	if NewPointer(NewInt()).Equal(NewPointer(NewChar())) {
		t.Error("int* should not equal char*")
	}
}
