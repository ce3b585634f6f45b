package asmbuilder

import "testing"

func TestBuildJoinsTokensAndIndents(t *testing.T) {
	b := New()
	b.AddRow(".globl main", true)
	b.AddRow("main:", false)
	b.AddRow("push   rax", true)

	want := "\t.globl main\nmain:\n\tpush rax\n"
	if got := b.Build(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOptimizeRemovesAdjacentPushPopSameRegister(t *testing.T) {
	b := New()
	b.AddRow("mov rax, 1", true)
	b.AddRow("push rax", true)
	b.AddRow("pop rax", true)
	b.AddRow("ret", true)
	b.Optimize()

	want := "\tmov rax, 1\n\tret\n"
	if got := b.Build(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOptimizeLeavesDifferentRegistersAlone(t *testing.T) {
	b := New()
	b.AddRow("push rax", true)
	b.AddRow("pop rdi", true)
	b.Optimize()

	want := "\tpush rax\n\tpop rdi\n"
	if got := b.Build(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Optimize repeats its reverse scan to a fixed point: removing an
// inner pair can expose an outer pair that only becomes adjacent
// afterward, and that pair must also be removed in the same call.
func TestOptimizeReachesFixedPointOnNestedPairs(t *testing.T) {
	b := New()
	b.AddRow("push rax", true)
	b.AddRow("push rdi", true)
	b.AddRow("pop rdi", true)
	b.AddRow("pop rax", true)
	b.Optimize()

	if got := b.Build(); got != "" {
		t.Errorf("got %q, want empty (both pairs collapse)", got)
	}
}

// Running Optimize a second time on an already-optimized builder must
// be a no-op, matching the fixed-point property above.
func TestOptimizeTwiceMatchesOptimizeOnce(t *testing.T) {
	b := New()
	b.AddRow("push rax", true)
	b.AddRow("push rdi", true)
	b.AddRow("pop rdi", true)
	b.AddRow("mov rax, 1", true)
	b.AddRow("pop rax", true)
	b.Optimize()
	once := b.Build()
	b.Optimize()
	if twice := b.Build(); twice != once {
		t.Errorf("optimizing twice changed output: once=%q twice=%q", once, twice)
	}
}
