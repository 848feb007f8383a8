package lexer

import (
	"testing"

	"tint/internal/source"
)

func TestCursorBasics(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("c.wgsl", []byte("ab")))
	c := NewCursor(f)
	if c.Peek() != 'a' || c.PeekAt(1) != 'b' || c.PeekAt(2) != 0 {
		t.Fatalf("peek mismatch")
	}
	m := c.Mark()
	if !c.Eat('a') || c.Eat('a') {
		t.Fatalf("eat mismatch")
	}
	if !c.EatAny("xyb") || !c.EOF() {
		t.Fatalf("EatAny should consume 'b' and reach EOF")
	}
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span = %v", sp)
	}
	c.Reset(m)
	if c.Bump() != 'a' {
		t.Fatalf("reset failed")
	}
}
