package scan

import "testing"

func TestCursorWalksBytes(t *testing.T) {
	cur := NewCursor("ab")
	if cur.EOF() {
		t.Fatal("cursor at EOF on non-empty line")
	}
	if got := cur.Peek(); got != 'a' {
		t.Fatalf("expected peek 'a', got %q", got)
	}
	if b0, b1, ok := cur.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("unexpected Peek2 result: %q %q %v", b0, b1, ok)
	}
	if got := cur.Bump(); got != 'a' {
		t.Fatalf("expected bump 'a', got %q", got)
	}
	if got := cur.Prev(); got != 'a' {
		t.Fatalf("expected prev 'a', got %q", got)
	}
	if got := cur.Bump(); got != 'b' {
		t.Fatalf("expected bump 'b', got %q", got)
	}
	if !cur.EOF() {
		t.Fatal("expected EOF after consuming both bytes")
	}
	if got := cur.Bump(); got != 0 {
		t.Fatalf("bump past EOF should return 0, got %q", got)
	}
}

func TestCursorPeekBeyondLimit(t *testing.T) {
	cur := NewCursor("x")
	if _, _, ok := cur.Peek2(); ok {
		t.Fatal("Peek2 should fail with one byte left")
	}
	if _, _, _, ok := cur.Peek3(); ok {
		t.Fatal("Peek3 should fail with one byte left")
	}
	cur.Bump()
	if got := cur.Peek(); got != 0 {
		t.Fatalf("peek at EOF should return 0, got %q", got)
	}
}

func TestCursorEat(t *testing.T) {
	cur := NewCursor("'x")
	if !cur.Eat('\'') {
		t.Fatal("expected Eat to consume the quote")
	}
	if cur.Eat('\'') {
		t.Fatal("Eat must not consume a non-matching byte")
	}
	if got := cur.Pos(); got != 1 {
		t.Fatalf("expected position 1, got %d", got)
	}
}
