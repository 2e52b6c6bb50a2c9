package vtcore

import "testing"

func lineWithChar(r rune) Line {
	l := newLine(4, DefaultAttributes())
	l.Cells[0] = Cell{Symbol: Symbol(r), Attr: DefaultAttributes()}
	return l
}

func TestRingScrollbackPushAndRead(t *testing.T) {
	sb := newRingScrollback(3)
	sb.Push(lineWithChar('a'))
	sb.Push(lineWithChar('b'))

	if sb.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sb.Len())
	}
	l, ok := sb.Line(0)
	if !ok || l.Cells[0].Symbol != Symbol('a') {
		t.Fatalf("Line(0) = %+v, ok=%v, want oldest 'a'", l, ok)
	}
}

func TestRingScrollbackOverwritesOldest(t *testing.T) {
	sb := newRingScrollback(2)
	sb.Push(lineWithChar('a'))
	sb.Push(lineWithChar('b'))
	sb.Push(lineWithChar('c'))

	if sb.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (capped)", sb.Len())
	}
	oldest, _ := sb.Line(0)
	newest, _ := sb.Line(1)
	if oldest.Cells[0].Symbol != Symbol('b') || newest.Cells[0].Symbol != Symbol('c') {
		t.Fatalf("ring contents = [%c, %c], want [b, c]", oldest.Cells[0].Symbol, newest.Cells[0].Symbol)
	}
}

func TestRingScrollbackClear(t *testing.T) {
	sb := newRingScrollback(3)
	sb.Push(lineWithChar('a'))
	sb.Clear()
	if sb.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", sb.Len())
	}
	if _, ok := sb.Line(0); ok {
		t.Fatalf("Line(0) after Clear should not be found")
	}
}

func TestRingScrollbackSetMaxLinesShrinks(t *testing.T) {
	sb := newRingScrollback(4)
	sb.Push(lineWithChar('a'))
	sb.Push(lineWithChar('b'))
	sb.Push(lineWithChar('c'))

	sb.SetMaxLines(2)
	if sb.Len() != 2 {
		t.Fatalf("Len() after shrink = %d, want 2", sb.Len())
	}
	oldest, _ := sb.Line(0)
	if oldest.Cells[0].Symbol != Symbol('b') {
		t.Fatalf("oldest retained after shrink = %c, want 'b'", oldest.Cells[0].Symbol)
	}
}

func TestNoopScrollbackDiscardsEverything(t *testing.T) {
	var sb NoopScrollback
	sb.Push(lineWithChar('a'))
	if sb.Len() != 0 {
		t.Fatalf("NoopScrollback.Len() = %d, want 0", sb.Len())
	}
	if _, ok := sb.Line(0); ok {
		t.Fatalf("NoopScrollback.Line(0) should never be found")
	}
}
