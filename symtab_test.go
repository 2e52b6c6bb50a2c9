package vtcore

import "testing"

func TestSymbolTableMakeBareCodePoint(t *testing.T) {
	tbl := NewSymbolTable()
	sym := tbl.Make('A')
	if sym != Symbol('A') {
		t.Fatalf("Make('A') = %v, want Symbol('A')", sym)
	}
	if got := tbl.Get(sym); len(got) != 1 || got[0] != 'A' {
		t.Fatalf("Get(Make('A')) = %v, want ['A']", got)
	}
}

func TestSymbolTableAppendCombiningMark(t *testing.T) {
	tbl := NewSymbolTable()
	base := tbl.Make('e')
	// U+0301 COMBINING ACUTE ACCENT
	composed := tbl.Append(base, 0x0301)

	if composed < SymbolTableBase {
		t.Fatalf("composed symbol %v should be an interned handle", composed)
	}

	runes := tbl.Get(composed)
	if len(runes) != 2 || runes[0] != 'e' || runes[1] != 0x0301 {
		t.Fatalf("Get(composed) = %v, want ['e', U+0301]", runes)
	}
}

func TestSymbolTableInterningDedups(t *testing.T) {
	tbl := NewSymbolTable()
	base := tbl.Make('e')
	a := tbl.Append(base, 0x0301)
	b := tbl.Append(base, 0x0301)
	if a != b {
		t.Fatalf("identical clusters got different handles: %v != %v", a, b)
	}
}

func TestSymbolTableAppendChain(t *testing.T) {
	tbl := NewSymbolTable()
	base := tbl.Make('a')
	s1 := tbl.Append(base, 0x0301)
	s2 := tbl.Append(s1, 0x0302)

	runes := tbl.Get(s2)
	want := []rune{'a', 0x0301, 0x0302}
	if len(runes) != len(want) {
		t.Fatalf("Get(s2) = %v, want %v", runes, want)
	}
	for i := range want {
		if runes[i] != want[i] {
			t.Errorf("index %d: got %v want %v", i, runes[i], want[i])
		}
	}

	// The shorter cluster's handle must still resolve to its own runes.
	if got := tbl.Get(s1); len(got) != 2 {
		t.Fatalf("Get(s1) after extending = %v, want 2-rune cluster unaffected", got)
	}
}

func TestSymbolTableWidth(t *testing.T) {
	tbl := NewSymbolTable()
	wide := tbl.Make(0x4E2D)
	if w := tbl.Width(wide); w != 2 {
		t.Errorf("Width(中) = %d, want 2", w)
	}

	combined := tbl.Append(tbl.Make('e'), 0x0301)
	if w := tbl.Width(combined); w != 1 {
		t.Errorf("Width(e + acute) = %d, want 1 (combining mark contributes 0)", w)
	}
}

func TestSymbolTableRefUnref(t *testing.T) {
	tbl := NewSymbolTable()
	tbl.Ref()
	if done := tbl.Unref(); done {
		t.Fatalf("Unref after Ref reported done, want still referenced")
	}
	if done := tbl.Unref(); !done {
		t.Fatalf("Unref of last reference reported not done")
	}
}

func TestSymbolTableGetOutOfRangeReturnsReplacement(t *testing.T) {
	tbl := NewSymbolTable()
	got := tbl.Get(SymbolTableBase + 999)
	if len(got) != 1 || got[0] != rune(UCS4Replacement) {
		t.Fatalf("Get(out-of-range) = %v, want replacement", got)
	}
}
