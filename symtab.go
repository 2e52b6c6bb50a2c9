package vtcore

import "sync"

// Symbol identifies a grapheme cluster: a base code point plus zero or more
// combining marks, interned so a [Cell] can carry it as a single uint32
// handle instead of a variable-length rune slice. A bare code point below
// SymbolTableBase carries its value directly and needs no table lookup; a
// value at or above SymbolTableBase is an index into a [SymbolTable] slot
// holding a base rune plus combining marks.
type Symbol uint32

// SymbolTableBase is the first handle value that refers to an interned,
// multi-rune table entry rather than a bare code point.
const SymbolTableBase Symbol = 0x80000000

// SymbolDefault is the symbol for a blank cell: a single space.
const SymbolDefault Symbol = Symbol(' ')

type symbolEntry struct {
	runes []rune // base rune followed by combining marks
	width int
}

// SymbolTable interns multi-rune grapheme clusters into stable [Symbol]
// handles. It is reference counted so a single table can be shared between a
// [Screen] and a [VTE] the way the screen's cells and the parser's active
// composition state both need to resolve the same handles.
//
// SymbolTable is safe for concurrent use.
type SymbolTable struct {
	mu      sync.RWMutex
	entries []symbolEntry
	index   map[string]Symbol // interned-string -> handle, for dedup
	refs    int32
}

// NewSymbolTable returns a table with one reference held by the caller.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		index: make(map[string]Symbol),
		refs:  1,
	}
}

// Ref increments the table's reference count.
func (t *SymbolTable) Ref() {
	t.mu.Lock()
	t.refs++
	t.mu.Unlock()
}

// Unref decrements the table's reference count and reports whether it
// reached zero. Callers that drop the last reference should discard the
// table; there is nothing further to release since SymbolTable holds no
// external resources, but the count is kept to mirror the original
// tsm_symbol_table ref/unref contract for callers coordinating shared
// ownership between a Screen and a VTE.
func (t *SymbolTable) Unref() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refs--
	return t.refs <= 0
}

// Make returns the symbol for a single code point. Code points below
// SymbolTableBase need no interning and are returned as-is; values at or
// above it (pathologically high code points) are clamped to the replacement
// character's symbol to keep the handle space unambiguous.
func (t *SymbolTable) Make(ucs4 UCS4) Symbol {
	if Symbol(ucs4) >= SymbolTableBase {
		ucs4 = UCS4Replacement
	}
	return Symbol(ucs4)
}

// Append combines a mark onto an existing symbol, interning the resulting
// cluster and returning its handle. Appending to SymbolDefault or any bare
// code point promotes it into a fresh table entry; appending to an existing
// table entry grows that entry's rune sequence (entries are immutable once
// created — growth allocates a new entry so any other cell still holding the
// prior handle keeps seeing the shorter cluster). A spacing mark (width >= 1)
// is not combined: it starts a new cluster, and Append returns Make(mark).
func (t *SymbolTable) Append(sym Symbol, mark UCS4) Symbol {
	if RuneWidth(mark) > 0 {
		return t.Make(mark)
	}

	base := t.Get(sym)
	clustered := make([]rune, len(base), len(base)+1)
	copy(clustered, base)
	clustered = append(clustered, rune(mark))
	return t.intern(clustered)
}

func (t *SymbolTable) intern(runes []rune) Symbol {
	key := string(runes)

	t.mu.RLock()
	if sym, ok := t.index[key]; ok {
		t.mu.RUnlock()
		return sym
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if sym, ok := t.index[key]; ok {
		return sym
	}

	w := 0
	for _, r := range runes {
		w += RuneWidth(UCS4(r))
	}

	entry := symbolEntry{runes: runes, width: w}
	t.entries = append(t.entries, entry)
	sym := SymbolTableBase + Symbol(len(t.entries)-1)
	t.index[key] = sym
	return sym
}

// Get returns the rune sequence a symbol represents: a single-element slice
// for a bare code point, or the full cluster for an interned entry.
func (t *SymbolTable) Get(sym Symbol) []rune {
	if sym < SymbolTableBase {
		return []rune{rune(sym)}
	}

	idx := int(sym - SymbolTableBase)

	t.mu.RLock()
	defer t.mu.RUnlock()
	if idx < 0 || idx >= len(t.entries) {
		return []rune{rune(UCS4Replacement)}
	}
	return t.entries[idx].runes
}

// Width returns the display width of a symbol: the base rune's width for a
// bare code point (combining marks never appear unattached), or the cached
// cluster width for an interned entry.
func (t *SymbolTable) Width(sym Symbol) int {
	if sym < SymbolTableBase {
		return RuneWidth(UCS4(sym))
	}

	idx := int(sym - SymbolTableBase)

	t.mu.RLock()
	defer t.mu.RUnlock()
	if idx < 0 || idx >= len(t.entries) {
		return 1
	}
	return t.entries[idx].width
}
