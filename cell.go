package vtcore

// SymbolWidePlaceholder is written into the second column of a wide
// character. It is the zero symbol (a bare NUL code point), which can never
// be produced by a legitimate write, so draw iteration can recognize and
// skip it unambiguously.
const SymbolWidePlaceholder Symbol = 0

// Cell is the unit of the grid: a symbol handle, its rendering attributes,
// and a monotonic write stamp an incremental renderer can use to skip
// unchanged cells.
type Cell struct {
	Symbol Symbol
	Attr   Attributes
	Age    uint64
}

// blankCell returns a cell holding a single space with the given default
// attributes and age, the value every erase operation resets cells to.
func blankCell(attr Attributes, age uint64) Cell {
	return Cell{Symbol: SymbolDefault, Attr: attr, Age: age}
}

// IsWidePlaceholder reports whether c is the filler cell written to the
// right of a wide character; draw iteration must skip these.
func (c Cell) IsWidePlaceholder() bool {
	return c.Symbol == SymbolWidePlaceholder
}
