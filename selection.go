package vtcore

import "strings"

// SelectionStart begins a selection at (row, col). row/col address the live
// grid unless inScrollback is true, in which case row is an index into the
// scrollback store (0 = oldest). Starting a new selection discards any
// previous one.
func (s *Screen) SelectionStart(row, col int, inScrollback bool) {
	s.selStart = selAnchor{inScrollback: inScrollback, sbIndex: row, row: row, col: col}
	s.selEnd = s.selStart
	s.selState = SelectionPending
}

// SelectionUpdate moves the selection's target anchor, promoting a pending
// selection to active.
func (s *Screen) SelectionUpdate(row, col int, inScrollback bool) {
	if s.selState == SelectionOff {
		return
	}
	s.selEnd = selAnchor{inScrollback: inScrollback, sbIndex: row, row: row, col: col}
	s.selState = SelectionActive
}

// SelectionClear deactivates the current selection.
func (s *Screen) SelectionClear() {
	s.selState = SelectionOff
	s.selStart = selAnchor{}
	s.selEnd = selAnchor{}
}

// SelectionActive reports whether a selection currently spans a region
// (pending selections with no target yet do not count).
func (s *Screen) SelectionActive() bool { return s.selState == SelectionActive }

// invalidateSelectionIfEvicted clears the selection if either anchor points
// into a scrollback line that has since been evicted, per spec §5: "if one
// does, the selection transitions to off."
func (s *Screen) invalidateSelectionIfEvicted() {
	if s.selState == SelectionOff {
		return
	}
	sbLen := s.scrollback.Len()
	for _, a := range [2]selAnchor{s.selStart, s.selEnd} {
		if a.inScrollback && a.sbIndex >= sbLen {
			s.SelectionClear()
			return
		}
	}
}

// docRow maps an anchor to a signed document row: scrollback lines get
// negative rows (older = more negative, relative to the current scrollback
// length), live rows are non-negative, giving row-major ordering between
// the two address spaces.
func (s *Screen) docRow(a selAnchor) int {
	if a.inScrollback {
		return a.sbIndex - s.scrollback.Len()
	}
	return a.row
}

// orderedAnchors returns the selection's two anchors in reading order.
func (s *Screen) orderedAnchors() (selAnchor, selAnchor) {
	a, b := s.selStart, s.selEnd
	ra, rb := s.docRow(a), s.docRow(b)
	if ra > rb || (ra == rb && a.col > b.col) {
		return b, a
	}
	return a, b
}

// lineAt returns the Line an anchor's row addresses.
func (s *Screen) lineAt(a selAnchor) (Line, bool) {
	if a.inScrollback {
		return s.scrollback.Line(a.sbIndex)
	}
	if a.row < 0 || a.row >= s.height {
		return Line{}, false
	}
	return s.lines[a.row], true
}

// SelectionCopy renders the active selection as UTF-8 text: each selected
// line's visible cells, trailing spaces trimmed, each line followed by a
// newline.
func (s *Screen) SelectionCopy() string {
	if s.selState != SelectionActive {
		return ""
	}

	start, end := s.orderedAnchors()
	var b strings.Builder

	// Walk every row from start's to end's document row, inclusive. Since
	// scrollback and live rows use separate index spaces we walk each space
	// directly rather than through a single counter.
	rows := s.collectSelectionRows(start, end)
	for i, a := range rows {
		line, ok := s.lineAt(a)
		if !ok {
			continue
		}
		text := []rune(line.text(s.symtab, s.width))
		lo, hi := 0, len(text)
		if i == 0 {
			lo = clampInt(start.col, 0, len(text))
		}
		if i == len(rows)-1 {
			hi = clampInt(end.col+1, 0, len(text))
		}
		if lo > hi {
			lo = hi
		}
		b.WriteString(string(text[lo:hi]))
		b.WriteByte('\n')
	}

	return b.String()
}

// collectSelectionRows enumerates the anchors for every row spanned by the
// selection, scrollback rows first (oldest to newest) followed by live rows,
// matching reading order.
func (s *Screen) collectSelectionRows(start, end selAnchor) []selAnchor {
	var rows []selAnchor

	startSB := start.inScrollback
	endSB := end.inScrollback

	switch {
	case startSB && endSB:
		for i := start.sbIndex; i <= end.sbIndex; i++ {
			rows = append(rows, selAnchor{inScrollback: true, sbIndex: i, col: 0})
		}
	case startSB && !endSB:
		for i := start.sbIndex; i < s.scrollback.Len(); i++ {
			rows = append(rows, selAnchor{inScrollback: true, sbIndex: i, col: 0})
		}
		for y := 0; y <= end.row; y++ {
			rows = append(rows, selAnchor{row: y, col: 0})
		}
	default: // both live
		for y := start.row; y <= end.row; y++ {
			rows = append(rows, selAnchor{row: y, col: 0})
		}
	}

	if len(rows) > 0 {
		rows[0].col = start.col
		rows[len(rows)-1].col = end.col
	}
	return rows
}
