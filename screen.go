package vtcore

import "fmt"

// ModeBit is one of the screen option bits enumerated in the configuration
// surface: insert mode, auto-wrap, relative origin, inverse video, cursor
// visibility, fixed cursor position, and the main/alternate screen flip.
type ModeBit uint32

const (
	ModeInsert ModeBit = 1 << iota
	ModeAutoWrap
	ModeOrigin
	ModeInverse
	ModeHideCursor
	ModeFixedPos
	ModeAlternate
)

// EraseSelector names which part of a row or screen an erase operation
// targets.
type EraseSelector int

const (
	EraseToEnd EraseSelector = iota
	EraseToStart
	EraseAll
)

// EraseMode bundles an EraseSelector with the selective-erase flag DECSCA
// governs: when Selective is true, cells whose Attr.Protect is set survive
// the erase.
type EraseMode struct {
	Selector  EraseSelector
	Selective bool
}

// SelectionState is the selection's current lifecycle stage.
type SelectionState int

const (
	SelectionOff SelectionState = iota
	SelectionPending
	SelectionActive
)

// selAnchor is one end of a selection. A selection anchor addresses either
// a live-grid row or a specific scrollback line by index; the latter is
// checked for validity against the scrollback's current length before use,
// since an eviction can retire the line it points to.
type selAnchor struct {
	inScrollback bool
	sbIndex      int
	row, col     int
}

// DrawCell is what the per-cell draw callback receives: enough to render
// one visible grid position without the renderer touching Screen internals.
type DrawCell struct {
	ID    Symbol
	Runes []rune
	Width int
	X, Y  int
	Attr  Attributes
}

// ScreenOption configures a Screen at construction time.
type ScreenOption func(*Screen)

// WithSymbolTable attaches a shared symbol table instead of the private one
// NewScreen creates by default. A VTE constructed over this screen uses the
// screen's table, so both resolve handles consistently.
func WithSymbolTable(tbl *SymbolTable) ScreenOption {
	return func(s *Screen) {
		s.symtab.Unref()
		s.symtab = tbl
		s.symtab.Ref()
	}
}

// WithMaxScrollback sets the scrollback retention cap at construction time.
func WithMaxScrollback(n int) ScreenOption {
	return func(s *Screen) { s.scrollback.SetMaxLines(n) }
}

// WithScrollbackProvider replaces the default ring-buffer scrollback store.
func WithScrollbackProvider(p ScrollbackProvider) ScreenOption {
	return func(s *Screen) { s.scrollback = p }
}

// WithDefaultAttributes sets the attributes erase operations reset cells to.
func WithDefaultAttributes(attr Attributes) ScreenOption {
	return func(s *Screen) { s.defaultAttr = attr }
}

// WithScreenLogger attaches a diagnostic logger.
func WithScreenLogger(l Logger) ScreenOption {
	return func(s *Screen) { s.log = l }
}

// Screen is the 2D cell grid: cursor, scrollback, margins, tab stops,
// selection, and draw iteration, per spec §3/§4.3.
type Screen struct {
	width, height int

	lines     []Line // the active grid: main, or alternate while ModeAlternate is set
	savedMain []Line // main grid's content while the alternate screen is active

	cursor Cursor
	top, bottom int // scrolling region, inclusive

	tabstops []bool

	mode        ModeBit
	defaultAttr Attributes
	penAttr     Attributes // attributes new writes use, set by SGR

	savedMainCursor SavedCursor
	savedAltCursor  SavedCursor

	scrollback ScrollbackProvider
	sbPos      int

	selState       SelectionState
	selStart, selEnd selAnchor

	age uint64

	symtab *SymbolTable
	log    Logger

	refs int32
}

// NewScreen returns a Screen of the given dimensions. Both must be positive.
func NewScreen(width, height int, opts ...ScreenOption) (*Screen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("vtcore: invalid screen size %dx%d", width, height)
	}

	s := &Screen{
		width:       width,
		height:      height,
		top:         0,
		bottom:      height - 1,
		defaultAttr: DefaultAttributes(),
		scrollback:  newRingScrollback(0),
		symtab:      NewSymbolTable(),
		log:         noopLogger,
		refs:        1,
	}
	s.penAttr = s.defaultAttr
	s.lines = make([]Line, height)
	for i := range s.lines {
		s.lines[i] = newLine(width, s.defaultAttr)
	}
	s.tabstops = defaultTabstops(width)

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func defaultTabstops(width int) []bool {
	t := make([]bool, width)
	for c := 8; c < width; c += 8 {
		t[c] = true
	}
	return t
}

// Ref/Unref implement the shared-ownership discipline spec §9 describes
// between a VTE instance and a renderer holding the same screen.
func (s *Screen) Ref()          { s.refs++ }
func (s *Screen) Unref() bool   { s.refs--; return s.refs <= 0 }

// Width and Height report the current grid dimensions.
func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Cursor returns the current cursor state.
func (s *Screen) Cursor() Cursor { return s.cursor }

// Options returns the current option bitmask.
func (s *Screen) Options() ModeBit { return s.mode }

// SetOptions sets option bits without clearing others.
func (s *Screen) SetOptions(bits ModeBit) { s.mode |= bits }

// ResetOptions clears option bits.
func (s *Screen) ResetOptions(bits ModeBit) { s.mode &^= bits }

// PenAttributes returns the attributes new writes currently use.
func (s *Screen) PenAttributes() Attributes { return s.penAttr }

// SetPenAttributes replaces the attributes new writes use (the effect of an
// SGR sequence).
func (s *Screen) SetPenAttributes(attr Attributes) { s.penAttr = attr }

// IsAlternate reports whether the alternate screen is currently active.
func (s *Screen) IsAlternate() bool { return s.mode&ModeAlternate != 0 }

// SetMaxScrollback adjusts the scrollback retention cap.
func (s *Screen) SetMaxScrollback(n int) { s.scrollback.SetMaxLines(n) }

// MaxScrollback returns the current scrollback retention cap.
func (s *Screen) MaxScrollback() int { return s.scrollback.MaxLines() }

// ClearScrollback discards all stored scrollback lines and resets the view.
func (s *Screen) ClearScrollback() {
	s.scrollback.Clear()
	s.sbPos = 0
}

// ScrollbackLen returns the number of stored scrollback lines.
func (s *Screen) ScrollbackLen() int { return s.scrollback.Len() }

// nextAge stamps and returns the next monotonic age value, incrementing the
// screen's age counter as spec §3 requires on every mutation.
func (s *Screen) nextAge() uint64 {
	s.age++
	return s.age
}

func (s *Screen) row(y int) *Line { return &s.lines[y] }

// Write places sym at the cursor with attr, per spec §4.3's write algorithm.
// Callers pass only base symbols (the VTE appends combining marks to an
// existing cell via AppendCombining before they ever reach Write).
func (s *Screen) Write(sym Symbol, attr Attributes) {
	w := s.symtab.Width(sym)
	if w <= 0 {
		w = 1
	}

	if s.cursor.WrapPending && s.mode&ModeAutoWrap != 0 {
		s.row(s.cursor.Y).Wrapped = true
		s.Newline()
	}

	// A wide character that doesn't fit in the remaining column wraps early
	// rather than splitting across the margin.
	if w == 2 && s.cursor.X+w > s.width && s.mode&ModeAutoWrap != 0 {
		s.row(s.cursor.Y).Wrapped = true
		s.Newline()
	}

	if s.mode&ModeInsert != 0 {
		s.shiftRight(s.cursor.Y, s.cursor.X, w)
	}

	age := s.nextAge()
	row := s.row(s.cursor.Y)
	if s.cursor.X < s.width {
		row.Cells[s.cursor.X] = Cell{Symbol: sym, Attr: attr, Age: age}
	}
	if w == 2 && s.cursor.X+1 < s.width {
		row.Cells[s.cursor.X+1] = Cell{Symbol: SymbolWidePlaceholder, Attr: attr, Age: age}
	}

	s.cursor.X += w
	if s.cursor.X >= s.width {
		s.cursor.X = s.width
		s.cursor.WrapPending = true
	} else {
		s.cursor.WrapPending = false
	}
}

// AppendCombining attaches mark to the symbol most recently written, in
// place, without moving the cursor. It is a no-op if nothing has been
// written on the current row yet.
func (s *Screen) AppendCombining(mark UCS4) {
	x := s.cursor.X
	if s.cursor.WrapPending {
		x = s.width
	}
	x--
	if x < 0 || x >= s.width {
		return
	}
	row := s.row(s.cursor.Y)
	if x > 0 && row.Cells[x].IsWidePlaceholder() {
		x--
	}
	cell := &row.Cells[x]
	cell.Symbol = s.symtab.Append(cell.Symbol, mark)
	cell.Age = s.nextAge()
}

// shiftRight shifts cells in row y at columns [x, width-n-1] right by n,
// used by insert-mode writes and ICH.
func (s *Screen) shiftRight(y, x, n int) {
	row := s.row(y)
	if n <= 0 || x >= s.width {
		return
	}
	if n > s.width-x {
		n = s.width - x
	}
	copy(row.Cells[x+n:], row.Cells[x:maxInt(s.width-n, x)])
	age := s.nextAge()
	for i := x; i < x+n && i < s.width; i++ {
		row.Cells[i] = blankCell(s.defaultAttr, age)
	}
}

// Newline moves to column 0 of the next row, scrolling the region when
// already at the bottom margin.
func (s *Screen) Newline() {
	s.cursor.X = 0
	s.cursor.WrapPending = false
	if s.cursor.Y == s.bottom {
		s.scrollRegionUp(1)
		return
	}
	if s.cursor.Y < s.height-1 {
		s.cursor.Y++
	}
}

// scrollRegionUp is the shared engine behind Newline's implicit scroll and
// the explicit ScrollUp operation: it rotates n lines out of [top,bottom],
// pushing them to scrollback only when the region spans the whole screen
// and the alternate screen is not active, per spec §4.3.
func (s *Screen) scrollRegionUp(n int) {
	if n <= 0 {
		return
	}
	regionHeight := s.bottom - s.top + 1
	if n > regionHeight {
		n = regionHeight
	}

	pushToScrollback := s.top == 0 && s.bottom == s.height-1 && !s.IsAlternate()

	for i := 0; i < n; i++ {
		if pushToScrollback {
			s.scrollback.Push(s.lines[s.top].clone())
		}
		copy(s.lines[s.top:s.bottom+1], s.lines[s.top+1:s.bottom+1])
		s.lines[s.bottom] = newLine(s.width, s.defaultAttr)
	}
	if pushToScrollback {
		s.invalidateSelectionIfEvicted()
	}
	s.nextAge()
}

// scrollRegionDown is ScrollDown's engine: symmetric to scrollRegionUp but
// never touches scrollback.
func (s *Screen) scrollRegionDown(n int) {
	if n <= 0 {
		return
	}
	regionHeight := s.bottom - s.top + 1
	if n > regionHeight {
		n = regionHeight
	}
	for i := 0; i < n; i++ {
		copy(s.lines[s.top+1:s.bottom+1], s.lines[s.top:s.bottom])
		s.lines[s.top] = newLine(s.width, s.defaultAttr)
	}
	s.nextAge()
}

// ScrollUp is the explicit SU operation.
func (s *Screen) ScrollUp(n int) { s.scrollRegionUp(n) }

// ScrollDown is the explicit SD operation.
func (s *Screen) ScrollDown(n int) { s.scrollRegionDown(n) }

// clampY clamps y to the margins when relative-origin is set, otherwise to
// the full grid.
func (s *Screen) clampY(y int) int {
	lo, hi := 0, s.height-1
	if s.mode&ModeOrigin != 0 {
		lo, hi = s.top, s.bottom
	}
	if y < lo {
		return lo
	}
	if y > hi {
		return hi
	}
	return y
}

// MoveTo positions the cursor absolutely, per CUP/HVP semantics.
func (s *Screen) MoveTo(x, y int) {
	if s.mode&ModeOrigin != 0 {
		y += s.top
	}
	s.cursor.X = clampInt(x, 0, s.width-1)
	s.cursor.Y = s.clampY(y)
	s.cursor.WrapPending = false
}

// MoveUp moves the cursor up n rows; scroll controls whether exceeding the
// top margin scrolls the region (true) or simply clamps (false).
func (s *Screen) MoveUp(n int, scroll bool) {
	if n <= 0 {
		n = 1
	}
	if scroll && s.cursor.Y-n < s.top {
		s.scrollRegionDown(s.top - (s.cursor.Y - n))
		s.cursor.Y = s.top
		return
	}
	s.cursor.Y = clampInt(s.cursor.Y-n, s.topBound(), s.bottomBound())
	s.cursor.WrapPending = false
}

// MoveDown is MoveUp's downward counterpart.
func (s *Screen) MoveDown(n int, scroll bool) {
	if n <= 0 {
		n = 1
	}
	if scroll && s.cursor.Y+n > s.bottom {
		s.scrollRegionUp((s.cursor.Y + n) - s.bottom)
		s.cursor.Y = s.bottom
		return
	}
	s.cursor.Y = clampInt(s.cursor.Y+n, s.topBound(), s.bottomBound())
	s.cursor.WrapPending = false
}

func (s *Screen) topBound() int {
	if s.mode&ModeOrigin != 0 {
		return s.top
	}
	return 0
}

func (s *Screen) bottomBound() int {
	if s.mode&ModeOrigin != 0 {
		return s.bottom
	}
	return s.height - 1
}

// MoveForward moves the cursor right n columns; horizontal moves never
// wrap, per spec §4.3.
func (s *Screen) MoveForward(n int) {
	if n <= 0 {
		n = 1
	}
	s.cursor.X = clampInt(s.cursor.X+n, 0, s.width-1)
	s.cursor.WrapPending = false
}

// MoveBackward moves the cursor left n columns.
func (s *Screen) MoveBackward(n int) {
	if n <= 0 {
		n = 1
	}
	s.cursor.X = clampInt(s.cursor.X-n, 0, s.width-1)
	s.cursor.WrapPending = false
}

// LineHome moves to column 0 of the current row.
func (s *Screen) LineHome() {
	s.cursor.X = 0
	s.cursor.WrapPending = false
}

// LineEnd moves to the last column of the current row.
func (s *Screen) LineEnd() {
	s.cursor.X = s.width - 1
	s.cursor.WrapPending = false
}

// TabRight advances to the n-th set tab stop to the right, or to the last
// column if none remain.
func (s *Screen) TabRight(n int) {
	if n <= 0 {
		n = 1
	}
	for ; n > 0; n-- {
		next := -1
		for c := s.cursor.X + 1; c < s.width; c++ {
			if s.tabstops[c] {
				next = c
				break
			}
		}
		if next < 0 {
			s.cursor.X = s.width - 1
			break
		}
		s.cursor.X = next
	}
	s.cursor.WrapPending = false
}

// TabLeft is TabRight's symmetric backward counterpart.
func (s *Screen) TabLeft(n int) {
	if n <= 0 {
		n = 1
	}
	for ; n > 0; n-- {
		prev := -1
		for c := s.cursor.X - 1; c >= 0; c-- {
			if s.tabstops[c] {
				prev = c
				break
			}
		}
		if prev < 0 {
			s.cursor.X = 0
			break
		}
		s.cursor.X = prev
	}
	s.cursor.WrapPending = false
}

// SetTabstop sets a tab stop at the cursor's current column.
func (s *Screen) SetTabstop() { s.tabstops[s.cursor.X] = true }

// ResetTabstop clears the tab stop at the cursor's current column.
func (s *Screen) ResetTabstop() { s.tabstops[s.cursor.X] = false }

// ResetAllTabstops restores the default every-8-columns pattern.
func (s *Screen) ResetAllTabstops() { s.tabstops = defaultTabstops(s.width) }

// eraseCell resets one cell, honoring selective erase.
func (s *Screen) eraseCell(y, x int, mode EraseMode, age uint64) {
	cell := &s.row(y).Cells[x]
	if mode.Selective && cell.Attr.Protect {
		return
	}
	*cell = blankCell(s.defaultAttr, age)
}

// EraseCursor clears the single cell at the cursor without moving it.
func (s *Screen) EraseCursor(mode EraseMode) {
	age := s.nextAge()
	s.eraseCell(s.cursor.Y, s.cursor.X, mode, age)
}

// EraseLine implements EL: erase to end/start/all of the current row.
func (s *Screen) EraseLine(mode EraseMode) {
	age := s.nextAge()
	lo, hi := 0, s.width-1
	switch mode.Selector {
	case EraseToEnd:
		lo = s.cursor.X
	case EraseToStart:
		hi = s.cursor.X
	case EraseAll:
	}
	for x := lo; x <= hi; x++ {
		s.eraseCell(s.cursor.Y, x, mode, age)
	}
}

// EraseDisplay implements ED: erase to end/start/all of the screen.
func (s *Screen) EraseDisplay(mode EraseMode) {
	age := s.nextAge()
	switch mode.Selector {
	case EraseToEnd:
		for x := s.cursor.X; x < s.width; x++ {
			s.eraseCell(s.cursor.Y, x, mode, age)
		}
		for y := s.cursor.Y + 1; y < s.height; y++ {
			for x := 0; x < s.width; x++ {
				s.eraseCell(y, x, mode, age)
			}
		}
	case EraseToStart:
		for x := 0; x <= s.cursor.X; x++ {
			s.eraseCell(s.cursor.Y, x, mode, age)
		}
		for y := 0; y < s.cursor.Y; y++ {
			for x := 0; x < s.width; x++ {
				s.eraseCell(y, x, mode, age)
			}
		}
	case EraseAll:
		for y := 0; y < s.height; y++ {
			for x := 0; x < s.width; x++ {
				s.eraseCell(y, x, mode, age)
			}
		}
	}
}

// InsertLines shifts lines at/below the cursor down within [top,bottom] by
// n, discarding lines that fall off bottom and filling from the cursor row.
// Effective only when the cursor is within the scrolling region.
func (s *Screen) InsertLines(n int) {
	if s.cursor.Y < s.top || s.cursor.Y > s.bottom || n <= 0 {
		return
	}
	if n > s.bottom-s.cursor.Y+1 {
		n = s.bottom - s.cursor.Y + 1
	}
	copy(s.lines[s.cursor.Y+n:s.bottom+1], s.lines[s.cursor.Y:s.bottom+1-n])
	for y := s.cursor.Y; y < s.cursor.Y+n; y++ {
		s.lines[y] = newLine(s.width, s.defaultAttr)
	}
	s.nextAge()
}

// DeleteLines shifts lines below the cursor up within [top,bottom] by n,
// filling vacated rows at the bottom of the region with blanks.
func (s *Screen) DeleteLines(n int) {
	if s.cursor.Y < s.top || s.cursor.Y > s.bottom || n <= 0 {
		return
	}
	if n > s.bottom-s.cursor.Y+1 {
		n = s.bottom - s.cursor.Y + 1
	}
	copy(s.lines[s.cursor.Y:s.bottom+1-n], s.lines[s.cursor.Y+n:s.bottom+1])
	for y := s.bottom - n + 1; y <= s.bottom; y++ {
		s.lines[y] = newLine(s.width, s.defaultAttr)
	}
	s.nextAge()
}

// InsertChars shifts cells on the cursor's row right by n starting at the
// cursor, discarding cells that fall off the right edge.
func (s *Screen) InsertChars(n int) {
	if n <= 0 {
		return
	}
	s.shiftRight(s.cursor.Y, s.cursor.X, n)
}

// DeleteChars shifts cells on the cursor's row left by n starting at the
// cursor, filling vacated columns at the right edge with blanks.
func (s *Screen) DeleteChars(n int) {
	if n <= 0 {
		return
	}
	row := s.row(s.cursor.Y)
	x := s.cursor.X
	if x >= s.width {
		return
	}
	if n > s.width-x {
		n = s.width - x
	}
	copy(row.Cells[x:s.width-n], row.Cells[x+n:s.width])
	age := s.nextAge()
	for i := s.width - n; i < s.width; i++ {
		row.Cells[i] = blankCell(s.defaultAttr, age)
	}
}

// SetScrollRegion sets the scrolling margins, clamping to valid bounds (an
// inverted pair selects the full screen), and homes the cursor: to (0,0),
// or to the top margin when relative-origin is set.
func (s *Screen) SetScrollRegion(top, bottom int) {
	top = clampInt(top, 0, s.height-1)
	bottom = clampInt(bottom, 0, s.height-1)
	if top > bottom {
		top, bottom = 0, s.height-1
	}
	s.top, s.bottom = top, bottom
	s.MoveTo(0, 0)
}

// Margins returns the current scrolling region, inclusive.
func (s *Screen) Margins() (top, bottom int) { return s.top, s.bottom }

// SaveCursor copies the current cursor/attribute/mode state into the saved
// slot belonging to whichever screen (main/alternate) is currently active.
func (s *Screen) SaveCursor(gl, gr CharsetIndex, charsets [4]CharsetID) {
	sv := SavedCursor{
		X: s.cursor.X, Y: s.cursor.Y,
		Attr:       s.penAttr,
		OriginMode: s.mode&ModeOrigin != 0,
		AutoWrap:   s.mode&ModeAutoWrap != 0,
		GL:         gl, GR: gr,
		Charsets: charsets,
	}
	if s.IsAlternate() {
		s.savedAltCursor = sv
	} else {
		s.savedMainCursor = sv
	}
}

// RestoreCursor returns the saved slot for the active screen, clamping the
// position to the current grid. Callers use the returned GL/GR/Attr to
// restore VTE-level state; Screen applies the position/attr/mode parts.
func (s *Screen) RestoreCursor() SavedCursor {
	var sv SavedCursor
	if s.IsAlternate() {
		sv = s.savedAltCursor
	} else {
		sv = s.savedMainCursor
	}
	s.cursor.X = clampInt(sv.X, 0, s.width-1)
	s.cursor.Y = clampInt(sv.Y, 0, s.height-1)
	s.cursor.WrapPending = false
	s.penAttr = sv.Attr
	if sv.OriginMode {
		s.mode |= ModeOrigin
	} else {
		s.mode &^= ModeOrigin
	}
	if sv.AutoWrap {
		s.mode |= ModeAutoWrap
	} else {
		s.mode &^= ModeAutoWrap
	}
	return sv
}

// SetAlternate enters or leaves the alternate screen. Entering swaps in a
// blank grid with its own saved cursor and never-written scrollback;
// leaving swaps the main content back, unchanged.
func (s *Screen) SetAlternate(on bool) {
	if on == s.IsAlternate() {
		return
	}
	if on {
		s.savedMain = s.lines
		s.lines = make([]Line, s.height)
		for i := range s.lines {
			s.lines[i] = newLine(s.width, s.defaultAttr)
		}
		s.mode |= ModeAlternate
	} else {
		s.lines = s.savedMain
		s.savedMain = nil
		s.mode &^= ModeAlternate
	}
	s.cursor = Cursor{}
}

// Resize changes the grid dimensions, per spec §4.3's resize algorithm:
// widening reallocates each line and preserves content; heightening grows
// at the bottom; shrinking height pushes rows off the top into scrollback
// (main screen only) until the cursor is back in range, then drops the
// remaining excess rows from the bottom.
func (s *Screen) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("vtcore: invalid resize target %dx%d", width, height)
	}

	if width != s.width {
		for i := range s.lines {
			s.lines[i].resizeTo(width, s.defaultAttr, s.nextAge())
		}
		s.tabstops = resizeTabstops(s.tabstops, width)
	}

	if height > s.height {
		grown := make([]Line, height)
		copy(grown, s.lines)
		for i := s.height; i < height; i++ {
			grown[i] = newLine(maxInt(width, s.width), s.defaultAttr)
		}
		s.lines = grown
	} else if height < s.height {
		pushToScrollback := s.top == 0 && s.bottom == s.height-1 && !s.IsAlternate()
		for s.cursor.Y >= height {
			if pushToScrollback {
				s.scrollback.Push(s.lines[0].clone())
			}
			s.lines = s.lines[1:]
			s.cursor.Y--
		}
		s.lines = s.lines[:height]
		if pushToScrollback {
			s.invalidateSelectionIfEvicted()
		}
	}

	s.width, s.height = width, height
	s.top = clampInt(s.top, 0, height-1)
	s.bottom = clampInt(s.bottom, s.top, height-1)
	s.cursor.X = clampInt(s.cursor.X, 0, width-1)
	s.cursor.Y = clampInt(s.cursor.Y, 0, height-1)
	s.nextAge()
	return nil
}

func resizeTabstops(old []bool, width int) []bool {
	if width <= len(old) {
		return old[:width]
	}
	t := make([]bool, width)
	copy(t, old)
	return t
}

// SbUp scrolls the scrollback view up (toward history) by n lines.
func (s *Screen) SbUp(n int) {
	s.sbPos = clampInt(s.sbPos+n, 0, s.scrollback.Len())
}

// SbDown scrolls the view back down (toward live) by n lines.
func (s *Screen) SbDown(n int) {
	s.sbPos = clampInt(s.sbPos-n, 0, s.scrollback.Len())
}

// SbPageUp/SbPageDown scroll by a full screen height.
func (s *Screen) SbPageUp()   { s.SbUp(s.height) }
func (s *Screen) SbPageDown() { s.SbDown(s.height) }

// SbReset returns the view to the live grid.
func (s *Screen) SbReset() { s.sbPos = 0 }

// SbPos returns the current scrollback view offset.
func (s *Screen) SbPos() int { return s.sbPos }

// visibleLine returns the line displayed at row y given the current
// scrollback view offset, per spec §4.3's draw-iteration rule.
func (s *Screen) visibleLine(y int) Line {
	sbLen := s.scrollback.Len()
	viewStart := sbLen - s.sbPos
	idx := viewStart + y
	if idx < sbLen {
		if l, ok := s.scrollback.Line(idx); ok {
			return l
		}
		return newLine(s.width, s.defaultAttr)
	}
	return s.lines[idx-sbLen]
}

// Draw iterates every visible cell in reading order, per spec §4.3.
// prepare and render, when non-nil, run once each before/after the cells.
// A non-nil error from any callback aborts iteration immediately.
func (s *Screen) Draw(ctx any, prepare func(ctx any) error, drawCell func(ctx any, cell DrawCell) error, render func(ctx any) error) error {
	if prepare != nil {
		if err := prepare(ctx); err != nil {
			return err
		}
	}

	for y := 0; y < s.height; y++ {
		line := s.visibleLine(y)
		for x := 0; x < line.Width && x < s.width; x++ {
			cell := line.Cells[x]
			if cell.IsWidePlaceholder() {
				continue
			}

			attr := cell.Attr
			if s.mode&ModeInverse != 0 {
				attr = attr.inverted()
			}
			if s.sbPos == 0 && s.mode&ModeHideCursor == 0 && x == s.cursor.X && y == s.cursor.Y {
				attr.Inverse = !attr.Inverse
			}

			w := s.symtab.Width(cell.Symbol)
			if w <= 0 {
				w = 1
			}

			dc := DrawCell{
				ID:    cell.Symbol,
				Runes: s.symtab.Get(cell.Symbol),
				Width: w,
				X:     x, Y: y,
				Attr: attr,
			}
			if drawCell != nil {
				if err := drawCell(ctx, dc); err != nil {
					return err
				}
			}
		}
	}

	if render != nil {
		return render(ctx)
	}
	return nil
}

// LineText renders row y's visible content as a string, trailing spaces
// trimmed.
func (s *Screen) LineText(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	return s.lines[y].text(s.symtab, s.width)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
