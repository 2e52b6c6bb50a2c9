package vtcore

import "fmt"

// csiDispatch executes a fully-parsed CSI sequence: v.params/v.nparams hold
// the arguments, v.private is '?' for DEC private modes, final is the
// sequence's terminating byte. Grounded on the dispatch-by-final-byte shape
// a VT100-lineage CSI parser uses (cursor motion, erase, insert/delete,
// scroll, tabs, margins, SGR, modes, device reports).
func (v *VTE) csiDispatch(final byte) {
	if v.private == '?' {
		v.csiPrivateDispatch(final)
		return
	}

	if len(v.inter) == 1 && v.inter[0] == '"' && final == 'q' { // DECSCA
		v.decsca(v.arg(0, 0))
		return
	}

	switch final {
	case '@': // ICH
		v.screen.InsertChars(v.arg(0, 1))
	case 'A': // CUU
		n := v.arg(0, 1)
		v.mw.dispatchMoveUp(n, func(n int) { v.screen.MoveUp(n, false) })
	case 'B': // CUD
		n := v.arg(0, 1)
		v.mw.dispatchMoveDown(n, func(n int) { v.screen.MoveDown(n, false) })
	case 'C': // CUF
		n := v.arg(0, 1)
		v.mw.dispatchMoveForward(n, func(n int) { v.screen.MoveForward(n) })
	case 'D': // CUB
		n := v.arg(0, 1)
		v.mw.dispatchMoveBackward(n, func(n int) { v.screen.MoveBackward(n) })
	case 'E': // CNL: down n rows, column 0
		v.screen.MoveDown(v.arg(0, 1), false)
		v.screen.LineHome()
	case 'F': // CPL: up n rows, column 0
		v.screen.MoveUp(v.arg(0, 1), false)
		v.screen.LineHome()
	case 'G', '`': // CHA / HPA: absolute column
		v.gotoCursor(v.screen.Cursor().Y, v.arg(0, 1)-1)
	case 'H', 'f': // CUP / HVP: absolute row;col
		v.gotoCursor(v.arg(0, 1)-1, v.arg(1, 1)-1)
	case 'I': // CHT
		v.screen.TabRight(v.arg(0, 1))
	case 'J': // ED
		v.eraseDisplay(v.arg(0, 0), false)
	case 'K': // EL
		v.eraseLine(v.arg(0, 0), false)
	case 'L': // IL
		v.screen.InsertLines(v.arg(0, 1))
	case 'M': // DL
		v.screen.DeleteLines(v.arg(0, 1))
	case 'P': // DCH
		v.screen.DeleteChars(v.arg(0, 1))
	case 'S': // SU
		n := v.arg(0, 1)
		v.mw.dispatchScrollUp(n, func(n int) { v.screen.ScrollUp(n) })
	case 'T': // SD
		n := v.arg(0, 1)
		v.mw.dispatchScrollDown(n, func(n int) { v.screen.ScrollDown(n) })
	case 'X': // ECH: erase n chars at cursor without moving it
		v.eraseChars(v.arg(0, 1))
	case 'Z': // CBT
		v.screen.TabLeft(v.arg(0, 1))
	case 'a': // HPR: column-relative forward
		v.screen.MoveForward(v.arg(0, 1))
	case 'b': // REP: logged only, see repeatLast
		v.repeatLast(v.arg(0, 1))
	case 'c': // DA
		v.reply("\x1b[?62;1;6c")
	case 'd': // VPA: absolute row
		v.gotoCursor(v.arg(0, 1)-1, v.screen.Cursor().X)
	case 'e': // VPR: row-relative down
		v.screen.MoveDown(v.arg(0, 1), false)
	case 'g': // TBC
		v.tabClear(v.arg(0, 0))
	case 'h': // SM
		v.setMode(v.arg(0, 0), true)
	case 'l': // RM
		v.setMode(v.arg(0, 0), false)
	case 'm': // SGR
		v.sgr()
	case 'n': // DSR
		v.deviceStatusReport(v.arg(0, 0))
	case 'r': // DECSTBM
		v.decstbm()
	case 's': // save cursor position (ANSI.SYS-style)
		v.screen.SaveCursor(v.gl, v.gr, v.charsets)
	case 'u': // restore cursor position
		v.restoreCursor()
	case 't': // XTWINOPS: only the title stack (22 push, 23 pop) applies headlessly
		v.xtwinops(v.arg(0, 0))
	default:
		v.log(LogDebug, "unhandled CSI final byte %q", final)
	}
}

// csiPrivateDispatch handles CSI ? Pm h/l (DECSET/DECRST) and the other
// DEC-private-parameter sequences: DECSED/DECSEL, the selective-erase forms
// of ED/EL that spare cells DECSCA has marked protected.
func (v *VTE) csiPrivateDispatch(final byte) {
	switch final {
	case 'h':
		for i := 0; i < v.nparams; i++ {
			v.setPrivateMode(v.arg(i, 0), true)
		}
	case 'l':
		for i := 0; i < v.nparams; i++ {
			v.setPrivateMode(v.arg(i, 0), false)
		}
	case 'J': // DECSED
		v.eraseDisplay(v.arg(0, 0), true)
	case 'K': // DECSEL
		v.eraseLine(v.arg(0, 0), true)
	default:
		v.log(LogDebug, "unhandled private CSI final byte %q", final)
	}
}

func (v *VTE) gotoCursor(row, col int) {
	v.mw.dispatchGoto(row, col, func(row, col int) { v.screen.MoveTo(col, row) })
}

func (v *VTE) eraseDisplay(ps int, selective bool) {
	mode := EraseMode{Selector: eraseSelectorFor(ps), Selective: selective}
	v.mw.dispatchEraseDisplay(mode, func(mode EraseMode) { v.screen.EraseDisplay(mode) })
}

func (v *VTE) eraseLine(ps int, selective bool) {
	mode := EraseMode{Selector: eraseSelectorFor(ps), Selective: selective}
	v.mw.dispatchEraseLine(mode, func(mode EraseMode) { v.screen.EraseLine(mode) })
}

// decsca implements DECSCA: Ps 1 marks the pen's writes protected from a
// selective erase (DECSED/DECSEL); Ps 0 or 2 clears that protection.
func (v *VTE) decsca(ps int) {
	attr := v.screen.PenAttributes()
	attr.Protect = ps == 1
	v.applyAttr(attr)
}

func eraseSelectorFor(ps int) EraseSelector {
	switch ps {
	case 1:
		return EraseToStart
	case 2, 3:
		return EraseAll
	default:
		return EraseToEnd
	}
}

// eraseChars clears n cells starting at the cursor, without shifting
// anything: ECH's behavior, distinct from DCH.
func (v *VTE) eraseChars(n int) {
	s := v.screen
	age := s.nextAge()
	for i := 0; i < n && s.cursor.X+i < s.width; i++ {
		s.eraseCell(s.cursor.Y, s.cursor.X+i, EraseMode{Selector: EraseAll}, age)
	}
}

// repeatLast handles REP (CSI Pn b). The parser does not record the most
// recently printed character, so the sequence is logged and nothing is
// reprinted.
func (v *VTE) repeatLast(n int) {
	v.log(LogDebug, "REP (CSI %d b) is not implemented", n)
}

func (v *VTE) tabClear(ps int) {
	switch ps {
	case 0:
		v.screen.ResetTabstop()
	case 3:
		for x := 0; x < v.screen.Width(); x++ {
			v.screen.MoveTo(x, v.screen.Cursor().Y)
			v.screen.ResetTabstop()
		}
	}
}

// setMode implements SM/RM for the handful of ANSI (non-private) modes
// meaningful to a headless emulator: insert mode (IRM) is the only one with
// screen-level effect here.
func (v *VTE) setMode(ps int, enable bool) {
	if ps != 4 { // 4 = IRM, insert mode
		v.log(LogDebug, "unhandled ANSI mode %d", ps)
		return
	}
	bit := ModeInsert
	if enable {
		v.mw.dispatchSetMode(bit, func(bit ModeBit) { v.screen.SetOptions(bit) })
	} else {
		v.mw.dispatchResetMode(bit, func(bit ModeBit) { v.screen.ResetOptions(bit) })
	}
}

// setPrivateMode implements DECSET/DECRST for the DEC private modes a
// headless terminal needs: cursor keys, origin mode, autowrap, cursor
// visibility, and the alternate-screen family.
func (v *VTE) setPrivateMode(ps int, enable bool) {
	switch ps {
	case 1: // DECCKM
		v.appCursorKeys = enable
	case 6: // DECOM
		v.setBit(ModeOrigin, enable)
		v.screen.MoveTo(0, 0)
	case 7: // DECAWM
		v.setBit(ModeAutoWrap, enable)
	case 25: // DECTCEM
		v.setBit(ModeHideCursor, !enable)
	case 1048:
		if enable {
			v.screen.SaveCursor(v.gl, v.gr, v.charsets)
		} else {
			v.restoreCursor()
		}
	case 47, 1047:
		v.screen.SetAlternate(enable)
	case 1049:
		if enable {
			v.screen.SaveCursor(v.gl, v.gr, v.charsets)
			v.screen.SetAlternate(true)
			v.screen.EraseDisplay(EraseMode{Selector: EraseAll})
		} else {
			v.screen.SetAlternate(false)
			v.restoreCursor()
		}
	case 2004: // bracketed paste: tracked by the host integration, not here
	default:
		v.log(LogDebug, "unhandled private mode %d", ps)
	}
}

func (v *VTE) setBit(bit ModeBit, enable bool) {
	if enable {
		v.mw.dispatchSetMode(bit, func(bit ModeBit) { v.screen.SetOptions(bit) })
	} else {
		v.mw.dispatchResetMode(bit, func(bit ModeBit) { v.screen.ResetOptions(bit) })
	}
}

func (v *VTE) restoreCursor() {
	sv := v.screen.RestoreCursor()
	v.gl, v.gr = sv.GL, sv.GR
	v.charsets = sv.Charsets
}

// deviceStatusReport implements DSR: Ps 5 reports device OK, Ps 6 reports
// the cursor position (CPR).
func (v *VTE) deviceStatusReport(ps int) {
	switch ps {
	case 5:
		v.reply("\x1b[0n")
	case 6:
		c := v.screen.Cursor()
		v.reply(fmt.Sprintf("\x1b[%d;%dR", c.Y+1, c.X+1))
	}
}

// xtwinops implements the handful of "CSI Ps t" window operations meaningful
// to a headless emulator: the title stack. Everything else (resizing,
// iconifying, reporting pixel geometry) needs a real window and is left
// unhandled.
func (v *VTE) xtwinops(ps int) {
	switch ps {
	case 22:
		v.title.PushTitle()
	case 23:
		v.title.PopTitle()
	default:
		v.log(LogDebug, "unhandled XTWINOPS Ps %d", ps)
	}
}

// decstbm implements DECSTBM: set the scrolling region to 1-based
// top;bottom, defaulting to the full screen when omitted.
func (v *VTE) decstbm() {
	top := v.arg(0, 1) - 1
	bottom := v.arg(1, v.screen.Height()) - 1
	v.screen.SetScrollRegion(top, bottom)
}

// sgr implements Select Graphic Rendition, including the extended 256-color
// and truecolor forms ("38;5;n", "38;2;r;g;b" and their 48;... background
// equivalents).
func (v *VTE) sgr() {
	attr := v.screen.PenAttributes()
	if v.nparams == 0 {
		attr = DefaultAttributes()
		v.applyAttr(attr)
		return
	}

	for i := 0; i < v.nparams; i++ {
		p := v.arg(i, 0)
		switch {
		case p == 0:
			attr = DefaultAttributes()
		case p == 1:
			attr.Bold = true
		case p == 4:
			attr.Underline = true
		case p == 5:
			attr.Blink = true
		case p == 7:
			attr.Inverse = true
		case p == 22:
			attr.Bold = false
		case p == 24:
			attr.Underline = false
		case p == 25:
			attr.Blink = false
		case p == 27:
			attr.Inverse = false
		case p >= 30 && p <= 37:
			attr = attr.WithFgPalette(uint8(p - 30))
		case p == 38:
			attr, i = v.sgrExtendedColor(attr, i, true)
		case p == 39:
			attr.FgCode = -1
			attr.FgRGB = RGB{}
		case p >= 40 && p <= 47:
			attr = attr.WithBgPalette(uint8(p - 40))
		case p == 48:
			attr, i = v.sgrExtendedColor(attr, i, false)
		case p == 49:
			attr.BgCode = -1
			attr.BgRGB = RGB{}
		case p >= 90 && p <= 97:
			attr = attr.WithFgPalette(uint8(p - 90 + 8))
		case p >= 100 && p <= 107:
			attr = attr.WithBgPalette(uint8(p - 100 + 8))
		}
	}

	v.applyAttr(attr)
}

func (v *VTE) applyAttr(attr Attributes) {
	v.mw.dispatchSetCharAttribute(attr, func(attr Attributes) { v.screen.SetPenAttributes(attr) })
}

// sgrExtendedColor parses the "5;n" (256-color) or "2;r;g;b" (truecolor)
// forms following a 38 or 48 selector, returning the updated attributes and
// the index of the last sub-parameter consumed.
func (v *VTE) sgrExtendedColor(attr Attributes, i int, foreground bool) (Attributes, int) {
	if i+1 >= v.nparams {
		return attr, i
	}
	switch v.arg(i+1, 0) {
	case 5:
		if i+2 < v.nparams {
			idx := uint8(v.arg(i+2, 0))
			if foreground {
				attr = attr.WithFgPalette(idx)
			} else {
				attr = attr.WithBgPalette(idx)
			}
			return attr, i + 2
		}
	case 2:
		if i+4 < v.nparams {
			rgb := RGB{uint8(v.arg(i+2, 0)), uint8(v.arg(i+3, 0)), uint8(v.arg(i+4, 0))}
			if foreground {
				attr = attr.WithFgRGB(rgb)
			} else {
				attr = attr.WithBgRGB(rgb)
			}
			return attr, i + 4
		}
	}
	return attr, i
}
