package vtcore

import (
	"fmt"
	"strconv"
)

// vteState is one state of the Williams-style parser state machine spec
// §4.5 names.
type vteState int

const (
	stGround vteState = iota
	stEscape
	stEscapeInt
	stCSIEntry
	stCSIParam
	stCSIInt
	stCSIIgnore
	stDCSEntry
	stDCSParam
	stDCSInt
	stDCSPass
	stDCSIgnore
	stOSCString
	stSTIgnore
)

const maxParams = 16

// VTEOption configures a VTE at construction time.
type VTEOption func(*VTE)

// WithWriteCallback sets where reply bytes (device reports, keyboard
// output) are sent.
func WithWriteCallback(w WriteCallback) VTEOption {
	return func(v *VTE) { v.write = w }
}

// WithClipboardProvider wires OSC 52 clipboard handling.
func WithClipboardProvider(p ClipboardProvider) VTEOption {
	return func(v *VTE) { v.clipboard = p }
}

// WithTitleProvider wires OSC 0/1/2 window title handling.
func WithTitleProvider(p TitleProvider) VTEOption {
	return func(v *VTE) { v.title = p }
}

// WithBellProvider wires BEL handling.
func WithBellProvider(p BellProvider) VTEOption {
	return func(v *VTE) { v.bell = p }
}

// WithVTELogger attaches a diagnostic logger.
func WithVTELogger(l Logger) VTEOption {
	return func(v *VTE) { v.log = l }
}

// WithMiddleware installs an interception layer over dispatch.
func WithMiddleware(m *Middleware) VTEOption {
	return func(v *VTE) { v.mw = m }
}

// WithPaletteName selects one of the built-in named palettes up front.
func WithPaletteName(name string) VTEOption {
	return func(v *VTE) { _ = v.SetPalette(name) }
}

// VTE is the control-sequence parser: it consumes a byte stream and drives
// a [Screen] plus a write-callback for replies, per spec §4.5.
type VTE struct {
	screen *Screen
	symtab *SymbolTable

	decoder *UTF8Decoder

	state vteState

	params     [maxParams]int
	hasValue   [maxParams]bool
	nparams    int
	collecting bool // currently accumulating a parameter's digits
	private    byte // '?' or 0
	inter      []byte

	oscBuf []byte
	dcsBuf []byte

	gl, gr   CharsetIndex
	charsets [4]CharsetID

	write     WriteCallback
	clipboard ClipboardProvider
	title     TitleProvider
	bell      BellProvider
	log       Logger
	mw        *Middleware

	palette       Palette
	fgOverride    RGB
	bgOverride    RGB
	appCursorKeys bool
	appKeypad     bool
}

// NewVTE returns a parser driving screen.
func NewVTE(screen *Screen, opts ...VTEOption) (*VTE, error) {
	if screen == nil {
		return nil, fmt.Errorf("vtcore: NewVTE requires a non-nil screen")
	}

	v := &VTE{
		screen:     screen,
		symtab:     screen.symtab,
		decoder:    NewUTF8Decoder(),
		write:      NoopWriter{},
		clipboard:  NoopClipboard{},
		title:      NoopTitle{},
		bell:       NoopBell{},
		log:        noopLogger,
		palette:    defaultPalette,
		fgOverride: DefaultForeground,
		bgOverride: DefaultBackground,
		charsets:   [4]CharsetID{CharsetUnicodeLower, CharsetUnicodeLower, CharsetUnicodeLower, CharsetUnicodeLower},
	}
	screen.SetOptions(ModeAutoWrap) // auto-wrap on is the VT100 power-on default

	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// SetPalette selects one of the built-in named palettes, mirroring
// libtsm's tsm_vte_set_palette.
func (v *VTE) SetPalette(name string) error {
	p, ok := namedPalettes[name]
	if !ok {
		return fmt.Errorf("vtcore: unknown palette %q", name)
	}
	v.palette = p
	return nil
}

// Palette returns the VTE's current 256-color table, reflecting any OSC 4
// entries the child process has set.
func (v *VTE) Palette() Palette { return v.palette }

// DefaultColors returns the effective default foreground/background, as
// overridden by OSC 10/11.
func (v *VTE) DefaultColors() (fg, bg RGB) { return v.fgOverride, v.bgOverride }

// Input feeds a chunk of child-process bytes to the parser. The parser is
// chunk-agnostic: a sequence split across two calls resumes correctly.
func (v *VTE) Input(data []byte) {
	for _, b := range data {
		v.step(b)
	}
}

func (v *VTE) reply(s string) {
	_, _ = v.write.Write([]byte(s))
}

func (v *VTE) toGround() {
	v.state = stGround
	v.nparams = 0
	v.collecting = false
	v.private = 0
	v.inter = v.inter[:0]
	v.oscBuf = v.oscBuf[:0]
	v.dcsBuf = v.dcsBuf[:0]
}

// step advances the state machine by one byte.
func (v *VTE) step(b byte) {
	// CAN/SUB abort any pending sequence back to GROUND at any state,
	// per spec §4.5.
	if (b == 0x18 || b == 0x1A) && v.state != stGround {
		v.toGround()
		return
	}

	switch v.state {
	case stGround:
		v.stepGround(b)
	case stEscape:
		v.stepEscape(b)
	case stEscapeInt:
		v.stepEscapeInt(b)
	case stCSIEntry, stCSIParam, stCSIInt, stCSIIgnore:
		v.stepCSI(b)
	case stDCSEntry, stDCSParam, stDCSInt:
		v.stepDCSHead(b)
	case stDCSPass:
		v.stepDCSPass(b)
	case stDCSIgnore:
		v.stepDCSIgnore(b)
	case stOSCString:
		v.stepOSC(b)
	case stSTIgnore:
		v.stepSTIgnore(b)
	}
}

// c0 executes a C0 control, which spec §4.5 says happens "at any state".
// It returns true if b was a C0 control it handled.
func (v *VTE) c0(b byte) bool {
	switch b {
	case 0x07: // BEL
		v.mw.dispatchBell(func() { v.bell.Ring() })
	case 0x08: // BS
		v.dispatchBackspace()
	case 0x09: // HT
		v.dispatchTab(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		v.dispatchLineFeed()
	case 0x0D: // CR
		v.dispatchCarriageReturn()
	case 0x0E: // SO: shift out, GL = G1
		v.gl = CharsetIndexG1
	case 0x0F: // SI: shift in, GL = G0
		v.gl = CharsetIndexG0
	default:
		return false
	}
	return true
}

func (v *VTE) dispatchBackspace() {
	v.mw.dispatchBackspace(func() { v.screen.MoveBackward(1) })
}

func (v *VTE) dispatchTab(n int) {
	v.mw.dispatchTab(n, func(n int) { v.screen.TabRight(n) })
}

func (v *VTE) dispatchLineFeed() {
	v.mw.dispatchLineFeed(func() { v.screen.Newline() })
}

func (v *VTE) dispatchCarriageReturn() {
	v.mw.dispatchCarriageReturn(func() { v.screen.LineHome() })
}

// stepGround handles printable bytes and C0 in GROUND, and dispatches ESC
// (0x1B) into the escape state. 8-bit C1 bytes such as 0x9B are not
// recognized as controls; they go to the UTF-8 decoder like any other byte.
func (v *VTE) stepGround(b byte) {
	if b == 0x1B {
		v.state = stEscape
		v.inter = v.inter[:0]
		return
	}
	if b < 0x20 || b == 0x7F {
		v.c0(b)
		return
	}

	mid := v.decoder.state != utf8Start
	switch v.decoder.Feed(b) {
	case UTF8Accept:
		v.print(v.decoder.Get())
	case UTF8Reject:
		v.print(UCS4Replacement)
		// A non-continuation byte that cut a sequence short wasn't consumed
		// by it; reprocess it. Any other rejected byte was consumed.
		if mid && b&0xC0 != 0x80 {
			v.stepGround(b)
		}
	case UTF8Continue:
	}
}

// print handles one decoded code point: translate through the active
// charset, then either append it as a combining mark or write a fresh cell.
func (v *VTE) print(c UCS4) {
	table := v.gl
	translated := translate(v.charsets[table], c)

	if RuneWidth(translated) == 0 {
		v.screen.AppendCombining(translated)
		return
	}

	sym := v.symtab.Make(translated)
	v.mw.dispatchInput(translated, func(UCS4) {
		v.screen.Write(sym, v.screen.PenAttributes())
	})
}

func (v *VTE) stepEscape(b byte) {
	switch {
	case b == 0x1B:
		return // stray ESC restarts the escape sequence
	case b < 0x20:
		v.c0(b)
		return
	case b >= 0x20 && b <= 0x2F:
		v.inter = append(v.inter, b)
		v.state = stEscapeInt
	case b == '[':
		v.beginCSI()
	case b == ']':
		v.beginOSC()
	case b == 'P':
		v.beginDCS()
	case b == 'X' || b == '^' || b == '_':
		// SOS/PM/APC: treated as harmlessly consumed string sequences,
		// ignored up to the closing ST the same way an ignored DCS is.
		v.state = stDCSIgnore
	default:
		v.escDispatch(b)
		v.toGround()
	}
}

func (v *VTE) stepEscapeInt(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		v.inter = append(v.inter, b)
	case b >= 0x30 && b <= 0x7E:
		v.escDispatch(b)
		v.toGround()
	default:
		v.toGround()
	}
}

// escDispatch handles a final byte in ESCAPE/ESCAPE_INT: SCS, DECSC/DECRC,
// RIS, IND/RI/NEL, DECALN.
func (v *VTE) escDispatch(final byte) {
	if len(v.inter) == 1 {
		switch v.inter[0] {
		case '(', ')', '*', '+':
			slot := CharsetIndex(v.inter[0] - '(')
			v.charsets[slot] = scsCharset(final)
			return
		case '#':
			if final == '8' {
				v.decaln()
			}
			return
		}
	}

	switch final {
	case '7': // DECSC
		v.screen.SaveCursor(v.gl, v.gr, v.charsets)
	case '8': // DECRC
		sv := v.screen.RestoreCursor()
		v.gl, v.gr = sv.GL, sv.GR
		v.charsets = sv.Charsets
	case 'c': // RIS
		v.hardReset()
	case 'D': // IND
		v.screen.MoveDown(1, true)
	case 'M': // RI
		v.screen.MoveUp(1, true)
	case 'E': // NEL
		v.screen.LineHome()
		v.screen.MoveDown(1, true)
	case '=': // DECKPAM
		v.appKeypad = true
	case '>': // DECKPNM
		v.appKeypad = false
	}
}

// scsCharset maps an SCS final byte to the CharsetID it designates.
func scsCharset(final byte) CharsetID {
	switch final {
	case '0':
		return CharsetDECSpecialGraphics
	case '<':
		return CharsetDECSupplemental
	case 'A':
		return CharsetUnicodeUpper
	default: // 'B' and anything unrecognized: US-ASCII / identity
		return CharsetUnicodeLower
	}
}

// decaln implements DECALN (ESC # 8): fill the screen with 'E'.
func (v *VTE) decaln() {
	e := v.symtab.Make('E')
	for y := 0; y < v.screen.Height(); y++ {
		v.screen.MoveTo(0, y)
		for x := 0; x < v.screen.Width(); x++ {
			v.screen.Write(e, DefaultAttributes())
		}
	}
	v.screen.MoveTo(0, 0)
}

func (v *VTE) beginCSI() {
	v.state = stCSIEntry
	v.nparams = 0
	v.collecting = false
	v.private = 0
	v.inter = v.inter[:0]
	for i := range v.params {
		v.params[i] = 0
		v.hasValue[i] = false
	}
}

func (v *VTE) stepCSI(b byte) {
	switch {
	case b >= '0' && b <= '9':
		v.csiDigit(b)
	case b == ';':
		v.csiNextParam()
	case b == '?' && v.nparams == 0 && !v.collecting:
		v.private = '?'
	case b >= 0x20 && b <= 0x2F:
		v.inter = append(v.inter, b)
		v.state = stCSIInt
	case b >= 0x40 && b <= 0x7E:
		if v.state != stCSIIgnore {
			v.csiFinalize()
			v.csiDispatch(b)
		}
		v.toGround()
	case b < 0x20:
		v.c0(b)
	default:
		v.state = stCSIIgnore
	}
}

func (v *VTE) csiDigit(b byte) {
	if v.nparams >= maxParams {
		return
	}
	if !v.collecting {
		v.collecting = true
	}
	v.hasValue[v.nparams] = true
	v.params[v.nparams] = v.params[v.nparams]*10 + int(b-'0')
}

func (v *VTE) csiNextParam() {
	if v.nparams < maxParams-1 {
		v.nparams++
	}
	v.collecting = false
}

func (v *VTE) csiFinalize() {
	if v.hasValue[v.nparams] || v.nparams > 0 {
		v.nparams++
	}
}

// arg returns the i-th parameter, or def if it was omitted or out of range.
func (v *VTE) arg(i, def int) int {
	if i < 0 || i >= v.nparams || !v.hasValue[i] {
		return def
	}
	return v.params[i]
}

func (v *VTE) stepDCSHead(b byte) {
	switch {
	case b >= '0' && b <= '9':
		v.csiDigit(b)
		v.state = stDCSParam
	case b == ';':
		v.csiNextParam()
		v.state = stDCSParam
	case b >= 0x20 && b <= 0x2F:
		v.inter = append(v.inter, b)
		v.state = stDCSInt
	case b >= 0x40 && b <= 0x7E:
		v.csiFinalize()
		v.state = stDCSPass
	case b < 0x20:
		// C0 inside a DCS header is ignored, not executed.
	default:
		v.state = stDCSIgnore
	}
}

func (v *VTE) beginDCS() {
	v.state = stDCSEntry
	v.nparams = 0
	v.collecting = false
	v.private = 0
	v.inter = v.inter[:0]
	v.dcsBuf = v.dcsBuf[:0]
	for i := range v.params {
		v.params[i] = 0
		v.hasValue[i] = false
	}
}

func (v *VTE) stepDCSPass(b byte) {
	if b == 0x1B {
		v.state = stSTIgnore // await the ST that closes this DCS
		return
	}
	v.dcsBuf = append(v.dcsBuf, b)
	if len(v.dcsBuf) > 1<<20 {
		v.state = stDCSIgnore
	}
}

func (v *VTE) stepDCSIgnore(b byte) {
	if b == 0x1B {
		v.state = stSTIgnore
	}
}

func (v *VTE) stepSTIgnore(b byte) {
	if b == '\\' {
		v.toGround()
	} else if b != 0x1B {
		v.toGround()
	}
}

func (v *VTE) beginOSC() {
	v.state = stOSCString
	v.oscBuf = v.oscBuf[:0]
}

func (v *VTE) stepOSC(b byte) {
	switch {
	case b == 0x07:
		v.oscDispatch()
		v.toGround()
	case b == 0x1B:
		v.state = stSTIgnore
		v.oscDispatch()
	case b < 0x20:
		// ignored within the string
	default:
		v.oscBuf = append(v.oscBuf, b)
		if len(v.oscBuf) > 1<<16 {
			v.state = stSTIgnore
		}
	}
}

// oscDispatch parses and executes an accumulated OSC string: "Ps;Pt".
func (v *VTE) oscDispatch() {
	s := string(v.oscBuf)
	semi := -1
	for i, c := range s {
		if c == ';' {
			semi = i
			break
		}
	}
	if semi < 0 {
		return
	}

	ps, err := strconv.Atoi(s[:semi])
	if err != nil {
		return
	}
	pt := s[semi+1:]

	switch ps {
	case 0, 1, 2:
		v.mw.dispatchSetTitle(pt, func(title string) { v.title.SetTitle(title) })
	case 4:
		v.oscSetPaletteEntry(pt)
	case 10:
		v.fgOverride = parseOSCColor(pt, v.fgOverride)
	case 11:
		v.bgOverride = parseOSCColor(pt, v.bgOverride)
	case 52:
		v.oscClipboard(pt)
	case 104:
		v.palette = defaultPalette
		v.fgOverride = DefaultForeground
		v.bgOverride = DefaultBackground
	default:
		v.log(LogDebug, "unhandled OSC %d", ps)
	}
}

func (v *VTE) oscSetPaletteEntry(pt string) {
	semi := -1
	for i, c := range pt {
		if c == ';' {
			semi = i
			break
		}
	}
	if semi < 0 {
		return
	}
	idx, err := strconv.Atoi(pt[:semi])
	if err != nil || idx < 0 || idx > 255 {
		return
	}
	v.palette[idx] = parseOSCColor(pt[semi+1:], v.palette[idx])
}

func (v *VTE) oscClipboard(pt string) {
	semi := -1
	for i, c := range pt {
		if c == ';' {
			semi = i
			break
		}
	}
	if semi < 0 || semi == 0 {
		return
	}
	selection := pt[0]
	payload := pt[semi+1:]
	if payload == "?" {
		v.reply(encodeOSC52(selection, []byte(v.clipboard.Read(selection))))
		return
	}
	data, err := decodeOSC52(payload)
	if err != nil {
		return
	}
	v.clipboard.Write(selection, data)
}

// parseOSCColor parses a "#RRGGBB" color spec, falling back to cur if it
// cannot be parsed. The X11 "rgb:RRRR/GGGG/BBBB" form real terminals also
// accept for OSC 4/10/11 isn't handled here.
func parseOSCColor(spec string, cur RGB) RGB {
	if len(spec) == 7 && spec[0] == '#' {
		r, err1 := strconv.ParseUint(spec[1:3], 16, 8)
		g, err2 := strconv.ParseUint(spec[3:5], 16, 8)
		b, err3 := strconv.ParseUint(spec[5:7], 16, 8)
		if err1 == nil && err2 == nil && err3 == nil {
			return RGB{uint8(r), uint8(g), uint8(b)}
		}
	}
	return cur
}

// hardReset implements RIS: clear the main screen, reset tab stops and
// modes, and empty the scrollback view without discarding stored history,
// per spec §4.5.
func (v *VTE) hardReset() {
	v.softReset()
	v.screen.EraseDisplay(EraseMode{Selector: EraseAll})
	v.screen.ResetAllTabstops()
	v.screen.SbReset()
	v.screen.MoveTo(0, 0)
}

// softReset implements DECSTR: restore modes and margins to defaults
// without touching the screen or scrollback contents.
func (v *VTE) softReset() {
	v.screen.ResetOptions(ModeInsert | ModeOrigin | ModeInverse | ModeFixedPos | ModeHideCursor)
	v.screen.SetOptions(ModeAutoWrap)
	if v.screen.IsAlternate() {
		v.screen.SetAlternate(false)
	}
	v.screen.SetScrollRegion(0, v.screen.Height()-1)
	v.screen.SetPenAttributes(DefaultAttributes())
	v.gl, v.gr = CharsetIndexG0, CharsetIndexG0
	v.charsets = [4]CharsetID{CharsetUnicodeLower, CharsetUnicodeLower, CharsetUnicodeLower, CharsetUnicodeLower}
	v.appCursorKeys = false
	v.appKeypad = false
}
