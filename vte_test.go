package vtcore

import (
	"bytes"
	"testing"
)

func mustVTE(t *testing.T, w, h int, opts ...VTEOption) (*Screen, *VTE) {
	t.Helper()
	s, err := NewScreen(w, h)
	if err != nil {
		t.Fatalf("NewScreen: %v", err)
	}
	v, err := NewVTE(s, opts...)
	if err != nil {
		t.Fatalf("NewVTE: %v", err)
	}
	return s, v
}

func TestVTEPlainText(t *testing.T) {
	s, v := mustVTE(t, 10, 2)
	v.Input([]byte("hi"))
	if got := s.LineText(0); got != "hi" {
		t.Fatalf("LineText(0) = %q, want %q", got, "hi")
	}
}

func TestVTECursorAddressCSI(t *testing.T) {
	s, v := mustVTE(t, 80, 24)
	v.Input([]byte("\x1b[3;2H")) // 1-based row 3, col 2 -> 0-based (1,2)
	c := s.Cursor()
	if c.X != 1 || c.Y != 2 {
		t.Fatalf("cursor after CUP = (%d,%d), want (1,2)", c.X, c.Y)
	}
}

func TestVTESGRColors(t *testing.T) {
	s, v := mustVTE(t, 10, 1)
	v.Input([]byte("\x1b[31;44mX"))
	attr := s.row(0).Cells[0].Attr
	if attr.FgCode != 1 {
		t.Fatalf("FgCode = %d, want 1", attr.FgCode)
	}
	if attr.BgCode != 4 {
		t.Fatalf("BgCode = %d, want 4", attr.BgCode)
	}
}

func TestVTESGRTruecolor(t *testing.T) {
	s, v := mustVTE(t, 10, 1)
	v.Input([]byte("\x1b[38;2;10;20;30mX"))
	attr := s.row(0).Cells[0].Attr
	if attr.FgCode >= 0 {
		t.Fatalf("FgCode = %d, want negative (truecolor)", attr.FgCode)
	}
	want := RGB{10, 20, 30}
	if attr.FgRGB != want {
		t.Fatalf("FgRGB = %+v, want %+v", attr.FgRGB, want)
	}
}

func TestVTECombiningMarkViaParser(t *testing.T) {
	s, v := mustVTE(t, 10, 1)
	// 'e' (U+0065) followed by combining acute accent (U+0301), as raw
	// UTF-8 bytes so the parser itself decodes both code points.
	v.Input([]byte("é"))
	runes := s.symtab.Get(s.row(0).Cells[0].Symbol)
	if len(runes) != 2 || runes[0] != 'e' || runes[1] != 0x301 {
		t.Fatalf("combined cell runes = %v, want ['e', U+0301]", runes)
	}
	if s.Cursor().X != 1 {
		t.Fatalf("cursor.X = %d, want 1 (combining mark doesn't advance)", s.Cursor().X)
	}
}

func TestVTEDeviceStatusReport(t *testing.T) {
	var buf bytes.Buffer
	s, v := mustVTE(t, 10, 5, WithWriteCallback(&buf))
	s.MoveTo(3, 2)
	v.Input([]byte("\x1b[6n"))
	want := "\x1b[3;4R"
	if got := buf.String(); got != want {
		t.Fatalf("DSR reply = %q, want %q", got, want)
	}
}

func TestVTEHardResetClearsScreen(t *testing.T) {
	s, v := mustVTE(t, 10, 2)
	v.Input([]byte("hello"))
	v.Input([]byte("\x1bc"))
	if got := s.LineText(0); got != "" {
		t.Fatalf("LineText(0) after RIS = %q, want empty", got)
	}
	c := s.Cursor()
	if c.X != 0 || c.Y != 0 {
		t.Fatalf("cursor after RIS = (%d,%d), want (0,0)", c.X, c.Y)
	}
}

func TestVTEDimensionsNeverChangeFromInput(t *testing.T) {
	s, v := mustVTE(t, 20, 6)
	v.Input([]byte("random \x1b[2J\x1b[31mtext\x1b[0m\x1b[10;10H\x07\x1b]0;title\x07more"))
	if s.Width() != 20 || s.Height() != 6 {
		t.Fatalf("dimensions changed: %dx%d", s.Width(), s.Height())
	}
}

func TestVTECursorStaysInBoundsAcrossGarbage(t *testing.T) {
	s, v := mustVTE(t, 10, 5)
	v.Input([]byte("\x1b[999;999H"))
	c := s.Cursor()
	if c.X < 0 || c.X >= s.Width() || c.Y < 0 || c.Y >= s.Height() {
		t.Fatalf("cursor out of bounds: (%d,%d)", c.X, c.Y)
	}
}

func TestVTEUnterminatedEscapeDoesNotPanic(t *testing.T) {
	_, v := mustVTE(t, 10, 5)
	v.Input([]byte("\x1b[31;"))
	v.Input([]byte("\x1b]0;unterminated title"))
	v.Input([]byte("\x1bP unterminated dcs"))
}

func TestVTEOSCTitle(t *testing.T) {
	var got string
	title := titleRecorder{set: func(s string) { got = s }}
	_, v := mustVTE(t, 10, 5, WithTitleProvider(title))
	v.Input([]byte("\x1b]0;my title\x07"))
	if got != "my title" {
		t.Fatalf("title = %q, want %q", got, "my title")
	}
}

type titleRecorder struct {
	set  func(string)
	push func()
	pop  func()
}

func (t titleRecorder) SetTitle(s string) { t.set(s) }
func (t titleRecorder) PushTitle() {
	if t.push != nil {
		t.push()
	}
}
func (t titleRecorder) PopTitle() {
	if t.pop != nil {
		t.pop()
	}
}

func TestVTEDECSCAProtectsAgainstSelectiveErase(t *testing.T) {
	s, v := mustVTE(t, 3, 1)
	v.Input([]byte("\x1b[1\"q")) // DECSCA: mark subsequent writes protected
	v.Input([]byte("A"))
	v.Input([]byte("\x1b[0\"q")) // clear protection for the rest
	v.Input([]byte("BC"))

	s.MoveTo(0, 0)
	v.Input([]byte("\x1b[?2K")) // DECSEL: selective erase whole line

	blank := s.symtab.Make(' ')
	if got := s.row(0).Cells[0].Symbol; got == blank {
		t.Fatalf("protected cell 'A' was erased by a selective erase")
	}
	if got := s.row(0).Cells[1].Symbol; got != blank {
		t.Fatalf("unprotected cell 'B' survived a selective erase")
	}
}

func TestVTEXTWINOPSTitleStack(t *testing.T) {
	var pushed, popped bool
	title := titleRecorder{
		set:  func(string) {},
		push: func() { pushed = true },
		pop:  func() { popped = true },
	}
	_, v := mustVTE(t, 10, 5, WithTitleProvider(title))
	v.Input([]byte("\x1b[22t"))
	v.Input([]byte("\x1b[23t"))
	if !pushed || !popped {
		t.Fatalf("pushed=%v popped=%v, want both true", pushed, popped)
	}
}

func TestVTEModeDECAWM(t *testing.T) {
	s, v := mustVTE(t, 4, 2)
	v.Input([]byte("\x1b[?7l")) // disable autowrap
	v.Input([]byte("abcdef"))
	if got := s.LineText(0); got != "abcd" {
		t.Fatalf("row0 with autowrap off = %q, want %q", got, "abcd")
	}
	if got := s.LineText(1); got != "" {
		t.Fatalf("row1 with autowrap off = %q, want empty", got)
	}
}
