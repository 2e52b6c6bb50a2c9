package vtcore

import (
	"bytes"
	"testing"
)

func TestHandleKeyArrowNormalMode(t *testing.T) {
	var buf bytes.Buffer
	_, v := mustVTE(t, 10, 5, WithWriteCallback(&buf))
	v.HandleKey(KeyUp, 0, 0)
	if got := buf.String(); got != "\x1b[A" {
		t.Fatalf("normal-mode Up = %q, want %q", got, "\x1b[A")
	}
}

func TestHandleKeyArrowApplicationMode(t *testing.T) {
	var buf bytes.Buffer
	_, v := mustVTE(t, 10, 5, WithWriteCallback(&buf))
	v.Input([]byte("\x1b[?1h")) // DECCKM on
	v.HandleKey(KeyUp, 0, 0)
	if got := buf.String(); got != "\x1bOA" {
		t.Fatalf("application-mode Up = %q, want %q", got, "\x1bOA")
	}
}

func TestHandleKeyCtrlLetter(t *testing.T) {
	var buf bytes.Buffer
	_, v := mustVTE(t, 10, 5, WithWriteCallback(&buf))
	v.HandleKey(KeyNone, ModCtrl, 'c')
	if got := buf.String(); got != "\x03" {
		t.Fatalf("Ctrl+c = %q, want %q", got, "\x03")
	}
}

func TestHandleKeyAltPrefixesESC(t *testing.T) {
	var buf bytes.Buffer
	_, v := mustVTE(t, 10, 5, WithWriteCallback(&buf))
	v.HandleKey(KeyNone, ModAlt, 'x')
	if got := buf.String(); got != "\x1bx" {
		t.Fatalf("Alt+x = %q, want %q", got, "\x1bx")
	}
}

func TestHandleKeyEditingCluster(t *testing.T) {
	var buf bytes.Buffer
	_, v := mustVTE(t, 10, 5, WithWriteCallback(&buf))
	v.HandleKey(KeyDelete, 0, 0)
	if got := buf.String(); got != "\x1b[3~" {
		t.Fatalf("Delete = %q, want %q", got, "\x1b[3~")
	}
}

func TestHandleKeyFunctionKeys(t *testing.T) {
	var buf bytes.Buffer
	_, v := mustVTE(t, 10, 5, WithWriteCallback(&buf))
	v.HandleKey(KeyF1, 0, 0)
	if got := buf.String(); got != "\x1bOP" {
		t.Fatalf("F1 = %q, want %q", got, "\x1bOP")
	}
	buf.Reset()
	v.HandleKey(KeyF6, 0, 0)
	if got := buf.String(); got != "\x1b[17~" {
		t.Fatalf("F6 = %q, want %q", got, "\x1b[17~")
	}
}

func TestHandleKeyKeypadApplicationMode(t *testing.T) {
	var buf bytes.Buffer
	_, v := mustVTE(t, 10, 5, WithWriteCallback(&buf))
	v.Input([]byte("\x1b="))
	v.HandleKey(KeyKeypad5, 0, 0)
	if got := buf.String(); got != "\x1bOu" {
		t.Fatalf("application-mode keypad 5 = %q, want %q", got, "\x1bOu")
	}
	buf.Reset()
	v.Input([]byte("\x1b>")) // DECKPNM
	v.HandleKey(KeyKeypad5, 0, 0)
	if got := buf.String(); got != "5" {
		t.Fatalf("normal-mode keypad 5 = %q, want %q", got, "5")
	}
}

func TestHandleKeyUnicodeFallback(t *testing.T) {
	var buf bytes.Buffer
	_, v := mustVTE(t, 10, 5, WithWriteCallback(&buf))
	v.HandleKey(KeyNone, 0, '好')
	if got := buf.String(); got != "好" {
		t.Fatalf("unicode fallback = %q, want %q", got, "好")
	}
}
