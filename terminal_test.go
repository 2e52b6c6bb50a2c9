package vtcore

import (
	"bytes"
	"testing"
)

func TestNewDefaultSize(t *testing.T) {
	term, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if term.Screen().Width() != 80 || term.Screen().Height() != 24 {
		t.Fatalf("default size = %dx%d, want 80x24", term.Screen().Width(), term.Screen().Height())
	}
}

func TestNewWithSizeAndWriteCallback(t *testing.T) {
	var buf bytes.Buffer
	term, err := New(WithSize(20, 6), WithWriteCallback(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if term.Screen().Width() != 20 || term.Screen().Height() != 6 {
		t.Fatalf("size = %dx%d, want 20x6", term.Screen().Width(), term.Screen().Height())
	}

	term.Input([]byte("\x1b[6n"))
	if buf.Len() == 0 {
		t.Fatalf("expected a DSR reply through the wired write callback")
	}
}

func TestEmulatorInputAndDraw(t *testing.T) {
	term, err := New(WithSize(10, 2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	term.Input([]byte("\x1b[32mhi\x1b[0m"))

	var collected []rune
	err = term.Screen().Draw(nil, nil, func(ctx any, cell DrawCell) error {
		if len(cell.Runes) > 0 {
			collected = append(collected, cell.Runes[0])
		}
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(collected) < 2 || collected[0] != 'h' || collected[1] != 'i' {
		t.Fatalf("drawn runes = %q, want to start with \"hi\"", string(collected))
	}
}

func TestEmulatorResize(t *testing.T) {
	term, err := New(WithSize(10, 2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := term.Resize(20, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if term.Screen().Width() != 20 || term.Screen().Height() != 4 {
		t.Fatalf("size after resize = %dx%d, want 20x4", term.Screen().Width(), term.Screen().Height())
	}
}

func TestEmulatorHandleKey(t *testing.T) {
	var buf bytes.Buffer
	term, err := New(WithWriteCallback(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !term.HandleKey(KeyUp, 0, 0) {
		t.Fatalf("HandleKey(KeyUp) = false, want true")
	}
	if got := buf.String(); got != "\x1b[A" {
		t.Fatalf("HandleKey(KeyUp) bytes = %q, want %q", got, "\x1b[A")
	}
}
