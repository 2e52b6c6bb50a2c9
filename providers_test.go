package vtcore

import "testing"

func TestNoopWriterDiscards(t *testing.T) {
	var w NoopWriter
	n, err := w.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write() = (%d, %v), want (5, nil)", n, err)
	}
}

func TestNoopClipboardRoundTrip(t *testing.T) {
	var c NoopClipboard
	c.Write('c', []byte("anything"))
	if got := c.Read('c'); got != "" {
		t.Fatalf("Read() after Write() = %q, want empty", got)
	}
}

func TestOSC52RoundTrip(t *testing.T) {
	data := []byte("hello clipboard")
	seq := encodeOSC52('c', data)

	// seq is "\x1b]52;c;<base64>\x07"; extract the payload between the
	// second and third ';' (or up to the terminator).
	start := -1
	semis := 0
	for i, b := range seq {
		if b == ';' {
			semis++
			if semis == 2 {
				start = i + 1
				break
			}
		}
	}
	if start < 0 {
		t.Fatalf("encodeOSC52 output missing expected framing: %q", seq)
	}
	end := len(seq)
	for i := start; i < len(seq); i++ {
		if seq[i] == '\a' || seq[i] == 0x1b {
			end = i
			break
		}
	}

	decoded, err := decodeOSC52(seq[start:end])
	if err != nil {
		t.Fatalf("decodeOSC52 error: %v", err)
	}
	if string(decoded) != string(data) {
		t.Fatalf("round trip = %q, want %q", decoded, data)
	}
}
