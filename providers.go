package vtcore

import (
	"encoding/base64"
	"io"

	"github.com/aymanbagabas/go-osc52/v2"
)

// WriteCallback receives bytes the emulator wants delivered back to the
// child process: cursor/device reports, and the bytes the keyboard mapper
// produces. It is called synchronously on the caller's goroutine and must
// not re-enter the VTE, per spec §5/§6.
type WriteCallback = io.Writer

// NoopWriter discards every reply, useful when a caller only cares about
// screen state and never wires up a child process.
type NoopWriter struct{}

func (NoopWriter) Write(p []byte) (int, error) { return len(p), nil }

var _ WriteCallback = NoopWriter{}

// Log severities, mirrored loosely on syslog levels since that's the
// vocabulary libtsm's tsm_log_t callback uses.
const (
	LogDebug = iota
	LogInfo
	LogWarning
	LogError
)

// Logger receives diagnostic messages from the VTE parser: unrecognized
// sequences, clamped parameters, and similar non-fatal anomalies. It plays
// the same optional-callback role the teacher gives BellProvider and
// TitleProvider — construct without one and nothing is logged.
type Logger func(severity int, format string, args ...any)

// noopLogger discards everything.
func noopLogger(int, string, ...any) {}

// BellProvider handles BEL (0x07) outside of an OSC string, where it rings
// the bell rather than terminating a pending sequence.
type BellProvider interface {
	Ring()
}

// NoopBell ignores bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

var _ BellProvider = NoopBell{}

// TitleProvider handles window title changes: SetTitle from OSC 0/1/2, and
// PushTitle/PopTitle from the XTWINOPS title stack (CSI 22 t / CSI 23 t).
type TitleProvider interface {
	SetTitle(title string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(string) {}
func (NoopTitle) PushTitle()      {}
func (NoopTitle) PopTitle()       {}

var _ TitleProvider = NoopTitle{}

// ClipboardProvider handles OSC 52 clipboard read/write. 'c' addresses the
// clipboard selection, 'p' the primary selection, matching xterm's
// selection-parameter vocabulary.
type ClipboardProvider interface {
	Read(selection byte) string
	Write(selection byte, data []byte)
}

// NoopClipboard ignores clipboard traffic.
type NoopClipboard struct{}

func (NoopClipboard) Read(byte) string   { return "" }
func (NoopClipboard) Write(byte, []byte) {}

var _ ClipboardProvider = NoopClipboard{}

// decodeOSC52 decodes the base64 payload an incoming OSC 52 sequence
// carries. go-osc52 only builds outbound sequences (there is no published
// decode side to this wire format in the pack), so the inbound half uses
// the standard base64 codec the format itself specifies.
func decodeOSC52(payload string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(payload)
}

// encodeOSC52 builds the OSC 52 escape sequence that reports clipboard
// contents back to the host, using go-osc52's Sequence builder rather than
// hand-assembling the escape/base64/ST framing.
func encodeOSC52(selection byte, data []byte) string {
	seq := osc52.New(string(data))
	switch selection {
	case 'p':
		seq = seq.Primary()
	default:
		seq = seq.Clipboard()
	}
	return seq.String()
}
