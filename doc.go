// Package vtcore provides a headless DEC VT100/VT220/xterm-compatible
// terminal emulator engine.
//
// vtcore ingests a byte stream produced by a host program (typically attached
// to a pseudo-terminal), interprets it as printable characters, control
// codes, and escape sequences, and maintains an in-memory character grid (the
// [Screen]) plus a capped scrollback. A host integrator drives the engine
// with [VTE.Input] and renders it by iterating cells via [Screen.Draw].
//
// # Architecture
//
// Three subsystems do the core work:
//
//   - [SymbolTable]: interns a base code point plus combining marks into a
//     compact [Symbol] handle used throughout the grid.
//   - [Screen]: the 2D cell grid, cursor, scrollback, margins, tab stops,
//     selection, and draw iteration.
//   - [VTE]: the parser that turns a byte stream into screen operations and
//     reply bytes.
//
// [Emulator] bundles all three behind one constructor for the common case of
// a single screen fed by a single parser:
//
//	term, err := vtcore.New(vtcore.WithSize(80, 24), vtcore.WithWriteCallback(ptyWriter))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	term.Input([]byte("\x1b[31mHello\x1b[0m"))
//	term.Screen().Draw(nil, nil, func(ctx any, cell vtcore.DrawCell) error {
//	    fmt.Printf("%c", cell.Runes[0])
//	    return nil
//	}, nil)
//
// # Scope
//
// vtcore does not implement Sixel/ReGIS graphics, bidirectional text,
// shaping, OSC 52 clipboard beyond the wire protocol, mouse tracking beyond
// emitting what the parser produces, or any rendering. Those are the job of
// the host integrator.
package vtcore
