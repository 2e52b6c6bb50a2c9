package vtcore

// Emulator bundles a [Screen] and the [VTE] parser driving it behind a
// single functional-options constructor, the shape most host integrators
// reach for when they only need one screen fed by one parser.
type Emulator struct {
	screen *Screen
	vte    *VTE
}

// Option configures an Emulator at construction time. New accepts a
// [sizeOption] from [WithSize] alongside any [ScreenOption] or [VTEOption]
// value, so the same With... constructors that configure a standalone
// Screen or VTE also configure an Emulator.
type Option any

type sizeOption struct{ width, height int }

// WithSize sets the initial screen dimensions. Defaults to 80x24 if
// omitted.
func WithSize(width, height int) Option {
	return sizeOption{width: width, height: height}
}

// New constructs an Emulator: a Screen of the requested size plus a VTE
// parser already attached to it.
func New(opts ...Option) (*Emulator, error) {
	width, height := 80, 24
	var screenOpts []ScreenOption
	var vteOpts []VTEOption

	for _, opt := range opts {
		switch o := opt.(type) {
		case sizeOption:
			width, height = o.width, o.height
		case ScreenOption:
			screenOpts = append(screenOpts, o)
		case VTEOption:
			vteOpts = append(vteOpts, o)
		}
	}

	screen, err := NewScreen(width, height, screenOpts...)
	if err != nil {
		return nil, err
	}

	vte, err := NewVTE(screen, vteOpts...)
	if err != nil {
		return nil, err
	}

	return &Emulator{screen: screen, vte: vte}, nil
}

// Screen returns the emulator's screen.
func (e *Emulator) Screen() *Screen { return e.screen }

// VTE returns the emulator's parser, for callers that need direct access
// to palette or keyboard-mapping methods.
func (e *Emulator) VTE() *VTE { return e.vte }

// Input feeds child-process bytes to the parser.
func (e *Emulator) Input(data []byte) { e.vte.Input(data) }

// HandleKey maps a key event to bytes and sends them via the write
// callback.
func (e *Emulator) HandleKey(key KeySym, mods KeyMods, unicode rune) bool {
	return e.vte.HandleKey(key, mods, unicode)
}

// Resize changes the screen's dimensions.
func (e *Emulator) Resize(width, height int) error {
	return e.screen.Resize(width, height)
}
