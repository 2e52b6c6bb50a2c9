package vtcore

// Attributes describes how a cell is rendered: color plus boolean flags.
// Colors are expressed two ways, selected by sign: a non-negative
// FgCode/BgCode names a palette index (0-255), while a negative code means
// the Fg/Bg RGB fields hold an explicit truecolor value instead, or, when
// those fields are all zero, that the terminal's default color applies (so
// an explicit RGB{0, 0, 0} reads as the default).
type Attributes struct {
	FgCode int16 // >= 0: palette index (0-255). < 0: FgRGB holds the color, or default if zero.
	BgCode int16

	FgRGB RGB
	BgRGB RGB

	Bold      bool
	Underline bool
	Inverse   bool
	Protect   bool
	Blink     bool
}

// RGB is an 8-bit-per-channel truecolor value.
type RGB struct {
	R, G, B uint8
}

// DefaultAttributes returns the attribute set used for erased cells: no
// color override (palette index -1 falls back to the terminal's default
// foreground/background) and no flags set.
func DefaultAttributes() Attributes {
	return Attributes{FgCode: -1, BgCode: -1}
}

// WithFgPalette returns a copy of a with the foreground set to a palette
// index.
func (a Attributes) WithFgPalette(idx uint8) Attributes {
	a.FgCode = int16(idx)
	return a
}

// WithBgPalette returns a copy of a with the background set to a palette
// index.
func (a Attributes) WithBgPalette(idx uint8) Attributes {
	a.BgCode = int16(idx)
	return a
}

// WithFgRGB returns a copy of a with an explicit truecolor foreground.
func (a Attributes) WithFgRGB(c RGB) Attributes {
	a.FgCode = -1
	a.FgRGB = c
	return a
}

// WithBgRGB returns a copy of a with an explicit truecolor background.
func (a Attributes) WithBgRGB(c RGB) Attributes {
	a.BgCode = -1
	a.BgRGB = c
	return a
}

// HasFgRGB reports whether the foreground is an explicit truecolor value
// rather than a palette index. Note this only distinguishes "RGB selected":
// a palette-indexed foreground additionally needs FgCode >= 0 to read the
// index itself, since both truecolor and "use terminal default" share a
// negative FgCode.
func (a Attributes) HasFgRGB() bool { return a.FgCode < 0 && (a.FgRGB != RGB{}) }

// HasBgRGB is the background analogue of HasFgRGB.
func (a Attributes) HasBgRGB() bool { return a.BgCode < 0 && (a.BgRGB != RGB{}) }

// inverted returns a with foreground and background swapped, used by the
// screen's draw iteration when the inverse screen option or the cursor cell
// requires it.
func (a Attributes) inverted() Attributes {
	a.FgCode, a.BgCode = a.BgCode, a.FgCode
	a.FgRGB, a.BgRGB = a.BgRGB, a.FgRGB
	return a
}
