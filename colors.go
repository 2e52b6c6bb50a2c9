package vtcore

// Palette is a 256-entry RGB color table: 16 named ANSI colors (0-15), a
// 6x6x6 color cube (16-231), and a 24-step grayscale ramp (232-255), the
// layout xterm and every VT220-lineage emulator has standardized on.
type Palette [256]RGB

// defaultPalette is generated once at init time: the 16 base colors are
// literal, the color cube and grayscale ramp are derived arithmetically.
var defaultPalette Palette
var solarizedPalette Palette

func init() {
	base := [16]RGB{
		{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
		{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
		{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
		{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
	}
	defaultPalette = buildPalette(base)

	solarizedBase := [16]RGB{
		{7, 54, 66}, {220, 50, 47}, {133, 153, 0}, {181, 137, 0},
		{38, 139, 210}, {211, 54, 130}, {42, 161, 152}, {238, 232, 213},
		{0, 43, 54}, {203, 75, 22}, {88, 110, 117}, {101, 123, 131},
		{131, 148, 150}, {108, 113, 196}, {147, 161, 161}, {253, 246, 227},
	}
	solarizedPalette = buildPalette(solarizedBase)

	namedPalettes["default"] = defaultPalette
	namedPalettes["solarized"] = solarizedPalette
}

func buildPalette(base [16]RGB) Palette {
	var p Palette
	copy(p[:16], base[:])

	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = RGB{steps[r], steps[g], steps[b]}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p[232+j] = RGB{gray, gray, gray}
	}

	return p
}

// DefaultForeground and DefaultBackground are the colors an erased cell or
// an attribute with a negative color code resolves to.
var (
	DefaultForeground = RGB{229, 229, 229}
	DefaultBackground = RGB{0, 0, 0}
	DefaultCursor     = RGB{229, 229, 229}
)

// namedPalettes maps the palette names VTE.SetPalette accepts to their
// table, the named-palette surface libtsm's tsm_vte_set_palette exposes and
// spec §6 generalizes to "palette name or explicit 256-entry RGB palette".
// init fills it once the tables themselves are built.
var namedPalettes = map[string]Palette{}

// ResolveFg returns the effective foreground color for attr against
// palette: the palette entry when FgCode >= 0, the explicit RGB value when
// negative and set, or DefaultForeground otherwise.
func ResolveFg(attr Attributes, palette *Palette) RGB {
	if attr.FgCode >= 0 {
		return palette[attr.FgCode]
	}
	if attr.HasFgRGB() {
		return attr.FgRGB
	}
	return DefaultForeground
}

// ResolveBg is the background analogue of ResolveFg.
func ResolveBg(attr Attributes, palette *Palette) RGB {
	if attr.BgCode >= 0 {
		return palette[attr.BgCode]
	}
	if attr.HasBgRGB() {
		return attr.BgRGB
	}
	return DefaultBackground
}
