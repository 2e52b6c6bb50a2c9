package vtcore

import "testing"

func TestResolveFgPaletteIndex(t *testing.T) {
	attr := DefaultAttributes().WithFgPalette(1)
	got := ResolveFg(attr, &defaultPalette)
	want := defaultPalette[1]
	if got != want {
		t.Fatalf("ResolveFg(palette 1) = %v, want %v", got, want)
	}
}

func TestResolveFgExplicitRGB(t *testing.T) {
	attr := DefaultAttributes().WithFgRGB(RGB{10, 20, 30})
	got := ResolveFg(attr, &defaultPalette)
	if got != (RGB{10, 20, 30}) {
		t.Fatalf("ResolveFg(explicit rgb) = %v, want {10 20 30}", got)
	}
}

func TestResolveFgDefaultFallback(t *testing.T) {
	attr := DefaultAttributes()
	if got := ResolveFg(attr, &defaultPalette); got != DefaultForeground {
		t.Fatalf("ResolveFg(default) = %v, want %v", got, DefaultForeground)
	}
}

func TestNamedPalettesRegistered(t *testing.T) {
	for _, name := range []string{"default", "solarized"} {
		if _, ok := namedPalettes[name]; !ok {
			t.Errorf("namedPalettes missing %q", name)
		}
	}
}

func TestPaletteCubeDistinctFromGray(t *testing.T) {
	if defaultPalette[16] == defaultPalette[232] {
		t.Errorf("color cube entry 16 collides with grayscale entry 232")
	}
}
