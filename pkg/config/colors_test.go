package config

import (
	"errors"
	"image/color"
	"testing"
)

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func TestParseColorHex(t *testing.T) {
	tests := map[string]color.NRGBA{
		"#44dddd":   {R: 0x44, G: 0xdd, B: 0xdd, A: 0xff},
		"#ff00ff88": {R: 0xff, G: 0x00, B: 0xff, A: 0x88},
		"#0f0":      {R: 0x00, G: 0xff, B: 0x00, A: 0xff},
		"#F008":     {R: 0xff, G: 0x00, B: 0x00, A: 0x88},
	}
	for in, want := range tests {
		got, err := ParseColor(in)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", in, err)
			continue
		}
		if nrgba(got) != want {
			t.Errorf("ParseColor(%q) = %v, expected %v", in, nrgba(got), want)
		}
	}
}

func TestParseColorNames(t *testing.T) {
	got, err := ParseColor(" SteelBlue ")
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if nrgba(got) != (color.NRGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}) {
		t.Errorf("Unexpected steelblue: %v", nrgba(got))
	}

	if c, err := ParseColor("transparent"); err != nil || nrgba(c).A != 0 {
		t.Errorf("transparent should parse to zero alpha, got %v, %v", c, err)
	}
}

func TestParseColorRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#gggggg", "nocolor"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) should fail with ErrInvalidColor, got %v", in, err)
		}
	}
}

func TestDefaultColorsResolve(t *testing.T) {
	colors, err := DefaultColors().Resolve()
	if err != nil {
		t.Fatalf("Default colors should resolve: %v", err)
	}
	if nrgba(colors.Planet).A != 0x88 {
		t.Errorf("Planet default should be translucent, got %v", nrgba(colors.Planet))
	}
	if nrgba(colors.Background) != (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("Background default should be white, got %v", nrgba(colors.Background))
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, in := range []string{"#44dddd", "#ff00ff88", "#000000"} {
		c, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q) failed: %v", in, err)
		}
		if got := FormatColor(c); got != in {
			t.Errorf("FormatColor(ParseColor(%q)) = %q", in, got)
		}
	}
	if FormatColor(nil) != "" {
		t.Error("nil color should format as empty string")
	}
}
