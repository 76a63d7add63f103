package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor 颜色字符串无法解析
var ErrInvalidColor = errors.New("invalid color")

// ParseColor 解析颜色字符串
//
// 支持：
//   - 十六进制 "#rgb" "#rgba" "#rrggbb" "#rrggbbaa"
//   - SVG/CSS 颜色名，如 "tomato"、"steelblue"
//   - "transparent"
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return nil, fmt.Errorf("%w: %q has %d hex digits", ErrInvalidColor, s, len(hex))
		}
		for _, c := range hex {
			if !isHexDigit(c) {
				return nil, fmt.Errorf("%w: %q contains non-hex digit %q", ErrInvalidColor, s, c)
			}
		}
		return gg.Hex(hex).Color(), nil
	}

	name := strings.ToLower(s)
	if name == "transparent" {
		return color.Transparent, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: unknown color name %q", ErrInvalidColor, s)
}

// FormatColor 返回 "#rrggbb"，半透明颜色返回 "#rrggbbaa"
func FormatColor(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func isHexDigit(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// ColorsConfig 舞台配色（字符串形式）
type ColorsConfig struct {
	Sun           string `yaml:"sun"`
	Planet        string `yaml:"planet"`
	Ring          string `yaml:"ring"`
	Carrier       string `yaml:"carrier"`
	CarrierStroke string `yaml:"carrierStroke"`
	Background    string `yaml:"background"`
}

// DefaultColors 返回默认配色
func DefaultColors() ColorsConfig {
	return ColorsConfig{
		Sun:           "#44dddd",
		Planet:        "#ff00ff88",
		Ring:          "#88ff88",
		Carrier:       "#ff8888",
		CarrierStroke: "#888888",
		Background:    "white",
	}
}

// Colors 解析后的配色
type Colors struct {
	Sun           color.Color
	Planet        color.Color
	Ring          color.Color
	Carrier       color.Color
	CarrierStroke color.Color
	Background    color.Color
}

// Resolve 解析全部颜色，错误信息包含字段名
func (c ColorsConfig) Resolve() (Colors, error) {
	var out Colors
	fields := []struct {
		name string
		in   string
		out  *color.Color
	}{
		{"sun", c.Sun, &out.Sun},
		{"planet", c.Planet, &out.Planet},
		{"ring", c.Ring, &out.Ring},
		{"carrier", c.Carrier, &out.Carrier},
		{"carrierStroke", c.CarrierStroke, &out.CarrierStroke},
		{"background", c.Background, &out.Background},
	}
	for _, f := range fields {
		clr, err := ParseColor(f.in)
		if err != nil {
			return Colors{}, fmt.Errorf("colors.%s: %w", f.name, err)
		}
		*f.out = clr
	}
	return out, nil
}

func (c *ColorsConfig) applyDefaults() {
	def := DefaultColors()
	if c.Sun == "" {
		c.Sun = def.Sun
	}
	if c.Planet == "" {
		c.Planet = def.Planet
	}
	if c.Ring == "" {
		c.Ring = def.Ring
	}
	if c.Carrier == "" {
		c.Carrier = def.Carrier
	}
	if c.CarrierStroke == "" {
		c.CarrierStroke = def.CarrierStroke
	}
	if c.Background == "" {
		c.Background = def.Background
	}
}
