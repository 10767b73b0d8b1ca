package text

import (
	"fmt"
	"strconv"
	"strings"
)

// lineFactor approximates the Helvetica line box (ascender - descender) as
// a multiple of the font size.
const lineFactor = 1.15

// Align is a horizontal text alignment
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Color is an RGB color with 0-255 components
type Color struct {
	R, G, B int
}

// Style describes how a run of text is set
type Style struct {
	Family  string
	Bold    bool
	Italic  bool
	Size    float64
	LineGap float64
	Color   Color
}

// FontStyle returns the fpdf style string ("", "B", "I", "BI")
func (s Style) FontStyle() string {
	st := ""
	if s.Bold {
		st += "B"
	}
	if s.Italic {
		st += "I"
	}
	return st
}

// FontFamily returns the core font family, defaulting to Helvetica
func (s Style) FontFamily() string {
	if s.Family == "" {
		return "Helvetica"
	}
	return s.Family
}

// LineHeight is the vertical advance of one wrapped line
func (s Style) LineHeight() float64 {
	return s.Size*lineFactor + s.LineGap
}

// WithBold returns a copy of the style with the bold flag set
func (s Style) WithBold(bold bool) Style {
	s.Bold = bold
	return s
}

// WithColor returns a copy of the style using color c
func (s Style) WithColor(c Color) Style {
	s.Color = c
	return s
}

// WithSize returns a copy of the style at the given size
func (s Style) WithSize(size float64) Style {
	s.Size = size
	return s
}

// MustHex parses a #RRGGBB or #RGB color and panics on malformed input.
// It is meant for package-level palette constants.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses #RRGGBB or #RGB into a Color
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	var rgb [3]int
	for i := range rgb {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		rgb[i] = int(v)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}
