package layout

import (
	"github.com/Leastj/pdf-server/internal/text"
)

// Footer is the fixed legal/contact band at the bottom of every page
type Footer struct {
	Lines []string
	Style text.Style
	Top   float64
	Left  float64
	Width float64
	// Height is the band height when no line wraps
	Height float64
}

// FooterStyle is the typography of the footer band
var FooterStyle = text.Style{Size: 7, LineGap: 2, Color: Blue}

// NewFooter returns a footer band at top spanning the content width
func NewFooter(lines []string, top, left, width float64) *Footer {
	return &Footer{
		Lines:  lines,
		Style:  FooterStyle,
		Top:    top,
		Left:   left,
		Width:  width,
		Height: float64(len(lines)) * FooterStyle.LineHeight(),
	}
}

func (f *Footer) wrap(m text.Metrics) []string {
	var lines []string
	for _, l := range f.Lines {
		wrapped := text.Lines(m, l, f.Width, f.Style)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		lines = append(lines, wrapped...)
	}
	return lines
}

// Measure is the drawn band height, wrapped lines included
func (f *Footer) Measure(m text.Metrics) float64 {
	return float64(len(f.wrap(m))) * f.Style.LineHeight()
}

// Draw renders the band on the current page. Lines are centred and
// wrapped at the band width; the band never triggers a page break.
func (f *Footer) Draw(env *Env) {
	lines := f.wrap(env.Metrics)
	if len(lines) == 0 {
		return
	}
	env.Canvas.Text(f.Left, f.Top, f.Width, lines, f.Style, text.AlignCenter)
}
