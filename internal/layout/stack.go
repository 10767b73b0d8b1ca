package layout

import (
	"github.com/Leastj/pdf-server/internal/text"
)

// Stack lays blocks out top to bottom. Each item's SpaceAfter is the gap
// before the next visible item; zero-height items are skipped entirely.
// A Stack is itself a Block, so it can be flowed or placed in a fixed box.
type Stack struct {
	Items []Block
	// After is the space left below the stack when it is flowed
	After float64
}

// MeasureHeight sums the visible items and the gaps between them
func (s Stack) MeasureHeight(m text.Metrics, width float64) float64 {
	total := 0.0
	gap := 0.0
	for _, it := range s.Items {
		h := it.MeasureHeight(m, width)
		if h <= 0 {
			continue
		}
		total += gap + h
		gap = it.SpaceAfter()
	}
	return total
}

func (s Stack) SpaceAfter() float64 { return s.After }

func (s Stack) Draw(env *Env, x, y, width float64) error {
	gap := 0.0
	for _, it := range s.Items {
		h := it.MeasureHeight(env.Metrics, width)
		if h <= 0 {
			continue
		}
		y += gap
		if err := it.Draw(env, x, y, width); err != nil {
			return err
		}
		y += h
		gap = it.SpaceAfter()
	}
	return nil
}

// DrawCentered draws the stack vertically centred in a box of height boxH
// whose top edge is at top. It returns the y the first item starts at.
func (s Stack) DrawCentered(env *Env, x, top, width, boxH float64) (float64, error) {
	y := top + max(0, (boxH-s.MeasureHeight(env.Metrics, width))/2)
	return y, s.Draw(env, x, y, width)
}

// TextRun is a wrapped run of text in a single style
type TextRun struct {
	Text  string
	Style text.Style
	Align text.Align
	Inset float64 // horizontal inset on both sides
	Gap   float64 // space after
}

func (t TextRun) MeasureHeight(m text.Metrics, width float64) float64 {
	return text.Height(m, t.Text, width-2*t.Inset, t.Style)
}

func (t TextRun) SpaceAfter() float64 { return t.Gap }

func (t TextRun) Draw(env *Env, x, y, width float64) error {
	align := t.Align
	if align == "" {
		align = text.AlignLeft
	}
	env.Text(x+t.Inset, y, width-2*t.Inset, t.Text, t.Style, align)
	return nil
}

// Pill is a fixed-size rounded label centred horizontally
type Pill struct {
	Text   string
	Width  float64
	Height float64
	Fill   text.Color
	Style  text.Style
	Gap    float64
}

func (p Pill) MeasureHeight(text.Metrics, float64) float64 { return p.Height }

func (p Pill) SpaceAfter() float64 { return p.Gap }

func (p Pill) Draw(env *Env, x, y, width float64) error {
	px := x + (width-p.Width)/2
	env.Canvas.FillRect(px, y, p.Width, p.Height, 4, p.Fill)
	ty := y + (p.Height-p.Style.LineHeight())/2
	env.Text(px, ty, p.Width, p.Text, p.Style, text.AlignCenter)
	return nil
}
