package layout

import (
	"math"

	"github.com/Leastj/pdf-server/internal/text"
)

const (
	fieldLabelBand = 15
	fieldMinBox    = 20
	fieldPadX      = 8
	fieldPadY      = 5
	fieldGap       = 20
	fieldSpacing   = 15
)

var fieldLabelStyle = text.Style{Size: 8, Bold: true, Color: Blue}

// Field is a caption over a tinted value chip
type Field struct {
	Label string
	Value string
	// Width of the field; zero shares the remaining row width evenly
	Width float64
	// MinHeight of the value chip; zero means a single-line chip
	MinHeight float64
	Align     text.Align
	// PlainLabel sets the caption in the regular weight
	PlainLabel bool
}

// FieldRow is a row of side-by-side fields sharing one height
type FieldRow struct {
	Fields []Field
}

func (r FieldRow) widths(width float64) []float64 {
	out := make([]float64, len(r.Fields))
	if len(r.Fields) == 0 {
		return out
	}
	rest := width - fieldGap*float64(len(r.Fields)-1)
	flex := 0
	for _, f := range r.Fields {
		if f.Width > 0 {
			rest -= f.Width
		} else {
			flex++
		}
	}
	for i, f := range r.Fields {
		switch {
		case f.Width > 0:
			out[i] = f.Width
		case flex > 0:
			out[i] = math.Max(rest/float64(flex), 0)
		}
	}
	return out
}

func (r FieldRow) boxHeight(m text.Metrics, widths []float64) float64 {
	h := 0.0
	for i, f := range r.Fields {
		minH := f.MinHeight
		if minH <= 0 {
			minH = fieldMinBox
		}
		vh := text.Height(m, f.Value, widths[i]-2*fieldPadX, Body) + 2*fieldPadY
		h = math.Max(h, math.Max(minH, vh))
	}
	return h
}

func (r FieldRow) MeasureHeight(m text.Metrics, width float64) float64 {
	if len(r.Fields) == 0 {
		return 0
	}
	return fieldLabelBand + r.boxHeight(m, r.widths(width))
}

func (r FieldRow) SpaceAfter() float64 { return fieldSpacing }

func (r FieldRow) Draw(env *Env, x, y, width float64) error {
	widths := r.widths(width)
	boxH := r.boxHeight(env.Metrics, widths)
	fx := x
	for i, f := range r.Fields {
		w := widths[i]
		ls := fieldLabelStyle.WithBold(!f.PlainLabel)
		env.Text(fx, y, w, f.Label, ls, text.AlignLeft)

		env.Canvas.FillRect(fx, y+fieldLabelBand, w, boxH, 4, Gray)
		align := f.Align
		if align == "" {
			align = text.AlignLeft
		}
		env.Text(fx+fieldPadX, y+fieldLabelBand+fieldPadY, w-2*fieldPadX, f.Value, Body, align)
		fx += w + fieldGap
	}
	return nil
}
