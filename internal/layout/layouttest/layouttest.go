// Package layouttest provides in-memory doubles for the drawing surface,
// text metrics and asset fetcher used by layout and pagination tests.
package layouttest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Leastj/pdf-server/internal/text"
)

// Metrics gives every rune an advance of half the font size
type Metrics struct{}

func (Metrics) StringWidth(s string, st text.Style) float64 {
	return float64(utf8.RuneCountInString(s)) * st.Size * 0.5
}

// Op kinds recorded by Recorder
const (
	OpPage   = "page"
	OpText   = "text"
	OpFill   = "fill"
	OpStroke = "stroke"
	OpImage  = "image"
	OpQR     = "qr"
)

// Op is one recorded drawing call
type Op struct {
	Kind  string
	Page  int
	X, Y  float64
	W, H  float64
	Lines []string
	Style text.Style
	Align text.Align
	Color text.Color
}

// Text joins the op's lines with newlines
func (o Op) Text() string {
	return strings.Join(o.Lines, "\n")
}

// Recorder is a Canvas that records every call instead of drawing
type Recorder struct {
	Ops  []Op
	page int
	err  error
}

// NewRecorder returns an empty recorder with no page started
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) AddPage() {
	r.page++
	r.Ops = append(r.Ops, Op{Kind: OpPage, Page: r.page})
}

func (r *Recorder) PageNo() int { return r.page }

func (r *Recorder) Text(x, y, width float64, lines []string, st text.Style, align text.Align) {
	r.Ops = append(r.Ops, Op{
		Kind: OpText, Page: r.page, X: x, Y: y, W: width,
		H:     float64(len(lines)) * st.LineHeight(),
		Lines: append([]string(nil), lines...), Style: st, Align: align, Color: st.Color,
	})
}

func (r *Recorder) FillRect(x, y, w, h, _ float64, c text.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Page: r.page, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h float64, c text.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Page: r.page, X: x, Y: y, W: w, H: h, Color: c})
}

// Image records the call; empty data is rejected like an undecodable image
func (r *Recorder) Image(data []byte, x, y, w, h float64) error {
	if len(data) == 0 {
		return errors.New("empty image")
	}
	r.Ops = append(r.Ops, Op{Kind: OpImage, Page: r.page, X: x, Y: y, W: w, H: h})
	return nil
}

func (r *Recorder) QRCode(code string, x, y, size float64) {
	r.Ops = append(r.Ops, Op{Kind: OpQR, Page: r.page, X: x, Y: y, W: size, H: size, Lines: []string{code}})
}

// Fail puts the recorder in an error state, as a broken backend would
func (r *Recorder) Fail(err error) { r.err = err }

func (r *Recorder) Err() error { return r.err }

// Filter returns the ops of the given kind
func (r *Recorder) Filter(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// FindText returns the first text op whose lines contain s
func (r *Recorder) FindText(s string) (Op, bool) {
	for _, op := range r.Ops {
		if op.Kind == OpText && strings.Contains(op.Text(), s) {
			return op, true
		}
	}
	return Op{}, false
}

// Fetcher serves assets from memory. Unknown references fail like a 404.
type Fetcher struct {
	Assets map[string][]byte
	Calls  []string
}

func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	f.Calls = append(f.Calls, ref)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := f.Assets[ref]
	if !ok {
		return nil, fmt.Errorf("asset %q not found", ref)
	}
	return data, nil
}
