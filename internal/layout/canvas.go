package layout

import (
	"context"
	"errors"

	"github.com/Leastj/pdf-server/internal/text"
)

// ErrNoAssets is returned when a block needs an image but the environment
// has no fetcher configured
var ErrNoAssets = errors.New("no asset fetcher configured")

// Canvas is the drawing surface blocks render onto. Coordinates are in
// points from the top-left corner of the current page.
type Canvas interface {
	AddPage()
	PageNo() int
	// Text draws pre-wrapped lines, one per line height, starting at y
	Text(x, y, width float64, lines []string, st text.Style, align text.Align)
	FillRect(x, y, w, h, radius float64, c text.Color)
	StrokeRect(x, y, w, h float64, c text.Color)
	// Image fits data inside the w x h box, keeping its aspect ratio
	Image(data []byte, x, y, w, h float64) error
	QRCode(code string, x, y, size float64)
	Err() error
}

// Fetcher retrieves the bytes behind an asset reference (URL, data URL or
// local path)
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Env carries everything a block needs while drawing
type Env struct {
	Ctx     context.Context
	Canvas  Canvas
	Metrics text.Metrics
	Assets  Fetcher
	Logf    func(format string, args ...any)
}

// Warnf reports a recovered asset or layout problem
func (e *Env) Warnf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

func (e *Env) context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}

// Text wraps s at width and draws it at (x, y). It returns the height
// consumed, which always equals text.Height for the same arguments.
func (e *Env) Text(x, y, width float64, s string, st text.Style, align text.Align) float64 {
	lines := text.Lines(e.Metrics, s, width, st)
	if len(lines) == 0 {
		return 0
	}
	e.Canvas.Text(x, y, width, lines, st, align)
	return float64(len(lines)) * st.LineHeight()
}

// Image fetches ref and draws it fitted into the given box. Any failure is
// returned so that the caller can draw its own placeholder; the canvas is
// never left in an error state by a bad asset.
func (e *Env) Image(ref string, x, y, w, h float64) error {
	if ref == "" {
		return errors.New("empty image reference")
	}
	if e.Assets == nil {
		return ErrNoAssets
	}
	data, err := e.Assets.Fetch(e.context(), ref)
	if err != nil {
		return err
	}
	return e.Canvas.Image(data, x, y, w, h)
}
