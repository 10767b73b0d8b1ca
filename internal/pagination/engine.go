package pagination

import (
	"fmt"

	"github.com/Leastj/pdf-server/internal/layout"
)

// Section is a title followed by body blocks
type Section struct {
	Title  layout.Block
	Blocks []layout.Block
	// NewPage starts the section on a fresh page whatever space is left
	NewPage bool
	// Gap is the space left above the title when the section does not
	// open a page
	Gap float64
	// KeepWithNext moves the title to the next page together with the
	// first body block when they do not fit side by side
	KeepWithNext bool
}

// Engine flows blocks down the page, breaking pages and drawing the footer
// band. One Engine serves exactly one render.
type Engine struct {
	geo    Geometry
	env    *layout.Env
	footer *layout.Footer

	cursor     Cursor
	fresh      bool // nothing flowed on the current page yet
	footerPage int  // last page whose footer is drawn
	overflows  []*OverflowError
}

// NewEngine creates a pagination engine drawing through env
func NewEngine(geo Geometry, env *layout.Env, footer *layout.Footer) (*Engine, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	if env == nil || env.Canvas == nil || env.Metrics == nil {
		return nil, fmt.Errorf("pagination: environment needs a canvas and metrics")
	}
	if footer != nil {
		if h := footer.Measure(env.Metrics); footer.Top+h > geo.PageHeight {
			env.Warnf("pagination: footer band of %.1f points runs %.1f past the page bottom",
				h, footer.Top+h-geo.PageHeight)
		}
	}
	return &Engine{geo: geo, env: env, footer: footer}, nil
}

// Geometry returns the frame the engine flows into
func (e *Engine) Geometry() Geometry { return e.geo }

// Env returns the drawing environment, for content laid out at fixed
// coordinates
func (e *Engine) Env() *layout.Env { return e.env }

// Cursor returns the current flow position
func (e *Engine) Cursor() Cursor { return e.cursor }

// Overflows lists blocks that did not fit on a page of their own
func (e *Engine) Overflows() []*OverflowError { return e.overflows }

// DrawFooter draws the footer on the current page once. Further calls on
// the same page do nothing.
func (e *Engine) DrawFooter() {
	if e.footer == nil || e.cursor.Page == 0 || e.footerPage == e.cursor.Page {
		return
	}
	e.footer.Draw(e.env)
	e.footerPage = e.cursor.Page
}

// NewPage closes the current page with its footer and opens the next one
// with the cursor at ResumeTop
func (e *Engine) NewPage() error {
	e.DrawFooter()
	e.env.Canvas.AddPage()
	e.cursor = Cursor{Y: e.geo.ResumeTop, Page: e.env.Canvas.PageNo()}
	e.fresh = true
	return e.check("start page")
}

// StartFixedPage opens a page that the caller lays out at fixed
// coordinates (the cover). Flowed content may not follow on it.
func (e *Engine) StartFixedPage() error {
	if err := e.NewPage(); err != nil {
		return err
	}
	e.fresh = false
	return nil
}

// EnsureSpace returns the y at which a block of height h starts. When the
// block would run past SafeBottom the current page is closed and the
// block starts at ResumeTop of the next one. A block taller than a page
// is placed at the top of a page and recorded as an overflow.
func (e *Engine) EnsureSpace(h float64) (float64, error) {
	if e.cursor.Page == 0 {
		if err := e.NewPage(); err != nil {
			return 0, err
		}
	}
	if h > e.geo.Capacity() {
		if !e.fresh {
			if err := e.NewPage(); err != nil {
				return 0, err
			}
		}
		of := &OverflowError{Page: e.cursor.Page, Height: h, Available: e.geo.Capacity()}
		e.overflows = append(e.overflows, of)
		e.env.Warnf("pagination: %v", of)
		return e.cursor.Y, nil
	}
	if e.cursor.Y+h > e.geo.SafeBottom {
		if err := e.NewPage(); err != nil {
			return 0, err
		}
	}
	return e.cursor.Y, nil
}

// Place measures b at the content width, makes room for it and draws it.
// The cursor advances by the measured height plus the block's spacing.
func (e *Engine) Place(b layout.Block) error {
	h := b.MeasureHeight(e.env.Metrics, e.geo.ContentWidth)
	y, err := e.EnsureSpace(h)
	if err != nil {
		return err
	}
	if err := b.Draw(e.env, e.geo.Left, y, e.geo.ContentWidth); err != nil {
		return fmt.Errorf("failed to draw block on page %d: %w", e.cursor.Page, err)
	}
	if err := e.check("draw block"); err != nil {
		return err
	}
	e.cursor.Y = y + h + b.SpaceAfter()
	e.fresh = false
	return nil
}

// Advance moves the cursor down by dy without drawing
func (e *Engine) Advance(dy float64) {
	if dy > 0 {
		e.cursor.Y += dy
	}
}

// Run flows the sections in order
func (e *Engine) Run(sections []Section) error {
	for i, s := range sections {
		if err := e.runSection(s); err != nil {
			return fmt.Errorf("failed to lay out section %d: %w", i+1, err)
		}
	}
	return nil
}

func (e *Engine) runSection(s Section) error {
	if s.NewPage {
		if err := e.NewPage(); err != nil {
			return err
		}
	} else if !e.fresh {
		e.Advance(s.Gap)
	}
	if s.Title != nil {
		if s.KeepWithNext && len(s.Blocks) > 0 {
			w := e.geo.ContentWidth
			need := s.Title.MeasureHeight(e.env.Metrics, w) + s.Title.SpaceAfter() +
				s.Blocks[0].MeasureHeight(e.env.Metrics, w)
			if need <= e.geo.Capacity() {
				if _, err := e.EnsureSpace(need); err != nil {
					return err
				}
			}
		}
		if err := e.Place(s.Title); err != nil {
			return err
		}
	}
	for _, b := range s.Blocks {
		if err := e.Place(b); err != nil {
			return err
		}
	}
	return nil
}

// Finish draws the footer of the last page
func (e *Engine) Finish() error {
	e.DrawFooter()
	return e.check("finish")
}

func (e *Engine) check(op string) error {
	if err := e.env.Canvas.Err(); err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return nil
}
