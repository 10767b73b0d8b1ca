package layout

import (
	"fmt"
	"math"

	"github.com/Leastj/pdf-server/internal/text"
)

// Block is one atomic unit of flowed content. MeasureHeight must be pure:
// the pagination engine advances the cursor by exactly the value it
// returns and Draw never moves the cursor itself.
type Block interface {
	MeasureHeight(m text.Metrics, width float64) float64
	SpaceAfter() float64
	Draw(env *Env, x, y, width float64) error
}

const (
	titleHeight  = 20
	titleSpacing = 10

	bannerHeight  = 28
	bannerSpacing = 14
	bannerInset   = 10

	rowHeight    = 20
	rowLabelW    = 200
	rowGap       = 20
	rowPadX      = 6
	rowPadY      = 5
	rowRadius    = 2
	bodyInset    = 40
	paraSpacing  = 8
	findingPad   = 8
	findingBar   = 3
	findingSpace = 10
)

// Level selects how a SectionTitle is set
type Level int

const (
	// LevelSection is a numbered top-level heading ("4 - ...")
	LevelSection Level = iota
	// LevelSubsection is a numbered sub heading ("3.2 - ...")
	LevelSubsection
	// LevelBanner is a full-width tinted heading opening a chapter page
	LevelBanner
)

// SectionTitle is a heading line
type SectionTitle struct {
	Text  string
	Level Level
}

func (t SectionTitle) style() text.Style {
	switch t.Level {
	case LevelBanner:
		return text.Style{Size: 14, Bold: true, Color: White}
	case LevelSubsection:
		return text.Style{Size: 12, Color: Orange}
	default:
		return text.Style{Size: 12, Bold: true, Color: Orange}
	}
}

// MeasureHeight returns the fixed title height, grown only when the title
// wraps
func (t SectionTitle) MeasureHeight(m text.Metrics, width float64) float64 {
	if t.Level == LevelBanner {
		h := text.Height(m, t.Text, width-2*bannerInset, t.style())
		return math.Max(bannerHeight, h+bannerInset)
	}
	return math.Max(titleHeight, text.Height(m, t.Text, width, t.style()))
}

func (t SectionTitle) SpaceAfter() float64 {
	if t.Level == LevelBanner {
		return bannerSpacing
	}
	return titleSpacing
}

func (t SectionTitle) Draw(env *Env, x, y, width float64) error {
	st := t.style()
	if t.Level != LevelBanner {
		env.Text(x, y, width, t.Text, st, text.AlignLeft)
		return nil
	}
	h := t.MeasureHeight(env.Metrics, width)
	env.Canvas.FillRect(x, y, width, h, 4, Blue)
	th := text.Height(env.Metrics, t.Text, width-2*bannerInset, st)
	env.Text(x+bannerInset, y+(h-th)/2, width-2*bannerInset, t.Text, st, text.AlignLeft)
	return nil
}

// LabeledRow is one row of a two-column technical table
type LabeledRow struct {
	Label  string
	Value  string
	Shaded bool
}

var (
	rowLabelStyle = text.Style{Size: 8, Bold: true, Color: Blue}
	rowValueStyle = Body
)

func rowValueWidth(width float64) float64 {
	return width - rowLabelW - rowGap
}

// MeasureHeight is the fixed row height unless a long label or value
// needs more lines
func (r LabeledRow) MeasureHeight(m text.Metrics, width float64) float64 {
	lh := text.Height(m, r.Label, rowLabelW-2*rowPadX, rowLabelStyle)
	vh := text.Height(m, r.Value, rowValueWidth(width)-2*rowPadX, rowValueStyle)
	return math.Max(rowHeight, math.Max(lh, vh)+2*rowPadY)
}

func (r LabeledRow) SpaceAfter() float64 { return 0 }

func (r LabeledRow) Draw(env *Env, x, y, width float64) error {
	h := r.MeasureHeight(env.Metrics, width)
	bg := White
	if r.Shaded {
		bg = Gray
	}
	vx := x + rowLabelW + rowGap
	vw := rowValueWidth(width)

	env.Canvas.FillRect(x, y, rowLabelW, h, rowRadius, bg)
	env.Text(x+rowPadX, y+rowPadY, rowLabelW-2*rowPadX, r.Label, rowLabelStyle, text.AlignLeft)

	env.Canvas.FillRect(vx, y, vw, h, rowRadius, bg)
	env.Text(vx+rowPadX, y+rowPadY, vw-2*rowPadX, r.Value, rowValueStyle, text.AlignLeft)
	return nil
}

// Table builds a table from label/value pairs. Shading alternates by the
// row's position in its own table, starting shaded.
func Table(pairs [][2]string) []Block {
	blocks := make([]Block, 0, len(pairs))
	for i, p := range pairs {
		blocks = append(blocks, LabeledRow{Label: p[0], Value: p[1], Shaded: i%2 == 0})
	}
	return blocks
}

// Paragraph is one numbered item of a narrative list
type Paragraph struct {
	Index int
	Text  string
}

func (p Paragraph) content() string {
	return fmt.Sprintf("%d. %s", p.Index, p.Text)
}

func (p Paragraph) MeasureHeight(m text.Metrics, width float64) float64 {
	return text.Height(m, p.content(), width-bodyInset, Body)
}

func (p Paragraph) SpaceAfter() float64 { return paraSpacing }

func (p Paragraph) Draw(env *Env, x, y, width float64) error {
	env.Text(x, y, width-bodyInset, p.content(), Body, text.AlignLeft)
	return nil
}

// Note is an un-numbered line of body text
type Note struct {
	Text string
}

func (n Note) MeasureHeight(m text.Metrics, width float64) float64 {
	return text.Height(m, n.Text, width, Body)
}

func (n Note) SpaceAfter() float64 { return paraSpacing }

func (n Note) Draw(env *Env, x, y, width float64) error {
	env.Text(x, y, width, n.Text, Body, text.AlignLeft)
	return nil
}

// FindingBlock is a paragraph set on a tinted panel. The panel is drawn in
// one piece so the block is never split.
type FindingBlock struct {
	Text string
}

func findingTextWidth(width float64) float64 {
	return width - 2*findingPad - findingBar
}

func (f FindingBlock) MeasureHeight(m text.Metrics, width float64) float64 {
	return text.Height(m, f.Text, findingTextWidth(width), Body) + 2*findingPad
}

func (f FindingBlock) SpaceAfter() float64 { return findingSpace }

func (f FindingBlock) Draw(env *Env, x, y, width float64) error {
	h := f.MeasureHeight(env.Metrics, width)
	env.Canvas.FillRect(x, y, width, h, 4, Gray)
	env.Canvas.FillRect(x, y, findingBar, h, 0, Orange)
	env.Text(x+findingBar+findingPad, y+findingPad, findingTextWidth(width), f.Text, Body, text.AlignLeft)
	return nil
}
