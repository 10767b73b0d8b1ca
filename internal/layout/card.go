package layout

import (
	"math"

	"github.com/Leastj/pdf-server/internal/text"
)

const (
	cardPad      = 12
	cardMinBody  = 90
	cardColGap   = 16
	cardLeftFrac = 0.6
	cardSpacing  = 10
)

// Labels used on the right column of a defect card
const (
	DueLabel  = "Date d'échéance maximale"
	DoneLabel = "Date de réalisation"
)

var (
	cardElementStyle = text.Style{Size: 9, Bold: true, Color: Blue}
	cardDefectStyle  = text.Style{Size: 8, Bold: true, Color: Orange}
	cardLabelStyle   = text.Style{Size: 7, Color: Muted}
	cardDateStyle    = text.Style{Size: 8, Bold: true, Color: Blue}
)

// DefectCard is one maintenance defect drawn as a two-column card on a
// single background box
type DefectCard struct {
	Location string
	Element  string
	Defect   string
	Comment  string
	DueDate  string
	DoneDate string
}

// CardHeight is the box height for columns measuring left and right
func CardHeight(left, right float64) float64 {
	return math.Max(math.Max(left, right), cardMinBody) + 2*cardPad
}

func (c DefectCard) columns(width float64) (leftW, rightW float64) {
	inner := width - 2*cardPad - cardColGap
	leftW = math.Floor(inner * cardLeftFrac)
	return leftW, inner - leftW
}

func (c DefectCard) left() Stack {
	return Stack{Items: []Block{
		TextRun{Text: c.Element, Style: cardElementStyle, Gap: 6},
		TextRun{Text: c.Defect, Style: cardDefectStyle, Gap: 4},
		TextRun{Text: c.Comment, Style: Body},
	}}
}

func (c DefectCard) right() Stack {
	return Stack{Items: []Block{
		TextRun{Text: c.Location, Style: cardElementStyle, Gap: 8},
		TextRun{Text: DueLabel, Style: cardLabelStyle, Gap: 2},
		TextRun{Text: orDash(c.DueDate), Style: cardDateStyle, Gap: 8},
		TextRun{Text: DoneLabel, Style: cardLabelStyle, Gap: 2},
		TextRun{Text: orDash(c.DoneDate), Style: cardDateStyle},
	}}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// MeasureHeight is the taller column plus padding, never below the
// minimum card body
func (c DefectCard) MeasureHeight(m text.Metrics, width float64) float64 {
	lw, rw := c.columns(width)
	return CardHeight(c.left().MeasureHeight(m, lw), c.right().MeasureHeight(m, rw))
}

func (c DefectCard) SpaceAfter() float64 { return cardSpacing }

func (c DefectCard) Draw(env *Env, x, y, width float64) error {
	h := c.MeasureHeight(env.Metrics, width)
	lw, rw := c.columns(width)

	env.Canvas.FillRect(x, y, width, h, 4, Panel)
	env.Canvas.FillRect(x, y, 3, h, 0, Orange)

	if err := c.left().Draw(env, x+cardPad, y+cardPad, lw); err != nil {
		return err
	}
	rx := x + cardPad + lw + cardColGap
	env.Canvas.FillRect(rx-cardColGap/2, y+cardPad, 0.5, h-2*cardPad, 0, Frame)
	return c.right().Draw(env, rx, y+cardPad, rw)
}
