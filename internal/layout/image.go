package layout

import (
	"math"

	"github.com/Leastj/pdf-server/internal/text"
)

// Photo grid geometry
const (
	TileWidth   = 160
	TileHeight  = 120
	CaptionBand = 24
	LabelBand   = 16
	TileGap     = 10

	captionLines = 2
)

// Unavailable is printed in place of a photo that could not be loaded
const Unavailable = "Image indisponible"

var (
	groupLabelStyle  = text.Style{Size: 9, Bold: true, Color: Blue}
	captionStyle     = text.Style{Size: 7, Color: Blue}
	placeholderStyle = text.Style{Size: 8, Color: Muted}
)

// Photo is one tile of a PhotoGrid
type Photo struct {
	URL     string
	Caption string
}

// PhotoGrid is a labelled, left-to-right wrapping grid of fixed-size tiles
// with a caption band under each tile
type PhotoGrid struct {
	GroupLabel string
	Photos     []Photo
}

// Columns is how many tiles fit side by side in width. A tile wraps to a
// new row as soon as its right edge would pass the right margin.
func Columns(width float64) int {
	n := int(math.Floor((width + TileGap) / (TileWidth + TileGap)))
	if n < 1 {
		return 1
	}
	return n
}

// GridRows is the number of tile rows n photos occupy at width
func GridRows(n int, width float64) int {
	if n <= 0 {
		return 0
	}
	cols := Columns(width)
	return (n + cols - 1) / cols
}

func (g PhotoGrid) labelBand() float64 {
	if g.GroupLabel == "" {
		return 0
	}
	return LabelBand
}

// MeasureHeight depends only on the photo count, never on fetch results
func (g PhotoGrid) MeasureHeight(_ text.Metrics, width float64) float64 {
	return g.labelBand() + float64(GridRows(len(g.Photos), width))*(TileHeight+CaptionBand)
}

func (g PhotoGrid) SpaceAfter() float64 { return 16 }

func (g PhotoGrid) Draw(env *Env, x, y, width float64) error {
	if g.GroupLabel != "" {
		lines := text.Lines(env.Metrics, g.GroupLabel, width, groupLabelStyle)
		if len(lines) > 1 {
			lines = lines[:1]
		}
		env.Canvas.Text(x, y, width, lines, groupLabelStyle, text.AlignLeft)
	}
	top := y + g.labelBand()
	cols := Columns(width)
	for i, p := range g.Photos {
		col, row := i%cols, i/cols
		tx := x + float64(col)*(TileWidth+TileGap)
		ty := top + float64(row)*(TileHeight+CaptionBand)
		g.drawTile(env, p, tx, ty)
	}
	return nil
}

func (g PhotoGrid) drawTile(env *Env, p Photo, x, y float64) {
	env.Canvas.FillRect(x, y, TileWidth, TileHeight, 4, Frame)
	if err := env.Image(p.URL, x, y, TileWidth, TileHeight); err != nil {
		env.Warnf("photo %q unavailable: %v", p.URL, err)
		ty := y + (TileHeight-placeholderStyle.LineHeight())/2
		env.Canvas.Text(x, ty, TileWidth, []string{Unavailable}, placeholderStyle, text.AlignCenter)
	}
	if p.Caption == "" {
		return
	}
	lines := text.Lines(env.Metrics, p.Caption, TileWidth, captionStyle)
	if len(lines) > captionLines {
		lines = lines[:captionLines]
	}
	env.Canvas.Text(x, y+TileHeight+3, TileWidth, lines, captionStyle, text.AlignCenter)
}
