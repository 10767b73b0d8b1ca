package layout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Leastj/pdf-server/internal/layout/layouttest"
	"github.com/Leastj/pdf-server/internal/text"
)

const contentWidth = 515

func newEnv(assets map[string][]byte) (*Env, *layouttest.Recorder) {
	rec := layouttest.NewRecorder()
	rec.AddPage()
	return &Env{
		Ctx:     context.Background(),
		Canvas:  rec,
		Metrics: layouttest.Metrics{},
		Assets:  &layouttest.Fetcher{Assets: assets},
	}, rec
}

func TestMeasureHeightIsDeterministic(t *testing.T) {
	long := strings.Repeat("Usure importante des garnitures de frein ", 12)
	blocks := map[string]Block{
		"title":     SectionTitle{Text: "3.2 - Caractéristiques principales", Level: LevelSubsection},
		"banner":    SectionTitle{Text: "Reportage photographique", Level: LevelBanner},
		"row":       LabeledRow{Label: "Charge nominale", Value: "630 kg"},
		"paragraph": Paragraph{Index: 3, Text: long},
		"finding":   FindingBlock{Text: long},
		"note":      Note{Text: "Aucune observation"},
		"grid":      PhotoGrid{GroupLabel: "Machinerie", Photos: make([]Photo, 5)},
		"card":      DefectCard{Element: "Frein", Defect: long, Comment: long, DueDate: "01/01/2026"},
		"fields":    FieldRow{Fields: []Field{{Label: "Objet", Value: long, MinHeight: 60}}},
	}
	m := layouttest.Metrics{}
	for name, b := range blocks {
		t.Run(name, func(t *testing.T) {
			first := b.MeasureHeight(m, contentWidth)
			if first <= 0 {
				t.Fatalf("MeasureHeight() = %v, want > 0", first)
			}
			for i := 0; i < 3; i++ {
				if got := b.MeasureHeight(m, contentWidth); got != first {
					t.Fatalf("MeasureHeight() call %d = %v, want %v", i, got, first)
				}
			}
		})
	}
}

func TestTableShading(t *testing.T) {
	rows := Table([][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"d", "4"}, {"e", "5"}})
	var got []bool
	for _, b := range rows {
		got = append(got, b.(LabeledRow).Shaded)
	}
	want := []bool{true, false, true, false, true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("shading mismatch (-want +got):\n%s", diff)
	}
}

func TestLabeledRow(t *testing.T) {
	m := layouttest.Metrics{}
	short := LabeledRow{Label: "ERP", Value: "Oui", Shaded: true}
	if got := short.MeasureHeight(m, contentWidth); got != rowHeight {
		t.Errorf("MeasureHeight() = %v, want %v", got, rowHeight)
	}

	long := LabeledRow{Label: "Désignation des niveaux", Value: strings.Repeat("RDC, 1, 2, 3, ", 20)}
	if got := long.MeasureHeight(m, contentWidth); got <= rowHeight {
		t.Errorf("MeasureHeight() of a wrapping value = %v, want > %v", got, rowHeight)
	}

	env, rec := newEnv(nil)
	if err := short.Draw(env, 40, 100, contentWidth); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	fills := rec.Filter(layouttest.OpFill)
	if len(fills) != 2 {
		t.Fatalf("got %d fills, want 2", len(fills))
	}
	if fills[0].W != rowLabelW || fills[1].X != 40+rowLabelW+rowGap {
		t.Errorf("cells = %+v, want label %v wide and value at %v", fills, rowLabelW, 40+rowLabelW+rowGap)
	}
	if fills[0].Color != Gray {
		t.Errorf("shaded row color = %v, want %v", fills[0].Color, Gray)
	}
}

func TestParagraph(t *testing.T) {
	env, rec := newEnv(nil)
	p := Paragraph{Index: 2, Text: strings.Repeat("mot ", 60)}
	h := p.MeasureHeight(env.Metrics, contentWidth)
	if err := p.Draw(env, 40, 200, contentWidth); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	op, ok := rec.FindText("2. mot")
	if !ok {
		t.Fatal("numbered text not drawn")
	}
	if op.H != h {
		t.Errorf("drawn height = %v, measured %v", op.H, h)
	}
	if op.W != contentWidth-bodyInset {
		t.Errorf("body width = %v, want %v", op.W, contentWidth-bodyInset)
	}
}

func TestFindingBlockBackgroundMatchesHeight(t *testing.T) {
	env, rec := newEnv(nil)
	f := FindingBlock{Text: strings.Repeat("Non-conformité relevée ", 30)}
	h := f.MeasureHeight(env.Metrics, contentWidth)
	if err := f.Draw(env, 40, 100, contentWidth); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	bg := rec.Filter(layouttest.OpFill)[0]
	if bg.H != h {
		t.Errorf("background height = %v, want %v", bg.H, h)
	}
	txt := rec.Filter(layouttest.OpText)[0]
	if got := txt.H + 2*findingPad; got != h {
		t.Errorf("text height + padding = %v, want %v", got, h)
	}
}

func TestCardHeight(t *testing.T) {
	tests := []struct {
		left, right float64
		want        float64
	}{
		{140, 95, 164},
		{95, 140, 164},
		{10, 20, 114},
		{90, 90, 114},
	}
	for _, tt := range tests {
		if got := CardHeight(tt.left, tt.right); got != tt.want {
			t.Errorf("CardHeight(%v, %v) = %v, want %v", tt.left, tt.right, got, tt.want)
		}
	}
}

func TestDefectCardDrawsOneBox(t *testing.T) {
	env, rec := newEnv(nil)
	c := DefectCard{
		Location: "Machinerie",
		Element:  "Treuil",
		Defect:   strings.Repeat("Fuite d'huile au niveau du réducteur ", 8),
		Comment:  "Prévoir remplacement du joint",
		DueDate:  "31/12/2025",
	}
	h := c.MeasureHeight(env.Metrics, contentWidth)
	if err := c.Draw(env, 40, 300, contentWidth); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	box := rec.Filter(layouttest.OpFill)[0]
	if box.H != h || box.W != contentWidth {
		t.Errorf("box = %vx%v, want %vx%v", box.W, box.H, contentWidth, h)
	}
	for _, op := range rec.Filter(layouttest.OpText) {
		if op.Y+op.H > 300+h-cardPad+0.001 {
			t.Errorf("text %q ends at %v, below box bottom %v", op.Text(), op.Y+op.H, 300+h-cardPad)
		}
	}
	if _, ok := rec.FindText("-"); !ok {
		t.Error("missing completion date not rendered as a dash")
	}
}

func TestPhotoGridGeometry(t *testing.T) {
	if got := Columns(contentWidth); got != 3 {
		t.Fatalf("Columns(%v) = %d, want 3", contentWidth, got)
	}
	tests := []struct {
		photos int
		label  string
		want   float64
	}{
		{1, "", TileHeight + CaptionBand},
		{3, "Cabine", LabelBand + TileHeight + CaptionBand},
		{4, "Cabine", LabelBand + 2*(TileHeight+CaptionBand)},
		{7, "Cabine", LabelBand + 3*(TileHeight+CaptionBand)},
	}
	for _, tt := range tests {
		g := PhotoGrid{GroupLabel: tt.label, Photos: make([]Photo, tt.photos)}
		if got := g.MeasureHeight(nil, contentWidth); got != tt.want {
			t.Errorf("MeasureHeight(%d photos) = %v, want %v", tt.photos, got, tt.want)
		}
	}
}

func TestPhotoGridFetchFailure(t *testing.T) {
	env, rec := newEnv(map[string][]byte{
		"https://img/ok1.jpg": []byte("jpeg"),
		"https://img/ok2.jpg": []byte("jpeg"),
	})
	var logged []string
	env.Logf = func(format string, args ...any) { logged = append(logged, format) }

	g := PhotoGrid{GroupLabel: "Gaine", Photos: []Photo{
		{URL: "https://img/ok1.jpg", Caption: "Cuvette"},
		{URL: "https://img/missing.jpg", Caption: "Contrepoids"},
		{URL: "https://img/ok2.jpg"},
		{URL: ""},
	}}
	before := g.MeasureHeight(env.Metrics, contentWidth)
	if err := g.Draw(env, 40, 100, contentWidth); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if after := g.MeasureHeight(env.Metrics, contentWidth); after != before {
		t.Errorf("height changed after failed fetch: %v != %v", after, before)
	}

	images := rec.Filter(layouttest.OpImage)
	if len(images) != 2 {
		t.Errorf("drew %d images, want 2", len(images))
	}
	placeholders := 0
	for _, op := range rec.Filter(layouttest.OpText) {
		if op.Text() == Unavailable {
			placeholders++
		}
	}
	if placeholders != 2 {
		t.Errorf("drew %d placeholders, want 2", placeholders)
	}
	if len(logged) != 2 {
		t.Errorf("logged %d failures, want 2", len(logged))
	}

	// fourth tile wraps to the second row at the left margin
	frames := rec.Filter(layouttest.OpFill)
	if frames[3].X != 40 || frames[3].Y != 100+LabelBand+TileHeight+CaptionBand {
		t.Errorf("fourth tile at (%v, %v), want (40, %v)", frames[3].X, frames[3].Y, 100+LabelBand+TileHeight+CaptionBand)
	}
	for _, f := range frames {
		if f.X+f.W > 40+contentWidth {
			t.Errorf("tile at x=%v passes the right margin", f.X)
		}
	}
}

func TestPhotoGridCancelledContext(t *testing.T) {
	env, rec := newEnv(map[string][]byte{"a": []byte("jpeg")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	env.Ctx = ctx

	g := PhotoGrid{Photos: []Photo{{URL: "a"}}}
	if err := g.Draw(env, 40, 100, contentWidth); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if _, ok := rec.FindText(Unavailable); !ok {
		t.Error("cancelled fetch did not fall back to the placeholder")
	}
}

func TestEnvImageWithoutAssets(t *testing.T) {
	env, _ := newEnv(nil)
	env.Assets = nil
	if err := env.Image("logo.png", 0, 0, 10, 10); !errors.Is(err, ErrNoAssets) {
		t.Errorf("Image() error = %v, want %v", err, ErrNoAssets)
	}
}

func TestStackDrawCentered(t *testing.T) {
	env, rec := newEnv(nil)
	st := text.Style{Size: 10, Color: Blue}
	s := Stack{Items: []Block{
		TextRun{Text: "12 rue des Lilas", Style: st, Align: text.AlignCenter, Gap: 5},
		TextRun{Text: "", Style: st, Gap: 50},
		Pill{Text: "REF-001", Width: 110, Height: 20, Fill: White, Style: st},
	}}
	want := st.LineHeight() + 25
	if got := s.MeasureHeight(env.Metrics, 300); got != want {
		t.Fatalf("MeasureHeight() = %v, want %v", got, want)
	}

	y, err := s.DrawCentered(env, 40, 210, 300, 177)
	if err != nil {
		t.Fatalf("DrawCentered() error = %v", err)
	}
	if wantY := 210 + (177-want)/2; y != wantY {
		t.Errorf("DrawCentered() y = %v, want %v", y, wantY)
	}
	pill := rec.Filter(layouttest.OpFill)[0]
	if wantX := 40 + (300-110)/2.0; pill.X != wantX {
		t.Errorf("pill x = %v, want %v", pill.X, wantX)
	}
	if wantPillY := y + st.LineHeight() + 5; pill.Y != wantPillY {
		t.Errorf("pill y = %v, want %v", pill.Y, wantPillY)
	}
}

func TestFieldRowWidths(t *testing.T) {
	r := FieldRow{Fields: []Field{{Label: "a"}, {Label: "b"}}}
	if diff := cmp.Diff([]float64{247.5, 247.5}, r.widths(contentWidth)); diff != "" {
		t.Errorf("flex widths mismatch (-want +got):\n%s", diff)
	}
	r = FieldRow{Fields: []Field{{Label: "a", Width: 200}, {Label: "b"}}}
	if diff := cmp.Diff([]float64{200, 295}, r.widths(contentWidth)); diff != "" {
		t.Errorf("mixed widths mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldRowHeight(t *testing.T) {
	m := layouttest.Metrics{}
	r := FieldRow{Fields: []Field{{Label: "Objet du rapport", Value: "Vérification", MinHeight: 60}}}
	if got, want := r.MeasureHeight(m, contentWidth), float64(fieldLabelBand+60); got != want {
		t.Errorf("MeasureHeight() = %v, want %v", got, want)
	}
	if got := (FieldRow{}).MeasureHeight(m, contentWidth); got != 0 {
		t.Errorf("empty row MeasureHeight() = %v, want 0", got)
	}
}

func TestFooterDraw(t *testing.T) {
	env, rec := newEnv(nil)
	f := NewFooter([]string{"E C I", "Toulouse", "", "Tel", "Mention"}, 780, 40, contentWidth)
	f.Draw(env)
	ops := rec.Filter(layouttest.OpText)
	if len(ops) != 1 {
		t.Fatalf("got %d text ops, want 1", len(ops))
	}
	op := ops[0]
	if op.Y != 780 || op.Align != text.AlignCenter || len(op.Lines) != 5 {
		t.Errorf("footer op = %+v, want 5 centred lines at 780", op)
	}
	if op.Style.Size != 7 || op.Style.LineGap != 2 {
		t.Errorf("footer style = %+v, want Helvetica 7 with line gap 2", op.Style)
	}
}

func TestFooterHeight(t *testing.T) {
	lines := []string{"E C I", "Toulouse", "Adresse", "Contact", "Mentions"}
	f := NewFooter(lines, 780, 40, contentWidth)
	if want := 5 * FooterStyle.LineHeight(); f.Height != want {
		t.Errorf("Height = %v, want %v", f.Height, want)
	}
	if got := f.Measure(layouttest.Metrics{}); got != f.Height {
		t.Errorf("Measure() = %v, want %v", got, f.Height)
	}

	// 75 words at 3.5 points a rune wrap to three lines of the band width
	f.Lines = append(f.Lines, strings.TrimSpace(strings.Repeat("mot ", 75)))
	if got, want := f.Measure(layouttest.Metrics{}), 8*FooterStyle.LineHeight(); got != want {
		t.Errorf("Measure() with a wrapping line = %v, want %v", got, want)
	}
}

func TestStackDrawCenteredTallerThanBox(t *testing.T) {
	env, rec := newEnv(nil)
	st := text.Style{Size: 10, Color: Blue}
	s := Stack{Items: []Block{
		TextRun{Text: strings.Repeat("Maintenance\n", 20), Style: st},
	}}
	if h := s.MeasureHeight(env.Metrics, 300); h <= 177 {
		t.Fatalf("MeasureHeight() = %v, want more than the box", h)
	}

	y, err := s.DrawCentered(env, 40, 210, 300, 177)
	if err != nil {
		t.Fatalf("DrawCentered() error = %v", err)
	}
	if y != 210 {
		t.Errorf("DrawCentered() y = %v, want the box top 210", y)
	}
	if op := rec.Filter(layouttest.OpText)[0]; op.Y < 210 {
		t.Errorf("first line at y = %v, above the box", op.Y)
	}
}
