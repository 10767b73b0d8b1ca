package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/Leastj/pdf-server/internal/text"
)

// ErrUnsupportedImage is returned for image data fpdf cannot embed
var ErrUnsupportedImage = errors.New("unsupported image format")

// RenderOptions contains document-level settings
type RenderOptions struct {
	PageWidth  float64
	PageHeight float64
	Title      string
	Author     string
	Subject    string
	Creator    string
}

// Renderer draws onto a single fpdf document. It is both the canvas the
// layout draws on and the font metrics it measures with, so measurement
// and drawing always agree.
type Renderer struct {
	pdf *fpdf.Fpdf
	// Debug outlines every image box
	Debug bool
}

// NewRenderer creates a renderer for a new, empty document
func NewRenderer(options RenderOptions) *Renderer {
	size := fpdf.SizeType{Wd: options.PageWidth, Ht: options.PageHeight}
	if size.Wd <= 0 || size.Ht <= 0 {
		size = fpdf.SizeType{Wd: 595.28, Ht: 841.89}
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           size,
	})
	// page breaks are decided by the pagination engine
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetFont("Helvetica", "", 8)
	return &Renderer{pdf: pdf}
}

// AddPage starts a new page
func (r *Renderer) AddPage() {
	r.pdf.AddPage()
}

// PageNo returns the current page number, 0 before the first page
func (r *Renderer) PageNo() int {
	return r.pdf.PageNo()
}

func (r *Renderer) setFont(st text.Style) {
	r.pdf.SetFont(st.FontFamily(), st.FontStyle(), st.Size)
}

// StringWidth measures s in the given style, in points
func (r *Renderer) StringWidth(s string, st text.Style) float64 {
	r.setFont(st)
	return r.pdf.GetStringWidth(text.ToWindows1252(s))
}

// Text draws each line in a cell one line height tall
func (r *Renderer) Text(x, y, width float64, lines []string, st text.Style, align text.Align) {
	r.setFont(st)
	r.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	lh := st.LineHeight()
	// a line's glyphs sit in the top font-size band of its cell
	cellH := st.Size * 1.15
	for i, line := range lines {
		r.pdf.SetXY(x, y+float64(i)*lh)
		r.pdf.CellFormat(width, cellH, text.ToWindows1252(line), "", 0, string(align), false, 0, "")
	}
}

// FillRect fills a rectangle, rounded when radius is positive
func (r *Renderer) FillRect(x, y, w, h, radius float64, c text.Color) {
	r.pdf.SetFillColor(c.R, c.G, c.B)
	if radius > 0 {
		r.pdf.RoundedRect(x, y, w, h, radius, "1234", "F")
		return
	}
	r.pdf.Rect(x, y, w, h, "F")
}

// StrokeRect outlines a rectangle
func (r *Renderer) StrokeRect(x, y, w, h float64, c text.Color) {
	r.pdf.SetDrawColor(c.R, c.G, c.B)
	r.pdf.SetLineWidth(1)
	r.pdf.Rect(x, y, w, h, "D")
}

// imageType sniffs data without touching the document, so a bad image
// never puts fpdf into its error state
func imageType(data []byte) (string, image.Config, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", cfg, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	switch format {
	case "jpeg":
		return "JPG", cfg, nil
	case "png":
		return "PNG", cfg, nil
	default:
		return "", cfg, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
}

func imageName(data []byte) string {
	h := fnv.New64a()
	h.Write(data)
	return fmt.Sprintf("img-%x", h.Sum64())
}

// Image fits data into the w x h box, centred, keeping its aspect ratio
func (r *Renderer) Image(data []byte, x, y, w, h float64) error {
	tp, cfg, err := imageType(data)
	if err != nil {
		return err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}
	name := imageName(data)
	opts := fpdf.ImageOptions{ImageType: tp}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if r.pdf.Err() {
		return fmt.Errorf("failed to register image: %w", r.pdf.Error())
	}

	iw, ih := fit(float64(cfg.Width), float64(cfg.Height), w, h)
	ix, iy := x+(w-iw)/2, y+(h-ih)/2
	r.pdf.ImageOptions(name, ix, iy, iw, ih, false, opts, 0, "")
	if r.Debug {
		r.StrokeRect(x, y, w, h, text.Color{R: 255})
	}
	return nil
}

// fit scales a sw x sh source into a w x h box
func fit(sw, sh, w, h float64) (float64, float64) {
	scale := w / sw
	if s := h / sh; s < scale {
		scale = s
	}
	return sw * scale, sh * scale
}

// QRCode draws a square QR code of code
func (r *Renderer) QRCode(code string, x, y, size float64) {
	if code == "" {
		return
	}
	key := barcode.RegisterQR(r.pdf, code, qr.M, qr.Unicode)
	barcode.Barcode(r.pdf, key, x, y, size, size, false)
}

// Err returns the first error the document ran into
func (r *Renderer) Err() error {
	return r.pdf.Error()
}

// Write finishes the document and writes it to w
func (r *Renderer) Write(w io.Writer) error {
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
