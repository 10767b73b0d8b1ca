package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Leastj/pdf-server/internal/layout"
	"github.com/Leastj/pdf-server/internal/pagination"
	"github.com/Leastj/pdf-server/internal/render/pdf"
	"github.com/Leastj/pdf-server/internal/report"
	"github.com/Leastj/pdf-server/internal/res"
)

var (
	// ErrInvalidGeometry is returned for a page frame that cannot hold
	// content
	ErrInvalidGeometry = pagination.ErrInvalidGeometry
	// ErrBlockTooTall marks the entries of Result.Overflows
	ErrBlockTooTall = pagination.ErrBlockTooTall
)

// Result describes a finished render
type Result struct {
	Pages int
	// Overflows lists blocks that were taller than a page and ran past
	// its safe bottom
	Overflows []error
}

// Generator is the main API for rendering inspection reports
type Generator struct {
	options Options
}

// New creates a new report generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new report generator with the specified options
func NewWithOptions(options Options) *Generator {
	return &Generator{options: options}
}

// Options returns a copy of the generator's options
func (g *Generator) Options() Options {
	return g.options
}

// WithOption returns a new generator with the specified option set
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// WithOptions returns a new generator with every option applied in order
func (g *Generator) WithOptions(options ...Option) *Generator {
	newOptions := g.options
	for _, o := range options {
		o(&newOptions)
	}
	return NewWithOptions(newOptions)
}

func (g *Generator) logf(format string, args ...any) {
	if !g.options.Debug || g.options.LogOutput == nil {
		return
	}
	fmt.Fprintf(g.options.LogOutput, format+"\n", args...)
}

func (g *Generator) geometry() pagination.Geometry {
	o := g.options.Geometry
	return pagination.Geometry{
		PageWidth:    o.PageWidth,
		PageHeight:   o.PageHeight,
		Left:         o.MarginLeft,
		ContentWidth: o.ContentWidth,
		SafeBottom:   o.SafeBottom,
		FooterTop:    o.FooterTop,
		ResumeTop:    o.ResumeTop,
	}
}

// images builds the asset fetcher of one render. Nothing is shared
// between renders.
func (g *Generator) images(baseDir, logo string) *res.Images {
	loader := res.NewLoader(baseDir)
	loader.Timeout = g.options.FetchTimeout
	loader.MaxBytes = g.options.MaxImageBytes
	loader.DisableLocal = !g.options.LocalAssets
	loader.Trust(logo)
	for _, path := range g.options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	return res.NewImages(loader, g.options.MaxImageWidth)
}

// Generate decodes an inspection record from data and writes the report
// to output. Nothing is written unless the whole document rendered.
func (g *Generator) Generate(ctx context.Context, data io.Reader, output io.Writer) (*Result, error) {
	return g.generate(ctx, data, output, g.options.BaseDir)
}

func (g *Generator) generate(ctx context.Context, data io.Reader, output io.Writer, baseDir string) (*Result, error) {
	in, err := report.Decode(data)
	if err != nil {
		return nil, err
	}

	geo := g.geometry()
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	g.logf("Page geometry: %.2f x %.2f, content %.0f wide from x=%.0f, safe bottom %.0f",
		geo.PageWidth, geo.PageHeight, geo.ContentWidth, geo.Left, geo.SafeBottom)

	renderer := pdf.NewRenderer(pdf.RenderOptions{
		PageWidth:  geo.PageWidth,
		PageHeight: geo.PageHeight,
		Title:      g.options.Title,
		Author:     g.options.Author,
		Subject:    g.options.Subject,
		Creator:    "pdf-server",
	})
	renderer.Debug = g.options.Debug

	logo := logoRef(g.options.LogoPath)
	env := &layout.Env{
		Ctx:     ctx,
		Canvas:  renderer,
		Metrics: renderer,
		Assets:  g.images(baseDir, logo),
		Logf:    g.logf,
	}
	lines := g.options.FooterLines
	if lines == nil {
		lines = report.FooterLines
	}
	footer := layout.NewFooter(lines, geo.FooterTop, geo.Left, geo.ContentWidth)

	eng, err := pagination.NewEngine(geo, env, footer)
	if err != nil {
		return nil, err
	}
	assembler := &report.Assembler{
		Geometry:      geo,
		LogoRef:       logo,
		ReferenceCode: g.options.ReferenceCode,
	}
	if err := assembler.Render(eng, in); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	var buf bytes.Buffer
	if err := renderer.Write(&buf); err != nil {
		return nil, err
	}
	if _, err := io.Copy(output, &buf); err != nil {
		return nil, fmt.Errorf("failed to copy PDF to output: %w", err)
	}

	result := &Result{Pages: renderer.PageNo()}
	for _, of := range eng.Overflows() {
		result.Overflows = append(result.Overflows, of)
	}
	g.logf("Rendered %d pages (%d overflowing blocks)", result.Pages, len(result.Overflows))
	return result, nil
}

// logoRef anchors a relative logo path to the working directory so that
// it does not move with the record's base directory
func logoRef(path string) string {
	if path == "" {
		return report.DefaultLogo()
	}
	if filepath.IsAbs(path) || strings.Contains(path, ":") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// GenerateBytes renders an inspection record held in memory
func (g *Generator) GenerateBytes(ctx context.Context, data []byte) ([]byte, *Result, error) {
	var buf bytes.Buffer
	result, err := g.Generate(ctx, bytes.NewReader(data), &buf)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), result, nil
}

// GenerateFile renders the JSON record at inputPath to outputPath.
// Relative asset paths in the record resolve against the input's
// directory unless a base directory is configured.
func (g *Generator) GenerateFile(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read inspection file: %w", err)
	}
	baseDir := g.options.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(inputPath)
	}

	var buf bytes.Buffer
	result, err := g.generate(ctx, bytes.NewReader(data), &buf, baseDir)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write PDF file: %w", err)
	}
	return result, nil
}
