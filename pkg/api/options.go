package api

import (
	"io"
	"os"
	"time"
)

// Geometry is the page frame reports are flowed into, in points from the
// top-left corner of the page
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	ContentWidth float64
	// SafeBottom is the lowest y a flowed block may end at
	SafeBottom float64
	// FooterTop is where the footer band starts
	FooterTop float64
	// ResumeTop is where content resumes after a page break
	ResumeTop float64
}

// Options represents configuration options for the report generator
type Options struct {
	// Page frame
	Geometry Geometry

	// Assets. An empty LogoPath selects the built-in logo; a relative
	// one resolves against the working directory. Relative photo paths
	// resolve against BaseDir.
	LogoPath      string
	BaseDir       string
	ResourcePaths []string
	// FetchTimeout bounds each remote photo download
	FetchTimeout time.Duration
	// MaxImageBytes caps the size of a single downloaded asset
	MaxImageBytes int64
	// MaxImageWidth is the pixel width photos are scaled down to before
	// embedding
	MaxImageWidth int
	// LocalAssets lets photo references name files on this machine. The
	// configured logo is always readable.
	LocalAssets bool

	// Content
	FooterLines []string
	// ReferenceCode prints the installation reference as a QR code on
	// the cover page
	ReferenceCode bool

	// Diagnostics
	Debug     bool
	LogOutput io.Writer

	// Document metadata
	Title   string
	Author  string
	Subject string
}

// Option is a function that modifies Options
type Option func(*Options)

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
)

// DefaultGeometry is the A4 frame of the inspection report
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:    PageSizeA4Width,
		PageHeight:   PageSizeA4Height,
		MarginLeft:   40,
		ContentWidth: 515,
		SafeBottom:   760,
		FooterTop:    780,
		ResumeTop:    60,
	}
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Geometry: DefaultGeometry(),

		LogoPath:      "",
		ResourcePaths: []string{},
		FetchTimeout:  15 * time.Second,
		MaxImageBytes: 50 << 20,
		MaxImageWidth: 1600,
		LocalAssets:   true,

		// nil selects the company footer
		FooterLines: nil,

		Debug:     false,
		LogOutput: os.Stdout,

		Title:   "Rapport d'audit",
		Author:  "E C I - Expertises Conseils Ingénierie",
		Subject: "Audit d'ascenseur",
	}
}

// WithGeometry sets the page frame
func WithGeometry(g Geometry) Option {
	return func(o *Options) {
		o.Geometry = g
	}
}

// WithLogoPath sets the cover logo; any path, URL or data URL the
// resource loader accepts
func WithLogoPath(path string) Option {
	return func(o *Options) {
		o.LogoPath = path
	}
}

// WithBaseDir sets the directory relative asset paths resolve against
func WithBaseDir(dir string) Option {
	return func(o *Options) {
		o.BaseDir = dir
	}
}

// WithResourcePath adds a path to search for local assets
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithFooterLines replaces the footer band
func WithFooterLines(lines ...string) Option {
	return func(o *Options) {
		o.FooterLines = lines
	}
}

// WithFetchTimeout sets the per-photo download timeout
func WithFetchTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.FetchTimeout = d
	}
}

// WithMaxImageWidth sets the pixel width photos are scaled down to
func WithMaxImageWidth(px int) Option {
	return func(o *Options) {
		o.MaxImageWidth = px
	}
}

// WithLocalAssets allows or forbids photo references to local files
func WithLocalAssets(enabled bool) Option {
	return func(o *Options) {
		o.LocalAssets = enabled
	}
}

// WithReferenceCode toggles the QR code on the cover page
func WithReferenceCode(enabled bool) Option {
	return func(o *Options) {
		o.ReferenceCode = enabled
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithLogOutput sets where debug lines are written
func WithLogOutput(w io.Writer) Option {
	return func(o *Options) {
		o.LogOutput = w
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}
