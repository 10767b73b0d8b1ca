// Package pdfserver renders lift-inspection records into paginated PDF
// reports.
package pdfserver

import (
	"github.com/Leastj/pdf-server/pkg/api"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Geometry = api.Geometry
type Result = api.Result

func New() *Generator                           { return api.New() }
func NewWithOptions(options Options) *Generator { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }
func DefaultGeometry() Geometry                 { return api.DefaultGeometry() }

var (
	WithGeometry       = api.WithGeometry
	WithLogoPath       = api.WithLogoPath
	WithBaseDir        = api.WithBaseDir
	WithResourcePath   = api.WithResourcePath
	WithFooterLines    = api.WithFooterLines
	WithFetchTimeout   = api.WithFetchTimeout
	WithMaxImageWidth  = api.WithMaxImageWidth
	WithLocalAssets    = api.WithLocalAssets
	WithReferenceCode  = api.WithReferenceCode
	WithDebug          = api.WithDebug
	WithLogOutput      = api.WithLogOutput
	WithTitle          = api.WithTitle
	WithAuthor         = api.WithAuthor
	WithSubject        = api.WithSubject
	ErrInvalidGeometry = api.ErrInvalidGeometry
	ErrBlockTooTall    = api.ErrBlockTooTall
)

const (
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
)
