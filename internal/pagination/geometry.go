package pagination

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned when page geometry is inconsistent
var ErrInvalidGeometry = errors.New("pagination: invalid page geometry")

// Geometry is the fixed page frame of a render, in points from the top-left
// corner of the page
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	Left         float64
	ContentWidth float64
	// SafeBottom is the lowest y any flowed block may end at
	SafeBottom float64
	// FooterTop is where the footer band starts
	FooterTop float64
	// ResumeTop is where content resumes after a page break
	ResumeTop float64
}

// A4 is the default report geometry
func A4() Geometry {
	return Geometry{
		PageWidth:    595.28,
		PageHeight:   841.89,
		Left:         40,
		ContentWidth: 515,
		SafeBottom:   760,
		FooterTop:    780,
		ResumeTop:    60,
	}
}

// Capacity is the tallest block that fits on a page below ResumeTop
func (g Geometry) Capacity() float64 {
	return g.SafeBottom - g.ResumeTop
}

// Validate checks that the frame can hold content
func (g Geometry) Validate() error {
	switch {
	case g.PageWidth <= 0 || g.PageHeight <= 0:
		return fmt.Errorf("%w: page size %vx%v", ErrInvalidGeometry, g.PageWidth, g.PageHeight)
	case g.ContentWidth <= 0 || g.Left < 0 || g.Left+g.ContentWidth > g.PageWidth:
		return fmt.Errorf("%w: content area %v+%v exceeds page width %v", ErrInvalidGeometry, g.Left, g.ContentWidth, g.PageWidth)
	case g.ResumeTop < 0 || g.ResumeTop >= g.SafeBottom:
		return fmt.Errorf("%w: resume top %v must be above safe bottom %v", ErrInvalidGeometry, g.ResumeTop, g.SafeBottom)
	case g.FooterTop < g.SafeBottom:
		return fmt.Errorf("%w: footer top %v overlaps safe bottom %v", ErrInvalidGeometry, g.FooterTop, g.SafeBottom)
	case g.FooterTop >= g.PageHeight:
		return fmt.Errorf("%w: footer top %v is below page height %v", ErrInvalidGeometry, g.FooterTop, g.PageHeight)
	}
	return nil
}

// Cursor is the flow position. Y only grows within a page.
type Cursor struct {
	Y    float64
	Page int
}

// ErrBlockTooTall marks a block taller than a full page
var ErrBlockTooTall = errors.New("pagination: block taller than a page")

// OverflowError records a block that was placed at the top of a page but
// still runs past the safe bottom
type OverflowError struct {
	Page      int
	Height    float64
	Available float64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("block of height %.1f overflows page %d (capacity %.1f)", e.Height, e.Page, e.Available)
}

func (e *OverflowError) Unwrap() error {
	return ErrBlockTooTall
}
