package text

import (
	"strings"
	"unicode"
)

// Metrics measures strings for a given style. Implementations must be pure:
// the same input always yields the same width.
type Metrics interface {
	StringWidth(s string, st Style) float64
}

// Lines wraps s to maxWidth using m. Hard line breaks are honoured, blank
// lines are kept, and words wider than maxWidth are broken between runes.
func Lines(m Metrics, s string, maxWidth float64, st Style) []string {
	s = strings.TrimRight(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if s == "" {
		return nil
	}
	width := func(v string) float64 { return m.StringWidth(v, st) }

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(para, maxWidth, width)...)
	}
	return lines
}

// Height is the rendered height of s wrapped at maxWidth
func Height(m Metrics, s string, maxWidth float64, st Style) float64 {
	return float64(len(Lines(m, s, maxWidth, st))) * st.LineHeight()
}

// wrapParagraph greedily fills lines word by word
func wrapParagraph(para string, maxWidth float64, width func(string) float64) []string {
	words := splitIntoWords(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if maxWidth <= 0 || width(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if width(word) <= maxWidth {
			current = word
			continue
		}
		pieces := breakWord(word, maxWidth, width)
		lines = append(lines, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// breakWord splits a single over-long word into pieces that fit maxWidth.
// Every piece holds at least one rune.
func breakWord(word string, maxWidth float64, width func(string) float64) []string {
	var pieces []string
	var b strings.Builder
	for _, r := range word {
		next := b.String() + string(r)
		if b.Len() > 0 && width(next) > maxWidth {
			pieces = append(pieces, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		pieces = append(pieces, b.String())
	}
	return pieces
}

// splitIntoWords splits text into words
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(text, unicode.IsSpace)
}
