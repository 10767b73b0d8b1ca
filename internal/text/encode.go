package text

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// replacements maps common typographic runes that web forms produce to
// their closest Windows-1252 equivalent when the charmap has no slot.
var replacements = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u202f", " ", // narrow no-break space
	"\u2009", " ", // thin space
	"\u2011", "-", // non-breaking hyphen
	"\u2212", "-", // minus sign
	"\t", " ",
)

// Normalize composes decomposed accents (NFC) and folds exotic spacing so
// that measurement and drawing see the same runes.
func Normalize(s string) string {
	return replacements.Replace(norm.NFC.String(s))
}

// ToWindows1252 converts UTF-8 text to the single-byte encoding used by the
// PDF core fonts. Runes with no slot are replaced by '?'.
func ToWindows1252(s string) string {
	s = Normalize(s)
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return string(out)
}
