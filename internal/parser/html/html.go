// Package html flattens the small HTML fragments rich-text form fields
// produce into plain text with line breaks.
package html

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockTags start and end on their own line
var blockTags = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Tr: true, atom.Table: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true,
}

// markup matches the tags rich-text form fields emit
var markup = regexp.MustCompile(`(?i)</?(br|p|div|span|section|article|ul|ol|li|b|i|u|em|strong|h[1-6]|table|tr|td|th|blockquote|pre|script|style)(\s[^<>]*)?/?>`)

// PlainText returns s with markup removed. Text without any known tag is
// only unescaped, so that plain newlines and a bare "<" survive.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	if !markup.MatchString(s) {
		return html.UnescapeString(s)
	}
	out, err := Text(strings.NewReader(s))
	if err != nil {
		return s
	}
	return out
}

// Text parses an HTML fragment from r and returns its text content
func Text(r io.Reader) (string, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, n := range nodes {
		walk(&b, n)
	}
	return tidy(b.String()), nil
}

func walk(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(collapse(n.Data))
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head:
			return
		case atom.Br:
			b.WriteByte('\n')
			return
		case atom.Li:
			b.WriteString("\n- ")
		default:
			if blockTags[n.DataAtom] {
				b.WriteByte('\n')
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(b, c)
	}
	if n.Type == html.ElementNode && blockTags[n.DataAtom] {
		b.WriteByte('\n')
	}
}

// collapse folds runs of white space to a single space as a browser would
func collapse(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' || r == '\f' {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// tidy trims every line and drops the empty ones block boundaries leave
func tidy(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
