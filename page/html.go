package page

import (
	"bufio"
	"io"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// NOTE: etree writes XML - empty elements become "<div/>" which HTML parser
// does not understand. We only use etree to build the tree and serialize it
// ourselves, knowing HTML void elements.

var voidElements = []string{"area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "source", "track", "wbr"}

// elements which content is never reindented
var inlineElements = []string{"a", "audio", "b", "code", "em", "i", "small", "span", "strong", "td", "th", "p", "title", "h1", "h2", "h3", "style"}

const indentUnit = "  "

// Write serializes document as HTML5.
func Write(w io.Writer, doc *etree.Document) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("<!DOCTYPE html>\n")
	if root := doc.Root(); root != nil {
		writeElement(bw, root, 0)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func writeElement(w *bufio.Writer, e *etree.Element, depth int) {
	w.WriteByte('<')
	w.WriteString(e.FullTag())
	for _, a := range e.Attr {
		w.WriteByte(' ')
		w.WriteString(a.FullKey())
		if len(a.Value) > 0 {
			w.WriteString(`="`)
			w.WriteString(html.EscapeString(a.Value))
			w.WriteByte('"')
		}
	}
	w.WriteByte('>')

	if slices.Contains(voidElements, e.Tag) {
		return
	}

	if e.Tag == "style" {
		// raw text element, must not be escaped
		for _, t := range e.Child {
			if cd, ok := t.(*etree.CharData); ok {
				w.WriteString(cd.Data)
			}
		}
	} else if isBlock(e) {
		for _, c := range e.ChildElements() {
			w.WriteByte('\n')
			w.WriteString(strings.Repeat(indentUnit, depth+1))
			writeElement(w, c, depth+1)
		}
		w.WriteByte('\n')
		w.WriteString(strings.Repeat(indentUnit, depth))
	} else {
		for _, t := range e.Child {
			switch c := t.(type) {
			case *etree.Element:
				writeElement(w, c, depth)
			case *etree.CharData:
				w.WriteString(html.EscapeString(c.Data))
			}
		}
	}

	w.WriteString("</")
	w.WriteString(e.FullTag())
	w.WriteByte('>')
}

// isBlock reports if children of e could be put on separate lines without
// changing what is displayed: there must be no text and no inline children.
func isBlock(e *etree.Element) bool {
	if len(e.Child) == 0 || slices.Contains(inlineElements, e.Tag) {
		return false
	}
	for _, t := range e.Child {
		switch c := t.(type) {
		case *etree.CharData:
			if len(c.Data) > 0 {
				return false
			}
		case *etree.Element:
			if slices.Contains(inlineElements, c.Tag) {
				return false
			}
		}
	}
	return true
}
