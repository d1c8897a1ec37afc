// Package segment turns the short annotated strings of the data document into
// display nodes which page builder can lay out.
package segment

import (
	"regexp"
	"strings"
)

// Placeholder is shown in place of any absent value.
const Placeholder = "-"

// Kind of display node.
type Kind int

const (
	Run Kind = iota
	Annotation
	PlaceholderMark
)

func (k Kind) String() string {
	switch k {
	case Run:
		return "run"
	case Annotation:
		return "annotation"
	case PlaceholderMark:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Node is a single display unit. For annotations Text holds the clean label
// and Badge holds the multiplier when HasBadge is set.
type Node struct {
	Kind     Kind
	Text     string
	Badge    string
	HasBadge bool
}

// Duration is the result of parsing duration example text. It is never
// modified after ParseDuration returns it.
type Duration struct {
	Nodes []Node
}

var (
	markerRe = regexp.MustCompile(`\[([^\]]+)\]`)
	// multiplier must have content, removal does not
	multiplierRe = regexp.MustCompile(`\(([^)]+)\)`)
	removalRe    = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]*\([^)]*\)[\s\v\p{Z}\x{FEFF}]*`)
)

// ParseDuration splits text into literal runs and bracketed annotations. It
// never fails: malformed brackets are kept as literal text.
func ParseDuration(text string) Duration {
	if len(text) == 0 {
		return Duration{Nodes: []Node{{Kind: PlaceholderMark, Text: Placeholder}}}
	}

	var (
		nodes []Node
		last  int
	)
	for _, m := range markerRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			nodes = append(nodes, Node{Kind: Run, Text: text[last:m[0]]})
		}
		nodes = append(nodes, annotation(text[m[2]:m[3]]))
		last = m[1]
	}
	if last < len(text) {
		nodes = append(nodes, Node{Kind: Run, Text: text[last:]})
	}
	return Duration{Nodes: nodes}
}

func annotation(inner string) Node {
	content := strings.TrimSpace(inner)

	n := Node{Kind: Annotation, Text: content}
	if m := multiplierRe.FindStringSubmatch(content); m != nil {
		n.Badge, n.HasBadge = m[1], true
	}

	// only first occurrence is removed
	clean := content
	if loc := removalRe.FindStringIndex(content); loc != nil {
		clean = content[:loc[0]] + " " + content[loc[1]:]
	}
	if clean = strings.TrimSpace(clean); len(clean) > 0 {
		n.Text = clean
	}
	return n
}

// IsPlaceholder reports if nothing but the placeholder was produced.
func (d Duration) IsPlaceholder() bool {
	return len(d.Nodes) == 1 && d.Nodes[0].Kind == PlaceholderMark
}

// PlainText concatenates runs and annotation labels ignoring badges.
func (d Duration) PlainText() string {
	var b strings.Builder
	for _, n := range d.Nodes {
		b.WriteString(n.Text)
	}
	return b.String()
}

// Badges returns multipliers in order of appearance.
func (d Duration) Badges() []string {
	var res []string
	for _, n := range d.Nodes {
		if n.HasBadge {
			res = append(res, n.Badge)
		}
	}
	return res
}
