package page

import (
	"github.com/beevik/etree"

	"showcase/config"
	"showcase/segment"
	"showcase/showcase"
)

// audioItem is a single labeled player.
type audioItem struct {
	label string
	src   string
}

func newElement(parent *etree.Element, tag, class string) *etree.Element {
	e := parent.CreateElement(tag)
	if len(class) > 0 {
		e.CreateAttr("class", class)
	}
	return e
}

func placeholder(cell *etree.Element) {
	cell.SetText(segment.Placeholder)
}

func appendAudioList(parent *etree.Element, items []audioItem) {
	wrapper := newElement(parent, "div", "audio-list")
	for _, it := range items {
		item := newElement(wrapper, "div", "audio-item")
		newElement(item, "span", "").SetText(it.label)
		audio := item.CreateElement("audio")
		audio.CreateAttr("controls", "")
		audio.CreateAttr("preload", "none")
		audio.CreateAttr("src", it.src)
	}
}

func appendTextList(parent *etree.Element, entries []showcase.Entry) {
	wrapper := newElement(parent, "div", "text-list")
	for _, en := range entries {
		item := newElement(wrapper, "div", "text-item")
		newElement(item, "span", "").SetText(en.Label)
		newElement(item, "div", "").SetText(en.Value)
	}
}

func labeledAudio(l showcase.Labeled, order config.BaselineOrder) []audioItem {
	entries := l.Entries
	if order == config.BaselineOrderNatural {
		entries = l.Natural()
	}
	items := make([]audioItem, 0, len(entries))
	for _, en := range entries {
		items = append(items, audioItem{label: en.Label, src: en.Value})
	}
	return items
}

// audioCell renders single labeled player or placeholder.
func audioCell(row *etree.Element, label, src string) {
	cell := row.CreateElement("td")
	if len(src) == 0 {
		placeholder(cell)
		return
	}
	appendAudioList(cell, []audioItem{{label: label, src: src}})
}

func labeledAudioCell(row *etree.Element, l showcase.Labeled, order config.BaselineOrder) {
	cell := row.CreateElement("td")
	if !l.Present {
		placeholder(cell)
		return
	}
	appendAudioList(cell, labeledAudio(l, order))
}

func appendPill(parent *etree.Element, text string, index int, class string) {
	pill := newElement(parent, "span", class)
	pill.SetText(text)
	pill.CreateAttr("style", "color: "+segment.ColorAt(index).Text)
}

// appendSequence lays out segments as colored pills joined by separator.
func appendSequence(parent *etree.Element, segments []string, separator string) {
	wrapper := newElement(parent, "div", "segment-sequence")
	for i, s := range segments {
		appendPill(wrapper, s, i, "segment-pill")
		if i < len(segments)-1 {
			newElement(wrapper, "span", "segment-separator").SetText(separator)
		}
	}
}

func appendSegmentedText(parent *etree.Element, segments []string) {
	wrapper := newElement(parent, "div", "segment-text")
	for i, s := range segments {
		appendPill(wrapper, s, i, "segment-pill segment-pill--text")
		if i < len(segments)-1 {
			newElement(wrapper, "span", "segment-divider").SetText("|")
		}
	}
}

// appendDurationText lays out parsed duration text: runs become bare text,
// annotations become highlighted spans with optional multiplier badge.
func appendDurationText(parent *etree.Element, d segment.Duration) {
	wrapper := newElement(parent, "div", "duration-text")
	if d.IsPlaceholder() {
		wrapper.SetText(segment.Placeholder)
		return
	}
	for _, n := range d.Nodes {
		switch n.Kind {
		case segment.Run:
			wrapper.CreateText(n.Text)
		case segment.Annotation:
			hl := newElement(wrapper, "span", "duration-highlight")
			newElement(hl, "span", "duration-highlight__text").SetText(n.Text)
			if n.HasBadge {
				newElement(hl, "span", "duration-badge").SetText(n.Badge)
			}
		}
	}
}
