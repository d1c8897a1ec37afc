// Package showcase defines data document describing demo examples.
package showcase

import (
	"encoding/json"
	"fmt"
	"io"
)

// EmotionExample is a single row of emotion table.
type EmotionExample struct {
	EmotionSequence string  `json:"emotion_sequence"`
	Text            string  `json:"text"`
	ReferenceAudio  Labeled `json:"reference_audio"`
	ReferenceText   Labeled `json:"reference_text"`
	OutputAudio     string  `json:"output_audio"`
	BaselineAudio   Labeled `json:"baseline_audio"`
}

// DurationExample is a single row of duration table. Text may carry
// bracketed annotations, see segment.ParseDuration.
type DurationExample struct {
	Text           string  `json:"text"`
	ReferenceAudio string  `json:"reference_audio"`
	OriginalAudio  string  `json:"original_audio"`
	OutputAudio    string  `json:"output_audio"`
	BaselineAudio  Labeled `json:"baseline_audio"`
}

// Document is the whole data file.
type Document struct {
	Emotion  []EmotionExample  `json:"emotion"`
	Duration []DurationExample `json:"duration"`
}

// Decode reads document from r. Unknown keys are ignored, absent tables are
// left empty.
func Decode(r io.Reader) (*Document, error) {
	doc := &Document{}
	dec := json.NewDecoder(r)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("unable to decode examples: %w", err)
	}
	return doc, nil
}

// Table names, match page containers.
const (
	TableEmotion  = "emotion"
	TableDuration = "duration"
)

// AudioRef points to a single audio file referenced by the document.
type AudioRef struct {
	Table string
	Row   int
	Label string
	URL   string
}

func (a AudioRef) String() string {
	return fmt.Sprintf("%s[%d].%s", a.Table, a.Row, a.Label)
}

// AudioRefs lists every audio reference in document order.
func (d *Document) AudioRefs() []AudioRef {
	var refs []AudioRef
	add := func(table string, row int, label, url string) {
		if len(url) > 0 {
			refs = append(refs, AudioRef{Table: table, Row: row, Label: label, URL: url})
		}
	}
	for i, e := range d.Emotion {
		for _, en := range e.ReferenceAudio.Entries {
			add(TableEmotion, i, "reference:"+en.Label, en.Value)
		}
		add(TableEmotion, i, "output", e.OutputAudio)
		for _, en := range e.BaselineAudio.Entries {
			add(TableEmotion, i, "baseline:"+en.Label, en.Value)
		}
	}
	for i, e := range d.Duration {
		add(TableDuration, i, "reference", e.ReferenceAudio)
		add(TableDuration, i, "original", e.OriginalAudio)
		add(TableDuration, i, "output", e.OutputAudio)
		for _, en := range e.BaselineAudio.Entries {
			add(TableDuration, i, "baseline:"+en.Label, en.Value)
		}
	}
	return refs
}
