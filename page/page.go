// Package page builds showcase HTML page out of examples document.
package page

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"showcase/config"
	"showcase/segment"
	"showcase/showcase"
)

//go:embed default.css
var DefaultStylesheet []byte

// Container ids, stylesheet and any scripts on the site depend on them.
const (
	EmotionContainerID  = "emotion-table"
	DurationContainerID = "duration-table"
)

var (
	emotionHeaders  = []string{"Emotion sequence", "Text", "References", "Ours", "Baselines"}
	durationHeaders = []string{"Text", "Reference", "Original", "Ours", "Baselines"}
)

const (
	sequenceSeparator = "→"
	maxAnchorLength   = 48
)

// Build creates complete page for document.
func Build(ctx context.Context, doc *showcase.Document, cfg *config.PageConfig, stylesheet string, log *zap.Logger) (*etree.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, emotion, duration := createDocument(cfg, stylesheet, log)
	buildEmotionTable(emotion, doc.Emotion, cfg)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buildDurationTable(duration, doc.Duration, cfg)

	log.Debug("Page built", zap.Int("emotion rows", len(doc.Emotion)), zap.Int("duration rows", len(doc.Duration)))
	return d, nil
}

// BuildFailure creates page which reports that examples could not be loaded.
// Same message is put in place of both tables.
func BuildFailure(name string, cause error, cfg *config.PageConfig, stylesheet string, log *zap.Logger) *etree.Document {
	d, emotion, duration := createDocument(cfg, stylesheet, log)
	msg := fmt.Sprintf("Unable to load %s: %v", name, cause)
	for _, c := range []*etree.Element{emotion, duration} {
		newElement(c, "p", "muted").SetText(msg)
	}
	return d
}

func createDocument(cfg *config.PageConfig, stylesheet string, log *zap.Logger) (*etree.Document, *etree.Element, *etree.Element) {
	doc := etree.NewDocument()

	html := doc.CreateElement("html")
	if tag, err := language.Parse(cfg.Language); err == nil {
		html.CreateAttr("lang", tag.String())
	} else {
		log.Warn("Bad page language, ignoring", zap.String("language", cfg.Language), zap.Error(err))
	}

	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	viewport := head.CreateElement("meta")
	viewport.CreateAttr("name", "viewport")
	viewport.CreateAttr("content", "width=device-width, initial-scale=1")
	if len(cfg.Description) > 0 {
		desc := head.CreateElement("meta")
		desc.CreateAttr("name", "description")
		desc.CreateAttr("content", cfg.Description)
	}
	head.CreateElement("title").SetText(cfg.Title)
	if len(stylesheet) > 0 {
		link := head.CreateElement("link")
		link.CreateAttr("rel", "stylesheet")
		link.CreateAttr("href", stylesheet)
	}

	body := html.CreateElement("body")
	content := newElement(body, "main", "page")
	if len(cfg.Heading) > 0 {
		content.CreateElement("h1").SetText(cfg.Heading)
	}

	emotion := sectionContainer(content, "section-emotion", "Emotion control", EmotionContainerID)
	duration := sectionContainer(content, "section-duration", "Duration control", DurationContainerID)
	return doc, emotion, duration
}

func sectionContainer(parent *etree.Element, class, title, id string) *etree.Element {
	section := newElement(parent, "section", class)
	section.CreateElement("h2").SetText(title)
	c := section.CreateElement("div")
	c.CreateAttr("id", id)
	return c
}

func createTable(container *etree.Element, headers []string) *etree.Element {
	table := newElement(container, "table", "table")
	tr := table.CreateElement("thead").CreateElement("tr")
	for _, h := range headers {
		tr.CreateElement("th").SetText(h)
	}
	return table.CreateElement("tbody")
}

// rowAnchor produces stable id for table row, so individual examples could be
// linked to.
func rowAnchor(table string, index int, text string) string {
	s := slug.Make(text)
	if len(s) > maxAnchorLength {
		s = strings.TrimRight(s[:maxAnchorLength], "-")
	}
	if len(s) == 0 {
		return fmt.Sprintf("%s-%d", table, index+1)
	}
	return fmt.Sprintf("%s-%d-%s", table, index+1, s)
}

func buildEmotionTable(container *etree.Element, rows []showcase.EmotionExample, cfg *config.PageConfig) {
	tbody := createTable(container, emotionHeaders)

	for i, item := range rows {
		row := tbody.CreateElement("tr")
		if cfg.RowAnchors {
			row.CreateAttr("id", rowAnchor(showcase.TableEmotion, i, item.EmotionSequence))
		}

		cell := row.CreateElement("td")
		if len(item.EmotionSequence) > 0 {
			appendSequence(cell, segment.Split(item.EmotionSequence, segment.SequenceDelimiter), sequenceSeparator)
		} else {
			placeholder(cell)
		}

		cell = row.CreateElement("td")
		if len(item.Text) > 0 {
			appendSegmentedText(cell, segment.Split(item.Text, segment.TextDelimiter))
		} else {
			placeholder(cell)
		}

		cell = row.CreateElement("td")
		switch {
		case item.ReferenceAudio.Present:
			appendAudioList(cell, labeledAudio(item.ReferenceAudio, config.BaselineOrderDocument))
		case item.ReferenceText.Present:
			appendTextList(cell, item.ReferenceText.Entries)
		default:
			placeholder(cell)
		}

		audioCell(row, "Output", item.OutputAudio)
		labeledAudioCell(row, item.BaselineAudio, cfg.BaselineOrder)
	}
}

func buildDurationTable(container *etree.Element, rows []showcase.DurationExample, cfg *config.PageConfig) {
	tbody := createTable(container, durationHeaders)

	for i, item := range rows {
		text := segment.ParseDuration(item.Text)

		row := tbody.CreateElement("tr")
		if cfg.RowAnchors {
			row.CreateAttr("id", rowAnchor(showcase.TableDuration, i, text.PlainText()))
		}

		appendDurationText(row.CreateElement("td"), text)
		audioCell(row, "Reference", item.ReferenceAudio)
		audioCell(row, "Original", item.OriginalAudio)
		audioCell(row, "Output", item.OutputAudio)
		labeledAudioCell(row, item.BaselineAudio, cfg.BaselineOrder)
	}
}
