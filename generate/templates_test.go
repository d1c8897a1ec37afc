package generate

import (
	"testing"
	"time"

	"showcase/config"
	"showcase/showcase"
)

func TestExpandTemplate(t *testing.T) {
	doc := &showcase.Document{
		Emotion:  make([]showcase.EmotionExample, 3),
		Duration: make([]showcase.DurationExample, 2),
	}
	values := newValues(config.OutputNameTemplateFieldName, "data.json", doc, time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"simple text", "index", "index"},
		{"source file", "{{ .SourceFile }}", "data"},
		{"counts", "{{ .SourceFile }}-{{ .Emotion }}-{{ .Duration }}", "data-3-2"},
		{"date", "{{ .Date }}/index", "2026-03-08/index"},
		{"context", "{{ .Context }}", "output_name_template"},
		{"sprig", `{{ .SourceFile | upper }}{{ if gt .Duration 1 }}-many{{ end }}`, "DATA-many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(config.OutputNameTemplateFieldName, tt.tmpl, values)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_Errors(t *testing.T) {
	values := newValues(config.OutputNameTemplateFieldName, "data.json", nil, time.Now())
	if values.Emotion != 0 || values.Duration != 0 {
		t.Errorf("unexpected counts without document: %+v", values)
	}

	if _, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .SourceFile ", values); err == nil {
		t.Error("expected parse error")
	}
	if _, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .Missing }}", values); err == nil {
		t.Error("expected execution error for unknown field")
	}
}
