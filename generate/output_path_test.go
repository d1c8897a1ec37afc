package generate

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestBuildOutputPath(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
	values := Values{SourceFile: "data", Date: "2026-03-08"}
	dst := filepath.FromSlash("/output")

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"empty template", "", filepath.Join(dst, "index.html")},
		{"plain", "index", filepath.Join(dst, "index.html")},
		{"extension kept", "demo.html", filepath.Join(dst, "demo.html")},
		{"subdirectory", "{{ .Date }}/{{ .SourceFile }}", filepath.Join(dst, "2026-03-08", "data.html")},
		{"escape attempt", "../../{{ .SourceFile }}", filepath.Join(dst, "data.html")},
		{"whitespace only", "  ", filepath.Join(dst, "index.html")},
		{"bad template", "{{ .Nope", filepath.Join(dst, "index.html")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildOutputPath(tt.tmpl, values, dst, log); got != tt.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStylesheetHref(t *testing.T) {
	dst := filepath.FromSlash("/output")
	if got := stylesheetHref(filepath.Join(dst, "index.html"), dst, "style.css"); got != "style.css" {
		t.Errorf("stylesheetHref() = %q", got)
	}
	if got := stylesheetHref(filepath.Join(dst, "a", "b", "index.html"), dst, "style.css"); got != "../../style.css" {
		t.Errorf("stylesheetHref() = %q", got)
	}
}
