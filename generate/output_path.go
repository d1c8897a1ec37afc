package generate

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"showcase/config"
)

const (
	defaultPageName = "index"
	pageExt         = ".html"
)

// buildOutputPath returns page file path. Name is expanded from user-defined
// template, which may contain path separators for subdirectories. Every path
// segment is cleaned so result always stays under dst.
func buildOutputPath(tmpl string, values Values, dst string, log *zap.Logger) string {
	if tmpl == "" {
		return filepath.Join(dst, defaultPageName+pageExt)
	}

	expanded, err := expandTemplate(config.OutputNameTemplateFieldName, tmpl, values)
	if err != nil {
		log.Warn("Unable to prepare output filename, using default", zap.Error(err))
		return filepath.Join(dst, defaultPageName+pageExt)
	}

	segments := splitAndCleanPath(filepath.FromSlash(strings.TrimSpace(expanded)))
	if len(segments) == 0 {
		// fallback to default name if template expanded to nothing
		return filepath.Join(dst, defaultPageName+pageExt)
	}

	last := len(segments) - 1
	segments[last] = strings.TrimSuffix(segments[last], pageExt) + pageExt
	return filepath.Join(append([]string{dst}, segments...)...)
}

func splitAndCleanPath(path string) []string {
	segments := make([]string, 0, 8)
	for _, s := range strings.Split(path, string(filepath.Separator)) {
		s = strings.TrimSpace(s)
		if s == "" || s == "." || s == ".." {
			continue
		}
		segments = append(segments, config.CleanFileName(s))
	}
	return segments
}

// stylesheetHref returns link to stylesheet placed in dst relative to the page.
func stylesheetHref(page, dst, name string) string {
	rel, err := filepath.Rel(filepath.Dir(page), filepath.Join(dst, name))
	if err != nil {
		return name
	}
	return filepath.ToSlash(rel)
}
