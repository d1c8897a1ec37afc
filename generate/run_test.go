package generate

import (
	"archive/zip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"showcase/config"
	"showcase/page"
	"showcase/showcase"
	"showcase/state"
)

const testDocument = `{
  "emotion": [{"emotion_sequence": "happy -> sad", "text": "a | b", "output_audio": "audio/out.wav"}],
  "duration": [{"text": "say [this (2x)] slowly", "output_audio": "audio/d.wav"}]
}`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	env.Stylesheet = page.DefaultStylesheet
	return ctx, env
}

func writeSource(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestProcess(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeSource(t, t.TempDir(), testDocument)
	dst := t.TempDir()

	if err := process(ctx, src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	out := readFile(t, filepath.Join(dst, "index.html"))
	for _, want := range []string{
		`<div id="emotion-table">`,
		`<div id="duration-table">`,
		`<span class="duration-badge">2x</span>`,
		`<link rel="stylesheet" href="style.css">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
	if css := readFile(t, filepath.Join(dst, "style.css")); css != string(page.DefaultStylesheet) {
		t.Error("stylesheet content mismatch")
	}

	// same content again is fine without overwrite
	if err := process(ctx, src, dst, env, env.Log); err != nil {
		t.Fatalf("process() repeated error = %v", err)
	}

	// changed content requires overwrite
	writeSource(t, filepath.Dir(src), `{"emotion": [], "duration": []}`)
	if err := process(ctx, src, dst, env, env.Log); !errors.Is(err, ErrOutputExists) {
		t.Fatalf("process() error = %v, want ErrOutputExists", err)
	}
	env.Overwrite = true
	if err := process(ctx, src, dst, env, env.Log); err != nil {
		t.Fatalf("process() with overwrite error = %v", err)
	}
	if out := readFile(t, filepath.Join(dst, "index.html")); strings.Contains(out, "duration-badge") {
		t.Error("page has not been overwritten")
	}
}

func TestProcess_Template(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.Cfg.Page.OutputNameTemplate = "pages/{{ .SourceFile }}-{{ .Duration }}"
	src := writeSource(t, t.TempDir(), testDocument)
	dst := t.TempDir()

	if err := process(ctx, src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	out := readFile(t, filepath.Join(dst, "pages", "data-1.html"))
	if !strings.Contains(out, `href="../style.css"`) {
		t.Error("stylesheet link is not relative to page")
	}
}

func TestProcess_LoadFailure(t *testing.T) {
	ctx, env := setupTestEnv(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	dst := t.TempDir()

	err := process(ctx, srv.URL+"/examples/data.json", dst, env, env.Log)
	if err == nil || !strings.Contains(err.Error(), "unable to load examples") {
		t.Fatalf("process() error = %v", err)
	}
	out := readFile(t, filepath.Join(dst, "index.html"))
	if !strings.Contains(out, "Unable to load data.json: failed to load examples: 404") {
		t.Error("failure page does not contain load error")
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, env := setupTestEnv(t)
	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()

	dst := t.TempDir()
	if err := process(cancelCtx, writeSource(t, t.TempDir(), testDocument), dst, env, env.Log); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "index.html")); !os.IsNotExist(err) {
		t.Error("page must not be written when cancelled")
	}
}

func TestRun(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeSource(t, t.TempDir(), testDocument)
	dst := filepath.Join(t.TempDir(), "site")

	css := filepath.Join(t.TempDir(), "custom.css")
	if err := os.WriteFile(css, []byte("body { color: red; }"), 0644); err != nil {
		t.Fatal(err)
	}
	env.Cfg.Page.StylesheetPath = css

	cmd := &cli.Command{
		Name: "render",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "overwrite"},
			&cli.BoolFlag{Name: "watch"},
		},
		Action: Run,
	}
	if err := cmd.Run(ctx, []string{"render", "--overwrite", src, dst}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !env.Overwrite {
		t.Error("overwrite flag was not propagated")
	}
	if got := readFile(t, filepath.Join(dst, "style.css")); got != "body { color: red; }" {
		t.Errorf("stylesheet = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "index.html")); err != nil {
		t.Errorf("page was not written: %v", err)
	}
}

func TestDumpSegments(t *testing.T) {
	doc := &showcase.Document{Duration: []showcase.DurationExample{{Text: "a [b (3x)]"}, {}}}
	want := `duration[0]: "a [b (3x)]"
  run: "a "
  annotation: "b" badge="3x"
duration[1]: ""
  placeholder: "-"
`
	if got := dumpSegments(doc); got != want {
		t.Errorf("dumpSegments() = %q, want %q", got, want)
	}
}

func TestProcess_Report(t *testing.T) {
	ctx, env := setupTestEnv(t)
	rptPath := filepath.Join(t.TempDir(), "report.zip")
	rpt, err := (&config.ReporterConfig{Destination: rptPath}).Prepare()
	if err != nil {
		t.Fatal(err)
	}
	env.Rpt = rpt

	if err := process(ctx, writeSource(t, t.TempDir(), testDocument), t.TempDir(), env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := zip.OpenReader(rptPath)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	names := make(map[string]bool)
	for _, f := range r.File {
		names[f.Name] = true
	}
	for _, want := range []string{"source-data.json", "segments.txt", "result/index.html"} {
		if !names[want] {
			t.Errorf("report does not contain %s, has %v", want, names)
		}
	}
}
