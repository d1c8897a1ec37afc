// Package generate implements render and check subcommands.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"showcase/config"
	"showcase/page"
	"showcase/segment"
	"showcase/showcase"
	"showcase/source"
	"showcase/state"
)

// ErrOutputExists is returned when page would overwrite existing file without
// permission.
var ErrOutputExists = errors.New("output file already exists")

// Run is the render subcommand action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		src = env.Cfg.Page.DefaultSource
		log.Debug("No input source has been specified, using default", zap.String("source", src))
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")
	if err := loadStylesheet(env); err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if cmd.Bool("watch") {
		return watchAndProcess(ctx, src, dst, env, log)
	}
	return process(ctx, src, dst, env, log)
}

func loadStylesheet(env *state.LocalEnv) error {
	env.Stylesheet = page.DefaultStylesheet
	if env.Cfg.Page.StylesheetPath != "" {
		data, err := os.ReadFile(env.Cfg.Page.StylesheetPath)
		if err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", env.Cfg.Page.StylesheetPath, err)
		}
		env.Stylesheet = data
	}
	return nil
}

// process loads document from src and writes page and stylesheet into dst.
// When document could not be loaded page reporting the problem is still
// written and load error is returned.
func process(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	cfg := &env.Cfg.Page

	res, lerr := source.Load(ctx, src, source.Options{Timeout: env.Cfg.Fetch.Timeout, UserAgent: env.Cfg.Fetch.UserAgent}, log)
	if lerr != nil && ctx.Err() != nil {
		return lerr
	}

	var (
		doc  *showcase.Document
		name string
	)
	if lerr == nil {
		doc, name = res.Doc, res.Origin.Name()
		if env.Rpt != nil {
			env.Rpt.StoreData("source-"+name, res.Raw)
			env.Rpt.StoreData("segments.txt", []byte(dumpSegments(doc)))
		}
	} else {
		name = source.Origin{Location: src, Remote: source.IsRemote(src)}.Name()
	}

	outputName := buildOutputPath(cfg.OutputNameTemplate, newValues(config.OutputNameTemplateFieldName, name, doc, time.Now()), dst, log)
	href := stylesheetHref(outputName, dst, cfg.StylesheetName)

	var (
		d   *etree.Document
		err error
	)
	if lerr != nil {
		log.Error("Unable to load examples", zap.String("source", src), zap.Error(lerr))
		d = page.BuildFailure(name, lerr, cfg, href, log)
	} else if d, err = page.Build(ctx, doc, cfg, href, log); err != nil {
		return fmt.Errorf("unable to build page: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := page.Write(buf, d); err != nil {
		return fmt.Errorf("unable to serialize page: %w", err)
	}
	if err := writeOutput(outputName, buf.Bytes(), env.Overwrite, log); err != nil {
		return err
	}
	if err := writeOutput(filepath.Join(dst, cfg.StylesheetName), env.Stylesheet, env.Overwrite, log); err != nil {
		return err
	}
	log.Info("Page written", zap.String("to", outputName))

	// Store result for debugging
	if rel, err := filepath.Rel(dst, outputName); err == nil {
		env.Rpt.Store("result/"+filepath.ToSlash(rel), outputName)
	}

	if lerr != nil {
		return fmt.Errorf("unable to load examples: %w", lerr)
	}
	return nil
}

// dumpSegments describes how every duration text was parsed.
func dumpSegments(doc *showcase.Document) string {
	var b strings.Builder
	for i, item := range doc.Duration {
		fmt.Fprintf(&b, "%s[%d]: %s\n", showcase.TableDuration, i, strconv.Quote(item.Text))
		segment.ParseDuration(item.Text).Dump(&b, 1)
	}
	return b.String()
}

// writeOutput does not touch file which already has requested content.
func writeOutput(path string, data []byte, overwrite bool, log *zap.Logger) error {
	if existing, err := os.ReadFile(path); err == nil {
		if bytes.Equal(existing, data) {
			log.Debug("File is up to date", zap.String("file", path))
			return nil
		}
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
		log.Warn("Overwriting existing file", zap.String("file", path))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}
