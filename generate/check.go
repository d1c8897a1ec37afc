package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"showcase/archive"
	"showcase/showcase"
	"showcase/source"
	"showcase/state"
)

// filetype needs that much to recognize any of known formats
const headerSize = 262

// Check is the check subcommand action. It verifies that every audio file
// document references exists and looks like audio.
func Check(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		src = env.Cfg.Page.DefaultSource
	}

	root := cmd.String("root")
	if len(root) == 0 {
		if root, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if root, err = filepath.Abs(root); err != nil {
		return err
	}

	res, err := source.Load(ctx, src, source.Options{Timeout: env.Cfg.Fetch.Timeout, UserAgent: env.Cfg.Fetch.UserAgent}, log)
	if err != nil {
		return fmt.Errorf("unable to load examples: %w", err)
	}
	env.Rpt.StoreData("source-"+res.Origin.Name(), res.Raw)

	// Audio references are relative to site root. When document came from
	// archive we assume archive is the site.
	var p prober = dirProber(root)
	if len(res.Origin.Archive) > 0 {
		p = archiveProber(res.Origin.Archive)
	}

	refs := res.Doc.AudioRefs()
	log.Info("Checking audio references", zap.Int("count", len(refs)), zap.String("root", p.String()), zap.Int("workers", env.Cfg.Check.Workers))
	defer func(start time.Time) {
		log.Info("Checking completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := checkRefs(ctx, refs, p, env.Cfg.Check.Workers, log); err != nil {
		for _, e := range multierr.Errors(err) {
			log.Error("Bad audio reference", zap.Error(e))
		}
		return fmt.Errorf("%d bad audio reference(s) found", len(multierr.Errors(err)))
	}
	return nil
}

// checkRefs probes all references concurrently. Returned error combines
// problems in document order.
func checkRefs(ctx context.Context, refs []showcase.AudioRef, p prober, workers int, log *zap.Logger) error {
	problems := make([]error, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name, remote, err := refPath(ref.URL)
			switch {
			case err != nil:
			case remote:
				log.Debug("Skipping remote reference", zap.Stringer("ref", ref), zap.String("url", ref.URL))
				return nil
			default:
				err = probe(p, name)
			}
			if err != nil {
				problems[i] = fmt.Errorf("%s: %w", ref, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return multierr.Combine(problems...)
}

// refPath converts URL from document into slash separated path relative to
// site root.
func refPath(ref string) (string, bool, error) {
	if source.IsRemote(ref) || strings.HasPrefix(ref, "//") {
		return "", true, nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", false, fmt.Errorf("bad url %q: %w", ref, err)
	}
	if len(u.Scheme) > 0 {
		// data:, blob: or anything else we could not look at
		return "", true, nil
	}
	name := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	if len(name) == 0 {
		return "", false, fmt.Errorf("empty path in url %q", ref)
	}
	return name, false, nil
}

func probe(p prober, name string) error {
	head, err := p.head(name)
	if err != nil {
		return err
	}
	if len(head) == 0 {
		return errors.New("file is empty")
	}
	if !filetype.IsAudio(head) {
		if kind, _ := filetype.Match(head); kind != filetype.Unknown {
			return fmt.Errorf("not an audio file (%s)", kind.MIME.Value)
		}
		return errors.New("not an audio file")
	}
	return nil
}

type prober interface {
	head(name string) ([]byte, error)
	String() string
}

type dirProber string

func (d dirProber) head(name string) ([]byte, error) {
	f, err := os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, headerSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

func (d dirProber) String() string {
	return string(d)
}

type archiveProber string

func (a archiveProber) head(name string) ([]byte, error) {
	return archive.ReadHead(string(a), name, headerSize)
}

func (a archiveProber) String() string {
	return string(a)
}
