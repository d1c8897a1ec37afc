package generate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"showcase/source"
	"showcase/state"
)

// watchAndProcess renders page and then keeps regenerating it every time
// source document or custom stylesheet changes, until ctx is canceled.
func watchAndProcess(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	origin, err := source.Resolve(src)
	if err != nil {
		return err
	}
	if origin.Watchable() == "" {
		return fmt.Errorf("unable to watch remote source %s", src)
	}

	files := []string{origin.Watchable()}
	if env.Cfg.Page.StylesheetPath != "" {
		files = append(files, env.Cfg.Page.StylesheetPath)
	}

	if err := process(ctx, src, dst, env, log); err != nil {
		if errors.Is(err, ErrOutputExists) || ctx.Err() != nil {
			return err
		}
		log.Error("Unable to render page", zap.Error(err))
	}
	// from now on we are replacing our own output
	env.Overwrite = true

	return watch(ctx, files, env.Cfg.Watch.Debounce, log, func() {
		if err := loadStylesheet(env); err != nil {
			log.Error("Unable to reload stylesheet", zap.Error(err))
			return
		}
		if err := process(ctx, src, dst, env, log); err != nil {
			log.Error("Unable to render page", zap.Error(err))
		}
	})
}

// watch calls fn once changes to any of files settle for debounce period.
// Parent directories are watched since editors often replace files instead of
// writing them in place. Returns nil when ctx is canceled.
func watch(ctx context.Context, files []string, debounce time.Duration, log *zap.Logger, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}
	defer w.Close()

	targets := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f, err = filepath.Abs(f); err != nil {
			return err
		}
		targets[f] = struct{}{}
		dir := filepath.Dir(f)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("unable to watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}
	log.Info("Watching for changes", zap.Strings("files", files), zap.Duration("debounce", debounce))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("Watching stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if _, ok := targets[filepath.Clean(ev.Name)]; !ok {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				log.Debug("Ignoring event", zap.Stringer("event", ev))
				continue
			}
			log.Debug("Change detected", zap.Stringer("event", ev))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			fn()
		}
	}
}
