// Package source obtains data document: from local file, from file inside zip
// archive or over http.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"showcase/archive"
	"showcase/showcase"
)

// maximum size of data document we are willing to read over network
const maxRemoteSize = 32 << 20

// StatusError is returned when server responded with anything but success.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to load examples: %d", e.Code)
}

// Options controls fetching.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Client is used for remote locations, http.DefaultClient when nil.
	Client *http.Client
}

// Origin describes where document came from.
type Origin struct {
	Location string
	Remote   bool
	// Archive and Inner are set when document was read from zip archive.
	Archive string
	Inner   string
}

// Name returns short name suitable for displaying.
func (o Origin) Name() string {
	switch {
	case o.Remote:
		if i := strings.LastIndexByte(o.Location, '/'); i >= 0 && i < len(o.Location)-1 {
			name := o.Location[i+1:]
			if j := strings.IndexAny(name, "?#"); j >= 0 {
				name = name[:j]
			}
			return name
		}
		return o.Location
	case len(o.Inner) > 0:
		return filepath.Base(filepath.FromSlash(o.Inner))
	default:
		return filepath.Base(o.Location)
	}
}

// Watchable returns local file to watch for changes, empty for remote.
func (o Origin) Watchable() string {
	switch {
	case o.Remote:
		return ""
	case len(o.Archive) > 0:
		return o.Archive
	default:
		return o.Location
	}
}

// IsRemote reports if location has to be fetched over network.
func IsRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Resolve determines document origin without reading it.
func Resolve(location string) (Origin, error) {
	if IsRemote(location) {
		return Origin{Location: location, Remote: true}, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return Origin{}, err
	}
	outer, inner, err := archive.Split(abs)
	if err != nil {
		return Origin{}, fmt.Errorf("input source was not found: %w", err)
	}
	if len(inner) > 0 {
		return Origin{Location: abs, Archive: outer, Inner: inner}, nil
	}
	return Origin{Location: abs}, nil
}

// Result of a single load.
type Result struct {
	Origin Origin
	Raw    []byte
	Doc    *showcase.Document
}

// Load reads and decodes document. No retries are attempted.
func Load(ctx context.Context, location string, opts Options, log *zap.Logger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	origin, err := Resolve(location)
	if err != nil {
		return nil, err
	}

	var raw []byte
	switch {
	case origin.Remote:
		raw, err = fetch(ctx, origin.Location, opts, log)
	case len(origin.Archive) > 0:
		log.Debug("Reading from archive", zap.String("archive", origin.Archive), zap.String("path", origin.Inner))
		raw, err = archive.ReadFile(origin.Archive, origin.Inner)
	default:
		fi, serr := os.Stat(origin.Location)
		if serr == nil && fi.IsDir() {
			return nil, fmt.Errorf("input source is a directory: %s", origin.Location)
		}
		raw, err = os.ReadFile(origin.Location)
	}
	if err != nil {
		return nil, err
	}

	doc, err := showcase.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	log.Debug("Examples loaded",
		zap.String("from", origin.Location), zap.Int("emotion", len(doc.Emotion)), zap.Int("duration", len(doc.Duration)))
	return &Result{Origin: origin, Raw: raw, Doc: doc}, nil
}

func fetch(ctx context.Context, url string, opts Options, log *zap.Logger) ([]byte, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if len(opts.UserAgent) > 0 {
		req.Header.Set("User-Agent", opts.UserAgent)
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	log.Debug("Fetching examples", zap.String("url", url))
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read response: %w", err)
	}
	if len(data) > maxRemoteSize {
		return nil, fmt.Errorf("response is too large, over %d bytes", maxRemoteSize)
	}
	return data, nil
}
