// Package archive builds Walk abstraction on top of "archive/zip" and allows
// addressing files inside archives with regular looking paths:
// "site.zip/examples/data.json".
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when requested file is not present in archive.
var ErrNotFound = errors.New("not found in archive")

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk walks all files in the archive which names start with prefix, calling
// walkFn for each item. Archives with path traversal components ("..") or
// absolute paths in entry names are rejected.
func Walk(archive, prefix string, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, prefix) {
			if err := walkFn(archive, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// errStop is used to end walk early, never returned to callers.
var errStop = errors.New("stop")

// ReadFile returns content of a single file inside archive.
func ReadFile(archive, name string) ([]byte, error) {
	return ReadHead(archive, name, 0)
}

// ReadHead returns up to limit first bytes of a file inside archive, whole
// file when limit is not positive.
func ReadHead(archive, name string, limit int64) ([]byte, error) {
	name = path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "/"))

	var data []byte
	err := Walk(archive, name, func(_ string, f *zip.File) error {
		if f.Name != name {
			return nil
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		var r io.Reader = rc
		if limit > 0 {
			r = io.LimitReader(rc, limit)
		}
		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, r); err != nil {
			return err
		}
		data = buf.Bytes()
		return errStop
	})
	switch {
	case errors.Is(err, errStop):
		return data, nil
	case err != nil:
		return nil, err
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Split finds longest existing prefix of location and, if it is a zip
// archive, returns archive path and path inside it. When location points to
// regular file or directory inner is empty. Location which does not exist at
// all returns os.ErrNotExist.
func Split(location string) (outer, inner string, err error) {
	location = strings.TrimSuffix(location, string(filepath.Separator))
	for head := location; len(head) != 0; head, _ = filepath.Split(head) {
		head = strings.TrimSuffix(head, string(filepath.Separator))
		if len(head) == 0 {
			break
		}

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}
		if head == location {
			return location, "", nil
		}
		if !fi.Mode().IsRegular() {
			// directory cannot have tail - it would be simple file
			return "", "", fmt.Errorf("%s: %w", location, os.ErrNotExist)
		}

		arc, err := IsArchive(head)
		if err != nil {
			return "", "", err
		}
		if !arc {
			return "", "", fmt.Errorf("%s is not an archive", head)
		}
		inner = strings.TrimPrefix(strings.TrimPrefix(location, head), string(filepath.Separator))
		return head, filepath.ToSlash(inner), nil
	}
	return "", "", fmt.Errorf("%s: %w", location, os.ErrNotExist)
}

// IsArchive checks zip signature.
func IsArchive(fname string) (bool, error) {
	f, err := os.Open(fname)
	if err != nil {
		return false, err
	}
	defer f.Close()

	sig := make([]byte, 4)
	if _, err := io.ReadFull(f, sig); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(sig, []byte("PK\x03\x04")), nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
