package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aegisedu/campus-portal/internal"
)

// LocalStore keeps uploaded resource files in a flat directory on disk.
// Stored names are sanitized filenames, never paths. A name collision
// overwrites the previous file: last writer wins.
type LocalStore struct {
	dir     string
	maxSize int64
	allowed map[string]struct{}
}

func NewLocalStore(dir string, maxSize int64, allowedExts []string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	allowed := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &LocalStore{dir: dir, maxSize: maxSize, allowed: allowed}, nil
}

// Dir returns the directory files are stored under.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Ext returns the lowercased substring after the final dot. A name without
// any dot carries no extension and is reported as such.
func Ext(name string) (string, bool) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", false
	}
	return strings.ToLower(name[idx+1:]), true
}

// Sanitize strips directory components and collapses every character
// outside [A-Za-z0-9._-] to an underscore. Leading dots are dropped so a
// stored name can never be hidden or a relative path.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return strings.TrimLeft(b.String(), ".")
}

// Save validates and writes an upload, returning the stored filename. The
// declared size and the actual bytes read are both held to the cap.
func (s *LocalStore) Save(name string, size int64, r io.Reader) (string, error) {
	if size > s.maxSize {
		return "", internal.ErrFileTooLarge
	}

	ext, ok := Ext(name)
	if !ok {
		return "", internal.ErrDisallowedExtension
	}
	if _, allowed := s.allowed[ext]; !allowed {
		return "", internal.ErrDisallowedExtension
	}

	stored := Sanitize(name)
	if stored == "" {
		return "", internal.ErrUnsafeFilename
	}

	dst := filepath.Join(s.dir, stored)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}
	if written > s.maxSize {
		_ = os.Remove(dst)
		return "", internal.ErrFileTooLarge
	}

	return stored, nil
}

// Path resolves a stored filename to its location inside the store
// directory. The name is re-sanitized so path segments in the request
// cannot escape the directory.
func (s *LocalStore) Path(name string) (string, error) {
	stored := Sanitize(name)
	if stored == "" {
		return "", internal.ErrFileNotFound
	}

	p := filepath.Join(s.dir, stored)
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return "", internal.ErrFileNotFound
		}
		return "", fmt.Errorf("stat file: %w", err)
	}
	return p, nil
}

// Remove deletes a stored file. A missing file counts as success so delete
// flows stay idempotent.
func (s *LocalStore) Remove(name string) error {
	stored := Sanitize(name)
	if stored == "" {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, stored)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
