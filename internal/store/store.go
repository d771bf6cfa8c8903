// Package store manages the transient storage area shared by uploads,
// extracted audio, transcript artifacts and generated clips. Nothing in here
// is durable; the directory is operator-managed.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	root string
}

func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{root: abs}, nil
}

func (s *Store) Root() string { return s.root }

// SanitizeName reduces an untrusted filename to alphanumerics and dots;
// everything else becomes an underscore. The result is safe to embed in a
// storage path.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Save writes the reader's contents under the sanitized name, prefixed with
// the request identifier like every other artifact, and returns the stored
// name, full path and byte size. The prefix keeps concurrent uploads of the
// same filename from overwriting each other on the shared storage area.
func (s *Store) Save(requestID, name string, r io.Reader) (string, string, int64, error) {
	safe := SanitizeName(name)
	if safe == "" || strings.Trim(safe, "._") == "" {
		safe = "upload.bin"
	}
	if requestID != "" {
		safe = "upload_" + SanitizeName(requestID) + "_" + safe
	}
	path := filepath.Join(s.root, safe)
	f, err := os.Create(path)
	if err != nil {
		return "", "", 0, fmt.Errorf("create %s: %w", safe, err)
	}
	defer f.Close()
	n, err := io.Copy(f, r)
	if err != nil {
		return "", "", 0, fmt.Errorf("write %s: %w", safe, err)
	}
	return safe, path, n, nil
}

// WriteFile stores a small artifact (e.g. the transcript JSON) under the
// given name.
func (s *Store) WriteFile(name string, b []byte) (string, error) {
	path := filepath.Join(s.root, SanitizeName(name))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Resolve maps a requested filename back to a path inside the storage root.
// Only the base name is honored, and the resolved path must stay inside the
// root, so traversal attempts come back as not-found.
func (s *Store) Resolve(name string) (string, error) {
	base := filepath.Base(filepath.FromSlash(name))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", os.ErrNotExist
	}
	path := filepath.Join(s.root, base)
	if !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return "", os.ErrNotExist
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", os.ErrNotExist
	}
	if info.IsDir() {
		return "", os.ErrNotExist
	}
	return path, nil
}

// ContentType derives a response content type from the file extension,
// defaulting to an opaque binary type.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
