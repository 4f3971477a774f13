// Package avatar stores account avatar images on local disk.
package avatar

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const DefaultName = "default.png"

type Store struct {
	dir string
	log *slog.Logger
}

func NewStore(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating avatar dir: %w", err)
	}

	if log == nil {
		log = slog.Default()
	}

	return &Store{dir: dir, log: log}, nil
}

// Save writes the uploaded image under a fresh name and returns that name.
// The original extension is kept so the content type can be derived on read.
func (s *Store) Save(originalFilename string, r io.Reader) (string, error) {
	ext := filepath.Ext(originalFilename)
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating avatar file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing avatar file: %w", err)
	}

	return name, nil
}

// Open returns the stored avatar, falling back to the default image when the
// requested file is missing or the name tries to escape the avatar dir.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, "default") {
		name = DefaultName
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if os.IsNotExist(err) && name != DefaultName {
		return os.Open(filepath.Join(s.dir, DefaultName))
	}

	return f, err
}

// Prune deletes avatar files no account references anymore. Ran periodically;
// failures are logged and skipped so one bad file does not stop the sweep.
func (s *Store) Prune(needed map[string]struct{}) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Error("reading avatar dir", "error", err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "default.") {
			continue
		}

		if _, ok := needed[name]; ok {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			s.log.Error("deleting unused avatar", "file", name, "error", err)
			continue
		}

		s.log.Info("deleted unused avatar", "file", name)
	}
}
