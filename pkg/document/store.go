package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/prefs/pkg/logging"
	"github.com/grovetools/prefs/pkg/settings"
	"github.com/sirupsen/logrus"
)

// Store persists values into a JSON document on disk.
type Store struct {
	path   string
	key    string
	perm   os.FileMode
	logger *logrus.Entry
}

// NewStore creates a store for the document at path. key is the property
// that SaveTree writes the preferences tree into.
func NewStore(path, key string) *Store {
	return &Store{
		path:   path,
		key:    key,
		perm:   0644,
		logger: logging.NewLogger("document"),
	}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Key returns the property SaveTree writes to.
func (s *Store) Key() string {
	return s.key
}

// Load reads the document. A missing file yields an empty object.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []byte("{}"), nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrIO, s.path, err)
	}
	return data, nil
}

// LoadTree reads the document and binds the preferences tree from it.
func (s *Store) LoadTree(ctx context.Context) (*settings.Tree, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	tree, err := settings.Load(data, s.key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return tree, nil
}

// Save replaces property key with value and writes the document back.
// The file is replaced atomically; a failure leaves the old content intact.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	current, err := s.Load(ctx)
	if err != nil {
		return err
	}

	updated, err := Update(current, key, value)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.writeAtomic(updated); err != nil {
		s.logger.WithFields(logrus.Fields{"path": s.path, "key": key, "error": err}).Error("Failed to write document")
		return err
	}

	s.logger.WithFields(logrus.Fields{"path": s.path, "key": key}).Info("Document updated")
	return nil
}

// SaveTree writes tree into the store's preferences property.
func (s *Store) SaveTree(ctx context.Context, tree *settings.Tree) error {
	return s.Save(ctx, s.key, tree)
}

func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory %s: %w", ErrIO, dir, err)
	}

	perm := s.perm
	if info, err := os.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file in %s: %w", ErrIO, dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to write %s: %w", ErrIO, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to sync %s: %w", ErrIO, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", ErrIO, tmpPath, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("%w: failed to chmod %s: %w", ErrIO, tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %w", ErrIO, s.path, err)
	}
	return nil
}
