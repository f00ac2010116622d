package storage

import (
	"context"
	"os"
	"path/filepath"

	"parking-lot-service/pkg/validator"

	"github.com/pkg/errors"
)

type FileStore interface {
	// Exists reports whether an uploaded file with this name is present.
	Exists(ctx context.Context, name string) (bool, error)
}

type LocalFileStore struct {
	dir string
}

func NewLocalFileStore(dir string) FileStore {
	return &LocalFileStore{dir: dir}
}

func (s *LocalFileStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	// names that could climb out of dir never exist
	if !validator.IsFileName(name) {
		return false, nil
	}

	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "stat uploaded file")
	}

	return !info.IsDir(), nil
}
