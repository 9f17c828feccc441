package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// FileKVRepository keeps one file per key under dir, the local-storage
// equivalent for the desktop build.
type FileKVRepository struct {
	dir string
}

func NewFileKVRepository(dir string) (*FileKVRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileKVRepository{dir: dir}, nil
}

func (r *FileKVRepository) path(key string) string {
	return filepath.Join(r.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (r *FileKVRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrBlankKey
	}
	b, err := os.ReadFile(r.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrKeyNotFound
	} else if err != nil {
		return "", err
	}
	return string(b), nil
}

// Set writes through a temp file and renames it so readers never see a partial value.
func (r *FileKVRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrBlankKey
	}
	tmp, err := os.CreateTemp(r.dir, ".kv-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path(key))
}

func (r *FileKVRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrBlankKey
	}
	err := os.Remove(r.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
