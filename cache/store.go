package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:generate mockgen -destination=storemocks_test.go -package=cache_test github.com/statlab/statlab-cli/cache Store
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Purge() error
	Stats() (Stats, error)
}

func NewFileStore(baseDir string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
	}
}

// Ensure FileStore implements the Store interface
var _ Store = &FileStore{}

type FileStore struct {
	baseDir string
}

func (f *FileStore) Get(key string) ([]byte, error) {
	path := f.pathForKey(key)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (f *FileStore) Set(key string, value []byte) error {
	if err := f.ensureBaseDir(); err != nil {
		return err
	}

	dst := f.pathForKey(key)

	// Write to a temp file in the same directory so rename is atomic.
	tmp, err := os.CreateTemp(f.baseDir, fmt.Sprintf(".%s.*.tmp", key))
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Clean up temp file on failure.
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(value); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Atomic replace on POSIX; on Windows, Rename may fail if dst exists.
	// Best effort: remove dst first if needed.
	if err := os.Rename(tmpName, dst); err != nil {
		if errors.Is(err, os.ErrExist) || errors.Is(err, os.ErrPermission) {
			_ = os.Remove(dst)
			return os.Rename(tmpName, dst)
		}
		return err
	}

	return nil
}

func (f *FileStore) Delete(key string) error {
	path := f.pathForKey(key)
	err := os.Remove(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Purge removes every record in the base directory. Purging a directory that
// was never created succeeds silently.
func (f *FileStore) Purge() error {
	records, err := f.listRecords()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, record := range records {
		if err := os.Remove(filepath.Join(f.baseDir, record)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return nil
}

func (f *FileStore) Stats() (Stats, error) {
	result := Stats{Directory: f.baseDir}

	records, err := f.listRecords()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, nil
		}
		return result, err
	}

	for _, record := range records {
		info, err := os.Stat(filepath.Join(f.baseDir, record))
		if err != nil {
			continue
		}
		result.Count++
		result.TotalBytes += info.Size()
	}

	return result, nil
}

func (f *FileStore) listRecords() ([]string, error) {
	entries, err := os.ReadDir(f.baseDir)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		result = append(result, entry.Name())
	}

	return result, nil
}

func (f *FileStore) ensureBaseDir() error {
	// 0700: single-user CLI cache
	return os.MkdirAll(f.baseDir, 0o700)
}

func (f *FileStore) pathForKey(key string) string {
	// key is sanitized by the cache layer before it gets here
	return filepath.Join(f.baseDir, key+".json")
}
