package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FilesystemStore keeps paste content as plain files under an upload root.
// The root (and its url/ subdirectory) must exist before writes; missing
// directories surface as ordinary I/O errors.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates a filesystem storage backend rooted at dir.
func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory must not be empty")
	}
	return &FilesystemStore{root: dir}, nil
}

// Root returns the upload root directory.
func (fs *FilesystemStore) Root() string {
	return fs.root
}

func (fs *FilesystemStore) Put(name string, content []byte) error {
	path := filepath.Join(fs.root, filepath.FromSlash(name))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		log.Printf("[ERROR] FS Put: failed to write %s: %v", name, err)
		return err
	}
	return nil
}

func (fs *FilesystemStore) Get(name string) ([]byte, error) {
	path := filepath.Join(fs.root, filepath.FromSlash(name))
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (fs *FilesystemStore) Exists(name string) (bool, error) {
	path := filepath.Join(fs.root, filepath.FromSlash(name))
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (fs *FilesystemStore) Close() error {
	return nil
}
