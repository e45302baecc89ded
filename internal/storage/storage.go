package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/afero"
)

// ErrBadHandle is returned for handles that are not open
var ErrBadHandle = errors.New("bad storage handle")

// Handle identifies a file opened through a Storage
type Handle int

// Storage opens, sizes, reads and closes named files
type Storage interface {
	Open(name string) (Handle, error)
	SizeOf(h Handle) (int64, error)
	Read(h Handle, buf []byte) (int, error)
	Close(h Handle) error
	Exists(name string) bool
}

// FileStorage resolves names under a base directory of an afero.Fs.
// It is safe for concurrent use.
type FileStorage struct {
	fs afero.Fs

	mu    sync.Mutex
	next  Handle
	files map[Handle]afero.File
}

// New creates a FileStorage rooted at dir on fs. An empty dir uses fs as is.
func New(fs afero.Fs, dir string) *FileStorage {
	if dir != "" && dir != "." {
		fs = afero.NewBasePathFs(fs, dir)
	}
	return &FileStorage{
		fs:    fs,
		next:  1,
		files: make(map[Handle]afero.File),
	}
}

// NewOsStorage creates a FileStorage over the operating system file system
func NewOsStorage(dir string) *FileStorage {
	return New(afero.NewOsFs(), dir)
}

// NewMemStorage creates a FileStorage over an in-memory file system
func NewMemStorage() *FileStorage {
	return New(afero.NewMemMapFs(), "")
}

// Fs returns the underlying file system
func (s *FileStorage) Fs() afero.Fs {
	return s.fs
}

// Open opens name read-only
func (s *FileStorage) Open(name string) (Handle, error) {
	f, err := s.fs.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.next
	s.next++
	s.files[h] = f
	return h, nil
}

// SizeOf returns the size in bytes of the file behind h
func (s *FileStorage) SizeOf(h Handle) (int64, error) {
	f, err := s.file(h)
	if err != nil {
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s is a directory", info.Name())
	}
	return info.Size(), nil
}

// Read fills buf from the file behind h. A file shorter than buf is
// reported through the returned count, not as an error.
func (s *FileStorage) Read(h Handle, buf []byte) (int, error) {
	f, err := s.file(h)
	if err != nil {
		return 0, err
	}
	n, err := io.ReadFull(f, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, nil
	}
	return n, err
}

// Close closes h and forgets it
func (s *FileStorage) Close(h Handle) error {
	s.mu.Lock()
	f, ok := s.files[h]
	delete(s.files, h)
	s.mu.Unlock()

	if !ok {
		return ErrBadHandle
	}
	return f.Close()
}

// Exists reports whether name exists
func (s *FileStorage) Exists(name string) bool {
	ok, err := afero.Exists(s.fs, name)
	return err == nil && ok
}

// OpenCount returns the number of handles not yet closed
func (s *FileStorage) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

func (s *FileStorage) file(h Handle) (afero.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[h]
	if !ok {
		return nil, ErrBadHandle
	}
	return f, nil
}
