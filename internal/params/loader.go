// Package params loads the startup parameters file and splits it into
// individually owned parameter entries.
//
// A List returned by Load owns one buffer per entry, each obtained from the
// loader's allocator. Callers hand it back with Release once they are done.
package params

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	apperrors "github.com/computerscienceiscool/ams-params/internal/errors"
	"github.com/computerscienceiscool/ams-params/internal/memory"
	"github.com/computerscienceiscool/ams-params/internal/storage"
)

// DefaultFileName is the name of the file holding startup parameters
const DefaultFileName = "ams_params.txt"

// Option configures a Loader
type Option func(*Loader)

// WithFileName overrides the parameters file name
func WithFileName(name string) Option {
	return func(l *Loader) {
		l.name = name
	}
}

// WithLogger sets the logger used for close failures and tracing
func WithLogger(entry *log.Entry) Option {
	return func(l *Loader) {
		if entry != nil {
			l.log = entry
		}
	}
}

// WithTrailingLine makes Load emit bytes after the last line feed as a
// final entry. By default they are dropped.
func WithTrailingLine(keep bool) Option {
	return func(l *Loader) {
		l.keepTail = keep
	}
}

// Loader reads the parameters file through a Storage and an Allocator.
// It holds no per-call state, so one Loader may serve concurrent calls
// when its collaborators are safe for concurrent use.
type Loader struct {
	store    storage.Storage
	alloc    memory.Allocator
	name     string
	keepTail bool
	log      *log.Entry
}

// New creates a Loader
func New(store storage.Storage, alloc memory.Allocator, opts ...Option) *Loader {
	l := &Loader{
		store: store,
		alloc: alloc,
		name:  DefaultFileName,
		log:   log.NewEntry(log.StandardLogger()),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FileName returns the name of the file Load reads
func (l *Loader) FileName() string {
	return l.name
}

// Load reads the whole parameters file and splits it into entries.
// On failure no list is returned and nothing allocated by the call is
// left outstanding.
func (l *Loader) Load() (*List, error) {
	if l == nil {
		return nil, &apperrors.LoadError{Op: "load", Name: DefaultFileName, Err: apperrors.ErrInvalidArguments}
	}
	if l.store == nil || l.alloc == nil || l.name == "" {
		return nil, l.fail("load", apperrors.ErrInvalidArguments)
	}

	h, err := l.store.Open(l.name)
	if err != nil {
		kind := apperrors.ErrIO
		if !l.store.Exists(l.name) {
			kind = apperrors.ErrNotFound
		}
		return nil, l.fail("open", fmt.Errorf("%w: %v", kind, err))
	}
	defer l.close(h)

	size, err := l.store.SizeOf(h)
	if err != nil {
		return nil, l.fail("size", fmt.Errorf("%w: %v", apperrors.ErrIO, err))
	}
	if size == 0 {
		return &List{alloc: l.alloc}, nil
	}
	if size < 0 {
		return nil, l.fail("size", fmt.Errorf("%w: negative file size %d", apperrors.ErrIO, size))
	}
	if int64(int(size)) != size {
		return nil, l.fail("size", fmt.Errorf("%w: file size %d not addressable", apperrors.ErrOutOfMemory, size))
	}

	buf, err := l.alloc.Allocate(int(size))
	if err != nil {
		return nil, l.fail("allocate", fmt.Errorf("%w: %v", apperrors.ErrOutOfMemory, err))
	}
	defer l.alloc.Free(buf)

	n, err := l.store.Read(h, buf)
	if err != nil {
		return nil, l.fail("read", fmt.Errorf("%w: %v", apperrors.ErrIO, err))
	}
	if int64(n) != size {
		return nil, l.fail("read", fmt.Errorf("%w: read %d of %d bytes", apperrors.ErrIO, n, size))
	}

	entries, err := Split(buf, l.alloc, l.keepTail)
	if err != nil {
		return nil, l.fail("parse", err)
	}

	l.log.WithFields(log.Fields{
		"file":    l.name,
		"bytes":   size,
		"entries": len(entries),
	}).Debug("startup params loaded")

	return &List{entries: entries, alloc: l.alloc}, nil
}

// close is best-effort; its failure never replaces the load result
func (l *Loader) close(h storage.Handle) {
	if err := l.store.Close(h); err != nil {
		l.log.WithError(err).WithField("file", l.name).Warn("failed to close params file")
	}
}

func (l *Loader) fail(op string, err error) error {
	return &apperrors.LoadError{Op: op, Name: l.name, Err: err}
}
