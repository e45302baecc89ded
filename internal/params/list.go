package params

import (
	"fmt"

	apperrors "github.com/computerscienceiscool/ams-params/internal/errors"
	"github.com/computerscienceiscool/ams-params/internal/memory"
)

const lineFeed = 0x0a

// List is an ordered set of parameter entries owned by the caller
type List struct {
	entries [][]byte
	alloc   memory.Allocator
}

// Len returns the number of entries
func (p *List) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// At returns entry i as a string
func (p *List) At(i int) string {
	return string(p.entries[i])
}

// Strings returns copies of all entries
func (p *List) Strings() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = string(e)
	}
	return out
}

// Release frees every entry of p. It is a no-op for a nil or empty list.
func Release(p *List) {
	if p == nil {
		return
	}
	freeAll(p.alloc, p.entries)
	p.entries = nil
}

// Split breaks buf into entries on line feed bytes. Each entry is copied
// into its own allocation and excludes the line feed. Bytes after the last
// line feed are kept only when keepTail is set. A non-empty buf without
// any line feed is returned as a single entry.
//
// If an allocation fails every entry built so far is freed.
func Split(buf []byte, alloc memory.Allocator, keepTail bool) ([][]byte, error) {
	var entries [][]byte
	lastPos := 0
	found := false

	for i, b := range buf {
		if b != lineFeed {
			continue
		}
		found = true

		line, err := copyLine(alloc, buf[lastPos:i])
		if err != nil {
			freeAll(alloc, entries)
			return nil, err
		}
		entries = append(entries, line)
		lastPos = i + 1
	}

	tail := len(buf) > 0 && (!found || (keepTail && lastPos < len(buf)))
	if tail {
		line, err := copyLine(alloc, buf[lastPos:])
		if err != nil {
			freeAll(alloc, entries)
			return nil, err
		}
		entries = append(entries, line)
	}

	return entries, nil
}

// copyLine allocates exactly len(src) bytes and copies src into them
func copyLine(alloc memory.Allocator, src []byte) ([]byte, error) {
	dst, err := alloc.Allocate(len(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrOutOfMemory, err)
	}
	if n := copy(dst, src); n != len(src) {
		alloc.Free(dst)
		return nil, fmt.Errorf("%w: short allocation of %d bytes for %d", apperrors.ErrOutOfMemory, n, len(src))
	}
	return dst[:len(src)], nil
}

func freeAll(alloc memory.Allocator, entries [][]byte) {
	for _, e := range entries {
		alloc.Free(e)
	}
}
