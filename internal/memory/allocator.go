package memory

import (
	"fmt"

	"go.uber.org/atomic"

	apperrors "github.com/computerscienceiscool/ams-params/internal/errors"
)

// Allocator hands out byte buffers and takes them back
type Allocator interface {
	Allocate(n int) ([]byte, error)
	Free(buf []byte)
}

// Stats is a snapshot of allocator accounting
type Stats struct {
	Allocations      int64
	Frees            int64
	OutstandingCount int64
	OutstandingBytes int64
}

// Heap allocates from the Go heap and keeps accounting counters.
// A non-zero limit caps the number of outstanding bytes.
type Heap struct {
	limit int64

	allocs      atomic.Int64
	frees       atomic.Int64
	outstanding atomic.Int64
	bytes       atomic.Int64
}

// NewHeap creates a heap allocator. limit <= 0 means unlimited.
func NewHeap(limit int64) *Heap {
	if limit < 0 {
		limit = 0
	}
	return &Heap{limit: limit}
}

// Allocate returns a zeroed buffer of exactly n bytes
func (h *Heap) Allocate(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative allocation size %d", apperrors.ErrInvalidArguments, n)
	}

	if err := h.reserve(int64(n)); err != nil {
		return nil, err
	}

	h.allocs.Inc()
	h.outstanding.Inc()
	return make([]byte, n), nil
}

func (h *Heap) reserve(n int64) error {
	for {
		cur := h.bytes.Load()
		if h.limit > 0 && cur+n > h.limit {
			return &apperrors.ResourceError{
				Resource: "memory",
				Limit:    h.limit,
				Actual:   cur + n,
				Err:      apperrors.ErrOutOfMemory,
			}
		}
		if h.bytes.CompareAndSwap(cur, cur+n) {
			return nil
		}
	}
}

// Free returns buf to the allocator. Freeing nil is a no-op.
func (h *Heap) Free(buf []byte) {
	if buf == nil {
		return
	}
	h.frees.Inc()
	h.outstanding.Dec()
	h.bytes.Sub(int64(cap(buf)))
}

// Stats returns the current counters
func (h *Heap) Stats() Stats {
	return Stats{
		Allocations:      h.allocs.Load(),
		Frees:            h.frees.Load(),
		OutstandingCount: h.outstanding.Load(),
		OutstandingBytes: h.bytes.Load(),
	}
}

// Limit returns the configured byte limit, 0 if unlimited
func (h *Heap) Limit() int64 {
	return h.limit
}
