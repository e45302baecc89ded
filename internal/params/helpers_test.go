package params

import (
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	apperrors "github.com/computerscienceiscool/ams-params/internal/errors"
	"github.com/computerscienceiscool/ams-params/internal/memory"
	"github.com/computerscienceiscool/ams-params/internal/storage"
)

// MockStorage for testing storage failures
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Open(name string) (storage.Handle, error) {
	args := m.Called(name)
	return args.Get(0).(storage.Handle), args.Error(1)
}

func (m *MockStorage) SizeOf(h storage.Handle) (int64, error) {
	args := m.Called(h)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) Read(h storage.Handle, buf []byte) (int, error) {
	args := m.Called(h, buf)
	if data, ok := args.Get(0).([]byte); ok {
		return copy(buf, data), args.Error(1)
	}
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) Close(h storage.Handle) error {
	args := m.Called(h)
	return args.Error(0)
}

func (m *MockStorage) Exists(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

// failingAllocator wraps a Heap and fails the failAt-th allocation (1-based)
type failingAllocator struct {
	*memory.Heap

	mu     sync.Mutex
	calls  int
	failAt int
}

func newFailingAllocator(failAt int) *failingAllocator {
	return &failingAllocator{Heap: memory.NewHeap(0), failAt: failAt}
}

func (f *failingAllocator) Allocate(n int) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	if call == f.failAt {
		return nil, fmt.Errorf("%w: simulated failure on allocation %d", apperrors.ErrOutOfMemory, call)
	}
	return f.Heap.Allocate(n)
}
