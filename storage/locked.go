package storage

import "sync"

// LockedStorage serializes every operation on a wrapped Storage with a
// mutex, making one handle safe to share across goroutines. The
// backends themselves are single-threaded by contract; a shared handle
// needs this external serialization. A plain mutex, not RWMutex:
// reads mutate state on some backends (cache statistics, file offset).
type LockedStorage struct {
	mu    sync.Mutex
	inner Storage
}

func NewLockedStorage(inner Storage) *LockedStorage {
	return &LockedStorage{inner: inner}
}

func (ls *LockedStorage) Read() (Dataset, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.inner.Read()
}

func (ls *LockedStorage) Write(data Dataset) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.inner.Write(data)
}

func (ls *LockedStorage) Close() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.inner.Close()
}

var _ Storage = (*LockedStorage)(nil)
