package storage

// MemoryStorage holds the dataset in process memory. Nothing is
// persisted; the snapshot dies with the handle.
type MemoryStorage struct {
	memory  Dataset
	written bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Read returns a copy of the last written dataset, or (nil, nil) if
// Write has never been called.
func (s *MemoryStorage) Read() (Dataset, error) {
	if !s.written {
		return nil, nil
	}
	return s.memory.clone(), nil
}

// Write replaces the held snapshot unconditionally. The dataset is
// copied so later caller-side mutation does not leak into the store.
func (s *MemoryStorage) Write(data Dataset) error {
	s.memory = data.clone()
	s.written = true
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
