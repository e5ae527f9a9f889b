package storage

// CachedStorage wraps another Storage and keeps the last decoded
// dataset in memory, so repeated reads skip deserializing the backing
// file. A Write refreshes the cached snapshot, which keeps the
// read-after-write contract intact. Like the backends it wraps, a
// CachedStorage handle is single-threaded.
type CachedStorage struct {
	Storage
	cached Dataset
	loaded bool
	stats  CacheStats
}

type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

func NewCachedStorage(base Storage) *CachedStorage {
	return &CachedStorage{Storage: base}
}

func (cs *CachedStorage) Read() (Dataset, error) {
	if cs.loaded {
		cs.stats.Hits++
		return cs.cached.clone(), nil
	}

	cs.stats.Misses++
	data, err := cs.Storage.Read()
	if err != nil {
		return nil, err
	}

	cs.cached = data
	cs.loaded = true
	return data.clone(), nil
}

func (cs *CachedStorage) Write(data Dataset) error {
	if err := cs.Storage.Write(data); err != nil {
		// The backing write may have partially succeeded; drop the
		// snapshot so the next Read goes back to the source of truth.
		cs.cached = nil
		cs.loaded = false
		return err
	}

	cs.cached = data.clone()
	cs.loaded = true
	return nil
}

// Invalidate drops the cached snapshot; the next Read hits the backing
// storage again. Useful when another handle may have touched the file.
func (cs *CachedStorage) Invalidate() {
	cs.cached = nil
	cs.loaded = false
}

func (cs *CachedStorage) GetCacheStats() CacheStats {
	return cs.stats
}

func (cs *CachedStorage) GetHitRate() float64 {
	total := cs.stats.Hits + cs.stats.Misses
	if total == 0 {
		return 0
	}
	return float64(cs.stats.Hits) / float64(total)
}
