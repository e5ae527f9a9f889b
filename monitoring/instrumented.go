package monitoring

import (
	"time"

	"tinydb/storage"
)

// InstrumentedStorage wraps a Storage and records operation counts,
// read latency, and the dataset key gauge as traffic flows through it,
// so the metrics stay current without a separate polling path.
type InstrumentedStorage struct {
	storage.Storage
	metrics *Metrics
}

func NewInstrumentedStorage(base storage.Storage, metrics *Metrics) *InstrumentedStorage {
	return &InstrumentedStorage{Storage: base, metrics: metrics}
}

func (is *InstrumentedStorage) Read() (storage.Dataset, error) {
	start := time.Now()
	data, err := is.Storage.Read()
	is.metrics.ObserveStorageOp("read", err, time.Since(start))
	if err == nil {
		is.metrics.datasetKeys.Set(float64(len(data)))
	}
	return data, err
}

func (is *InstrumentedStorage) Write(data storage.Dataset) error {
	start := time.Now()
	err := is.Storage.Write(data)
	is.metrics.ObserveStorageOp("write", err, time.Since(start))
	if err == nil {
		is.metrics.datasetKeys.Set(float64(len(data)))
	}
	return err
}

var _ storage.Storage = (*InstrumentedStorage)(nil)
