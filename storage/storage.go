package storage

import "errors"

var (
	ErrInvalidAccessMode = errors.New("invalid access mode")
	ErrClosed            = errors.New("storage is closed")
	ErrCorruptDataset    = errors.New("corrupt dataset")
)

// Dataset is the unit of storage: a mapping from key to a mapping from
// sub-key to an arbitrary JSON value. Read and Write always move the
// whole dataset; there is no per-key access at this layer.
type Dataset map[string]map[string]any

// clone returns a two-level copy so callers cannot mutate a held
// snapshot through a previously returned map.
func (d Dataset) clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for key, sub := range d {
		inner := make(map[string]any, len(sub))
		for subkey, value := range sub {
			inner[subkey] = value
		}
		out[key] = inner
	}
	return out
}

// Storage is the backend contract. Read returns (nil, nil) when nothing
// has ever been written; absence of data is a normal outcome, not an
// error. A handle is not safe for concurrent use from multiple
// goroutines; callers needing that must serialize externally.
type Storage interface {
	Read() (Dataset, error)
	Write(data Dataset) error
	Close() error
}
