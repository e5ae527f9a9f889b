package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONStorage persists the dataset as a pretty-printed JSON document in
// a single file. The handle owns one file descriptor whose seek
// position is shared mutable state; every operation repositions it
// deterministically before touching the file.
type JSONStorage struct {
	path string
	mode AccessMode
	file *os.File
}

// NewJSONStorage opens a file-backed storage handle. When the access
// mode carries write intent the file (and, with createDirs, its parent
// directory) is created first; existing content is preserved.
func NewJSONStorage(path string, createDirs bool, mode AccessMode) (*JSONStorage, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccessMode, string(mode))
	}

	if mode.writeIntent() {
		if err := Touch(path, createDirs); err != nil {
			return nil, err
		}
	}

	s := &JSONStorage{path: path, mode: mode}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStorage) open() error {
	f, err := os.OpenFile(s.path, s.mode.openFlags(), 0644)
	if err != nil {
		return fmt.Errorf("could not open file %s: %w", s.path, err)
	}
	s.file = f
	return nil
}

// Read returns the stored dataset, or (nil, nil) if the file is empty.
// The full file content must be one JSON document shaped as a two-level
// mapping; anything else is reported as ErrCorruptDataset.
func (s *JSONStorage) Read() (Dataset, error) {
	if s.file == nil {
		return nil, ErrClosed
	}

	size, err := s.file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("could not seek in file %s: %w", s.path, err)
	}
	if size == 0 {
		return nil, nil
	}

	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("could not seek in file %s: %w", s.path, err)
	}

	raw, err := io.ReadAll(s.file)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", s.path, err)
	}

	var data Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDataset, err)
	}
	return data, nil
}

// Write serializes the dataset with 4-space indentation and writes it
// starting at offset zero. The file is not truncated first: if the new
// serialization is shorter than the previous content, stale trailing
// bytes remain and the next Read fails. This matches the historical
// on-disk behavior and is a documented limitation.
func (s *JSONStorage) Write(data Dataset) error {
	if s.file == nil {
		return ErrClosed
	}

	buf, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("could not serialize dataset: %w", err)
	}

	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("could not seek in file %s: %w", s.path, err)
	}
	if _, err := s.file.Write(buf); err != nil {
		return fmt.Errorf("could not write file %s: %w", s.path, err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("could not flush file %s: %w", s.path, err)
	}

	// Reopen so subsequent reads start from a clean handle.
	closeErr := s.file.Close()
	s.file = nil
	if closeErr != nil {
		return fmt.Errorf("could not reopen file %s: %w", s.path, closeErr)
	}
	return s.open()
}

// Close releases the file descriptor; calling it again is a no-op.
func (s *JSONStorage) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
