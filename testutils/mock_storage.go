package testutils

import (
	"tinydb/storage"
)

// MockStorage implements storage.Storage for tests. Error fields, when
// set, are returned by the corresponding operation.
type MockStorage struct {
	Data       storage.Dataset
	Written    bool
	ReadErr    error
	WriteErr   error
	CloseCalls int
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) Read() (storage.Dataset, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if !m.Written {
		return nil, nil
	}
	return m.Data, nil
}

func (m *MockStorage) Write(data storage.Dataset) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Data = data
	m.Written = true
	return nil
}

func (m *MockStorage) Close() error {
	m.CloseCalls++
	return nil
}

// Ensure MockStorage implements storage.Storage
var _ storage.Storage = (*MockStorage)(nil)
