package app

import (
	"github.com/stretchr/testify/mock"

	"github.com/madkins23/go-docstore/docstore"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) DatabaseName() string {
	return m.Called().String(0)
}

func (m *MockStore) CollectionName() string {
	return m.Called().String(0)
}

func (m *MockStore) InsertDocument(document docstore.Document) (interface{}, error) {
	args := m.Called(document)
	return args.Get(0), args.Error(1)
}

func (m *MockStore) UpdateDocument(query docstore.Query, newValues docstore.Document) (int64, error) {
	args := m.Called(query, newValues)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) DeleteDocuments(query docstore.Query) (int64, error) {
	args := m.Called(query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) ListCollections() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) ListDatabases() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) UnsafeGetAllDocuments() ([]docstore.Document, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]docstore.Document), args.Error(1)
}

func (m *MockStore) GetDocumentsPage(skip, limit int64) ([]docstore.Document, error) {
	args := m.Called(skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]docstore.Document), args.Error(1)
}

func (m *MockStore) Disconnect() error {
	return m.Called().Error(0)
}
