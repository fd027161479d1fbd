package mocks

import (
	"context"
	"io"

	"filegate/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
	Kind model.StorageType
}

func (m *MockBackend) Type() model.StorageType { return m.Kind }

func (m *MockBackend) Store(ctx context.Context, meta model.FileMetadata, content io.Reader) error {
	args := m.Called(ctx, meta, content)
	return args.Error(0)
}

func (m *MockBackend) Retrieve(ctx context.Context, id string) (*model.FileRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileRecord), args.Error(1)
}

func (m *MockBackend) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBackend) List(ctx context.Context) ([]model.FileMetadata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileMetadata), args.Error(1)
}
