package mocks

import (
	"context"

	"filegate/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockStorageManager struct {
	mock.Mock
}

func (m *MockStorageManager) Store(ctx context.Context, upload *model.FileUpload, storageType model.StorageType, previewEnabled bool, path string) (*model.FileMetadata, error) {
	args := m.Called(ctx, upload, storageType, previewEnabled, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileMetadata), args.Error(1)
}

func (m *MockStorageManager) Retrieve(ctx context.Context, id string) (*model.FileRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileRecord), args.Error(1)
}

func (m *MockStorageManager) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorageManager) List(ctx context.Context) ([]model.FileMetadata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileMetadata), args.Error(1)
}
