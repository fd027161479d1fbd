package mocks

import (
	"context"

	"filegate/internal/model"
	"filegate/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(ctx context.Context, row *repository.FileRow) (*model.FileMetadata, error) {
	args := m.Called(ctx, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileMetadata), args.Error(1)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id string) (*repository.FileRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.FileRow), args.Error(1)
}

func (m *MockFileRepository) List(ctx context.Context) ([]model.FileMetadata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileMetadata), args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
