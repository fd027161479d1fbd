package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"filegate/internal/model"
	"filegate/internal/repository"
	repoMocks "filegate/internal/repository/mocks"
	"filegate/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStructuredBackend_Store(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		content    string
		setupMocks func(mRepo *repoMocks.MockFileRepository)
		wantErrMsg string
	}{
		{
			name:    "happy path",
			content: "0123456789",
			setupMocks: func(mRepo *repoMocks.MockFileRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(row *repository.FileRow) bool {
					return row.Meta.ID == "id1" &&
						row.Meta.StorageType == model.StorageStructured &&
						string(row.Content) == "0123456789"
				})).Return(&model.FileMetadata{ID: "id1"}, nil)
			},
		},
		{
			name:       "short content",
			content:    "01234",
			setupMocks: func(mRepo *repoMocks.MockFileRepository) {},
			wantErrMsg: "content length mismatch",
		},
		{
			name:       "oversized content",
			content:    "0123456789abc",
			setupMocks: func(mRepo *repoMocks.MockFileRepository) {},
			wantErrMsg: "content length mismatch",
		},
		{
			name:    "repository error",
			content: "0123456789",
			setupMocks: func(mRepo *repoMocks.MockFileRepository) {
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "structured backend store: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockFileRepository)
			tt.setupMocks(mRepo)

			err := storage.NewStructuredBackend(mRepo).Store(ctx, helloMeta("id1"), strings.NewReader(tt.content))

			if tt.wantErrMsg != "" {
				assert.ErrorContains(t, err, tt.wantErrMsg)
				var se *storage.StorageError
				assert.ErrorAs(t, err, &se)
			} else {
				assert.NoError(t, err)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestStructuredBackend_Retrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		mRepo := new(repoMocks.MockFileRepository)
		mRepo.On("FindByID", ctx, "id1").Return(&repository.FileRow{
			Meta:    helloMeta("id1"),
			Content: []byte("0123456789"),
		}, nil)

		rec, err := storage.NewStructuredBackend(mRepo).Retrieve(ctx, "id1")

		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, model.StorageStructured, rec.StorageType)
		data, _ := io.ReadAll(rec.Content)
		assert.Equal(t, "0123456789", string(data))
		assert.NoError(t, rec.Content.Close())
	})

	t.Run("miss is not an error", func(t *testing.T) {
		mRepo := new(repoMocks.MockFileRepository)
		mRepo.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)

		rec, err := storage.NewStructuredBackend(mRepo).Retrieve(ctx, "nope")

		assert.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("fault", func(t *testing.T) {
		mRepo := new(repoMocks.MockFileRepository)
		mRepo.On("FindByID", ctx, "id1").Return(nil, errors.New("conn reset"))

		rec, err := storage.NewStructuredBackend(mRepo).Retrieve(ctx, "id1")

		assert.Nil(t, rec)
		assert.ErrorContains(t, err, "conn reset")
	})
}

func TestStructuredBackend_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockFileRepository)
	mRepo.On("Delete", ctx, "id1").Return(true, nil).Once()
	mRepo.On("Delete", ctx, "id1").Return(false, nil).Once()
	mRepo.On("Delete", ctx, "bad").Return(false, errors.New("locked")).Once()
	mRepo.On("List", ctx).Return([]model.FileMetadata{{ID: "id2"}}, nil).Once()
	mRepo.On("List", ctx).Return(nil, errors.New("timeout")).Once()

	b := storage.NewStructuredBackend(mRepo)

	ok, err := b.Delete(ctx, "id1")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Delete(ctx, "id1")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = b.Delete(ctx, "bad")
	assert.ErrorContains(t, err, "locked")

	items, err := b.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = b.List(ctx)
	assert.ErrorContains(t, err, "structured backend list: timeout")

	mRepo.AssertExpectations(t)
}
