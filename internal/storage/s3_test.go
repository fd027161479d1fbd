package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	getErr  error
	headErr error
	pages   []*s3.ListObjectsV2Output
	deleted []string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	return &s3.PutObjectOutput{ETag: aws.String(`"etag"`)}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader("payload")),
		ContentLength: aws.Int64(7),
		ContentType:   aws.String("text/plain"),
	}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(7)}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func TestS3Storage_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{}
	s := &s3Storage{client: fake, bucket: "files"}

	info, err := s.Put(ctx, "files/id1", strings.NewReader("payload"), PutObjectOptions{Size: 7, ContentType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, `"etag"`, info.ETag)
	assert.Equal(t, "files", aws.ToString(fake.put.Bucket))
	assert.Equal(t, int64(7), aws.ToInt64(fake.put.ContentLength))

	rc, info, err := s.Get(ctx, "files/id1")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, int64(7), info.Size)

	st, err := s.Stat(ctx, "files/id1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), st.Size)

	require.NoError(t, s.Delete(ctx, "files/id1"))
	assert.Equal(t, []string{"files/id1"}, fake.deleted)
}

func TestS3Storage_List_Paginates(t *testing.T) {
	fake := &fakeS3{pages: []*s3.ListObjectsV2Output{
		{
			Contents:              []types.Object{{Key: aws.String("meta/a.json"), Size: aws.Int64(10)}},
			IsTruncated:           aws.Bool(true),
			NextContinuationToken: aws.String("next"),
		},
		{
			Contents: []types.Object{{Key: aws.String("meta/b.json"), Size: aws.Int64(12)}},
		},
	}}
	s := &s3Storage{client: fake, bucket: "files"}

	objs, err := s.List(context.Background(), "meta/")

	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "meta/b.json", objs[1].Key)
}

func TestS3Storage_NotFoundMapping(t *testing.T) {
	ctx := context.Background()

	fake := &fakeS3{getErr: &types.NoSuchKey{}, headErr: &smithy.GenericAPIError{Code: "NotFound"}}
	s := &s3Storage{client: fake, bucket: "files"}

	_, _, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	_, err = s.Stat(ctx, "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	fake.getErr = errors.New("throttled")
	_, _, err = s.Get(ctx, "missing")
	assert.EqualError(t, err, "throttled")
}
