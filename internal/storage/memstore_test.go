package storage_test

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"filegate/internal/storage"
)

// memObjectStore is an in-memory ObjectStore used to exercise BlobBackend end to end.
type memObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memObjectStore) Put(_ context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.types[key] = opt.ContentType
	return storage.ObjectInfo{Key: key, Size: int64(len(data)), ContentType: opt.ContentType}, nil
}

func (s *memObjectStore) Get(_ context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), storage.ObjectInfo{Key: key, Size: int64(len(data)), ContentType: s.types[key]}, nil
}

func (s *memObjectStore) Stat(_ context.Context, key string) (storage.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return storage.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func (s *memObjectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memObjectStore) List(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]storage.ObjectInfo, 0, len(keys))
	for _, k := range keys {
		out = append(out, storage.ObjectInfo{Key: k, Size: int64(len(s.objects[k]))})
	}
	return out, nil
}

func (s *memObjectStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}
