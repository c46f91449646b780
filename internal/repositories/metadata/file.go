package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/filex"
)

// FileRepository keeps every key in memory and rewrites the whole file on
// each mutation. The file is a JSON object mapping keys to base64 values.
type FileRepository struct {
	path string

	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// OpenFileRepository loads path, treating a missing file as an empty store.
func OpenFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{path: path, data: make(map[string][]byte)}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", path, err)
	}
	if len(raw) == 0 {
		return r, nil
	}
	if err := json.Unmarshal(raw, &r.data); err != nil {
		return nil, fmt.Errorf("failed to decode store %s: %w", path, err)
	}
	if r.data == nil {
		r.data = make(map[string][]byte)
	}
	return r, nil
}

func (r *FileRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, common.ErrStorageUnavailable
	}
	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

func (r *FileRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.mutate(func(data map[string][]byte) {
		data[key] = append([]byte{}, value...)
	})
}

func (r *FileRepository) Delete(ctx context.Context, key string) error {
	return r.mutate(func(data map[string][]byte) {
		delete(data, key)
	})
}

func (r *FileRepository) Clear(ctx context.Context) error {
	return r.mutate(func(data map[string][]byte) {
		clear(data)
	})
}

func (r *FileRepository) List(ctx context.Context) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, common.ErrStorageUnavailable
	}
	result := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		result[k] = append([]byte{}, v...)
	}
	return result, nil
}

// Close rejects further use. Data is already on disk.
func (r *FileRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// mutate applies fn to a copy and only swaps it in once the file write
// succeeded.
func (r *FileRepository) mutate(fn func(map[string][]byte)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return common.ErrStorageUnavailable
	}

	next := make(map[string][]byte, len(r.data)+1)
	for k, v := range r.data {
		next[k] = v
	}
	fn(next)

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if err := filex.WriteFileAtomic(r.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write store %s: %w", r.path, err)
	}

	r.data = next
	return nil
}
