package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rushteam/recmall/core"
)

// FileStore 把每个 key 存成目录下的一个文件，用于本地模型快照。
// key 里的 ':' 映射为子目录分隔符，例如 "model:item_sim" → model/item_sim。
//
// 写入先落临时文件再 rename，单个 key 的写入是原子的；
// 跨 key 的原子性由 persist 包的 manifest-last 约定保证。
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) Name() string { return "file" }

func (f *FileStore) path(key string) string {
	parts := strings.Split(key, ":")
	return filepath.Join(append([]string{f.dir}, parts...)...)
}

func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (f *FileStore) Set(ctx context.Context, key string, value []byte) error {
	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", key, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileStore) BatchGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		data, err := f.Get(ctx, k)
		if core.IsStoreNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result[k] = data
	}
	return result, nil
}

func (f *FileStore) BatchSet(ctx context.Context, kvs map[string][]byte) error {
	for k, v := range kvs {
		if err := f.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

var _ core.Store = (*FileStore)(nil)
