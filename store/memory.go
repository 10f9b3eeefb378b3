package store

import (
	"context"
	"sync"

	"github.com/rushteam/hybridrec/core"
)

// MemoryStore 是内存实现的 Store，用于测试/开发/原型。
// 进程重启后数据丢失。
type MemoryStore struct {
	mu     sync.RWMutex
	hashes map[string]map[string][]byte
	closed bool
}

var _ core.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		hashes: make(map[string]map[string][]byte),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) HGet(ctx context.Context, key, field string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, errClosed
	}
	h, ok := m.hashes[key]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	v, ok := h[field]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return clone(v), nil
}

func (m *MemoryStore) HSet(ctx context.Context, key string, fields map[string][]byte) error {
	if len(fields) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errClosed
	}
	h := m.hashes[key]
	if h == nil {
		h = make(map[string][]byte, len(fields))
		m.hashes[key] = h
	}
	for f, v := range fields {
		h[f] = clone(v)
	}
	return nil
}

// HGetAll 与 Redis 语义一致：key 不存在时返回空 map 而不是错误。
func (m *MemoryStore) HGetAll(ctx context.Context, key string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, errClosed
	}
	h := m.hashes[key]
	out := make(map[string][]byte, len(h))
	for f, v := range h {
		out[f] = clone(v)
	}
	return out, nil
}

func (m *MemoryStore) ReplaceHashes(ctx context.Context, hashes map[string]map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errClosed
	}
	for key, fields := range hashes {
		if len(fields) == 0 {
			delete(m.hashes, key)
			continue
		}
		h := make(map[string][]byte, len(fields))
		for f, v := range fields {
			h[f] = clone(v)
		}
		m.hashes[key] = h
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.hashes, key)
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.hashes = nil
	return nil
}

var errClosed = core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "store: memory store closed")

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
