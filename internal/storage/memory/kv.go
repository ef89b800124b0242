// Package memory holds in-process stores used when Redis is not configured.
package memory

import (
	"context"
	"sync"
)

// KV is a mutex-guarded map satisfying search.KV.
type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewKV() *KV {
	return &KV{data: make(map[string][]byte)}
}

func (k *KV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (k *KV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	k.data[key] = v
	return nil
}

func (k *KV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, key)
	return nil
}

// Shutdown drops all data.
func (k *KV) Shutdown(context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data = make(map[string][]byte)
	return nil
}
