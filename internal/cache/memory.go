package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	done    chan struct{}
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore() Store {
	s := &memoryStore{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *memoryStore) GetJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}
	return true, nil
}

func (s *memoryStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	s.mu.Lock()
	s.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Close() error {
	close(s.done)
	return nil
}

func (s *memoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
