package storage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// MemoryStorage is a process-local KV used in tests and when no external store
// is configured.
type MemoryStorage struct {
	mu      sync.RWMutex
	strings map[string]string
	lists   map[string][]string
	sets    map[string]map[string]struct{}
}

func CreateMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		strings: make(map[string]string),
		lists:   make(map[string][]string),
		sets:    make(map[string]map[string]struct{}),
	}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.strings[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.strings[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.strings, k)
		delete(m.lists, k)
		delete(m.sets, k)
	}
	return nil
}

func (m *MemoryStorage) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	if v, ok := m.strings[key]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("incr %s: value is not an integer", key)
		}
		n = parsed
	}
	n++
	m.strings[key] = strconv.FormatInt(n, 10)

	return n, nil
}

func (m *MemoryStorage) LPush(_ context.Context, key, value string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := append([]string{value}, m.lists[key]...)
	m.lists[key] = l

	return int64(len(l)), nil
}

func (m *MemoryStorage) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l := m.lists[key]
	n := int64(len(l))
	if stop < 0 || stop >= n {
		stop = n - 1
	}
	if start < 0 {
		start = 0
	}
	if start > stop {
		return []string{}, nil
	}

	out := make([]string, stop-start+1)
	copy(out, l[start:stop+1])
	return out, nil
}

func (m *MemoryStorage) SAdd(_ context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sets[key]
	if !ok {
		s = make(map[string]struct{})
		m.sets[key] = s
	}
	s[member] = struct{}{}

	return nil
}

func (m *MemoryStorage) SRem(_ context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sets[key], member)
	return nil
}

func (m *MemoryStorage) SMembers(_ context.Context, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		out = append(out, member)
	}
	sort.Strings(out)

	return out, nil
}

func (m *MemoryStorage) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for k := range m.strings {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)

	return out, nil
}

func (m *MemoryStorage) PingContext(_ context.Context) error {
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
