package store

import (
	"context"
	"errors"
	"maps"
	"regexp"
	"strings"
	"sync"
)

// ErrNotFound is returned by State.Load when a key has never been saved or was deleted.
var ErrNotFound = errors.New("store: key not found")

// State is a raw key-value backend. Values are opaque JSON documents.
type State interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryState is an in-memory State, used for anonymous sessions and tests.
type MemoryState struct {
	mu   sync.RWMutex
	data map[string][]byte
	err  error
}

func NewMemoryState() *MemoryState {
	return &MemoryState{data: map[string][]byte{}}
}

// NewMemoryStateWith seeds the state with raw values.
func NewMemoryStateWith(seed map[string][]byte) *MemoryState {
	s := NewMemoryState()
	maps.Copy(s.data, seed)
	return s
}

// NewMemoryStateWithError returns a state whose every operation fails with err.
func NewMemoryStateWithError(err error) *MemoryState {
	return &MemoryState{data: map[string][]byte{}, err: err}
}

func (m *MemoryState) Load(ctx context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryState) Save(ctx context.Context, key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryState) Delete(ctx context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys lists the stored keys. Handy in tests.
func (m *MemoryState) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidSession reports whether id is safe to use as a Namespaced prefix.
func ValidSession(id string) bool {
	return sessionPattern.MatchString(id)
}

// NamespacedState prefixes every key with a namespace so several sessions can share one backend.
type NamespacedState struct {
	inner State
	ns    string
}

func Namespaced(inner State, ns string) *NamespacedState {
	return &NamespacedState{inner: inner, ns: strings.Trim(ns, "/")}
}

func (n *NamespacedState) key(k string) string {
	if n.ns == "" {
		return k
	}
	return n.ns + "/" + k
}

func (n *NamespacedState) Load(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Load(ctx, n.key(key))
}

func (n *NamespacedState) Save(ctx context.Context, key string, value []byte) error {
	return n.inner.Save(ctx, n.key(key), value)
}

func (n *NamespacedState) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.key(key))
}
