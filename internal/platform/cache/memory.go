package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const defaultMaxEntries = 10_000

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// MemoryStore is the process-local backend. Entries expire by TTL and the least
// recently used entry is evicted once maxEntries is reached.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	defaultTTL time.Duration
	maxEntries int
	now        func() time.Time
}

func NewMemoryStore(defaultTTL time.Duration, maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &MemoryStore{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *MemoryStore) Backend() string {
	return BackendMemory
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if s.expired(e) {
		s.removeElement(el)
		return nil, false
	}
	s.order.MoveToFront(el)

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) bool {
	if key == "" {
		return false
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	expiresAt := time.Time{}
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[key]; ok {
		e := el.Value.(*entry)
		e.value = stored
		e.expiresAt = expiresAt
		s.order.MoveToFront(el)
		return true
	}

	if s.order.Len() >= s.maxEntries {
		s.evictLocked()
	}
	s.entries[key] = s.order.PushFront(&entry{key: key, value: stored, expiresAt: expiresAt})
	return true
}

func (s *MemoryStore) Delete(_ context.Context, key string) bool {
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return false
	}
	s.removeElement(el)
	return true
}

func (s *MemoryStore) Exists(ctx context.Context, key string) bool {
	_, ok := s.Get(ctx, key)
	return ok
}

func (s *MemoryStore) Clear(_ context.Context) bool {
	s.mu.Lock()
	s.entries = make(map[string]*list.Element)
	s.order.Init()
	s.mu.Unlock()
	return true
}

// Len counts stored entries, including ones that expired but were not touched yet.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// evictLocked drops every expired entry; if none expired it drops the LRU tail.
func (s *MemoryStore) evictLocked() {
	removed := false
	for el := s.order.Back(); el != nil; {
		prev := el.Prev()
		if s.expired(el.Value.(*entry)) {
			s.removeElement(el)
			removed = true
		}
		el = prev
	}
	if removed {
		return
	}
	if tail := s.order.Back(); tail != nil {
		s.removeElement(tail)
	}
}

func (s *MemoryStore) expired(e *entry) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(s.now())
}

func (s *MemoryStore) removeElement(el *list.Element) {
	e := el.Value.(*entry)
	delete(s.entries, e.key)
	s.order.Remove(el)
}
