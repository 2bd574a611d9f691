package sessions

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore is an in-process Store. Values are stored as JSON so callers
// never share memory with the store, the same as with Redis.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryStore creates a MemoryStore whose entries expire after ttl. A
// non-positive ttl keeps entries until deleted.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) SaveConversation(_ context.Context, c *Conversation) error {
	return s.put(conversationKey(c.ID), c)
}

func (s *MemoryStore) Conversation(_ context.Context, id string) (*Conversation, error) {
	var c Conversation
	if err := s.get(conversationKey(id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MemoryStore) DeleteConversation(_ context.Context, id string) error {
	s.del(conversationKey(id))
	return nil
}

func (s *MemoryStore) SaveQuiz(_ context.Context, q *OpenQuiz) error {
	return s.put(quizKey(q.ID), q)
}

func (s *MemoryStore) Quiz(_ context.Context, id string) (*OpenQuiz, error) {
	var q OpenQuiz
	if err := s.get(quizKey(id), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *MemoryStore) DeleteQuiz(_ context.Context, id string) error {
	s.del(quizKey(id))
	return nil
}

func (s *MemoryStore) TakeQuiz(_ context.Context, id string) (*OpenQuiz, error) {
	var q OpenQuiz
	if err := s.take(quizKey(id), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *MemoryStore) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	e := memoryEntry{data: data}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.entries[key] = e
	return nil
}

func (s *MemoryStore) get(key string, v any) error {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && s.expired(e) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(e.data, v)
}

// take is get and delete under one lock.
func (s *MemoryStore) take(key string, v any) error {
	s.mu.Lock()
	e, ok := s.entries[key]
	live := ok && !s.expired(e)
	delete(s.entries, key)
	s.mu.Unlock()

	if !live {
		return ErrNotFound
	}
	return json.Unmarshal(e.data, v)
}

func (s *MemoryStore) del(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// sweep drops expired entries; callers hold mu.
func (s *MemoryStore) sweep() {
	for k, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, k)
		}
	}
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !s.now().Before(e.expires)
}
