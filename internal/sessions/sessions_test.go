package sessions

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/permitpal/internal/llm"
	"github.com/abhisek/permitpal/internal/parser"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "run miniredis")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl, "permitpal:"), mr
}

func sampleQuiz() *OpenQuiz {
	return &OpenQuiz{
		ID:     NewID(),
		UserID: "u1",
		Topic:  "Road Signs",
		Questions: []parser.QuizQuestion{{
			Text:    "What shape is a stop sign?",
			Options: map[parser.Label]string{"A": "Octagon", "B": "Circle", "C": "Triangle", "D": "Square"},
			Correct: parser.LabelA,
		}},
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func sampleConversation() *Conversation {
	return &Conversation{
		ID:     NewID(),
		UserID: "u1",
		Turns: []llm.Message{
			{Role: llm.RoleUser, Content: "What does a yellow light mean?"},
			{Role: llm.RoleAssistant, Content: "Prepare to stop."},
		},
		UpdatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

// exerciseStore runs the behaviour every Store must share.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	q := sampleQuiz()
	require.NoError(t, s.SaveQuiz(ctx, q))
	got, err := s.Quiz(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q, got)

	// Mutating the copy must not leak back into the store.
	got.Questions[0].Correct = parser.LabelB
	again, err := s.Quiz(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, parser.LabelA, again.Questions[0].Correct)

	require.NoError(t, s.DeleteQuiz(ctx, q.ID))
	_, err = s.Quiz(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SaveQuiz(ctx, q))
	taken, err := s.TakeQuiz(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q, taken)
	_, err = s.TakeQuiz(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Quiz(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	c := sampleConversation()
	require.NoError(t, s.SaveConversation(ctx, c))
	gotC, err := s.Conversation(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, gotC)

	require.NoError(t, s.DeleteConversation(ctx, c.ID))
	_, err = s.Conversation(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Conversation(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.DeleteConversation(ctx, "missing"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestRedisStore(t *testing.T) {
	s, _ := newRedisStore(t, time.Hour)
	exerciseStore(t, s)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	c := sampleConversation()
	require.NoError(t, s.SaveConversation(ctx, c))

	now = now.Add(59 * time.Second)
	_, err := s.Conversation(ctx, c.ID)
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = s.Conversation(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreKeysAndTTL(t *testing.T) {
	s, mr := newRedisStore(t, 10*time.Minute)
	ctx := context.Background()

	q := sampleQuiz()
	require.NoError(t, s.SaveQuiz(ctx, q))

	key := "permitpal:quiz:" + q.ID
	require.True(t, mr.Exists(key), "expected redis key %s", key)
	assert.Equal(t, 10*time.Minute, mr.TTL(key))

	mr.FastForward(11 * time.Minute)
	_, err := s.Quiz(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// takeConcurrently races n TakeQuiz calls and returns how many won.
func takeConcurrently(t *testing.T, s Store, n int) int32 {
	ctx := context.Background()
	q := sampleQuiz()
	require.NoError(t, s.SaveQuiz(ctx, q))

	var (
		wg     sync.WaitGroup
		won    atomic.Int32
		misses atomic.Int32
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.TakeQuiz(ctx, q.ID)
			switch {
			case err == nil:
				won.Add(1)
			case errors.Is(err, ErrNotFound):
				misses.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(n)-won.Load(), misses.Load())
	return won.Load()
}

func TestMemoryStoreTakeQuizOnce(t *testing.T) {
	assert.Equal(t, int32(1), takeConcurrently(t, NewMemoryStore(time.Hour), 20))
}

func TestRedisStoreTakeQuizOnce(t *testing.T) {
	s, mr := newRedisStore(t, time.Hour)
	assert.Equal(t, int32(1), takeConcurrently(t, s, 20))
	assert.Empty(t, mr.Keys())
}

func TestMemoryStoreTakeExpiredQuiz(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	q := sampleQuiz()
	require.NoError(t, s.SaveQuiz(ctx, q))
	now = now.Add(time.Minute)
	_, err := s.TakeQuiz(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStorePing(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute)
	assert.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
