package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session state in Redis as JSON strings under
// "chat:{id}" and "quiz:{id}", each with a TTL refreshed on every save.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore creates a RedisStore. prefix namespaces every key and may
// be empty.
func NewRedisStore(client *redis.Client, ttl time.Duration, prefix string) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, prefix: prefix}
}

func (s *RedisStore) SaveConversation(ctx context.Context, c *Conversation) error {
	return s.put(ctx, conversationKey(c.ID), c)
}

func (s *RedisStore) Conversation(ctx context.Context, id string) (*Conversation, error) {
	var c Conversation
	if err := s.get(ctx, conversationKey(id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *RedisStore) DeleteConversation(ctx context.Context, id string) error {
	return s.del(ctx, conversationKey(id))
}

func (s *RedisStore) SaveQuiz(ctx context.Context, q *OpenQuiz) error {
	return s.put(ctx, quizKey(q.ID), q)
}

func (s *RedisStore) Quiz(ctx context.Context, id string) (*OpenQuiz, error) {
	var q OpenQuiz
	if err := s.get(ctx, quizKey(id), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *RedisStore) DeleteQuiz(ctx context.Context, id string) error {
	return s.del(ctx, quizKey(id))
}

// TakeQuiz uses GETDEL so only one caller can claim the quiz.
func (s *RedisStore) TakeQuiz(ctx context.Context, id string) (*OpenQuiz, error) {
	key := quizKey(id)
	data, err := s.client.GetDel(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel %s: %w", key, err)
	}
	var q OpenQuiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &q, nil
}

// Ping checks connectivity, used by the health endpoint.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, key string, v any) error {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) del(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
