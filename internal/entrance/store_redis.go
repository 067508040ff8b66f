package entrance

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

// Redis key prefix for entrance message ids.
const messageIDKeyPrefix = "entrance:msg:"

// RedisMessageIDStore shares the chat → message id mapping across instances.
type RedisMessageIDStore struct {
	client *redis.Client
}

// NewRedisMessageIDStore constructs a Redis-backed message id store.
func NewRedisMessageIDStore(client *redis.Client) *RedisMessageIDStore {
	return &RedisMessageIDStore{client: client}
}

func key(chatID int64) string {
	return messageIDKeyPrefix + strconv.FormatInt(chatID, 10)
}

func (s *RedisMessageIDStore) Get(ctx context.Context, chatID int64) (int64, error) {
	val, err := s.client.Get(ctx, key(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, pkgerrors.Newf(pkgerrors.CodeNotFound, "no entrance message for chat %d", chatID)
	}
	if err != nil {
		return 0, pkgerrors.Wrap(err, pkgerrors.CodePersistence, "get entrance message id")
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(err, pkgerrors.CodePersistence, "parse entrance message id")
	}
	return id, nil
}

func (s *RedisMessageIDStore) Set(ctx context.Context, chatID, messageID int64) error {
	err := s.client.Set(ctx, key(chatID), strconv.FormatInt(messageID, 10), 0).Err()
	return pkgerrors.Wrap(err, pkgerrors.CodePersistence, "set entrance message id")
}

func (s *RedisMessageIDStore) Delete(ctx context.Context, chatID int64) error {
	err := s.client.Del(ctx, key(chatID)).Err()
	return pkgerrors.Wrap(err, pkgerrors.CodePersistence, "delete entrance message id")
}
