// Package cache はユーザーごとのTodoリストをRedisにキャッシュします。
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/todo-api/internal/domain"
)

const listKeyPrefix = "todo:list:"

// TodoCache はTodoリストのキャッシュです。書き込みのたびに無効化されます。
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache は TodoCache を作成します。
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &TodoCache{rdb: rdb, ttl: ttl}
}

// GetList はキャッシュ済みリストを返します。ミス時は nil, nil を返します。
func (c *TodoCache) GetList(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	data, err := c.rdb.Get(ctx, listKey(ownerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var list []domain.Todo
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList はリストをキャッシュに保存します。
func (c *TodoCache) SetList(ctx context.Context, ownerID int64, list []domain.Todo) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(ownerID), data, c.ttl).Err()
}

// Invalidate は所有者のキャッシュを削除します。
func (c *TodoCache) Invalidate(ctx context.Context, ownerID int64) error {
	return c.rdb.Del(ctx, listKey(ownerID)).Err()
}

func listKey(ownerID int64) string {
	return fmt.Sprintf("%s%d", listKeyPrefix, ownerID)
}
