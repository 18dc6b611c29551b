package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/vmihailenco/msgpack/v5"
)

const cachedContactTimeToLive = 10 * time.Minute

// ContactCacheRepository is a read-through cache over single contact reads
type ContactCacheRepository interface {
	FindByID(context.Context, string) (*model.Contact, error)
	Create(context.Context, *model.Contact) error
	DeleteByID(context.Context, string) error
}

type redisContactCache struct {
	client *redis.Client
}

// NewRedisContactCache builds redis-backed ContactCacheRepository
func NewRedisContactCache(client *redis.Client) ContactCacheRepository {
	return &redisContactCache{client: client}
}

func (r *redisContactCache) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	res, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var c model.Contact
	if err := msgpack.Unmarshal([]byte(res), &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *redisContactCache) Create(ctx context.Context, c *model.Contact) error {
	encoded, err := msgpack.Marshal(c)
	if err != nil {
		return err
	}

	if _, err := r.client.SetNX(ctx, r.key(c.ID), encoded, cachedContactTimeToLive).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisContactCache) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.client.Del(ctx, r.key(id)).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisContactCache) key(id string) string {
	return fmt.Sprintf("contact:%s", id)
}
