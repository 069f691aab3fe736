package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct{ R *redis.Client }

func New(r *redis.Client) *Cache { return &Cache{R: r} }

func keyForm(formID string) string { return "form:games:" + formID }

func (c *Cache) GetForm(ctx context.Context, formID string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, keyForm(formID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) SetForm(ctx context.Context, formID string, v any, ttl time.Duration) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, keyForm(formID), b, ttl).Err()
}
