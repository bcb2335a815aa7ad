package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// nullEntry 查过但不存在
var nullEntry = []byte("null")

// GetOrLoadJSON load 返回 (nil, nil) 时写入 null 负缓存；
// 读到解不开的旧值（结构变更后）先删掉再回源一次
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	fetch := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		switch {
		case err != nil:
			return nil, err
		case v == nil:
			return nullEntry, nil
		}
		return json.Marshal(v)
	}

	b, err := c.GetOrLoad(ctx, key, ttl, fetch)
	if err != nil {
		return nil, err
	}
	out, err := decode[T](b)
	if err == nil {
		return out, nil
	}
	_ = c.Delete(ctx, key)
	if b, err = c.GetOrLoad(ctx, key, ttl, fetch); err != nil {
		return nil, err
	}
	return decode[T](b)
}

func decode[T any](b []byte) (*T, error) {
	if bytes.Equal(b, nullEntry) {
		return nil, nil
	}
	out := new(T)
	if err := json.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return out, nil
}
