package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by KV.Get when the key does not exist or has expired.
var ErrNotFound = errors.New("key not found")

// KV là kho key-value bền vững dùng chung giữa các cửa sổ trình duyệt của cùng một người dùng.
// A zero ttl means the value never expires.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
