package repository

import (
	"context"
	"time"
)

// CacheRepository memoizes serialized results by key. A miss is reported
// with ok == false and a nil error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
