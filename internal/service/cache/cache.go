package cache

import "time"

// BytesCache is a minimal store for opaque blobs with optional TTL. The
// player directory snapshot (~5MB of JSON) is kept here under a fixed key;
// a ttl of zero means the entry never expires on the store side.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
