package cache

import "time"

// BytesCache stores serialized payloads (scan results, mostly) under a key
// with a TTL. A zero TTL means no expiry.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
