package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Drolfothesgnir/mfm/mfm"
	"github.com/Drolfothesgnir/mfm/util"
)

// Key prefix of every parse result.
const ParsedPrefix = "parsed:"

// ErrCacheMiss is returned when no entry is stored under the key or the entry has expired.
var ErrCacheMiss = errors.New("cache miss")

// Mode tells which grammar produced a cached tree.
type Mode string

const (
	ModeFull   Mode = "full"
	ModeSimple Mode = "simple"
)

// Entry is a cached parse result: the serialized tree, ready to be sent back or decoded.
type Entry struct {
	Nodes    []mfm.SerializableNode `json:"nodes"`
	CachedAt time.Time              `json:"cached_at"`
}

type Store interface {
	GetParsed(ctx context.Context, key string) (*Entry, error)
	SaveParsed(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	Close() error
}

// Key derives the cache key of a parse request. The text is hashed, so the key length
// doesn't depend on the input.
func Key(mode Mode, nestLimit int, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s%s:%d:%s", ParsedPrefix, mode, nestLimit, hex.EncodeToString(sum[:]))
}

// NewStore builds the store selected by CACHE_BACKEND. A redis store is pinged first, so a wrong
// address fails the start-up.
func NewStore(ctx context.Context, config *util.Config) (Store, error) {
	switch config.CacheBackend {
	case util.CacheBackendRedis:
		rs := NewRedisStore(config)
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, fmt.Errorf("cannot reach redis at %s: %w", config.RedisAddress, err)
		}
		return rs, nil
	case util.CacheBackendBolt:
		return NewBoltStore(config.CachePath)
	case util.CacheBackendNone, "":
		return NopStore{}, nil
	}

	return nil, fmt.Errorf("unknown cache backend %q", config.CacheBackend)
}
