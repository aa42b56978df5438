package cache

import (
	"context"
	"time"
)

// NopStore never stores anything. It is used when caching is switched off.
type NopStore struct{}

func (NopStore) GetParsed(context.Context, string) (*Entry, error) {
	return nil, ErrCacheMiss
}

func (NopStore) SaveParsed(context.Context, string, Entry, time.Duration) error {
	return nil
}

func (NopStore) Close() error {
	return nil
}
