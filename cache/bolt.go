package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var parsedBucket = []byte("parsed")

// boltRecord wraps an entry with its expiry, since bolt has no notion of ttl.
type boltRecord struct {
	Entry     Entry     `json:"entry"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// BoltStore keeps parse results in a local bolt file. It serves single-instance deployments
// which don't run redis.
type BoltStore struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache file: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(parsedBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &BoltStore{db: db, now: time.Now}, nil
}

func (store *BoltStore) SaveParsed(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rec := boltRecord{Entry: entry}
	if ttl > 0 {
		rec.ExpiresAt = store.now().Add(ttl)
	}

	jsonData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize parse result: %w", err)
	}

	return store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(parsedBucket).Put([]byte(key), jsonData)
	})
}

// GetParsed returns the parse result stored under key. Expired entries are reported as
// ErrCacheMiss and get overwritten by the next save.
func (store *BoltStore) GetParsed(ctx context.Context, key string) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec boltRecord
	found := false

	err := store.db.View(func(tx *bolt.Tx) error {
		// the value is only valid inside the transaction
		jsonData := tx.Bucket(parsedBucket).Get([]byte(key))
		if jsonData == nil {
			return nil
		}
		found = true
		return json.Unmarshal(jsonData, &rec)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get parse result: %w", err)
	}

	if !found || (!rec.ExpiresAt.IsZero() && !store.now().Before(rec.ExpiresAt)) {
		return nil, ErrCacheMiss
	}

	return &rec.Entry, nil
}

func (store *BoltStore) Close() error {
	return store.db.Close()
}
