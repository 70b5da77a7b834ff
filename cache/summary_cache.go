// Package cache persists AI report summaries on local disk so identical answer
// sets do not trigger repeat calls to the generative service.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/freshcheck/api-go/types"
)

const keyPrefix = "summary:"

type SummaryCache struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens (or creates) a badger store in dir. An empty dir opens an in-memory
// store.
func Open(dir string, ttl time.Duration) (*SummaryCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open summary cache: %w", err)
	}
	return &SummaryCache{db: db, ttl: ttl}, nil
}

func (c *SummaryCache) Get(key string) (types.Summary, bool) {
	var summary types.Summary
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &summary)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			log.Printf("Summary cache read failed: %v", err)
		}
		return types.Summary{}, false
	}
	return summary, true
}

func (c *SummaryCache) Put(key string, summary types.Summary) error {
	val, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(keyPrefix+key), val)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}

func (c *SummaryCache) Close() error {
	return c.db.Close()
}
