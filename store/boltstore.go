// Package store is the local cache behind the decision layer: the
// immutable completed sale-deal records and the viewer's ledger history.
//
// Completed-deal records must stay renderable even after the backend's
// live tag has moved on or the process restarts; caching them locally
// keeps the Closed page working across refetch races and offline reads.
// Nothing here is authoritative; the backend can always overwrite the
// cache with fresher data.
package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/capsulex/libcapsule-go/capsule"
	"github.com/capsulex/libcapsule-go/ledger"
)

var (
	bucketDeals   = []byte("completed_deals")
	bucketHistory = []byte("ledger_history")
)

// BoltStore wraps a bbolt database for the decision layer's local cache.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the bbolt database at dbPath. The
// parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketDeals, bucketHistory} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// PutCompletedDeal caches the completed-deal record for a capsule. The
// record is immutable on the backend side, so overwriting with an equal
// value is harmless.
func (s *BoltStore) PutCompletedDeal(capsuleID string, deal *capsule.CompletedDeal) error {
	if capsuleID == "" {
		return fmt.Errorf("%w: capsule id", ErrNilParam)
	}
	if deal == nil {
		return fmt.Errorf("%w: deal", ErrNilParam)
	}

	data, err := encodeGob(deal)
	if err != nil {
		return fmt.Errorf("store: encode deal: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDeals).Put([]byte(capsuleID), data)
	})
}

// GetCompletedDeal returns the cached completed-deal record for a
// capsule, or ErrNotFound.
func (s *BoltStore) GetCompletedDeal(capsuleID string) (*capsule.CompletedDeal, error) {
	var deal capsule.CompletedDeal
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDeals).Get([]byte(capsuleID))
		if data == nil {
			return ErrNotFound
		}
		return decodeGob(data, &deal)
	})
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// PutHistory caches an account's ledger transactions, replacing any
// previous entry for the account.
func (s *BoltStore) PutHistory(account capsule.Account, txs []ledger.Transaction) error {
	if account.IsAnonymous() {
		return fmt.Errorf("%w: account", ErrNilParam)
	}

	data, err := encodeGob(txs)
	if err != nil {
		return fmt.Errorf("store: encode history: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketHistory).Put([]byte(account), data)
	})
}

// GetHistory returns an account's cached ledger transactions, or
// ErrNotFound.
func (s *BoltStore) GetHistory(account capsule.Account) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketHistory).Get([]byte(account))
		if data == nil {
			return ErrNotFound
		}
		return decodeGob(data, &txs)
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
