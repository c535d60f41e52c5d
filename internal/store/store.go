package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "game:"

var ErrNotFound = errors.New("game record not found")

// Record is everything needed to rebuild a game by replay.
type Record struct {
	ID         string    `json:"id"`
	InitialFEN string    `json:"initial_fen"`
	Moves      []string  `json:"moves"`
	Result     string    `json:"result"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	Winner     string    `json:"winner,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store wraps BadgerDB as the game archive.
type Store struct {
	db *badger.DB
}

// Open opens the archive in dir, or in memory when inMemory is set.
func Open(dir string, inMemory bool) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Save writes rec, stamping UpdatedAt. A record without CreatedAt keeps the
// one already archived under its id, or is stamped now on first save.
func (s *Store) Save(rec *Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		now := time.Now().UTC()
		if rec.CreatedAt.IsZero() {
			created, err := createdAt(txn, rec.ID)
			if err != nil {
				return err
			}
			if created.IsZero() {
				created = now
			}
			rec.CreatedAt = created
		}
		rec.UpdatedAt = now

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set(key(rec.ID), data)
	})
}

func createdAt(txn *badger.Txn, id string) (time.Time, error) {
	item, err := txn.Get(key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	var prev Record
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &prev)
	})
	return prev.CreatedAt, err
}

func (s *Store) Load(id string) (*Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
}

// List returns the ids of every archived game in key order.
func (s *Store) List() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return ids, err
}
