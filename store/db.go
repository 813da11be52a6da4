package store

import (
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// Database wraps the Badger database that persists wallets and the
// historical transaction log.
type Database struct {
	db *badger.DB
}

// NewDatabase opens (or creates) the Badger database at path.
func NewDatabase(path string) (*Database, error) {
	// Remove a stale lock file left behind by a crashed process.
	lockFile := filepath.Join(path, "LOCK")
	if err := os.Remove(lockFile); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "removing stale lock file")
	}

	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening badger database")
	}
	return &Database{db: db}, nil
}

func (d *Database) Set(key, value []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Get returns the value for key, or a nil slice with found=false when the
// key does not exist.
func (d *Database) Get(key []byte) ([]byte, bool, error) {
	var value []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "reading from badger")
	}
	return value, true, nil
}

func (d *Database) Delete(key []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// IteratePrefix calls fn for every key-value pair under prefix. Returning an
// error from fn stops the iteration.
func (d *Database) IteratePrefix(prefix []byte, fn func(key, value []byte) error) error {
	return d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.KeyCopy(nil), value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Database) Close() error {
	return d.db.Close()
}
