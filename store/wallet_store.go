package store

import (
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/corvuschain/corvus/types"
)

const (
	walletCacheSize    = 1 << 16
	walletCacheItems   = 1 << 20
	walletCacheFPRatio = 0.01
)

// WalletStore is the wallet repository used by the transaction handlers.
// Wallets live in an LRU cache in front of Badger; a wallet evicted from the
// cache is flushed to disk first, so in-place mutations survive eviction.
//
// Lookups are safe to run concurrently. Apply/revert for a given wallet must
// be serialized by the caller.
type WalletStore struct {
	db    *Database
	cache *WalletCache
	log   *logrus.Entry

	mu        sync.RWMutex
	lockIndex map[string]string // lock transaction ID -> wallet address
}

func NewWalletStore(db *Database, logger *logrus.Logger) (*WalletStore, error) {
	s := &WalletStore{
		db:        db,
		log:       logger.WithField("component", "wallet-store"),
		lockIndex: make(map[string]string),
	}

	cache, err := NewWalletCache(walletCacheSize, walletCacheItems, walletCacheFPRatio, s.onEvict)
	if err != nil {
		return nil, errors.Wrap(err, "creating wallet cache")
	}
	s.cache = cache

	if err := s.loadLockIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

// FindByAddress returns the wallet for addr, creating and indexing an empty
// one on first access. Repeated calls return the same instance while the
// wallet stays cached.
func (s *WalletStore) FindByAddress(addr string) *types.Wallet {
	if w, ok := s.cache.Get(addr); ok {
		return w
	}
	if w := s.loadWallet(addr); w != nil {
		s.cache.Add(addr, w)
		return w
	}
	w := types.NewWallet(addr)
	s.cache.Add(addr, w)
	return w
}

// Has reports whether a wallet for addr has been indexed before.
func (s *WalletStore) Has(addr string) bool {
	if !s.cache.MaybeContains(addr) {
		return false
	}
	if _, ok := s.cache.Get(addr); ok {
		return true
	}
	_, found, err := s.db.Get(walletKey(addr))
	if err != nil {
		s.log.WithError(err).WithField("address", addr).Warn("wallet lookup failed")
		return false
	}
	return found
}

// Index caches the wallet and writes it through to disk.
func (s *WalletStore) Index(w *types.Wallet) {
	s.cache.Add(w.Address, w)
	if err := s.persist(w); err != nil {
		s.log.WithError(err).WithField("address", w.Address).Error("persisting wallet")
	}
}

// FindByLockID resolves the wallet holding an open HTLC lock.
func (s *WalletStore) FindByLockID(lockTxID string) (*types.Wallet, bool) {
	s.mu.RLock()
	addr, ok := s.lockIndex[lockTxID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return s.FindByAddress(addr), true
}

// IndexLock records which wallet holds the lock created by lockTxID.
func (s *WalletStore) IndexLock(lockTxID string, w *types.Wallet) {
	s.mu.Lock()
	s.lockIndex[lockTxID] = w.Address
	s.mu.Unlock()
	if err := s.db.Set(lockKey(lockTxID), []byte(w.Address)); err != nil {
		s.log.WithError(err).WithField("lock", lockTxID).Error("persisting lock index")
	}
}

// ForgetLock drops a lock index entry after a claim or refund.
func (s *WalletStore) ForgetLock(lockTxID string) {
	s.mu.Lock()
	delete(s.lockIndex, lockTxID)
	s.mu.Unlock()
	if err := s.db.Delete(lockKey(lockTxID)); err != nil {
		s.log.WithError(err).WithField("lock", lockTxID).Error("deleting lock index")
	}
}

// Flush writes every cached wallet to disk. Called after a block is applied
// and on shutdown.
func (s *WalletStore) Flush() error {
	for _, addr := range s.cache.Keys() {
		if w, ok := s.cache.Get(addr); ok {
			if err := s.persist(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *WalletStore) onEvict(addr string, w *types.Wallet) {
	if err := s.persist(w); err != nil {
		s.log.WithError(err).WithField("address", addr).Error("flushing evicted wallet")
	}
}

func (s *WalletStore) persist(w *types.Wallet) error {
	data, err := cbor.Marshal(w)
	if err != nil {
		return errors.Wrap(err, "serializing wallet")
	}
	return s.db.Set(walletKey(w.Address), data)
}

func (s *WalletStore) loadWallet(addr string) *types.Wallet {
	data, found, err := s.db.Get(walletKey(addr))
	if err != nil {
		s.log.WithError(err).WithField("address", addr).Warn("loading wallet")
		return nil
	}
	if !found {
		return nil
	}
	var w types.Wallet
	if err := cbor.Unmarshal(data, &w); err != nil {
		s.log.WithError(err).WithField("address", addr).Warn("decoding wallet")
		return nil
	}
	return &w
}

func (s *WalletStore) loadLockIndex() error {
	return s.db.IteratePrefix([]byte(LockIndexPrefix), func(key, value []byte) error {
		lockTxID := string(key[len(LockIndexPrefix):])
		s.lockIndex[lockTxID] = string(value)
		return nil
	})
}

func walletKey(addr string) []byte {
	return []byte(WalletPrefix + addr)
}

func lockKey(lockTxID string) []byte {
	return []byte(LockIndexPrefix + lockTxID)
}
