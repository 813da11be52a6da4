package store

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvuschain/corvus/crypto/address"
	"github.com/corvuschain/corvus/types"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func testAddr(seed string) string {
	return address.FromPublicKey([]byte(seed))
}

func TestWalletStorePersistence(t *testing.T) {
	db := newTestDB(t)

	wallets, err := NewWalletStore(db, quietLogger())
	require.NoError(t, err)

	addr := testAddr("alice")
	w := wallets.FindByAddress(addr)
	w.Balance = 12345
	w.Nonce = 7
	wallets.Index(w)

	// Same instance while cached.
	again := wallets.FindByAddress(addr)
	assert.Same(t, w, again)
	assert.True(t, wallets.Has(addr))

	// A fresh store over the same database sees the persisted wallet.
	reopened, err := NewWalletStore(db, quietLogger())
	require.NoError(t, err)
	loaded := reopened.FindByAddress(addr)
	assert.EqualValues(t, 12345, loaded.Balance)
	assert.EqualValues(t, 7, loaded.Nonce)
}

func TestWalletStoreCreatesOnMiss(t *testing.T) {
	db := newTestDB(t)
	wallets, err := NewWalletStore(db, quietLogger())
	require.NoError(t, err)

	addr := testAddr("nobody-yet")
	assert.False(t, wallets.Has(addr))

	w := wallets.FindByAddress(addr)
	require.NotNil(t, w)
	assert.Equal(t, addr, w.Address)
	assert.EqualValues(t, 0, w.Balance)
}

func TestWalletStoreLockIndex(t *testing.T) {
	db := newTestDB(t)
	wallets, err := NewWalletStore(db, quietLogger())
	require.NoError(t, err)

	addr := testAddr("locker")
	w := wallets.FindByAddress(addr)
	wallets.Index(w)
	wallets.IndexLock("lock-1", w)

	found, ok := wallets.FindByLockID("lock-1")
	require.True(t, ok)
	assert.Equal(t, addr, found.Address)

	// The index survives a restart.
	reopened, err := NewWalletStore(db, quietLogger())
	require.NoError(t, err)
	found, ok = reopened.FindByLockID("lock-1")
	require.True(t, ok)
	assert.Equal(t, addr, found.Address)

	wallets.ForgetLock("lock-1")
	_, ok = wallets.FindByLockID("lock-1")
	assert.False(t, ok)
}

func TestTransactionStore(t *testing.T) {
	db := newTestDB(t)
	txs := NewTransactionStore(db, quietLogger())

	_, err := txs.FindByID("missing")
	require.ErrorIs(t, err, ErrTxNotFound)

	tx := &types.Transaction{
		ID:               "tx-1",
		Type:             types.TxTransfer,
		Version:          1,
		SenderAddress:    testAddr("from"),
		RecipientAddress: testAddr("to"),
		Amount:           42,
		Fee:              1,
		Nonce:            1,
	}
	require.NoError(t, txs.Save(tx))

	loaded, err := txs.FindByID("tx-1")
	require.NoError(t, err)
	assert.Equal(t, tx, loaded)

	transfers, err := txs.FindByType(types.TxTransfer)
	require.NoError(t, err)
	require.Len(t, transfers, 1)

	locks, err := txs.FindByType(types.TxHtlcLock)
	require.NoError(t, err)
	assert.Empty(t, locks)
}

func TestReceivedTotals(t *testing.T) {
	db := newTestDB(t)
	txs := NewTransactionStore(db, quietLogger())

	to1, to2 := testAddr("first"), testAddr("second")
	for i, tx := range []*types.Transaction{
		{ID: "a", Type: types.TxTransfer, SenderAddress: testAddr("s"), RecipientAddress: to1, Amount: 10},
		{ID: "b", Type: types.TxTransfer, SenderAddress: testAddr("s"), RecipientAddress: to1, Amount: 15},
		{ID: "c", Type: types.TxTransfer, SenderAddress: testAddr("s"), RecipientAddress: to2, Amount: 7},
	} {
		tx.Nonce = uint64(i + 1)
		require.NoError(t, txs.Save(tx))
	}

	totals, err := txs.ReceivedTotals()
	require.NoError(t, err)
	assert.EqualValues(t, 25, totals[to1])
	assert.EqualValues(t, 7, totals[to2])
}
