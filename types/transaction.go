package types

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/corvuschain/corvus/amount"
	"github.com/corvuschain/corvus/crypto/address"
	"github.com/corvuschain/corvus/crypto/hash"
)

// TxType identifies the kind of state change a transaction performs. The
// numeric values are part of the wire format.
type TxType uint8

const (
	TxTransfer             TxType = 0
	TxDelegateRegistration TxType = 2
	TxHtlcLock             TxType = 8
	TxHtlcClaim            TxType = 9
	TxHtlcRefund           TxType = 10
)

func (t TxType) String() string {
	switch t {
	case TxTransfer:
		return "transfer"
	case TxDelegateRegistration:
		return "delegateRegistration"
	case TxHtlcLock:
		return "htlcLock"
	case TxHtlcClaim:
		return "htlcClaim"
	case TxHtlcRefund:
		return "htlcRefund"
	default:
		return "unknown"
	}
}

// Transaction is immutable once signed. Handlers read it; only wallets are
// mutated during apply and revert.
type Transaction struct {
	ID               string        `cbor:"id"`
	Type             TxType        `cbor:"type"`
	Version          uint8         `cbor:"version"`
	SenderAddress    string        `cbor:"sender"`
	RecipientAddress string        `cbor:"recipient,omitempty"`
	Amount           amount.Amount `cbor:"amount"`
	Fee              amount.Amount `cbor:"fee"`
	Nonce            uint64        `cbor:"nonce"`
	Timestamp        int64         `cbor:"timestamp"`
	Asset            *Asset        `cbor:"asset,omitempty"`
}

// Asset carries the kind-specific payload. Exactly one field is set for the
// types that need one; transfers carry none.
type Asset struct {
	Delegate *DelegateAsset   `cbor:"delegate,omitempty"`
	Lock     *HtlcLockAsset   `cbor:"lock,omitempty"`
	Claim    *HtlcClaimAsset  `cbor:"claim,omitempty"`
	Refund   *HtlcRefundAsset `cbor:"refund,omitempty"`
}

type DelegateAsset struct {
	Username string `cbor:"username"`
}

type HtlcLockAsset struct {
	// SecretHash is the hex double-SHA256 of the unlock secret.
	SecretHash string `cbor:"secretHash"`
	// Expiration is a unix timestamp; claims must land strictly before it,
	// refunds at or after it.
	Expiration int64 `cbor:"expiration"`
}

type HtlcClaimAsset struct {
	LockTransactionID string `cbor:"lockTransactionId"`
	UnlockSecret      string `cbor:"unlockSecret"`
}

type HtlcRefundAsset struct {
	LockTransactionID string `cbor:"lockTransactionId"`
}

// Digest computes the canonical transaction ID: the double-SHA256 of the
// CBOR serialization with the ID field cleared.
func (tx *Transaction) Digest() (string, error) {
	clone := *tx
	clone.ID = ""
	data, err := cbor.Marshal(&clone)
	if err != nil {
		return "", errors.Wrap(err, "serializing transaction")
	}
	return hex.EncodeToString(hash.Sum256d(data).Bytes()), nil
}

// Validate performs structural checks that do not depend on wallet state.
func (tx *Transaction) Validate() error {
	if tx.ID == "" {
		return errors.New("transaction has no id")
	}
	if !address.Validate(tx.SenderAddress) {
		return errors.Errorf("invalid sender address %q", tx.SenderAddress)
	}
	if tx.Amount < 0 || tx.Fee < 0 {
		return errors.New("amount and fee must not be negative")
	}
	switch tx.Type {
	case TxTransfer, TxHtlcLock:
		if !address.Validate(tx.RecipientAddress) {
			return errors.Errorf("invalid recipient address %q", tx.RecipientAddress)
		}
	case TxDelegateRegistration:
		if tx.Asset == nil || tx.Asset.Delegate == nil || tx.Asset.Delegate.Username == "" {
			return errors.New("delegate registration requires a username")
		}
	case TxHtlcClaim:
		if tx.Asset == nil || tx.Asset.Claim == nil || tx.Asset.Claim.LockTransactionID == "" {
			return errors.New("htlc claim requires a lock transaction id")
		}
	case TxHtlcRefund:
		if tx.Asset == nil || tx.Asset.Refund == nil || tx.Asset.Refund.LockTransactionID == "" {
			return errors.New("htlc refund requires a lock transaction id")
		}
	default:
		return errors.Errorf("unknown transaction type %d", tx.Type)
	}
	if tx.Type == TxHtlcLock {
		if tx.Asset == nil || tx.Asset.Lock == nil || tx.Asset.Lock.SecretHash == "" {
			return errors.New("htlc lock requires a secret hash")
		}
	}
	return nil
}
