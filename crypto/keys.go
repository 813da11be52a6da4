// Package crypto provides the secp256k1 key material used by the node:
// private key generation, public key derivation and the WIF import/export
// formats. Keys are raw 32-byte scalars; the encrypted-key codec in
// crypto/bip38 builds on top of this package.
package crypto

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/tyler-smith/go-bip39"

	"github.com/corvuschain/corvus/crypto/base58"
	"github.com/corvuschain/corvus/crypto/hash"
)

const (
	// PrivateKeySize is the length of a raw secp256k1 scalar.
	PrivateKeySize = 32

	wifVersion        = 0x80
	wifCompressedFlag = 0x01
)

var (
	ErrPrivateKeySize = errors.New("crypto: private key must be 32 bytes")
	ErrInvalidWIF     = errors.New("crypto: malformed WIF string")
	ErrBadMnemonic    = errors.New("crypto: invalid mnemonic sentence")
)

// NewPrivateKey generates a fresh random private key.
func NewPrivateKey() ([]byte, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("crypto: generating private key: %w", err)
	}
	return priv.Serialize(), nil
}

// PrivateKeyFromMnemonic derives a private key from a BIP39 mnemonic
// sentence. The 64-byte seed is compressed to a scalar with double-SHA256 so
// the derivation stays deterministic across restarts.
func PrivateKeyFromMnemonic(mnemonic, password string) ([]byte, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrBadMnemonic
	}
	seed := bip39.NewSeed(mnemonic, password)
	priv, _ := btcec.PrivKeyFromBytes(seedToScalar(seed))
	return priv.Serialize(), nil
}

// PublicKeyFromPrivateKey derives the serialized secp256k1 public key,
// 33 bytes when compressed and 65 otherwise.
func PublicKeyFromPrivateKey(privateKey []byte, compressed bool) ([]byte, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, ErrPrivateKeySize
	}
	_, pub := btcec.PrivKeyFromBytes(privateKey)
	if compressed {
		return pub.SerializeCompressed(), nil
	}
	return pub.SerializeUncompressed(), nil
}

// WIFEncode serializes a private key in wallet import format.
func WIFEncode(privateKey []byte, compressed bool) (string, error) {
	if len(privateKey) != PrivateKeySize {
		return "", ErrPrivateKeySize
	}
	payload := make([]byte, 0, PrivateKeySize+2)
	payload = append(payload, wifVersion)
	payload = append(payload, privateKey...)
	if compressed {
		payload = append(payload, wifCompressedFlag)
	}
	return base58.CheckEncode(payload), nil
}

// WIFDecode parses a wallet import format string back into the raw private
// key and its compression flag.
func WIFDecode(wif string) ([]byte, bool, error) {
	payload, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, false, err
	}
	if len(payload) < 1 || payload[0] != wifVersion {
		return nil, false, ErrInvalidWIF
	}
	switch len(payload) {
	case 1 + PrivateKeySize:
		return payload[1:], false, nil
	case 2 + PrivateKeySize:
		if payload[len(payload)-1] != wifCompressedFlag {
			return nil, false, ErrInvalidWIF
		}
		return payload[1 : 1+PrivateKeySize], true, nil
	default:
		return nil, false, ErrInvalidWIF
	}
}

func seedToScalar(seed []byte) []byte {
	// Hash the 64-byte BIP39 seed down to scalar size, reducing mod the
	// curve order so the result is always a usable key.
	sum := hash.Sum256d(seed)
	var s btcec.ModNScalar
	s.SetByteSlice(sum[:])
	b := s.Bytes()
	return b[:]
}
