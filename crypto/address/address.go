// Package address turns public keys into Base58Check account addresses.
// An address is the network version byte followed by the 20-byte
// RIPEMD160(SHA256(pubkey)) fingerprint, Base58Check-encoded.
package address

import (
	"errors"

	"github.com/corvuschain/corvus/crypto/base58"
	"github.com/corvuschain/corvus/crypto/hash"
)

// Version is the network prefix byte. It matches the reference scheme so
// encrypted key records remain byte-exact with the upstream test vectors.
const Version = 0x00

const payloadSize = 1 + hash.FingerprintSize

var ErrInvalidAddress = errors.New("address: malformed address string")

// FromPublicKey fingerprints a serialized public key into an address string.
func FromPublicKey(publicKey []byte) string {
	payload := make([]byte, 0, payloadSize)
	payload = append(payload, Version)
	payload = append(payload, hash.Sum160(publicKey)...)
	return base58.CheckEncode(payload)
}

// Decode parses an address string back into its 20-byte fingerprint.
func Decode(addr string) ([]byte, error) {
	payload, err := base58.CheckDecode(addr)
	if err != nil {
		return nil, err
	}
	if len(payload) != payloadSize || payload[0] != Version {
		return nil, ErrInvalidAddress
	}
	return payload[1:], nil
}

// Validate reports whether addr is a well-formed address for this network.
func Validate(addr string) bool {
	_, err := Decode(addr)
	return err == nil
}
