// Package base58 implements the Base58Check codec used for addresses,
// WIF strings and encrypted key records: the payload is extended with the
// first four bytes of its double-SHA256 as a checksum before Base58 encoding.
package base58

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcutil/base58"

	"github.com/corvuschain/corvus/crypto/hash"
)

const checksumSize = 4

var (
	// ErrFormat reports input that is not valid Base58 or is too short to
	// carry a checksum.
	ErrFormat = errors.New("base58: malformed input")

	// ErrChecksum reports a payload whose trailing checksum does not match
	// the double-SHA256 of the leading bytes.
	ErrChecksum = errors.New("base58: checksum mismatch")
)

func checksum(payload []byte) []byte {
	sum := hash.Sum256d(payload)
	return sum[:checksumSize]
}

// CheckEncode appends the 4-byte checksum to payload and Base58-encodes the
// result.
func CheckEncode(payload []byte) string {
	buf := make([]byte, 0, len(payload)+checksumSize)
	buf = append(buf, payload...)
	buf = append(buf, checksum(payload)...)
	return base58.Encode(buf)
}

// CheckDecode decodes a Base58Check string and returns the payload without
// its checksum. It fails with ErrFormat on invalid alphabet characters and
// ErrChecksum when the trailing bytes do not verify.
func CheckDecode(encoded string) ([]byte, error) {
	decoded := base58.Decode(encoded)
	if len(decoded) < checksumSize+1 {
		return nil, ErrFormat
	}
	payload := decoded[:len(decoded)-checksumSize]
	if !bytes.Equal(decoded[len(decoded)-checksumSize:], checksum(payload)) {
		return nil, ErrChecksum
	}
	return payload, nil
}
