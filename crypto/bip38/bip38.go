// Package bip38 implements passphrase-based encryption of private keys.
//
// An encrypted key is a 39-byte record wrapped in Base58Check: a 0x01 version
// prefix, a type byte (0x42 for directly encrypted keys, 0x43 for keys derived
// through EC multiplication), a flag byte, and a type-dependent body. Direct
// records carry a 4-byte address checksum salt and 32 bytes of AES-256-ECB
// ciphertext; EC-multiply records carry owner entropy and a split 8+16-byte
// ciphertext. Key stretching uses scrypt with the parameter sets of the
// reference scheme.
package bip38

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/scrypt"

	"github.com/corvuschain/corvus/crypto"
	"github.com/corvuschain/corvus/crypto/address"
	"github.com/corvuschain/corvus/crypto/base58"
	"github.com/corvuschain/corvus/crypto/hash"
)

const (
	recordSize = 39

	prefix       = 0x01
	typeDirect   = 0x42
	typeECMult   = 0x43
	flagCompress = 0xE0
	flagPlain    = 0xC0

	// EC-multiply flag bits. Only these two may be set.
	ecFlagCompressed = 0x20
	ecFlagLotSeq     = 0x04
	ecFlagMask       = ecFlagCompressed | ecFlagLotSeq
)

// scryptParams mirror the two fixed cost sets of the reference scheme: the
// standard set stretches passphrases, the light set stretches the derived
// seed pass in EC-multiply mode.
type scryptParams struct {
	n, r, p int
}

var (
	standardParams = scryptParams{n: 16384, r: 8, p: 8}
	lightParams    = scryptParams{n: 1024, r: 1, p: 1}
)

func deriveKey(secret, salt []byte, length int, params scryptParams) ([]byte, error) {
	return scrypt.Key(secret, salt, params.n, params.r, params.p, length)
}

// DecryptedKey is the result of decrypting an encrypted key record.
type DecryptedKey struct {
	PrivateKey []byte
	Compressed bool
}

// Encrypt encrypts a raw 32-byte private key under the given passphrase and
// returns the Base58Check-encoded record.
func Encrypt(privateKey []byte, compressed bool, passphrase string) (string, error) {
	if len(privateKey) != crypto.PrivateKeySize {
		return "", ErrPrivateKeyLength
	}

	salt, err := addressSalt(privateKey, compressed)
	if err != nil {
		return "", err
	}

	derived, err := deriveKey([]byte(passphrase), salt, 64, standardParams)
	if err != nil {
		return "", err
	}
	derivedHalf1, derivedHalf2 := derived[:32], derived[32:]

	xorBuf := make([]byte, crypto.PrivateKeySize)
	xorBytes(xorBuf, privateKey, derivedHalf1)

	cipherText, err := ecbEncrypt(derivedHalf2, xorBuf)
	if err != nil {
		return "", err
	}

	record := make([]byte, 0, recordSize)
	record = append(record, prefix, typeDirect)
	if compressed {
		record = append(record, flagCompress)
	} else {
		record = append(record, flagPlain)
	}
	record = append(record, salt...)
	record = append(record, cipherText...)

	return base58.CheckEncode(record), nil
}

// Decrypt decodes an encrypted key string and recovers the private key. For
// direct records a wrong passphrase is detected through the embedded address
// checksum and surfaces as ErrPassphrase.
func Decrypt(encoded, passphrase string) (*DecryptedKey, error) {
	record, err := base58.CheckDecode(encoded)
	if err != nil {
		return nil, err
	}
	return decryptRaw(record, passphrase)
}

func decryptRaw(record []byte, passphrase string) (*DecryptedKey, error) {
	if len(record) != recordSize {
		return nil, ErrRecordLength
	}
	if record[0] != prefix {
		return nil, ErrPrefix
	}
	switch record[1] {
	case typeECMult:
		return decryptECMult(record[1:], passphrase)
	case typeDirect:
	default:
		return nil, ErrType
	}

	var compressed bool
	switch record[2] {
	case flagCompress:
		compressed = true
	case flagPlain:
	default:
		return nil, ErrCompression
	}

	salt := record[3:7]
	derived, err := deriveKey([]byte(passphrase), salt, 64, standardParams)
	if err != nil {
		return nil, err
	}
	derivedHalf1, derivedHalf2 := derived[:32], derived[32:]

	plain, err := ecbDecrypt(derivedHalf2, record[7:recordSize])
	if err != nil {
		return nil, err
	}

	privateKey := make([]byte, crypto.PrivateKeySize)
	xorBytes(privateKey, plain, derivedHalf1)

	// Recompute the address checksum salt; a mismatch means the passphrase
	// was wrong and the recovered bytes are garbage.
	check, err := addressSalt(privateKey, compressed)
	if err != nil {
		return nil, err
	}
	for i := range salt {
		if salt[i] != check[i] {
			return nil, ErrPassphrase
		}
	}

	return &DecryptedKey{PrivateKey: privateKey, Compressed: compressed}, nil
}

// decryptECMult handles type 0x43 records. The buffer starts at the type
// byte: flag, 4-byte address hash, 8-byte owner entropy and the split
// 8+16-byte ciphertext.
//
// Unlike the direct path there is no address cross-check here; the reference
// scheme never verifies the embedded address hash on this path, so a wrong
// passphrase yields a structurally valid but different key. Kept as-is for
// behavioral parity with the wire format.
func decryptECMult(buf []byte, passphrase string) (*DecryptedKey, error) {
	flag := buf[1]
	if flag&^ecFlagMask != 0 {
		return nil, ErrFlagBits
	}
	compressed := flag&ecFlagCompressed != 0
	hasLotSeq := flag&ecFlagLotSeq != 0

	addressHash := buf[2:6]
	ownerEntropy := buf[6:14]
	ownerSalt := ownerEntropy
	if hasLotSeq {
		ownerSalt = ownerEntropy[:4]
	}

	preFactor, err := deriveKey([]byte(passphrase), ownerSalt, 32, standardParams)
	if err != nil {
		return nil, err
	}

	passFactor := preFactor
	if hasLotSeq {
		sum := hash.Sum256d(append(append([]byte{}, preFactor...), ownerEntropy...))
		passFactor = sum[:]
	}

	// The pass point is always derived compressed, regardless of the
	// compression flag of the final key.
	passPoint, err := crypto.PublicKeyFromPrivateKey(passFactor, true)
	if err != nil {
		return nil, err
	}

	seedSalt := make([]byte, 0, 12)
	seedSalt = append(seedSalt, addressHash...)
	seedSalt = append(seedSalt, ownerEntropy...)
	seedBPass, err := deriveKey(passPoint, seedSalt, 64, lightParams)
	if err != nil {
		return nil, err
	}
	derivedHalf1, derivedHalf2 := seedBPass[:32], seedBPass[32:]

	// The second ciphertext block decrypts first; its leading half feeds
	// back into the first block.
	decryptedPart2, err := ecbDecrypt(derivedHalf2, buf[22:38])
	if err != nil {
		return nil, err
	}
	tmp := make([]byte, 16)
	xorBytes(tmp, decryptedPart2, derivedHalf1[16:32])
	seedBPart2 := tmp[8:16]

	block := make([]byte, 0, 16)
	block = append(block, buf[14:22]...)
	block = append(block, tmp[:8]...)
	decryptedPart1, err := ecbDecrypt(derivedHalf2, block)
	if err != nil {
		return nil, err
	}
	seedBPart1 := make([]byte, 16)
	xorBytes(seedBPart1, decryptedPart1, derivedHalf1[:16])

	seedB := make([]byte, 0, 24)
	seedB = append(seedB, seedBPart1...)
	seedB = append(seedB, seedBPart2...)
	factorB := hash.Sum256d(seedB)

	privateKey, err := mulModN(passFactor, factorB[:])
	if err != nil {
		return nil, err
	}

	return &DecryptedKey{PrivateKey: privateKey, Compressed: compressed}, nil
}

// Verify reports whether encoded is structurally a valid encrypted key
// record. It checks length, prefix, type and flag bytes only; no key
// stretching or cryptographic verification is performed.
func Verify(encoded string) bool {
	record, err := base58.CheckDecode(encoded)
	if err != nil {
		return false
	}
	if len(record) != recordSize || record[0] != prefix {
		return false
	}
	switch record[1] {
	case typeDirect:
		return record[2] == flagCompress || record[2] == flagPlain
	case typeECMult:
		return record[2]&^ecFlagMask == 0
	default:
		return false
	}
}

// addressSalt computes the 4-byte double-SHA256 checksum of the address
// derived from privateKey.
func addressSalt(privateKey []byte, compressed bool) ([]byte, error) {
	publicKey, err := crypto.PublicKeyFromPrivateKey(privateKey, compressed)
	if err != nil {
		return nil, err
	}
	addr := address.FromPublicKey(publicKey)
	sum := hash.Sum256d([]byte(addr))
	return sum[:4], nil
}

// mulModN multiplies two scalars modulo the secp256k1 group order. This is
// the EC-multiply step: the final private key is passFactor·factorB.
func mulModN(a, b []byte) ([]byte, error) {
	var sa, sb btcec.ModNScalar
	sa.SetByteSlice(a)
	sb.SetByteSlice(b)
	sa.Mul(&sb)
	if sa.IsZero() {
		return nil, ErrInvalidFactor
	}
	out := sa.Bytes()
	return out[:], nil
}

func xorBytes(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}
