package bip38

import "errors"

var (
	// ErrPrivateKeyLength reports a private key that is not 32 bytes.
	ErrPrivateKeyLength = errors.New("bip38: private key must be 32 bytes")

	// ErrRecordLength reports a decoded record that is not 39 bytes.
	ErrRecordLength = errors.New("bip38: record must be 39 bytes")

	// ErrPrefix reports a record whose version byte is not 0x01.
	ErrPrefix = errors.New("bip38: unexpected version prefix")

	// ErrType reports a record whose type byte is neither 0x42 nor 0x43.
	ErrType = errors.New("bip38: unknown record type")

	// ErrCompression reports a direct record whose flag byte is neither
	// 0xC0 nor 0xE0.
	ErrCompression = errors.New("bip38: invalid compression flag")

	// ErrFlagBits reports an EC-multiply record with flag bits outside the
	// 0x24 mask.
	ErrFlagBits = errors.New("bip38: invalid flag bits")

	// ErrPassphrase reports a direct-mode decryption whose recovered key
	// fails the embedded address checksum, i.e. a wrong passphrase.
	ErrPassphrase = errors.New("bip38: passphrase verification failed")

	// ErrInvalidFactor reports an EC multiplication that produced a zero
	// scalar, which cannot be a private key.
	ErrInvalidFactor = errors.New("bip38: derived key factor out of range")

	// ErrBlockSize reports a cipher buffer that is not 16-byte aligned.
	ErrBlockSize = errors.New("bip38: cipher buffer must be a multiple of the AES block size")
)
